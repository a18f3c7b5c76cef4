package domain

import "fmt"

// ContentStatus is the publication stage of a record. Members, articles, minutes,
// yearbooks and training docs use the four pipeline stages; events additionally
// use the terminal states completed and cancelled.
type ContentStatus string

const (
	StatusDraft        ContentStatus = "draft"
	StatusVerification ContentStatus = "verification"
	StatusApproval     ContentStatus = "approval"
	StatusPublished    ContentStatus = "published"
	StatusCompleted    ContentStatus = "completed"
	StatusCancelled    ContentStatus = "cancelled"
)

// PipelineStages is the ordered, non-terminal part of the lifecycle.
var PipelineStages = []ContentStatus{StatusDraft, StatusVerification, StatusApproval, StatusPublished}

// eventCorrectionTargets are the statuses a terminal event may be moved to.
var eventCorrectionTargets = map[ContentStatus]bool{
	StatusDraft:     true,
	StatusPublished: true,
	StatusCompleted: true,
	StatusCancelled: true,
}

// StageIndex returns the position of s in PipelineStages, or -1.
func (s ContentStatus) StageIndex() int {
	for i, stage := range PipelineStages {
		if stage == s {
			return i
		}
	}
	return -1
}

// IsTerminal reports whether s is one of the event-only terminal states.
func (s ContentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// TransitionError describes a rejected status change.
type TransitionError struct {
	From   ContentStatus
	To     ContentStatus
	Reason string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move from %q to %q: %s", e.From, e.To, e.Reason)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// ValidateContentTransition enforces the pipeline rule: from stage i the target
// stage j must satisfy j <= i+1. Moving back any number of stages is allowed,
// moving forward is limited to one stage.
func ValidateContentTransition(from, to ContentStatus) error {
	fi := from.StageIndex()
	if fi < 0 {
		return &TransitionError{From: from, To: to, Reason: "unknown current status"}
	}
	ti := to.StageIndex()
	if ti < 0 {
		return &TransitionError{From: from, To: to, Reason: "unknown target status"}
	}
	if ti > fi+1 {
		return &TransitionError{From: from, To: to, Reason: "status can only advance one stage at a time"}
	}
	return nil
}

// ValidateEventTransition applies the pipeline rule plus the event terminal zone.
// Published events may be completed or cancelled. A terminal event may be moved to
// draft, published, completed or cancelled so administrators can correct mistakes.
func ValidateEventTransition(from, to ContentStatus) error {
	if from.IsTerminal() {
		if !eventCorrectionTargets[to] {
			return &TransitionError{From: from, To: to, Reason: "a closed event can only move to draft, published, completed or cancelled"}
		}
		return nil
	}
	if to.IsTerminal() {
		if from != StatusPublished {
			return &TransitionError{From: from, To: to, Reason: "only published events can be completed or cancelled"}
		}
		return nil
	}
	return ValidateContentTransition(from, to)
}

// InitialStatus resolves the status of a newly added record. An empty status
// means draft; any other value must be reachable from draft in one step.
func InitialStatus(s ContentStatus, validate func(from, to ContentStatus) error) (ContentStatus, error) {
	if s == "" {
		return StatusDraft, nil
	}
	if err := validate(StatusDraft, s); err != nil {
		return "", err
	}
	return s, nil
}

// NextStatus resolves the status for an update. An empty target keeps the current status.
func NextStatus(current, target ContentStatus, validate func(from, to ContentStatus) error) (ContentStatus, error) {
	if target == "" {
		return current, nil
	}
	if err := validate(current, target); err != nil {
		return "", err
	}
	return target, nil
}
