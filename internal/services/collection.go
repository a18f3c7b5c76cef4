package services

import (
	"fmt"

	"github.com/google/uuid"

	"hiveportal/internal/domain"
)

// collection is one ordered entity list persisted under its own key.
// It is not safe for concurrent use; the Store mutex guards it.
type collection[T any] struct {
	key     string
	noun    string
	prefix  string
	prepend bool
	items   []*T

	id     func(*T) *string
	clone  func(*T) *T
	status func(*T) *domain.ContentStatus
	rule   func(from, to domain.ContentStatus) error
	clean  func(*T)
	order  func([]*T)
}

func newID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

func (c *collection[T]) index(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range c.items {
		if *c.id(item) == id {
			return i
		}
	}
	return -1
}

func (c *collection[T]) get(id string) (*T, bool) {
	i := c.index(id)
	if i < 0 {
		return nil, false
	}
	return c.clone(c.items[i]), true
}

func (c *collection[T]) list(keep func(*T) bool) []*T {
	out := make([]*T, 0, len(c.items))
	for _, item := range c.items {
		if keep == nil || keep(item) {
			out = append(out, c.clone(item))
		}
	}
	return out
}

// add validates and inserts a copy of item, generating an id when empty.
// The initial status must be reachable from draft.
func (c *collection[T]) add(item *T) (*T, error) {
	if item == nil {
		return nil, fmt.Errorf("%w: missing %s", domain.ErrInvalidInput, c.noun)
	}
	next := c.clone(item)
	if err := domain.ValidateStruct(next); err != nil {
		return nil, err
	}
	id := c.id(next)
	if *id == "" {
		*id = newID(c.prefix)
	} else if c.index(*id) >= 0 {
		return nil, fmt.Errorf("%s %q: %w", c.noun, *id, domain.ErrAlreadyExists)
	}
	if c.status != nil {
		st := c.status(next)
		resolved, err := domain.InitialStatus(*st, c.rule)
		if err != nil {
			return nil, err
		}
		*st = resolved
	}
	if c.clean != nil {
		c.clean(next)
	}
	if c.prepend {
		c.items = append([]*T{next}, c.items...)
	} else {
		c.items = append(c.items, next)
	}
	if c.order != nil {
		c.order(c.items)
	}
	return next, nil
}

// update replaces the record with item's id. It returns the previous and the
// stored record, or nils when no record has that id. merge may carry fields
// over from the previous record.
func (c *collection[T]) update(item *T, merge func(prev, next *T)) (prev, stored *T, err error) {
	if item == nil {
		return nil, nil, fmt.Errorf("%w: missing %s", domain.ErrInvalidInput, c.noun)
	}
	i := c.index(*c.id(item))
	if i < 0 {
		return nil, nil, nil
	}
	prev = c.items[i]
	next := c.clone(item)
	if err := domain.ValidateStruct(next); err != nil {
		return nil, nil, err
	}
	if c.status != nil {
		st := c.status(next)
		resolved, err := domain.NextStatus(*c.status(prev), *st, c.rule)
		if err != nil {
			return nil, nil, fmt.Errorf("%s %q: %w", c.noun, *c.id(prev), err)
		}
		*st = resolved
	}
	if c.clean != nil {
		c.clean(next)
	}
	if merge != nil {
		merge(prev, next)
	}
	c.items[i] = next
	if c.order != nil {
		c.order(c.items)
	}
	return prev, next, nil
}

func (c *collection[T]) remove(id string) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true
}

// replaceAll installs items as the collection content, dropping nil entries.
func (c *collection[T]) replaceAll(items []*T) {
	c.items = make([]*T, 0, len(items))
	for _, item := range items {
		if item != nil {
			c.items = append(c.items, item)
		}
	}
	if c.order != nil {
		c.order(c.items)
	}
}
