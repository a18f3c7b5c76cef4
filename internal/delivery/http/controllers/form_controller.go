package controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	"hiveportal/internal/delivery/http/helpers"
	"hiveportal/internal/domain"
)

type FormController struct {
	Logger    *slog.Logger
	Forms     domain.FormRegistry
	Templates func() []string
}

func NewFormController(logger *slog.Logger, forms domain.FormRegistry, templates func() []string) *FormController {
	return &FormController{Logger: logger, Forms: forms, Templates: templates}
}

// SaveFormRequest is the request body for PUT /admin/events/{id}/form.
type SaveFormRequest struct {
	Fields []domain.FormField `json:"fields"`
}

// Validate implements Validator. Each field needs a known type; select and radio fields need options.
func (s SaveFormRequest) Validate() []string {
	var errs []string
	for i, f := range s.Fields {
		if err := f.Validate(); err != nil {
			errs = append(errs, "fields["+strconv.Itoa(i)+"]: "+err.Error())
		}
	}
	return errs
}

// CloneFormRequest is the request body for POST /admin/events/{id}/form/clone.
type CloneFormRequest struct {
	TargetEventID string `json:"targetEventId"`
}

func (c CloneFormRequest) Validate() []string {
	if c.TargetEventID == "" {
		return []string{"targetEventId is required"}
	}
	return nil
}

// Get godoc
// @Summary Get an event's registration form
// @Description An empty list means the event uses the standard registration form.
// @Tags forms
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data is the list of form fields"
// @Router /events/{id}/form [get]
func (c *FormController) Get(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Forms.GetFormConfig(r.Context(), r.PathValue("id")))
}

// Save godoc
// @Summary Replace an event's registration form
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminPassphrase
// @Param id path string true "Event ID"
// @Param form body SaveFormRequest true "Form fields"
// @Success 200 {object} helpers.APIResponse "data is the stored field list with generated ids"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /admin/events/{id}/form [put]
func (c *FormController) Save(w http.ResponseWriter, r *http.Request) {
	var req SaveFormRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	fields, err := c.Forms.SaveFormConfig(r.Context(), r.PathValue("id"), req.Fields)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, fields)
}

// Clone godoc
// @Summary Copy an event's form to another event
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminPassphrase
// @Param id path string true "Source event ID"
// @Param body body CloneFormRequest true "Target event"
// @Success 200 {object} helpers.APIResponse "data is the target's new field list"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (source has no form)"
// @Router /admin/events/{id}/form/clone [post]
func (c *FormController) Clone(w http.ResponseWriter, r *http.Request) {
	var req CloneFormRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ok, err := c.Forms.CloneFormConfig(r.Context(), r.PathValue("id"), req.TargetEventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if !ok {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "source event has no custom form")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Forms.GetFormConfig(r.Context(), req.TargetEventID))
}

// ApplyTemplate godoc
// @Summary Append a field template to an event's form
// @Tags admin
// @Produce json
// @Security AdminPassphrase
// @Param id path string true "Event ID"
// @Param name path string true "Template name (contact, academic, consent, banner)"
// @Success 200 {object} helpers.APIResponse "data is the updated field list"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/events/{id}/form/templates/{name} [post]
func (c *FormController) ApplyTemplate(w http.ResponseWriter, r *http.Request) {
	fields, err := c.Forms.ApplyFormTemplate(r.Context(), r.PathValue("id"), r.PathValue("name"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, fields)
}

// ListTemplates godoc
// @Summary List form templates
// @Tags admin
// @Produce json
// @Security AdminPassphrase
// @Success 200 {object} helpers.APIResponse "data is the list of template names"
// @Router /admin/form-templates [get]
func (c *FormController) ListTemplates(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Templates())
}
