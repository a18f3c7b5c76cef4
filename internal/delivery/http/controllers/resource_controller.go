package controllers

import (
	"log/slog"
	"net/http"

	"hiveportal/internal/delivery/http/helpers"
	"hiveportal/internal/domain"
)

// ResourceController serves list, read and CRUD routes for one entity kind.
// Public handlers only expose records that Visible accepts.
type ResourceController[T any] struct {
	Logger   *slog.Logger
	Resource domain.ContentResource[T]
	Noun     string
	ID       func(*T) *string
	Visible  func(*T) bool
}

func NewResourceController[T any](logger *slog.Logger, res domain.ContentResource[T], noun string, id func(*T) *string, visible func(*T) bool) *ResourceController[T] {
	if visible == nil {
		visible = func(*T) bool { return true }
	}
	return &ResourceController[T]{Logger: logger, Resource: res, Noun: noun, ID: id, Visible: visible}
}

// ListPublic godoc
// @Summary List published records
// @Description Lists what visitors may see: published records, and for events also completed and cancelled ones.
// @Tags content
// @Produce json
// @Param kind path string true "events | team | articles | minutes | yearbooks | training | milestones | albums"
// @Success 200 {object} helpers.APIResponse "data is an array of records"
// @Router /{kind} [get]
func (c *ResourceController[T]) ListPublic(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Resource.Public(r.Context()))
}

// GetPublic godoc
// @Summary Get a published record
// @Tags content
// @Produce json
// @Param kind path string true "Entity kind"
// @Param id path string true "Record ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /{kind}/{id} [get]
func (c *ResourceController[T]) GetPublic(w http.ResponseWriter, r *http.Request) {
	item, ok := c.Resource.Get(r.Context(), r.PathValue("id"))
	if !ok || !c.Visible(item) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, c.Noun+" not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, item)
}

// List godoc
// @Summary List all records
// @Description Admin listing including drafts and records under review.
// @Tags admin
// @Produce json
// @Security AdminPassphrase
// @Param kind path string true "Entity kind"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /admin/{kind} [get]
func (c *ResourceController[T]) List(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Resource.List(r.Context()))
}

// Get godoc
// @Summary Get any record
// @Tags admin
// @Produce json
// @Security AdminPassphrase
// @Param kind path string true "Entity kind"
// @Param id path string true "Record ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/{kind}/{id} [get]
func (c *ResourceController[T]) Get(w http.ResponseWriter, r *http.Request) {
	item, ok := c.Resource.Get(r.Context(), r.PathValue("id"))
	if !ok {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, c.Noun+" not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, item)
}

// Create godoc
// @Summary Create a record
// @Description An empty id is generated. The initial status must be draft or verification.
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminPassphrase
// @Param kind path string true "Entity kind"
// @Success 201 {object} helpers.APIResponse "data is the stored record"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 422 {object} helpers.APIResponse "error.code: invalid_transition"
// @Router /admin/{kind} [post]
func (c *ResourceController[T]) Create(w http.ResponseWriter, r *http.Request) {
	var item T
	if !helpers.DecodeAndValidate(w, r, &item) {
		return
	}
	created, err := c.Resource.Add(r.Context(), &item)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// Update godoc
// @Summary Replace a record
// @Description The id comes from the path. Status may move back any number of stages but forward only one.
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminPassphrase
// @Param kind path string true "Entity kind"
// @Param id path string true "Record ID"
// @Success 200 {object} helpers.APIResponse "data is the stored record"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: invalid_transition"
// @Router /admin/{kind}/{id} [put]
func (c *ResourceController[T]) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var item T
	if !helpers.DecodeAndValidate(w, r, &item) {
		return
	}
	*c.ID(&item) = id
	ok, err := c.Resource.Update(r.Context(), &item)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if !ok {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, c.Noun+" not found")
		return
	}
	stored, _ := c.Resource.Get(r.Context(), id)
	helpers.WriteJSONSuccess(w, http.StatusOK, stored)
}

// Delete godoc
// @Summary Delete a record
// @Tags admin
// @Security AdminPassphrase
// @Param kind path string true "Entity kind"
// @Param id path string true "Record ID"
// @Success 204
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/{kind}/{id} [delete]
func (c *ResourceController[T]) Delete(w http.ResponseWriter, r *http.Request) {
	if !c.Resource.Delete(r.Context(), r.PathValue("id")) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, c.Noun+" not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
