package controllers

import (
	"log/slog"
	"net/http"

	"hiveportal/internal/delivery/http/helpers"
	"hiveportal/internal/domain"
)

// SiteController serves the singletons: banner, preferences, article comments,
// the admin unlock check and the storage warnings feed.
type SiteController struct {
	Logger     *slog.Logger
	Site       domain.SiteService
	Warnings   domain.StorageWarnings
	Passphrase string
}

func NewSiteController(logger *slog.Logger, site domain.SiteService, warnings domain.StorageWarnings, passphrase string) *SiteController {
	return &SiteController{Logger: logger, Site: site, Warnings: warnings, Passphrase: passphrase}
}

// CommentRequest is the request body for POST /articles/{id}/comments.
type CommentRequest struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

func (c CommentRequest) Validate() []string {
	return domain.Comment{Author: c.Author, Content: c.Content}.Validate()
}

// UnlockRequest is the request body for POST /admin/unlock.
type UnlockRequest struct {
	Passphrase string `json:"passphrase"`
}

func (u UnlockRequest) Validate() []string {
	if u.Passphrase == "" {
		return []string{"passphrase is required"}
	}
	return nil
}

// Banner godoc
// @Summary Get the announcement banner
// @Tags site
// @Produce json
// @Success 200 {object} helpers.APIResponse "data is the banner config"
// @Router /banner [get]
func (c *SiteController) Banner(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Site.BannerConfig(r.Context()))
}

// UpdateBanner godoc
// @Summary Replace the announcement banner
// @Description When linkedEventId names an existing event, targetDate follows the event start and an empty message takes the event title.
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminPassphrase
// @Param banner body domain.BannerConfig true "Banner"
// @Success 200 {object} helpers.APIResponse "data is the stored banner"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /admin/banner [put]
func (c *SiteController) UpdateBanner(w http.ResponseWriter, r *http.Request) {
	var b domain.BannerConfig
	if !helpers.DecodeAndValidate(w, r, &b) {
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Site.UpdateBannerConfig(r.Context(), b))
}

// AddComment godoc
// @Summary Comment on an article
// @Tags content
// @Accept json
// @Produce json
// @Param id path string true "Article ID"
// @Param comment body CommentRequest true "Comment"
// @Success 201 {object} helpers.APIResponse "data is the stored comment"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /articles/{id}/comments [post]
func (c *SiteController) AddComment(w http.ResponseWriter, r *http.Request) {
	var req CommentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	comment, err := c.Site.AddArticleComment(r.Context(), r.PathValue("id"), domain.Comment{Author: req.Author, Content: req.Content})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, comment)
}

// Preferences godoc
// @Summary Get display preferences
// @Tags site
// @Produce json
// @Success 200 {object} helpers.APIResponse "data is the preferences object"
// @Router /preferences [get]
func (c *SiteController) Preferences(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Site.Preferences(r.Context()))
}

// UpdatePreferences godoc
// @Summary Replace display preferences
// @Tags site
// @Accept json
// @Produce json
// @Param preferences body domain.Preferences true "Preferences"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /preferences [put]
func (c *SiteController) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var p domain.Preferences
	if !helpers.DecodeAndValidate(w, r, &p) {
		return
	}
	stored, err := c.Site.UpdatePreferences(r.Context(), p)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stored)
}

// Unlock godoc
// @Summary Check the admin passphrase
// @Description Lets the console verify a passphrase before sending it on admin requests.
// @Tags admin
// @Accept json
// @Param body body UnlockRequest true "Passphrase"
// @Success 204
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /admin/unlock [post]
func (c *SiteController) Unlock(w http.ResponseWriter, r *http.Request) {
	var req UnlockRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if req.Passphrase != c.Passphrase {
		c.Logger.WarnContext(r.Context(), "admin unlock rejected", "remote", r.RemoteAddr)
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid admin passphrase")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StorageWarnings godoc
// @Summary List active storage warnings
// @Description A warning stays active until a later save of the same key succeeds.
// @Tags site
// @Produce json
// @Success 200 {object} helpers.APIResponse "data is the list of warnings"
// @Router /storage/warnings [get]
func (c *SiteController) StorageWarnings(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Warnings.Warnings())
}
