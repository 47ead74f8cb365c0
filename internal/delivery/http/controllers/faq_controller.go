package controllers

import (
	"log/slog"
	"net/http"

	"monipaep/internal/delivery/http/helpers"
	"monipaep/internal/domain"
)

// FAQController handles FAQ endpoints.
type FAQController struct {
	Logger  *slog.Logger
	Service domain.FAQService
}

// NewFAQController creates a FAQController with the given logger and service.
func NewFAQController(logger *slog.Logger, svc domain.FAQService) *FAQController {
	return &FAQController{Logger: logger, Service: svc}
}

// List godoc
// @Summary List FAQs
// @Description Not paginated.
// @Tags faqs
// @Produce json
// @Param question query string false "Question filter"
// @Success 200 {object} helpers.APIResponse "data is an array of domain.FAQ"
// @Router /api/faqs [get]
func (c *FAQController) List(w http.ResponseWriter, r *http.Request) {
	faqs, err := c.Service.List(r.Context(), r.URL.Query().Get("question"))
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	if faqs == nil {
		faqs = []domain.FAQ{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, faqs)
}

// Create godoc
// @Summary Create a FAQ
// @Tags faqs
// @Accept json
// @Produce json
// @Param body body domain.FAQ true "FAQ"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/faqs [post]
func (c *FAQController) Create(w http.ResponseWriter, r *http.Request) {
	var f domain.FAQ
	if !helpers.DecodeAndValidate(w, r, &f) {
		return
	}
	res, err := c.Service.Create(r.Context(), &f)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, res)
}

// Update godoc
// @Summary Update a FAQ
// @Tags faqs
// @Accept json
// @Produce json
// @Param id path string true "FAQ ID"
// @Param body body domain.FAQ true "FAQ"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/faqs/{id} [put]
func (c *FAQController) Update(w http.ResponseWriter, r *http.Request) {
	var f domain.FAQ
	if !helpers.DecodeAndValidate(w, r, &f) {
		return
	}
	res, err := c.Service.Update(r.Context(), r.PathValue("id"), &f)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, res)
}

// Delete godoc
// @Summary Delete a FAQ
// @Tags faqs
// @Produce json
// @Param id path string true "FAQ ID"
// @Success 200 {object} helpers.APIResponse
// @Router /api/faqs/{id} [delete]
func (c *FAQController) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := c.Service.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, res)
}
