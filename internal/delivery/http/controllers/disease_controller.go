package controllers

import (
	"log/slog"
	"net/http"

	"monipaep/internal/delivery/http/helpers"
	"monipaep/internal/domain"
)

// DiseaseController handles disease endpoints.
type DiseaseController struct {
	Logger  *slog.Logger
	Service domain.DiseaseService
}

// NewDiseaseController creates a DiseaseController with the given logger and service.
func NewDiseaseController(logger *slog.Logger, svc domain.DiseaseService) *DiseaseController {
	return &DiseaseController{Logger: logger, Service: svc}
}

// List godoc
// @Summary List diseases
// @Tags diseases
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param filter query string false "name"
// @Param value query string false "Filter value"
// @Success 200 {object} helpers.APIResponse "data contains items and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: session_expired"
// @Router /api/diseases [get]
func (c *DiseaseController) List(w http.ResponseWriter, r *http.Request) {
	q := helpers.ParseListQuery(r)
	page, err := c.Service.List(r.Context(), q)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.NewListResponse(page, q))
}

// Create godoc
// @Summary Create a disease
// @Tags diseases
// @Accept json
// @Produce json
// @Param body body domain.Disease true "Disease"
// @Success 201 {object} helpers.APIResponse "data.success contains the API message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /api/diseases [post]
func (c *DiseaseController) Create(w http.ResponseWriter, r *http.Request) {
	var d domain.Disease
	if !helpers.DecodeAndValidate(w, r, &d) {
		return
	}
	res, err := c.Service.Create(r.Context(), &d)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, res)
}

// Update godoc
// @Summary Update a disease
// @Description The disease is addressed by its current name; the body may rename it.
// @Tags diseases
// @Accept json
// @Produce json
// @Param name path string true "Current disease name"
// @Param body body domain.Disease true "Disease"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/diseases/{name} [put]
func (c *DiseaseController) Update(w http.ResponseWriter, r *http.Request) {
	var d domain.Disease
	if !helpers.DecodeAndValidate(w, r, &d) {
		return
	}
	res, err := c.Service.Update(r.Context(), r.PathValue("name"), &d)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, res)
}

// Delete godoc
// @Summary Delete a disease
// @Tags diseases
// @Produce json
// @Param name path string true "Disease name"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/diseases/{name} [delete]
func (c *DiseaseController) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := c.Service.Delete(r.Context(), r.PathValue("name"))
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, res)
}
