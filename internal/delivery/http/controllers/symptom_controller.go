package controllers

import (
	"log/slog"
	"net/http"

	"monipaep/internal/delivery/http/helpers"
	"monipaep/internal/domain"
)

// SymptomController handles symptom endpoints.
type SymptomController struct {
	Logger  *slog.Logger
	Service domain.SymptomService
}

// NewSymptomController creates a SymptomController with the given logger and service.
func NewSymptomController(logger *slog.Logger, svc domain.SymptomService) *SymptomController {
	return &SymptomController{Logger: logger, Service: svc}
}

// List godoc
// @Summary List symptoms
// @Tags symptoms
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param filter query string false "symptom"
// @Param value query string false "Filter value"
// @Success 200 {object} helpers.APIResponse "data contains items and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: session_expired"
// @Router /api/symptoms [get]
func (c *SymptomController) List(w http.ResponseWriter, r *http.Request) {
	q := helpers.ParseListQuery(r)
	page, err := c.Service.List(r.Context(), q)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.NewListResponse(page, q))
}

// Create godoc
// @Summary Create a symptom
// @Tags symptoms
// @Accept json
// @Produce json
// @Param body body domain.Symptom true "Symptom"
// @Success 201 {object} helpers.APIResponse "data.success contains the API message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /api/symptoms [post]
func (c *SymptomController) Create(w http.ResponseWriter, r *http.Request) {
	var s domain.Symptom
	if !helpers.DecodeAndValidate(w, r, &s) {
		return
	}
	res, err := c.Service.Create(r.Context(), &s)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, res)
}

// Update godoc
// @Summary Update a symptom
// @Tags symptoms
// @Accept json
// @Produce json
// @Param symptom path string true "Current symptom"
// @Param body body domain.Symptom true "Symptom"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/symptoms/{symptom} [put]
func (c *SymptomController) Update(w http.ResponseWriter, r *http.Request) {
	var s domain.Symptom
	if !helpers.DecodeAndValidate(w, r, &s) {
		return
	}
	res, err := c.Service.Update(r.Context(), r.PathValue("symptom"), &s)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, res)
}

// Delete godoc
// @Summary Delete a symptom
// @Tags symptoms
// @Produce json
// @Param symptom path string true "Symptom"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/symptoms/{symptom} [delete]
func (c *SymptomController) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := c.Service.Delete(r.Context(), r.PathValue("symptom"))
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, res)
}
