package controllers

import (
	"log/slog"
	"net/http"

	"monipaep/internal/delivery/http/helpers"
	"monipaep/internal/domain"
)

// USMController handles health unit (USM) endpoints.
type USMController struct {
	Logger  *slog.Logger
	Service domain.USMService
}

// NewUSMController creates a USMController with the given logger and service.
func NewUSMController(logger *slog.Logger, svc domain.USMService) *USMController {
	return &USMController{Logger: logger, Service: svc}
}

// List godoc
// @Summary List health units
// @Tags usms
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param filter query string false "name"
// @Param value query string false "Filter value"
// @Success 200 {object} helpers.APIResponse "data contains items and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: session_expired"
// @Router /api/usms [get]
func (c *USMController) List(w http.ResponseWriter, r *http.Request) {
	q := helpers.ParseListQuery(r)
	page, err := c.Service.List(r.Context(), q)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.NewListResponse(page, q))
}

// Create godoc
// @Summary Create a health unit
// @Tags usms
// @Accept json
// @Produce json
// @Param body body domain.USM true "Health unit"
// @Success 201 {object} helpers.APIResponse "data.success contains the API message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /api/usms [post]
func (c *USMController) Create(w http.ResponseWriter, r *http.Request) {
	var u domain.USM
	if !helpers.DecodeAndValidate(w, r, &u) {
		return
	}
	res, err := c.Service.Create(r.Context(), &u)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, res)
}

// Update godoc
// @Summary Update a health unit
// @Description The unit is addressed by its current name; the body may rename it.
// @Tags usms
// @Accept json
// @Produce json
// @Param name path string true "Current health unit name"
// @Param body body domain.USM true "Health unit"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/usms/{name} [put]
func (c *USMController) Update(w http.ResponseWriter, r *http.Request) {
	var u domain.USM
	if !helpers.DecodeAndValidate(w, r, &u) {
		return
	}
	res, err := c.Service.Update(r.Context(), r.PathValue("name"), &u)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, res)
}

// Delete godoc
// @Summary Delete a health unit
// @Tags usms
// @Produce json
// @Param name path string true "Health unit name"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/usms/{name} [delete]
func (c *USMController) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := c.Service.Delete(r.Context(), r.PathValue("name"))
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, res)
}
