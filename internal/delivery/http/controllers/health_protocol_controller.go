package controllers

import (
	"log/slog"
	"net/http"

	"monipaep/internal/delivery/http/helpers"
	"monipaep/internal/domain"
)

// HealthProtocolController handles health protocol and assignment endpoints.
type HealthProtocolController struct {
	Logger  *slog.Logger
	Service domain.HealthProtocolService
}

// NewHealthProtocolController creates a HealthProtocolController with the given logger and service.
func NewHealthProtocolController(logger *slog.Logger, svc domain.HealthProtocolService) *HealthProtocolController {
	return &HealthProtocolController{Logger: logger, Service: svc}
}

// List godoc
// @Summary List health protocols
// @Tags healthprotocols
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param filter query string false "title or description"
// @Param value query string false "Filter value"
// @Success 200 {object} helpers.APIResponse "data contains items and pagination"
// @Router /api/healthprotocols [get]
func (c *HealthProtocolController) List(w http.ResponseWriter, r *http.Request) {
	q := helpers.ParseListQuery(r)
	page, err := c.Service.List(r.Context(), q)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.NewListResponse(page, q))
}

// Create godoc
// @Summary Create a health protocol
// @Description Markup is stripped from title and description.
// @Tags healthprotocols
// @Accept json
// @Produce json
// @Param body body domain.NewHealthProtocol true "Health protocol"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/healthprotocols [post]
func (c *HealthProtocolController) Create(w http.ResponseWriter, r *http.Request) {
	var p domain.NewHealthProtocol
	if !helpers.DecodeAndValidate(w, r, &p) {
		return
	}
	res, err := c.Service.Create(r.Context(), &p)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, res)
}

// Update godoc
// @Summary Update a health protocol
// @Description Only the fields present in the body are changed.
// @Tags healthprotocols
// @Accept json
// @Produce json
// @Param id path string true "Health protocol ID"
// @Param body body domain.HealthProtocolPatch true "Changed fields"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/healthprotocols/{id} [put]
func (c *HealthProtocolController) Update(w http.ResponseWriter, r *http.Request) {
	var p domain.HealthProtocolPatch
	if !helpers.DecodeAndValidate(w, r, &p) {
		return
	}
	res, err := c.Service.Update(r.Context(), r.PathValue("id"), &p)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, res)
}

// ListAssignments godoc
// @Summary List health protocols assigned to diseases
// @Tags healthprotocols
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param filter query string false "disease_name or healthprotocol_title"
// @Param value query string false "Filter value"
// @Success 200 {object} helpers.APIResponse "data contains items and pagination"
// @Router /api/healthprotocols/assignments [get]
func (c *HealthProtocolController) ListAssignments(w http.ResponseWriter, r *http.Request) {
	q := helpers.ParseListQuery(r)
	page, err := c.Service.ListAssignments(r.Context(), q)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.NewListResponse(page, q))
}

// Assign godoc
// @Summary Assign a health protocol to a disease
// @Tags healthprotocols
// @Accept json
// @Produce json
// @Param body body domain.HealthProtocolAssignment true "Assignment"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/healthprotocols/assignments [post]
func (c *HealthProtocolController) Assign(w http.ResponseWriter, r *http.Request) {
	var a domain.HealthProtocolAssignment
	if !helpers.DecodeAndValidate(w, r, &a) {
		return
	}
	res, err := c.Service.Assign(r.Context(), &a)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, res)
}

// Unassign godoc
// @Summary Remove a health protocol from a disease
// @Tags healthprotocols
// @Produce json
// @Param disease path string true "Disease name"
// @Param id path string true "Health protocol ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/healthprotocols/assignments/{disease}/{id} [delete]
func (c *HealthProtocolController) Unassign(w http.ResponseWriter, r *http.Request) {
	res, err := c.Service.Unassign(r.Context(), r.PathValue("disease"), r.PathValue("id"))
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, res)
}
