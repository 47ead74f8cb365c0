package controllers

import (
	"log/slog"
	"net/http"

	"monipaep/internal/delivery/http/helpers"
	"monipaep/internal/domain"
)

// PatientListResponse is the success response envelope for GET /api/patients (200).
type PatientListResponse struct {
	Data  helpers.ListResponse[domain.Patient] `json:"data"`
	Error *helpers.APIError                    `json:"error"`
}

// PatientController handles patient endpoints.
type PatientController struct {
	Logger  *slog.Logger
	Service domain.PatientService
}

// NewPatientController creates a PatientController with the given logger and service.
func NewPatientController(logger *slog.Logger, svc domain.PatientService) *PatientController {
	return &PatientController{Logger: logger, Service: svc}
}

// List godoc
// @Summary List patients
// @Tags patients
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param filter query string false "name, cpf, gender, neighborhood or status"
// @Param value query string false "Filter value"
// @Success 200 {object} controllers.PatientListResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: session_expired"
// @Router /api/patients [get]
func (c *PatientController) List(w http.ResponseWriter, r *http.Request) {
	q := helpers.ParseListQuery(r)
	page, err := c.Service.List(r.Context(), q)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.NewListResponse(page, q))
}

// Get godoc
// @Summary Get a patient
// @Tags patients
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} helpers.APIResponse "data contains the patient"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/patients/{id} [get]
func (c *PatientController) Get(w http.ResponseWriter, r *http.Request) {
	p, err := c.Service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, p)
}

// Delete godoc
// @Summary Delete a patient
// @Tags patients
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} helpers.APIResponse "data.success contains the API message"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/patients/{id} [delete]
func (c *PatientController) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := c.Service.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, res)
}
