package controllers

import (
	"log/slog"
	"net/http"

	"monipaep/internal/delivery/http/helpers"
	"monipaep/internal/domain"
)

// OccurrenceController handles disease and symptom occurrence endpoints.
type OccurrenceController struct {
	Logger  *slog.Logger
	Service domain.OccurrenceService
}

// NewOccurrenceController creates an OccurrenceController with the given logger and service.
func NewOccurrenceController(logger *slog.Logger, svc domain.OccurrenceService) *OccurrenceController {
	return &OccurrenceController{Logger: logger, Service: svc}
}

// List godoc
// @Summary List disease occurrences
// @Tags occurrences
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param filter query string false "patient_name, disease_name or status"
// @Param value query string false "Filter value"
// @Success 200 {object} helpers.APIResponse "data contains items and pagination"
// @Router /api/diseaseoccurrences [get]
func (c *OccurrenceController) List(w http.ResponseWriter, r *http.Request) {
	q := helpers.ParseListQuery(r)
	page, err := c.Service.List(r.Context(), q)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.NewListResponse(page, q))
}

// PatientHistory godoc
// @Summary Disease history of a patient
// @Tags occurrences
// @Produce json
// @Param id path string true "Patient ID"
// @Param page query int false "Page (1-based)"
// @Param filter query string false "disease_name or status"
// @Param value query string false "Filter value"
// @Success 200 {object} helpers.APIResponse "data contains items and pagination"
// @Router /api/patients/{id}/diseasehistory [get]
func (c *OccurrenceController) PatientHistory(w http.ResponseWriter, r *http.Request) {
	q := helpers.ParseListQuery(r)
	page, err := c.Service.PatientHistory(r.Context(), r.PathValue("id"), q)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.NewListResponse(page, q))
}

// Get godoc
// @Summary Get a disease occurrence
// @Description The occurrence with the symptoms and movements recorded during it.
// @Tags occurrences
// @Produce json
// @Param id path string true "Occurrence ID"
// @Success 200 {object} helpers.APIResponse "data contains domain.DiseaseOccurrenceDetails"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/diseaseoccurrences/{id} [get]
func (c *OccurrenceController) Get(w http.ResponseWriter, r *http.Request) {
	d, err := c.Service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, d)
}

// Create godoc
// @Summary Open disease occurrences
// @Description One occurrence is opened per disease name. Status must be Suspeito or Infectado.
// @Tags occurrences
// @Accept json
// @Produce json
// @Param body body domain.NewDiseaseOccurrence true "Occurrence"
// @Success 201 {object} helpers.APIResponse "data contains domain.CreatedDiseaseOccurrences"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/diseaseoccurrences [post]
func (c *OccurrenceController) Create(w http.ResponseWriter, r *http.Request) {
	var o domain.NewDiseaseOccurrence
	if !helpers.DecodeAndValidate(w, r, &o) {
		return
	}
	created, err := c.Service.Create(r.Context(), &o)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// Update godoc
// @Summary Update a disease occurrence
// @Tags occurrences
// @Accept json
// @Produce json
// @Param id path string true "Occurrence ID"
// @Param body body domain.DiseaseOccurrenceUpdate true "Occurrence"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/diseaseoccurrences/{id} [put]
func (c *OccurrenceController) Update(w http.ResponseWriter, r *http.Request) {
	var u domain.DiseaseOccurrenceUpdate
	if !helpers.DecodeAndValidate(w, r, &u) {
		return
	}
	res, err := c.Service.Update(r.Context(), r.PathValue("id"), &u)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, res)
}

// Delete godoc
// @Summary Delete a disease occurrence
// @Tags occurrences
// @Produce json
// @Param id path string true "Occurrence ID"
// @Success 200 {object} helpers.APIResponse
// @Router /api/diseaseoccurrences/{id} [delete]
func (c *OccurrenceController) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := c.Service.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, res)
}

// UnassignedSymptoms godoc
// @Summary List symptom occurrences not linked to a disease occurrence
// @Tags occurrences
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param filter query string false "patient_name"
// @Param value query string false "Filter value"
// @Success 200 {object} helpers.APIResponse "data contains items and pagination"
// @Router /api/symptomoccurrences [get]
func (c *OccurrenceController) UnassignedSymptoms(w http.ResponseWriter, r *http.Request) {
	q := helpers.ParseListQuery(r)
	page, err := c.Service.UnassignedSymptoms(r.Context(), q)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.NewListResponse(page, q))
}

// PatientUnassignedSymptoms godoc
// @Summary Unassigned symptom occurrences of a patient
// @Tags occurrences
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} helpers.APIResponse "data is an array of domain.SymptomOccurrence"
// @Router /api/patients/{id}/symptomoccurrences [get]
func (c *OccurrenceController) PatientUnassignedSymptoms(w http.ResponseWriter, r *http.Request) {
	symptoms, err := c.Service.PatientUnassignedSymptoms(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	if symptoms == nil {
		symptoms = []domain.SymptomOccurrence{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, symptoms)
}
