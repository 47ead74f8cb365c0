package domain

import (
	"context"
	"slices"
	"strings"
	"time"
)

// Disease occurrence statuses.
const (
	StatusHealthy  = "Saudável"
	StatusSuspect  = "Suspeito"
	StatusInfected = "Infectado"
	StatusCured    = "Curado"
	StatusDeceased = "Óbito"
)

// OccurrenceStatuses are the statuses an existing occurrence may be moved to.
var OccurrenceStatuses = []string{StatusHealthy, StatusSuspect, StatusInfected, StatusCured, StatusDeceased}

// openingStatuses are the statuses a new occurrence may start with.
var openingStatuses = []string{StatusSuspect, StatusInfected}

// PatientSummary is the patient embedded in occurrence rows.
type PatientSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DiseaseOccurrence is one diagnosis episode of a patient.
// A nil DateEnd means the occurrence is ongoing.
// swagger:model DiseaseOccurrence
type DiseaseOccurrence struct {
	ID          string          `json:"id"`
	PatientID   string          `json:"patient_id,omitempty"`
	DiseaseName string          `json:"disease_name"`
	Diagnosis   string          `json:"diagnosis"`
	DateStart   string          `json:"date_start"`
	DateEnd     *string         `json:"date_end"`
	Status      string          `json:"status"`
	Patient     *PatientSummary `json:"patient,omitempty"`

	DateStartFormatted string `json:"date_start_formatted,omitempty"`
	DateEndFormatted   string `json:"date_end_formatted,omitempty"`
}

// SymptomOccurrence is a symptom reported by a patient.
// swagger:model SymptomOccurrence
type SymptomOccurrence struct {
	ID             string          `json:"id"`
	PatientID      string          `json:"patient_id"`
	SymptomName    string          `json:"symptom_name,omitempty"`
	RegisteredDate string          `json:"registered_date"`
	Patient        *PatientSummary `json:"patient,omitempty"`

	RegisteredDateFormatted string `json:"registered_date_formatted,omitempty"`
}

// Movement is an entry of a patient's movement history.
// swagger:model Movement
type Movement struct {
	ID            string `json:"id"`
	Description   string `json:"description"`
	Date          string `json:"date"`
	DateFormatted string `json:"date_formatted,omitempty"`
}

// DiseaseOccurrenceDetails is an occurrence with the symptoms and movements recorded during it.
// swagger:model DiseaseOccurrenceDetails
type DiseaseOccurrenceDetails struct {
	Occurrence      DiseaseOccurrence   `json:"occurrenceDetails"`
	Symptoms        []SymptomOccurrence `json:"symptomsList"`
	MovementHistory []Movement          `json:"movementHistory"`
}

// NewDiseaseOccurrence opens one occurrence per disease for a patient.
type NewDiseaseOccurrence struct {
	PatientID    string    `json:"patient_id"`
	DiseaseNames []string  `json:"disease_name"`
	Status       string    `json:"status"`
	DateStart    time.Time `json:"date_start"`
	Diagnosis    string    `json:"diagnosis"`
}

// Validate checks the opening fields.
func (o *NewDiseaseOccurrence) Validate() []string {
	var problems []string
	if strings.TrimSpace(o.PatientID) == "" {
		problems = append(problems, "patient_id is required")
	}
	if len(o.DiseaseNames) == 0 {
		problems = append(problems, "at least one disease_name is required")
	}
	if !slices.Contains(openingStatuses, o.Status) {
		problems = append(problems, "status must be Suspeito or Infectado")
	}
	if o.DateStart.IsZero() {
		problems = append(problems, "date_start is required")
	}
	if strings.TrimSpace(o.Diagnosis) == "" {
		problems = append(problems, "diagnosis is required")
	}
	return problems
}

// CreatedDiseaseOccurrences is the answer to an occurrence creation.
// swagger:model CreatedDiseaseOccurrences
type CreatedDiseaseOccurrences struct {
	Success     string              `json:"success"`
	Occurrences []DiseaseOccurrence `json:"createdDiseaseOccurrences"`
}

// DiseaseOccurrenceUpdate replaces the editable fields of an occurrence.
// A nil DateEnd keeps the occurrence ongoing.
type DiseaseOccurrenceUpdate struct {
	DiseaseName string     `json:"disease_name"`
	DateStart   time.Time  `json:"date_start"`
	DateEnd     *time.Time `json:"date_end"`
	Status      string     `json:"status"`
	Diagnosis   string     `json:"diagnosis"`
}

// Validate checks the update fields.
func (u *DiseaseOccurrenceUpdate) Validate() []string {
	var problems []string
	if strings.TrimSpace(u.DiseaseName) == "" {
		problems = append(problems, "disease_name is required")
	}
	if u.DateStart.IsZero() {
		problems = append(problems, "date_start is required")
	}
	if u.DateEnd != nil && u.DateEnd.Before(u.DateStart) {
		problems = append(problems, "date_end must not precede date_start")
	}
	if !slices.Contains(OccurrenceStatuses, u.Status) {
		problems = append(problems, "status is not a known occurrence status")
	}
	if strings.TrimSpace(u.Diagnosis) == "" {
		problems = append(problems, "diagnosis is required")
	}
	return problems
}

// OccurrenceService manages disease occurrences and reads symptom occurrences.
type OccurrenceService interface {
	List(ctx context.Context, q ListQuery) (*Page[DiseaseOccurrence], error)
	PatientHistory(ctx context.Context, patientID string, q ListQuery) (*Page[DiseaseOccurrence], error)
	Get(ctx context.Context, id string) (*DiseaseOccurrenceDetails, error)
	Create(ctx context.Context, o *NewDiseaseOccurrence) (*CreatedDiseaseOccurrences, error)
	Update(ctx context.Context, id string, u *DiseaseOccurrenceUpdate) (*MutationResult, error)
	Delete(ctx context.Context, id string) (*MutationResult, error)

	UnassignedSymptoms(ctx context.Context, q ListQuery) (*Page[SymptomOccurrence], error)
	PatientUnassignedSymptoms(ctx context.Context, patientID string) ([]SymptomOccurrence, error)
}
