package domain

import "context"

// Patient is a person monitored by the surveillance API.
// Birthdate and CreatedAt keep the API's ISO timestamps; the *Formatted fields are filled for display.
// swagger:model Patient
type Patient struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	CPF           string `json:"CPF"`
	Email         string `json:"email"`
	Gender        string `json:"gender"`
	Phone         string `json:"phone"`
	WorkAddress   string `json:"workAddress,omitempty"`
	HomeAddress   string `json:"homeAddress,omitempty"`
	HouseNumber   int    `json:"houseNumber,omitempty"`
	Neighborhood  string `json:"neighborhood"`
	Birthdate     string `json:"birthdate"`
	Status        string `json:"status"`
	ActiveAccount bool   `json:"activeAccount"`
	HasHealthPlan bool   `json:"hasHealthPlan"`
	CreatedAt     string `json:"createdAt"`

	CPFFormatted       string `json:"cpf_formatted,omitempty"`
	BirthdateFormatted string `json:"birthdate_formatted,omitempty"`
	CreatedAtFormatted string `json:"created_at_formatted,omitempty"`
}

// PatientService reads and removes patients.
type PatientService interface {
	List(ctx context.Context, q ListQuery) (*Page[Patient], error)
	Get(ctx context.Context, id string) (*Patient, error)
	Delete(ctx context.Context, id string) (*MutationResult, error)
}
