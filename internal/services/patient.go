package services

import (
	"context"
	"fmt"
	"net/url"

	"monipaep/internal/domain"
)

var patientFilters = []string{"name", "cpf", "gender", "neighborhood", "status"}

type patientService struct {
	resolver domain.ClientResolver
}

// NewPatientService returns a PatientService calling the API through resolver.
func NewPatientService(resolver domain.ClientResolver) domain.PatientService {
	return &patientService{resolver: resolver}
}

type patientsResponse struct {
	Patients []domain.Patient `json:"patients"`
	Total    int              `json:"totalPatients"`
}

func (s *patientService) List(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.Patient], error) {
	if err := checkFilter(q.Filter, patientFilters); err != nil {
		return nil, err
	}
	client, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	var resp patientsResponse
	if err := client.Get(ctx, "/patients", q.Values(), &resp); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	for i := range resp.Patients {
		formatPatient(&resp.Patients[i])
	}
	return &domain.Page[domain.Patient]{Items: resp.Patients, Total: resp.Total}, nil
}

func (s *patientService) Get(ctx context.Context, id string) (*domain.Patient, error) {
	client, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	var resp patientsResponse
	if err := client.Get(ctx, "/patients", url.Values{"id": {id}}, &resp); err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	if len(resp.Patients) == 0 {
		return nil, domain.ErrNotFound
	}
	p := resp.Patients[0]
	formatPatient(&p)
	return &p, nil
}

func (s *patientService) Delete(ctx context.Context, id string) (*domain.MutationResult, error) {
	return mutate(ctx, s.resolver, "delete patient", func(c domain.APIClient, out *domain.MutationResult) error {
		return c.Delete(ctx, "/patients/"+domain.PathEscape(id), out)
	})
}

func formatPatient(p *domain.Patient) {
	p.CPFFormatted = domain.FormatCPF(p.CPF)
	p.BirthdateFormatted = formatDate(p.Birthdate)
	p.CreatedAtFormatted = formatDate(p.CreatedAt)
}
