package services

import (
	"context"
	"fmt"
	"net/url"

	"monipaep/internal/domain"
)

var (
	occurrenceFilters        = []string{"patient_name", "disease_name", "status"}
	patientHistoryFilters    = []string{"disease_name", "status"}
	symptomOccurrenceFilters = []string{"patient_name"}
)

type occurrenceService struct {
	resolver domain.ClientResolver
}

// NewOccurrenceService returns an OccurrenceService calling the API through resolver.
func NewOccurrenceService(resolver domain.ClientResolver) domain.OccurrenceService {
	return &occurrenceService{resolver: resolver}
}

type diseaseOccurrencesResponse struct {
	Occurrences []domain.DiseaseOccurrence `json:"diseaseOccurrences"`
	Total       int                        `json:"totalDiseaseOccurrences"`
}

func (s *occurrenceService) List(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.DiseaseOccurrence], error) {
	if err := checkFilter(q.Filter, occurrenceFilters); err != nil {
		return nil, err
	}
	return s.list(ctx, q.Values())
}

func (s *occurrenceService) PatientHistory(ctx context.Context, patientID string, q domain.ListQuery) (*domain.Page[domain.DiseaseOccurrence], error) {
	if err := checkFilter(q.Filter, patientHistoryFilters); err != nil {
		return nil, err
	}
	values := q.Values()
	values.Set("patient_id", patientID)
	return s.list(ctx, values)
}

func (s *occurrenceService) list(ctx context.Context, values url.Values) (*domain.Page[domain.DiseaseOccurrence], error) {
	client, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	var resp diseaseOccurrencesResponse
	if err := client.Get(ctx, "/diseaseoccurrence", values, &resp); err != nil {
		return nil, fmt.Errorf("failed to list disease occurrences: %w", err)
	}
	for i := range resp.Occurrences {
		formatOccurrence(&resp.Occurrences[i], formatDate)
	}
	return &domain.Page[domain.DiseaseOccurrence]{Items: resp.Occurrences, Total: resp.Total}, nil
}

func (s *occurrenceService) Get(ctx context.Context, id string) (*domain.DiseaseOccurrenceDetails, error) {
	client, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	var details domain.DiseaseOccurrenceDetails
	if err := client.Get(ctx, "/diseaseoccurrence/"+domain.PathEscape(id), nil, &details); err != nil {
		return nil, fmt.Errorf("failed to get disease occurrence: %w", err)
	}
	formatOccurrence(&details.Occurrence, formatDateTime)
	for i := range details.Symptoms {
		details.Symptoms[i].RegisteredDateFormatted = formatDateTime(details.Symptoms[i].RegisteredDate)
	}
	for i := range details.MovementHistory {
		details.MovementHistory[i].DateFormatted = formatDate(details.MovementHistory[i].Date)
	}
	return &details, nil
}

func (s *occurrenceService) Create(ctx context.Context, o *domain.NewDiseaseOccurrence) (*domain.CreatedDiseaseOccurrences, error) {
	if err := validate(o); err != nil {
		return nil, err
	}
	client, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	var created domain.CreatedDiseaseOccurrences
	if err := client.Post(ctx, "/diseaseoccurrence", o, &created); err != nil {
		return nil, fmt.Errorf("failed to create disease occurrence: %w", err)
	}
	return &created, nil
}

func (s *occurrenceService) Update(ctx context.Context, id string, u *domain.DiseaseOccurrenceUpdate) (*domain.MutationResult, error) {
	if err := validate(u); err != nil {
		return nil, err
	}
	return mutate(ctx, s.resolver, "update disease occurrence", func(c domain.APIClient, out *domain.MutationResult) error {
		return c.Put(ctx, "/diseaseoccurrence/"+domain.PathEscape(id), u, out)
	})
}

func (s *occurrenceService) Delete(ctx context.Context, id string) (*domain.MutationResult, error) {
	return mutate(ctx, s.resolver, "delete disease occurrence", func(c domain.APIClient, out *domain.MutationResult) error {
		return c.Delete(ctx, "/diseaseoccurrence/"+domain.PathEscape(id), out)
	})
}

func (s *occurrenceService) UnassignedSymptoms(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.SymptomOccurrence], error) {
	if err := checkFilter(q.Filter, symptomOccurrenceFilters); err != nil {
		return nil, err
	}
	client, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Occurrences []domain.SymptomOccurrence `json:"symptomOccurrences"`
		Total       int                        `json:"totalSymptomOccurrences"`
	}
	if err := client.Get(ctx, "/symptomoccurrence/unassigned", q.Values(), &resp); err != nil {
		return nil, fmt.Errorf("failed to list unassigned symptoms: %w", err)
	}
	for i := range resp.Occurrences {
		resp.Occurrences[i].RegisteredDateFormatted = formatDateTime(resp.Occurrences[i].RegisteredDate)
	}
	return &domain.Page[domain.SymptomOccurrence]{Items: resp.Occurrences, Total: resp.Total}, nil
}

func (s *occurrenceService) PatientUnassignedSymptoms(ctx context.Context, patientID string) ([]domain.SymptomOccurrence, error) {
	client, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	var occurrences []domain.SymptomOccurrence
	query := url.Values{"patient_id": {patientID}, "unassigned": {"t"}}
	if err := client.Get(ctx, "/symptomoccurrence/", query, &occurrences); err != nil {
		return nil, fmt.Errorf("failed to list patient symptoms: %w", err)
	}
	for i := range occurrences {
		occurrences[i].RegisteredDateFormatted = formatDateTime(occurrences[i].RegisteredDate)
	}
	return occurrences, nil
}

func formatOccurrence(o *domain.DiseaseOccurrence, format func(string) string) {
	o.DateStartFormatted = format(o.DateStart)
	if o.DateEnd != nil {
		o.DateEndFormatted = format(*o.DateEnd)
	}
}
