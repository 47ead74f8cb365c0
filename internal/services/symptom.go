package services

import (
	"context"
	"fmt"

	"monipaep/internal/domain"
)

var symptomFilters = []string{"symptom"}

type symptomService struct {
	resolver domain.ClientResolver
}

// NewSymptomService returns a SymptomService calling the API through resolver.
func NewSymptomService(resolver domain.ClientResolver) domain.SymptomService {
	return &symptomService{resolver: resolver}
}

func (s *symptomService) List(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.Symptom], error) {
	if err := checkFilter(q.Filter, symptomFilters); err != nil {
		return nil, err
	}
	client, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Symptoms []domain.Symptom `json:"symptoms"`
		Total    int              `json:"totalSymptoms"`
	}
	if err := client.Get(ctx, "/symptom", q.Values(), &resp); err != nil {
		return nil, fmt.Errorf("failed to list symptoms: %w", err)
	}
	return &domain.Page[domain.Symptom]{Items: resp.Symptoms, Total: resp.Total}, nil
}

func (s *symptomService) Create(ctx context.Context, sym *domain.Symptom) (*domain.MutationResult, error) {
	if err := validate(sym); err != nil {
		return nil, err
	}
	return mutate(ctx, s.resolver, "create symptom", func(c domain.APIClient, out *domain.MutationResult) error {
		return c.Post(ctx, "/symptom/", sym, out)
	})
}

func (s *symptomService) Update(ctx context.Context, name string, sym *domain.Symptom) (*domain.MutationResult, error) {
	if err := validate(sym); err != nil {
		return nil, err
	}
	return mutate(ctx, s.resolver, "update symptom", func(c domain.APIClient, out *domain.MutationResult) error {
		return c.Put(ctx, "/symptom/"+domain.PathEscape(name), sym, out)
	})
}

func (s *symptomService) Delete(ctx context.Context, name string) (*domain.MutationResult, error) {
	return mutate(ctx, s.resolver, "delete symptom", func(c domain.APIClient, out *domain.MutationResult) error {
		return c.Delete(ctx, "/symptom/"+domain.PathEscape(name), out)
	})
}
