package services

import (
	"context"
	"fmt"

	"monipaep/internal/domain"
)

var diseaseFilters = []string{"name"}

type diseaseService struct {
	resolver domain.ClientResolver
}

// NewDiseaseService returns a DiseaseService calling the API through resolver.
func NewDiseaseService(resolver domain.ClientResolver) domain.DiseaseService {
	return &diseaseService{resolver: resolver}
}

func (s *diseaseService) List(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.Disease], error) {
	if err := checkFilter(q.Filter, diseaseFilters); err != nil {
		return nil, err
	}
	client, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Diseases []domain.Disease `json:"diseases"`
		Total    int              `json:"totalDiseases"`
	}
	if err := client.Get(ctx, "/disease", q.Values(), &resp); err != nil {
		return nil, fmt.Errorf("failed to list diseases: %w", err)
	}
	return &domain.Page[domain.Disease]{Items: resp.Diseases, Total: resp.Total}, nil
}

func (s *diseaseService) Create(ctx context.Context, d *domain.Disease) (*domain.MutationResult, error) {
	if err := validate(d); err != nil {
		return nil, err
	}
	return mutate(ctx, s.resolver, "create disease", func(c domain.APIClient, out *domain.MutationResult) error {
		return c.Post(ctx, "/disease/", d, out)
	})
}

func (s *diseaseService) Update(ctx context.Context, name string, d *domain.Disease) (*domain.MutationResult, error) {
	if err := validate(d); err != nil {
		return nil, err
	}
	return mutate(ctx, s.resolver, "update disease", func(c domain.APIClient, out *domain.MutationResult) error {
		return c.Put(ctx, "/disease/"+domain.PathEscape(name), d, out)
	})
}

func (s *diseaseService) Delete(ctx context.Context, name string) (*domain.MutationResult, error) {
	return mutate(ctx, s.resolver, "delete disease", func(c domain.APIClient, out *domain.MutationResult) error {
		return c.Delete(ctx, "/disease/"+domain.PathEscape(name), out)
	})
}

// mutate resolves the session client and runs call, wrapping failures as "failed to <action>".
func mutate(ctx context.Context, resolver domain.ClientResolver, action string, call func(domain.APIClient, *domain.MutationResult) error) (*domain.MutationResult, error) {
	client, err := resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	var res domain.MutationResult
	if err := call(client, &res); err != nil {
		return nil, fmt.Errorf("failed to %s: %w", action, err)
	}
	return &res, nil
}
