package services

import (
	"context"
	"fmt"

	"monipaep/internal/domain"
)

var usmFilters = []string{"name"}

type usmService struct {
	resolver domain.ClientResolver
}

// NewUSMService returns a USMService calling the API through resolver.
func NewUSMService(resolver domain.ClientResolver) domain.USMService {
	return &usmService{resolver: resolver}
}

func (s *usmService) List(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.USM], error) {
	if err := checkFilter(q.Filter, usmFilters); err != nil {
		return nil, err
	}
	client, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	var resp struct {
		USMs  []domain.USM `json:"usms"`
		Total int          `json:"totalUsms"`
	}
	if err := client.Get(ctx, "/usm", q.Values(), &resp); err != nil {
		return nil, fmt.Errorf("failed to list health units: %w", err)
	}
	return &domain.Page[domain.USM]{Items: resp.USMs, Total: resp.Total}, nil
}

func (s *usmService) Create(ctx context.Context, u *domain.USM) (*domain.MutationResult, error) {
	if err := validate(u); err != nil {
		return nil, err
	}
	return mutate(ctx, s.resolver, "create health unit", func(c domain.APIClient, out *domain.MutationResult) error {
		return c.Post(ctx, "/usm/", u, out)
	})
}

func (s *usmService) Update(ctx context.Context, name string, u *domain.USM) (*domain.MutationResult, error) {
	if err := validate(u); err != nil {
		return nil, err
	}
	return mutate(ctx, s.resolver, "update health unit", func(c domain.APIClient, out *domain.MutationResult) error {
		return c.Put(ctx, "/usm/"+domain.PathEscape(name), u, out)
	})
}

func (s *usmService) Delete(ctx context.Context, name string) (*domain.MutationResult, error) {
	return mutate(ctx, s.resolver, "delete health unit", func(c domain.APIClient, out *domain.MutationResult) error {
		return c.Delete(ctx, "/usm/"+domain.PathEscape(name), out)
	})
}
