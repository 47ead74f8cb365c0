package services

import (
	"context"
	"fmt"

	"monipaep/internal/domain"
)

var (
	healthProtocolFilters = []string{"title", "description"}
	assignmentFilters     = []string{"disease_name", "healthprotocol_title"}
)

// TextSanitizer strips markup from free text.
type TextSanitizer interface {
	Sanitize(s string) string
}

type healthProtocolService struct {
	resolver  domain.ClientResolver
	sanitizer TextSanitizer
}

// NewHealthProtocolService returns a HealthProtocolService calling the API through resolver.
// Titles and descriptions pass through sanitizer before they are sent.
func NewHealthProtocolService(resolver domain.ClientResolver, sanitizer TextSanitizer) domain.HealthProtocolService {
	return &healthProtocolService{resolver: resolver, sanitizer: sanitizer}
}

func (s *healthProtocolService) List(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.HealthProtocol], error) {
	if err := checkFilter(q.Filter, healthProtocolFilters); err != nil {
		return nil, err
	}
	client, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	var resp struct {
		HealthProtocols []domain.HealthProtocol `json:"healthProtocols"`
		Total           int                     `json:"totalHealthProtocols"`
	}
	if err := client.Get(ctx, "/healthprotocol", q.Values(), &resp); err != nil {
		return nil, fmt.Errorf("failed to list health protocols: %w", err)
	}
	return &domain.Page[domain.HealthProtocol]{Items: resp.HealthProtocols, Total: resp.Total}, nil
}

func (s *healthProtocolService) Create(ctx context.Context, p *domain.NewHealthProtocol) (*domain.MutationResult, error) {
	clean := domain.NewHealthProtocol{
		Title:       s.sanitizer.Sanitize(p.Title),
		Description: s.sanitizer.Sanitize(p.Description),
	}
	if err := validate(&clean); err != nil {
		return nil, err
	}
	return mutate(ctx, s.resolver, "create health protocol", func(c domain.APIClient, out *domain.MutationResult) error {
		return c.Post(ctx, "/healthprotocol/", clean, out)
	})
}

func (s *healthProtocolService) Update(ctx context.Context, id string, patch *domain.HealthProtocolPatch) (*domain.MutationResult, error) {
	clean := domain.HealthProtocolPatch{
		Title:       s.sanitizePtr(patch.Title),
		Description: s.sanitizePtr(patch.Description),
	}
	if err := validate(&clean); err != nil {
		return nil, err
	}
	return mutate(ctx, s.resolver, "update health protocol", func(c domain.APIClient, out *domain.MutationResult) error {
		return c.Put(ctx, "/healthprotocol/"+domain.PathEscape(id), clean, out)
	})
}

func (s *healthProtocolService) sanitizePtr(v *string) *string {
	if v == nil {
		return nil
	}
	clean := s.sanitizer.Sanitize(*v)
	return &clean
}

func (s *healthProtocolService) ListAssignments(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.AssignedHealthProtocol], error) {
	if err := checkFilter(q.Filter, assignmentFilters); err != nil {
		return nil, err
	}
	client, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Assigned []domain.AssignedHealthProtocol `json:"assignedHealthProtocols"`
		Total    int                             `json:"totalAssignedHealthProtocols"`
	}
	if err := client.Get(ctx, "/assignedhealthprotocol", q.Values(), &resp); err != nil {
		return nil, fmt.Errorf("failed to list health protocol assignments: %w", err)
	}
	return &domain.Page[domain.AssignedHealthProtocol]{Items: resp.Assigned, Total: resp.Total}, nil
}

func (s *healthProtocolService) Assign(ctx context.Context, a *domain.HealthProtocolAssignment) (*domain.MutationResult, error) {
	if err := validate(a); err != nil {
		return nil, err
	}
	return mutate(ctx, s.resolver, "assign health protocol", func(c domain.APIClient, out *domain.MutationResult) error {
		return c.Post(ctx, "/assignedhealthprotocol/", a, out)
	})
}

func (s *healthProtocolService) Unassign(ctx context.Context, diseaseName, healthProtocolID string) (*domain.MutationResult, error) {
	path := "/assignedhealthprotocol/" + domain.PathEscape(diseaseName) + "/" + domain.PathEscape(healthProtocolID)
	return mutate(ctx, s.resolver, "remove health protocol assignment", func(c domain.APIClient, out *domain.MutationResult) error {
		return c.Delete(ctx, path, out)
	})
}
