package services

import (
	"context"
	"fmt"
	"net/url"

	"golang.org/x/sync/errgroup"

	"monipaep/internal/domain"
)

var systemUserFilters = []string{"name"}

type systemUserService struct {
	resolver  domain.ClientResolver
	endpoints domain.AuthEndpoints
}

// NewSystemUserService returns a SystemUserService calling the API through resolver.
// Sign-up needs no session and goes through endpoints.
func NewSystemUserService(resolver domain.ClientResolver, endpoints domain.AuthEndpoints) domain.SystemUserService {
	return &systemUserService{resolver: resolver, endpoints: endpoints}
}

func (s *systemUserService) List(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.SystemUserAccess], error) {
	if err := checkFilter(q.Filter, systemUserFilters); err != nil {
		return nil, err
	}
	client, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Users []domain.SystemUserAccess `json:"systemUsers"`
		Total int                       `json:"totalSystemUsers"`
	}
	if err := client.Get(ctx, "/permissions", q.Values(), &resp); err != nil {
		return nil, fmt.Errorf("failed to list system users: %w", err)
	}
	return &domain.Page[domain.SystemUserAccess]{Items: resp.Users, Total: resp.Total}, nil
}

func (s *systemUserService) Get(ctx context.Context, id string) (*domain.SystemUser, error) {
	client, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	var users []domain.SystemUser
	if err := client.Get(ctx, "/systemuser", url.Values{"id": {id}}, &users); err != nil {
		return nil, fmt.Errorf("failed to get system user: %w", err)
	}
	if len(users) == 0 {
		return nil, domain.ErrNotFound
	}
	u := users[0]
	u.CPFFormatted = domain.FormatCPF(u.CPF)
	u.DepartmentName = domain.DepartmentName(u.Department)
	u.CreatedAtFormatted = formatDateTime(u.CreatedAt)
	return &u, nil
}

// Update sends the department and permission changes concurrently.
// The returned message is the department update's when both are sent.
func (s *systemUserService) Update(ctx context.Context, id string, u *domain.SystemUserUpdate) (*domain.MutationResult, error) {
	if err := validate(u); err != nil {
		return nil, err
	}
	client, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	var department, permissions domain.MutationResult
	g, gctx := errgroup.WithContext(ctx)
	if u.Department != "" {
		g.Go(func() error {
			body := map[string]string{"department": u.Department}
			if err := client.Put(gctx, "/systemuser/"+domain.PathEscape(id), body, &department); err != nil {
				return fmt.Errorf("failed to update department: %w", err)
			}
			return nil
		})
	}
	if u.Permissions != nil && !u.Permissions.Empty() {
		g.Go(func() error {
			if err := client.Put(gctx, "/permissions/"+domain.PathEscape(id), u.Permissions, &permissions); err != nil {
				return fmt.Errorf("failed to update permissions: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if u.Department != "" {
		return &department, nil
	}
	return &permissions, nil
}

func (s *systemUserService) UpdateDetails(ctx context.Context, id string, u *domain.SystemUserDetailsUpdate) (*domain.MutationResult, error) {
	if err := validate(u); err != nil {
		return nil, err
	}
	return mutate(ctx, s.resolver, "update system user", func(c domain.APIClient, out *domain.MutationResult) error {
		return c.Put(ctx, "/systemuser/"+domain.PathEscape(id), u, out)
	})
}

func (s *systemUserService) ChangePassword(ctx context.Context, id string, p *domain.PasswordChange) (*domain.MutationResult, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	return mutate(ctx, s.resolver, "change password", func(c domain.APIClient, out *domain.MutationResult) error {
		return c.Put(ctx, "/systemuser/password/"+domain.PathEscape(id), p, out)
	})
}

func (s *systemUserService) Delete(ctx context.Context, id string) (*domain.MutationResult, error) {
	return mutate(ctx, s.resolver, "delete system user", func(c domain.APIClient, out *domain.MutationResult) error {
		return c.Delete(ctx, "/systemuser/"+domain.PathEscape(id), out)
	})
}

func (s *systemUserService) SignUp(ctx context.Context, su *domain.SignUp) (*domain.MutationResult, error) {
	if err := validate(su); err != nil {
		return nil, err
	}
	res, err := s.endpoints.SignUp(ctx, su)
	if err != nil {
		return nil, fmt.Errorf("failed to sign up: %w", err)
	}
	return res, nil
}
