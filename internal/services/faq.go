package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"monipaep/internal/domain"
)

type faqService struct {
	resolver  domain.ClientResolver
	sanitizer TextSanitizer
}

// NewFAQService returns a FAQService calling the API through resolver.
func NewFAQService(resolver domain.ClientResolver, sanitizer TextSanitizer) domain.FAQService {
	return &faqService{resolver: resolver, sanitizer: sanitizer}
}

func (s *faqService) List(ctx context.Context, question string) ([]domain.FAQ, error) {
	client, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	query := url.Values{}
	if q := strings.TrimSpace(question); q != "" {
		query.Set("question", q)
	}
	var resp struct {
		FAQs []domain.FAQ `json:"faqs"`
	}
	if err := client.Get(ctx, "/faq", query, &resp); err != nil {
		return nil, fmt.Errorf("failed to list faqs: %w", err)
	}
	return resp.FAQs, nil
}

func (s *faqService) clean(f *domain.FAQ) (*domain.FAQ, error) {
	clean := &domain.FAQ{
		Question: s.sanitizer.Sanitize(f.Question),
		Answer:   s.sanitizer.Sanitize(f.Answer),
	}
	if err := validate(clean); err != nil {
		return nil, err
	}
	return clean, nil
}

func (s *faqService) Create(ctx context.Context, f *domain.FAQ) (*domain.MutationResult, error) {
	clean, err := s.clean(f)
	if err != nil {
		return nil, err
	}
	return mutate(ctx, s.resolver, "create faq", func(c domain.APIClient, out *domain.MutationResult) error {
		return c.Post(ctx, "/faq/", clean, out)
	})
}

func (s *faqService) Update(ctx context.Context, id string, f *domain.FAQ) (*domain.MutationResult, error) {
	clean, err := s.clean(f)
	if err != nil {
		return nil, err
	}
	return mutate(ctx, s.resolver, "update faq", func(c domain.APIClient, out *domain.MutationResult) error {
		return c.Put(ctx, "/faq/"+domain.PathEscape(id), clean, out)
	})
}

func (s *faqService) Delete(ctx context.Context, id string) (*domain.MutationResult, error) {
	return mutate(ctx, s.resolver, "delete faq", func(c domain.APIClient, out *domain.MutationResult) error {
		return c.Delete(ctx, "/faq/"+domain.PathEscape(id), out)
	})
}
