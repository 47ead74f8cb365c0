package domain

import (
	"context"
	"strings"
)

// FAQ is a question answered in the patient app.
// swagger:model FAQ
type FAQ struct {
	ID       string `json:"id,omitempty"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Validate requires both question and answer.
func (f *FAQ) Validate() []string {
	var problems []string
	if strings.TrimSpace(f.Question) == "" {
		problems = append(problems, "question is required")
	}
	if strings.TrimSpace(f.Answer) == "" {
		problems = append(problems, "answer is required")
	}
	return problems
}

// FAQService manages FAQs. The list is not paginated by the API.
type FAQService interface {
	List(ctx context.Context, question string) ([]FAQ, error)
	Create(ctx context.Context, f *FAQ) (*MutationResult, error)
	Update(ctx context.Context, id string, f *FAQ) (*MutationResult, error)
	Delete(ctx context.Context, id string) (*MutationResult, error)
}
