package domain

import (
	"context"
	"strings"
)

// Symptom is a symptom patients can report.
// swagger:model Symptom
type Symptom struct {
	Symptom string `json:"symptom"`
}

// Validate checks a symptom before it is created or renamed.
func (s *Symptom) Validate() []string {
	if strings.TrimSpace(s.Symptom) == "" {
		return []string{"symptom is required"}
	}
	return nil
}

// SymptomService manages symptoms. Update renames the symptom called name.
type SymptomService interface {
	List(ctx context.Context, q ListQuery) (*Page[Symptom], error)
	Create(ctx context.Context, s *Symptom) (*MutationResult, error)
	Update(ctx context.Context, name string, s *Symptom) (*MutationResult, error)
	Delete(ctx context.Context, name string) (*MutationResult, error)
}
