package domain

import (
	"context"
	"strings"
)

// HealthProtocol is guidance shown to patients of a disease.
// swagger:model HealthProtocol
type HealthProtocol struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// NewHealthProtocol is the body of a health protocol creation.
type NewHealthProtocol struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate requires both fields.
func (p *NewHealthProtocol) Validate() []string {
	var problems []string
	if strings.TrimSpace(p.Title) == "" {
		problems = append(problems, "title is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		problems = append(problems, "description is required")
	}
	return problems
}

// HealthProtocolPatch carries only the fields that changed.
type HealthProtocolPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Validate rejects empty patches and blank values.
func (p *HealthProtocolPatch) Validate() []string {
	if p.Title == nil && p.Description == nil {
		return []string{"no field changed"}
	}
	var problems []string
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		problems = append(problems, "title must not be empty")
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		problems = append(problems, "description must not be empty")
	}
	return problems
}

// AssignedHealthProtocol links a disease to one of its health protocols.
// swagger:model AssignedHealthProtocol
type AssignedHealthProtocol struct {
	DiseaseName    string         `json:"disease_name"`
	HealthProtocol HealthProtocol `json:"healthprotocol"`
}

// HealthProtocolAssignment is the body of an assignment creation.
type HealthProtocolAssignment struct {
	DiseaseName      string `json:"disease_name"`
	HealthProtocolID string `json:"healthprotocol_id"`
}

// Validate requires both ends of the link.
func (a *HealthProtocolAssignment) Validate() []string {
	var problems []string
	if strings.TrimSpace(a.DiseaseName) == "" {
		problems = append(problems, "disease_name is required")
	}
	if strings.TrimSpace(a.HealthProtocolID) == "" {
		problems = append(problems, "healthprotocol_id is required")
	}
	return problems
}

// HealthProtocolService manages health protocols and their disease assignments.
type HealthProtocolService interface {
	List(ctx context.Context, q ListQuery) (*Page[HealthProtocol], error)
	Create(ctx context.Context, p *NewHealthProtocol) (*MutationResult, error)
	Update(ctx context.Context, id string, patch *HealthProtocolPatch) (*MutationResult, error)

	ListAssignments(ctx context.Context, q ListQuery) (*Page[AssignedHealthProtocol], error)
	Assign(ctx context.Context, a *HealthProtocolAssignment) (*MutationResult, error)
	Unassign(ctx context.Context, diseaseName, healthProtocolID string) (*MutationResult, error)
}
