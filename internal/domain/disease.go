package domain

import (
	"context"
	"strings"
)

// Disease is a monitored disease and its monitoring windows in days.
// swagger:model Disease
type Disease struct {
	Name                   string `json:"name"`
	InfectedMonitoringDays int    `json:"infected_Monitoring_Days"`
	SuspectMonitoringDays  int    `json:"suspect_Monitoring_Days"`
}

// Validate checks a disease before it is created or updated.
func (d *Disease) Validate() []string {
	var problems []string
	if strings.TrimSpace(d.Name) == "" {
		problems = append(problems, "name is required")
	}
	if d.InfectedMonitoringDays <= 0 {
		problems = append(problems, "infected_Monitoring_Days must be positive")
	}
	if d.SuspectMonitoringDays <= 0 {
		problems = append(problems, "suspect_Monitoring_Days must be positive")
	}
	return problems
}

// DiseaseService manages diseases. Update addresses the disease by its current name.
type DiseaseService interface {
	List(ctx context.Context, q ListQuery) (*Page[Disease], error)
	Create(ctx context.Context, d *Disease) (*MutationResult, error)
	Update(ctx context.Context, name string, d *Disease) (*MutationResult, error)
	Delete(ctx context.Context, name string) (*MutationResult, error)
}
