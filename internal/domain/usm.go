package domain

import (
	"context"
	"strings"
)

// USM is a health unit (unidade de saúde).
// swagger:model USM
type USM struct {
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Neighborhood string  `json:"neighborhood"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

// Validate checks a health unit before it is created or updated.
func (u *USM) Validate() []string {
	var problems []string
	if strings.TrimSpace(u.Name) == "" {
		problems = append(problems, "name is required")
	}
	if strings.TrimSpace(u.Address) == "" {
		problems = append(problems, "address is required")
	}
	if strings.TrimSpace(u.Neighborhood) == "" {
		problems = append(problems, "neighborhood is required")
	}
	if u.Latitude < -90 || u.Latitude > 90 {
		problems = append(problems, "latitude out of range")
	}
	if u.Longitude < -180 || u.Longitude > 180 {
		problems = append(problems, "longitude out of range")
	}
	return problems
}

// USMService manages health units. Update addresses the unit by its current name.
type USMService interface {
	List(ctx context.Context, q ListQuery) (*Page[USM], error)
	Create(ctx context.Context, u *USM) (*MutationResult, error)
	Update(ctx context.Context, name string, u *USM) (*MutationResult, error)
	Delete(ctx context.Context, name string) (*MutationResult, error)
}
