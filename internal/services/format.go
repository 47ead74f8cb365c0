package services

import (
	"slices"
	"strings"
	"time"

	"monipaep/internal/domain"
)

// displayZone is Brasília time. Brazil has not observed daylight saving since 2019.
var displayZone = time.FixedZone("BRT", -3*60*60)

var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// parseTimestamp reads zone-less timestamps as Brasília time.
func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, displayZone); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// formatDate renders an API timestamp as dd/MM/yyyy. Unparseable input is returned as is.
func formatDate(s string) string {
	t, ok := parseTimestamp(s)
	if !ok {
		return s
	}
	return t.In(displayZone).Format("02/01/2006")
}

// formatDateTime renders an API timestamp as "dd/MM/yyyy às HH:mm".
func formatDateTime(s string) string {
	t, ok := parseTimestamp(s)
	if !ok {
		return s
	}
	return t.In(displayZone).Format("02/01/2006 às 15:04")
}

// checkFilter rejects filters on fields the list does not support. An empty
// value means no filter.
func checkFilter(f domain.Filter, allowed []string) error {
	if strings.TrimSpace(f.Value) == "" {
		return nil
	}
	if !slices.Contains(allowed, f.Field) {
		return domain.NewValidationError([]string{"unsupported filter " + f.Field + "; expected one of " + strings.Join(allowed, ", ")})
	}
	return nil
}

func validate(v interface{ Validate() []string }) error {
	return domain.NewValidationError(v.Validate())
}
