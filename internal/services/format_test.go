package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"monipaep/internal/domain"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2022-03-01T15:00:00.000Z", "01/03/2022"},
		{"2022-03-01T02:00:00.000Z", "28/02/2022"},
		{"2021-12-25", "25/12/2021"},
		{"garbage", "garbage"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, formatDate(tt.in))
		})
	}
}

func TestFormatDateTime(t *testing.T) {
	assert.Equal(t, "01/03/2022 às 12:30", formatDateTime("2022-03-01T15:30:00Z"))
	assert.Equal(t, "01/03/2022 às 15:30", formatDateTime("2022-03-01T15:30:00-03:00"))
	assert.Equal(t, "x", formatDateTime("x"))
}

func TestCheckFilter(t *testing.T) {
	allowed := []string{"name", "cpf"}
	assert.NoError(t, checkFilter(domain.Filter{}, allowed))
	assert.NoError(t, checkFilter(domain.Filter{Field: "email", Value: "  "}, allowed))
	assert.NoError(t, checkFilter(domain.Filter{Field: "cpf", Value: "123"}, allowed))

	err := checkFilter(domain.Filter{Field: "email", Value: "a@b.c"}, allowed)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}
