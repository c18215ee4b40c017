package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMoneroAddress(t *testing.T) {
	validStandard := "4" + strings.Repeat("A", 94)
	validSubaddress := "8" + strings.Repeat("z", 94)
	validIntegrated := "4" + strings.Repeat("A", 105)

	tests := []struct {
		name    string
		address string
		want    bool
	}{
		{
			name:    "Standard address",
			address: validStandard,
			want:    true,
		},
		{
			name:    "Subaddress",
			address: validSubaddress,
			want:    true,
		},
		{
			name:    "Integrated address length",
			address: validIntegrated,
			want:    true,
		},
		{
			name:    "Empty",
			address: "",
			want:    false,
		},
		{
			name:    "Wrong prefix",
			address: "1" + strings.Repeat("A", 94),
			want:    false,
		},
		{
			name:    "Wrong length",
			address: "4" + strings.Repeat("A", 50),
			want:    false,
		},
		{
			name:    "Non-base58 character",
			address: "4" + strings.Repeat("A", 93) + "0",
			want:    false,
		},
		{
			name:    "Ambiguous letter l rejected",
			address: "4" + strings.Repeat("A", 93) + "l",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMoneroAddress(tt.address))
		})
	}
}
