package iopg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRestoreStatement(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "typical search_path list",
			input:    `"$user", public`,
			expected: `SET search_path TO "$user", public`,
		},
		{
			name:     "single schema",
			input:    "app",
			expected: "SET search_path TO app",
		},
		{
			name:     "empty capture",
			input:    "",
			expected: "SET search_path TO ''",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, restoreStatement(tt.input))
		})
	}
}
