package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromName(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		id1 := IDFromName("California")
		id2 := IDFromName("California")
		assert.Equal(t, id1, id2)
	})

	t.Run("different names produce different IDs", func(t *testing.T) {
		id1 := IDFromName("California")
		id2 := IDFromName("Nevada")
		assert.NotEqual(t, id1, id2)
	})

	t.Run("case sensitive", func(t *testing.T) {
		assert.NotEqual(t, IDFromName("california"), IDFromName("California"))
	})

	t.Run("empty name produces stable ID", func(t *testing.T) {
		assert.Equal(t, IDFromName(""), IDFromName(""))
	})
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from DocumentStatus
		to   DocumentStatus
		want bool
	}{
		{"processing to completed", StatusProcessing, StatusCompleted, true},
		{"processing to failed", StatusProcessing, StatusFailed, true},
		{"processing to processing", StatusProcessing, StatusProcessing, false},
		{"completed to processing", StatusCompleted, StatusProcessing, false},
		{"completed to failed", StatusCompleted, StatusFailed, false},
		{"failed to completed", StatusFailed, StatusCompleted, false},
		{"failed to processing", StatusFailed, StatusProcessing, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanTransition(tc.from, tc.to))
		})
	}
}

func TestFactCategories(t *testing.T) {
	t.Run("taxonomy has exactly eight values", func(t *testing.T) {
		assert.Len(t, FactCategories, 8)
	})

	t.Run("persisted values match the fixed taxonomy", func(t *testing.T) {
		expected := []string{
			"modality",
			"consent",
			"in_person",
			"provider_eligibility",
			"site_eligibility",
			"billing",
			"documentation",
			"prescribing",
		}
		for i, c := range FactCategories {
			assert.Equal(t, expected[i], string(c))
		}
	})

	t.Run("all taxonomy values are valid", func(t *testing.T) {
		for _, c := range FactCategories {
			assert.True(t, IsValidFactCategory(c))
		}
	})

	t.Run("unknown category is invalid", func(t *testing.T) {
		assert.False(t, IsValidFactCategory("telemetry"))
		assert.False(t, IsValidFactCategory(""))
	})
}
