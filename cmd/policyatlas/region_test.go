package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegionFromFilename(t *testing.T) {
	tests := []struct {
		fileName string
		wantName string
		wantCode string
	}{
		{"CCHP Alabama Telehealth Laws Report, 07-18-2025.pdf", "Alabama", "AL"},
		{"CCHP New Mexico Telehealth Laws Report, 07-18-2025.pdf", "New Mexico", "NM"},
		{"CCHP District of Columbia Telehealth Laws Report.pdf", "District of Columbia", "DC"},
		{"cchp texas telehealth laws.pdf", "texas", "TX"},
		{"quarterly-report.pdf", "Unknown", "UN"},
		{"", "Unknown", "UN"},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			name, code := regionFromFilename(tt.fileName)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestRegionAbbreviationFallback(t *testing.T) {
	// Names outside the postal table fall back to initials, capped at 3.
	assert.Equal(t, "NT", regionAbbreviation("Northern Territory"))
	assert.Equal(t, "SAB", regionAbbreviation("Some Area Beyond Counting"))
	assert.Equal(t, "UN", regionAbbreviation("   "))
}
