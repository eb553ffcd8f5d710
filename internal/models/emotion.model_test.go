package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfidenceIntensity(t *testing.T) {
	tests := []struct {
		confidence float64
		expected   string
	}{
		{0.95, "Very High"},
		{0.8, "Very High"},
		{0.79, "High"},
		{0.6, "High"},
		{0.5, "Medium"},
		{0.4, "Medium"},
		{0.3, "Low"},
		{0.2, "Low"},
		{0.1, "Very Low"},
		{0, "Very Low"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, ConfidenceIntensity(test.confidence),
			"confidence %.2f", test.confidence)
	}
}
