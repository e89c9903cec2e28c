package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"intake-assistant/backend/internal/service"
)

func TestIsInformationSeeking(t *testing.T) {
	testCases := []struct {
		message  string
		expected bool
	}{
		{"Do you take Aetna?", true},
		{"Is my insurance accepted?", true},
		{"What's the copay for a first visit?", true},
		{"Can I book an appointment next week?", true},
		{"Any availability on Tuesday?", true},
		{"I think I need a psychiatrist for medication", true},
		{"Do you offer telehealth?", true},
		{"Who are your therapists?", true},
		{"I've been feeling really down lately", false},
		{"hello", false},
		{"", false},
		// stems only match at a word start, short words must match whole
		{"that was discovered yesterday", false},
		{"feeling billowy", false},
		{"what are your fees", true},
	}

	for _, tc := range testCases {
		t.Run(tc.message, func(t *testing.T) {
			assert.Equal(t, tc.expected, service.IsInformationSeeking(tc.message))
		})
	}
}
