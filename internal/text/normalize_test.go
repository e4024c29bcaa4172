package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"simple word", "onion", "ONION"},
		{"spaces removed", "onion man", "ONIONMAN"},
		{"already canonical", "ONIONMAN", "ONIONMAN"},
		{"punctuation stripped", "o'nion-man!", "ONIONMAN"},
		{"digits kept", "3rd age", "3RDAGE"},
		{"mixed case and tabs", "  OnIoN\tMan  ", "ONIONMAN"},
		{"accents fold to ascii", "Café au lait", "CAFEAULAIT"},
		{"only punctuation", "?!...", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"", "onion man", "2 Coal, 8 partyhats", "Café", "A1 b2 C3"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "blue party hat", CollapseSpaces("  blue   party\that "))
	assert.Equal(t, "", CollapseSpaces("   "))
}
