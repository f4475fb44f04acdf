package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain name unchanged",
			input:    "LeBron James",
			expected: "LeBron James",
		},
		{
			name:     "diacritics folded",
			input:    "José Núñez",
			expected: "Jose Nunez",
		},
		{
			name:     "whitespace collapsed",
			input:    "  Luka   Doncic  ",
			expected: "Luka Doncic",
		},
		{
			name:     "punctuation preserved",
			input:    "O'Neal Jr.",
			expected: "O'Neal Jr.",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.input))
		})
	}
}

func TestComparableName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercased",
			input:    "LeBron James",
			expected: "lebron james",
		},
		{
			name:     "punctuation stripped",
			input:    "O'Neal Jr.",
			expected: "oneal jr",
		},
		{
			name:     "accented and plain forms agree",
			input:    "José Núñez",
			expected: "jose nunez",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComparableName(tt.input))
		})
	}
}

func TestComparableNameMatchesAccentVariants(t *testing.T) {
	assert.Equal(t, ComparableName("Jose Nunez"), ComparableName("José Núñez"))
	assert.Equal(t, ComparableName("Luka Doncic"), ComparableName("Luka Dončić"))
}

func TestShortHash(t *testing.T) {
	hash := ShortHash("Player A|Player B")
	require.Len(t, hash, ShortHashLength)

	// Deterministic and input-sensitive
	assert.Equal(t, hash, ShortHash("Player A|Player B"))
	assert.NotEqual(t, hash, ShortHash("Player A|Player C"))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sep      string
		expected string
	}{
		{
			name:     "spaces become separator",
			input:    "My Contest Export",
			sep:      "_",
			expected: "my_contest_export",
		},
		{
			name:     "punctuation dropped before joining",
			input:    "NBA $5 Double-Up!",
			sep:      "-",
			expected: "nba-5-doubleup",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input, tt.sep))
		})
	}
}
