package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/123jlee/dfsanalyzer/pkg/contracts/domain"
)

func TestIsLineupSlot(t *testing.T) {
	for _, slot := range LineupSlots {
		assert.True(t, IsLineupSlot(slot), slot)
	}

	assert.True(t, IsLineupSlot("pg"), "matching is case-insensitive")
	assert.False(t, IsLineupSlot("PGX"))
	assert.False(t, IsLineupSlot("James"))
	assert.False(t, IsLineupSlot(""))
}

func TestParseLineup(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []domain.LineupSlot
	}{
		{
			name:  "full lineup",
			input: "PG Stephen Curry SG Devin Booker SF LeBron James PF Anthony Davis C Nikola Jokic G Jalen Brunson F Jayson Tatum UTIL Luka Doncic",
			expected: []domain.LineupSlot{
				{Slot: "PG", Player: "Stephen Curry"},
				{Slot: "SG", Player: "Devin Booker"},
				{Slot: "SF", Player: "LeBron James"},
				{Slot: "PF", Player: "Anthony Davis"},
				{Slot: "C", Player: "Nikola Jokic"},
				{Slot: "G", Player: "Jalen Brunson"},
				{Slot: "F", Player: "Jayson Tatum"},
				{Slot: "UTIL", Player: "Luka Doncic"},
			},
		},
		{
			name:  "multi-word and suffixed names",
			input: "PG Shai Gilgeous-Alexander C Jaren Jackson Jr.",
			expected: []domain.LineupSlot{
				{Slot: "PG", Player: "Shai Gilgeous-Alexander"},
				{Slot: "C", Player: "Jaren Jackson Jr."},
			},
		},
		{
			name:  "tokens before the first slot are dropped",
			input: "garbage tokens PG Stephen Curry",
			expected: []domain.LineupSlot{
				{Slot: "PG", Player: "Stephen Curry"},
			},
		},
		{
			name:  "empty slot skipped",
			input: "PG SG Devin Booker",
			expected: []domain.LineupSlot{
				{Slot: "SG", Player: "Devin Booker"},
			},
		},
		{
			name:  "accented names normalized",
			input: "C José Núñez",
			expected: []domain.LineupSlot{
				{Slot: "C", Player: "Jose Nunez"},
			},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:     "no slot tokens",
			input:    "Stephen Curry Devin Booker",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLineup(tt.input))
		})
	}
}

func TestParseEntryName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected EntryName
	}{
		{
			name:     "bare username",
			input:    "sharkhunter",
			expected: EntryName{Username: "sharkhunter", EntriesUsed: 1, EntriesMax: 1},
		},
		{
			name:     "used and max",
			input:    "sharkhunter (3/20)",
			expected: EntryName{Username: "sharkhunter", EntriesUsed: 3, EntriesMax: 20},
		},
		{
			name:     "used only defaults max to used",
			input:    "sharkhunter (5)",
			expected: EntryName{Username: "sharkhunter", EntriesUsed: 5, EntriesMax: 5},
		},
		{
			name:     "used 1 keeps max 1",
			input:    "sharkhunter (1)",
			expected: EntryName{Username: "sharkhunter", EntriesUsed: 1, EntriesMax: 1},
		},
		{
			name:     "spaces around the counter",
			input:    "shark hunter  (2 / 150)",
			expected: EntryName{Username: "shark hunter", EntriesUsed: 2, EntriesMax: 150},
		},
		{
			name:     "empty input",
			input:    "",
			expected: EntryName{Username: "", EntriesUsed: 1, EntriesMax: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseEntryName(tt.input))
		})
	}
}

func TestParseGameInfo(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected domain.GameInfo
	}{
		{
			name:     "standard game info",
			input:    "BOS@LAL 7:00PM ET",
			expected: domain.GameInfo{AwayTeam: "BOS", HomeTeam: "LAL", GameID: "BOS@LAL"},
		},
		{
			name:     "lowercase input uppercased",
			input:    "phi@mia 07:30pm et",
			expected: domain.GameInfo{AwayTeam: "PHI", HomeTeam: "MIA", GameID: "PHI@MIA"},
		},
		{
			name:     "two-letter abbreviations",
			input:    "NY@GS 10:00PM ET",
			expected: domain.GameInfo{AwayTeam: "NY", HomeTeam: "GS", GameID: "NY@GS"},
		},
		{
			name:     "no matchup yields zero value",
			input:    "Postponed",
			expected: domain.GameInfo{},
		},
		{
			name:     "empty input",
			input:    "",
			expected: domain.GameInfo{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseGameInfo(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.expected == (domain.GameInfo{}), got.IsZero())
		})
	}
}
