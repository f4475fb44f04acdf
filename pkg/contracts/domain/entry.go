package domain

// LineupSlot is one (roster slot, player) pair from a parsed lineup string.
// Order within an Entry follows the order the slots appeared in the export.
type LineupSlot struct {
	Slot   string `json:"slot" csv:"Slot"`
	Player string `json:"player" csv:"Player"`
}

// Entry represents one contestant's submitted lineup plus its result
// metadata. An Entry is immutable once built from a standings row; all
// derived fields (canonical key, dupe count, percentile, salary
// aggregates) are filled during ingestion and never mutated afterwards.
type Entry struct {
	EntryID       int64    `json:"entry_id" csv:"EntryID"`
	Rank          *int     `json:"rank" csv:"Rank"`
	Points        *float64 `json:"points" csv:"Points"`
	TimeRemaining string   `json:"time_remaining" csv:"TimeRemaining"`

	EntryName   string `json:"entry_name" csv:"EntryName"`
	Username    string `json:"username" csv:"Username"`
	EntriesUsed int    `json:"entries_used" csv:"EntriesUsed"`
	EntriesMax  int    `json:"entries_max" csv:"EntriesMax"`

	// UserTotalLineups is the number of distinct entries the same user
	// submitted to this contest.
	UserTotalLineups int `json:"user_total_lineups" csv:"UserTotalLineups"`

	LineupRaw string       `json:"lineup_raw" csv:"LineupRaw"`
	Lineup    []LineupSlot `json:"lineup" csv:"Lineup"`

	// CanonicalKey is the sorted, duplicate-collapsed player set joined
	// with "|": a slot-independent identity of the lineup.
	CanonicalKey  string `json:"canonical_lineup_key" csv:"CanonicalKey"`
	CanonicalHash string `json:"canonical_hash" csv:"CanonicalHash"`

	// DupeCount is the exact number of entries sharing CanonicalKey,
	// including this one. Always >= 1.
	DupeCount int `json:"dupe_count" csv:"DupeCount"`

	// Percentile is derived from Rank over the contest size; nil when
	// the rank could not be parsed.
	Percentile *float64 `json:"percentile" csv:"Percentile"`

	// Salary aggregates cover matched players only. All four are nil
	// when no lineup player matched the salary sheet.
	SalarySum     *float64 `json:"salary_sum" csv:"SalarySum"`
	SalaryAvg     *float64 `json:"salary_avg" csv:"SalaryAvg"`
	SalaryMin     *float64 `json:"salary_min" csv:"SalaryMin"`
	SalaryMax     *float64 `json:"salary_max" csv:"SalaryMax"`
	SalaryMissing int      `json:"salary_missing_count" csv:"SalaryMissingCount"`
}

// Players returns the lineup player names in slot order, duplicates kept.
func (e Entry) Players() []string {
	players := make([]string, 0, len(e.Lineup))
	for _, pair := range e.Lineup {
		players = append(players, pair.Player)
	}
	return players
}

// Slots returns the roster slot names in lineup order.
func (e Entry) Slots() []string {
	slots := make([]string, 0, len(e.Lineup))
	for _, pair := range e.Lineup {
		slots = append(slots, pair.Slot)
	}
	return slots
}

// IsValid checks basic entry invariants after ingestion.
func (e Entry) IsValid() bool {
	return e.EntryID > 0 && e.DupeCount >= 1 && len(e.Lineup) > 0 &&
		e.SalaryMissing >= 0 && e.SalaryMissing <= len(e.Lineup)
}
