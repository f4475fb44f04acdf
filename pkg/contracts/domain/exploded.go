package domain

// ExplodedRow is one (entry, roster slot) row of the join fact table.
// Salary/team/game enrichment fields come from the matched SalaryRecord
// and stay at their zero values when the player did not match.
type ExplodedRow struct {
	EntryID    int64    `json:"entry_id" csv:"EntryID"`
	Username   string   `json:"username" csv:"Username"`
	Rank       *int     `json:"rank" csv:"Rank"`
	Percentile *float64 `json:"percentile" csv:"Percentile"`
	Points     *float64 `json:"points" csv:"Points"`

	Player     string `json:"player" csv:"Player"`
	RosterSlot string `json:"roster_slot" csv:"RosterSlot"`

	Matched              bool     `json:"matched" csv:"Matched"`
	Salary               *float64 `json:"salary" csv:"Salary"`
	SourceRosterPosition string   `json:"source_roster_position" csv:"SourceRosterPosition"`
	Team                 string   `json:"team" csv:"Team"`
	GameID               string   `json:"game_id" csv:"GameID"`
	AwayTeam             string   `json:"away_team" csv:"AwayTeam"`
	HomeTeam             string   `json:"home_team" csv:"HomeTeam"`
}

// FieldPlayer is one distinct normalized player from the field-ownership
// rows. Duplicate raw rows for the same player are averaged during
// ingestion, never summed.
type FieldPlayer struct {
	Player         string   `json:"player" csv:"Player"`
	RosterPosition string   `json:"roster_position" csv:"RosterPosition"`
	FieldPct       float64  `json:"field_pct" csv:"FieldPct"`
	FPTS           *float64 `json:"fpts" csv:"FPTS"`
	Salary         *float64 `json:"salary" csv:"Salary"`
	Team           string   `json:"team" csv:"Team"`
	GameID         string   `json:"game_id" csv:"GameID"`
	AwayTeam       string   `json:"away_team" csv:"AwayTeam"`
	HomeTeam       string   `json:"home_team" csv:"HomeTeam"`
}
