package domain

// GameInfo holds the game metadata parsed from a salary sheet
// "AWAY@HOME ..." string. All fields are empty when the string did not
// match the expected pattern; that is missing enrichment, not an error.
type GameInfo struct {
	AwayTeam string `json:"away_team"`
	HomeTeam string `json:"home_team"`
	GameID   string `json:"game_id"`
}

// IsZero reports whether no game metadata could be parsed.
func (g GameInfo) IsZero() bool {
	return g.GameID == ""
}

// SalaryRecord is one row of the salary sheet after normalization.
// Name carries the canonical display form; NameKey the looser comparable
// form used by the fuzzy-match fallback.
type SalaryRecord struct {
	Name           string   `json:"name" csv:"Name"`
	NameKey        string   `json:"name_key" csv:"NameKey"`
	Salary         *float64 `json:"salary" csv:"Salary"`
	RosterPosition string   `json:"roster_position" csv:"RosterPosition"`
	TeamAbbrev     string   `json:"team_abbrev" csv:"TeamAbbrev"`
	Game           GameInfo `json:"game"`
}
