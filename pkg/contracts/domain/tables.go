package domain

// ContestMeta is the single-row summary table for one ingestion run.
type ContestMeta struct {
	RunID         string `json:"run_id" csv:"RunID"`
	Site          string `json:"site" csv:"Site"`
	Sport         string `json:"sport" csv:"Sport"`
	IngestTime    string `json:"ingest_time" csv:"IngestTime"`
	NEntries      int    `json:"n_entries" csv:"NEntries"`
	NUsers        int    `json:"n_users" csv:"NUsers"`
	NFieldPlayers int    `json:"n_field_players" csv:"NFieldPlayers"`
	StoragePath   string `json:"storage_path" csv:"StoragePath"`
}

// Table names of the snapshot produced by every ingestion run. The
// dashboard and report layer address tables only by these names; schemas
// must round-trip exactly through the store.
const (
	TableContestMeta      = "ContestMeta"
	TableEntries          = "Entries"
	TableEntriesExploded  = "EntriesExploded"
	TableFieldPlayers     = "FieldPlayers"
	TableUserExposure     = "UserExposure"
	TableTeamStacks       = "TeamStacks"
	TableGameStacks       = "GameStacks"
	TableUnmatchedPlayers = "UnmatchedPlayers"
)

// ComboTableName returns the name of the combo table for a size, e.g.
// "Combos2".
func ComboTableName(size int) string {
	switch size {
	case 2:
		return "Combos2"
	case 3:
		return "Combos3"
	case 4:
		return "Combos4"
	default:
		return ""
	}
}

// TableSet is the complete, internally consistent output of one ingestion
// run. It is recomputed wholesale per run and never mutated incrementally.
type TableSet struct {
	Meta             ContestMeta           `json:"meta"`
	Entries          []Entry               `json:"entries"`
	EntriesExploded  []ExplodedRow         `json:"entries_exploded"`
	FieldPlayers     []FieldPlayer         `json:"field_players"`
	UserExposure     []UserExposureRecord  `json:"user_exposure"`
	Combos           map[int][]ComboRecord `json:"combos"`
	TeamStacks       []TeamStackRecord     `json:"team_stacks"`
	GameStacks       []GameStackRecord     `json:"game_stacks"`
	UnmatchedPlayers []string              `json:"unmatched_players"`
}

// RowCounts returns the row count per table name, for manifests and the
// tables listing endpoint.
func (ts *TableSet) RowCounts() map[string]int {
	counts := map[string]int{
		TableContestMeta:      1,
		TableEntries:          len(ts.Entries),
		TableEntriesExploded:  len(ts.EntriesExploded),
		TableFieldPlayers:     len(ts.FieldPlayers),
		TableUserExposure:     len(ts.UserExposure),
		TableTeamStacks:       len(ts.TeamStacks),
		TableGameStacks:       len(ts.GameStacks),
		TableUnmatchedPlayers: len(ts.UnmatchedPlayers),
	}
	for size, combos := range ts.Combos {
		if name := ComboTableName(size); name != "" {
			counts[name] = len(combos)
		}
	}
	return counts
}
