package domain

// ComboRecord aggregates one unordered player combination of fixed size
// across all contributing entries. EntryIDs is preserved verbatim (one id
// per contributing entry, in contribution order); the dashboard needs the
// full list for cross-filtering.
type ComboRecord struct {
	Combo   string   `json:"combo" csv:"Combo"`
	Players []string `json:"players" csv:"Players"`
	Size    int      `json:"size" csv:"Size"`

	Frequency      int      `json:"frequency" csv:"Frequency"`
	BestRank       *int     `json:"best_rank" csv:"BestRank"`
	BestPercentile *float64 `json:"best_percentile" csv:"BestPercentile"`
	MedianRank     *float64 `json:"median_rank" csv:"MedianRank"`
	MaxPoints      *float64 `json:"max_points" csv:"MaxPoints"`

	EntryIDs []int64 `json:"entry_ids" csv:"EntryIDs"`

	// CountInView is the number of contributing entries inside the
	// current percentile/rank view. Stored snapshots carry Frequency
	// here; the read API rescores it against the active filter.
	CountInView int `json:"count_in_current_percentile" csv:"CountInCurrentPercentile"`
}

// TeamStackRecord is a ComboRecord whose players all share one team.
type TeamStackRecord struct {
	Team string `json:"team" csv:"Team"`
	ComboRecord
}

// GameStackRecord is a ComboRecord whose players all belong to one game.
type GameStackRecord struct {
	GameID string `json:"game_id" csv:"GameID"`
	ComboRecord
}

// UserExposureRecord compares one user's exposure to a player against the
// field ownership baseline.
type UserExposureRecord struct {
	Username string `json:"username" csv:"Username"`
	Player   string `json:"player" csv:"Player"`

	EntryCount       int      `json:"entry_count" csv:"EntryCount"`
	BestRank         *int     `json:"best_rank" csv:"BestRank"`
	BestPercentile   *float64 `json:"best_percentile" csv:"BestPercentile"`
	MaxPoints        *float64 `json:"max_points" csv:"MaxPoints"`
	UserTotalLineups int      `json:"user_total_lineups" csv:"UserTotalLineups"`

	UserExposurePct float64 `json:"user_exposure_pct" csv:"UserExposurePct"`
	FieldPct        float64 `json:"field_pct" csv:"FieldPct"`
	DeltaVsField    float64 `json:"delta_vs_field" csv:"DeltaVsField"`
}
