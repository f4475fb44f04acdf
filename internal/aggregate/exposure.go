package aggregate

import (
	"sort"

	"github.com/123jlee/dfsanalyzer/pkg/contracts/domain"
)

// ComputeUserExposure groups the exploded join by (username, player) and
// normalizes each user's player counts by their total distinct lineup
// count. FieldPct comes from the field-ownership table and defaults to 0
// when the player never appears there.
func ComputeUserExposure(entries []domain.Entry, exploded []domain.ExplodedRow, fieldPlayers []domain.FieldPlayer) []domain.UserExposureRecord {
	userTotals := make(map[string]int, len(entries))
	seenEntry := make(map[int64]struct{}, len(entries))
	for _, entry := range entries {
		if _, dup := seenEntry[entry.EntryID]; dup {
			continue
		}
		seenEntry[entry.EntryID] = struct{}{}
		userTotals[entry.Username]++
	}

	fieldPct := make(map[string]float64, len(fieldPlayers))
	for _, fp := range fieldPlayers {
		fieldPct[fp.Player] = fp.FieldPct
	}

	type exposureKey struct {
		username string
		player   string
	}
	type exposureAcc struct {
		entryIDs       map[int64]struct{}
		bestRank       *int
		bestPercentile *float64
		maxPoints      *float64
	}

	accs := make(map[exposureKey]*exposureAcc)
	for _, row := range exploded {
		key := exposureKey{username: row.Username, player: row.Player}
		acc, ok := accs[key]
		if !ok {
			acc = &exposureAcc{entryIDs: make(map[int64]struct{})}
			accs[key] = acc
		}
		acc.entryIDs[row.EntryID] = struct{}{}
		if row.Rank != nil && (acc.bestRank == nil || *row.Rank < *acc.bestRank) {
			rank := *row.Rank
			acc.bestRank = &rank
		}
		if row.Percentile != nil && (acc.bestPercentile == nil || *row.Percentile < *acc.bestPercentile) {
			pct := *row.Percentile
			acc.bestPercentile = &pct
		}
		if row.Points != nil && (acc.maxPoints == nil || *row.Points > *acc.maxPoints) {
			pts := *row.Points
			acc.maxPoints = &pts
		}
	}

	records := make([]domain.UserExposureRecord, 0, len(accs))
	for key, acc := range accs {
		total := userTotals[key.username]
		exposurePct := 0.0
		if total > 0 {
			exposurePct = float64(len(acc.entryIDs)) / float64(total) * 100.0
		}
		pct := fieldPct[key.player]
		records = append(records, domain.UserExposureRecord{
			Username:         key.username,
			Player:           key.player,
			EntryCount:       len(acc.entryIDs),
			BestRank:         acc.bestRank,
			BestPercentile:   acc.bestPercentile,
			MaxPoints:        acc.maxPoints,
			UserTotalLineups: total,
			UserExposurePct:  exposurePct,
			FieldPct:         pct,
			DeltaVsField:     exposurePct - pct,
		})
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Username != records[j].Username {
			return records[i].Username < records[j].Username
		}
		return records[i].Player < records[j].Player
	})
	return records
}
