package aggregate

import "github.com/123jlee/dfsanalyzer/pkg/contracts/domain"

// FilterEntries keeps the entries inside the percentile/rank view. Both
// bounds are inclusive; a nil bound means no constraint on that axis.
// Entries whose rank (and thus percentile) failed to parse are excluded
// once the corresponding bound is set.
func FilterEntries(entries []domain.Entry, percentile *float64, rank *int) []domain.Entry {
	if percentile == nil && rank == nil {
		return entries
	}
	kept := make([]domain.Entry, 0, len(entries))
	for _, entry := range entries {
		if !keepEntry(entry, percentile, rank) {
			continue
		}
		kept = append(kept, entry)
	}
	return kept
}

func keepEntry(entry domain.Entry, percentile *float64, rank *int) bool {
	if percentile != nil {
		if entry.Percentile == nil || *entry.Percentile > *percentile {
			return false
		}
	}
	if rank != nil {
		if entry.Rank == nil || *entry.Rank > *rank {
			return false
		}
	}
	return true
}

// EntryIDSet collects the entry ids of a view for combo rescoring.
func EntryIDSet(entries []domain.Entry) map[int64]struct{} {
	ids := make(map[int64]struct{}, len(entries))
	for _, entry := range entries {
		ids[entry.EntryID] = struct{}{}
	}
	return ids
}

// FilterExploded keeps the exploded rows whose entry is in the id set.
func FilterExploded(rows []domain.ExplodedRow, ids map[int64]struct{}) []domain.ExplodedRow {
	kept := make([]domain.ExplodedRow, 0, len(rows))
	for _, row := range rows {
		if _, ok := ids[row.EntryID]; ok {
			kept = append(kept, row)
		}
	}
	return kept
}
