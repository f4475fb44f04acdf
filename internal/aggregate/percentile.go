package aggregate

import "github.com/123jlee/dfsanalyzer/pkg/contracts/domain"

// PercentileFromRank maps a 1-based rank to a [0,100] percentile over a
// contest of the given size. A contest of one entry (or fewer) is always
// percentile zero. The result is monotonically non-decreasing in rank.
func PercentileFromRank(rank, total int) float64 {
	if total <= 1 {
		return 0.0
	}
	if rank < 1 {
		rank = 1
	}
	return float64(rank-1) / float64(total-1) * 100.0
}

// EnrichPercentiles fills Percentile for every entry from its rank and
// the contest size. Entries without a parsed rank keep a nil percentile.
func EnrichPercentiles(entries []domain.Entry) {
	total := len(entries)
	for i := range entries {
		if entries[i].Rank == nil {
			entries[i].Percentile = nil
			continue
		}
		pct := PercentileFromRank(*entries[i].Rank, total)
		entries[i].Percentile = &pct
	}
}
