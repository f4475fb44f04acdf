package aggregate

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/123jlee/dfsanalyzer/pkg/contracts/domain"
)

// ComputeNameCombos generates the combo table for every configured size.
// Per entry, combinations are drawn from its unique duplicate-collapsed
// sorted player names; entries with fewer unique players than the size
// contribute nothing for that size. Sizes are independent partitions, so
// they run in parallel with one accumulator each and merge by simple
// assignment.
func ComputeNameCombos(ctx context.Context, entries []domain.Entry, cfg ComboConfig) (map[int][]domain.ComboRecord, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	results := make([][]domain.ComboRecord, cfg.MaxSize+1)
	g, _ := errgroup.WithContext(ctx)

	for size := cfg.MinSize; size <= cfg.MaxSize; size++ {
		size := size
		g.Go(func() error {
			results[size] = comboRecordsForSize(entries, size)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compute name combos: %w", err)
	}

	combos := make(map[int][]domain.ComboRecord, cfg.MaxSize-cfg.MinSize+1)
	for size := cfg.MinSize; size <= cfg.MaxSize; size++ {
		records := results[size]
		records = records[:cfg.capRows(len(records))]
		combos[size] = records
	}
	return combos, nil
}

func comboRecordsForSize(entries []domain.Entry, size int) []domain.ComboRecord {
	accs := newOrderedAccumulators()

	for _, entry := range entries {
		unique := uniqueSortedPlayers(entry.Players())
		if len(unique) < size {
			continue
		}
		forEachCombination(unique, size, func(combo []string) {
			key := comboKey(combo)
			accs.get(key, combo).add(entry)
		})
	}

	records := make([]domain.ComboRecord, 0, len(accs.order))
	for _, key := range accs.order {
		records = append(records, accs.byKey[key].record(size))
	}
	sortComboRecords(records)
	return records
}

func comboKey(players []string) string {
	total := 0
	for _, p := range players {
		total += len(p) + len(comboJoiner)
	}
	b := make([]byte, 0, total)
	for i, p := range players {
		if i > 0 {
			b = append(b, comboJoiner...)
		}
		b = append(b, p...)
	}
	return string(b)
}

// sortComboRecords orders by frequency desc then best rank asc; ties keep
// the contribution order (stable sort over first-insertion order). Size
// ordering across tables is implied by the per-size map keys.
func sortComboRecords(records []domain.ComboRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Frequency != records[j].Frequency {
			return records[i].Frequency > records[j].Frequency
		}
		return lessNullableRank(records[i].BestRank, records[j].BestRank)
	})
}

// lessNullableRank sorts present ranks ascending and pushes missing ranks
// last.
func lessNullableRank(a, b *int) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return *a < *b
	}
}
