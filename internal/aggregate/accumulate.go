package aggregate

import (
	"sort"
	"strings"

	"github.com/123jlee/dfsanalyzer/pkg/contracts/domain"
)

// comboJoiner separates player names inside a combo key.
const comboJoiner = " | "

// comboAccumulator collects the contributions of every entry containing
// one player combination. Missing ranks/points are excluded from the
// min/median/max aggregates but the entry still counts toward frequency
// and its id is kept verbatim.
type comboAccumulator struct {
	players     []string
	entryIDs    []int64
	ranks       []int
	percentiles []float64
	points      []float64
}

func (a *comboAccumulator) add(entry domain.Entry) {
	a.entryIDs = append(a.entryIDs, entry.EntryID)
	if entry.Rank != nil {
		a.ranks = append(a.ranks, *entry.Rank)
	}
	if entry.Percentile != nil {
		a.percentiles = append(a.percentiles, *entry.Percentile)
	}
	if entry.Points != nil {
		a.points = append(a.points, *entry.Points)
	}
}

func (a *comboAccumulator) record(size int) domain.ComboRecord {
	rec := domain.ComboRecord{
		Combo:       strings.Join(a.players, comboJoiner),
		Players:     append([]string(nil), a.players...),
		Size:        size,
		Frequency:   len(a.entryIDs),
		EntryIDs:    append([]int64(nil), a.entryIDs...),
		CountInView: len(a.entryIDs),
	}
	if len(a.ranks) > 0 {
		best := minInt(a.ranks)
		med := medianOfInts(a.ranks)
		rec.BestRank = &best
		rec.MedianRank = &med
	}
	if len(a.percentiles) > 0 {
		best := minFloat(a.percentiles)
		rec.BestPercentile = &best
	}
	if len(a.points) > 0 {
		max := maxFloat(a.points)
		rec.MaxPoints = &max
	}
	return rec
}

// orderedAccumulators is a map of combo key to accumulator that remembers
// first-insertion order, so tie-breaking falls back to the order entries
// contributed — identical inputs always produce identical tables.
type orderedAccumulators struct {
	byKey map[string]*comboAccumulator
	order []string
}

func newOrderedAccumulators() *orderedAccumulators {
	return &orderedAccumulators{byKey: make(map[string]*comboAccumulator)}
}

func (o *orderedAccumulators) get(key string, players []string) *comboAccumulator {
	acc, ok := o.byKey[key]
	if !ok {
		acc = &comboAccumulator{players: append([]string(nil), players...)}
		o.byKey[key] = acc
		o.order = append(o.order, key)
	}
	return acc
}

// uniqueSortedPlayers collapses duplicates and sorts, giving the
// canonical player universe a combination is drawn from.
func uniqueSortedPlayers(players []string) []string {
	seen := make(map[string]struct{}, len(players))
	unique := make([]string, 0, len(players))
	for _, p := range players {
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		unique = append(unique, p)
	}
	sort.Strings(unique)
	return unique
}

// forEachCombination visits every k-subset of players in lexicographic
// order. players must already be sorted; the visited slice is reused
// between calls and must not be retained.
func forEachCombination(players []string, k int, visit func(combo []string)) {
	if k <= 0 || k > len(players) {
		return
	}
	combo := make([]string, k)
	var walk func(start, depth int)
	walk = func(start, depth int) {
		if depth == k {
			visit(combo)
			return
		}
		for i := start; i <= len(players)-(k-depth); i++ {
			combo[depth] = players[i]
			walk(i+1, depth+1)
		}
	}
	walk(0, 0)
}

func minInt(values []int) int {
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

func minFloat(values []float64) float64 {
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

func maxFloat(values []float64) float64 {
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// medianOfInts returns the median as a float, averaging the middle pair
// for even-length input.
func medianOfInts(values []int) float64 {
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2.0
}
