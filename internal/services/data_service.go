// Package services holds the application layer between the HTTP
// transport and the ingest/aggregation packages.
package services

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/123jlee/dfsanalyzer/internal/aggregate"
	"github.com/123jlee/dfsanalyzer/pkg/contracts/domain"
)

// EntryFilter bounds the entry view by percentile and rank. Both bounds
// are inclusive; a nil bound leaves that dimension unconstrained.
type EntryFilter struct {
	MaxPercentile *float64
	MaxRank       *int
}

// StackKind selects the stack table a query runs against.
type StackKind string

const (
	StackKindTeam StackKind = "team"
	StackKindGame StackKind = "game"
)

// DataService serves read access over a loaded contest snapshot. The
// snapshot can be swapped atomically after a new ingest.
type DataService struct {
	mu     sync.RWMutex
	tables *domain.TableSet
	logger *slog.Logger
}

// NewDataService creates a data service over the given table set, which
// may be nil until the first snapshot loads.
func NewDataService(tables *domain.TableSet, logger *slog.Logger) *DataService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataService{tables: tables, logger: logger}
}

// Replace swaps in a freshly ingested or loaded table set.
func (ds *DataService) Replace(tables *domain.TableSet) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.tables = tables
	if tables != nil {
		ds.logger.Info("snapshot loaded",
			slog.String("run_id", tables.Meta.RunID),
			slog.Int("entries", len(tables.Entries)))
	}
}

// Loaded reports whether a snapshot is available.
func (ds *DataService) Loaded() bool {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.tables != nil
}

func (ds *DataService) snapshot() *domain.TableSet {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.tables
}

// Meta returns the contest metadata of the loaded snapshot.
func (ds *DataService) Meta() domain.ContestMeta {
	set := ds.snapshot()
	if set == nil {
		return domain.ContestMeta{}
	}
	return set.Meta
}

// TableCounts returns table names with their row counts.
func (ds *DataService) TableCounts() map[string]int {
	set := ds.snapshot()
	if set == nil {
		return nil
	}
	return set.RowCounts()
}

// Entries returns the entries matching the filter, in stored rank order.
func (ds *DataService) Entries(filter EntryFilter) []domain.Entry {
	set := ds.snapshot()
	if set == nil {
		return nil
	}
	return aggregate.FilterEntries(set.Entries, filter.MaxPercentile, filter.MaxRank)
}

// Combos returns the name-combo table for the given size, re-scored
// against the filtered entry set. With an unconstrained filter the
// stored frequency becomes the in-view count; otherwise each combo
// counts its member entries present in the view and zero-count combos
// are dropped. Rows sort by in-view count desc, frequency desc, best
// rank asc, capped at topN when positive.
func (ds *DataService) Combos(size int, filter EntryFilter, topN int) []domain.ComboRecord {
	set := ds.snapshot()
	if set == nil {
		return nil
	}
	return rescoreCombos(set.Combos[size], ds.filterIDSet(set, filter), topN)
}

// TeamStacks returns team stacks of the given size, re-scored like Combos.
// Size zero means all sizes.
func (ds *DataService) TeamStacks(size int, filter EntryFilter, topN int) []domain.TeamStackRecord {
	set := ds.snapshot()
	if set == nil {
		return nil
	}
	ids := ds.filterIDSet(set, filter)

	records := make([]domain.ComboRecord, 0, len(set.TeamStacks))
	groups := make([]string, 0, len(set.TeamStacks))
	for _, stack := range set.TeamStacks {
		if size > 0 && stack.Size != size {
			continue
		}
		records = append(records, stack.ComboRecord)
		groups = append(groups, stack.Team)
	}
	scored, kept := rescoreComboSubset(records, groups, ids, topN)

	out := make([]domain.TeamStackRecord, 0, len(scored))
	for i, rec := range scored {
		out = append(out, domain.TeamStackRecord{Team: kept[i], ComboRecord: rec})
	}
	return out
}

// GameStacks returns game stacks of the given size, re-scored like Combos.
// Size zero means all sizes.
func (ds *DataService) GameStacks(size int, filter EntryFilter, topN int) []domain.GameStackRecord {
	set := ds.snapshot()
	if set == nil {
		return nil
	}
	ids := ds.filterIDSet(set, filter)

	records := make([]domain.ComboRecord, 0, len(set.GameStacks))
	groups := make([]string, 0, len(set.GameStacks))
	for _, stack := range set.GameStacks {
		if size > 0 && stack.Size != size {
			continue
		}
		records = append(records, stack.ComboRecord)
		groups = append(groups, stack.GameID)
	}
	scored, kept := rescoreComboSubset(records, groups, ids, topN)

	out := make([]domain.GameStackRecord, 0, len(scored))
	for i, rec := range scored {
		out = append(out, domain.GameStackRecord{GameID: kept[i], ComboRecord: rec})
	}
	return out
}

// Exposure recomputes user-vs-field exposure over the filtered entry
// view, optionally narrowed to one username.
func (ds *DataService) Exposure(filter EntryFilter, username string) []domain.UserExposureRecord {
	set := ds.snapshot()
	if set == nil {
		return nil
	}

	entries := aggregate.FilterEntries(set.Entries, filter.MaxPercentile, filter.MaxRank)
	if len(entries) == 0 {
		return nil
	}
	exploded := aggregate.FilterExploded(set.EntriesExploded, aggregate.EntryIDSet(entries))
	records := aggregate.ComputeUserExposure(entries, exploded, set.FieldPlayers)

	if username == "" {
		return records
	}
	out := make([]domain.UserExposureRecord, 0, 16)
	for _, rec := range records {
		if rec.Username == username {
			out = append(out, rec)
		}
	}
	return out
}

// UserCombos returns all combo sizes narrowed to the given user's entries
// within the filtered view, sorted by size asc, in-view count desc, best
// rank asc.
func (ds *DataService) UserCombos(username string, filter EntryFilter, topN int) []domain.ComboRecord {
	set := ds.snapshot()
	if set == nil || username == "" {
		return nil
	}

	entries := aggregate.FilterEntries(set.Entries, filter.MaxPercentile, filter.MaxRank)
	userIDs := make(map[int64]struct{})
	for _, entry := range entries {
		if entry.Username == username {
			userIDs[entry.EntryID] = struct{}{}
		}
	}
	if len(userIDs) == 0 {
		return nil
	}

	sizes := make([]int, 0, len(set.Combos))
	for size := range set.Combos {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)

	var out []domain.ComboRecord
	for _, size := range sizes {
		for _, rec := range set.Combos[size] {
			count := countInSet(rec.EntryIDs, userIDs)
			if count == 0 {
				continue
			}
			rec.CountInView = count
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Size != out[j].Size {
			return out[i].Size < out[j].Size
		}
		if out[i].CountInView != out[j].CountInView {
			return out[i].CountInView > out[j].CountInView
		}
		return lessNullableRank(out[i].BestRank, out[j].BestRank)
	})
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

// Field returns field ownership rows, optionally filtered by a
// case-insensitive substring on the player name, sorted field pct desc.
func (ds *DataService) Field(search string) []domain.FieldPlayer {
	set := ds.snapshot()
	if set == nil {
		return nil
	}

	needle := strings.ToLower(search)
	out := make([]domain.FieldPlayer, 0, len(set.FieldPlayers))
	for _, fp := range set.FieldPlayers {
		if needle != "" && !strings.Contains(strings.ToLower(fp.Player), needle) {
			continue
		}
		out = append(out, fp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FieldPct > out[j].FieldPct
	})
	return out
}

// Unmatched returns the players from standings lineups that never joined
// a salary record.
func (ds *DataService) Unmatched() []string {
	set := ds.snapshot()
	if set == nil {
		return nil
	}
	return set.UnmatchedPlayers
}

// filterIDSet returns the entry-id set for the filtered view, or nil
// when the filter is unconstrained.
func (ds *DataService) filterIDSet(set *domain.TableSet, filter EntryFilter) map[int64]struct{} {
	if filter.MaxPercentile == nil && filter.MaxRank == nil {
		return nil
	}
	entries := aggregate.FilterEntries(set.Entries, filter.MaxPercentile, filter.MaxRank)
	return aggregate.EntryIDSet(entries)
}

// rescoreCombos applies the in-view count scoring to a full combo table.
func rescoreCombos(records []domain.ComboRecord, ids map[int64]struct{}, topN int) []domain.ComboRecord {
	out := make([]domain.ComboRecord, 0, len(records))
	for _, rec := range records {
		if ids == nil {
			rec.CountInView = rec.Frequency
		} else {
			count := countInSet(rec.EntryIDs, ids)
			if count == 0 {
				continue
			}
			rec.CountInView = count
		}
		out = append(out, rec)
	}
	sortRescored(out)
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

// rescoreComboSubset is rescoreCombos for stack tables, carrying the
// group label of each surviving row alongside it.
func rescoreComboSubset(records []domain.ComboRecord, groups []string, ids map[int64]struct{}, topN int) ([]domain.ComboRecord, []string) {
	type scoredRow struct {
		rec   domain.ComboRecord
		group string
	}
	rows := make([]scoredRow, 0, len(records))
	for i, rec := range records {
		if ids == nil {
			rec.CountInView = rec.Frequency
		} else {
			count := countInSet(rec.EntryIDs, ids)
			if count == 0 {
				continue
			}
			rec.CountInView = count
		}
		rows = append(rows, scoredRow{rec: rec, group: groups[i]})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return lessRescored(rows[i].rec, rows[j].rec)
	})
	if topN > 0 && len(rows) > topN {
		rows = rows[:topN]
	}

	outRecords := make([]domain.ComboRecord, 0, len(rows))
	outGroups := make([]string, 0, len(rows))
	for _, row := range rows {
		outRecords = append(outRecords, row.rec)
		outGroups = append(outGroups, row.group)
	}
	return outRecords, outGroups
}

func sortRescored(records []domain.ComboRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return lessRescored(records[i], records[j])
	})
}

func lessRescored(a, b domain.ComboRecord) bool {
	if a.CountInView != b.CountInView {
		return a.CountInView > b.CountInView
	}
	if a.Frequency != b.Frequency {
		return a.Frequency > b.Frequency
	}
	return lessNullableRank(a.BestRank, b.BestRank)
}

func lessNullableRank(a, b *int) bool {
	switch {
	case a == nil && b == nil:
		return false
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return *a < *b
	}
}

func countInSet(ids []int64, set map[int64]struct{}) int {
	count := 0
	for _, id := range ids {
		if _, ok := set[id]; ok {
			count++
		}
	}
	return count
}
