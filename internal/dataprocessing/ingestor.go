package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/123jlee/dfsanalyzer/internal/aggregate"
	"github.com/123jlee/dfsanalyzer/pkg/contracts/domain"
)

// canonicalKeySeparator joins the sorted unique players of a lineup into
// its canonical identity.
const canonicalKeySeparator = "|"

// Options configures one ingestion run.
type Options struct {
	Site  string
	Sport string
	Combo aggregate.ComboConfig
}

// DefaultOptions returns the DraftKings NBA defaults.
func DefaultOptions() Options {
	return Options{
		Site:  "draftkings",
		Sport: "nba",
		Combo: aggregate.DefaultComboConfig(),
	}
}

// Ingestor turns one contest export (standings CSV + salary CSV) into a
// complete table set. Each run builds its own indexes and accumulators
// from scratch; nothing is shared between runs.
type Ingestor struct {
	logger *slog.Logger
	opts   Options
}

// NewIngestor creates an ingestor. A nil logger falls back to the default
// slog logger.
func NewIngestor(logger *slog.Logger, opts Options) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Site == "" {
		opts.Site = "draftkings"
	}
	if opts.Sport == "" {
		opts.Sport = "nba"
	}
	return &Ingestor{
		logger: logger.With(slog.String("component", "ingestor")),
		opts:   opts,
	}
}

// Ingest runs the full pipeline: load both sources, parse and join
// row-level data, then compute the derived tables. It either completes
// and returns an internally consistent snapshot or fails the whole run;
// partial results are never surfaced.
func (ing *Ingestor) Ingest(ctx context.Context, standingsPath, salariesPath string) (*domain.TableSet, error) {
	if err := ing.opts.Combo.Validate(); err != nil {
		return nil, err
	}

	standings, err := LoadStandings(standingsPath, ing.logger)
	if err != nil {
		return nil, fmt.Errorf("load standings: %w", err)
	}
	salaries, err := LoadSalaries(salariesPath, ing.logger)
	if err != nil {
		return nil, fmt.Errorf("load salaries: %w", err)
	}

	entries := ing.buildEntries(standings.EntryRows)
	exploded, unmatched := ing.explodeEntries(entries, salaries)
	fieldPlayers := ing.buildFieldPlayers(standings.FieldRows, salaries)

	exposure := aggregate.ComputeUserExposure(entries, exploded, fieldPlayers)
	combos, err := aggregate.ComputeNameCombos(ctx, entries, ing.opts.Combo)
	if err != nil {
		return nil, err
	}
	teamStacks, err := aggregate.ComputeTeamStacks(entries, exploded, ing.opts.Combo)
	if err != nil {
		return nil, err
	}
	gameStacks, err := aggregate.ComputeGameStacks(entries, exploded, ing.opts.Combo)
	if err != nil {
		return nil, err
	}

	users := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		users[entry.Username] = struct{}{}
	}

	tables := &domain.TableSet{
		Meta: domain.ContestMeta{
			RunID:         uuid.New().String(),
			Site:          ing.opts.Site,
			Sport:         ing.opts.Sport,
			IngestTime:    time.Now().UTC().Format(time.RFC3339),
			NEntries:      len(entries),
			NUsers:        len(users),
			NFieldPlayers: len(fieldPlayers),
		},
		Entries:          entries,
		EntriesExploded:  exploded,
		FieldPlayers:     fieldPlayers,
		UserExposure:     exposure,
		Combos:           combos,
		TeamStacks:       teamStacks,
		GameStacks:       gameStacks,
		UnmatchedPlayers: unmatched,
	}

	ing.logger.InfoContext(ctx, "ingestion complete",
		slog.String("run_id", tables.Meta.RunID),
		slog.Int("entries", len(entries)),
		slog.Int("users", len(users)),
		slog.Int("unmatched_players", len(unmatched)))

	return tables, nil
}

// buildEntries parses entrant labels and lineups, computes canonical
// lineup identities and dupe counts, sorts by rank, and enriches
// percentiles. The returned entries are final except for the salary
// aggregates filled by explodeEntries.
func (ing *Ingestor) buildEntries(rows []EntryRow) []domain.Entry {
	entries := make([]domain.Entry, 0, len(rows))
	dupeCounts := make(map[string]int, len(rows))
	userTotals := make(map[string]int, len(rows))

	for _, row := range rows {
		parsedName := ParseEntryName(row.EntryName)
		lineup := ParseLineup(row.Lineup)

		players := make([]string, 0, len(lineup))
		for _, pair := range lineup {
			players = append(players, pair.Player)
		}
		canonical := canonicalLineupKey(players)

		entry := domain.Entry{
			EntryID:       row.EntryID,
			Rank:          row.Rank,
			Points:        row.Points,
			TimeRemaining: row.TimeRemaining,
			EntryName:     row.EntryName,
			Username:      parsedName.Username,
			EntriesUsed:   parsedName.EntriesUsed,
			EntriesMax:    parsedName.EntriesMax,
			LineupRaw:     row.Lineup,
			Lineup:        lineup,
			CanonicalKey:  canonical,
			CanonicalHash: ShortHash(canonical),
		}
		entries = append(entries, entry)
		dupeCounts[canonical]++
		userTotals[entry.Username]++
	}

	for i := range entries {
		entries[i].DupeCount = dupeCounts[entries[i].CanonicalKey]
		entries[i].UserTotalLineups = userTotals[entries[i].Username]
	}

	// Rank order is the canonical row order of every downstream table;
	// unparsed ranks sink to the bottom in input order.
	sort.SliceStable(entries, func(i, j int) bool {
		return lessNullableEntryRank(entries[i].Rank, entries[j].Rank)
	})
	aggregate.EnrichPercentiles(entries)

	return entries
}

// explodeEntries joins every (entry, slot) pair against the salary index
// and fills the per-entry salary aggregates over matched players only.
// Unmatched players land in the returned diagnostic list, sorted.
func (ing *Ingestor) explodeEntries(entries []domain.Entry, salaries *SalaryIndex) ([]domain.ExplodedRow, []string) {
	var exploded []domain.ExplodedRow
	unmatchedSet := make(map[string]struct{})

	for i := range entries {
		entry := &entries[i]
		var matchedSalaries []float64
		missing := 0

		for _, pair := range entry.Lineup {
			record := salaries.Match(pair.Player)
			row := domain.ExplodedRow{
				EntryID:    entry.EntryID,
				Username:   entry.Username,
				Rank:       entry.Rank,
				Percentile: entry.Percentile,
				Points:     entry.Points,
				Player:     pair.Player,
				RosterSlot: pair.Slot,
			}
			if record == nil {
				unmatchedSet[pair.Player] = struct{}{}
				missing++
			} else {
				row.Matched = true
				row.Salary = record.Salary
				row.SourceRosterPosition = record.RosterPosition
				row.Team = record.TeamAbbrev
				row.GameID = record.Game.GameID
				row.AwayTeam = record.Game.AwayTeam
				row.HomeTeam = record.Game.HomeTeam
				if record.Salary != nil {
					matchedSalaries = append(matchedSalaries, *record.Salary)
				} else {
					missing++
				}
			}
			exploded = append(exploded, row)
		}

		entry.SalaryMissing = missing
		if len(matchedSalaries) > 0 {
			sum := 0.0
			min, max := matchedSalaries[0], matchedSalaries[0]
			for _, s := range matchedSalaries {
				sum += s
				if s < min {
					min = s
				}
				if s > max {
					max = s
				}
			}
			avg := sum / float64(len(matchedSalaries))
			entry.SalarySum = &sum
			entry.SalaryAvg = &avg
			entry.SalaryMin = &min
			entry.SalaryMax = &max
		}
	}

	unmatched := make([]string, 0, len(unmatchedSet))
	for player := range unmatchedSet {
		unmatched = append(unmatched, player)
	}
	sort.Strings(unmatched)

	return exploded, unmatched
}

// buildFieldPlayers groups field-ownership rows by normalized player,
// averaging duplicate rows (never summing) and enriching from the salary
// index. "%Drafted" cells strip a trailing percent sign; coercion
// failures yield 0.0 ownership and a null FPTS.
func (ing *Ingestor) buildFieldPlayers(rows []FieldRow, salaries *SalaryIndex) []domain.FieldPlayer {
	type fieldAcc struct {
		first     domain.FieldPlayer
		pctSum    float64
		pctCount  int
		fptsSum   float64
		fptsCount int
	}

	accs := make(map[string]*fieldAcc)
	for _, row := range rows {
		player := NormalizeName(row.Player)
		if player == "" {
			continue
		}

		pct := 0.0
		if parsed := parseNullableFloat(strings.TrimSuffix(strings.TrimSpace(row.Drafted), "%")); parsed != nil {
			pct = *parsed
		}
		fpts := parseNullableFloat(row.FPTS)

		acc, ok := accs[player]
		if !ok {
			fp := domain.FieldPlayer{
				Player:         player,
				RosterPosition: row.RosterPosition,
			}
			if record := salaries.Match(player); record != nil {
				fp.Salary = record.Salary
				fp.Team = record.TeamAbbrev
				fp.GameID = record.Game.GameID
				fp.AwayTeam = record.Game.AwayTeam
				fp.HomeTeam = record.Game.HomeTeam
			}
			acc = &fieldAcc{first: fp}
			accs[player] = acc
		}

		acc.pctSum += pct
		acc.pctCount++
		if fpts != nil {
			acc.fptsSum += *fpts
			acc.fptsCount++
		}
	}

	players := make([]domain.FieldPlayer, 0, len(accs))
	for _, acc := range accs {
		fp := acc.first
		if acc.pctCount > 0 {
			fp.FieldPct = acc.pctSum / float64(acc.pctCount)
		}
		if acc.fptsCount > 0 {
			mean := acc.fptsSum / float64(acc.fptsCount)
			fp.FPTS = &mean
		}
		players = append(players, fp)
	}

	sort.Slice(players, func(i, j int) bool {
		return players[i].Player < players[j].Player
	})
	return players
}

func canonicalLineupKey(players []string) string {
	unique := make([]string, 0, len(players))
	seen := make(map[string]struct{}, len(players))
	for _, p := range players {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		unique = append(unique, p)
	}
	sort.Strings(unique)
	return strings.Join(unique, canonicalKeySeparator)
}

func lessNullableEntryRank(a, b *int) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return *a < *b
	}
}
