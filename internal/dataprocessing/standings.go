package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// EntryRow is one standings row carrying a lineup, before joining and
// enrichment. Rank and Points stay nil when the cell failed numeric
// coercion; that is the documented missing-value sentinel, not an error.
type EntryRow struct {
	EntryID       int64
	EntryName     string
	TimeRemaining string
	Rank          *int
	Points        *float64
	Lineup        string
}

// FieldRow is one standings row carrying a standalone field player.
// Drafted keeps the raw "%Drafted" cell; coercion happens during
// ingestion so the 0.0 fallback rule lives in one place.
type FieldRow struct {
	Player         string
	RosterPosition string
	Drafted        string
	FPTS           string
}

// Standings holds the two independent splits of one standings export.
// A row may contribute to both splits or to neither; each split only
// requires its own discriminator column to be populated.
type Standings struct {
	EntryRows []EntryRow
	FieldRows []FieldRow
}

// LoadStandings reads a contest standings CSV and splits it into entry
// rows (non-empty Lineup) and field-ownership rows (non-empty Player).
// Entries are de-duplicated by EntryId keeping the first occurrence.
// An unreadable file is fatal for the whole run.
func LoadStandings(path string, logger *slog.Logger) (*Standings, error) {
	if logger == nil {
		logger = slog.Default()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open standings file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read standings header: %w", err)
	}

	cols := mapColumns(header)
	if _, ok := cols["lineup"]; !ok {
		if _, fieldOK := cols["player"]; !fieldOK {
			return nil, fmt.Errorf("standings file has neither a Lineup nor a Player column")
		}
	}

	standings := &Standings{}
	seenIDs := make(map[int64]struct{})
	line := 1

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A row the CSV reader cannot parse would silently drop
			// everything after it; fail the run instead of surfacing a
			// partial snapshot.
			return nil, fmt.Errorf("read standings rows: %w", err)
		}
		line++

		if lineup := cell(record, cols, "lineup"); strings.TrimSpace(lineup) != "" {
			idRaw := strings.TrimSpace(cell(record, cols, "entry_id"))
			id, err := strconv.ParseInt(idRaw, 10, 64)
			if err != nil {
				logger.Warn("skipping entry row with unparsable EntryId",
					slog.Int("line", line),
					slog.String("entry_id", idRaw))
			} else if _, dup := seenIDs[id]; dup {
				// Duplicate EntryId values keep the first occurrence.
				logger.Warn("duplicate EntryId, keeping first occurrence",
					slog.Int("line", line),
					slog.Int64("entry_id", id))
			} else {
				seenIDs[id] = struct{}{}
				standings.EntryRows = append(standings.EntryRows, EntryRow{
					EntryID:       id,
					EntryName:     cell(record, cols, "entry_name"),
					TimeRemaining: strings.TrimSpace(cell(record, cols, "time_remaining")),
					Rank:          parseNullableInt(cell(record, cols, "rank")),
					Points:        parseNullableFloat(cell(record, cols, "points")),
					Lineup:        lineup,
				})
			}
		}

		if player := cell(record, cols, "player"); strings.TrimSpace(player) != "" {
			standings.FieldRows = append(standings.FieldRows, FieldRow{
				Player:         player,
				RosterPosition: strings.TrimSpace(cell(record, cols, "field_roster_position")),
				Drafted:        cell(record, cols, "drafted"),
				FPTS:           cell(record, cols, "fpts"),
			})
		}
	}

	logger.Info("loaded standings",
		slog.String("path", path),
		slog.Int("entry_rows", len(standings.EntryRows)),
		slog.Int("field_rows", len(standings.FieldRows)))

	return standings, nil
}

// mapColumns maps the standings header to column indices. Matching is
// case-insensitive on the trimmed header text. The field split and the
// entry split may share the "Roster Position" header; both map to the
// same index.
func mapColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "entryid", "entry id":
			cols["entry_id"] = i
		case "entryname", "entry name":
			cols["entry_name"] = i
		case "timeremaining", "time remaining":
			cols["time_remaining"] = i
		case "rank":
			cols["rank"] = i
		case "points":
			cols["points"] = i
		case "lineup":
			cols["lineup"] = i
		case "player":
			cols["player"] = i
		case "roster position":
			cols["field_roster_position"] = i
		case "%drafted", "% drafted":
			cols["drafted"] = i
		case "fpts":
			cols["fpts"] = i
		}
	}
	return cols
}

// cell returns the record value for a mapped column, or "" when the
// column is absent or the record is short.
func cell(record []string, cols map[string]int, key string) string {
	idx, ok := cols[key]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}

// parseNullableFloat coerces a numeric cell, returning nil on failure.
// Thousands separators are tolerated.
func parseNullableFloat(raw string) *float64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return nil
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &value
}

// parseNullableInt coerces an integer cell, returning nil on failure.
func parseNullableInt(raw string) *int {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return nil
	}
	value, err := strconv.Atoi(cleaned)
	if err != nil {
		// Exports sometimes write ranks as "12.0"; fall back through
		// float before giving up.
		f, ferr := strconv.ParseFloat(cleaned, 64)
		if ferr != nil {
			return nil
		}
		value = int(f)
	}
	return &value
}
