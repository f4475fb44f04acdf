package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/123jlee/dfsanalyzer/pkg/contracts/domain"
)

const (
	snapshotTimeLayout = "20060102_150405"
	manifestFileName   = "manifest.json"
	tableFileExt       = ".csv"
)

// Manifest describes a written snapshot directory so callers can pick
// the latest run without parsing every table.
type Manifest struct {
	RunID      string         `json:"run_id"`
	Site       string         `json:"site"`
	Sport      string         `json:"sport"`
	IngestTime string         `json:"ingest_time"`
	Tables     map[string]int `json:"tables"`
}

// Writer persists a full table set as one CSV per table under a
// timestamped directory.
type Writer struct {
	baseDir string
	logger  *slog.Logger
}

func NewWriter(baseDir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{baseDir: baseDir, logger: logger}
}

// WriteSnapshot writes every table of the set plus a manifest, returning
// the snapshot directory. The set's meta is updated in place with the
// storage path.
func (w *Writer) WriteSnapshot(set *domain.TableSet) (string, error) {
	if set == nil {
		return "", fmt.Errorf("write snapshot: nil table set")
	}

	dir := filepath.Join(w.baseDir, time.Now().Format(snapshotTimeLayout))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}
	set.Meta.StoragePath = dir

	tables := []struct {
		name    string
		headers []string
		records [][]string
	}{
		{domain.TableContestMeta, metaHeaders, encodeMeta(set.Meta)},
		{domain.TableEntries, entryHeaders, encodeEntries(set.Entries)},
		{domain.TableEntriesExploded, explodedHeaders, encodeExploded(set.EntriesExploded)},
		{domain.TableFieldPlayers, fieldPlayerHeaders, encodeFieldPlayers(set.FieldPlayers)},
		{domain.TableUserExposure, exposureHeaders, encodeExposure(set.UserExposure)},
		{domain.TableTeamStacks, teamStackHeaders, encodeTeamStacks(set.TeamStacks)},
		{domain.TableGameStacks, gameStackHeaders, encodeGameStacks(set.GameStacks)},
		{domain.TableUnmatchedPlayers, unmatchedHeaders, encodeUnmatched(set.UnmatchedPlayers)},
	}
	sizes := make([]int, 0, len(set.Combos))
	for size := range set.Combos {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	for _, size := range sizes {
		tables = append(tables, struct {
			name    string
			headers []string
			records [][]string
		}{domain.ComboTableName(size), comboHeaders, encodeCombos(set.Combos[size])})
	}

	for _, t := range tables {
		path := filepath.Join(dir, t.name+tableFileExt)
		if err := writeCSV(path, WriteOptions{Headers: t.headers, Records: t.records}); err != nil {
			return "", fmt.Errorf("write table %s: %w", t.name, err)
		}
		logTableWritten(w.logger, t.name, path, len(t.records))
	}

	manifest := Manifest{
		RunID:      set.Meta.RunID,
		Site:       set.Meta.Site,
		Sport:      set.Meta.Sport,
		IngestTime: set.Meta.IngestTime,
		Tables:     set.RowCounts(),
	}
	if err := writeManifest(filepath.Join(dir, manifestFileName), manifest); err != nil {
		return "", err
	}

	w.logger.Info("snapshot written",
		slog.String("dir", dir),
		slog.String("run_id", manifest.RunID),
		slog.Int("tables", len(tables)))
	return dir, nil
}

func writeManifest(path string, manifest Manifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func readManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	return manifest, nil
}
