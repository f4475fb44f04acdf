package store

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/123jlee/dfsanalyzer/pkg/contracts/domain"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func sampleTableSet(t *testing.T) *domain.TableSet {
	t.Helper()
	return &domain.TableSet{
		Meta: domain.ContestMeta{
			RunID:         "run-1234",
			Site:          "draftkings",
			Sport:         "nba",
			IngestTime:    "2026-01-15T20:30:00Z",
			NEntries:      2,
			NUsers:        2,
			NFieldPlayers: 1,
		},
		Entries: []domain.Entry{
			{
				EntryID:          101,
				Rank:             intPtr(1),
				Points:           floatPtr(310.5),
				EntryName:        "alice (2/5)",
				Username:         "alice",
				EntriesUsed:      2,
				EntriesMax:       5,
				UserTotalLineups: 1,
				LineupRaw:        "PG Stephen Curry SG Devin Booker",
				Lineup: []domain.LineupSlot{
					{Slot: "PG", Player: "Stephen Curry"},
					{Slot: "SG", Player: "Devin Booker"},
				},
				CanonicalKey:  "Devin Booker|Stephen Curry",
				CanonicalHash: "abc123def456",
				DupeCount:     1,
				Percentile:    floatPtr(0),
				SalarySum:     floatPtr(19000),
				SalaryAvg:     floatPtr(9500),
				SalaryMin:     floatPtr(9000),
				SalaryMax:     floatPtr(10000),
			},
			{
				EntryID:          102,
				EntryName:        "bob",
				Username:         "bob",
				EntriesUsed:      1,
				EntriesMax:       1,
				UserTotalLineups: 1,
				LineupRaw:        "PG Stephen Curry",
				Lineup: []domain.LineupSlot{
					{Slot: "PG", Player: "Stephen Curry"},
				},
				CanonicalKey:  "Stephen Curry",
				CanonicalHash: "def456abc123",
				DupeCount:     1,
				SalaryMissing: 1,
			},
		},
		EntriesExploded: []domain.ExplodedRow{
			{
				EntryID:    101,
				Username:   "alice",
				Rank:       intPtr(1),
				Percentile: floatPtr(0),
				Points:     floatPtr(310.5),
				Player:     "Stephen Curry",
				RosterSlot: "PG",
				Matched:    true,
				Salary:     floatPtr(10000),
				Team:       "GSW",
				GameID:     "GSW@LAL",
				AwayTeam:   "GSW",
				HomeTeam:   "LAL",
			},
		},
		FieldPlayers: []domain.FieldPlayer{
			{
				Player:         "Stephen Curry",
				RosterPosition: "PG",
				FieldPct:       75.5,
				FPTS:           floatPtr(55.5),
				Salary:         floatPtr(10000),
				Team:           "GSW",
				GameID:         "GSW@LAL",
				AwayTeam:       "GSW",
				HomeTeam:       "LAL",
			},
		},
		UserExposure: []domain.UserExposureRecord{
			{
				Username:         "alice",
				Player:           "Stephen Curry",
				EntryCount:       1,
				BestRank:         intPtr(1),
				BestPercentile:   floatPtr(0),
				MaxPoints:        floatPtr(310.5),
				UserTotalLineups: 1,
				UserExposurePct:  100,
				FieldPct:         75.5,
				DeltaVsField:     24.5,
			},
		},
		Combos: map[int][]domain.ComboRecord{
			2: {
				{
					Combo:       "Devin Booker | Stephen Curry",
					Players:     []string{"Devin Booker", "Stephen Curry"},
					Size:        2,
					Frequency:   1,
					BestRank:    intPtr(1),
					MedianRank:  floatPtr(1),
					MaxPoints:   floatPtr(310.5),
					EntryIDs:    []int64{101},
					CountInView: 1,
				},
			},
		},
		TeamStacks: []domain.TeamStackRecord{
			{
				Team: "GSW",
				ComboRecord: domain.ComboRecord{
					Combo:       "Stephen Curry",
					Players:     []string{"Stephen Curry"},
					Size:        1,
					Frequency:   1,
					EntryIDs:    []int64{101},
					CountInView: 1,
				},
			},
		},
		GameStacks: []domain.GameStackRecord{
			{
				GameID: "GSW@LAL",
				ComboRecord: domain.ComboRecord{
					Combo:       "Stephen Curry",
					Players:     []string{"Stephen Curry"},
					Size:        1,
					Frequency:   1,
					EntryIDs:    []int64{101},
					CountInView: 1,
				},
			},
		},
		UnmatchedPlayers: []string{"Mystery Man"},
	}
}

func TestWriteAndLoadSnapshot(t *testing.T) {
	baseDir := t.TempDir()
	set := sampleTableSet(t)

	writer := NewWriter(baseDir, slog.Default())
	dir, err := writer.WriteSnapshot(set)
	require.NoError(t, err)
	require.DirExists(t, dir)
	assert.Equal(t, dir, set.Meta.StoragePath)

	// One CSV per table plus the manifest
	for _, name := range []string{
		domain.TableContestMeta, domain.TableEntries, domain.TableEntriesExploded,
		domain.TableFieldPlayers, domain.TableUserExposure, domain.TableTeamStacks,
		domain.TableGameStacks, domain.TableUnmatchedPlayers, "Combos2",
	} {
		assert.FileExists(t, filepath.Join(dir, name+tableFileExt), name)
	}
	assert.FileExists(t, filepath.Join(dir, manifestFileName))

	manifest, err := readManifest(filepath.Join(dir, manifestFileName))
	require.NoError(t, err)
	assert.Equal(t, "run-1234", manifest.RunID)
	assert.Equal(t, 2, manifest.Tables[domain.TableEntries])

	loaded, err := LoadSnapshot(dir)
	require.NoError(t, err)

	assert.Equal(t, set.Meta.RunID, loaded.Meta.RunID)
	assert.Equal(t, set.Meta.Site, loaded.Meta.Site)
	assert.Equal(t, dir, loaded.Meta.StoragePath)

	require.Len(t, loaded.Entries, 2)
	assert.Equal(t, set.Entries[0], loaded.Entries[0])
	assert.Equal(t, set.Entries[1], loaded.Entries[1])

	require.Len(t, loaded.EntriesExploded, 1)
	assert.Equal(t, set.EntriesExploded[0], loaded.EntriesExploded[0])

	require.Len(t, loaded.FieldPlayers, 1)
	assert.Equal(t, set.FieldPlayers[0], loaded.FieldPlayers[0])

	require.Len(t, loaded.UserExposure, 1)
	assert.Equal(t, set.UserExposure[0], loaded.UserExposure[0])

	require.Contains(t, loaded.Combos, 2)
	require.Len(t, loaded.Combos[2], 1)
	assert.Equal(t, set.Combos[2][0], loaded.Combos[2][0])

	require.Len(t, loaded.TeamStacks, 1)
	assert.Equal(t, set.TeamStacks[0], loaded.TeamStacks[0])

	require.Len(t, loaded.GameStacks, 1)
	assert.Equal(t, set.GameStacks[0], loaded.GameStacks[0])

	assert.Equal(t, set.UnmatchedPlayers, loaded.UnmatchedPlayers)
}

func TestLatestSnapshot(t *testing.T) {
	baseDir := t.TempDir()

	for _, name := range []string{"20260101_100000", "20260102_100000", "20260103_100000"} {
		dir := filepath.Join(baseDir, name)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, writeManifest(filepath.Join(dir, manifestFileName), Manifest{RunID: name}))
	}
	// A directory without a manifest is not a snapshot
	require.NoError(t, os.MkdirAll(filepath.Join(baseDir, "20260109_100000"), 0o755))

	latest, err := LatestSnapshot(baseDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(baseDir, "20260103_100000"), latest)
}

func TestLatestSnapshotEmpty(t *testing.T) {
	_, err := LatestSnapshot(t.TempDir())
	require.Error(t, err)
}

func TestLoadSnapshotMissingDir(t *testing.T) {
	_, err := LoadSnapshot(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestCSVExports(t *testing.T) {
	set := sampleTableSet(t)

	var buf bytes.Buffer
	require.NoError(t, WriteEntriesCSV(&buf, set.Entries))
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3, "header + 2 rows")
	assert.Contains(t, string(lines[0]), "EntryID")
	assert.Contains(t, string(lines[1]), "Devin Booker|Stephen Curry")

	buf.Reset()
	require.NoError(t, WriteCombosCSV(&buf, set.Combos[2]))
	assert.Contains(t, buf.String(), "Devin Booker | Stephen Curry")

	buf.Reset()
	require.NoError(t, WriteUnmatchedCSV(&buf, set.UnmatchedPlayers))
	assert.Contains(t, buf.String(), "Mystery Man")
}

func TestWriteWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contest.xlsx")

	require.NoError(t, WriteWorkbook(path, sampleTableSet(t)))
	assert.FileExists(t, path)
}
