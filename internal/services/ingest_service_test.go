package services

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/123jlee/dfsanalyzer/internal/dataprocessing"
	"github.com/123jlee/dfsanalyzer/internal/store"
)

const serviceStandingsCSV = `Rank,EntryId,EntryName,TimeRemaining,Points,Lineup,Player,Roster Position,%Drafted,FPTS
1,201,alice (1/2),0,300.5,PG Stephen Curry SG Devin Booker,Stephen Curry,PG,75%,55.5
2,202,bob,0,250,PG Stephen Curry SG Jalen Brunson,Devin Booker,SG,50%,48.25
`

const serviceSalariesCSV = `Position,Name + ID,Name,ID,Roster Position,Salary,Game Info,TeamAbbrev,AvgPointsPerGame
PG,Stephen Curry (1001),Stephen Curry,1001,PG,10000,GSW@LAL 7:00PM ET,GSW,52.1
SG,Devin Booker (1002),Devin Booker,1002,SG,9000,PHX@DEN 9:00PM ET,PHX,46.3
SG,Jalen Brunson (1003),Jalen Brunson,1003,SG,8500,NYK@BOS 7:30PM ET,NYK,44.0
`

func TestIngestServiceRun(t *testing.T) {
	inputDir := t.TempDir()
	dataDir := t.TempDir()

	standingsPath := filepath.Join(inputDir, "contest-standings.csv")
	salariesPath := filepath.Join(inputDir, "DKSalaries.csv")
	require.NoError(t, os.WriteFile(standingsPath, []byte(serviceStandingsCSV), 0o644))
	require.NoError(t, os.WriteFile(salariesPath, []byte(serviceSalariesCSV), 0o644))

	ingestor := dataprocessing.NewIngestor(slog.Default(), dataprocessing.DefaultOptions())
	writer := store.NewWriter(dataDir, slog.Default())
	service := NewIngestService(ingestor, writer, slog.Default())

	set, err := service.Run(context.Background(), standingsPath, salariesPath)
	require.NoError(t, err)
	require.NotNil(t, set)

	assert.Len(t, set.Entries, 2)
	assert.NotEmpty(t, set.Meta.RunID)
	require.NotEmpty(t, set.Meta.StoragePath)
	assert.FileExists(t, filepath.Join(set.Meta.StoragePath, "manifest.json"))
	assert.FileExists(t, filepath.Join(set.Meta.StoragePath, "Entries.csv"))

	// The written snapshot loads back as the latest one.
	latest, err := store.LatestSnapshot(dataDir)
	require.NoError(t, err)
	assert.Equal(t, set.Meta.StoragePath, latest)

	loaded, err := store.LoadSnapshot(latest)
	require.NoError(t, err)
	assert.Equal(t, set.Meta.RunID, loaded.Meta.RunID)
	assert.Len(t, loaded.Entries, 2)
}

func TestIngestServiceRunMissingFile(t *testing.T) {
	ingestor := dataprocessing.NewIngestor(slog.Default(), dataprocessing.DefaultOptions())
	writer := store.NewWriter(t.TempDir(), slog.Default())
	service := NewIngestService(ingestor, writer, slog.Default())

	_, err := service.Run(context.Background(), "missing-standings.csv", "missing-salaries.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingest contest")
}
