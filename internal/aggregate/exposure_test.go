package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/123jlee/dfsanalyzer/pkg/contracts/domain"
)

func TestComputeUserExposure(t *testing.T) {
	e1 := makeEntry(1, 1, 300, "alice", "A", "B")
	e2 := makeEntry(2, 2, 250, "alice", "A", "C")
	e3 := makeEntry(3, 3, 200, "alice", "B", "C")
	e4 := makeEntry(4, 4, 150, "bob", "A", "B")
	entries := []domain.Entry{e1, e2, e3, e4}

	var exploded []domain.ExplodedRow
	for _, e := range entries {
		for _, pair := range e.Lineup {
			exploded = append(exploded, explodedRow(e, pair.Player, "", ""))
		}
	}

	fieldPlayers := []domain.FieldPlayer{
		{Player: "A", FieldPct: 60.0},
		{Player: "B", FieldPct: 40.0},
	}

	records := ComputeUserExposure(entries, exploded, fieldPlayers)
	require.NotEmpty(t, records)

	// Sorted by username then player
	for i := 1; i < len(records); i++ {
		prev, cur := records[i-1], records[i]
		if prev.Username == cur.Username {
			assert.Less(t, prev.Player, cur.Player)
		} else {
			assert.Less(t, prev.Username, cur.Username)
		}
	}

	byKey := make(map[string]domain.UserExposureRecord, len(records))
	for _, rec := range records {
		byKey[rec.Username+"/"+rec.Player] = rec
	}

	// alice holds A in 2 of 3 lineups
	aliceA := byKey["alice/A"]
	assert.Equal(t, 2, aliceA.EntryCount)
	assert.Equal(t, 3, aliceA.UserTotalLineups)
	assert.InDelta(t, 100.0*2.0/3.0, aliceA.UserExposurePct, 1e-9)
	assert.InDelta(t, 60.0, aliceA.FieldPct, 1e-9)
	assert.InDelta(t, aliceA.UserExposurePct-60.0, aliceA.DeltaVsField, 1e-9)
	require.NotNil(t, aliceA.BestRank)
	assert.Equal(t, 1, *aliceA.BestRank)
	require.NotNil(t, aliceA.MaxPoints)
	assert.InDelta(t, 300, *aliceA.MaxPoints, 1e-9)

	// bob holds A in his single lineup
	bobA := byKey["bob/A"]
	assert.Equal(t, 1, bobA.EntryCount)
	assert.Equal(t, 1, bobA.UserTotalLineups)
	assert.InDelta(t, 100.0, bobA.UserExposurePct, 1e-9)

	// player C never appears in the field table
	aliceC := byKey["alice/C"]
	assert.InDelta(t, 0.0, aliceC.FieldPct, 1e-9)
	assert.InDelta(t, aliceC.UserExposurePct, aliceC.DeltaVsField, 1e-9)
}

func TestComputeUserExposureEmptyInputs(t *testing.T) {
	records := ComputeUserExposure(nil, nil, nil)
	assert.Empty(t, records)
}

func TestFilterEntries(t *testing.T) {
	entries := []domain.Entry{
		makeEntry(1, 1, 300, "alice", "A"),
		makeEntry(2, 2, 250, "bob", "B"),
		makeEntry(3, 3, 200, "carol", "C"),
		{EntryID: 4, Username: "dave"}, // no rank, no percentile
	}
	EnrichPercentiles(entries)

	t.Run("no bounds returns all", func(t *testing.T) {
		assert.Len(t, FilterEntries(entries, nil, nil), 4)
	})

	t.Run("rank bound inclusive", func(t *testing.T) {
		maxRank := 2
		kept := FilterEntries(entries, nil, &maxRank)
		require.Len(t, kept, 2)
		assert.Equal(t, int64(1), kept[0].EntryID)
		assert.Equal(t, int64(2), kept[1].EntryID)
	})

	t.Run("percentile bound inclusive", func(t *testing.T) {
		maxPct := 100.0 / 3.0
		kept := FilterEntries(entries, &maxPct, nil)
		require.Len(t, kept, 2)
	})

	t.Run("nil rank excluded when bound set", func(t *testing.T) {
		maxRank := 100
		kept := FilterEntries(entries, nil, &maxRank)
		for _, e := range kept {
			assert.NotEqual(t, int64(4), e.EntryID)
		}
	})

	t.Run("both bounds intersect", func(t *testing.T) {
		maxRank := 3
		maxPct := 0.0
		kept := FilterEntries(entries, &maxPct, &maxRank)
		require.Len(t, kept, 1)
		assert.Equal(t, int64(1), kept[0].EntryID)
	})
}

func TestFilterExploded(t *testing.T) {
	e1 := makeEntry(1, 1, 300, "alice", "A")
	e2 := makeEntry(2, 2, 250, "bob", "B")
	rows := []domain.ExplodedRow{
		explodedRow(e1, "A", "", ""),
		explodedRow(e2, "B", "", ""),
	}

	ids := EntryIDSet([]domain.Entry{e1})
	kept := FilterExploded(rows, ids)
	require.Len(t, kept, 1)
	assert.Equal(t, int64(1), kept[0].EntryID)
}
