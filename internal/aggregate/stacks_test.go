package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/123jlee/dfsanalyzer/pkg/contracts/domain"
)

func explodedRow(entry domain.Entry, player, team, gameID string) domain.ExplodedRow {
	return domain.ExplodedRow{
		EntryID:  entry.EntryID,
		Username: entry.Username,
		Rank:     entry.Rank,
		Points:   entry.Points,
		Player:   player,
		Matched:  team != "",
		Team:     team,
		GameID:   gameID,
	}
}

func TestComputeTeamStacks(t *testing.T) {
	e1 := makeEntry(1, 1, 300, "alice", "A", "B", "C", "D")
	e2 := makeEntry(2, 2, 250, "bob", "A", "B", "E", "F")
	entries := []domain.Entry{e1, e2}

	exploded := []domain.ExplodedRow{
		explodedRow(e1, "A", "BOS", "BOS@LAL"),
		explodedRow(e1, "B", "BOS", "BOS@LAL"),
		explodedRow(e1, "C", "BOS", "BOS@LAL"),
		explodedRow(e1, "D", "LAL", "BOS@LAL"),
		explodedRow(e2, "A", "BOS", "BOS@LAL"),
		explodedRow(e2, "B", "BOS", "BOS@LAL"),
		explodedRow(e2, "E", "MIA", "MIA@DEN"),
		explodedRow(e2, "F", "", ""), // unmatched, excluded from stacking
	}

	stacks, err := ComputeTeamStacks(entries, exploded, DefaultComboConfig())
	require.NoError(t, err)
	require.NotEmpty(t, stacks)

	// Sorted by team ascending
	for i := 1; i < len(stacks); i++ {
		assert.LessOrEqual(t, stacks[i-1].Team, stacks[i].Team)
	}

	byKey := make(map[string]domain.TeamStackRecord)
	for _, stack := range stacks {
		byKey[stack.Team+"/"+stack.Combo] = stack
		// Single-team partitions below MinSize never appear
		assert.GreaterOrEqual(t, stack.Size, 2)
	}

	// A+B on BOS appears in both entries
	ab, ok := byKey["BOS/A | B"]
	require.True(t, ok)
	assert.Equal(t, 2, ab.Frequency)
	assert.Equal(t, []int64{1, 2}, ab.EntryIDs)
	require.NotNil(t, ab.BestRank)
	assert.Equal(t, 1, *ab.BestRank)

	// A+B+C only in entry 1
	abc, ok := byKey["BOS/A | B | C"]
	require.True(t, ok)
	assert.Equal(t, 1, abc.Frequency)

	// LAL and MIA partitions have one player each, below MinSize
	for key := range byKey {
		assert.NotContains(t, key, "LAL/")
		assert.NotContains(t, key, "MIA/")
	}
}

func TestComputeGameStacks(t *testing.T) {
	e1 := makeEntry(1, 1, 300, "alice", "A", "B", "C", "D")
	entries := []domain.Entry{e1}

	exploded := []domain.ExplodedRow{
		explodedRow(e1, "A", "BOS", "BOS@LAL"),
		explodedRow(e1, "B", "BOS", "BOS@LAL"),
		explodedRow(e1, "C", "LAL", "BOS@LAL"),
		explodedRow(e1, "D", "MIA", "MIA@DEN"),
	}

	stacks, err := ComputeGameStacks(entries, exploded, DefaultComboConfig())
	require.NoError(t, err)
	require.NotEmpty(t, stacks)

	// Game stacks cross team lines inside a game
	byKey := make(map[string]domain.GameStackRecord)
	for _, stack := range stacks {
		assert.Equal(t, "BOS@LAL", stack.GameID, "MIA@DEN has one player only")
		byKey[stack.Combo] = stack
	}

	full, ok := byKey["A | B | C"]
	require.True(t, ok)
	assert.Equal(t, 3, full.Size)
	assert.Equal(t, 1, full.Frequency)

	// All sizes 2..3 for a 3-player game partition: C(3,2)+C(3,3) = 4
	assert.Len(t, stacks, 4)
}

func TestComputeGameStacksSizeCap(t *testing.T) {
	players := []string{"A", "B", "C", "D", "E"}
	e1 := makeEntry(1, 1, 300, "alice", players...)

	exploded := make([]domain.ExplodedRow, 0, len(players))
	for _, p := range players {
		exploded = append(exploded, explodedRow(e1, p, "BOS", "BOS@LAL"))
	}

	cfg := DefaultComboConfig()
	cfg.GameStackMax = 3

	stacks, err := ComputeGameStacks([]domain.Entry{e1}, exploded, cfg)
	require.NoError(t, err)

	for _, stack := range stacks {
		assert.LessOrEqual(t, stack.Size, 3)
	}
	// C(5,2) + C(5,3) = 10 + 10
	assert.Len(t, stacks, 20)
}
