package aggregate

import (
	"sort"

	"github.com/123jlee/dfsanalyzer/pkg/contracts/domain"
)

// ComputeTeamStacks generates the team-stack table: per entry, matched
// lineup players are partitioned by team (players with no team match drop
// out of the partitioning), and every combination size from MinSize up to
// min(TeamStackMax, team roster size) is accumulated under (team, tuple).
func ComputeTeamStacks(entries []domain.Entry, exploded []domain.ExplodedRow, cfg ComboConfig) ([]domain.TeamStackRecord, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	keys, groups := stackGroups(entries, exploded, cfg, cfg.TeamStackMax, func(row domain.ExplodedRow) string {
		return row.Team
	})

	records := make([]domain.TeamStackRecord, 0, len(keys))
	for _, key := range keys {
		records = append(records, domain.TeamStackRecord{
			Team:        key.group,
			ComboRecord: groups[key].record(len(groups[key].players)),
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Team != records[j].Team {
			return records[i].Team < records[j].Team
		}
		if records[i].Frequency != records[j].Frequency {
			return records[i].Frequency > records[j].Frequency
		}
		return lessNullableRank(records[i].BestRank, records[j].BestRank)
	})
	return records[:cfg.capRows(len(records))], nil
}

// ComputeGameStacks is ComputeTeamStacks partitioned by game id instead
// of team, capped at GameStackMax.
func ComputeGameStacks(entries []domain.Entry, exploded []domain.ExplodedRow, cfg ComboConfig) ([]domain.GameStackRecord, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	keys, groups := stackGroups(entries, exploded, cfg, cfg.GameStackMax, func(row domain.ExplodedRow) string {
		return row.GameID
	})

	records := make([]domain.GameStackRecord, 0, len(keys))
	for _, key := range keys {
		records = append(records, domain.GameStackRecord{
			GameID:      key.group,
			ComboRecord: groups[key].record(len(groups[key].players)),
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].GameID != records[j].GameID {
			return records[i].GameID < records[j].GameID
		}
		if records[i].Frequency != records[j].Frequency {
			return records[i].Frequency > records[j].Frequency
		}
		return lessNullableRank(records[i].BestRank, records[j].BestRank)
	})
	return records[:cfg.capRows(len(records))], nil
}

// stackKey identifies one (group, combination) accumulator.
type stackKey struct {
	group string
	combo string
}

// stackGroups partitions each entry's exploded rows by groupOf, then
// accumulates every combination of each partition's unique sorted players
// for sizes MinSize..min(maxStack, partition size). Keys come back in
// first-contribution order.
func stackGroups(entries []domain.Entry, exploded []domain.ExplodedRow, cfg ComboConfig, maxStack int, groupOf func(domain.ExplodedRow) string) ([]stackKey, map[stackKey]*comboAccumulator) {
	rowsByEntry := make(map[int64][]domain.ExplodedRow, len(entries))
	for _, row := range exploded {
		rowsByEntry[row.EntryID] = append(rowsByEntry[row.EntryID], row)
	}

	accs := make(map[stackKey]*comboAccumulator)
	var order []stackKey

	for _, entry := range entries {
		rows := rowsByEntry[entry.EntryID]
		if len(rows) == 0 {
			continue
		}

		// Group the entry's players by partition key, keeping group
		// discovery order stable.
		playersByGroup := make(map[string][]string)
		var groupOrder []string
		for _, row := range rows {
			group := groupOf(row)
			if group == "" {
				continue
			}
			if _, ok := playersByGroup[group]; !ok {
				groupOrder = append(groupOrder, group)
			}
			playersByGroup[group] = append(playersByGroup[group], row.Player)
		}

		for _, group := range groupOrder {
			players := uniqueSortedPlayers(playersByGroup[group])
			limit := maxStack
			if len(players) < limit {
				limit = len(players)
			}
			for size := cfg.MinSize; size <= limit; size++ {
				forEachCombination(players, size, func(combo []string) {
					key := stackKey{group: group, combo: comboKey(combo)}
					acc, ok := accs[key]
					if !ok {
						acc = &comboAccumulator{players: append([]string(nil), combo...)}
						accs[key] = acc
						order = append(order, key)
					}
					acc.add(entry)
				})
			}
		}
	}

	return order, accs
}
