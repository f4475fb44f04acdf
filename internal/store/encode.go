package store

import (
	"strconv"
	"strings"

	"github.com/123jlee/dfsanalyzer/pkg/contracts/domain"
)

// List-column encodings. Entry-id lists are comma-joined, player lists
// pipe-joined; both reverse exactly on load so the stored entry-id lists
// stay verbatim.
const (
	idListSeparator     = ","
	playerListSeparator = "|"
)

var entryHeaders = []string{
	"EntryID", "Rank", "Points", "TimeRemaining", "EntryName", "Username",
	"EntriesUsed", "EntriesMax", "UserTotalLineups", "LineupRaw",
	"LineupSlots", "LineupPlayers", "CanonicalKey", "CanonicalHash",
	"DupeCount", "Percentile", "SalarySum", "SalaryAvg", "SalaryMin",
	"SalaryMax", "SalaryMissingCount",
}

func encodeEntries(entries []domain.Entry) [][]string {
	records := make([][]string, 0, len(entries))
	for _, e := range entries {
		records = append(records, []string{
			strconv.FormatInt(e.EntryID, 10),
			fmtIntPtr(e.Rank),
			fmtFloatPtr(e.Points),
			e.TimeRemaining,
			e.EntryName,
			e.Username,
			strconv.Itoa(e.EntriesUsed),
			strconv.Itoa(e.EntriesMax),
			strconv.Itoa(e.UserTotalLineups),
			e.LineupRaw,
			strings.Join(e.Slots(), playerListSeparator),
			strings.Join(e.Players(), playerListSeparator),
			e.CanonicalKey,
			e.CanonicalHash,
			strconv.Itoa(e.DupeCount),
			fmtFloatPtr(e.Percentile),
			fmtFloatPtr(e.SalarySum),
			fmtFloatPtr(e.SalaryAvg),
			fmtFloatPtr(e.SalaryMin),
			fmtFloatPtr(e.SalaryMax),
			strconv.Itoa(e.SalaryMissing),
		})
	}
	return records
}

func decodeEntries(records [][]string) []domain.Entry {
	entries := make([]domain.Entry, 0, len(records))
	for _, r := range records {
		if len(r) < len(entryHeaders) {
			continue
		}
		entry := domain.Entry{
			EntryID:          parseInt64(r[0]),
			Rank:             parseIntPtr(r[1]),
			Points:           parseFloatPtr(r[2]),
			TimeRemaining:    r[3],
			EntryName:        r[4],
			Username:         r[5],
			EntriesUsed:      parseIntValue(r[6]),
			EntriesMax:       parseIntValue(r[7]),
			UserTotalLineups: parseIntValue(r[8]),
			LineupRaw:        r[9],
			CanonicalKey:     r[12],
			CanonicalHash:    r[13],
			DupeCount:        parseIntValue(r[14]),
			Percentile:       parseFloatPtr(r[15]),
			SalarySum:        parseFloatPtr(r[16]),
			SalaryAvg:        parseFloatPtr(r[17]),
			SalaryMin:        parseFloatPtr(r[18]),
			SalaryMax:        parseFloatPtr(r[19]),
			SalaryMissing:    parseIntValue(r[20]),
		}
		slots := splitList(r[10])
		players := splitList(r[11])
		if len(slots) == len(players) {
			lineup := make([]domain.LineupSlot, 0, len(slots))
			for i := range slots {
				lineup = append(lineup, domain.LineupSlot{Slot: slots[i], Player: players[i]})
			}
			entry.Lineup = lineup
		}
		entries = append(entries, entry)
	}
	return entries
}

var explodedHeaders = []string{
	"EntryID", "Username", "Rank", "Percentile", "Points", "Player",
	"RosterSlot", "Matched", "Salary", "SourceRosterPosition", "Team",
	"GameID", "AwayTeam", "HomeTeam",
}

func encodeExploded(rows []domain.ExplodedRow) [][]string {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			strconv.FormatInt(row.EntryID, 10),
			row.Username,
			fmtIntPtr(row.Rank),
			fmtFloatPtr(row.Percentile),
			fmtFloatPtr(row.Points),
			row.Player,
			row.RosterSlot,
			strconv.FormatBool(row.Matched),
			fmtFloatPtr(row.Salary),
			row.SourceRosterPosition,
			row.Team,
			row.GameID,
			row.AwayTeam,
			row.HomeTeam,
		})
	}
	return records
}

func decodeExploded(records [][]string) []domain.ExplodedRow {
	rows := make([]domain.ExplodedRow, 0, len(records))
	for _, r := range records {
		if len(r) < len(explodedHeaders) {
			continue
		}
		rows = append(rows, domain.ExplodedRow{
			EntryID:              parseInt64(r[0]),
			Username:             r[1],
			Rank:                 parseIntPtr(r[2]),
			Percentile:           parseFloatPtr(r[3]),
			Points:               parseFloatPtr(r[4]),
			Player:               r[5],
			RosterSlot:           r[6],
			Matched:              r[7] == "true",
			Salary:               parseFloatPtr(r[8]),
			SourceRosterPosition: r[9],
			Team:                 r[10],
			GameID:               r[11],
			AwayTeam:             r[12],
			HomeTeam:             r[13],
		})
	}
	return rows
}

var fieldPlayerHeaders = []string{
	"Player", "RosterPosition", "FieldPct", "FPTS", "Salary", "Team",
	"GameID", "AwayTeam", "HomeTeam",
}

func encodeFieldPlayers(players []domain.FieldPlayer) [][]string {
	records := make([][]string, 0, len(players))
	for _, fp := range players {
		records = append(records, []string{
			fp.Player,
			fp.RosterPosition,
			fmtFloat(fp.FieldPct),
			fmtFloatPtr(fp.FPTS),
			fmtFloatPtr(fp.Salary),
			fp.Team,
			fp.GameID,
			fp.AwayTeam,
			fp.HomeTeam,
		})
	}
	return records
}

func decodeFieldPlayers(records [][]string) []domain.FieldPlayer {
	players := make([]domain.FieldPlayer, 0, len(records))
	for _, r := range records {
		if len(r) < len(fieldPlayerHeaders) {
			continue
		}
		players = append(players, domain.FieldPlayer{
			Player:         r[0],
			RosterPosition: r[1],
			FieldPct:       parseFloatValue(r[2]),
			FPTS:           parseFloatPtr(r[3]),
			Salary:         parseFloatPtr(r[4]),
			Team:           r[5],
			GameID:         r[6],
			AwayTeam:       r[7],
			HomeTeam:       r[8],
		})
	}
	return players
}

var exposureHeaders = []string{
	"Username", "Player", "EntryCount", "BestRank", "BestPercentile",
	"MaxPoints", "UserTotalLineups", "UserExposurePct", "FieldPct",
	"DeltaVsField",
}

func encodeExposure(records []domain.UserExposureRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Username,
			rec.Player,
			strconv.Itoa(rec.EntryCount),
			fmtIntPtr(rec.BestRank),
			fmtFloatPtr(rec.BestPercentile),
			fmtFloatPtr(rec.MaxPoints),
			strconv.Itoa(rec.UserTotalLineups),
			fmtFloat(rec.UserExposurePct),
			fmtFloat(rec.FieldPct),
			fmtFloat(rec.DeltaVsField),
		})
	}
	return rows
}

func decodeExposure(records [][]string) []domain.UserExposureRecord {
	out := make([]domain.UserExposureRecord, 0, len(records))
	for _, r := range records {
		if len(r) < len(exposureHeaders) {
			continue
		}
		out = append(out, domain.UserExposureRecord{
			Username:         r[0],
			Player:           r[1],
			EntryCount:       parseIntValue(r[2]),
			BestRank:         parseIntPtr(r[3]),
			BestPercentile:   parseFloatPtr(r[4]),
			MaxPoints:        parseFloatPtr(r[5]),
			UserTotalLineups: parseIntValue(r[6]),
			UserExposurePct:  parseFloatValue(r[7]),
			FieldPct:         parseFloatValue(r[8]),
			DeltaVsField:     parseFloatValue(r[9]),
		})
	}
	return out
}

var comboHeaders = []string{
	"Combo", "Players", "Size", "Frequency", "BestRank", "BestPercentile",
	"MedianRank", "MaxPoints", "EntryIDs", "CountInCurrentPercentile",
}

func encodeComboRecord(rec domain.ComboRecord) []string {
	return []string{
		rec.Combo,
		strings.Join(rec.Players, playerListSeparator),
		strconv.Itoa(rec.Size),
		strconv.Itoa(rec.Frequency),
		fmtIntPtr(rec.BestRank),
		fmtFloatPtr(rec.BestPercentile),
		fmtFloatPtr(rec.MedianRank),
		fmtFloatPtr(rec.MaxPoints),
		joinIDs(rec.EntryIDs),
		strconv.Itoa(rec.CountInView),
	}
}

func decodeComboRecord(r []string) domain.ComboRecord {
	return domain.ComboRecord{
		Combo:          r[0],
		Players:        splitList(r[1]),
		Size:           parseIntValue(r[2]),
		Frequency:      parseIntValue(r[3]),
		BestRank:       parseIntPtr(r[4]),
		BestPercentile: parseFloatPtr(r[5]),
		MedianRank:     parseFloatPtr(r[6]),
		MaxPoints:      parseFloatPtr(r[7]),
		EntryIDs:       splitIDs(r[8]),
		CountInView:    parseIntValue(r[9]),
	}
}

func encodeCombos(records []domain.ComboRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, encodeComboRecord(rec))
	}
	return rows
}

func decodeCombos(records [][]string) []domain.ComboRecord {
	out := make([]domain.ComboRecord, 0, len(records))
	for _, r := range records {
		if len(r) < len(comboHeaders) {
			continue
		}
		out = append(out, decodeComboRecord(r))
	}
	return out
}

var teamStackHeaders = append([]string{"Team"}, comboHeaders...)

func encodeTeamStacks(records []domain.TeamStackRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, append([]string{rec.Team}, encodeComboRecord(rec.ComboRecord)...))
	}
	return rows
}

func decodeTeamStacks(records [][]string) []domain.TeamStackRecord {
	out := make([]domain.TeamStackRecord, 0, len(records))
	for _, r := range records {
		if len(r) < len(teamStackHeaders) {
			continue
		}
		out = append(out, domain.TeamStackRecord{Team: r[0], ComboRecord: decodeComboRecord(r[1:])})
	}
	return out
}

var gameStackHeaders = append([]string{"GameID"}, comboHeaders...)

func encodeGameStacks(records []domain.GameStackRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, append([]string{rec.GameID}, encodeComboRecord(rec.ComboRecord)...))
	}
	return rows
}

func decodeGameStacks(records [][]string) []domain.GameStackRecord {
	out := make([]domain.GameStackRecord, 0, len(records))
	for _, r := range records {
		if len(r) < len(gameStackHeaders) {
			continue
		}
		out = append(out, domain.GameStackRecord{GameID: r[0], ComboRecord: decodeComboRecord(r[1:])})
	}
	return out
}

var metaHeaders = []string{
	"RunID", "Site", "Sport", "IngestTime", "NEntries", "NUsers",
	"NFieldPlayers", "StoragePath",
}

func encodeMeta(meta domain.ContestMeta) [][]string {
	return [][]string{{
		meta.RunID,
		meta.Site,
		meta.Sport,
		meta.IngestTime,
		strconv.Itoa(meta.NEntries),
		strconv.Itoa(meta.NUsers),
		strconv.Itoa(meta.NFieldPlayers),
		meta.StoragePath,
	}}
}

func decodeMeta(records [][]string) domain.ContestMeta {
	if len(records) == 0 || len(records[0]) < len(metaHeaders) {
		return domain.ContestMeta{}
	}
	r := records[0]
	return domain.ContestMeta{
		RunID:         r[0],
		Site:          r[1],
		Sport:         r[2],
		IngestTime:    r[3],
		NEntries:      parseIntValue(r[4]),
		NUsers:        parseIntValue(r[5]),
		NFieldPlayers: parseIntValue(r[6]),
		StoragePath:   r[7],
	}
}

var unmatchedHeaders = []string{"Player"}

func encodeUnmatched(players []string) [][]string {
	rows := make([][]string, 0, len(players))
	for _, p := range players {
		rows = append(rows, []string{p})
	}
	return rows
}

func decodeUnmatched(records [][]string) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		if len(r) < 1 || r[0] == "" {
			continue
		}
		out = append(out, r[0])
	}
	return out
}

// Cell formatting. Nil pointers serialize to the empty cell and parse
// back to nil, preserving the missing-value sentinel across round-trips.

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fmtFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return fmtFloat(*v)
}

func fmtIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func parseFloatPtr(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseIntPtr(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func parseFloatValue(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseIntValue(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func parseInt64(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, idListSeparator)
}

func splitIDs(s string) []int64 {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, idListSeparator)
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		ids = append(ids, parseInt64(p))
	}
	return ids
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, playerListSeparator)
}
