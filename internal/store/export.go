package store

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/123jlee/dfsanalyzer/pkg/contracts/domain"
)

// Streaming CSV exports for the download endpoints. Same headers and
// cell encodings as the snapshot files.

func WriteEntriesCSV(w io.Writer, entries []domain.Entry) error {
	return writeCSVTo(w, entryHeaders, encodeEntries(entries))
}

func WriteCombosCSV(w io.Writer, records []domain.ComboRecord) error {
	return writeCSVTo(w, comboHeaders, encodeCombos(records))
}

func WriteTeamStacksCSV(w io.Writer, records []domain.TeamStackRecord) error {
	return writeCSVTo(w, teamStackHeaders, encodeTeamStacks(records))
}

func WriteGameStacksCSV(w io.Writer, records []domain.GameStackRecord) error {
	return writeCSVTo(w, gameStackHeaders, encodeGameStacks(records))
}

func WriteExposureCSV(w io.Writer, records []domain.UserExposureRecord) error {
	return writeCSVTo(w, exposureHeaders, encodeExposure(records))
}

func WriteFieldPlayersCSV(w io.Writer, players []domain.FieldPlayer) error {
	return writeCSVTo(w, fieldPlayerHeaders, encodeFieldPlayers(players))
}

func WriteUnmatchedCSV(w io.Writer, players []string) error {
	return writeCSVTo(w, unmatchedHeaders, encodeUnmatched(players))
}

func writeCSVTo(w io.Writer, headers []string, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("write csv records: %w", err)
	}
	cw.Flush()
	return cw.Error()
}
