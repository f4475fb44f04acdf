package store

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/123jlee/dfsanalyzer/pkg/contracts/domain"
)

// WriteWorkbook exports the table set as a single xlsx workbook with one
// sheet per table, for users who want the full run in a spreadsheet.
func WriteWorkbook(path string, set *domain.TableSet) error {
	if set == nil {
		return fmt.Errorf("write workbook: nil table set")
	}

	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
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
		sheets = append(sheets, struct {
			name    string
			headers []string
			records [][]string
		}{domain.ComboTableName(size), comboHeaders, encodeCombos(set.Combos[size])})
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return fmt.Errorf("create sheet %s: %w", sheet.name, err)
			}
		}
		if err := writeSheet(f, sheet.name, sheet.headers, sheet.records); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, records [][]string) error {
	writeRow := func(rowIdx int, cells []string) error {
		for colIdx, value := range cells {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx)
			if err != nil {
				return fmt.Errorf("cell name for %s: %w", sheet, err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set cell %s!%s: %w", sheet, cell, err)
			}
		}
		return nil
	}

	if err := writeRow(1, headers); err != nil {
		return err
	}
	for i, record := range records {
		if err := writeRow(i+2, record); err != nil {
			return err
		}
	}
	return nil
}
