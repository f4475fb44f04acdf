package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/123jlee/dfsanalyzer/pkg/contracts/domain"
)

// LoadSnapshot reads every table CSV under dir back into a table set.
// Tables absent from the directory load as empty.
func LoadSnapshot(dir string) (*domain.TableSet, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("open snapshot dir: %w", err)
	}

	set := &domain.TableSet{Combos: make(map[int][]domain.ComboRecord)}

	if records, ok, err := loadTable(dir, domain.TableContestMeta); err != nil {
		return nil, err
	} else if ok {
		set.Meta = decodeMeta(records)
	}
	if records, ok, err := loadTable(dir, domain.TableEntries); err != nil {
		return nil, err
	} else if ok {
		set.Entries = decodeEntries(records)
	}
	if records, ok, err := loadTable(dir, domain.TableEntriesExploded); err != nil {
		return nil, err
	} else if ok {
		set.EntriesExploded = decodeExploded(records)
	}
	if records, ok, err := loadTable(dir, domain.TableFieldPlayers); err != nil {
		return nil, err
	} else if ok {
		set.FieldPlayers = decodeFieldPlayers(records)
	}
	if records, ok, err := loadTable(dir, domain.TableUserExposure); err != nil {
		return nil, err
	} else if ok {
		set.UserExposure = decodeExposure(records)
	}
	if records, ok, err := loadTable(dir, domain.TableTeamStacks); err != nil {
		return nil, err
	} else if ok {
		set.TeamStacks = decodeTeamStacks(records)
	}
	if records, ok, err := loadTable(dir, domain.TableGameStacks); err != nil {
		return nil, err
	} else if ok {
		set.GameStacks = decodeGameStacks(records)
	}
	if records, ok, err := loadTable(dir, domain.TableUnmatchedPlayers); err != nil {
		return nil, err
	} else if ok {
		set.UnmatchedPlayers = decodeUnmatched(records)
	}

	sizes, err := comboSizesInDir(dir)
	if err != nil {
		return nil, err
	}
	for _, size := range sizes {
		records, ok, err := loadTable(dir, domain.ComboTableName(size))
		if err != nil {
			return nil, err
		}
		if ok {
			set.Combos[size] = decodeCombos(records)
		}
	}

	set.Meta.StoragePath = dir
	return set, nil
}

// LatestSnapshot returns the most recent snapshot directory under
// baseDir, identified by the presence of a manifest and ordered by the
// timestamped directory name.
func LatestSnapshot(baseDir string) (string, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return "", fmt.Errorf("read snapshot base dir: %w", err)
	}

	var candidates []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifestPath := filepath.Join(baseDir, entry.Name(), manifestFileName)
		if _, err := os.Stat(manifestPath); err != nil {
			continue
		}
		candidates = append(candidates, entry.Name())
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no snapshots under %s", baseDir)
	}
	sort.Strings(candidates)
	return filepath.Join(baseDir, candidates[len(candidates)-1]), nil
}

// LoadLatest is a convenience over LatestSnapshot + LoadSnapshot.
func LoadLatest(baseDir string) (*domain.TableSet, error) {
	dir, err := LatestSnapshot(baseDir)
	if err != nil {
		return nil, err
	}
	return LoadSnapshot(dir)
}

func loadTable(dir, name string) ([][]string, bool, error) {
	path := filepath.Join(dir, name+tableFileExt)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("stat table %s: %w", name, err)
	}
	_, records, err := readCSV(path)
	if err != nil {
		return nil, false, fmt.Errorf("load table %s: %w", name, err)
	}
	return records, true, nil
}

func comboSizesInDir(dir string) ([]int, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "Combos*"+tableFileExt))
	if err != nil {
		return nil, fmt.Errorf("scan combo tables: %w", err)
	}
	var sizes []int
	for _, match := range matches {
		base := strings.TrimSuffix(filepath.Base(match), tableFileExt)
		size, err := strconv.Atoi(strings.TrimPrefix(base, "Combos"))
		if err != nil {
			continue
		}
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	return sizes, nil
}
