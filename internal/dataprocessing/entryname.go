package dataprocessing

import (
	"regexp"
	"strconv"
	"strings"
)

// entryNamePattern matches "NAME", "NAME (USED)" or "NAME (USED/MAX)",
// anchored to the whole string; the trailing parenthetical is optional.
var entryNamePattern = regexp.MustCompile(`^(.+?)(?:\s*\((\d+)(?:\s*/\s*(\d+))?\))?$`)

// EntryName carries the parsed parts of a raw entrant label.
type EntryName struct {
	Username    string
	EntriesUsed int
	EntriesMax  int
}

// ParseEntryName splits a raw entrant label into username plus the
// entries used/max multi-entry counts. Missing used defaults to 1;
// missing max defaults to max(used, 1). Empty input yields {"", 1, 1}.
func ParseEntryName(raw string) EntryName {
	result := EntryName{Username: "", EntriesUsed: 1, EntriesMax: 1}

	value := strings.TrimSpace(raw)
	if value == "" {
		return result
	}

	match := entryNamePattern.FindStringSubmatch(value)
	if match == nil {
		result.Username = value
		return result
	}

	result.Username = strings.TrimSpace(match[1])
	if match[2] != "" {
		if used, err := strconv.Atoi(match[2]); err == nil {
			result.EntriesUsed = used
		}
	}
	if match[3] != "" {
		if max, err := strconv.Atoi(match[3]); err == nil {
			result.EntriesMax = max
		}
	} else if result.EntriesUsed > 1 {
		result.EntriesMax = result.EntriesUsed
	}

	return result
}
