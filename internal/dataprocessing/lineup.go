package dataprocessing

import (
	"strings"

	"github.com/123jlee/dfsanalyzer/pkg/contracts/domain"
)

// LineupSlots is the fixed roster-slot vocabulary, in DraftKings display
// order. Slot tokens act as field delimiters inside a raw lineup string.
var LineupSlots = []string{"PG", "SG", "SF", "PF", "C", "G", "F", "UTIL"}

var lineupSlotSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(LineupSlots))
	for _, slot := range LineupSlots {
		set[slot] = struct{}{}
	}
	return set
}()

// IsLineupSlot reports whether a token is a roster-slot marker.
// Matching is case-insensitive exact match against the fixed vocabulary
// only, so player-name tokens cannot collide with slot tokens partially.
func IsLineupSlot(token string) bool {
	_, ok := lineupSlotSet[strings.ToUpper(token)]
	return ok
}

// ParseLineup converts a raw lineup string into the ordered sequence of
// (slot, player) pairs. The scan is a two-state machine: before the first
// slot token nothing accumulates; after a slot token, non-slot tokens
// accumulate into the current player name until the next slot token (or
// end of input) flushes the pair. Player names are normalized and joined
// with single spaces, so multi-word names survive. Malformed or empty
// input yields an empty slice.
func ParseLineup(raw string) []domain.LineupSlot {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return nil
	}

	var (
		pairs       []domain.LineupSlot
		currentSlot string
		currentName []string
	)

	flush := func() {
		if currentSlot == "" || len(currentName) == 0 {
			return
		}
		name := NormalizeName(strings.Join(currentName, " "))
		if name != "" {
			pairs = append(pairs, domain.LineupSlot{Slot: currentSlot, Player: name})
		}
	}

	for _, token := range tokens {
		if IsLineupSlot(token) {
			flush()
			currentSlot = strings.ToUpper(token)
			currentName = currentName[:0]
			continue
		}
		currentName = append(currentName, token)
	}
	flush()

	return pairs
}
