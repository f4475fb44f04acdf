package dataprocessing

import (
	"regexp"
	"strings"

	"github.com/123jlee/dfsanalyzer/pkg/contracts/domain"
)

// gameInfoPattern matches the team-vs-team prefix of a salary sheet
// "Game Info" string, e.g. "BOS@LAL 7:00PM ET".
var gameInfoPattern = regexp.MustCompile(`([A-Z]{2,3})@([A-Z]{2,3})`)

// ParseGameInfo extracts away/home team codes and the game id from a raw
// "Game Info" string. Unparsable strings yield a zero GameInfo; that is
// missing enrichment, never an error.
func ParseGameInfo(raw string) domain.GameInfo {
	value := strings.ToUpper(strings.TrimSpace(raw))
	if value == "" {
		return domain.GameInfo{}
	}
	match := gameInfoPattern.FindStringSubmatch(value)
	if match == nil {
		return domain.GameInfo{}
	}
	return domain.GameInfo{
		AwayTeam: match[1],
		HomeTeam: match[2],
		GameID:   match[1] + "@" + match[2],
	}
}
