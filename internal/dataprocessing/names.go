package dataprocessing

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold decomposes a string (NFKD) and drops the combining marks, so
// "José" folds to "Jose". Runes that still fall outside ASCII afterwards
// are dropped entirely, matching the matching keys used by the salary
// sheet join.
var asciiFold = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// NormalizeName returns the canonical display form of a raw player or
// user name: diacritics stripped, internal whitespace collapsed to single
// spaces, leading/trailing whitespace trimmed. Empty input yields "".
func NormalizeName(raw string) string {
	if raw == "" {
		return ""
	}
	folded, _, err := transform.String(asciiFold, raw)
	if err != nil {
		folded = raw
	}
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ComparableName returns the looser key used by the fuzzy-match fallback:
// the normalized form lowercased with every character outside [a-z0-9 ]
// removed. ComparableName("José Núñez") == ComparableName("Jose Nunez").
func ComparableName(raw string) string {
	normalized := strings.ToLower(NormalizeName(raw))
	var b strings.Builder
	b.Grow(len(normalized))
	for _, r := range normalized {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ShortHashLength is the digest prefix length used for canonical lineup
// hashes.
const ShortHashLength = 12

// ShortHash returns a fixed-length hex digest of value, used as a compact
// grouping key for canonical lineup identities.
func ShortHash(value string) string {
	digest := sha1.Sum([]byte(value))
	return hex.EncodeToString(digest[:])[:ShortHashLength]
}

// Slugify turns a value into a filename-safe slug: comparable form with
// spaces replaced by sep and runs of sep collapsed.
func Slugify(value, sep string) string {
	slug := strings.ReplaceAll(ComparableName(value), " ", sep)
	if sep != "" {
		for strings.Contains(slug, sep+sep) {
			slug = strings.ReplaceAll(slug, sep+sep, sep)
		}
		slug = strings.Trim(slug, sep)
	}
	return slug
}
