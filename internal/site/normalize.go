package site

import (
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName normalizes a site name for comparison: lowercased, accents
// stripped, whitespace collapsed. Display names keep their original form;
// this is only for matching.
func NormalizeName(name string) string {
	s := strings.ToLower(name)
	s = removeAccents(s)
	return strings.Join(strings.Fields(s), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// closestThreshold is the minimum JaroWinkler similarity for a suggestion.
const closestThreshold = 0.85

// Closest returns the candidate most similar to name, if any candidate
// clears the similarity threshold. Used to suggest a registered site when an
// imported record carries an unknown site name.
func Closest(name string, candidates []string) (string, bool) {
	normalized := NormalizeName(name)
	if normalized == "" {
		return "", false
	}

	best := ""
	bestScore := 0.0
	for _, candidate := range candidates {
		score := float64(edlib.JaroWinklerSimilarity(normalized, NormalizeName(candidate)))
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	if bestScore < closestThreshold {
		return "", false
	}
	return best, true
}
