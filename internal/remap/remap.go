// Package remap translates identifiers between the legacy system's naming
// scheme and ours: path prefixes, downloader indexes, and site names.
package remap

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedRule indicates a rule line without a ':' delimiter.
var ErrMalformedRule = errors.New("malformed remap rule")

// Rule maps one source-side token to a destination-side token.
type Rule struct {
	From string
	To   string
}

// Rules is an ordered rule set. The first matching rule wins.
type Rules []Rule

// Parse reads newline-delimited "source:destination" pairs.
// Blank lines are ignored. A non-blank line without a delimiter is an error.
// The split is on the first ':' so destination tokens may contain colons.
func Parse(text string) (Rules, error) {
	var rules Rules
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		from, to, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("line %d %q: %w", i+1, line, ErrMalformedRule)
		}
		rules = append(rules, Rule{From: from, To: to})
	}
	return rules, nil
}

// Path replaces the first occurrence of the first matching source prefix,
// then normalizes backslash separators to '/'. Without a match the value is
// returned unchanged, separators included.
func (r Rules) Path(value string) string {
	for _, rule := range r {
		if rule.From == "" || !strings.Contains(value, rule.From) {
			continue
		}
		value = strings.Replace(value, rule.From, rule.To, 1)
		return strings.ReplaceAll(value, `\`, "/")
	}
	return value
}

// DownloaderIndex compares the value numerically against each rule's source
// side and returns the matching rule's destination literal. Values or rule
// sources that do not parse as integers are non-matches, never errors.
func (r Rules) DownloaderIndex(value string) string {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return value
	}
	for _, rule := range r {
		from, err := strconv.Atoi(strings.TrimSpace(rule.From))
		if err != nil {
			continue
		}
		if from == n {
			return rule.To
		}
	}
	return value
}

// SiteName is an exact-string match over the rule set. Unmatched names pass
// through unchanged.
func (r Rules) SiteName(value string) string {
	for _, rule := range r {
		if rule.From == value {
			return rule.To
		}
	}
	return value
}
