// Package matcher filters catalog units by glob or regular-expression
// patterns. Patterns are tested against every name a unit answers to
// (canonical name, acronym and aliases) and always match case-insensitively.
package matcher

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agentstation/unitmap/pkg/units"
)

// PatternType represents the type of pattern matching to use.
type PatternType int

const (
	// Glob uses shell-style glob patterns (*, ?, []).
	Glob PatternType = iota
	// Regex uses regular expressions.
	Regex
	// Auto attempts to detect the pattern type.
	Auto
)

// String returns a string representation of the PatternType.
func (pt PatternType) String() string {
	switch pt {
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	case Auto:
		return "auto"
	default:
		return "unknown"
	}
}

// Matcher tests unit names against one compiled pattern.
// A Matcher is immutable and safe for concurrent use.
type Matcher struct {
	pattern     string
	patternType PatternType
	compiled    *regexp.Regexp
}

// New compiles pattern. Globs are anchored to the whole name; regular
// expressions match anywhere unless they carry their own anchors.
func New(patternType PatternType, pattern string) (*Matcher, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("empty pattern")
	}

	m := &Matcher{pattern: pattern, patternType: patternType}
	if patternType == Auto {
		m.patternType = detectPatternType(pattern)
	}

	var expr string
	switch m.patternType {
	case Glob:
		expr = GlobToRegex(pattern)
	case Regex:
		expr = pattern
	default:
		return nil, fmt.Errorf("unsupported pattern type: %v", patternType)
	}

	compiled, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return nil, fmt.Errorf("invalid %s pattern %q: %w", m.patternType, pattern, err)
	}
	m.compiled = compiled
	return m, nil
}

// Pattern returns the original pattern string.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Type returns the pattern type being used.
func (m *Matcher) Type() PatternType {
	return m.patternType
}

// Match checks if the input matches the pattern.
func (m *Matcher) Match(input string) bool {
	return m.compiled.MatchString(input)
}

// MatchUnit reports whether any of the unit's names match.
func (m *Matcher) MatchUnit(u units.Unit) bool {
	for _, name := range u.Names() {
		if m.Match(name) {
			return true
		}
	}
	return false
}

// Filter returns the records that match, preserving order.
func (m *Matcher) Filter(records []units.Unit) []units.Unit {
	out := make([]units.Unit, 0, len(records))
	for _, u := range records {
		if m.MatchUnit(u) {
			out = append(out, u)
		}
	}
	return out
}

// FilterUnits compiles pattern with type detection and filters records.
// An empty pattern returns records unchanged.
func FilterUnits(pattern string, records []units.Unit) ([]units.Unit, error) {
	if pattern == "" {
		return records, nil
	}
	m, err := New(Auto, pattern)
	if err != nil {
		return nil, err
	}
	return m.Filter(records), nil
}

// detectPatternType attempts to detect if a pattern is glob or regex.
func detectPatternType(pattern string) PatternType {
	regexIndicators := []string{
		"^", "$", "\\d", "\\w", "\\s", "\\b",
		"(?:", "(?i)", ".*", ".+",
		"{", "}", "+", "|", "(", ")",
	}
	for _, indicator := range regexIndicators {
		if strings.Contains(pattern, indicator) {
			return Regex
		}
	}
	return Glob
}

// GlobToRegex converts a glob pattern to an anchored regex pattern.
func GlobToRegex(glob string) string {
	runes := []rune(glob)
	var regex strings.Builder
	regex.WriteString("^")

	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '*':
			regex.WriteString(".*")
		case '?':
			regex.WriteString(".")
		case '[':
			j := i + 1
			if j < len(runes) && (runes[j] == '!' || runes[j] == '^') {
				regex.WriteString("[^")
				j++
			} else {
				regex.WriteString("[")
			}
			for ; j < len(runes) && runes[j] != ']'; j++ {
				if runes[j] == '\\' && j+1 < len(runes) {
					regex.WriteRune(runes[j])
					j++
				}
				regex.WriteRune(runes[j])
			}
			if j < len(runes) {
				regex.WriteString("]")
			}
			// an unterminated class is reported when the result is compiled
			i = j
		case '\\':
			if i+1 < len(runes) {
				i++
				regex.WriteString(regexp.QuoteMeta(string(runes[i])))
			}
		default:
			regex.WriteString(regexp.QuoteMeta(string(runes[i])))
		}
	}

	regex.WriteString("$")
	return regex.String()
}
