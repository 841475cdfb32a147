package country

import (
	"regexp"
	"strings"
)

// Unknown is the sentinel token returned when no country can be derived.
const Unknown = "UNKNOWN"

// Pattern pairs a canonical country token with the expression that detects it.
// Patterns are matched in order; they are mutually exclusive by construction.
type Pattern struct {
	Token string
	Expr  *regexp.Regexp
}

// Resolver derives normalized country tokens from free-text location strings.
// It is pure: the pattern table is fixed at construction and never mutated.
type Resolver struct {
	patterns []Pattern
}

// NewResolver creates a resolver over an explicit ordered pattern table.
func NewResolver(patterns []Pattern) *Resolver {
	table := make([]Pattern, len(patterns))
	copy(table, patterns)
	return &Resolver{patterns: table}
}

// DefaultPatterns returns the table of countries the upstream feeds are
// expected to report.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{Token: "CHILE", Expr: regexp.MustCompile(`(?i)chile`)},
		{Token: "PERU", Expr: regexp.MustCompile(`(?i)peru|perú`)},
		{Token: "MEXICO", Expr: regexp.MustCompile(`(?i)mexico|méxico`)},
		{Token: "COLOMBIA", Expr: regexp.MustCompile(`(?i)colombia`)},
		{Token: "ECUADOR", Expr: regexp.MustCompile(`(?i)ecuador`)},
		{Token: "ARGENTINA", Expr: regexp.MustCompile(`(?i)argentina`)},
		{Token: "BOLIVIA", Expr: regexp.MustCompile(`(?i)bolivia`)},
		{Token: "VENEZUELA", Expr: regexp.MustCompile(`(?i)venezuela`)},
		{Token: "JAPAN", Expr: regexp.MustCompile(`(?i)japan`)},
		{Token: "INDONESIA", Expr: regexp.MustCompile(`(?i)indonesia`)},
		{Token: "ROMANIA", Expr: regexp.MustCompile(`(?i)romania`)},
		{Token: "HAWAII", Expr: regexp.MustCompile(`(?i)hawaii`)},
		{Token: "SLOVENIA", Expr: regexp.MustCompile(`(?i)slovenia`)},
		{Token: "TURKEY", Expr: regexp.MustCompile(`(?i)turkey`)},
		{Token: "AFRICA", Expr: regexp.MustCompile(`(?i)africa`)},
	}
}

// NewDefaultResolver creates a resolver over DefaultPatterns.
func NewDefaultResolver() *Resolver {
	return NewResolver(DefaultPatterns())
}

// Resolve extracts a normalized country token from a location string such as
// "30km NE of Coquimbo, Chile".
//
// When the text contains a comma, the candidate is the trimmed upper-cased
// segment after the final comma; the candidate itself is returned verbatim
// when it matches no known pattern. Without a comma the whole text is matched
// and Unknown is returned on a miss.
func (r *Resolver) Resolve(location string) string {
	location = strings.TrimSpace(location)
	if location == "" {
		return Unknown
	}

	if idx := strings.LastIndex(location, ","); idx >= 0 {
		candidate := strings.ToUpper(strings.TrimSpace(location[idx+1:]))
		if candidate == "" {
			return Unknown
		}
		for _, p := range r.patterns {
			if p.Expr.MatchString(candidate) {
				return p.Token
			}
		}
		return candidate
	}

	for _, p := range r.patterns {
		if p.Expr.MatchString(location) {
			return p.Token
		}
	}
	return Unknown
}
