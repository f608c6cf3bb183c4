// Package identity reconciles free-text team names from the scraped source
// with the canonical names used by the statistics API.
package identity

import "strings"

// Normalizer maps a reported team name onto its canonical form. Implementations
// must treat unknown names as a passthrough, never a failure.
type Normalizer interface {
	Normalize(name string) string
}

// AliasTable is an exact-match alias table. Names absent from the table are
// returned trimmed but otherwise unchanged.
type AliasTable struct {
	aliases map[string]string
}

func NewAliasTable(aliases map[string]string) *AliasTable {
	table := make(map[string]string, len(aliases))
	for variant, canonical := range aliases {
		table[variant] = canonical
	}
	return &AliasTable{aliases: table}
}

func (t *AliasTable) Normalize(name string) string {
	name = strings.TrimSpace(name)
	if canonical, ok := t.aliases[name]; ok {
		return canonical
	}
	return name
}

// DefaultAliases covers the known divergences between the schedule source and
// the statistics API: punctuation, city abbreviations, diacritics, and the
// Arizona relocation.
func DefaultAliases() map[string]string {
	return map[string]string{
		"Tampa Bay Lightning":  "Tampa Bay Lightning",
		"New York Rangers":     "New York Rangers",
		"NY Rangers":           "New York Rangers",
		"New Jersey Devils":    "New Jersey Devils",
		"NJ Devils":            "New Jersey Devils",
		"Vegas Golden Knights": "Vegas Golden Knights",
		"Washington Capitals":  "Washington Capitals",
		"St. Louis Blues":      "St Louis Blues",
		"St Louis Blues":       "St Louis Blues",
		"Los Angeles Kings":    "Los Angeles Kings",
		"LA Kings":             "Los Angeles Kings",
		"Arizona Coyotes":      "Utah Hockey Club",
		"Utah HC":              "Utah Hockey Club",
		"Montréal Canadiens":   "Montreal Canadiens",
		"Montréal":             "Montreal Canadiens",
	}
}

// Default returns the normalizer backed by DefaultAliases.
func Default() *AliasTable {
	return NewAliasTable(DefaultAliases())
}
