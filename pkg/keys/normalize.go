// Package keys turns raw key-column values into lookup keys. The same
// normalization is used by every workflow so delete, upsert and compare
// agree on which records are the same.
package keys

import (
	"strings"

	"github.com/agentstation/csvsync/pkg/constants"
	"github.com/agentstation/csvsync/pkg/tabular"
)

// Config selects the normalization steps.
type Config struct {
	// Trim strips leading and trailing whitespace.
	Trim bool `json:"trim" yaml:"trim" mapstructure:"trim"`
	// CaseInsensitive lower-cases the value.
	CaseInsensitive bool `json:"case_insensitive" yaml:"case_insensitive" mapstructure:"case_insensitive"`
}

// Normalize returns the lookup key for raw. It never fails; an empty result
// means "no key" and such records are never matched.
func Normalize(raw string, cfg Config) string {
	if cfg.Trim {
		raw = strings.TrimSpace(raw)
	}
	if cfg.CaseInsensitive {
		raw = strings.ToLower(raw)
	}
	return raw
}

// Of returns the normalized value of column in rec. Absent columns normalize
// as the empty string.
func Of(rec tabular.Record, column string, cfg Config) string {
	return Normalize(rec[column], cfg)
}

// SplitIdentifiers splits a free-text block of identifiers on any run of
// commas, semicolons, tabs, line breaks or spaces.
func SplitIdentifiers(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(constants.IdentifierSeparators, r)
	})
}
