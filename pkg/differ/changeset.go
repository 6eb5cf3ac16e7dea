// Package differ provides functionality for comparing two versions of a
// delimited text file and detecting added, removed and changed records.
package differ

import (
	"fmt"
	"strings"

	"github.com/agentstation/csvsync/pkg/errors"
	"github.com/agentstation/csvsync/pkg/keys"
	"github.com/agentstation/csvsync/pkg/tabular"
)

// ChangeType represents the type of change.
type ChangeType string

const (
	// ChangeTypeAdd indicates a record only the compare file has.
	ChangeTypeAdd ChangeType = "added"
	// ChangeTypeUpdate indicates a record whose values differ.
	ChangeTypeUpdate ChangeType = "changed"
	// ChangeTypeRemove indicates a record only the base file has.
	ChangeTypeRemove ChangeType = "removed"
)

// FieldChange represents a change to a single column of a record.
type FieldChange struct {
	Column   string `json:"column" yaml:"column"`
	OldValue string `json:"old_value" yaml:"old_value"`
	NewValue string `json:"new_value" yaml:"new_value"`
}

// RecordUpdate describes a record present in both files with differing values.
type RecordUpdate struct {
	Key      string         `json:"key" yaml:"key"`           // normalized key
	Existing tabular.Record `json:"existing" yaml:"existing"` // base record
	New      tabular.Record `json:"new" yaml:"new"`           // compare record
	Changes  []FieldChange  `json:"changes" yaml:"changes"`   // in header order
}

// Changeset represents all differences between two files.
type Changeset struct {
	// Headers are the output columns: base headers, then compare-only headers.
	Headers []string `json:"headers" yaml:"headers"`

	// KeyColumn is the column records were matched on.
	KeyColumn string `json:"key_column" yaml:"key_column"`

	Added   []tabular.Record `json:"added" yaml:"added"`     // compare order
	Removed []tabular.Record `json:"removed" yaml:"removed"` // base order
	Changed []tabular.Record `json:"changed" yaml:"changed"` // post-change values, base order

	// Updates carries the field-level detail of each entry of Changed.
	Updates []RecordUpdate `json:"updates" yaml:"updates"`

	// ChangedFields maps a normalized key to the base value of every column
	// that differs.
	ChangedFields map[string]map[string]string `json:"changed_fields,omitempty" yaml:"changed_fields,omitempty"`

	BaseDuplicates    []keys.Duplicate `json:"base_duplicates,omitempty" yaml:"base_duplicates,omitempty"`
	CompareDuplicates []keys.Duplicate `json:"compare_duplicates,omitempty" yaml:"compare_duplicates,omitempty"`

	Summary ChangesetSummary `json:"summary" yaml:"summary"`
}

// ChangesetSummary provides summary statistics for a changeset.
type ChangesetSummary struct {
	Added        int `json:"added" yaml:"added"`
	Removed      int `json:"removed" yaml:"removed"`
	Changed      int `json:"changed" yaml:"changed"`
	Unchanged    int `json:"unchanged" yaml:"unchanged"`
	Unkeyed      int `json:"unkeyed" yaml:"unkeyed"` // records of either file without a key
	TotalChanges int `json:"total_changes" yaml:"total_changes"`
}

// HasChanges returns true if the files differ in any keyed record.
func (c *Changeset) HasChanges() bool {
	return c.Summary.TotalChanges > 0
}

// IsEmpty returns true if there are no changes.
func (c *Changeset) IsEmpty() bool {
	return c.Summary.TotalChanges == 0
}

func (c *Changeset) summarize(unchanged, unkeyed int) {
	c.Summary = ChangesetSummary{
		Added:        len(c.Added),
		Removed:      len(c.Removed),
		Changed:      len(c.Changed),
		Unchanged:    unchanged,
		Unkeyed:      unkeyed,
		TotalChanges: len(c.Added) + len(c.Removed) + len(c.Changed),
	}
}

// String returns a human-readable summary of the changeset.
func (c *Changeset) String() string {
	if c.IsEmpty() {
		return "No changes"
	}
	var parts []string
	if n := len(c.Added); n > 0 {
		parts = append(parts, fmt.Sprintf("%d added", n))
	}
	if n := len(c.Changed); n > 0 {
		parts = append(parts, fmt.Sprintf("%d changed", n))
	}
	if n := len(c.Removed); n > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", n))
	}
	return fmt.Sprintf("Changeset: %s (Total: %d changes)", strings.Join(parts, ", "), c.Summary.TotalChanges)
}

// ApplyStrategy represents which kinds of change a consumer wants.
type ApplyStrategy string

const (
	// ApplyAll keeps all changes including removals.
	ApplyAll ApplyStrategy = "all"

	// ApplyAdditive keeps additions and updates, never removals.
	ApplyAdditive ApplyStrategy = "additive"

	// ApplyUpdatesOnly keeps updates to existing records.
	ApplyUpdatesOnly ApplyStrategy = "updates-only"

	// ApplyAdditionsOnly keeps new additions.
	ApplyAdditionsOnly ApplyStrategy = "additions-only"
)

// ParseApplyStrategy validates a strategy name. The empty string is ApplyAll.
func ParseApplyStrategy(s string) (ApplyStrategy, error) {
	switch a := ApplyStrategy(strings.ToLower(strings.TrimSpace(s))); a {
	case "":
		return ApplyAll, nil
	case ApplyAll, ApplyAdditive, ApplyUpdatesOnly, ApplyAdditionsOnly:
		return a, nil
	default:
		return "", errors.NewValidationError("apply", s, fmt.Sprintf("unknown apply strategy %q: must be one of all, additive, updates-only, additions-only", s))
	}
}

// Filter returns a changeset restricted to the kinds of change the strategy
// keeps.
func (c *Changeset) Filter(strategy ApplyStrategy) *Changeset {
	if strategy == ApplyAll || strategy == "" {
		return c
	}

	filtered := &Changeset{
		Headers:           c.Headers,
		KeyColumn:         c.KeyColumn,
		ChangedFields:     map[string]map[string]string{},
		BaseDuplicates:    c.BaseDuplicates,
		CompareDuplicates: c.CompareDuplicates,
	}

	switch strategy {
	case ApplyAdditive:
		filtered.Added = c.Added
		filtered.Changed, filtered.Updates, filtered.ChangedFields = c.Changed, c.Updates, c.ChangedFields
	case ApplyUpdatesOnly:
		filtered.Changed, filtered.Updates, filtered.ChangedFields = c.Changed, c.Updates, c.ChangedFields
	case ApplyAdditionsOnly:
		filtered.Added = c.Added
	}

	filtered.summarize(c.Summary.Unchanged, c.Summary.Unkeyed)
	return filtered
}
