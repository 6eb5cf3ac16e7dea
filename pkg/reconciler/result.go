package reconciler

import (
	"fmt"

	"github.com/agentstation/csvsync/pkg/keys"
	"github.com/agentstation/csvsync/pkg/tabular"
)

// DeleteResult is the outcome of a filter run.
type DeleteResult struct {
	// Headers are the output columns (always the base file's).
	Headers []string `json:"headers" yaml:"headers"`

	// Kept are the records that survive, in base order.
	Kept []tabular.Record `json:"kept" yaml:"kept"`

	// ToDelete are the records matched by an identifier, in base order.
	ToDelete []tabular.Record `json:"to_delete" yaml:"to_delete"`

	// Requested is the number of identifier tokens supplied.
	Requested int `json:"requested" yaml:"requested"`

	// Distinct is the number of distinct non-empty normalized identifiers.
	Distinct int `json:"distinct" yaml:"distinct"`

	// NotFound lists identifiers that matched no record, as first supplied
	// and in the order they were supplied.
	NotFound []string `json:"not_found,omitempty" yaml:"not_found,omitempty"`

	// Duplicates lists base keys held by more than one record.
	Duplicates []keys.Duplicate `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`
}

// HasChanges reports whether any record would be removed.
func (r *DeleteResult) HasChanges() bool {
	return len(r.ToDelete) > 0
}

// String returns a one-line summary.
func (r *DeleteResult) String() string {
	return fmt.Sprintf("Delete: %d kept, %d removed, %d of %d identifiers not found",
		len(r.Kept), len(r.ToDelete), len(r.NotFound), r.Distinct)
}

// UpsertResult is the outcome of a merge run.
type UpsertResult struct {
	// Headers are the output columns.
	Headers []string `json:"headers" yaml:"headers"`

	// SchemaChanged is set when Headers differ from the base file's headers.
	SchemaChanged bool `json:"schema_changed" yaml:"schema_changed"`

	// Records are all output records: base order, then inserts in
	// modification-file order.
	Records []tabular.Record `json:"-" yaml:"-"`

	// Changed holds the post-merge values of updated base records.
	Changed []tabular.Record `json:"changed" yaml:"changed"`

	// Inserted holds modification records whose key the base lacked.
	Inserted []tabular.Record `json:"inserted" yaml:"inserted"`

	// ChangedFields maps a normalized key to the pre-change value of every
	// column that differs.
	ChangedFields map[string]map[string]string `json:"changed_fields,omitempty" yaml:"changed_fields,omitempty"`

	// Unchanged counts base records written without modification.
	Unchanged int `json:"unchanged" yaml:"unchanged"`

	// Skipped counts modification records without a usable key.
	Skipped int `json:"skipped" yaml:"skipped"`

	// BaseDuplicates and ModDuplicates list keys held by more than one
	// record of the respective file.
	BaseDuplicates []keys.Duplicate `json:"base_duplicates,omitempty" yaml:"base_duplicates,omitempty"`
	ModDuplicates  []keys.Duplicate `json:"mod_duplicates,omitempty" yaml:"mod_duplicates,omitempty"`

	changedKeys map[string]struct{}
}

// ChangedKeys returns the normalized keys of every updated or inserted
// record. These are the rows a serializer must rebuild.
func (r *UpsertResult) ChangedKeys() map[string]struct{} {
	out := make(map[string]struct{}, len(r.changedKeys))
	for k := range r.changedKeys {
		out[k] = struct{}{}
	}
	return out
}

// HasChanges reports whether the merge updated or inserted anything.
func (r *UpsertResult) HasChanges() bool {
	return len(r.Changed) > 0 || len(r.Inserted) > 0 || r.SchemaChanged
}

// String returns a one-line summary.
func (r *UpsertResult) String() string {
	return fmt.Sprintf("Upsert: %d changed, %d inserted, %d unchanged, %d skipped",
		len(r.Changed), len(r.Inserted), r.Unchanged, r.Skipped)
}
