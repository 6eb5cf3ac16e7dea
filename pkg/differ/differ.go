package differ

import (
	"github.com/agentstation/csvsync/pkg/errors"
	"github.com/agentstation/csvsync/pkg/keys"
	"github.com/agentstation/csvsync/pkg/tabular"
)

// Differ handles change detection between two files.
type Differ interface {
	// Compare matches base and compare on keyColumn and classifies every
	// keyed record as added, removed, changed or unchanged.
	Compare(base, compare *tabular.File, keyColumn string) (*Changeset, error)
}

// differ is the default implementation of Differ.
type differ struct {
	keys          keys.Config
	duplicates    keys.DuplicatePolicy
	ignoreColumns map[string]bool
}

// New creates a Differ with default settings: exact keys, last record wins.
func New(opts ...Option) Differ {
	d := &differ{
		duplicates:    keys.DuplicatesLast,
		ignoreColumns: make(map[string]bool),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Compare compares two files.
func (diff *differ) Compare(base, compare *tabular.File, keyColumn string) (*Changeset, error) {
	if base == nil || compare == nil {
		return nil, errors.NewValidationError("file", nil, "both files are required")
	}
	if keyColumn == "" {
		return nil, errors.NewKeyColumnError("")
	}
	var missing []string
	for _, f := range []*tabular.File{base, compare} {
		if !f.HasColumn(keyColumn) {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewKeyColumnError(keyColumn, missing...)
	}

	baseIdx, err := keys.NewIndex(base.Name, base.Records, keyColumn, diff.keys, diff.duplicates)
	if err != nil {
		return nil, err
	}
	cmpIdx, err := keys.NewIndex(compare.Name, compare.Records, keyColumn, diff.keys, diff.duplicates)
	if err != nil {
		return nil, err
	}

	changeset := &Changeset{
		Headers:           tabular.UnionHeaders(base.Headers, compare.Headers),
		KeyColumn:         keyColumn,
		Added:             []tabular.Record{},
		Removed:           []tabular.Record{},
		Changed:           []tabular.Record{},
		Updates:           []RecordUpdate{},
		ChangedFields:     make(map[string]map[string]string),
		BaseDuplicates:    baseIdx.Duplicates,
		CompareDuplicates: cmpIdx.Duplicates,
	}

	unchanged := 0
	for _, k := range baseIdx.Keys() {
		bi, _ := baseIdx.Lookup(k)
		existing := base.Records[bi]

		ci, ok := cmpIdx.Lookup(k)
		if !ok {
			changeset.Removed = append(changeset.Removed, existing.Clone())
			continue
		}

		updated := compare.Records[ci]
		changes := diff.record(existing, updated, changeset.Headers)
		if len(changes) == 0 {
			unchanged++
			continue
		}

		before := make(map[string]string, len(changes))
		for _, c := range changes {
			before[c.Column] = c.OldValue
		}
		changeset.Changed = append(changeset.Changed, updated.Clone())
		changeset.ChangedFields[k] = before
		changeset.Updates = append(changeset.Updates, RecordUpdate{
			Key:      k,
			Existing: existing.Clone(),
			New:      updated.Clone(),
			Changes:  changes,
		})
	}

	for _, k := range cmpIdx.Keys() {
		if baseIdx.Has(k) {
			continue
		}
		ci, _ := cmpIdx.Lookup(k)
		changeset.Added = append(changeset.Added, compare.Records[ci].Clone())
	}

	changeset.summarize(unchanged, baseIdx.Blank()+cmpIdx.Blank())
	return changeset, nil
}

// record compares the normalized values of every column. Columns a record
// lacks compare as "".
func (diff *differ) record(existing, updated tabular.Record, headers []string) []FieldChange {
	var changes []FieldChange
	for _, h := range headers {
		if diff.ignoreColumns[h] {
			continue
		}
		oldValue, newValue := existing[h], updated[h]
		if keys.Normalize(oldValue, diff.keys) == keys.Normalize(newValue, diff.keys) {
			continue
		}
		changes = append(changes, FieldChange{
			Column:   h,
			OldValue: oldValue,
			NewValue: newValue,
		})
	}
	return changes
}
