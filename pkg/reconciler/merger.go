package reconciler

import (
	"github.com/agentstation/csvsync/pkg/keys"
	"github.com/agentstation/csvsync/pkg/tabular"
)

// UpsertRequest configures a merge run.
type UpsertRequest struct {
	// KeyColumn must exist in both files.
	KeyColumn string

	// Keys selects key normalization.
	Keys keys.Config

	// Schema selects the output columns. The zero value is SchemaOriginal.
	Schema SchemaMode

	// Duplicates decides which modification record represents a repeated
	// key. Under DuplicatesReject a repeated key in either file fails the run.
	Duplicates keys.DuplicatePolicy
}

// Upsert merges mods into base. Each base record whose key has a pending
// modification is overlaid with the modification's values and compared with
// the original over the output columns; the key is consumed whether or not
// anything differed. Modifications left pending are appended as inserts.
func Upsert(base, mods *tabular.File, req UpsertRequest) (*UpsertResult, error) {
	if err := validateKeyColumn(req.KeyColumn, base, mods); err != nil {
		return nil, err
	}
	schema, err := ParseSchemaMode(string(req.Schema))
	if err != nil {
		return nil, err
	}

	baseIdx, err := keys.NewIndex(base.Name, base.Records, req.KeyColumn, req.Keys, req.Duplicates)
	if err != nil {
		return nil, err
	}
	modIdx, err := keys.NewIndex(mods.Name, mods.Records, req.KeyColumn, req.Keys, req.Duplicates)
	if err != nil {
		return nil, err
	}

	headers := outputHeaders(schema, base.Headers, mods.Headers)
	result := &UpsertResult{
		Headers:        headers,
		SchemaChanged:  len(headers) != len(base.Headers),
		Records:        make([]tabular.Record, 0, len(base.Records)+modIdx.Len()),
		ChangedFields:  make(map[string]map[string]string),
		Skipped:        modIdx.Blank(),
		BaseDuplicates: baseIdx.Duplicates,
		ModDuplicates:  modIdx.Duplicates,
		changedKeys:    make(map[string]struct{}),
	}

	pending := make(map[string]int, modIdx.Len())
	for _, k := range modIdx.Keys() {
		i, _ := modIdx.Lookup(k)
		pending[k] = i
	}

	for _, rec := range base.Records {
		k := keys.Of(rec, req.KeyColumn, req.Keys)
		mi, ok := pending[k]
		if k == "" || !ok {
			result.Records = append(result.Records, rec.Clone())
			result.Unchanged++
			continue
		}
		delete(pending, k)

		merged := overlay(rec, mods.Records[mi], headers)
		before := changedFields(rec, merged, headers)
		if len(before) == 0 {
			result.Records = append(result.Records, rec.Clone())
			result.Unchanged++
			continue
		}
		result.Records = append(result.Records, merged)
		result.Changed = append(result.Changed, merged.Clone())
		result.ChangedFields[k] = before
		result.changedKeys[k] = struct{}{}
	}

	// Walk mods in file order so inserts keep the order they were written in.
	for i, rec := range mods.Records {
		k := keys.Of(rec, req.KeyColumn, req.Keys)
		if mi, ok := pending[k]; !ok || mi != i {
			continue
		}
		delete(pending, k)
		inserted := project(rec, headers)
		result.Records = append(result.Records, inserted)
		result.Inserted = append(result.Inserted, inserted.Clone())
		result.changedKeys[k] = struct{}{}
	}

	return result, nil
}

// overlay copies base and sets every output column the modification carries.
func overlay(base, mod tabular.Record, headers []string) tabular.Record {
	out := base.Clone()
	for _, h := range headers {
		if v, ok := mod[h]; ok {
			out[h] = v
		}
	}
	return out
}

// project keeps only the output columns of rec.
func project(rec tabular.Record, headers []string) tabular.Record {
	out := make(tabular.Record, len(headers))
	for _, h := range headers {
		if v, ok := rec[h]; ok {
			out[h] = v
		}
	}
	return out
}

// changedFields returns the original value of every output column whose
// value differs between before and after. Missing columns compare as "".
func changedFields(before, after tabular.Record, headers []string) map[string]string {
	var diff map[string]string
	for _, h := range headers {
		if before[h] == after[h] {
			continue
		}
		if diff == nil {
			diff = make(map[string]string)
		}
		diff[h] = before[h]
	}
	return diff
}
