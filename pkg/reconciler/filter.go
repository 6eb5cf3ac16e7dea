// Package reconciler matches records across files by normalized key. It
// implements the filter (delete) and merge (upsert) workflows; both are pure
// functions over immutable parsed files.
package reconciler

import (
	"github.com/agentstation/csvsync/pkg/keys"
	"github.com/agentstation/csvsync/pkg/tabular"
)

// DeleteRequest configures a filter run.
type DeleteRequest struct {
	// KeyColumn is the column identifiers are matched against.
	KeyColumn string

	// Identifiers are the raw identifier tokens, see keys.SplitIdentifiers.
	Identifiers []string

	// Keys selects key normalization.
	Keys keys.Config

	// Duplicates only matters for DuplicatesReject: every copy of a matched
	// key is removed either way.
	Duplicates keys.DuplicatePolicy
}

// Delete partitions base into records to keep and records to delete. A record
// is deleted when its normalized key equals a normalized identifier; records
// without a key are always kept.
func Delete(base *tabular.File, req DeleteRequest) (*DeleteResult, error) {
	if err := validateKeyColumn(req.KeyColumn, base); err != nil {
		return nil, err
	}

	idx, err := keys.NewIndex(base.Name, base.Records, req.KeyColumn, req.Keys, req.Duplicates)
	if err != nil {
		return nil, err
	}

	// wanted maps each normalized identifier to the first token that produced it.
	wanted := make(map[string]string, len(req.Identifiers))
	var order []string
	for _, id := range req.Identifiers {
		n := keys.Normalize(id, req.Keys)
		if n == "" {
			continue
		}
		if _, ok := wanted[n]; ok {
			continue
		}
		wanted[n] = id
		order = append(order, n)
	}

	result := &DeleteResult{
		Headers:    append([]string(nil), base.Headers...),
		Kept:       make([]tabular.Record, 0, len(base.Records)),
		Requested:  len(req.Identifiers),
		Distinct:   len(order),
		Duplicates: idx.Duplicates,
	}

	for _, rec := range base.Records {
		k := keys.Of(rec, req.KeyColumn, req.Keys)
		if _, hit := wanted[k]; hit && k != "" {
			result.ToDelete = append(result.ToDelete, rec.Clone())
			continue
		}
		result.Kept = append(result.Kept, rec.Clone())
	}

	for _, n := range order {
		if !idx.Has(n) {
			result.NotFound = append(result.NotFound, wanted[n])
		}
	}

	return result, nil
}
