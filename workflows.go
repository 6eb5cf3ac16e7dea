package csvsync

import (
	"context"

	"github.com/agentstation/csvsync/pkg/differ"
	"github.com/agentstation/csvsync/pkg/keys"
	"github.com/agentstation/csvsync/pkg/logging"
	"github.com/agentstation/csvsync/pkg/reconciler"
	"github.com/agentstation/csvsync/pkg/serializer"
	"github.com/agentstation/csvsync/pkg/tabular"
)

// DeleteRequest selects the records a delete run removes.
type DeleteRequest struct {
	// KeyColumn is the column identifiers are matched against.
	KeyColumn string

	// Identifiers is a free-text block of identifiers separated by commas,
	// semicolons, tabs, line breaks or spaces.
	Identifiers string
}

// DeleteOutput is the outcome of a delete run.
type DeleteOutput struct {
	Result *reconciler.DeleteResult
	Output serializer.Output
}

// UpsertRequest configures an upsert run.
type UpsertRequest struct {
	KeyColumn string
	Schema    reconciler.SchemaMode
}

// UpsertOutput is the outcome of an upsert run.
type UpsertOutput struct {
	Result *reconciler.UpsertResult
	Output serializer.Output
}

// CompareRequest configures a compare run.
type CompareRequest struct {
	KeyColumn string

	// IgnoreColumns are left out of value comparison.
	IgnoreColumns []string

	// Apply restricts which kinds of change are reported and exported.
	Apply differ.ApplyStrategy

	// Export renders the changeset as delimited text with a leading change
	// column.
	Export bool
}

// CompareOutput is the outcome of a compare run.
type CompareOutput struct {
	Changeset *differ.Changeset

	// Export is only set when the request asked for it.
	Export *serializer.Output
}

// Delete removes the records of base whose key is listed in the request and
// renders the kept records. Kept rows are always replayed from their raw text.
func (c *client) Delete(ctx context.Context, base *tabular.File, req DeleteRequest) (*DeleteOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx = logging.WithOperation(logging.WithKeyColumn(ctx, req.KeyColumn), "delete")
	logger := logging.FromContext(ctx)

	result, err := reconciler.Delete(base, reconciler.DeleteRequest{
		KeyColumn:   req.KeyColumn,
		Identifiers: keys.SplitIdentifiers(req.Identifiers),
		Keys:        c.config.keys,
		Duplicates:  c.config.duplicates,
	})
	if err != nil {
		return nil, err
	}

	out := serializer.Render(result.Kept, base, serializer.Options{
		Headers:   result.Headers,
		KeyColumn: req.KeyColumn,
		Keys:      c.config.keys,
	})

	logger.Debug().
		Int("kept", len(result.Kept)).
		Int("removed", len(result.ToDelete)).
		Int("not_found", len(result.NotFound)).
		Int("duplicates", len(result.Duplicates)).
		Msg("Delete complete")

	c.hooks.removed(result.ToDelete)
	return &DeleteOutput{Result: result, Output: out}, nil
}

// Upsert merges mods into base and renders the merged records. Rows the merge
// did not change are replayed; updated and inserted rows are rebuilt in the
// base file's quoting style. A union schema rebuilds every row.
func (c *client) Upsert(ctx context.Context, base, mods *tabular.File, req UpsertRequest) (*UpsertOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx = logging.WithOperation(logging.WithKeyColumn(ctx, req.KeyColumn), "upsert")
	logger := logging.FromContext(ctx)

	result, err := reconciler.Upsert(base, mods, reconciler.UpsertRequest{
		KeyColumn:  req.KeyColumn,
		Keys:       c.config.keys,
		Schema:     req.Schema,
		Duplicates: c.config.duplicates,
	})
	if err != nil {
		return nil, err
	}

	out := serializer.Render(result.Records, base, serializer.Options{
		Headers:       result.Headers,
		KeyColumn:     req.KeyColumn,
		Keys:          c.config.keys,
		ChangedKeys:   result.ChangedKeys(),
		SchemaChanged: result.SchemaChanged,
	})

	logger.Debug().
		Int("changed", len(result.Changed)).
		Int("inserted", len(result.Inserted)).
		Int("skipped", result.Skipped).
		Bool("schema_changed", result.SchemaChanged).
		Int("replayed", out.Replayed).
		Int("rebuilt", out.Rebuilt).
		Msg("Upsert complete")

	for _, rec := range result.Changed {
		k := keys.Of(rec, req.KeyColumn, c.config.keys)
		old := rec.Clone()
		for col, v := range result.ChangedFields[k] {
			old[col] = v
		}
		c.hooks.updated(old, rec)
	}
	c.hooks.added(result.Inserted)

	return &UpsertOutput{Result: result, Output: out}, nil
}

// Compare reports how other differs from base.
func (c *client) Compare(ctx context.Context, base, other *tabular.File, req CompareRequest) (*CompareOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx = logging.WithOperation(logging.WithKeyColumn(ctx, req.KeyColumn), "compare")
	logger := logging.FromContext(ctx)

	d := differ.New(
		differ.WithKeys(c.config.keys),
		differ.WithDuplicatePolicy(c.config.duplicates),
		differ.WithIgnoredColumns(req.IgnoreColumns...),
	)
	changeset, err := d.Compare(base, other, req.KeyColumn)
	if err != nil {
		return nil, err
	}
	changeset = changeset.Filter(req.Apply)

	logger.Debug().
		Int("added", changeset.Summary.Added).
		Int("changed", changeset.Summary.Changed).
		Int("removed", changeset.Summary.Removed).
		Int("unchanged", changeset.Summary.Unchanged).
		Msg("Compare complete")

	c.hooks.added(changeset.Added)
	for _, u := range changeset.Updates {
		c.hooks.updated(u.Existing, u.New)
	}
	c.hooks.removed(changeset.Removed)

	output := &CompareOutput{Changeset: changeset}
	if req.Export {
		out := ExportChangeset(changeset, base)
		output.Export = &out
	}
	return output, nil
}
