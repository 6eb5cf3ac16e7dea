package table

import (
	"sort"
	"strings"

	"github.com/agentstation/csvsync"
	"github.com/agentstation/csvsync/pkg/constants"
	"github.com/agentstation/csvsync/pkg/differ"
	"github.com/agentstation/csvsync/pkg/keys"
	"github.com/agentstation/csvsync/pkg/reconciler"
	"github.com/agentstation/csvsync/pkg/tabular"
)

// DeleteToTableData converts a delete result to a report: counts, the
// records that would be removed and the identifiers that matched nothing.
func DeleteToTableData(res *reconciler.DeleteResult, wide bool) Report {
	var r Report
	r.add("Summary", summary(
		"Kept", len(res.Kept),
		"Removed", len(res.ToDelete),
		"Identifiers", res.Requested,
		"Distinct", res.Distinct,
		"Not found", len(res.NotFound),
	))
	if len(res.ToDelete) > 0 {
		r.add("Removed records", RecordsToTableData(res.Headers, res.ToDelete, wide))
	}
	if len(res.NotFound) > 0 {
		nf := Data{Headers: []string{"Identifier"}}
		for _, id := range res.NotFound {
			nf.Rows = append(nf.Rows, []string{id})
		}
		r.add("Not found", nf)
	}
	if len(res.Duplicates) > 0 {
		r.add("Duplicate keys", DuplicatesToTableData(res.Duplicates))
	}
	return r
}

// UpsertToTableData converts an upsert result to a report. keyColumn and cfg
// must be the ones the merge ran with.
func UpsertToTableData(res *reconciler.UpsertResult, keyColumn string, cfg keys.Config, wide bool) Report {
	var r Report
	r.add("Summary", summary(
		"Changed", len(res.Changed),
		"Inserted", len(res.Inserted),
		"Unchanged", res.Unchanged,
		"Skipped", res.Skipped,
		"Schema changed", res.SchemaChanged,
		"Columns", strings.Join(res.Headers, ", "),
	))
	if len(res.ChangedFields) > 0 {
		r.add("Changed fields", changedFieldsToTableData(res, keyColumn, cfg, wide))
	}
	if len(res.Inserted) > 0 {
		r.add("Inserted records", RecordsToTableData(res.Headers, res.Inserted, wide))
	}
	if len(res.BaseDuplicates) > 0 {
		r.add("Duplicate keys (base)", DuplicatesToTableData(res.BaseDuplicates))
	}
	if len(res.ModDuplicates) > 0 {
		r.add("Duplicate keys (modifications)", DuplicatesToTableData(res.ModDuplicates))
	}
	return r
}

// changedFieldsToTableData lists one row per changed cell, in key order.
func changedFieldsToTableData(res *reconciler.UpsertResult, keyColumn string, cfg keys.Config, wide bool) Data {
	data := Data{Headers: []string{"Key", "Column", "Old", "New"}}

	after := make(map[string]tabular.Record, len(res.Changed))
	for _, rec := range res.Changed {
		after[keys.Of(rec, keyColumn, cfg)] = rec
	}

	changed := make([]string, 0, len(res.ChangedFields))
	for k := range res.ChangedFields {
		changed = append(changed, k)
	}
	sort.Strings(changed)

	for _, k := range changed {
		for _, h := range res.Headers {
			old, ok := res.ChangedFields[k][h]
			if !ok {
				continue
			}
			data.Rows = append(data.Rows, []string{k, h, old, after[k].Get(h)})
		}
	}
	return truncate(data, wide)
}

// ChangesetToTableData converts a changeset to a report.
func ChangesetToTableData(cs *differ.Changeset, wide bool) Report {
	var r Report
	r.add("Summary", summary(
		"Added", cs.Summary.Added,
		"Changed", cs.Summary.Changed,
		"Removed", cs.Summary.Removed,
		"Unchanged", cs.Summary.Unchanged,
		"Unkeyed", cs.Summary.Unkeyed,
		"Total changes", cs.Summary.TotalChanges,
	))
	if len(cs.Updates) > 0 {
		data := Data{Headers: []string{"Key", "Column", "Old", "New"}}
		for _, u := range cs.Updates {
			for _, c := range u.Changes {
				data.Rows = append(data.Rows, []string{u.Key, c.Column, c.OldValue, c.NewValue})
			}
		}
		r.add("Changed fields", truncate(data, wide))
	}
	if len(cs.Added) > 0 {
		r.add("Added records", RecordsToTableData(cs.Headers, cs.Added, wide))
	}
	if len(cs.Removed) > 0 {
		r.add("Removed records", RecordsToTableData(cs.Headers, cs.Removed, wide))
	}
	if len(cs.BaseDuplicates) > 0 {
		r.add("Duplicate keys (base)", DuplicatesToTableData(cs.BaseDuplicates))
	}
	if len(cs.CompareDuplicates) > 0 {
		r.add("Duplicate keys (compare)", DuplicatesToTableData(cs.CompareDuplicates))
	}
	return r
}

// InspectionToTableData converts a file inspection to a report.
func InspectionToTableData(info *csvsync.Inspection) Report {
	var r Report
	pairs := []any{
		"File", info.Name,
		"Rows", info.Rows,
		"Columns", len(info.Columns),
		"Separator", printable(info.Comma),
		"Quote", info.Quote,
	}
	if info.KeyColumn != "" {
		pairs = append(pairs,
			"Key column", info.KeyColumn,
			"Distinct keys", info.Keyed,
			"Blank keys", info.BlankKeys,
			"Duplicate keys", len(info.Duplicates),
		)
	}
	r.add("File", summary(pairs...))

	cols := Data{
		Headers:         []string{"#", "Column", "Header quoting", "Data quoting"},
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignCenter, AlignCenter},
	}
	for i, c := range info.Columns {
		cols.Rows = append(cols.Rows, []string{cell(i + 1), c.Name, c.HeaderStyle.String(), c.DataStyle.String()})
	}
	r.add("Columns", cols)

	if len(info.Duplicates) > 0 {
		r.add("Duplicate keys", DuplicatesToTableData(info.Duplicates))
	}
	return r
}

func printable(s string) string {
	if s == "\t" {
		return "tab"
	}
	return s
}

// truncate caps a detail table at the preview limit unless wide is set.
func truncate(data Data, wide bool) Data {
	full := len(data.Rows)
	if wide || full <= constants.MaxPreviewRows || len(data.Headers) == 0 {
		return data
	}
	data.Rows = data.Rows[:constants.MaxPreviewRows]
	more := make([]string, len(data.Headers))
	more[0] = moreLabel(full - constants.MaxPreviewRows)
	data.Rows = append(data.Rows, more)
	return data
}
