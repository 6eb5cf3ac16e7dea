package csvsync

import (
	"slices"

	"github.com/agentstation/csvsync/pkg/constants"
	"github.com/agentstation/csvsync/pkg/differ"
	"github.com/agentstation/csvsync/pkg/serializer"
	"github.com/agentstation/csvsync/pkg/tabular"
)

// ExportChangeset renders a changeset as delimited text in base's quoting
// style. A leading column names the kind of change of each row: added rows
// first, then changed rows with their new values, then removed rows.
func ExportChangeset(changeset *differ.Changeset, base *tabular.File) serializer.Output {
	column := changeColumn(changeset.Headers)
	headers := append([]string{column}, changeset.Headers...)

	records := make([]tabular.Record, 0, changeset.Summary.TotalChanges)
	tag := func(kind differ.ChangeType, recs []tabular.Record) {
		for _, rec := range recs {
			row := rec.Clone()
			row[column] = string(kind)
			records = append(records, row)
		}
	}
	tag(differ.ChangeTypeAdd, changeset.Added)
	tag(differ.ChangeTypeUpdate, changeset.Changed)
	tag(differ.ChangeTypeRemove, changeset.Removed)

	return serializer.Render(records, base, serializer.Options{
		Headers:       headers,
		KeyColumn:     changeset.KeyColumn,
		SchemaChanged: true,
	})
}

// changeColumn picks a name for the change column that no data column uses.
func changeColumn(headers []string) string {
	name := constants.ChangeColumn
	for slices.Contains(headers, name) {
		name = "_" + name
	}
	return name
}
