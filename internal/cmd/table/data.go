// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"strconv"
	"strings"

	"github.com/agentstation/csvsync/pkg/constants"
	"github.com/agentstation/csvsync/pkg/keys"
	"github.com/agentstation/csvsync/pkg/tabular"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// Section is one titled table of a report.
type Section struct {
	Title string
	Data  Data
}

// Report is a sequence of tables rendered one after another.
type Report struct {
	Sections []Section
}

func (r *Report) add(title string, data Data) {
	r.Sections = append(r.Sections, Section{Title: title, Data: data})
}

// summary builds a two-column metric table.
func summary(pairs ...any) Data {
	data := Data{
		Headers:         []string{"Metric", "Value"},
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		data.Rows = append(data.Rows, []string{pairs[i].(string), cell(pairs[i+1])})
	}
	return data
}

func cell(v any) string {
	switch x := v.(type) {
	case int:
		return strconv.Itoa(x)
	case bool:
		if x {
			return "yes"
		}
		return "no"
	case string:
		return x
	}
	return ""
}

// RecordsToTableData lays records out under headers. Unless wide is set only
// the first constants.MaxPreviewRows records are shown, followed by a row
// noting how many were left out.
func RecordsToTableData(headers []string, records []tabular.Record, wide bool) Data {
	shown := records
	if !wide && len(shown) > constants.MaxPreviewRows {
		shown = shown[:constants.MaxPreviewRows]
	}

	rows := make([][]string, 0, len(shown)+1)
	for _, rec := range shown {
		row := make([]string, len(headers))
		for i, h := range headers {
			row[i] = rec.Get(h)
		}
		rows = append(rows, row)
	}
	if hidden := len(records) - len(shown); hidden > 0 && len(headers) > 0 {
		more := make([]string, len(headers))
		more[0] = moreLabel(hidden)
		rows = append(rows, more)
	}
	return Data{Headers: headers, Rows: rows}
}

// DuplicatesToTableData lists repeated keys with their 1-based record numbers.
func DuplicatesToTableData(dups []keys.Duplicate) Data {
	data := Data{
		Headers:         []string{"Key", "Records"},
		ColumnAlignment: []Align{AlignLeft, AlignLeft},
	}
	for _, d := range dups {
		nums := make([]string, len(d.Rows))
		for i, r := range d.Rows {
			nums[i] = strconv.Itoa(r + 1)
		}
		data.Rows = append(data.Rows, []string{d.Key, strings.Join(nums, ", ")})
	}
	return data
}

func moreLabel(hidden int) string {
	return "… " + strconv.Itoa(hidden) + " more"
}
