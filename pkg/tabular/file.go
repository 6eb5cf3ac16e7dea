// Package tabular loads delimited text into ordered records while keeping the
// original text of the header line and of every data line, so unchanged rows
// can be written back byte for byte.
package tabular

import (
	"maps"
	"slices"
)

// Record maps a column name to its raw string value. Columns a row does not
// carry are absent rather than empty.
type Record map[string]string

// Get returns the value for column, or "" when the column is absent.
func (r Record) Get(column string) string {
	return r[column]
}

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return Record{}
	}
	return maps.Clone(r)
}

// File is a parsed delimited text file. It is immutable after Parse: callers
// that need to change records work on clones.
type File struct {
	// Name identifies the source (usually the file path).
	Name string

	// Headers are the unique column names in file order.
	Headers []string

	// Records are the data rows in file order.
	Records []Record

	// RawHeader is the header line exactly as it appeared, without terminator.
	RawHeader string

	// RawLines holds the text of each data row, index-aligned with Records.
	// A quoted field spanning several physical lines stays in one entry.
	RawLines []string

	// Comma is the field separator the file was read with.
	Comma rune

	// Quote is the quote character the tokenizer honored.
	Quote rune
}

// Len returns the number of data records.
func (f *File) Len() int {
	return len(f.Records)
}

// HasColumn reports whether name is one of the file's headers.
func (f *File) HasColumn(name string) bool {
	return slices.Contains(f.Headers, name)
}

// ColumnIndex returns the position of name in Headers, or -1.
func (f *File) ColumnIndex(name string) int {
	return slices.Index(f.Headers, name)
}

// RawLine returns the original text of record i.
func (f *File) RawLine(i int) (string, bool) {
	if i < 0 || i >= len(f.RawLines) {
		return "", false
	}
	return f.RawLines[i], true
}

// SampleLine returns the line quote detection should look at: the first data
// line, or the header line when the file has no data.
func (f *File) SampleLine() string {
	if len(f.RawLines) > 0 {
		return f.RawLines[0]
	}
	return f.RawHeader
}

// CloneRecords returns deep copies of all records.
func (f *File) CloneRecords() []Record {
	out := make([]Record, len(f.Records))
	for i, r := range f.Records {
		out[i] = r.Clone()
	}
	return out
}

// UnionHeaders returns the headers of f followed by every header of other
// that f lacks, in other's order.
func (f *File) UnionHeaders(other *File) []string {
	return UnionHeaders(f.Headers, other.Headers)
}

// UnionHeaders appends to base every name of extra that base lacks, keeping
// first-seen order. The result is a new slice.
func UnionHeaders(base, extra []string) []string {
	out := slices.Clone(base)
	seen := make(map[string]struct{}, len(base)+len(extra))
	for _, h := range base {
		seen[h] = struct{}{}
	}
	for _, h := range extra {
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}
