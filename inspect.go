package csvsync

import (
	"github.com/agentstation/csvsync/pkg/constants"
	"github.com/agentstation/csvsync/pkg/errors"
	"github.com/agentstation/csvsync/pkg/keys"
	"github.com/agentstation/csvsync/pkg/quotestyle"
	"github.com/agentstation/csvsync/pkg/tabular"
)

// Column describes one header of an inspected file.
type Column struct {
	Name        string           `json:"name" yaml:"name"`
	HeaderStyle quotestyle.Style `json:"header_style" yaml:"header_style"`
	DataStyle   quotestyle.Style `json:"data_style" yaml:"data_style"`
}

// Inspection summarizes the layout of a loaded file.
type Inspection struct {
	Name      string   `json:"name" yaml:"name"`
	Rows      int      `json:"rows" yaml:"rows"`
	Comma     string   `json:"comma" yaml:"comma"`
	Quote     string   `json:"quote" yaml:"quote"`
	Columns   []Column `json:"columns" yaml:"columns"`
	KeyColumn string   `json:"key_column,omitempty" yaml:"key_column,omitempty"`

	// Keyed, BlankKeys and Duplicates are only filled when a key column is
	// given.
	Keyed      int              `json:"keyed,omitempty" yaml:"keyed,omitempty"`
	BlankKeys  int              `json:"blank_keys,omitempty" yaml:"blank_keys,omitempty"`
	Duplicates []keys.Duplicate `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`
}

// Inspect reports the headers, row count and detected quoting of f. When
// keyColumn is not empty it also reports how the column keys the records.
func Inspect(f *tabular.File, keyColumn string, cfg keys.Config) (*Inspection, error) {
	comma := f.Comma
	if comma == 0 {
		comma = constants.DefaultComma
	}
	profile := quotestyle.ProfileOf(f.RawHeader, f.SampleLine(), comma, f.Quote)

	out := &Inspection{
		Name:      f.Name,
		Rows:      f.Len(),
		Comma:     string(comma),
		Quote:     string(f.Quote),
		KeyColumn: keyColumn,
		Columns:   make([]Column, len(f.Headers)),
	}
	for i, h := range f.Headers {
		out.Columns[i] = Column{Name: h, HeaderStyle: profile.HeaderAt(i), DataStyle: profile.DataAt(i)}
	}

	if keyColumn == "" {
		return out, nil
	}
	if !f.HasColumn(keyColumn) {
		return nil, errors.NewKeyColumnError(keyColumn, f.Name)
	}
	idx, err := keys.NewIndex(f.Name, f.Records, keyColumn, cfg, keys.DuplicatesLast)
	if err != nil {
		return nil, err
	}
	out.Keyed = idx.Len()
	out.BlankKeys = idx.Blank()
	out.Duplicates = idx.Duplicates
	return out, nil
}
