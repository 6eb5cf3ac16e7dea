// Package serializer writes reconciled records back to delimited text. Rows
// that did not change are replayed from their original raw text; every other
// row is rebuilt field by field in the quoting style detected for the file.
package serializer

import (
	"strings"

	"github.com/agentstation/csvsync/pkg/constants"
	"github.com/agentstation/csvsync/pkg/keys"
	"github.com/agentstation/csvsync/pkg/quotestyle"
	"github.com/agentstation/csvsync/pkg/tabular"
)

// Options describe the output and which rows may be replayed.
type Options struct {
	// Headers are the output columns. Nil means the original file's headers.
	Headers []string
	// KeyColumn identifies records for raw-line lookup.
	KeyColumn string
	// Keys is the normalization used to compute keys.
	Keys keys.Config
	// ChangedKeys are normalized keys whose rows must be rebuilt.
	ChangedKeys map[string]struct{}
	// SchemaChanged forces every row to be rebuilt.
	SchemaChanged bool
}

// Output is the serialized text plus how each row was produced.
type Output struct {
	Text     string
	Replayed int
	Rebuilt  int
}

// Serialize renders records against original and returns the text.
func Serialize(records []tabular.Record, original *tabular.File, opts Options) string {
	return Render(records, original, opts).Text
}

// Render renders records against original. Lines are joined with CRLF and
// the text carries no trailing terminator.
func Render(records []tabular.Record, original *tabular.File, opts Options) Output {
	headers := opts.Headers
	if headers == nil {
		headers = original.Headers
	}
	comma := original.Comma
	if comma == 0 {
		comma = constants.DefaultComma
	}

	profile := quotestyle.ProfileOf(original.RawHeader, original.SampleLine(), comma, original.Quote)
	headerStyles := make([]quotestyle.Style, len(headers))
	dataStyles := make([]quotestyle.Style, len(headers))
	for i, h := range headers {
		pos := original.ColumnIndex(h)
		headerStyles[i] = profile.HeaderAt(pos)
		dataStyles[i] = profile.DataAt(pos)
	}

	raw := rawLines(original, opts.KeyColumn, opts.Keys)

	out := Output{}
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, FormatLine(headers, headerStyles, comma))

	values := make([]string, len(headers))
	for _, rec := range records {
		k := keys.Of(rec, opts.KeyColumn, opts.Keys)
		_, changed := opts.ChangedKeys[k]
		if queue := raw[k]; !opts.SchemaChanged && !changed && len(queue) > 0 {
			lines = append(lines, queue[0])
			raw[k] = queue[1:]
			out.Replayed++
			continue
		}
		for i, h := range headers {
			values[i] = rec[h]
		}
		lines = append(lines, FormatLine(values, dataStyles, comma))
		out.Rebuilt++
	}

	out.Text = strings.Join(lines, constants.LineTerminator)
	return out
}

// rawLines groups the original raw lines by normalized key in file order, so
// repeated keys are replayed in the order they were read.
func rawLines(f *tabular.File, column string, cfg keys.Config) map[string][]string {
	out := make(map[string][]string, len(f.Records))
	for i, rec := range f.Records {
		line, ok := f.RawLine(i)
		if !ok {
			continue
		}
		k := keys.Of(rec, column, cfg)
		out[k] = append(out[k], line)
	}
	return out
}
