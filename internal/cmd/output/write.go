package output

import (
	"io"
)

// Write renders a report in format. Table-like formats render the converted
// table data; JSON and YAML render the raw value so no detail is lost.
func Write(w io.Writer, format Format, raw any, tabular func(wide bool) any) error {
	formatter := NewFormatter(format)
	if IsTabular(format) && tabular != nil {
		return formatter.Format(w, tabular(format == FormatWide))
	}
	return formatter.Format(w, raw)
}
