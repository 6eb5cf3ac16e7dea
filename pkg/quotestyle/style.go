// Package quotestyle infers how a delimited text file quotes its values so
// rebuilt lines can follow the same convention.
package quotestyle

import "github.com/agentstation/csvsync/pkg/constants"

// Style is the quoting convention of one column, or of a whole file.
type Style struct {
	// Quoted reports whether values are wrapped in Char.
	Quoted bool `json:"quoted" yaml:"quoted"`
	// Char is '"' or '\''. Unquoted styles still carry the character to use
	// when a value must be quoted anyway.
	Char rune `json:"char" yaml:"char"`
}

// Unquoted is the style of a file with no quoting evidence.
var Unquoted = Style{Char: constants.DoubleQuote}

// String renders the style for reports.
func (s Style) String() string {
	if !s.Quoted {
		return "none"
	}
	return string(s.Char) + "…" + string(s.Char)
}

// Profile holds the styles derived once per file: one per header position,
// one per data position, and the file-wide fallback used for positions the
// sample line does not cover.
type Profile struct {
	Header         []Style
	Data           []Style
	HeaderFallback Style
	DataFallback   Style
}

// HeaderAt returns the style for header position i.
func (p Profile) HeaderAt(i int) Style {
	if i >= 0 && i < len(p.Header) {
		return p.Header[i]
	}
	return p.HeaderFallback
}

// DataAt returns the style for data position i.
func (p Profile) DataAt(i int) Style {
	if i >= 0 && i < len(p.Data) {
		return p.Data[i]
	}
	return p.DataFallback
}

// ProfileOf derives the profile of a file from its raw header line and its
// sample line (the first data line, or the header when there is no data).
// quote is the character the file was tokenized with; zero means '"'.
func ProfileOf(rawHeader, sample string, comma, quote rune) Profile {
	if quote == 0 {
		quote = constants.DoubleQuote
	}

	headerWide := DetectLine(rawHeader, comma, quote)
	dataWide := headerWide
	if sample != "" {
		dataWide = DetectLine(sample, comma, quote)
	}

	p := Profile{
		HeaderFallback: headerWide,
		DataFallback:   dataWide,
	}
	if rawHeader != "" {
		p.Header = DetectColumns(rawHeader, comma, quote)
	}
	if sample != "" {
		p.Data = DetectColumns(sample, comma, quote)
	}
	return p
}
