package serializer

import (
	"strings"

	"github.com/agentstation/csvsync/pkg/constants"
	"github.com/agentstation/csvsync/pkg/quotestyle"
)

// FormatLine joins values with comma, quoting each according to the style at
// the same position. Positions without a style are treated as unquoted.
func FormatLine(values []string, styles []quotestyle.Style, comma rune) string {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteRune(comma)
		}
		style := quotestyle.Unquoted
		if i < len(styles) {
			style = styles[i]
		}
		b.WriteString(FormatField(v, style, comma))
	}
	return b.String()
}

// FormatField renders one value. Empty values stay empty even under a quoted
// style. Other values are quoted when the style asks for it or when they
// contain the separator, a quote character or a line break; the quote
// character is escaped by doubling.
func FormatField(v string, style quotestyle.Style, comma rune) string {
	if v == "" {
		return ""
	}
	if !style.Quoted && !needsQuoting(v, comma) {
		return v
	}
	q := style.Char
	if q == 0 {
		q = constants.DoubleQuote
	}
	qs := string(q)
	return qs + strings.ReplaceAll(v, qs, qs+qs) + qs
}

func needsQuoting(v string, comma rune) bool {
	return strings.ContainsRune(v, comma) ||
		strings.ContainsRune(v, constants.DoubleQuote) ||
		strings.ContainsRune(v, constants.SingleQuote) ||
		strings.ContainsAny(v, "\r\n")
}
