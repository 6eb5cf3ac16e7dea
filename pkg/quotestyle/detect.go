package quotestyle

import (
	"unicode/utf8"

	"github.com/agentstation/csvsync/pkg/constants"
)

func isQuote(r rune) bool {
	return r == constants.DoubleQuote || r == constants.SingleQuote
}

// Sniff finds the first field on the first line of text that opens with a
// quote character. closed reports whether that field is terminated properly:
// the first undoubled closing quote is followed by a separator, a line break
// or the end of text. A closed field may span lines. ok is false when no
// field on the line opens with a quote.
func Sniff(text string, comma rune) (quote rune, closed, ok bool) {
	atFieldStart := true
	for i, r := range text {
		if r == '\n' {
			break
		}
		if atFieldStart && isQuote(r) {
			return r, closes(text[i+utf8.RuneLen(r):], comma, r), true
		}
		atFieldStart = r == comma
	}
	return 0, false, false
}

// closes scans the body of a quoted field.
func closes(s string, comma, q rune) bool {
	for i := 0; i < len(s); {
		r, w := utf8.DecodeRuneInString(s[i:])
		i += w
		if r != q {
			continue
		}
		if i == len(s) {
			return true
		}
		next, nw := utf8.DecodeRuneInString(s[i:])
		switch next {
		case q:
			i += nw
		case comma, '\r', '\n':
			return true
		default:
			return false
		}
	}
	return false
}

// DetectLine reports the line-wide style for a file tokenized with quote:
// quoted when any field of the line opens with quote.
func DetectLine(line string, comma, quote rune) Style {
	atFieldStart := true
	for _, r := range line {
		if atFieldStart && r == quote {
			return Style{Quoted: true, Char: quote}
		}
		atFieldStart = r == comma
	}
	return Style{Char: quote}
}

// DetectColumns splits line into fields, honoring quoted separators and
// doubled quotes, and reports the style of each field position. Only quote
// counts as quoting evidence; a field that opens with the other quote
// character holds that character literally.
func DetectColumns(line string, comma, quote rune) []Style {
	var styles []Style
	i := 0
	for {
		r, w := utf8.DecodeRuneInString(line[i:])
		if i < len(line) && r == quote {
			styles = append(styles, Style{Quoted: true, Char: quote})
			i += w
			for i < len(line) {
				r, w = utf8.DecodeRuneInString(line[i:])
				i += w
				if r != quote {
					continue
				}
				if next, nw := utf8.DecodeRuneInString(line[i:]); i < len(line) && next == quote {
					i += nw
					continue
				}
				break
			}
		} else {
			styles = append(styles, Style{Char: quote})
		}

		for i < len(line) {
			r, w = utf8.DecodeRuneInString(line[i:])
			if r == comma {
				break
			}
			i += w
		}
		if i >= len(line) {
			return styles
		}
		_, w = utf8.DecodeRuneInString(line[i:])
		i += w
	}
}
