package tabular

import (
	"io"
	"strings"
	"unicode/utf8"
)

// quoteReader tokenizes text whose quote character is not '"', which
// encoding/csv cannot be configured for. Quoted fields may contain the
// separator, line breaks and doubled quote characters. Blank lines are skipped.
type quoteReader struct {
	text  string
	pos   int
	comma rune
	quote rune
}

type quoteError struct {
	line int
	msg  string
}

func (e *quoteError) Error() string {
	return e.msg
}

func newQuoteReader(text string, comma, quote rune) *quoteReader {
	return &quoteReader{text: text, comma: comma, quote: quote}
}

// InputOffset returns the byte offset just past the last record read.
func (q *quoteReader) InputOffset() int64 {
	return int64(q.pos)
}

// Read returns the next record.
func (q *quoteReader) Read() ([]string, error) {
	for q.pos < len(q.text) && (q.text[q.pos] == '\n' || q.text[q.pos] == '\r') {
		q.pos++
	}
	if q.pos >= len(q.text) {
		return nil, io.EOF
	}

	start := q.pos
	fields, n, ok := splitRecord(q.text[start:], q.comma, q.quote)
	if !ok {
		return nil, &quoteError{
			line: 1 + strings.Count(q.text[:start], "\n"),
			msg:  "unterminated quoted field",
		}
	}
	q.pos += n
	return fields, nil
}

// splitRecord reads one record from the front of s. It returns the fields,
// the number of bytes consumed including the line terminator, and false when
// a quoted field runs to the end of s without closing.
func splitRecord(s string, comma, quote rune) ([]string, int, bool) {
	var fields []string
	var b strings.Builder
	i := 0

	for {
		b.Reset()
		r, w := utf8.DecodeRuneInString(s[i:])
		if i < len(s) && r == quote {
			i += w
			closed := false
			for i < len(s) {
				r, w = utf8.DecodeRuneInString(s[i:])
				if r == quote {
					if next, nw := utf8.DecodeRuneInString(s[i+w:]); i+w < len(s) && next == quote {
						b.WriteRune(quote)
						i += w + nw
						continue
					}
					i += w
					closed = true
					break
				}
				b.WriteRune(r)
				i += w
			}
			if !closed {
				return nil, 0, false
			}
		}
		for i < len(s) {
			r, w = utf8.DecodeRuneInString(s[i:])
			if r == comma || r == '\n' || r == '\r' {
				break
			}
			b.WriteRune(r)
			i += w
		}
		fields = append(fields, b.String())

		if i >= len(s) {
			return fields, i, true
		}
		r, w = utf8.DecodeRuneInString(s[i:])
		if r == comma {
			i += w
			continue
		}
		if r == '\r' {
			i++
			if i < len(s) && s[i] == '\n' {
				i++
			}
			return fields, i, true
		}
		return fields, i + 1, true
	}
}
