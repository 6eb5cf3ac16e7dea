package tabular

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/agentstation/csvsync/pkg/constants"
	"github.com/agentstation/csvsync/pkg/errors"
	"github.com/agentstation/csvsync/pkg/logging"
	"github.com/agentstation/csvsync/pkg/quotestyle"
)

// Options control how text is tokenized.
type Options struct {
	// Comma is the field separator. Defaults to ','.
	Comma rune
	// Quote forces the quote character. Zero sniffs it from the first lines.
	Quote rune
}

// Option configures Parse.
type Option func(*Options)

// WithComma sets the field separator.
func WithComma(comma rune) Option {
	return func(o *Options) {
		o.Comma = comma
	}
}

// WithQuote forces the quote character instead of sniffing it.
func WithQuote(quote rune) Option {
	return func(o *Options) {
		o.Quote = quote
	}
}

func newOptions(opts ...Option) Options {
	o := Options{Comma: constants.DefaultComma}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Comma == 0 {
		o.Comma = constants.DefaultComma
	}
	return o
}

// recordReader is the tokenizer surface Parse relies on. InputOffset must
// report the byte offset just past the record most recently returned.
type recordReader interface {
	Read() ([]string, error)
	InputOffset() int64
}

// Load reads and parses the file at path.
func Load(ctx context.Context, path string, opts ...Option) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	f, err := Parse(path, data, opts...)
	if err != nil {
		return nil, err
	}
	logging.FromContext(logging.WithFile(ctx, path)).Debug().
		Int("columns", len(f.Headers)).
		Int("rows", f.Len()).
		Str("quote", string(f.Quote)).
		Msg("Loaded file")
	return f, nil
}

// Read parses everything r yields. name is used in errors and as File.Name.
func Read(ctx context.Context, r io.Reader, name string, opts ...Option) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapIO("read", name, err)
	}
	return Parse(name, data, opts...)
}

// Parse tokenizes data into a File. The first record is the header. On any
// failure no partial File is returned.
func Parse(name string, data []byte, opts ...Option) (*File, error) {
	o := newOptions(opts...)

	text, err := decodeText(name, data)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewParseError(name, 0, "no header row", nil)
	}

	quote := o.Quote
	if quote == 0 {
		quote = sniffQuote(text, o.Comma)
	}

	var rr recordReader
	if quote == constants.DoubleQuote {
		cr := csv.NewReader(strings.NewReader(text))
		cr.Comma = o.Comma
		cr.LazyQuotes = true
		cr.FieldsPerRecord = -1
		rr = cr
	} else {
		rr = newQuoteReader(text, o.Comma, quote)
	}

	f := &File{
		Name:  name,
		Comma: o.Comma,
		Quote: quote,
	}

	header, err := rr.Read()
	if err != nil {
		return nil, readError(name, 1, err)
	}
	var prev int64
	f.RawHeader, prev = rawSlice(text, prev, rr.InputOffset())

	seen := make(map[string]struct{}, len(header))
	for _, h := range header {
		if _, dup := seen[h]; dup {
			return nil, errors.NewParseError(name, 1, fmt.Sprintf("duplicate column name %q", h), nil)
		}
		seen[h] = struct{}{}
	}
	f.Headers = header

	for row := 2; ; row++ {
		fields, err := rr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, readError(name, row, err)
		}
		if len(fields) > len(header) && !blankTail(fields[len(header):]) {
			return nil, errors.NewParseError(name, row,
				fmt.Sprintf("record has %d fields, header has %d", len(fields), len(header)), nil)
		}

		rec := make(Record, len(header))
		for i, v := range fields {
			if i >= len(header) {
				break
			}
			rec[header[i]] = v
		}

		var raw string
		raw, prev = rawSlice(text, prev, rr.InputOffset())
		f.Records = append(f.Records, rec)
		f.RawLines = append(f.RawLines, raw)
	}

	return f, nil
}

// decodeText honors a UTF-8 or UTF-16 byte order mark and rejects text that
// is not valid UTF-8 once decoded.
func decodeText(name string, data []byte) (string, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return "", errors.NewParseError(name, 0, "decode text", err)
	}
	if !utf8.Valid(out) {
		return "", errors.NewParseError(name, 0, "invalid UTF-8 text", nil)
	}
	return string(out), nil
}

// sniffQuote picks the tokenizer quote character from the first data line,
// then the header line. A leading apostrophe only selects single quotes when
// it opens a field that closes properly; otherwise it is literal text and the
// file is read with double quotes.
func sniffQuote(text string, comma rune) rune {
	_, rest, _ := strings.Cut(text, "\n")
	for _, sample := range []string{rest, text} {
		q, closed, ok := quotestyle.Sniff(sample, comma)
		if !ok {
			continue
		}
		if q == constants.DoubleQuote || closed {
			return q
		}
	}
	return constants.DoubleQuote
}

// rawSlice cuts the text of one record out of the source. Blank lines the
// tokenizer skipped are dropped from the front and the terminator from the end.
func rawSlice(text string, start, end int64) (string, int64) {
	s := text[start:end]
	s = strings.TrimLeft(s, "\r\n")
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, end
}

func blankTail(fields []string) bool {
	for _, f := range fields {
		if f != "" {
			return false
		}
	}
	return true
}

func readError(name string, line int, err error) error {
	if err == io.EOF {
		return errors.NewParseError(name, 0, "no header row", nil)
	}
	var pe *csv.ParseError
	if stderrors.As(err, &pe) {
		return &errors.ParseError{File: name, Line: pe.StartLine, Column: pe.Column, Message: pe.Err.Error(), Err: err}
	}
	var qe *quoteError
	if stderrors.As(err, &qe) {
		return &errors.ParseError{File: name, Line: qe.line, Message: qe.msg, Err: err}
	}
	return errors.WrapParse(name, line, err)
}
