package csvsync

import (
	"fmt"
	"unicode/utf8"

	"github.com/agentstation/csvsync/pkg/constants"
	"github.com/agentstation/csvsync/pkg/errors"
	"github.com/agentstation/csvsync/pkg/keys"
	"github.com/agentstation/csvsync/pkg/tabular"
)

// Option is a function that configures a Client
type Option func(*config) error

// config holds the settings shared by every workflow a client runs.
type config struct {
	keys       keys.Config
	duplicates keys.DuplicatePolicy
	comma      rune
	quote      rune
}

func defaultConfig() *config {
	return &config{
		duplicates: keys.DuplicatesLast,
		comma:      constants.DefaultComma,
	}
}

func (c *config) parseOptions() []tabular.Option {
	opts := []tabular.Option{tabular.WithComma(c.comma)}
	if c.quote != 0 {
		opts = append(opts, tabular.WithQuote(c.quote))
	}
	return opts
}

// WithKeys configures key normalization
func WithKeys(cfg keys.Config) Option {
	return func(c *config) error {
		c.keys = cfg
		return nil
	}
}

// WithTrim configures whether keys are trimmed before matching
func WithTrim(enabled bool) Option {
	return func(c *config) error {
		c.keys.Trim = enabled
		return nil
	}
}

// WithCaseInsensitive configures whether keys match regardless of case
func WithCaseInsensitive(enabled bool) Option {
	return func(c *config) error {
		c.keys.CaseInsensitive = enabled
		return nil
	}
}

// WithDuplicatePolicy configures how repeated keys within one file are handled
func WithDuplicatePolicy(policy keys.DuplicatePolicy) Option {
	return func(c *config) error {
		p, err := keys.ParseDuplicatePolicy(string(policy))
		if err != nil {
			return err
		}
		c.duplicates = p
		return nil
	}
}

// WithComma configures the field separator used to read files
func WithComma(comma rune) Option {
	return func(c *config) error {
		if !validDelim(comma) {
			return errors.NewValidationError("comma", comma, fmt.Sprintf("invalid separator %q", comma))
		}
		c.comma = comma
		return nil
	}
}

// WithQuote forces the quote character instead of detecting it per file
func WithQuote(quote rune) Option {
	return func(c *config) error {
		if quote != constants.DoubleQuote && quote != constants.SingleQuote {
			return errors.NewValidationError("quote", quote, fmt.Sprintf("quote must be %q or %q", constants.DoubleQuote, constants.SingleQuote))
		}
		c.quote = quote
		return nil
	}
}

func validDelim(r rune) bool {
	switch r {
	case 0, '\r', '\n', constants.DoubleQuote, constants.SingleQuote, utf8.RuneError:
		return false
	}
	return true
}
