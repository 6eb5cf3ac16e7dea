// Package cmdutil provides shared flags and configuration utilities for csvsync commands.
package cmdutil

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/csvsync"
	"github.com/agentstation/csvsync/internal/config"
	"github.com/agentstation/csvsync/pkg/errors"
	"github.com/agentstation/csvsync/pkg/keys"
)

// KeyFlags holds the flags that control key matching.
type KeyFlags struct {
	Key             string
	Trim            bool
	CaseInsensitive bool
	Duplicates      string
	Comma           string
}

// AddKeyFlags adds key matching flags to a command.
func AddKeyFlags(cmd *cobra.Command) *KeyFlags {
	flags := &KeyFlags{}

	cmd.Flags().StringVarP(&flags.Key, "key", "k", "",
		"Key column records are matched on (default from key_column config)")
	cmd.Flags().BoolVar(&flags.Trim, "trim", false,
		"Ignore leading and trailing whitespace in keys")
	cmd.Flags().BoolVarP(&flags.CaseInsensitive, "case-insensitive", "i", false,
		"Match keys regardless of letter case")
	cmd.Flags().StringVar(&flags.Duplicates, "duplicates", "",
		"Duplicate key policy: last, first, reject")
	cmd.Flags().StringVar(&flags.Comma, "comma", "",
		"Field separator (a single character or \"tab\")")

	return flags
}

// Resolve merges the flags over defaults and requires a key column. Flags
// the user did not set keep the configured value.
func (f *KeyFlags) Resolve(cmd *cobra.Command, defaults config.Defaults) (config.Defaults, error) {
	out := f.Merge(cmd, defaults)
	if strings.TrimSpace(out.KeyColumn) == "" {
		return out, errors.NewValidationError("key", out.KeyColumn, "a key column is required (--key or key_column)")
	}
	return out, nil
}

// Merge is Resolve without the key column requirement.
func (f *KeyFlags) Merge(cmd *cobra.Command, defaults config.Defaults) config.Defaults {
	out := defaults
	if cmd.Flags().Changed("key") {
		out.KeyColumn = f.Key
	}
	if cmd.Flags().Changed("trim") {
		out.Keys.Trim = f.Trim
	}
	if cmd.Flags().Changed("case-insensitive") {
		out.Keys.CaseInsensitive = f.CaseInsensitive
	}
	if cmd.Flags().Changed("duplicates") {
		out.Duplicates = f.Duplicates
	}
	if cmd.Flags().Changed("comma") {
		out.Comma = config.ParseComma(f.Comma)
	}
	return out
}

// ClientOptions converts resolved defaults to client options.
func ClientOptions(d config.Defaults) []csvsync.Option {
	opts := []csvsync.Option{
		csvsync.WithKeys(d.Keys),
		csvsync.WithComma(d.Comma),
	}
	if d.Duplicates != "" {
		opts = append(opts, csvsync.WithDuplicatePolicy(keys.DuplicatePolicy(d.Duplicates)))
	}
	return opts
}

// OutputFlags holds flags for commands that produce a rewritten file.
type OutputFlags struct {
	Out     string
	Preview bool
}

// AddOutputFlags adds output artifact flags to a command.
func AddOutputFlags(cmd *cobra.Command) *OutputFlags {
	flags := &OutputFlags{}

	cmd.Flags().StringVar(&flags.Out, "out", "",
		"Write the result to this file instead of stdout")
	cmd.Flags().BoolVar(&flags.Preview, "preview", false,
		"Only report what would change; write nothing")

	return flags
}

// ReadText returns the contents of path, or of stdin when path is "-".
func ReadText(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", errors.WrapIO("read", "stdin", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WrapIO("read", path, err)
	}
	return string(data), nil
}
