package differ

import "github.com/agentstation/csvsync/pkg/keys"

// Option is a functional option for configuring Differ.
type Option func(*differ)

// WithKeys sets the key normalization. It also applies to value comparison.
func WithKeys(cfg keys.Config) Option {
	return func(d *differ) {
		d.keys = cfg
	}
}

// WithDuplicatePolicy decides which record represents a repeated key.
func WithDuplicatePolicy(policy keys.DuplicatePolicy) Option {
	return func(d *differ) {
		d.duplicates = policy
	}
}

// WithIgnoredColumns sets columns to ignore during comparison
func WithIgnoredColumns(columns ...string) Option {
	return func(d *differ) {
		for _, c := range columns {
			d.ignoreColumns[c] = true
		}
	}
}
