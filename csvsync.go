// Package csvsync reconciles delimited text files by key. It loads files,
// runs the delete, upsert and compare workflows over them, and renders the
// outcome back to text so that every row the run did not touch is written
// exactly as it was read.
package csvsync

import (
	"context"
	"fmt"

	"github.com/agentstation/csvsync/pkg/tabular"
)

// Client runs reconciliation workflows with a fixed configuration.
type Client interface {
	// Load reads and parses a file with the client's separator settings
	Load(ctx context.Context, path string) (*tabular.File, error)

	// Delete removes the records of base whose key is listed in the request
	Delete(ctx context.Context, base *tabular.File, req DeleteRequest) (*DeleteOutput, error)

	// Upsert merges mods into base
	Upsert(ctx context.Context, base, mods *tabular.File, req UpsertRequest) (*UpsertOutput, error)

	// Compare reports how other differs from base
	Compare(ctx context.Context, base, other *tabular.File, req CompareRequest) (*CompareOutput, error)

	// Save writes rendered text to path
	Save(ctx context.Context, path, text string) error

	// OnRecordAdded registers a callback for records a workflow adds
	OnRecordAdded(RecordAddedHook)

	// OnRecordUpdated registers a callback for records a workflow changes
	OnRecordUpdated(RecordUpdatedHook)

	// OnRecordRemoved registers a callback for records a workflow removes
	OnRecordRemoved(RecordRemovedHook)
}

// Compile-time interface check.
var _ Client = (*client)(nil)

// client is the default implementation of Client. It holds no per-run state:
// every workflow works on the files and request it is given.
type client struct {
	config *config
	hooks  *hooks
}

// New creates a Client with the given options.
func New(opts ...Option) (Client, error) {
	c := &client{
		config: defaultConfig(),
		hooks:  newHooks(),
	}

	for _, opt := range opts {
		if err := opt(c.config); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}

	return c, nil
}

// Load reads and parses the file at path.
func (c *client) Load(ctx context.Context, path string) (*tabular.File, error) {
	return tabular.Load(ctx, path, c.config.parseOptions()...)
}

// OnRecordAdded registers a callback for added records.
func (c *client) OnRecordAdded(fn RecordAddedHook) {
	c.hooks.OnRecordAdded(fn)
}

// OnRecordUpdated registers a callback for updated records.
func (c *client) OnRecordUpdated(fn RecordUpdatedHook) {
	c.hooks.OnRecordUpdated(fn)
}

// OnRecordRemoved registers a callback for removed records.
func (c *client) OnRecordRemoved(fn RecordRemovedHook) {
	c.hooks.OnRecordRemoved(fn)
}
