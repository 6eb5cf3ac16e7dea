// Package appcontext provides the shared application context interface
// used by all commands. Commands depend on this interface rather than on the
// concrete App so they can be tested with Mock.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/csvsync"
	"github.com/agentstation/csvsync/internal/config"
)

// Interface defines the application context commands need.
type Interface interface {
	// Client returns the default client, creating it lazily from the
	// configured defaults.
	Client() (csvsync.Client, error)

	// ClientWithOptions creates a new client with the configured defaults
	// followed by opts. Commands use it to apply per-invocation flags.
	ClientWithOptions(...csvsync.Option) (csvsync.Client, error)

	// Defaults returns the reconciliation defaults from config and environment.
	Defaults() config.Defaults

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured report format (table, json, yaml, markdown).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
