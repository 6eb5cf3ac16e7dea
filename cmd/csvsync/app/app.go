// Package app provides the application context and dependency management
// for the csvsync CLI. It centralizes configuration, logging and the
// reconciliation client so commands receive them through appcontext.Interface.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/csvsync"
	"github.com/agentstation/csvsync/internal/appcontext"
	"github.com/agentstation/csvsync/internal/cmd/cmdutil"
	"github.com/agentstation/csvsync/internal/config"
	"github.com/agentstation/csvsync/pkg/errors"
)

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)

// App represents the csvsync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Client instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	client csvsync.Client
}

// New creates a new App instance with the given version information.
// The app is initialized with configuration from the environment that can
// be customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	cfg, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "loading configuration", err)
	}
	app.config = cfg

	logger := NewLogger(cfg)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Defaults returns the reconciliation defaults from config and environment.
func (a *App) Defaults() config.Defaults {
	return a.config.Defaults
}

// OutputFormat returns the configured report format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Client returns the client, creating it lazily from the configured
// defaults. This is thread-safe and ensures only one instance is created.
func (a *App) Client() (csvsync.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil {
		return a.client, nil
	}

	c, err := csvsync.New(cmdutil.ClientOptions(a.config.Defaults)...)
	if err != nil {
		return nil, errors.NewConfigError("client", "invalid configured defaults", err)
	}

	a.client = c
	return c, nil
}

// ClientWithOptions returns a new client built from the configured defaults
// followed by opts. Commands use it to apply per-invocation flags.
func (a *App) ClientWithOptions(opts ...csvsync.Option) (csvsync.Client, error) {
	all := append(cmdutil.ClientOptions(a.config.Defaults), opts...)
	c, err := csvsync.New(all...)
	if err != nil {
		return nil, errors.NewConfigError("client", "invalid options", err)
	}
	return c, nil
}

// Shutdown performs graceful shutdown of the application. The client holds
// no background work, so this only flushes a final debug line.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Shutting down")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(cfg *Config) Option {
	return func(a *App) error {
		a.config = cfg
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom client instance (useful for testing).
func WithClient(c csvsync.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}
