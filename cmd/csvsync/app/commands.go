package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/csvsync/cmd/csvsync/cmd/compare"
	"github.com/agentstation/csvsync/cmd/csvsync/cmd/completion"
	"github.com/agentstation/csvsync/cmd/csvsync/cmd/filter"
	"github.com/agentstation/csvsync/cmd/csvsync/cmd/inspect"
	"github.com/agentstation/csvsync/cmd/csvsync/cmd/upsert"
	"github.com/agentstation/csvsync/cmd/csvsync/cmd/version"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(filter.NewCommand(a))
	rootCmd.AddCommand(upsert.NewCommand(a))
	rootCmd.AddCommand(compare.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(inspect.NewCommand(a))
	rootCmd.AddCommand(version.NewCommand(a))
	rootCmd.AddCommand(completion.NewCommand())
}
