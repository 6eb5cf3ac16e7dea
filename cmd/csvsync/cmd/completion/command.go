// Package completion provides the command that prints shell completion scripts.
package completion

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/csvsync/internal/cmd/completion"
	"github.com/agentstation/csvsync/internal/cmd/constants"
)

// NewCommand creates the completion command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "completion <" + strings.Join(constants.Shells, "|") + ">",
		GroupID:   "management",
		Short:     "Print a shell completion script",
		Args:      cobra.ExactArgs(1),
		ValidArgs: constants.Shells,
		Example: `  csvsync completion bash > /etc/bash_completion.d/csvsync
  csvsync completion zsh > "${fpath[1]}/_csvsync"
  csvsync completion fish > ~/.config/fish/completions/csvsync.fish`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return completion.Generate(cmd.Root(), cmd.OutOrStdout(), args[0])
		},
	}
}
