// Package completion provides shared utilities for shell completion scripts.
package completion

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/csvsync/internal/cmd/constants"
)

// Generate writes the completion script of root for shell to w.
func Generate(root *cobra.Command, w io.Writer, shell string) error {
	switch strings.ToLower(shell) {
	case constants.ShellBash:
		return root.GenBashCompletionV2(w, true)
	case constants.ShellZsh:
		return root.GenZshCompletion(w)
	case constants.ShellFish:
		return root.GenFishCompletion(w, true)
	case constants.ShellPowerShell:
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("unsupported shell %q: must be one of %s", shell, strings.Join(constants.Shells, ", "))
	}
}
