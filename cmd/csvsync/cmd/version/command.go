// Package version provides the version command.
package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/csvsync/internal/appcontext"
	"github.com/agentstation/csvsync/internal/cmd/cmdutil"
	"github.com/agentstation/csvsync/internal/cmd/output"
)

// Info is the build information of the binary.
type Info struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
	BuiltBy string `json:"built_by" yaml:"built_by"`
}

// NewCommand creates the version command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		GroupID: "management",
		Short:   "Show version information",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := Info{
				Version: app.Version(),
				Commit:  app.Commit(),
				Date:    app.Date(),
				BuiltBy: app.BuiltBy(),
			}
			if app.OutputFormat() == "" || output.Format(app.OutputFormat()) == output.FormatTable {
				w := cmd.OutOrStdout()
				_, err := fmt.Fprintf(w, "csvsync %s\n  commit:   %s\n  built:    %s\n  built by: %s\n",
					info.Version, info.Commit, info.Date, info.BuiltBy)
				return err
			}
			return cmdutil.WriteReport(cmd.OutOrStdout(), app, info, nil)
		},
	}
}
