// Package inspect provides the command that describes a file's layout.
package inspect

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/csvsync"
	"github.com/agentstation/csvsync/internal/appcontext"
	"github.com/agentstation/csvsync/internal/cmd/cmdutil"
	"github.com/agentstation/csvsync/internal/cmd/table"
)

// NewCommand creates the inspect command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var keyFlags *cmdutil.KeyFlags

	cmd := &cobra.Command{
		Use:     "inspect <file>",
		GroupID: "management",
		Short:   "Show headers, row count and detected quoting",
		Args:    cobra.ExactArgs(1),
		Long: `Inspect loads a file and prints its columns with the quoting detected for
the header and for the data, which is the quoting csvsync uses for rows it
rebuilds. With --key it also reports blank and duplicate keys.`,
		Example: `  csvsync inspect users.csv
  csvsync inspect users.csv --key email -i`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			d := keyFlags.Merge(cmd, app.Defaults())
			client, err := app.ClientWithOptions(cmdutil.ClientOptions(d)...)
			if err != nil {
				return err
			}
			f, err := client.Load(ctx, args[0])
			if err != nil {
				return err
			}

			info, err := csvsync.Inspect(f, d.KeyColumn, d.Keys)
			if err != nil {
				return err
			}

			return cmdutil.WriteReport(cmd.OutOrStdout(), app, info, func(bool) any {
				return table.InspectionToTableData(info)
			})
		},
	}

	keyFlags = cmdutil.AddKeyFlags(cmd)

	return cmd
}
