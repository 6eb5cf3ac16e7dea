// Package filter provides the delete command, which removes records by identifier.
package filter

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/csvsync"
	"github.com/agentstation/csvsync/internal/appcontext"
	"github.com/agentstation/csvsync/internal/cmd/cmdutil"
	"github.com/agentstation/csvsync/internal/cmd/emoji"
	"github.com/agentstation/csvsync/internal/cmd/table"
	"github.com/agentstation/csvsync/pkg/errors"
)

// Flags holds the flags of the delete command.
type Flags struct {
	IDs     string
	IDsFile string
}

// NewCommand creates the delete command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		flags    = &Flags{}
		keyFlags *cmdutil.KeyFlags
		outFlags *cmdutil.OutputFlags
	)

	cmd := &cobra.Command{
		Use:     "delete <file>",
		Aliases: []string{"filter"},
		GroupID: "core",
		Short:   "Remove records whose key is in a list of identifiers",
		Args:    cobra.ExactArgs(1),
		Long: `Delete removes every record whose key matches one of the given identifiers.

Identifiers may be separated by commas, semicolons, tabs, spaces or line
breaks, so a column pasted from a spreadsheet works as is. Kept rows are
written exactly as they were read.`,
		Example: `  csvsync delete users.csv --key id --ids "4, 8, 15"
  csvsync delete users.csv -k email --ids-file gone.txt --out users.csv
  pbpaste | csvsync delete users.csv -k id --ids-file - --preview`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			d, err := keyFlags.Resolve(cmd, app.Defaults())
			if err != nil {
				return err
			}
			ids, err := identifiers(cmd, flags)
			if err != nil {
				return err
			}

			client, err := app.ClientWithOptions(cmdutil.ClientOptions(d)...)
			if err != nil {
				return err
			}
			base, err := client.Load(ctx, args[0])
			if err != nil {
				return err
			}

			out, err := client.Delete(ctx, base, csvsync.DeleteRequest{KeyColumn: d.KeyColumn, Identifiers: ids})
			if err != nil {
				return err
			}

			if len(out.Result.NotFound) > 0 {
				app.Logger().Warn().
					Strs("identifiers", out.Result.NotFound).
					Msg(emoji.Warning + " Identifiers not found")
			}

			return cmdutil.Emit(ctx, cmd, app, client, outFlags, cmdutil.Artifact{
				Text:    out.Output.Text,
				Summary: out.Result.String(),
				Report:  out.Result,
				Table: func(wide bool) any {
					return table.DeleteToTableData(out.Result, wide)
				},
			})
		},
	}

	cmd.Flags().StringVar(&flags.IDs, "ids", "", "Identifiers to delete")
	cmd.Flags().StringVar(&flags.IDsFile, "ids-file", "", "Read identifiers from a file (- for stdin)")
	cmd.MarkFlagsMutuallyExclusive("ids", "ids-file")
	keyFlags = cmdutil.AddKeyFlags(cmd)
	outFlags = cmdutil.AddOutputFlags(cmd)

	return cmd
}

// identifiers returns the identifier text from --ids or --ids-file.
func identifiers(cmd *cobra.Command, flags *Flags) (string, error) {
	if flags.IDsFile != "" {
		return cmdutil.ReadText(cmd, flags.IDsFile)
	}
	if strings.TrimSpace(flags.IDs) == "" {
		return "", errors.NewValidationError("ids", flags.IDs, "no identifiers given (--ids or --ids-file)")
	}
	return flags.IDs, nil
}
