// Package compare provides the command that reports how two versions of a
// file differ.
package compare

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/csvsync"
	"github.com/agentstation/csvsync/internal/appcontext"
	"github.com/agentstation/csvsync/internal/cmd/cmdutil"
	"github.com/agentstation/csvsync/internal/cmd/emoji"
	"github.com/agentstation/csvsync/internal/cmd/table"
	"github.com/agentstation/csvsync/pkg/differ"
)

// Flags holds the flags of the compare command.
type Flags struct {
	Ignore []string
	Apply  string
	Export string
}

// NewCommand creates the compare command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		flags    = &Flags{}
		keyFlags *cmdutil.KeyFlags
	)

	cmd := &cobra.Command{
		Use:     "compare <base> <other>",
		GroupID: "core",
		Short:   "Report added, changed and removed records",
		Args:    cobra.ExactArgs(2),
		Long: `Compare matches the records of two files by key and reports records only
the other file has (added), records only the base has (removed) and records
whose values differ (changed).

Values are compared with the same trimming and case rules as keys. Columns
given with --ignore are left out of the comparison.

--export writes the changes as a file with a leading change column, quoted
like the base file.`,
		Example: `  csvsync compare old.csv new.csv --key id
  csvsync compare old.csv new.csv -k id --ignore updated_at -o yaml
  csvsync compare old.csv new.csv -k id --apply additive --export changes.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := app.Logger()

			d, err := keyFlags.Resolve(cmd, app.Defaults())
			if err != nil {
				return err
			}
			apply, err := differ.ParseApplyStrategy(flags.Apply)
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
			other, err := client.Load(ctx, args[1])
			if err != nil {
				return err
			}

			out, err := client.Compare(ctx, base, other, csvsync.CompareRequest{
				KeyColumn:     d.KeyColumn,
				IgnoreColumns: flags.Ignore,
				Apply:         apply,
				Export:        flags.Export != "",
			})
			if err != nil {
				return err
			}

			if out.Export != nil {
				if err := client.Save(ctx, flags.Export, out.Export.Text); err != nil {
					return err
				}
				logger.Info().Str("path", flags.Export).Msg(emoji.Success + " Changes exported")
			}
			if out.Changeset.IsEmpty() {
				logger.Info().Msg(emoji.Success + " No changes")
			}

			return cmdutil.WriteReport(cmd.OutOrStdout(), app, out.Changeset, func(wide bool) any {
				return table.ChangesetToTableData(out.Changeset, wide)
			})
		},
	}

	cmd.Flags().StringSliceVar(&flags.Ignore, "ignore", nil, "Columns to leave out of the comparison")
	cmd.Flags().StringVar(&flags.Apply, "apply", "", "Changes to report: all, additive, updates-only, additions-only")
	cmd.Flags().StringVar(&flags.Export, "export", "", "Write the changes to this file")
	keyFlags = cmdutil.AddKeyFlags(cmd)

	return cmd
}
