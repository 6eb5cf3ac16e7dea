// Package upsert provides the command that merges a modification file into a
// base file.
package upsert

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/csvsync"
	"github.com/agentstation/csvsync/internal/appcontext"
	"github.com/agentstation/csvsync/internal/cmd/cmdutil"
	"github.com/agentstation/csvsync/internal/cmd/emoji"
	"github.com/agentstation/csvsync/internal/cmd/table"
	"github.com/agentstation/csvsync/pkg/reconciler"
)

// NewCommand creates the upsert command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		schema   string
		keyFlags *cmdutil.KeyFlags
		outFlags *cmdutil.OutputFlags
	)

	cmd := &cobra.Command{
		Use:     "upsert <base> <modifications>",
		GroupID: "core",
		Short:   "Update and insert records from a modification file",
		Args:    cobra.ExactArgs(2),
		Long: `Upsert overlays each modification record onto the base record with the same
key and appends modification records the base does not have.

With --schema original (the default) only the base columns are written and
values of other columns are dropped. With --schema union columns that only
the modification file has are appended.

Rows the merge does not change are written exactly as they were read.
Updated and inserted rows follow the quoting of the base file.`,
		Example: `  csvsync upsert prices.csv changes.csv --key sku
  csvsync upsert prices.csv changes.csv -k sku --schema union --out prices.csv
  csvsync upsert prices.csv changes.csv -k sku --preview -o markdown`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			d, err := keyFlags.Resolve(cmd, app.Defaults())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("schema") {
				schema = d.Schema
			}
			mode, err := reconciler.ParseSchemaMode(schema)
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
			mods, err := client.Load(ctx, args[1])
			if err != nil {
				return err
			}

			out, err := client.Upsert(ctx, base, mods, csvsync.UpsertRequest{KeyColumn: d.KeyColumn, Schema: mode})
			if err != nil {
				return err
			}

			if out.Result.Skipped > 0 {
				app.Logger().Warn().
					Int("records", out.Result.Skipped).
					Msg(emoji.Warning + " Modification records without a key were skipped")
			}

			return cmdutil.Emit(ctx, cmd, app, client, outFlags, cmdutil.Artifact{
				Text:    out.Output.Text,
				Summary: out.Result.String(),
				Report:  out.Result,
				Table: func(wide bool) any {
					return table.UpsertToTableData(out.Result, d.KeyColumn, d.Keys, wide)
				},
			})
		},
	}

	cmd.Flags().StringVar(&schema, "schema", "", "Output columns: original, union")
	keyFlags = cmdutil.AddKeyFlags(cmd)
	outFlags = cmdutil.AddOutputFlags(cmd)

	return cmd
}
