package cmdutil

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/csvsync"
	"github.com/agentstation/csvsync/internal/appcontext"
	"github.com/agentstation/csvsync/internal/cmd/emoji"
	"github.com/agentstation/csvsync/internal/cmd/output"
)

// Artifact is what a rewriting command produced.
type Artifact struct {
	// Text is the rendered file.
	Text string

	// Summary is a one-line description for the log.
	Summary string

	// Report is the raw result rendered as JSON or YAML.
	Report any

	// Table converts Report to table data for table-like formats.
	Table func(wide bool) any
}

// Emit delivers an artifact according to flags:
//   - --preview writes only the report to stdout
//   - --out saves the text to a file and writes the report to stdout
//   - otherwise the text goes to stdout and the summary to the log
func Emit(ctx context.Context, cmd *cobra.Command, app appcontext.Interface, client csvsync.Client, flags *OutputFlags, a Artifact) error {
	logger := app.Logger()
	stdout := cmd.OutOrStdout()

	switch {
	case flags.Preview:
		logger.Info().Msg(emoji.Info + " Preview only, nothing written")
		return WriteReport(stdout, app, a.Report, a.Table)

	case flags.Out != "":
		if err := client.Save(ctx, flags.Out, a.Text); err != nil {
			return err
		}
		logger.Info().Str("path", flags.Out).Msg(emoji.Success + " " + a.Summary)
		return WriteReport(stdout, app, a.Report, a.Table)

	default:
		if _, err := io.WriteString(stdout, a.Text); err != nil {
			return err
		}
		logger.Info().Msg(a.Summary)
		return nil
	}
}

// WriteReport renders a report in the configured format.
func WriteReport(w io.Writer, app appcontext.Interface, report any, tabular func(wide bool) any) error {
	format := output.DetectFormat(app.OutputFormat())
	return output.Write(w, format, report, tabular)
}
