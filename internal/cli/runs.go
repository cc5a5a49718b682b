package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quarrylabs/exprquest/internal/archive"
)

// RunsOptions holds flags for the runs command group.
type RunsOptions struct {
	*RootOptions
	Database string
}

// NewRunsCommand creates the runs command group for inspecting the archive.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect archived runs",
	}
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "exprquest.db", "path to the archive database")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List archived runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunsList(opts, cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one archived run with its results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunsShow(opts, cmd, args[0])
		},
	})
	return cmd
}

func runRunsList(opts *RunsOptions, cmd *cobra.Command) error {
	a, err := archive.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening archive", err)
	}
	defer a.Close()

	runs, err := a.ListRuns(cmd.Context())
	if err != nil {
		return WrapExitError(ExitFailure, "listing runs", err)
	}

	f := &Formatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if f.JSON() {
		return f.Success(runs)
	}
	if len(runs) == 0 {
		return f.Success(styleMuted.Render("no archived runs"))
	}

	var sb strings.Builder
	sb.WriteString(styleHeader.Render(fmt.Sprintf("%d archived run(s)", len(runs))))
	sb.WriteString("\n")
	for _, r := range runs {
		line := fmt.Sprintf("  %s  %s  target=%s  results=%d  considered=%d",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), formatValue(r.Target), r.Results, r.Considered)
		if r.Stopped {
			line += styleMuted.Render("  (budget reached)")
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return f.Success(strings.TrimRight(sb.String(), "\n"))
}

func runRunsShow(opts *RunsOptions, cmd *cobra.Command, id string) error {
	a, err := archive.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening archive", err)
	}
	defer a.Close()

	rec, err := a.LoadRun(cmd.Context(), id)
	if err != nil {
		if errors.Is(err, archive.ErrRunNotFound) {
			return NewExitError(ExitFailure, fmt.Sprintf("run %s not found", id))
		}
		return WrapExitError(ExitFailure, "loading run", err)
	}

	f := &Formatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if f.JSON() {
		return f.Success(map[string]any{
			"run":        rec.RunSummary,
			"candidates": rec.Candidates,
		})
	}

	var sb strings.Builder
	sb.WriteString(styleHeader.Render(fmt.Sprintf("Run %s", rec.ID)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  created   %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("  target    %s\n", formatValue(rec.Target)))
	sb.WriteString(fmt.Sprintf("  searched  %d candidates up to cost %d in %s\n",
		rec.Considered, rec.HighestCost, rec.Elapsed.Round(1e6)))
	if len(rec.Candidates) > 0 {
		sb.WriteString(styleBox.Render(renderRows(rec.Candidates)))
	} else {
		sb.WriteString(styleMuted.Render("  no candidates retained"))
	}
	return f.Success(sb.String())
}
