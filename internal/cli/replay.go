package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quarrylabs/exprquest/internal/archive"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
}

// NewReplayCommand creates the replay command, which re-executes an archived
// run and verifies the result set is reproduced exactly.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <run-id>",
		Short: "Re-execute an archived run and compare results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.Database, "db", "exprquest.db", "path to the archive database")
	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command, id string) error {
	a, err := archive.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening archive", err)
	}
	defer a.Close()

	report, err := a.Replay(cmd.Context(), id)
	if err != nil {
		if errors.Is(err, archive.ErrRunNotFound) {
			return NewExitError(ExitFailure, fmt.Sprintf("run %s not found", id))
		}
		return WrapExitError(ExitFailure, "replaying run", err)
	}

	f := &Formatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if f.JSON() {
		if err := f.Success(report); err != nil {
			return err
		}
	} else {
		if report.Identical {
			if err := f.Success(fmt.Sprintf("Run %s replayed identically", id)); err != nil {
				return err
			}
		} else {
			var sb strings.Builder
			sb.WriteString(styleHeader.Render(fmt.Sprintf("Run %s diverged on replay", id)))
			for _, m := range report.Mismatches {
				sb.WriteString("\n  ")
				sb.WriteString(m)
			}
			fmt.Fprintln(cmd.OutOrStdout(), sb.String())
		}
	}

	if !report.Identical {
		return NewExitError(ExitFailure, fmt.Sprintf("replay of %s diverged in %d place(s)", id, len(report.Mismatches)))
	}
	return nil
}
