package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quarrylabs/exprquest/internal/profile"
)

// NewValidateCommand creates the validate command, which compiles a profile
// file and reports every validation error it contains.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <profile.cue>",
		Short: "Validate a search profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

func runValidate(rootOpts *RootOptions, cmd *cobra.Command, path string) error {
	f := &Formatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

	cfg, err := profile.LoadFile(path)
	if err != nil {
		var verrs profile.Errors
		if errors.As(err, &verrs) {
			if f.JSON() {
				_ = f.Success(map[string]any{"valid": false, "errors": verrs})
			} else {
				for _, e := range verrs {
					fmt.Fprintln(cmd.OutOrStdout(), e.Error())
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d error(s)\n", path, len(verrs))
			}
			return NewExitError(ExitFailure, "profile is invalid")
		}
		if errors.Is(err, os.ErrNotExist) {
			return WrapExitError(ExitCommandError, "reading profile", err)
		}
		return WrapExitError(ExitFailure, "compiling profile", err)
	}

	if f.JSON() {
		return f.Success(map[string]any{"valid": true, "target": cfg.Target})
	}
	return f.Success(fmt.Sprintf("%s: valid profile (target %s)", path, formatValue(cfg.Target)))
}
