package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/quarrylabs/exprquest/internal/expr"
	"github.com/quarrylabs/exprquest/internal/profile"
	"github.com/quarrylabs/exprquest/internal/search"
)

// SetupOptions holds flags for the setup command.
type SetupOptions struct {
	*RootOptions
	Output string
}

// NewSetupCommand creates the setup command: an interactive form that
// collects a search profile and writes it as a CUE file.
func NewSetupCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SetupOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Interactively create a search profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "profile.cue", "where to write the profile")
	return cmd
}

func runSetup(opts *SetupOptions, cmd *cobra.Command) error {
	var (
		targetStr     = "100"
		atomsStr      = "9"
		constantsStr  = ""
		unaryNames    []string
		power         bool
		maxCostStr    = "8"
		maxSecondsStr = strconv.FormatFloat(profile.DefaultMaxSeconds, 'g', -1, 64)
		keepTopStr    = strconv.Itoa(profile.DefaultKeepTop)
		side          = "both"
	)

	unaryOptions := make([]huh.Option[string], 0, len(expr.AllUnaryOps()))
	for _, op := range expr.AllUnaryOps() {
		unaryOptions = append(unaryOptions, huh.NewOption(op.String(), op.String()))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Target value").
				Description("The number to approximate.").
				Value(&targetStr).
				Validate(validFloat),
			huh.NewInput().
				Title("Integer atoms").
				Description("Atoms are the integers 1..N. 0 for constants only.").
				Value(&atomsStr).
				Validate(validNonNegativeInt),
			huh.NewInput().
				Title("Named constants").
				Description("Comma separated name=value pairs, e.g. pi=3.14159. Optional.").
				Value(&constantsStr).
				Validate(validConstants),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Unary functions").
				Options(unaryOptions...).
				Value(&unaryNames),
			huh.NewConfirm().
				Title("Enable the power operator (^)?").
				Value(&power),
			huh.NewSelect[string]().
				Title("Keep which side of the target?").
				Options(
					huh.NewOption("both", "both"),
					huh.NewOption("only greater", "greater"),
					huh.NewOption("only less", "less"),
				).
				Value(&side),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Cost ceiling").
				Description("Maximum expression size (atoms + operators).").
				Value(&maxCostStr).
				Validate(validPositiveInt),
			huh.NewInput().
				Title("Wall-clock budget (seconds)").
				Value(&maxSecondsStr).
				Validate(validFloat),
			huh.NewInput().
				Title("Candidates to keep").
				Value(&keepTopStr).
				Validate(validPositiveInt),
		),
	)

	if err := form.Run(); err != nil {
		return WrapExitError(ExitFailure, "setup aborted", err)
	}

	// Validators above guarantee these parse.
	target, _ := strconv.ParseFloat(targetStr, 64)
	atoms, _ := strconv.Atoi(atomsStr)
	maxCost, _ := strconv.Atoi(maxCostStr)
	maxSeconds, _ := strconv.ParseFloat(maxSecondsStr, 64)
	keepTop, _ := strconv.Atoi(keepTopStr)
	keepSide, _ := search.ParseSide(side)
	constants, _ := parseConstants(constantsStr)
	unaries, _ := parseUnaries(joinNames(unaryNames))

	cfg := search.Config{
		Target:       target,
		AtomCount:    atoms,
		Constants:    constants,
		Unaries:      unaries,
		PowerEnabled: power,
		MaxCost:      maxCost,
		MaxDuration:  time.Duration(maxSeconds * float64(time.Second)),
		KeepTop:      keepTop,
		KeepSide:     keepSide,
	}

	if err := os.WriteFile(opts.Output, []byte(profile.WriteCUE(cfg)), 0o644); err != nil {
		return WrapExitError(ExitCommandError, "writing profile", err)
	}

	f := &Formatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if f.JSON() {
		return f.Success(map[string]string{"profile": opts.Output})
	}
	return f.Success(fmt.Sprintf("Profile written to %s", opts.Output))
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ","
		}
		out += n
	}
	return out
}

func validFloat(s string) error {
	_, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	return nil
}

func validNonNegativeInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("must be a non-negative integer")
	}
	return nil
}

func validPositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fmt.Errorf("must be a positive integer")
	}
	return nil
}

func validConstants(s string) error {
	_, err := parseConstants(s)
	return err
}
