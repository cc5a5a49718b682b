package cli

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/quarrylabs/exprquest/internal/archive"
	"github.com/quarrylabs/exprquest/internal/expr"
	"github.com/quarrylabs/exprquest/internal/profile"
	"github.com/quarrylabs/exprquest/internal/search"
)

// SolveOptions holds flags for the solve command.
type SolveOptions struct {
	*RootOptions
	Profile    string
	Target     float64
	Atoms      int
	Constants  string
	Unary      string
	Power      bool
	MaxCost    int
	MaxSeconds float64
	KeepTop    int
	KeepSide   string
	Epsilon    float64
	SaveDB     string
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Run a search for a target value",
		Long: `Run a search, either from a CUE profile or from inline flags.

Examples:
  exprquest solve --profile ./profiles/day24.cue
  exprquest solve --target 24 --atoms 4 --max-cost 5 --top 5
  exprquest solve --target 3.14159 --atoms 3 --unary sin,sqrt --max-cost 6 \
      --constants e=2.718281828459045 --save ./runs.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Profile, "profile", "", "path to a CUE search profile")
	cmd.Flags().Float64Var(&opts.Target, "target", math.NaN(), "target value to approximate")
	cmd.Flags().IntVar(&opts.Atoms, "atoms", 0, "integer atoms 1..N")
	cmd.Flags().StringVar(&opts.Constants, "constants", "", "named constants, e.g. pi=3.14159,e=2.71828")
	cmd.Flags().StringVar(&opts.Unary, "unary", "", "enabled unary functions, e.g. sin,cos,negate")
	cmd.Flags().BoolVar(&opts.Power, "power", false, "enable the ^ operator")
	cmd.Flags().IntVar(&opts.MaxCost, "max-cost", 0, "cost ceiling (atoms + operators)")
	cmd.Flags().Float64Var(&opts.MaxSeconds, "max-seconds", profile.DefaultMaxSeconds, "wall-clock budget in seconds")
	cmd.Flags().IntVar(&opts.KeepTop, "top", profile.DefaultKeepTop, "how many candidates to keep")
	cmd.Flags().StringVar(&opts.KeepSide, "side", "both", "keep candidates greater|less|both relative to the target")
	cmd.Flags().Float64Var(&opts.Epsilon, "epsilon", 0, "pruning tolerance (default 1e-12)")
	cmd.Flags().StringVar(&opts.SaveDB, "save", "", "archive the run to this SQLite database")

	return cmd
}

func runSolve(opts *SolveOptions, cmd *cobra.Command) error {
	cfg, err := solveConfig(opts)
	if err != nil {
		return WrapExitError(ExitFailure, "invalid configuration", err)
	}

	progress := func(level int, elapsed time.Duration, considered uint64) {
		slog.Info("level complete",
			"level", level,
			"elapsed", elapsed.Round(time.Millisecond),
			"considered", considered,
		)
	}

	res, err := search.New(cfg, search.WithProgress(progress)).Run(cmd.Context())
	if err != nil {
		return WrapExitError(ExitFailure, "search failed", err)
	}

	if opts.SaveDB != "" {
		ar, err := archive.Open(opts.SaveDB)
		if err != nil {
			return WrapExitError(ExitCommandError, "opening archive", err)
		}
		defer ar.Close()
		id, err := ar.SaveRun(cmd.Context(), cfg, res)
		if err != nil {
			return WrapExitError(ExitCommandError, "archiving run", err)
		}
		slog.Info("run archived", "id", id)
	}

	f := &Formatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if f.JSON() {
		return f.Success(res)
	}
	return f.Success(renderResult(cfg.Target, res))
}

// solveConfig builds the search configuration from a profile file or
// inline flags. Profile and inline flags are mutually exclusive.
func solveConfig(opts *SolveOptions) (search.Config, error) {
	if opts.Profile != "" {
		return profile.LoadFile(opts.Profile)
	}
	if math.IsNaN(opts.Target) {
		return search.Config{}, fmt.Errorf("either --profile or --target is required")
	}

	side, err := search.ParseSide(opts.KeepSide)
	if err != nil {
		return search.Config{}, err
	}
	constants, err := parseConstants(opts.Constants)
	if err != nil {
		return search.Config{}, err
	}
	unaries, err := parseUnaries(opts.Unary)
	if err != nil {
		return search.Config{}, err
	}

	cfg := search.Config{
		Target:       opts.Target,
		AtomCount:    opts.Atoms,
		Constants:    constants,
		Unaries:      unaries,
		PowerEnabled: opts.Power,
		MaxCost:      opts.MaxCost,
		MaxDuration:  time.Duration(opts.MaxSeconds * float64(time.Second)),
		KeepTop:      opts.KeepTop,
		KeepSide:     side,
		Epsilon:      opts.Epsilon,
	}
	if errs := profile.Validate(&cfg); len(errs) > 0 {
		return search.Config{}, profile.Errors(errs)
	}
	return cfg, nil
}

// parseConstants parses "name=value,name=value" into ordered constants.
func parseConstants(s string) ([]search.Constant, error) {
	if s == "" {
		return nil, nil
	}
	var out []search.Constant
	for _, part := range strings.Split(s, ",") {
		name, val, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid constant %q: expected name=value", part)
		}
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid constant %q: %w", part, err)
		}
		out = append(out, search.Constant{Name: name, Value: v})
	}
	return out, nil
}

// parseUnaries parses "sin,cos,negate" into unary ops, preserving order.
func parseUnaries(s string) ([]expr.UnaryOp, error) {
	if s == "" {
		return nil, nil
	}
	var out []expr.UnaryOp
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		op, ok := expr.ParseUnaryOp(name)
		if !ok {
			return nil, fmt.Errorf("unknown unary function %q", name)
		}
		out = append(out, op)
	}
	return out, nil
}
