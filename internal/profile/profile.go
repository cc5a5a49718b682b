package profile

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/quarrylabs/exprquest/internal/expr"
	"github.com/quarrylabs/exprquest/internal/search"
)

// Defaults applied when a profile omits optional fields.
const (
	DefaultMaxSeconds = 10.0
	DefaultKeepTop    = 10
)

// LoadFile reads and compiles a CUE profile file.
func LoadFile(path string) (search.Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return search.Config{}, fmt.Errorf("reading profile: %w", err)
	}
	return Compile(src)
}

// Compile parses CUE source into a validated search configuration.
// Uses the CUE SDK's Go API directly (not a CLI subprocess).
func Compile(src []byte) (search.Config, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src)
	if err := v.Err(); err != nil {
		return search.Config{}, fmt.Errorf("parsing profile: %w", err)
	}

	root := v.LookupPath(cue.ParsePath("profile"))
	if !root.Exists() {
		return search.Config{}, fmt.Errorf("profile struct not found: expected a top-level `profile: {...}`")
	}

	cfg, errs := compileProfile(root)
	if len(errs) > 0 {
		return search.Config{}, Errors(errs)
	}
	return cfg, nil
}

// compileProfile extracts every field, collecting all validation errors
// rather than stopping at the first.
func compileProfile(v cue.Value) (search.Config, []ValidationError) {
	var errs []ValidationError
	cfg := search.Config{
		MaxDuration: time.Duration(DefaultMaxSeconds * float64(time.Second)),
		KeepTop:     DefaultKeepTop,
	}

	// target (required)
	if tv := v.LookupPath(cue.ParsePath("target")); tv.Exists() {
		t, err := tv.Float64()
		if err != nil {
			errs = append(errs, ValidationError{Field: "target", Code: ErrTargetInvalid, Message: err.Error()})
		} else {
			cfg.Target = t
		}
	} else {
		errs = append(errs, ValidationError{Field: "target", Code: ErrTargetMissing, Message: "target is required"})
	}

	// atoms (optional, default 0)
	if av := v.LookupPath(cue.ParsePath("atoms")); av.Exists() {
		n, err := av.Int64()
		if err != nil {
			errs = append(errs, ValidationError{Field: "atoms", Code: ErrAtomsInvalid, Message: err.Error()})
		} else {
			cfg.AtomCount = int(n)
		}
	}

	// constants (optional)
	if kv := v.LookupPath(cue.ParsePath("constants")); kv.Exists() {
		consts, cerrs := compileConstants(kv)
		cfg.Constants = consts
		errs = append(errs, cerrs...)
	}

	// unary (optional, default none)
	if uv := v.LookupPath(cue.ParsePath("unary")); uv.Exists() {
		unaries, uerrs := compileUnaries(uv)
		cfg.Unaries = unaries
		errs = append(errs, uerrs...)
	}

	// power (optional, default false)
	if pv := v.LookupPath(cue.ParsePath("power")); pv.Exists() {
		b, err := pv.Bool()
		if err != nil {
			errs = append(errs, ValidationError{Field: "power", Code: ErrPowerInvalid, Message: err.Error()})
		} else {
			cfg.PowerEnabled = b
		}
	}

	// max_cost (required)
	if mv := v.LookupPath(cue.ParsePath("max_cost")); mv.Exists() {
		n, err := mv.Int64()
		if err != nil {
			errs = append(errs, ValidationError{Field: "max_cost", Code: ErrMaxCostInvalid, Message: err.Error()})
		} else {
			cfg.MaxCost = int(n)
		}
	} else {
		errs = append(errs, ValidationError{Field: "max_cost", Code: ErrMaxCostMissing, Message: "max_cost is required"})
	}

	// max_seconds (optional)
	if sv := v.LookupPath(cue.ParsePath("max_seconds")); sv.Exists() {
		secs, err := sv.Float64()
		if err != nil {
			errs = append(errs, ValidationError{Field: "max_seconds", Code: ErrMaxSecondsInvalid, Message: err.Error()})
		} else {
			cfg.MaxDuration = time.Duration(secs * float64(time.Second))
		}
	}

	// keep_top (optional)
	if kv := v.LookupPath(cue.ParsePath("keep_top")); kv.Exists() {
		n, err := kv.Int64()
		if err != nil {
			errs = append(errs, ValidationError{Field: "keep_top", Code: ErrKeepTopInvalid, Message: err.Error()})
		} else {
			cfg.KeepTop = int(n)
		}
	}

	// keep_side (optional, default both)
	if sv := v.LookupPath(cue.ParsePath("keep_side")); sv.Exists() {
		s, err := sv.String()
		if err != nil {
			errs = append(errs, ValidationError{Field: "keep_side", Code: ErrKeepSideInvalid, Message: err.Error()})
		} else if side, perr := search.ParseSide(s); perr != nil {
			errs = append(errs, ValidationError{Field: "keep_side", Code: ErrKeepSideInvalid, Message: perr.Error()})
		} else {
			cfg.KeepSide = side
		}
	}

	// epsilon (optional)
	if ev := v.LookupPath(cue.ParsePath("epsilon")); ev.Exists() {
		e, err := ev.Float64()
		if err != nil {
			errs = append(errs, ValidationError{Field: "epsilon", Code: ErrEpsilonInvalid, Message: err.Error()})
		} else {
			cfg.Epsilon = e
		}
	}

	// Range checks only make sense once every field parsed.
	if len(errs) == 0 {
		errs = Validate(&cfg)
	}
	return cfg, errs
}

// compileConstants parses the constants struct, sorted by name for
// deterministic ordering.
func compileConstants(v cue.Value) ([]search.Constant, []ValidationError) {
	var errs []ValidationError

	iter, err := v.Fields()
	if err != nil {
		return nil, []ValidationError{{Field: "constants", Code: ErrConstantInvalid, Message: err.Error()}}
	}

	var consts []search.Constant
	for iter.Next() {
		// The label may be quoted in CUE, strip the quotes.
		name := strings.Trim(iter.Selector().String(), `"`)
		val, ferr := iter.Value().Float64()
		if ferr != nil {
			errs = append(errs, ValidationError{
				Field:   "constants." + name,
				Code:    ErrConstantInvalid,
				Message: ferr.Error(),
			})
			continue
		}
		consts = append(consts, search.Constant{Name: name, Value: val})
	}
	sort.Slice(consts, func(i, j int) bool { return consts[i].Name < consts[j].Name })
	return consts, errs
}

// compileUnaries parses the unary function list, preserving list order.
func compileUnaries(v cue.Value) ([]expr.UnaryOp, []ValidationError) {
	var errs []ValidationError

	iter, err := v.List()
	if err != nil {
		return nil, []ValidationError{{Field: "unary", Code: ErrUnaryInvalid, Message: err.Error()}}
	}

	var ops []expr.UnaryOp
	seen := make(map[expr.UnaryOp]bool)
	for iter.Next() {
		name, serr := iter.Value().String()
		if serr != nil {
			errs = append(errs, ValidationError{Field: "unary", Code: ErrUnaryInvalid, Message: serr.Error()})
			continue
		}
		op, ok := expr.ParseUnaryOp(name)
		if !ok {
			errs = append(errs, ValidationError{
				Field:   "unary",
				Code:    ErrUnaryUnknown,
				Message: fmt.Sprintf("unknown unary function %q", name),
			})
			continue
		}
		if seen[op] {
			errs = append(errs, ValidationError{
				Field:   "unary",
				Code:    ErrUnaryDuplicate,
				Message: fmt.Sprintf("unary function %q listed twice", name),
			})
			continue
		}
		seen[op] = true
		ops = append(ops, op)
	}
	return ops, errs
}
