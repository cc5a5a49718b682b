package profile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrylabs/exprquest/internal/expr"
	"github.com/quarrylabs/exprquest/internal/search"
)

func TestCompile_Full(t *testing.T) {
	src := `profile: {
	target: 3.141592653589793
	atoms:  4
	constants: {
		"e":  2.718281828459045
		"pi": 3.141592653589793
	}
	unary:       ["sin", "sqrt", "negate"]
	power:       true
	max_cost:    6
	max_seconds: 2.5
	keep_top:    8
	keep_side:   "greater"
	epsilon:     1e-9
}`
	cfg, err := Compile([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, 3.141592653589793, cfg.Target)
	assert.Equal(t, 4, cfg.AtomCount)
	assert.Equal(t, []search.Constant{
		{Name: "e", Value: 2.718281828459045},
		{Name: "pi", Value: 3.141592653589793},
	}, cfg.Constants)
	assert.Equal(t, []expr.UnaryOp{expr.Sin, expr.Sqrt, expr.Neg}, cfg.Unaries)
	assert.True(t, cfg.PowerEnabled)
	assert.Equal(t, 6, cfg.MaxCost)
	assert.Equal(t, 2500*time.Millisecond, cfg.MaxDuration)
	assert.Equal(t, 8, cfg.KeepTop)
	assert.Equal(t, search.SideGreater, cfg.KeepSide)
	assert.Equal(t, 1e-9, cfg.Epsilon)
}

func TestCompile_Defaults(t *testing.T) {
	cfg, err := Compile([]byte(`profile: {
	target:   24.0
	atoms:    4
	max_cost: 5
}`))
	require.NoError(t, err)

	assert.Equal(t, time.Duration(DefaultMaxSeconds*float64(time.Second)), cfg.MaxDuration)
	assert.Equal(t, DefaultKeepTop, cfg.KeepTop)
	assert.Equal(t, search.SideBoth, cfg.KeepSide)
	assert.Empty(t, cfg.Constants)
	assert.Empty(t, cfg.Unaries)
	assert.False(t, cfg.PowerEnabled)
	assert.Zero(t, cfg.Epsilon)
}

// TestCompile_ConstantsSortedByName checks that constants come out in name
// order regardless of declaration order. CUE structs are unordered from the
// caller's point of view, so the compiler imposes an order of its own.
func TestCompile_ConstantsSortedByName(t *testing.T) {
	cfg, err := Compile([]byte(`profile: {
	target:   1.0
	max_cost: 2
	constants: {
		"zeta":  1.2
		"alpha": 0.007
		"mu":    42.0
	}
}`))
	require.NoError(t, err)

	names := make([]string, len(cfg.Constants))
	for i, k := range cfg.Constants {
		names[i] = k.Name
	}
	assert.Equal(t, []string{"alpha", "mu", "zeta"}, names)
}

// TestCompile_CollectsAllErrors requires every problem to be reported in
// one pass, not just the first.
func TestCompile_CollectsAllErrors(t *testing.T) {
	_, err := Compile([]byte(`profile: {
	atoms: -3
	unary: ["sin", "sin", "warble"]
}`))
	require.Error(t, err)

	var errs Errors
	require.ErrorAs(t, err, &errs)

	codes := make(map[string]bool)
	for _, e := range errs {
		codes[e.Code] = true
	}
	assert.True(t, codes[ErrTargetMissing], "missing target should be reported")
	assert.True(t, codes[ErrMaxCostMissing], "missing max_cost should be reported")
	assert.True(t, codes[ErrUnaryDuplicate], "duplicate unary should be reported")
	assert.True(t, codes[ErrUnaryUnknown], "unknown unary should be reported")
	require.Len(t, errs, 4)
}

func TestCompile_RangeErrors(t *testing.T) {
	_, err := Compile([]byte(`profile: {
	target:   5.0
	atoms:    -1
	max_cost: 0
	keep_top: 0
}`))
	require.Error(t, err)

	var errs Errors
	require.ErrorAs(t, err, &errs)
	codes := make(map[string]bool)
	for _, e := range errs {
		codes[e.Code] = true
	}
	assert.True(t, codes[ErrAtomsInvalid])
	assert.True(t, codes[ErrMaxCostInvalid])
	assert.True(t, codes[ErrKeepTopInvalid])
}

func TestCompile_BadSyntax(t *testing.T) {
	_, err := Compile([]byte(`profile: { target: `))
	assert.Error(t, err)
}

func TestCompile_MissingProfileStruct(t *testing.T) {
	_, err := Compile([]byte(`settings: {target: 1.0}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile struct not found")
}

func TestCompile_InvalidKeepSide(t *testing.T) {
	_, err := Compile([]byte(`profile: {
	target:    1.0
	max_cost:  2
	keep_side: "sideways"
}`))
	require.Error(t, err)

	var errs Errors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrKeepSideInvalid, errs[0].Code)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p.cue")
	require.NoError(t, os.WriteFile(path, []byte(`profile: {
	target:   24.0
	atoms:    4
	max_cost: 5
}`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 24.0, cfg.Target)

	_, err = LoadFile(filepath.Join(dir, "missing.cue"))
	assert.Error(t, err)
}

func TestValidationErrorFormat(t *testing.T) {
	e := ValidationError{Field: "max_cost", Code: ErrMaxCostInvalid, Message: "max_cost must be >= 1, got 0"}
	assert.Equal(t, "[E105] max_cost: max_cost must be >= 1, got 0", e.Error())

	errs := Errors{
		{Field: "a", Code: "E101", Message: "m1"},
		{Field: "b", Code: "E103", Message: "m2"},
	}
	assert.Equal(t, "[E101] a: m1\n[E103] b: m2", errs.Error())
}
