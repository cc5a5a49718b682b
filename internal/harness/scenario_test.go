package harness

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

func loadTestScenario(t *testing.T, name string) *Scenario {
	t.Helper()
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", name+".yaml"))
	require.NoError(t, err)
	return s
}

// Scenarios with fully hand-checked output run against golden files; the
// larger ones run assertions only.
func TestScenarios_Golden(t *testing.T) {
	for _, name := range []string{"atoms_only", "negate_chain", "two_atoms", "zero_budget"} {
		t.Run(name, func(t *testing.T) {
			s := loadTestScenario(t, name)
			require.NoError(t, RunWithGolden(t, s))
		})
	}
}

func TestScenarios_Assertions(t *testing.T) {
	for _, name := range []string{"make_24", "pi_approx", "pi_sin"} {
		t.Run(name, func(t *testing.T) {
			s := loadTestScenario(t, name)
			res, err := Run(s)
			require.NoError(t, err)
			Assert(t, s, res)
		})
	}
}

func TestLoadScenario_Errors(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	_, err := LoadScenario(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadScenario(write("bad.yaml", "name: [not a string"))
	assert.Error(t, err)

	_, err = LoadScenario(write("unnamed.yaml", "profile:\n  target: 1\n  max_cost: 2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")

	_, err = LoadScenario(write("unknown_assert.yaml", `name: x
profile:
  target: 1
  max_cost: 2
assertions:
  - type: believes_in_magic
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown type")
}

func TestProfileToConfig(t *testing.T) {
	secs := 2.5
	p := Profile{
		Target:     24,
		Atoms:      4,
		Constants:  []ConstantSpec{{Name: "tau", Value: 6.283185307179586}},
		Unary:      []string{"negate", "sqrt"},
		Power:      true,
		MaxCost:    5,
		MaxSeconds: &secs,
		KeepTop:    3,
		KeepSide:   "less",
		Epsilon:    1e-10,
	}

	cfg, err := p.ToConfig()
	require.NoError(t, err)
	assert.Equal(t, search.Config{
		Target:       24,
		AtomCount:    4,
		Constants:    []search.Constant{{Name: "tau", Value: 6.283185307179586}},
		Unaries:      []expr.UnaryOp{expr.Neg, expr.Sqrt},
		PowerEnabled: true,
		MaxCost:      5,
		MaxDuration:  2500 * time.Millisecond,
		KeepTop:      3,
		KeepSide:     search.SideLess,
		Epsilon:      1e-10,
	}, cfg)
}

func TestProfileToConfig_Defaults(t *testing.T) {
	p := Profile{Target: 1, MaxCost: 2}
	cfg, err := p.ToConfig()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.MaxDuration)
	assert.Equal(t, 10, cfg.KeepTop)
	assert.Equal(t, search.SideBoth, cfg.KeepSide)
}

func TestProfileToConfig_Errors(t *testing.T) {
	badSide := Profile{Target: 1, MaxCost: 2, KeepSide: "sideways"}
	_, err := badSide.ToConfig()
	assert.Error(t, err)

	badUnary := Profile{Target: 1, MaxCost: 2, Unary: []string{"warble"}}
	_, err = badUnary.ToConfig()
	assert.Error(t, err)
}
