package harness

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/quarrylabs/exprquest/internal/expr"
	"github.com/quarrylabs/exprquest/internal/search"
)

// resultSnapshot is the golden-file rendering of a result set. Floats are
// quantized to strings so the file is byte-stable; elapsed time is omitted
// because it is the one non-deterministic output of a run.
type resultSnapshot struct {
	Scenario    string              `json:"scenario"`
	Candidates  []candidateSnapshot `json:"candidates"`
	Considered  uint64              `json:"considered"`
	HighestCost int                 `json:"highest_cost"`
	Stopped     bool                `json:"stopped"`
}

type candidateSnapshot struct {
	Rank  int    `json:"rank"`
	Error string `json:"error"`
	Value string `json:"value"`
	Expr  string `json:"expr"`
}

// Snapshot renders a result for golden comparison.
func Snapshot(name string, res *search.Result) ([]byte, error) {
	snap := resultSnapshot{
		Scenario:    name,
		Candidates:  make([]candidateSnapshot, len(res.Candidates)),
		Considered:  res.Stats.Considered,
		HighestCost: res.Stats.HighestCost,
		Stopped:     res.Stats.Stopped,
	}
	for i, c := range res.Candidates {
		snap.Candidates[i] = candidateSnapshot{
			Rank:  i,
			Error: expr.Quantize(c.Error),
			Value: expr.Quantize(c.Value),
			Expr:  c.Text,
		}
	}
	out, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("rendering snapshot: %w", err)
	}
	return append(out, '\n'), nil
}

// RunWithGolden executes a scenario, applies its assertions, and compares
// the result snapshot against testdata/golden/{name}.golden.
//
// To regenerate golden files:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, s *Scenario) error {
	t.Helper()

	res, err := Run(s)
	if err != nil {
		return err
	}
	Assert(t, s, res)

	snap, err := Snapshot(s.Name, res)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, s.Name, snap)
	return nil
}
