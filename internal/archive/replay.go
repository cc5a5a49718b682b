package archive

import (
	"context"
	"fmt"
	"math"

	"github.com/quarrylabs/exprquest/internal/expr"
	"github.com/quarrylabs/exprquest/internal/search"
)

// ReplayReport describes how a re-executed run compared to its archived
// result set.
type ReplayReport struct {
	RunID      string   `json:"run_id"`
	Identical  bool     `json:"identical"`
	Mismatches []string `json:"mismatches,omitempty"`
}

// Replay re-executes an archived run's configuration and compares the new
// result set against the stored one. The comparison is exact: per rank, the
// rendered expression, the quantized value, and the raw error bits must all
// match. Anything less means determinism was lost.
//
// The stored wall-clock budget is replayed as-is. A run that originally hit
// its budget may legitimately diverge when replayed on different hardware;
// the report still lists the differences so the caller can judge.
func (a *Archive) Replay(ctx context.Context, id string) (*ReplayReport, error) {
	rec, err := a.LoadRun(ctx, id)
	if err != nil {
		return nil, err
	}

	res, err := search.New(rec.Config).Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("replaying run %s: %w", id, err)
	}

	report := &ReplayReport{RunID: id}
	report.Mismatches = compareCandidates(rec.Candidates, res.Candidates)
	report.Identical = len(report.Mismatches) == 0
	return report, nil
}

func compareCandidates(stored, replayed []search.Candidate) []string {
	var diffs []string
	if len(stored) != len(replayed) {
		diffs = append(diffs, fmt.Sprintf("result count: stored %d, replayed %d", len(stored), len(replayed)))
	}
	n := len(stored)
	if len(replayed) < n {
		n = len(replayed)
	}
	for i := 0; i < n; i++ {
		s, r := stored[i], replayed[i]
		if s.Text != r.Text {
			diffs = append(diffs, fmt.Sprintf("rank %d expr: stored %q, replayed %q", i, s.Text, r.Text))
		}
		if expr.Quantize(s.Value) != expr.Quantize(r.Value) {
			diffs = append(diffs, fmt.Sprintf("rank %d value: stored %s, replayed %s",
				i, expr.Quantize(s.Value), expr.Quantize(r.Value)))
		}
		if math.Float64bits(s.Error) != math.Float64bits(r.Error) {
			diffs = append(diffs, fmt.Sprintf("rank %d error: stored %s, replayed %s",
				i, expr.Quantize(s.Error), expr.Quantize(r.Error)))
		}
	}
	return diffs
}
