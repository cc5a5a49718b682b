package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quarrylabs/exprquest/internal/expr"
	"github.com/quarrylabs/exprquest/internal/search"
)

// Assertion type names.
const (
	AssertContainsExact  = "contains_exact"
	AssertBestErrorBelow = "best_error_below"
	AssertBestValue      = "best_value"
	AssertResultCountMax = "result_count_max"
	AssertResultCount    = "result_count"
	AssertSortedByError  = "sorted_by_error"
	AssertDistinctValues = "distinct_values"
	AssertStoppedEarly   = "stopped_early"
)

func knownAssertion(typ string) bool {
	switch typ {
	case AssertContainsExact, AssertBestErrorBelow, AssertBestValue,
		AssertResultCountMax, AssertResultCount, AssertSortedByError,
		AssertDistinctValues, AssertStoppedEarly:
		return true
	}
	return false
}

// Assert applies every scenario assertion to the result. Failures are
// reported through t without stopping, so one run surfaces all violations.
func Assert(t *testing.T, s *Scenario, res *search.Result) {
	t.Helper()
	for i, a := range s.Assertions {
		applyAssertion(t, i, a, res)
	}
}

func applyAssertion(t *testing.T, idx int, a Assertion, res *search.Result) {
	t.Helper()
	switch a.Type {
	case AssertContainsExact:
		found := false
		for _, c := range res.Candidates {
			if c.Error == 0 {
				found = true
				break
			}
		}
		assert.True(t, found, "assertion %d: no candidate with error 0", idx)

	case AssertBestErrorBelow:
		if assert.NotEmpty(t, res.Candidates, "assertion %d: empty result set", idx) {
			assert.LessOrEqual(t, res.Candidates[0].Error, a.Bound,
				"assertion %d: best error above bound", idx)
		}

	case AssertBestValue:
		if assert.NotEmpty(t, res.Candidates, "assertion %d: empty result set", idx) {
			assert.Equal(t, a.Value, expr.Quantize(res.Candidates[0].Value),
				"assertion %d: best value mismatch", idx)
		}

	case AssertResultCountMax:
		assert.LessOrEqual(t, len(res.Candidates), a.Count,
			"assertion %d: too many candidates", idx)

	case AssertResultCount:
		assert.Len(t, res.Candidates, a.Count, "assertion %d", idx)

	case AssertSortedByError:
		for i := 1; i < len(res.Candidates); i++ {
			assert.GreaterOrEqual(t, res.Candidates[i].Error, res.Candidates[i-1].Error,
				"assertion %d: candidates %d and %d out of order", idx, i-1, i)
		}

	case AssertDistinctValues:
		seen := make(map[string]int)
		for i, c := range res.Candidates {
			key := expr.Quantize(c.Value)
			if prev, dup := seen[key]; dup {
				assert.Fail(t, "duplicate quantized value",
					"assertion %d: candidates %d and %d both quantize to %s", idx, prev, i, key)
			}
			seen[key] = i
		}

	case AssertStoppedEarly:
		assert.True(t, res.Stats.Stopped, "assertion %d: run was not stopped early", idx)
	}
}
