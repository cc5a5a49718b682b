package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrylabs/exprquest/internal/search"
)

func TestKnownAssertion(t *testing.T) {
	for _, typ := range []string{
		AssertContainsExact, AssertBestErrorBelow, AssertBestValue,
		AssertResultCountMax, AssertResultCount, AssertSortedByError,
		AssertDistinctValues, AssertStoppedEarly,
	} {
		assert.True(t, knownAssertion(typ), typ)
	}
	assert.False(t, knownAssertion("believes_in_magic"))
	assert.False(t, knownAssertion(""))
}

// TestAssert_Passing runs every assertion type against a result that
// satisfies all of them.
func TestAssert_Passing(t *testing.T) {
	res := &search.Result{
		Candidates: []search.Candidate{
			{Error: 0, Value: 24, Text: "(4 * (2 * 3))"},
			{Error: 1, Value: 23, Text: "(24 - 1)"},
		},
		Stats: search.Stats{Considered: 100, HighestCost: 5, Stopped: true},
	}
	s := &Scenario{
		Name: "all_assertions",
		Assertions: []Assertion{
			{Type: AssertContainsExact},
			{Type: AssertBestErrorBelow, Bound: 0.5},
			{Type: AssertBestValue, Value: "24"},
			{Type: AssertResultCountMax, Count: 5},
			{Type: AssertResultCount, Count: 2},
			{Type: AssertSortedByError},
			{Type: AssertDistinctValues},
			{Type: AssertStoppedEarly},
		},
	}
	Assert(t, s, res)
}

func TestSnapshot(t *testing.T) {
	res := &search.Result{
		Candidates: []search.Candidate{
			{Error: 0.5, Value: 2.5, Text: "(1 / 2)"},
		},
		Stats: search.Stats{Considered: 3, HighestCost: 2, Stopped: false},
	}

	out, err := Snapshot("sample", res)
	require.NoError(t, err)

	expected := `{
  "scenario": "sample",
  "candidates": [
    {
      "rank": 0,
      "error": "0.5",
      "value": "2.5",
      "expr": "(1 / 2)"
    }
  ],
  "considered": 3,
  "highest_cost": 2,
  "stopped": false
}
`
	assert.Equal(t, expected, string(out))
}

// TestSnapshot_OmitsElapsed: elapsed time is the one non-deterministic
// statistic and must never appear in a golden file.
func TestSnapshot_OmitsElapsed(t *testing.T) {
	res := &search.Result{Stats: search.Stats{Elapsed: 123456789}}
	out, err := Snapshot("sample", res)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "elapsed")
}

func TestSnapshot_EmptyResult(t *testing.T) {
	out, err := Snapshot("empty", &search.Result{})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"candidates": []`)
}
