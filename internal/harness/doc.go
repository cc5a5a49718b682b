// Package harness provides scenario-based conformance testing for the
// search engine.
//
// Scenarios are YAML files pairing a search profile with assertions over
// the result set:
//
//	name: make_24
//	description: "exact 24 is reachable from atoms 1..4"
//	profile:
//	  target: 24
//	  atoms: 4
//	  max_cost: 5
//	  keep_top: 5
//	assertions:
//	  - type: contains_exact
//	  - type: result_count_max
//	    count: 5
//	  - type: sorted_by_error
//
// Assertion types:
//
//   - contains_exact: some candidate has error exactly 0
//   - best_error_below: the best error is <= bound
//   - best_value: the best candidate's quantized value equals value
//   - result_count_max: at most count candidates were retained
//   - result_count: exactly count candidates were retained
//   - sorted_by_error: errors are ascending
//   - distinct_values: no two candidates share a quantized value
//   - stopped_early: the budget guard fired before the cost ceiling
//
// Scenarios can additionally be snapshot-tested: RunWithGolden compares a
// canonical rendering of the full result set against a golden file under
// testdata/golden (regenerate with `go test ./internal/harness -update`).
// Elapsed time is excluded from snapshots; everything else a run produces
// is deterministic and belongs in them.
package harness
