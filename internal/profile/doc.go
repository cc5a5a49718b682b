// Package profile compiles CUE search profiles into search configurations.
//
// A profile is a single CUE file with a top-level `profile` struct:
//
//	profile: {
//		target:      24.0
//		atoms:       4
//		constants: {pi: 3.141592653589793}
//		unary: ["negate", "sqrt"]
//		power:       true
//		max_cost:    6
//		max_seconds: 5.0
//		keep_top:    10
//		keep_side:   "both"
//		epsilon:     1e-12
//	}
//
// target and max_cost are required; everything else has a default. The
// compiler validates the whole profile and reports every problem found
// (not fail-fast) with stable error codes, so a profile author sees all
// mistakes in one pass. The core search keeps only a minimal backstop
// check of its own; this package is where configuration errors are meant
// to surface.
//
// Constants are sorted by name during compilation: CUE struct iteration
// order is not part of this package's contract, and the search requires a
// deterministic constant order.
package profile
