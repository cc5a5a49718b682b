// Package search implements the cost-indexed expression enumeration.
//
// The search builds expressions bottom-up by cost (atoms plus operators).
// Cost 1 holds the integer atoms and named constants. Each higher cost
// level is derived from lower levels only: unary functions extend cost c-1,
// and binary operators combine every split a+b+1=c. Levels are computed
// once, stored in a memo table, and never mutated.
//
// ARCHITECTURE:
//
// Single-Threaded Enumeration:
// One run executes on a single goroutine. All mutable search state (memo
// table, top-K heap, dedup set, counters, budget) lives on one run value
// created per Run call; there is no process-wide state, so concurrent runs
// with separate Searchers are safe.
//
// Level Processing Flow:
//  1. Cost 1: atom and constant generation
//  2. Cost c>1: unary expansion of level c-1, then binary combination over
//     every split, in declaration order of the enabled operators
//  3. Every produced finite value is offered to the top-K selector
//  4. The level's surviving entries are sealed into the memo table
//  5. The progress callback fires once per completed level
//
// DETERMINISM:
// Identical configuration produces bit-identical output. Enumeration order
// is fixed (level order, entry insertion order, operator declaration
// order), commutative operands are generated in canonical order only, and
// the final sort breaks error ties on the canonical structural key.
//
// BUDGET:
// The wall-clock budget is cooperative. It is polled after every produced
// candidate and never interrupts mid-evaluation. Expiry is a normal
// early-return path: everything accumulated so far is kept and returned.
package search
