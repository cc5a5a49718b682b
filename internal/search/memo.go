package search

import "github.com/quarrylabs/exprquest/internal/expr"

// Entry is one expression discovered at an exact cost: its evaluated value,
// its tree, and the precomputed canonical key used for operand ordering.
// Only finite-valued expressions become entries; invalid evaluations are
// dropped before they reach the table.
type Entry struct {
	Value float64
	Node  expr.Node
	Key   string
}

// newEntry builds an entry, computing the canonical key once so the
// combination loops compare keys instead of re-walking trees.
func newEntry(v float64, n expr.Node) Entry {
	return Entry{Value: v, Node: n, Key: expr.CanonicalKey(n)}
}

// memoTable is the cost-indexed cache of discovered expressions.
//
// Level c (1-based) is computed exactly once, from levels < c only, then
// sealed: entries are never recomputed or mutated, and insertion order is
// preserved so later levels enumerate them deterministically.
type memoTable struct {
	levels [][]Entry
}

// seal appends the next level. Levels must be sealed in cost order.
func (m *memoTable) seal(entries []Entry) {
	m.levels = append(m.levels, entries)
}

// level returns the sealed entries at the given cost, or nil if that level
// has not been computed.
func (m *memoTable) level(cost int) []Entry {
	if cost < 1 || cost > len(m.levels) {
		return nil
	}
	return m.levels[cost-1]
}

// height returns the highest sealed cost.
func (m *memoTable) height() int {
	return len(m.levels)
}
