package search

import (
	"math"

	"github.com/quarrylabs/exprquest/internal/eval"
	"github.com/quarrylabs/exprquest/internal/expr"
)

// combine produces the cost-c binary combinations: for every split
// a+b+1=c, every (L, R) pair from levels a and b, and every enabled
// operator, appending the surviving entries to out.
//
// The split loop runs over the full range 1..c-2, so each unordered operand
// pair from distinct levels is visited in both orientations. That is what
// gives non-commutative operators both orders (L-R at split (a,b), R-L at
// the mirrored split (b,a)) without generating either twice. Commutative
// operators would be produced twice by the mirroring, so they are emitted
// only when L precedes R in canonical order.
func (r *run) combine(cost int, out []Entry) []Entry {
	for a := 1; a <= cost-2; a++ {
		b := cost - 1 - a
		for _, left := range r.memo.level(a) {
			for _, right := range r.memo.level(b) {
				for _, op := range r.ops {
					if r.stopped {
						return out
					}
					if r.pruned(op, left, right) {
						continue
					}
					v, ok := eval.Binary(op, left.Value, right.Value)
					node, ok := r.offer(v, ok, func() expr.Node {
						return &expr.Binary{Op: op, L: left.Node, R: right.Node}
					})
					if ok {
						out = append(out, newEntry(v, node))
					}
				}
			}
		}
	}
	return out
}

// pruned applies the identity and canonicalization rules.
func (r *run) pruned(op expr.BinaryOp, left, right Entry) bool {
	switch op {
	case expr.Add, expr.Sub:
		// Adding or subtracting a near-zero operand is an identity of
		// the left operand.
		if math.Abs(right.Value) <= r.eps {
			return true
		}
	case expr.Mul, expr.Div:
		// Multiplying or dividing by near-one likewise.
		if math.Abs(right.Value-1) <= r.eps {
			return true
		}
	}
	if op.Commutative() && !canonicalOrder(left, right) {
		return true
	}
	return false
}

// canonicalOrder reports whether left precedes (or equals) right in the
// canonical operand order: by value first, then by structural key. Only one
// orientation of a commutative pair satisfies it, except for identical
// operands, where both orientations are the same combination anyway.
func canonicalOrder(left, right Entry) bool {
	if left.Value != right.Value {
		return left.Value < right.Value
	}
	return left.Key <= right.Key
}
