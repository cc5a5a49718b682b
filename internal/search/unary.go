package search

import (
	"github.com/quarrylabs/exprquest/internal/eval"
	"github.com/quarrylabs/exprquest/internal/expr"
)

// expandUnary extends every cost c-1 entry with each enabled unary
// function, appending the surviving cost-c entries to out.
//
// Cancellation pruning: ln over a direct exp application (and exp over a
// direct ln) is skipped. Either composition is an identity of a shorter
// sub-expression and would only duplicate values already enumerated. The
// directness check is shallow (expr.IsCall): only one negation wrapper is
// looked through.
func (r *run) expandUnary(cost int, out []Entry) []Entry {
	for _, e := range r.memo.level(cost - 1) {
		for _, fn := range r.cfg.Unaries {
			if r.stopped {
				return out
			}
			if fn == expr.Ln && expr.IsCall(e.Node, expr.Exp) {
				continue
			}
			if fn == expr.Exp && expr.IsCall(e.Node, expr.Ln) {
				continue
			}
			v, ok := eval.Unary(fn, e.Value)
			node, ok := r.offer(v, ok, func() expr.Node { return &expr.Unary{Op: fn, X: e.Node} })
			if ok {
				out = append(out, newEntry(v, node))
			}
		}
	}
	return out
}
