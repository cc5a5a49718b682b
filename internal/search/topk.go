package search

import (
	"container/heap"
	"math"
	"sort"

	"github.com/quarrylabs/exprquest/internal/expr"
)

// Candidate is one retained approximation: its absolute error against the
// target, its value, and its rendered textual form.
type Candidate struct {
	Error float64 `json:"error"`
	Value float64 `json:"value"`
	Text  string  `json:"expr"`
}

// topK retains at most limit distinct-valued candidates closest to the
// target. It is a bounded max-heap ordered by error (worst on top) plus a
// quantized-value dedup set, so replacing the worst entry is O(log K) and
// duplicate values are rejected in O(1).
type topK struct {
	target  float64
	epsilon float64
	side    Side
	limit   int
	entries kHeap
	seen    map[string]struct{}
}

type kEntry struct {
	err   float64
	value float64
	key   string
	node  expr.Node
}

func newTopK(target float64, limit int, side Side, epsilon float64) *topK {
	return &topK{
		target:  target,
		epsilon: epsilon,
		side:    side,
		limit:   limit,
		entries: make(kHeap, 0, limit),
		seen:    make(map[string]struct{}, limit),
	}
}

// consider offers a candidate value. The tree is supplied by a closure and
// only materialized on acceptance; rejected candidates (non-finite, wrong
// side, duplicate value, not better than the current worst) never build one.
func (k *topK) consider(value float64, build func() expr.Node) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return
	}
	switch k.side {
	case SideGreater:
		if value <= k.target+k.epsilon {
			return
		}
	case SideLess:
		if value >= k.target-k.epsilon {
			return
		}
	}

	key := expr.Quantize(value)
	if _, dup := k.seen[key]; dup {
		return
	}
	err := math.Abs(k.target - value)

	if len(k.entries) < k.limit {
		heap.Push(&k.entries, kEntry{err: err, value: value, key: key, node: build()})
		k.seen[key] = struct{}{}
		return
	}
	if err >= k.entries[0].err {
		return
	}
	delete(k.seen, k.entries[0].key)
	k.entries[0] = kEntry{err: err, value: value, key: key, node: build()}
	heap.Fix(&k.entries, 0)
	k.seen[key] = struct{}{}
}

// worst returns the largest retained error, or +Inf when empty. The worst
// error is non-increasing once the selector is full.
func (k *topK) worst() float64 {
	if len(k.entries) == 0 {
		return math.Inf(1)
	}
	return k.entries[0].err
}

// results renders the retained candidates sorted ascending by error, ties
// broken by canonical structural key so re-runs are bit-identical.
func (k *topK) results() []Candidate {
	sorted := make([]kEntry, len(k.entries))
	copy(sorted, k.entries)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].err != sorted[j].err {
			return sorted[i].err < sorted[j].err
		}
		return expr.CanonicalKey(sorted[i].node) < expr.CanonicalKey(sorted[j].node)
	})

	out := make([]Candidate, len(sorted))
	for i, e := range sorted {
		out[i] = Candidate{Error: e.err, Value: e.value, Text: expr.Render(e.node)}
	}
	return out
}

// kHeap is a max-heap by error with deterministic tie-breaks on the
// quantized value key.
type kHeap []kEntry

func (h kHeap) Len() int { return len(h) }

func (h kHeap) Less(i, j int) bool {
	if h[i].err != h[j].err {
		return h[i].err > h[j].err
	}
	return h[i].key > h[j].key
}

func (h kHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *kHeap) Push(x any) { *h = append(*h, x.(kEntry)) }

func (h *kHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
