package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/quarrylabs/exprquest/internal/expr"
)

// ProgressFunc is invoked once per completed cost level with the level just
// sealed, elapsed wall-clock time, and the cumulative number of candidates
// considered. It runs on the search goroutine; keep it cheap.
type ProgressFunc func(level int, elapsed time.Duration, considered uint64)

// Stats summarizes one run.
type Stats struct {
	// Considered counts every candidate attempt: each atom, each unary
	// application, each binary operator application that survived pruning.
	Considered uint64 `json:"considered"`
	// HighestCost is the highest fully or partially sealed cost level.
	HighestCost int `json:"highest_cost"`
	// Elapsed is wall-clock time for the run.
	Elapsed time.Duration `json:"elapsed_ns"`
	// Stopped reports early termination (budget expiry or context
	// cancellation) before the cost ceiling. Results are still valid.
	Stopped bool `json:"stopped"`
}

// Result is the outcome of one run: candidates ascending by error plus
// summary statistics.
type Result struct {
	Candidates []Candidate `json:"candidates"`
	Stats      Stats       `json:"stats"`
}

// Searcher runs searches for a fixed configuration.
type Searcher struct {
	cfg      Config
	now      NowFunc
	progress ProgressFunc
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithNow substitutes the wall-clock source. Tests use a deterministic
// clock from internal/testutil.
func WithNow(now NowFunc) Option {
	return func(s *Searcher) { s.now = now }
}

// WithProgress installs a per-level progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(s *Searcher) { s.progress = fn }
}

// New creates a Searcher. The configuration is validated at Run time.
func New(cfg Config, opts ...Option) *Searcher {
	s := &Searcher{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes the search to the cost ceiling, budget expiry, or context
// cancellation, whichever comes first. Early termination is a normal path:
// the partial result set is returned with Stats.Stopped set.
//
// Run only returns an error for an invalid configuration. A valid
// configuration always yields a (possibly empty) result.
func (s *Searcher) Run(ctx context.Context) (*Result, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	r := &run{
		ctx:    ctx,
		cfg:    s.cfg,
		eps:    s.cfg.epsilon(),
		ops:    s.cfg.BinaryOps(),
		top:    newTopK(s.cfg.Target, s.cfg.KeepTop, s.cfg.KeepSide, s.cfg.epsilon()),
		budget: newBudget(s.cfg.MaxDuration, s.now),
	}
	if s.progress != nil {
		r.progress = s.progress
	}
	return r.execute(), nil
}

// run bundles all mutable state for one search: memo table, selector,
// budget, and counters. One run value per Run call; nothing is shared.
type run struct {
	ctx        context.Context
	cfg        Config
	eps        float64
	ops        []expr.BinaryOp
	memo       memoTable
	top        *topK
	budget     *budget
	progress   ProgressFunc
	considered uint64
	stopped    bool
}

// execute drives the level state machine: Level(1) .. Level(maxCost), with
// an early transition to done when the budget guard fires. Each level is
// sealed (possibly partially, on expiry) before the loop exits so the
// result always reflects everything enumerated.
func (r *run) execute() *Result {
	for cost := 1; cost <= r.cfg.MaxCost; cost++ {
		if cost > 1 && r.stopped {
			break
		}
		var entries []Entry
		if cost == 1 {
			entries = r.atoms()
		} else {
			entries = r.expandUnary(cost, entries)
			entries = r.combine(cost, entries)
		}
		r.memo.seal(entries)
		if r.progress != nil {
			r.progress(cost, r.budget.Elapsed(), r.considered)
		}
		slog.Debug("level sealed",
			"cost", cost,
			"entries", len(entries),
			"considered", r.considered,
			"worst_error", r.top.worst(),
		)
		if r.stopped {
			break
		}
	}

	return &Result{
		Candidates: r.top.results(),
		Stats: Stats{
			Considered:  r.considered,
			HighestCost: r.memo.height(),
			Elapsed:     r.budget.Elapsed(),
			Stopped:     r.stopped,
		},
	}
}

// poll is the cooperative stop check, called after every candidate. Once
// stopped, a run never resumes.
func (r *run) poll() {
	if r.stopped {
		return
	}
	if r.budget.Expired() || r.ctx.Err() != nil {
		r.stopped = true
	}
}

// offer records one candidate attempt and feeds a finite value to the
// selector. The node is built by the closure only when the evaluation
// succeeded.
func (r *run) offer(value float64, ok bool, build func() expr.Node) (expr.Node, bool) {
	r.considered++
	if !ok {
		r.poll()
		return nil, false
	}
	node := build()
	r.top.consider(value, func() expr.Node { return node })
	r.poll()
	return node, true
}

// atoms produces cost-1 entries: the integer atoms 1..N, then the named
// constants, in declaration order.
func (r *run) atoms() []Entry {
	out := make([]Entry, 0, r.cfg.AtomCount+len(r.cfg.Constants))
	for i := 1; i <= r.cfg.AtomCount; i++ {
		if r.stopped {
			return out
		}
		node, ok := r.offer(float64(i), true, func() expr.Node { return &expr.Atom{N: int64(i)} })
		if ok {
			out = append(out, newEntry(float64(i), node))
		}
	}
	for _, k := range r.cfg.Constants {
		if r.stopped {
			return out
		}
		node, ok := r.offer(k.Value, true, func() expr.Node { return &expr.Const{Name: k.Name, Value: k.Value} })
		if ok {
			out = append(out, newEntry(k.Value, node))
		}
	}
	return out
}
