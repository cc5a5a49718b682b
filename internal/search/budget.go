package search

import "time"

// NowFunc supplies wall-clock readings to the budget guard. Production uses
// time.Now; tests substitute a deterministic clock so budget behavior is
// reproducible without real sleeps.
type NowFunc func() time.Time

// budget tracks elapsed wall-clock time against the configured maximum.
//
// Expiry is a control signal, not a failure: the enumeration polls Expired
// at every loop boundary and returns early with whatever has accumulated.
// Polling is coarse; an in-flight operator evaluation is never
// interrupted, so runs may overshoot the budget by at most one candidate.
type budget struct {
	start time.Time
	max   time.Duration
	now   NowFunc
}

func newBudget(max time.Duration, now NowFunc) *budget {
	return &budget{start: now(), max: max, now: now}
}

// Expired reports whether the budget has been reached. A zero budget
// expires on the first poll.
func (b *budget) Expired() bool {
	return b.now().Sub(b.start) >= b.max
}

// Elapsed returns time since the run started.
func (b *budget) Elapsed() time.Duration {
	return b.now().Sub(b.start)
}
