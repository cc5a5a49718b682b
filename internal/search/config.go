package search

import (
	"fmt"
	"math"
	"time"

	"github.com/quarrylabs/exprquest/internal/expr"
)

// DefaultEpsilon is the tolerance used for identity pruning and the
// keep-side filter when the configuration does not set one.
const DefaultEpsilon = 1e-12

// Side restricts which side of the target retained candidates may fall on.
type Side int

const (
	// SideBoth keeps candidates on either side of the target.
	SideBoth Side = iota
	// SideGreater keeps only values strictly greater than target+epsilon.
	SideGreater
	// SideLess keeps only values strictly less than target-epsilon.
	SideLess
)

// String returns the configuration spelling of the side.
func (s Side) String() string {
	switch s {
	case SideGreater:
		return "greater"
	case SideLess:
		return "less"
	default:
		return "both"
	}
}

// ParseSide resolves a configuration spelling to a Side.
func ParseSide(s string) (Side, error) {
	switch s {
	case "both", "":
		return SideBoth, nil
	case "greater":
		return SideGreater, nil
	case "less":
		return SideLess, nil
	default:
		return SideBoth, fmt.Errorf("invalid keep_side %q: must be greater, less, or both", s)
	}
}

// Constant is a named cost-1 building block.
type Constant struct {
	Name  string
	Value float64
}

// Config describes one search run. The core assumes a validated
// configuration; use Validate before handing one to a Searcher.
type Config struct {
	// AtomCount is N: the integers 1..N become cost-1 atoms. Zero is
	// allowed (constants-only searches).
	AtomCount int

	// Target is the value to approximate. Must be finite.
	Target float64

	// Constants are the named cost-1 building blocks, in declaration
	// order. Order matters for determinism; callers supplying constants
	// from an unordered source must sort them first.
	Constants []Constant

	// Unaries are the enabled unary functions in declaration order.
	Unaries []expr.UnaryOp

	// PowerEnabled adds ^ to the binary operators (+, -, *, / are always
	// on).
	PowerEnabled bool

	// MaxCost is the enumeration ceiling (inclusive).
	MaxCost int

	// MaxDuration is the wall-clock budget. Zero expires immediately
	// after the first poll; partial results are still returned.
	MaxDuration time.Duration

	// KeepTop is K: the maximum number of distinct-valued candidates
	// retained.
	KeepTop int

	// KeepSide restricts retained candidates to one side of the target.
	KeepSide Side

	// Epsilon is the identity-pruning and keep-side tolerance. Zero means
	// DefaultEpsilon.
	Epsilon float64
}

// BinaryOps returns the enabled binary operators in declaration order.
func (c *Config) BinaryOps() []expr.BinaryOp {
	ops := []expr.BinaryOp{expr.Add, expr.Sub, expr.Mul, expr.Div}
	if c.PowerEnabled {
		ops = append(ops, expr.Pow)
	}
	return ops
}

// epsilon returns the effective tolerance.
func (c *Config) epsilon() float64 {
	if c.Epsilon > 0 {
		return c.Epsilon
	}
	return DefaultEpsilon
}

// Validate checks the configuration. It returns the first problem found;
// external collaborators (profile compiler, CLI flags) are expected to have
// rejected malformed input before this point, so this is a backstop.
func (c *Config) Validate() error {
	if c.AtomCount < 0 {
		return fmt.Errorf("atom count must be >= 0, got %d", c.AtomCount)
	}
	if math.IsNaN(c.Target) || math.IsInf(c.Target, 0) {
		return fmt.Errorf("target must be finite, got %v", c.Target)
	}
	for _, k := range c.Constants {
		if k.Name == "" {
			return fmt.Errorf("constant with value %v has an empty name", k.Value)
		}
		if math.IsNaN(k.Value) || math.IsInf(k.Value, 0) {
			return fmt.Errorf("constant %q must be finite, got %v", k.Name, k.Value)
		}
	}
	if c.MaxCost < 1 {
		return fmt.Errorf("max cost must be >= 1, got %d", c.MaxCost)
	}
	if c.MaxDuration < 0 {
		return fmt.Errorf("wall-clock budget must be >= 0, got %v", c.MaxDuration)
	}
	if c.KeepTop < 1 {
		return fmt.Errorf("keep top must be >= 1, got %d", c.KeepTop)
	}
	if c.Epsilon < 0 {
		return fmt.Errorf("epsilon must be >= 0, got %v", c.Epsilon)
	}
	return nil
}
