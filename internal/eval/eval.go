// Package eval provides safe numeric evaluation of unary functions and
// binary operators.
//
// Every application either yields a finite float64 or reports invalid via
// the ok result. Domain violations (log of a non-positive number, square
// root of a negative), division by zero, power overflow past MaxMagnitude,
// and non-finite results all surface as ok=false. Nothing in this
// package panics: exploring arbitrary operator combinations makes invalid
// results an expected outcome, not an error.
package eval

import (
	"math"

	"github.com/quarrylabs/exprquest/internal/expr"
)

// MaxMagnitude bounds the magnitude of any accepted result. Values beyond
// it are treated as overflow and rejected.
const MaxMagnitude = 1e300

// integerTolerance is how close a power exponent must be to an integer for
// a negative base to be accepted. Non-integer real powers of negative
// numbers are undefined.
const integerTolerance = 1e-9

// Unary applies a unary function. ok is false when the input is outside the
// function's domain or the result is not a finite value within bounds.
func Unary(op expr.UnaryOp, x float64) (float64, bool) {
	switch op {
	case expr.Sin:
		return accept(math.Sin(x))
	case expr.Cos:
		return accept(math.Cos(x))
	case expr.Tan:
		return accept(math.Tan(x))
	case expr.Exp:
		return accept(math.Exp(x))
	case expr.Ln:
		if x <= 0 {
			return 0, false
		}
		return accept(math.Log(x))
	case expr.Sqrt:
		if x < 0 {
			return 0, false
		}
		return accept(math.Sqrt(x))
	case expr.Neg:
		return accept(-x)
	default:
		return 0, false
	}
}

// Binary applies a binary operator. ok is false when the operands are
// outside the operator's domain or the result is not a finite value within
// bounds.
func Binary(op expr.BinaryOp, a, b float64) (float64, bool) {
	switch op {
	case expr.Add:
		return accept(a + b)
	case expr.Sub:
		return accept(a - b)
	case expr.Mul:
		return accept(a * b)
	case expr.Div:
		if b == 0 {
			return 0, false
		}
		return accept(a / b)
	case expr.Pow:
		if a < 0 {
			// Negative bases only support integral exponents. An exponent
			// within tolerance of an integer is snapped to it so float
			// noise from upstream arithmetic does not turn a legal power
			// into NaN.
			if math.Abs(b-math.Round(b)) > integerTolerance {
				return 0, false
			}
			b = math.Round(b)
		}
		v, ok := accept(math.Pow(a, b))
		if !ok || math.Abs(v) > MaxMagnitude {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

// accept filters non-finite results. The MaxMagnitude overflow bound applies
// to power only; the other operators are total and rely on the finiteness
// check alone.
func accept(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
