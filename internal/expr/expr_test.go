package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnaryOpString(t *testing.T) {
	tests := []struct {
		op   UnaryOp
		name string
	}{
		{Sin, "sin"},
		{Cos, "cos"},
		{Tan, "tan"},
		{Exp, "exp"},
		{Ln, "ln"},
		{Sqrt, "sqrt"},
		{Neg, "negate"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.op.String())
	}
	assert.Equal(t, "UnaryOp(99)", UnaryOp(99).String())
}

func TestParseUnaryOp(t *testing.T) {
	for _, op := range AllUnaryOps() {
		parsed, ok := ParseUnaryOp(op.String())
		require.True(t, ok, "name %q should parse", op.String())
		assert.Equal(t, op, parsed)
	}

	_, ok := ParseUnaryOp("tanh")
	assert.False(t, ok)
	_, ok = ParseUnaryOp("")
	assert.False(t, ok)
}

func TestBinaryOpCommutative(t *testing.T) {
	assert.True(t, Add.Commutative())
	assert.True(t, Mul.Commutative())
	assert.False(t, Sub.Commutative())
	assert.False(t, Div.Commutative())
	assert.False(t, Pow.Commutative())
}

// TestIsCall_Shallow verifies that at most one negation wrapper is stripped
// before the function check.
func TestIsCall_Shallow(t *testing.T) {
	lnTwo := &Unary{Op: Ln, X: &Atom{N: 2}}

	assert.True(t, IsCall(lnTwo, Ln))
	assert.False(t, IsCall(lnTwo, Exp))

	// One negation wrapper is looked through.
	negLn := &Unary{Op: Neg, X: lnTwo}
	assert.True(t, IsCall(negLn, Ln))

	// Two wrappers are not.
	doubleNeg := &Unary{Op: Neg, X: negLn}
	assert.False(t, IsCall(doubleNeg, Ln))

	// A function inside another function is not direct.
	sqrtLn := &Unary{Op: Sqrt, X: lnTwo}
	assert.False(t, IsCall(sqrtLn, Ln))
}

// TestIsCall_Negation checks that asking about negation itself never strips
// the wrapper it is asking about.
func TestIsCall_Negation(t *testing.T) {
	neg := &Unary{Op: Neg, X: &Atom{N: 3}}
	assert.True(t, IsCall(neg, Neg))
	assert.False(t, IsCall(&Atom{N: 3}, Neg))

	negNeg := &Unary{Op: Neg, X: neg}
	assert.True(t, IsCall(negNeg, Neg))
}

func TestIsCall_NonUnary(t *testing.T) {
	assert.False(t, IsCall(&Atom{N: 1}, Ln))
	assert.False(t, IsCall(&Const{Name: "pi", Value: 3.14}, Ln))
	assert.False(t, IsCall(&Binary{Op: Add, L: &Atom{N: 1}, R: &Atom{N: 2}}, Ln))
}
