package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		node     Node
		expected string
	}{
		{"atom", &Atom{N: 7}, "7"},
		{"constant", &Const{Name: "pi", Value: 3.141592653589793}, "pi"},
		{"negation", &Unary{Op: Neg, X: &Atom{N: 2}}, "-(2)"},
		{"function", &Unary{Op: Ln, X: &Atom{N: 2}}, "ln(2)"},
		{
			"binary",
			&Binary{Op: Add, L: &Atom{N: 1}, R: &Atom{N: 2}},
			"(1 + 2)",
		},
		{
			"nested",
			&Binary{Op: Mul, L: &Atom{N: 4}, R: &Binary{Op: Mul, L: &Atom{N: 2}, R: &Atom{N: 3}}},
			"(4 * (2 * 3))",
		},
		{
			"power of function",
			&Binary{Op: Pow, L: &Const{Name: "e", Value: 2.718281828459045}, R: &Unary{Op: Sqrt, X: &Atom{N: 2}}},
			"(e ^ sqrt(2))",
		},
		{
			"negated binary",
			&Unary{Op: Neg, X: &Binary{Op: Sub, L: &Atom{N: 1}, R: &Atom{N: 3}}},
			"-((1 - 3))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Render(tt.node))
		})
	}
}

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		name     string
		node     Node
		expected string
	}{
		{"atom", &Atom{N: 7}, "n:7"},
		{"constant", &Const{Name: "pi"}, "k:pi"},
		{"unary", &Unary{Op: Ln, X: &Const{Name: "e"}}, "u:ln(k:e)"},
		{
			"binary",
			&Binary{Op: Add, L: &Atom{N: 1}, R: &Atom{N: 2}},
			"b:+(n:1,n:2)",
		},
		{
			"nested",
			&Binary{Op: Pow, L: &Atom{N: 2}, R: &Unary{Op: Neg, X: &Atom{N: 1}}},
			"b:^(n:2,u:negate(n:1))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanonicalKey(tt.node))
		})
	}
}

// TestCanonicalKey_NormalizesConstantNames checks that composed and
// decomposed Unicode spellings of a constant name produce the same key.
func TestCanonicalKey_NormalizesConstantNames(t *testing.T) {
	composed := &Const{Name: "\u00e9"}    // é as one code point
	decomposed := &Const{Name: "e\u0301"} // e + combining acute

	assert.Equal(t, CanonicalKey(composed), CanonicalKey(decomposed))
	assert.Equal(t, "k:\u00e9", CanonicalKey(decomposed))
}

func TestCanonicalKey_DistinguishesStructure(t *testing.T) {
	a := &Binary{Op: Add, L: &Atom{N: 1}, R: &Atom{N: 2}}
	b := &Binary{Op: Add, L: &Atom{N: 2}, R: &Atom{N: 1}}
	assert.NotEqual(t, CanonicalKey(a), CanonicalKey(b))
}

func TestQuantize(t *testing.T) {
	assert.Equal(t, Quantize(0.1+0.2), Quantize(0.30000000000000004))
	assert.NotEqual(t, Quantize(0.1+0.2), Quantize(0.3))
	assert.Equal(t, "1", Quantize(1.0))
	assert.Equal(t, "-0.5", Quantize(-0.5))
}
