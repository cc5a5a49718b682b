package expr

import "fmt"

// UnaryOp identifies a unary function.
type UnaryOp int

// Unary functions in declaration order. The order is part of the public
// contract: enumeration applies unary functions in this order, so changing
// it changes the (deterministic) order in which candidates are produced.
const (
	Sin UnaryOp = iota + 1
	Cos
	Tan
	Exp
	Ln
	Sqrt
	Neg
)

// unaryNames maps each UnaryOp to its rendered function name.
var unaryNames = map[UnaryOp]string{
	Sin:  "sin",
	Cos:  "cos",
	Tan:  "tan",
	Exp:  "exp",
	Ln:   "ln",
	Sqrt: "sqrt",
	Neg:  "negate",
}

// String returns the function name ("sin", "ln", "negate", ...).
func (op UnaryOp) String() string {
	if name, ok := unaryNames[op]; ok {
		return name
	}
	return fmt.Sprintf("UnaryOp(%d)", int(op))
}

// ParseUnaryOp resolves a function name to its UnaryOp.
// Returns false for unknown names.
func ParseUnaryOp(name string) (UnaryOp, bool) {
	for op, n := range unaryNames {
		if n == name {
			return op, true
		}
	}
	return 0, false
}

// AllUnaryOps returns every unary function in declaration order.
func AllUnaryOps() []UnaryOp {
	return []UnaryOp{Sin, Cos, Tan, Exp, Ln, Sqrt, Neg}
}

// BinaryOp identifies a binary operator.
type BinaryOp int

// Binary operators in declaration order.
const (
	Add BinaryOp = iota + 1
	Sub
	Mul
	Div
	Pow
)

// String returns the operator symbol.
func (op BinaryOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Pow:
		return "^"
	default:
		return fmt.Sprintf("BinaryOp(%d)", int(op))
	}
}

// Commutative reports whether operand order is irrelevant for op.
// Commutative operators are generated in canonical operand order only.
func (op BinaryOp) Commutative() bool {
	return op == Add || op == Mul
}

// Node is a sealed interface over the expression tree node kinds.
// Only Atom, Const, Unary, and Binary implement it.
type Node interface {
	node() // sealed
}

// Atom is an integer literal leaf.
type Atom struct {
	N int64
}

func (*Atom) node() {}

// Const is a named-constant leaf. The numeric value lives on the node so a
// tree is self-contained for replay and archival.
type Const struct {
	Name  string
	Value float64
}

func (*Const) node() {}

// Unary applies a unary function to a child tree.
type Unary struct {
	Op UnaryOp
	X  Node
}

func (*Unary) node() {}

// Binary applies a binary operator to two child trees.
type Binary struct {
	Op   BinaryOp
	L, R Node
}

func (*Binary) node() {}

// IsCall reports whether n is a direct application of the unary function op.
//
// "Direct" is shallow on purpose: at most one enclosing negation wrapper is
// stripped before the check, mirroring the one-layer unwrapping of the
// textual predicate this replaces. Deeper wrappings (a double negation, a
// negation inside another function) are not looked through; do not
// generalize this without changing the enumeration's output.
func IsCall(n Node, op UnaryOp) bool {
	if u, ok := n.(*Unary); ok && u.Op == Neg && op != Neg {
		n = u.X
	}
	u, ok := n.(*Unary)
	return ok && u.Op == op
}
