package expr

import (
	"strconv"
	"strings"
)

// Render produces the textual form of a tree.
//
// Forms:
//   - integer atom:  decimal literal ("7")
//   - named constant: its name ("pi")
//   - negation:      "-(x)"
//   - other unary:   "f(x)"
//   - binary:        "(l op r)"
//
// Rendering is on demand: the enumeration carries trees, not strings, and
// only renders the ones that reach the final result set.
func Render(n Node) string {
	var sb strings.Builder
	render(&sb, n)
	return sb.String()
}

func render(sb *strings.Builder, n Node) {
	switch t := n.(type) {
	case *Atom:
		sb.WriteString(strconv.FormatInt(t.N, 10))
	case *Const:
		sb.WriteString(t.Name)
	case *Unary:
		if t.Op == Neg {
			sb.WriteString("-(")
		} else {
			sb.WriteString(t.Op.String())
			sb.WriteByte('(')
		}
		render(sb, t.X)
		sb.WriteByte(')')
	case *Binary:
		sb.WriteByte('(')
		render(sb, t.L)
		sb.WriteByte(' ')
		sb.WriteString(t.Op.String())
		sb.WriteByte(' ')
		render(sb, t.R)
		sb.WriteByte(')')
	}
}
