package expr

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CanonicalKey produces a stable structural encoding of a tree, used for
// canonical operand ordering of commutative operators and for deterministic
// tie-breaks in the final result set.
//
// The encoding is a compact prefix form with a kind tag per node:
//
//	n:7
//	k:pi
//	u:ln(k:e)
//	b:+(n:1,n:2)
//
// Constant names are NFC normalized so visually identical names compare
// equal regardless of how the caller composed them. Two trees have the same
// key iff they are structurally identical, so comparing keys gives a total,
// reproducible order independent of rendering.
func CanonicalKey(n Node) string {
	var sb strings.Builder
	canonicalKey(&sb, n)
	return sb.String()
}

func canonicalKey(sb *strings.Builder, n Node) {
	switch t := n.(type) {
	case *Atom:
		sb.WriteString("n:")
		sb.WriteString(strconv.FormatInt(t.N, 10))
	case *Const:
		sb.WriteString("k:")
		sb.WriteString(norm.NFC.String(t.Name))
	case *Unary:
		sb.WriteString("u:")
		sb.WriteString(t.Op.String())
		sb.WriteByte('(')
		canonicalKey(sb, t.X)
		sb.WriteByte(')')
	case *Binary:
		sb.WriteString("b:")
		sb.WriteString(t.Op.String())
		sb.WriteByte('(')
		canonicalKey(sb, t.L)
		sb.WriteByte(',')
		canonicalKey(sb, t.R)
		sb.WriteByte(')')
	}
}
