// Package expr provides the operation-tree representation for candidate
// expressions.
//
// This package contains type definitions and pure functions only. All other
// internal packages import expr; expr imports nothing internal. This keeps
// the tree the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Nodes are immutable after construction and safe to share between
//     memo levels
//   - Textual rendering happens on demand (Render), never at build time
//   - Ordering and tie-breaks use CanonicalKey, never the rendered text
//   - Value deduplication uses Quantize (17 significant decimal digits)
package expr
