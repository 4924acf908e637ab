// Package expr implements the assertion expression language evaluated
// against a computed layout tree.
//
// The grammar is deliberately small — a single optional top-level
// comparison over arithmetic, with a fixed built-in vocabulary and no
// user extension:
//
//	expr       := comparison
//	comparison := arith (cmpOp arith)?     cmpOp in {==, !=, <, <=, >, >=}
//	arith      := term (('+'|'-') term)*
//	term       := factor (('*'|'/') factor)*
//	factor     := number | call | '(' expr ')'
//	call       := identifier '(' args? ')'
//	args       := expr (',' expr)*
//
// Built-ins: root(), child(node, i), getX(node), getY(node),
// getWidth(node), getHeight(node), getRight(node), getBottom(node).
//
// Values are either numbers (float64) or node handles. The language is
// dynamically type-checked at evaluation time; mixing the two kinds is a
// TYPE_ERROR. Equality comparisons use an absolute tolerance of 1e-6 to
// absorb floating-point layout rounding; ordering comparisons are exact.
// Evaluation is left-to-right and eager.
//
// Two independent implementations of a layout harness must agree on
// every result this package produces, so the error taxonomy is part of
// the contract: see the Code constants in errors.go.
package expr
