// Package spec defines the data model for layout conformance tests.
//
// A TestSpec describes a tree of layout nodes with styling, the sizing
// constraints to lay them out under, and a list of assertions written in
// the expression language over the computed geometry. The spec is pure
// data: validation is the only behavior, and a spec is immutable once it
// has been handed to a transport.
//
// A ComputedNode tree is the oracle's answer: the same tree shape with
// resolved absolute geometry. The assertion evaluator resolves
// child(node, i) by positional index, so the computed tree must be
// structurally congruent to the input layout tree.
package spec
