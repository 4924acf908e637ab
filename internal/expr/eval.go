package expr

import (
	"math"

	"github.com/boxproof/boxproof/internal/spec"
)

// Epsilon is the absolute tolerance applied to == and != comparisons.
// Layout engines round float geometry differently; exact equality over
// computed coordinates would make conforming engines disagree.
const Epsilon = 1e-6

// valueKind discriminates the two kinds the language knows about.
type valueKind int

const (
	kindNumber valueKind = iota
	kindNode
	kindBool // only ever produced at the top level, by a comparison
)

func (k valueKind) String() string {
	switch k {
	case kindNumber:
		return "number"
	case kindNode:
		return "node"
	case kindBool:
		return "boolean"
	}
	return "unknown"
}

// value is a dynamically typed evaluation result.
type value struct {
	kind valueKind
	num  float64
	node *spec.ComputedNode
	b    bool
}

func numberVal(f float64) value          { return value{kind: kindNumber, num: f} }
func nodeVal(n *spec.ComputedNode) value { return value{kind: kindNode, node: n} }
func boolVal(b bool) value               { return value{kind: kindBool, b: b} }

// Evaluate parses and evaluates an assertion expression against a
// computed tree, returning the boolean outcome.
//
// Every failure is an *Error carrying one of the contract codes:
// PARSE_ERROR, TYPE_ERROR, EVALUATION_ERROR, INDEX_OUT_OF_RANGE. The
// caller classifies any such failure as a skipped assertion.
func Evaluate(expression string, root *spec.ComputedNode) (bool, error) {
	node, err := Parse(expression)
	if err != nil {
		return false, err
	}
	return EvaluateNode(node, root)
}

// EvaluateNode evaluates a parsed expression against a computed tree.
// The top-level result must be a boolean, i.e. the expression must be a
// comparison; a bare arithmetic expression is a TYPE_ERROR.
func EvaluateNode(node Node, root *spec.ComputedNode) (bool, error) {
	ev := &evaluator{root: root}
	v, err := ev.eval(node)
	if err != nil {
		return false, err
	}
	if v.kind != kindBool {
		return false, newError(CodeType, node.pos(), "expression yields a %s, not a boolean comparison", v.kind)
	}
	return v.b, nil
}

type evaluator struct {
	root *spec.ComputedNode
}

func (ev *evaluator) eval(n Node) (value, error) {
	switch node := n.(type) {
	case *NumberLit:
		return numberVal(node.Value), nil
	case *Call:
		return ev.evalCall(node)
	case *Binary:
		return ev.evalBinary(node)
	}
	return value{}, newError(CodeEvaluation, n.pos(), "unsupported expression node %T", n)
}

// evalBinary evaluates operands left to right, eagerly, then applies
// the operator. Both operands of every operator must be numbers.
func (ev *evaluator) evalBinary(b *Binary) (value, error) {
	left, err := ev.eval(b.Left)
	if err != nil {
		return value{}, err
	}
	right, err := ev.eval(b.Right)
	if err != nil {
		return value{}, err
	}

	if left.kind != kindNumber {
		return value{}, newError(CodeType, b.Left.pos(), "operator %q requires numeric operands, left side is a %s", b.Op, left.kind)
	}
	if right.kind != kindNumber {
		return value{}, newError(CodeType, b.Right.pos(), "operator %q requires numeric operands, right side is a %s", b.Op, right.kind)
	}

	switch b.Op {
	case OpAdd:
		return numberVal(left.num + right.num), nil
	case OpSub:
		return numberVal(left.num - right.num), nil
	case OpMul:
		return numberVal(left.num * right.num), nil
	case OpDiv:
		if right.num == 0 {
			return value{}, newError(CodeEvaluation, b.Off, "division by zero")
		}
		return numberVal(left.num / right.num), nil
	case OpEq:
		return boolVal(approxEqual(left.num, right.num)), nil
	case OpNeq:
		return boolVal(!approxEqual(left.num, right.num)), nil
	case OpLt:
		return boolVal(left.num < right.num), nil
	case OpLte:
		return boolVal(left.num <= right.num), nil
	case OpGt:
		return boolVal(left.num > right.num), nil
	case OpGte:
		return boolVal(left.num >= right.num), nil
	}
	return value{}, newError(CodeEvaluation, b.Off, "unknown operator %q", b.Op)
}

// approxEqual compares two floats within the absolute tolerance.
func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// geometry accessors shared by the getX family.
var accessors = map[string]func(*spec.ComputedNode) float64{
	"getX":      func(n *spec.ComputedNode) float64 { return n.X },
	"getY":      func(n *spec.ComputedNode) float64 { return n.Y },
	"getWidth":  func(n *spec.ComputedNode) float64 { return n.Width },
	"getHeight": func(n *spec.ComputedNode) float64 { return n.Height },
	"getRight":  (*spec.ComputedNode).Right,
	"getBottom": (*spec.ComputedNode).Bottom,
}

func (ev *evaluator) evalCall(c *Call) (value, error) {
	if fn, ok := accessors[c.Name]; ok {
		node, err := ev.nodeArg(c)
		if err != nil {
			return value{}, err
		}
		return numberVal(fn(node)), nil
	}

	switch c.Name {
	case "root":
		if len(c.Args) != 0 {
			return value{}, newError(CodeEvaluation, c.Off, "root() takes no arguments, got %d", len(c.Args))
		}
		return nodeVal(ev.root), nil

	case "child":
		return ev.evalChild(c)
	}

	return value{}, newError(CodeEvaluation, c.Off, "unknown function %q", c.Name)
}

// nodeArg checks the single-node-argument convention of the accessor
// functions and returns the node handle.
func (ev *evaluator) nodeArg(c *Call) (*spec.ComputedNode, error) {
	if len(c.Args) != 1 {
		return nil, newError(CodeEvaluation, c.Off, "%s() takes exactly one argument, got %d", c.Name, len(c.Args))
	}
	v, err := ev.eval(c.Args[0])
	if err != nil {
		return nil, err
	}
	if v.kind != kindNode {
		return nil, newError(CodeType, c.Args[0].pos(), "%s() requires a node argument, got a %s", c.Name, v.kind)
	}
	return v.node, nil
}

// evalChild resolves child(node, index). The index must be a number
// with an integral value; out-of-bounds lookups (including any lookup
// on a leaf) are INDEX_OUT_OF_RANGE.
func (ev *evaluator) evalChild(c *Call) (value, error) {
	if len(c.Args) != 2 {
		return value{}, newError(CodeEvaluation, c.Off, "child() takes exactly two arguments, got %d", len(c.Args))
	}

	parent, err := ev.eval(c.Args[0])
	if err != nil {
		return value{}, err
	}
	if parent.kind != kindNode {
		return value{}, newError(CodeType, c.Args[0].pos(), "child() requires a node as its first argument, got a %s", parent.kind)
	}

	idxVal, err := ev.eval(c.Args[1])
	if err != nil {
		return value{}, err
	}
	if idxVal.kind != kindNumber {
		return value{}, newError(CodeType, c.Args[1].pos(), "child() requires a numeric index, got a %s", idxVal.kind)
	}
	if idxVal.num != math.Trunc(idxVal.num) {
		return value{}, newError(CodeEvaluation, c.Args[1].pos(), "child index must be an integer, got %v", idxVal.num)
	}

	idx := int(idxVal.num)
	if idx < 0 || idx >= len(parent.node.Children) {
		return value{}, newError(CodeIndexOutOfRange, c.Args[1].pos(), "child index %d out of range for node with %d children", idx, len(parent.node.Children))
	}
	return nodeVal(parent.node.Children[idx]), nil
}
