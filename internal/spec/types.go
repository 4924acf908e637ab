package spec

// NodeType identifies the kind of a layout node.
// The core only defines "container"; engines may add kinds later.
type NodeType string

const (
	// NodeContainer is a box that may hold children.
	NodeContainer NodeType = "container"
)

// Layout is the input description of a box, prior to computation.
//
// Children distinguishes two states that must survive the wire codec:
// a nil slice means the node is a leaf ("children" absent from the
// document), while a non-nil empty slice means an explicitly empty
// container ("children": []).
type Layout struct {
	Type     NodeType
	Style    Style
	Children []Layout
}

// IsLeaf reports whether the node has no children sequence at all.
func (l *Layout) IsLeaf() bool {
	return l.Children == nil
}

// Style holds the styling inputs for a single node.
//
// The string properties are engine-defined enumerations; the core treats
// them as opaque and does not validate their values. Width and Height are
// requested sizes; nil means "auto", resolved by the engine.
type Style struct {
	Display        string
	JustifyContent string
	AlignItems     string
	Width          *float64
	Height         *float64
}

// Constraints are optional upper bounds applied to the root node
// during layout. Nil means unbounded.
type Constraints struct {
	MaxWidth  *float64
	MaxHeight *float64
}

// AssertionType identifies the kind of an assertion.
// The core only defines "layout".
type AssertionType string

const (
	// AssertLayout is a boolean expression over computed geometry.
	AssertLayout AssertionType = "layout"
)

// Assertion is a single boolean check against the computed tree.
// Message is a human-readable label, opaque to evaluation.
type Assertion struct {
	Type       AssertionType
	Expression string
	Message    string
}

// TestSpec is a complete layout conformance test.
//
// Binding is an opaque selector identifying which engine
// implementation/version to exercise. The core never interprets it;
// it is forwarded verbatim to the oracle.
type TestSpec struct {
	Layout      Layout
	Constraints Constraints
	Assertions  []Assertion
	Binding     string
}

// ComputedNode is one node of the oracle's answer: absolute geometry
// in the root's coordinate space, with the same child ordering as the
// input layout tree.
type ComputedNode struct {
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Children []*ComputedNode
}

// Right returns the x coordinate of the node's right edge.
func (n *ComputedNode) Right() float64 { return n.X + n.Width }

// Bottom returns the y coordinate of the node's bottom edge.
func (n *ComputedNode) Bottom() float64 { return n.Y + n.Height }

// CongruentWith reports whether the computed tree has the same shape
// (node count and child ordering) as the given layout tree. The
// evaluator relies on this to resolve children by positional index.
func (n *ComputedNode) CongruentWith(l *Layout) bool {
	if n == nil {
		return false
	}
	if len(n.Children) != len(l.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].CongruentWith(&l.Children[i]) {
			return false
		}
	}
	return true
}

// TestResult is the summary of a completed run. For every completed
// run, Passed+Failed+Skipped equals the number of assertions in the
// spec that produced it.
type TestResult struct {
	Passed  int
	Failed  int
	Skipped int
}

// Total returns the number of assertions the result accounts for.
func (r TestResult) Total() int {
	return r.Passed + r.Failed + r.Skipped
}
