// Package testutil provides tree builders shared by tests.
//
// Building layout and computed trees by struct literal drowns the
// interesting part of a test in field names; these helpers keep test
// fixtures readable.
package testutil

import "github.com/boxproof/boxproof/internal/spec"

// F returns a pointer to the given float, for optional style and
// constraint fields.
func F(v float64) *float64 { return &v }

// Container builds a layout container with the given style and
// children. Passing no children yields an explicitly empty container
// (non-nil empty slice), not a leaf; use Leaf for leaves.
func Container(style spec.Style, children ...spec.Layout) spec.Layout {
	if children == nil {
		children = []spec.Layout{}
	}
	return spec.Layout{
		Type:     spec.NodeContainer,
		Style:    style,
		Children: children,
	}
}

// Leaf builds a childless layout node with a fixed requested size.
func Leaf(width, height float64) spec.Layout {
	return spec.Layout{
		Type: spec.NodeContainer,
		Style: spec.Style{
			Width:  F(width),
			Height: F(height),
		},
	}
}

// Computed builds a computed tree node.
func Computed(x, y, width, height float64, children ...*spec.ComputedNode) *spec.ComputedNode {
	return &spec.ComputedNode{
		X:        x,
		Y:        y,
		Width:    width,
		Height:   height,
		Children: children,
	}
}

// LayoutAssertion builds a layout assertion.
func LayoutAssertion(expression, message string) spec.Assertion {
	return spec.Assertion{
		Type:       spec.AssertLayout,
		Expression: expression,
		Message:    message,
	}
}

// SpaceBetweenSpec is the canonical cross-language example: a 600x100
// flex container with three 100x50 children laid out space-between and
// vertically centered.
func SpaceBetweenSpec() *spec.TestSpec {
	return &spec.TestSpec{
		Layout: Container(
			spec.Style{
				Display:        "flex",
				JustifyContent: "space-between",
				AlignItems:     "center",
				Width:          F(600),
				Height:         F(100),
			},
			Leaf(100, 50),
			Leaf(100, 50),
			Leaf(100, 50),
		),
		Constraints: spec.Constraints{
			MaxWidth:  F(800),
			MaxHeight: F(600),
		},
		Assertions: []spec.Assertion{
			LayoutAssertion("getX(child(root(), 0)) == 0.0", "first-child-at-start"),
			LayoutAssertion("getRight(child(root(), 2)) == getWidth(root())", "last-child-at-end"),
			LayoutAssertion("getY(child(root(), 0)) == (getHeight(root()) - getHeight(child(root(), 0))) / 2.0", "vertically-centered"),
		},
		Binding: "reference",
	}
}

// SpaceBetweenComputed is the geometry a conforming engine produces
// for SpaceBetweenSpec.
func SpaceBetweenComputed() *spec.ComputedNode {
	return Computed(0, 0, 600, 100,
		Computed(0, 25, 100, 50),
		Computed(250, 25, 100, 50),
		Computed(500, 25, 100, 50),
	)
}
