package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func validSpec() *TestSpec {
	return &TestSpec{
		Layout: Layout{
			Type: NodeContainer,
			Style: Style{
				Display: "flex",
				Width:   f(600),
				Height:  f(100),
			},
			Children: []Layout{
				{Type: NodeContainer, Style: Style{Width: f(100), Height: f(50)}},
			},
		},
		Constraints: Constraints{MaxWidth: f(800)},
		Assertions: []Assertion{
			{Type: AssertLayout, Expression: "getX(root()) == 0", Message: "rooted"},
		},
		Binding: "reference",
	}
}

func TestValidate_ValidSpec(t *testing.T) {
	require.NoError(t, validSpec().Validate())
}

func TestValidate_NegativeConstraints(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TestSpec)
		field  string
	}{
		{
			name:   "negative max width",
			mutate: func(s *TestSpec) { s.Constraints.MaxWidth = f(-1) },
			field:  "constraints.maxWidth",
		},
		{
			name:   "negative max height",
			mutate: func(s *TestSpec) { s.Constraints.MaxHeight = f(-0.5) },
			field:  "constraints.maxHeight",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSpec()
			tt.mutate(s)

			err := s.Validate()
			require.Error(t, err)
			assert.True(t, IsInvalidSpec(err))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidate_NegativeStyleSizes(t *testing.T) {
	s := validSpec()
	s.Layout.Children[0].Style.Height = f(-10)

	err := s.Validate()
	require.Error(t, err)
	assert.True(t, IsInvalidSpec(err))
	// The error names the offending node's document path.
	assert.Contains(t, err.Error(), "layout.children[0].style.height")
}

func TestValidate_NegativeSizeDeepInTree(t *testing.T) {
	s := validSpec()
	s.Layout.Children[0].Children = []Layout{
		{Type: NodeContainer, Style: Style{Width: f(-1)}},
	}

	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "layout.children[0].children[0].style.width")
}

func TestValidate_EmptyAssertions(t *testing.T) {
	s := validSpec()
	s.Assertions = nil

	err := s.Validate()
	require.Error(t, err)
	assert.True(t, IsInvalidSpec(err))
	assert.Contains(t, err.Error(), "assertions")
}

func TestValidate_ZeroSizesAllowed(t *testing.T) {
	s := validSpec()
	s.Constraints.MaxWidth = f(0)
	s.Layout.Style.Width = f(0)

	require.NoError(t, s.Validate())
}

func TestIsInvalidSpec_OtherError(t *testing.T) {
	assert.False(t, IsInvalidSpec(assert.AnError))
	assert.False(t, IsInvalidSpec(nil))
}
