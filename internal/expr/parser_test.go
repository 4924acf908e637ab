package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Comparison(t *testing.T) {
	node, err := Parse("getX(root()) == 0.0")
	require.NoError(t, err)

	bin, ok := node.(*Binary)
	require.True(t, ok, "top-level node should be a Binary, got %T", node)
	assert.Equal(t, OpEq, bin.Op)

	call, ok := bin.Left.(*Call)
	require.True(t, ok)
	assert.Equal(t, "getX", call.Name)
	require.Len(t, call.Args, 1)

	lit, ok := bin.Right.(*NumberLit)
	require.True(t, ok)
	assert.Equal(t, 0.0, lit.Value)
}

func TestParse_Precedence(t *testing.T) {
	// 1 + 2 * 3 parses as 1 + (2 * 3).
	node, err := Parse("1 + 2 * 3 == 7")
	require.NoError(t, err)

	cmp := node.(*Binary)
	require.Equal(t, OpEq, cmp.Op)

	add := cmp.Left.(*Binary)
	assert.Equal(t, OpAdd, add.Op)
	assert.Equal(t, 1.0, add.Left.(*NumberLit).Value)

	mul := add.Right.(*Binary)
	assert.Equal(t, OpMul, mul.Op)
	assert.Equal(t, 2.0, mul.Left.(*NumberLit).Value)
	assert.Equal(t, 3.0, mul.Right.(*NumberLit).Value)
}

func TestParse_LeftAssociative(t *testing.T) {
	// 10 - 2 - 3 parses as (10 - 2) - 3.
	node, err := Parse("10 - 2 - 3 == 5")
	require.NoError(t, err)

	cmp := node.(*Binary)
	outer := cmp.Left.(*Binary)
	assert.Equal(t, OpSub, outer.Op)
	assert.Equal(t, 3.0, outer.Right.(*NumberLit).Value)

	inner := outer.Left.(*Binary)
	assert.Equal(t, OpSub, inner.Op)
	assert.Equal(t, 10.0, inner.Left.(*NumberLit).Value)
	assert.Equal(t, 2.0, inner.Right.(*NumberLit).Value)
}

func TestParse_ParensOverridePrecedence(t *testing.T) {
	node, err := Parse("(1 + 2) * 3 == 9")
	require.NoError(t, err)

	cmp := node.(*Binary)
	mul := cmp.Left.(*Binary)
	assert.Equal(t, OpMul, mul.Op)

	add := mul.Left.(*Binary)
	assert.Equal(t, OpAdd, add.Op)
}

func TestParse_NestedCalls(t *testing.T) {
	node, err := Parse("getRight(child(root(), 2)) <= getWidth(root())")
	require.NoError(t, err)

	cmp := node.(*Binary)
	assert.Equal(t, OpLte, cmp.Op)

	right := cmp.Left.(*Call)
	assert.Equal(t, "getRight", right.Name)

	child := right.Args[0].(*Call)
	assert.Equal(t, "child", child.Name)
	require.Len(t, child.Args, 2)
	assert.Equal(t, "root", child.Args[0].(*Call).Name)
	assert.Equal(t, 2.0, child.Args[1].(*NumberLit).Value)
}

func TestParse_NumberForms(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"0", 0},
		{"42", 42},
		{"3.5", 3.5},
		{"0.0", 0},
		{"1e3", 1000},
		{"1.5E2", 150},
		{"2e-1", 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node, err := Parse(tt.input + " == 0")
			require.NoError(t, err)
			lit := node.(*Binary).Left.(*NumberLit)
			assert.Equal(t, tt.want, lit.Value)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"bare operator", "+"},
		{"trailing tokens", "1 == 1 2"},
		{"double comparison", "1 == 1 == 1"},
		{"single equals", "getX(root()) = 0"},
		{"bare bang", "1 ! 2"},
		{"unterminated call", "getX(root("},
		{"missing close paren", "(1 + 2"},
		{"bare identifier", "root == 0"},
		{"dangling decimal", "1. == 0"},
		{"dangling exponent", "1e == 0"},
		{"unknown character", "1 & 2"},
		{"unary minus", "-1 == 0"},
		{"trailing comma", "child(root(), )"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.True(t, IsParseError(err), "want PARSE_ERROR, got %v", err)
		})
	}
}

func TestParse_ErrorCarriesOffset(t *testing.T) {
	_, err := Parse("1 == 1 @")
	require.Error(t, err)

	var ee *Error
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, CodeParse, ee.Code)
	assert.Equal(t, 7, ee.Pos)
}
