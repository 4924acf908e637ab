package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputedNode_Edges(t *testing.T) {
	n := &ComputedNode{X: 500, Y: 25, Width: 100, Height: 50}
	assert.Equal(t, 600.0, n.Right())
	assert.Equal(t, 75.0, n.Bottom())
}

func TestLayout_IsLeaf(t *testing.T) {
	leaf := Layout{Type: NodeContainer}
	assert.True(t, leaf.IsLeaf())

	// An explicitly empty container is not a leaf.
	empty := Layout{Type: NodeContainer, Children: []Layout{}}
	assert.False(t, empty.IsLeaf())
}

func TestComputedNode_CongruentWith(t *testing.T) {
	layout := Layout{
		Type: NodeContainer,
		Children: []Layout{
			{Type: NodeContainer},
			{Type: NodeContainer, Children: []Layout{{Type: NodeContainer}}},
		},
	}

	tests := []struct {
		name     string
		computed *ComputedNode
		want     bool
	}{
		{
			name: "same shape",
			computed: &ComputedNode{Children: []*ComputedNode{
				{},
				{Children: []*ComputedNode{{}}},
			}},
			want: true,
		},
		{
			name:     "missing children",
			computed: &ComputedNode{},
			want:     false,
		},
		{
			name: "extra child",
			computed: &ComputedNode{Children: []*ComputedNode{
				{}, {}, {},
			}},
			want: false,
		},
		{
			name: "mismatch below the root",
			computed: &ComputedNode{Children: []*ComputedNode{
				{},
				{},
			}},
			want: false,
		},
		{
			name:     "nil tree",
			computed: nil,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.computed.CongruentWith(&layout))
		})
	}
}

func TestTestResult_Total(t *testing.T) {
	r := TestResult{Passed: 2, Failed: 1, Skipped: 1}
	assert.Equal(t, 4, r.Total())
	assert.Zero(t, TestResult{}.Total())
}
