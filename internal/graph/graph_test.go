package graph

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphBasic(t *testing.T) {
	g := New()

	g.AddNode("Row")
	g.AddNode("Button")
	g.AddEdge("Row", "Button")

	assert.True(t, g.HasNode("Row"))
	assert.True(t, g.HasNode("Button"))
	assert.Equal(t, []string{"Button"}, g.Dependencies("Row"))
	assert.Empty(t, g.Dependencies("Button"))
	assert.Equal(t, 2, g.Len())
}

func TestAddEdgeCreatesNodes(t *testing.T) {
	g := New()
	g.AddEdge("A", "B")

	assert.True(t, g.HasNode("A"), "AddEdge should create 'from' node")
	assert.True(t, g.HasNode("B"), "AddEdge should create 'to' node")
}

func TestHasNode(t *testing.T) {
	g := New()
	assert.False(t, g.HasNode("A"), "empty graph should not have node")
	g.AddNode("A")
	g.AddNode("A")
	assert.True(t, g.HasNode("A"))
	assert.Equal(t, 1, g.Len())
}

func TestDuplicateEdges(t *testing.T) {
	g := New()
	g.AddEdge("A", "B")
	g.AddEdge("A", "B")
	g.AddEdge("A", "B")

	assert.Len(t, g.Dependencies("A"), 1, "duplicate edges deduplicated")
	assert.False(t, g.HasCycles())
}

func TestFindCycles(t *testing.T) {
	tests := []struct {
		name  string
		nodes []string
		edges [][2]string
		want  [][]string
	}{
		{
			name: "empty",
		},
		{
			name:  "isolated node",
			nodes: []string{"A"},
		},
		{
			name:  "chain",
			edges: [][2]string{{"A", "B"}, {"B", "C"}},
		},
		{
			name:  "diamond",
			edges: [][2]string{{"A", "B"}, {"A", "C"}, {"B", "D"}, {"C", "D"}},
		},
		{
			name:  "self loop",
			edges: [][2]string{{"A", "B"}, {"B", "B"}},
			want:  [][]string{{"B"}},
		},
		{
			name:  "two node cycle",
			edges: [][2]string{{"A", "B"}, {"B", "A"}},
			want:  [][]string{{"A", "B"}},
		},
		{
			name:  "cycle ordered by insertion",
			nodes: []string{"X", "Y", "Z"},
			edges: [][2]string{{"Z", "Y"}, {"Y", "X"}, {"X", "Z"}},
			want:  [][]string{{"X", "Y", "Z"}},
		},
		{
			name:  "separate cycles",
			nodes: []string{"A", "B", "C", "D", "E"},
			edges: [][2]string{{"C", "D"}, {"D", "C"}, {"A", "B"}, {"B", "A"}, {"E", "A"}},
			want:  [][]string{{"A", "B"}, {"C", "D"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			for _, n := range tt.nodes {
				g.AddNode(n)
			}
			for _, e := range tt.edges {
				g.AddEdge(e[0], e[1])
			}
			got := g.FindCycles()
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				assert.False(t, g.HasCycles())
				return
			}
			assert.Equal(t, tt.want, got)
			assert.True(t, g.HasCycles())
		})
	}
}

func TestFindCyclesDeepChain(t *testing.T) {
	g := New()
	const n = 5000
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("C%d", i)
	}
	for i := 1; i < n; i++ {
		g.AddEdge(names[i-1], names[i])
	}
	require.False(t, g.HasCycles())

	g.AddEdge(names[n-1], names[0])
	cycles := g.FindCycles()
	require.Len(t, cycles, 1)
	assert.Equal(t, names[0], cycles[0][0])
}
