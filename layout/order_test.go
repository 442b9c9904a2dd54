package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountInversions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, countInversions([]int{1, 2, 3}))
	assert.Equal(t, 3, countInversions([]int{3, 2, 1}))
	assert.Equal(t, 1, countInversions([]int{1, 3, 2}))
}

func TestMedianOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2.0, medianOf([]int{3, 1, 2}))
	assert.Equal(t, 1.5, medianOf([]int{1, 2}))
}

// A two-layer graph with one crossing pair should have its crossing
// count reduced to zero after ordering converges, since swapping the
// two rank-1 vertices removes the only inversion.
func TestOrderReducesCrossings(t *testing.T) {
	t.Parallel()

	g := NewGraph()
	for _, id := range []VertexID{1, 2, 3, 4} {
		g.AddVertex(id)
	}
	// 1 and 2 are rank 0; 3 and 4 are rank 1. Edges 1->4 and 2->3 cross if
	// 1,2 and 3,4 keep the same relative order; uncrossed if 2 is placed
	// before 1 (or, equivalently, 3 before 4).
	g.AddEdge(1, 4, 1, 1)
	g.AddEdge(2, 3, 1, 1)
	g.MustVertex(1).Rank, g.MustVertex(2).Rank = 0, 0
	g.MustVertex(3).Rank, g.MustVertex(4).Rank = 1, 1

	cfg := defaultConfig()
	order(g, cfg)

	layers := map[int][]VertexID{}
	for _, v := range g.Vertices() {
		layers[v.Rank] = append(layers[v.Rank], v.ID)
	}
	for _, ids := range layers {
		insertionSortByPos(g, ids)
	}
	assert.Equal(t, 0, totalCrossings(g, layers, 2))
}

// Grounded on original_source/src/phases/p3_calculate_coordinates/tests.rs's
// type_1 fixture: an edge between two real vertices that crosses an
// inner (dummy-dummy) segment must be marked.
func TestMarkType1Conflicts(t *testing.T) {
	t.Parallel()

	g := NewGraph()
	for _, id := range []VertexID{1, 2, 3, 4} {
		g.AddVertex(id)
	}
	g.MustVertex(1).Rank, g.MustVertex(2).Rank = 0, 0
	g.MustVertex(3).Rank, g.MustVertex(4).Rank = 1, 1
	g.MustVertex(2).IsDummy = true
	g.MustVertex(3).IsDummy = true

	inner := g.AddEdge(2, 3, 1, 1) // dummy-dummy inner segment
	crossing := g.AddEdge(1, 4, 1, 1)

	layers := map[int][]VertexID{
		0: {1, 2}, // positions: 1@0, 2@1
		1: {3, 4}, // positions: 3@0, 4@1
	}
	for _, ids := range layers {
		updatePos(g, ids)
	}

	markType1Conflicts(g, layers, 2)

	assert.True(t, crossing.HasType1Conflict)
	assert.False(t, inner.HasType1Conflict, "an inner segment never conflicts with itself")
}
