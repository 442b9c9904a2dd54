package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocessStripsSelfLoops(t *testing.T) {
	t.Parallel()

	g := NewGraph()
	g.AddVertex(1)
	g.AddEdge(1, 1, 3, 1)

	res := preprocess(g)
	assert.Equal(t, 0, g.EdgeCount())
	require.Len(t, res.selfLoops, 1)
	assert.Equal(t, VertexID(1), res.selfLoops[0].vertex)
	assert.Equal(t, 3, res.selfLoops[0].weight)

	restored := res.restore(g)
	require.Len(t, restored, 1)
	assert.Equal(t, 1, g.EdgeCount())
}

func TestPreprocessReversesBackEdges(t *testing.T) {
	t.Parallel()

	g := NewGraph()
	for _, id := range []VertexID{1, 2, 3} {
		g.AddVertex(id)
	}
	g.AddEdge(1, 2, 1, 1)
	g.AddEdge(2, 3, 1, 1)
	back := g.AddEdge(3, 1, 1, 1)

	res := preprocess(g)

	// every vertex must now be reachable from at least one source and the
	// graph must be acyclic: topoOrder panics (an invariant violation) if
	// it is not.
	assert.NotPanics(t, func() { topoOrder(g) })

	require.Len(t, res.reversed, 1)
	assert.Same(t, back, res.reversed[0])
	assert.True(t, back.Reversed)
	assert.Equal(t, VertexID(1), back.Tail)
	assert.Equal(t, VertexID(3), back.Head)

	res.restore(g)
	assert.Equal(t, VertexID(3), back.Tail)
	assert.Equal(t, VertexID(1), back.Head)
	assert.True(t, back.Reversed, "Reversed stays true as a historical annotation")
}

func TestPreprocessOnAlreadyAcyclicGraphReversesNothing(t *testing.T) {
	t.Parallel()

	g := NewGraph()
	for _, id := range []VertexID{1, 2, 3} {
		g.AddVertex(id)
	}
	g.AddEdge(1, 2, 1, 1)
	g.AddEdge(1, 3, 1, 1)
	g.AddEdge(2, 3, 1, 1)

	res := preprocess(g)
	assert.Empty(t, res.reversed)
}
