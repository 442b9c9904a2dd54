package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Grounded on original_source/src/lib.rs's run_algo_empty_graph test:
// an empty graph produces an empty layout slice, not an error.
func TestBuildEmptyGraph(t *testing.T) {
	t.Parallel()

	layouts, err := FromEdges(nil).Build()
	require.NoError(t, err)
	assert.Empty(t, layouts)
}

func TestBuildSingleEdge(t *testing.T) {
	t.Parallel()

	layouts, err := FromEdges([][2]VertexID{{1, 2}}).Build()
	require.NoError(t, err)
	require.Len(t, layouts, 1)
	lay := layouts[0]
	require.Len(t, lay.Vertices, 2)

	ranks := map[VertexID]int{}
	for _, v := range lay.Vertices {
		ranks[v.ID] = v.Y
	}
	assert.Less(t, ranks[1], ranks[2], "the tail must sit above the head in a Down layout")
}

// Grounded on original_source/src/lib.rs's verify_looks_good fixture,
// adapted to this package's simpler diamond shape.
func TestBuildDiamond(t *testing.T) {
	t.Parallel()

	layouts, err := FromEdges([][2]VertexID{
		{1, 2}, {1, 3}, {2, 4}, {3, 4},
	}).Build()
	require.NoError(t, err)
	require.Len(t, layouts, 1)
	lay := layouts[0]
	require.Len(t, lay.Vertices, 4)
	assert.Greater(t, lay.Width, 0)
	assert.Greater(t, lay.Height, 0)
}

// Grounded on original_source/src/lib.rs's run_algo_with_duplicate_edges
// test: parallel and anti-parallel edges between the same pair of
// vertices must not crash the pipeline and must each appear in the
// output.
func TestBuildDuplicateAndAntiParallelEdges(t *testing.T) {
	t.Parallel()

	layouts, err := FromEdges([][2]VertexID{
		{1, 2}, {1, 2}, {2, 1},
	}).Build()
	require.NoError(t, err)
	require.Len(t, layouts, 1)
	assert.Len(t, layouts[0].Edges, 3)
}

func TestBuildSelfLoopIsPreservedInOutput(t *testing.T) {
	t.Parallel()

	layouts, err := FromEdges([][2]VertexID{
		{1, 2}, {2, 2},
	}).Build()
	require.NoError(t, err)
	require.Len(t, layouts, 1)

	found := false
	for _, e := range layouts[0].Edges {
		if e.Tail == 2 && e.Head == 2 {
			found = true
		}
	}
	assert.True(t, found, "the self loop on vertex 2 must survive into the output")
}

func TestBuildUpLayeringInvertsYAxis(t *testing.T) {
	t.Parallel()

	layouts, err := FromEdges([][2]VertexID{{1, 2}}).
		LayeringType(Up).
		Build()
	require.NoError(t, err)
	require.Len(t, layouts, 1)

	ranks := map[VertexID]int{}
	for _, v := range layouts[0].Vertices {
		ranks[v.ID] = v.Y
	}
	assert.Greater(t, ranks[1], ranks[2], "Up layering puts the source below its children")
}

func TestBuildTwoComponentsYieldTwoLayouts(t *testing.T) {
	t.Parallel()

	layouts, err := FromEdges([][2]VertexID{
		{1, 2}, {3, 4},
	}).Build()
	require.NoError(t, err)
	assert.Len(t, layouts, 2)
}

func TestFromVerticesAndEdgesRejectsUnknownVertex(t *testing.T) {
	t.Parallel()

	_, err := FromVerticesAndEdges([]VertexID{1, 2}, [][2]VertexID{{1, 3}}).Build()
	require.Error(t, err)
	var lerr *Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, ErrKindInput, lerr.Kind)
}

// The pipeline must be deterministic: the same input run twice produces
// byte-for-byte identical layouts, since every tie-break (leave/enter
// edge selection, median sort) is defined in terms of a fixed iteration
// or insertion order rather than map iteration or randomness.
func TestBuildIsDeterministic(t *testing.T) {
	t.Parallel()

	edges := [][2]VertexID{
		{1, 2}, {1, 3}, {2, 4}, {3, 4}, {4, 5}, {2, 5}, {1, 5},
	}

	first, err := FromEdges(edges).Build()
	require.NoError(t, err)
	second, err := FromEdges(edges).Build()
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("layout differs across identical runs (-first +second):\n%s", diff)
	}
}

// Grounded on original_source/src/lib.rs's root_vertices_on_top_disabled
// test (spec.md §8 scenario 5): with Up layering and RootVerticesOnTop
// disabled, vertices 3 and 4 (otherwise indegree-0 roots) are pulled
// down to rank 1 to shorten their edges into vertex 0, landing all
// three of 1, 3, 4 on the same rank.
func TestRootVerticesOnTopDisabledMatchesScenario5(t *testing.T) {
	t.Parallel()

	layouts, err := FromEdges([][2]VertexID{
		{1, 0}, {2, 1}, {3, 0}, {4, 0},
	}).
		VertexSpacing(10).
		LayeringType(Up).
		RootVerticesOnTop(false).
		Build()
	require.NoError(t, err)
	require.Len(t, layouts, 1)

	y := map[VertexID]int{}
	for _, v := range layouts[0].Vertices {
		y[v.ID] = v.Y
	}
	assert.Equal(t, 0, y[2])
	assert.Equal(t, -10, y[1])
	assert.Equal(t, -10, y[3])
	assert.Equal(t, -10, y[4])
	assert.Equal(t, -20, y[0])
}

type fixtureGraph struct {
	ids   []VertexID
	edges [][2]VertexID
}

func (f fixtureGraph) Vertices() []VertexID { return f.ids }
func (f fixtureGraph) Edges() [][2]VertexID { return f.edges }

// Grounded on original_source/src/lib.rs's verify_looks_good fixture
// (spec.md §8 scenario 4), run in rank units: unit vertex size and unit
// spacing so the expected bounding box falls directly out of rank and
// position counts.
func TestVerifyLooksGoodFixtureMatchesScenario4(t *testing.T) {
	t.Parallel()

	fg := fixtureGraph{
		ids: []VertexID{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		edges: [][2]VertexID{
			{0, 1}, {1, 2}, {2, 3}, {2, 4},
			{3, 5}, {3, 6}, {3, 7}, {3, 8},
			{4, 5}, {4, 6}, {4, 7}, {4, 8},
			{5, 9}, {6, 9}, {7, 9}, {8, 9},
		},
	}

	layouts, err := FromGraph(fg, func(VertexID) Size { return Size{W: 1, H: 1} }).
		VertexSpacing(1).
		Build()
	require.NoError(t, err)
	require.Len(t, layouts, 1)
	assert.Equal(t, 4, layouts[0].Width)
	assert.Equal(t, 6, layouts[0].Height)
}

// MinimumLength must widen the rank gap across every edge, not just the
// default of 1.
func TestMinimumLengthWidensRankGap(t *testing.T) {
	t.Parallel()

	layouts, err := FromEdges([][2]VertexID{{1, 2}, {2, 3}}).
		MinimumLength(3).
		VertexSpacing(10).
		Build()
	require.NoError(t, err)
	require.Len(t, layouts, 1)

	ranks := map[VertexID]int{}
	for _, v := range layouts[0].Vertices {
		ranks[v.ID] = v.Y
	}
	assert.Equal(t, 0, ranks[1])
	assert.Equal(t, 30, ranks[2])
	assert.Equal(t, 60, ranks[3])
}

func TestDummyVerticesOptionControlsOutputVertexCount(t *testing.T) {
	t.Parallel()

	edges := [][2]VertexID{{1, 2}, {2, 3}, {1, 3}}

	without, err := FromEdges(edges).Build()
	require.NoError(t, err)
	withDummies, err := FromEdges(edges).DummyVertices(true).Build()
	require.NoError(t, err)

	assert.Greater(t, len(withDummies[0].Vertices), len(without[0].Vertices))
}
