package layout

import "fmt"

// FromEdges builds a graph whose vertex set is inferred from the
// integers appearing in edges, and returns a Builder to configure and
// run the layout. Duplicate and anti-parallel edges are preserved as
// distinct parallel edges.
func FromEdges(edges [][2]VertexID) *Builder {
	g := NewGraph()
	for _, e := range edges {
		g.AddVertex(e[0])
		g.AddVertex(e[1])
	}
	for _, e := range edges {
		g.AddEdge(e[0], e[1], 1, 1)
	}
	return newBuilder(g)
}

// FromVerticesAndEdges builds a graph from an explicit vertex set and
// an edge list. An edge naming a vertex absent from vertices is a
// fatal input error, surfaced as the returned Builder's deferred error
// (reported by Build).
func FromVerticesAndEdges(vertices []VertexID, edges [][2]VertexID) *Builder {
	g := NewGraph()
	known := make(map[VertexID]bool, len(vertices))
	for _, id := range vertices {
		g.AddVertex(id)
		known[id] = true
	}
	for _, e := range edges {
		if !known[e[0]] || !known[e[1]] {
			b := &Builder{graph: g, cfg: defaultConfig()}
			b.err = &Error{
				Kind:  ErrKindInput,
				Stage: "construct",
				Msg:   fmt.Sprintf("edge (%d, %d) references a vertex not present in the supplied vertex set", e[0], e[1]),
			}
			return b
		}
	}
	for _, e := range edges {
		g.AddEdge(e[0], e[1], 1, 1)
	}
	return newBuilder(g)
}

// SizeFunc returns the (width, height) layout size for an external
// vertex id, used by FromGraph.
type SizeFunc func(id VertexID) Size

// ExternalGraph is the minimal adapter interface FromGraph accepts so
// callers don't need to convert their own graph representation to
// [][2]VertexID by hand. Vertices and Edges are expected to return
// each element once.
type ExternalGraph interface {
	Vertices() []VertexID
	Edges() [][2]VertexID
}

// FromGraph builds a Builder from an adapter-provided graph, using
// sizeFn to assign each vertex's layout size (defaulting to (10, 10)
// when sizeFn is nil).
func FromGraph(g ExternalGraph, sizeFn SizeFunc) *Builder {
	ng := NewGraph()
	for _, id := range g.Vertices() {
		v := ng.AddVertex(id)
		if sizeFn != nil {
			v.Size = sizeFn(id)
		}
	}
	for _, e := range g.Edges() {
		ng.AddEdge(e[0], e[1], 1, 1)
	}
	return newBuilder(ng)
}
