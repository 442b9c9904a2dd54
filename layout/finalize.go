package layout

import "sort"

// VertexPosition is one vertex's final placement within a Layout.
type VertexPosition struct {
	ID      VertexID
	X, Y    int
	IsDummy bool
}

// EdgeLayout is one original edge's final routing. Waypoints lists the
// dummy vertices the edge passes through (empty for edges that never
// spanned more than one rank), in Tail-to-Head order; it does not
// repeat Tail or Head.
type EdgeLayout struct {
	Tail, Head VertexID
	Reversed   bool
	Waypoints  []VertexID
}

// Layout is the computed placement for one weakly connected component
// of the input graph.
type Layout struct {
	Vertices []VertexPosition
	Edges    []EdgeLayout
	Width    int
	Height   int
}

// finalize assembles the component's Layout: it reports each original
// edge (the caller has already restored the edges Preprocess reversed),
// optionally strips the dummy vertices Properize introduced, lists
// vertices in ascending id order, and computes the component's
// bounding box. origEdges is the set of edges as they existed right
// before Properize ran, used to recover each original edge's waypoint
// chain regardless of whether dummies are kept in the output.
func finalize(g *Graph, cfg Config, origEdges []*Edge) Layout {
	var lay Layout

	for _, e := range origEdges {
		el := EdgeLayout{Tail: e.Tail, Head: e.Head, Reversed: e.Reversed}
		if len(e.Waypoints) > 2 {
			el.Waypoints = append([]VertexID{}, e.Waypoints[1:len(e.Waypoints)-1]...)
			if e.Reversed {
				// The chain was recorded while the edge pointed the other way.
				for i, j := 0, len(el.Waypoints)-1; i < j; i, j = i+1, j-1 {
					el.Waypoints[i], el.Waypoints[j] = el.Waypoints[j], el.Waypoints[i]
				}
			}
		}
		lay.Edges = append(lay.Edges, el)
	}

	verts := g.Vertices()
	sort.Slice(verts, func(i, j int) bool { return verts[i].ID < verts[j].ID })
	maxX, maxSizeW, maxSizeH, maxRank := 0, 0, 0, 0
	for _, v := range verts {
		if v.X > maxX {
			maxX = v.X
		}
		if v.Size.W > maxSizeW {
			maxSizeW = v.Size.W
		}
		if v.Size.H > maxSizeH {
			maxSizeH = v.Size.H
		}
		if v.Rank > maxRank {
			maxRank = v.Rank
		}
		if v.IsDummy && !cfg.DummyVertices {
			continue
		}
		lay.Vertices = append(lay.Vertices, VertexPosition{ID: v.ID, X: v.X, Y: v.Y, IsDummy: v.IsDummy})
	}
	// Grounded on spec.md §4.5: width = max x + max size.w, height =
	// (max rank) * vSpacing + max size.h.
	lay.Width = maxX + maxSizeW
	lay.Height = maxRank*cfg.VertexSpacing + maxSizeH
	return lay
}
