package layout

import "sort"

// selfLoop remembers a stripped self-loop edge so Preprocess's caller
// can restore it once the DAG-only stages are done.
type selfLoop struct {
	vertex VertexID
	weight int
}

// preprocessResult carries what Preprocess mutated, for Finalize to
// undo.
type preprocessResult struct {
	reversed  []*Edge
	selfLoops []selfLoop
}

// preprocess makes g acyclic by reversing a greedily-chosen feedback
// edge set, and strips self-loops (remembering them for restoration).
// Grounded on godagre's makeAcyclic, converted from implicit goroutine
// recursion to an explicit stack per spec.md Design Notes §9.
func preprocess(g *Graph) *preprocessResult {
	res := &preprocessResult{}

	for _, e := range append([]*Edge{}, g.edges...) {
		if e.Tail == e.Head {
			res.selfLoops = append(res.selfLoops, selfLoop{vertex: e.Tail, weight: e.Weight})
			g.RemoveEdge(e)
		}
	}

	const (
		white = 0 // unvisited
		gray  = 1 // on the current DFS stack
		black = 2 // finished
	)
	color := make(map[VertexID]uint8, g.VertexCount())

	type frame struct {
		v     VertexID
		edges []*Edge
		next  int
	}

	starts := g.Vertices()
	sort.Slice(starts, func(i, j int) bool { return starts[i].ID < starts[j].ID })
	for _, start := range starts {
		if color[start.ID] != white {
			continue
		}
		stack := []*frame{{v: start.ID, edges: append([]*Edge{}, g.MustVertex(start.ID).out...)}}
		color[start.ID] = gray
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			if top.next >= len(top.edges) {
				color[top.v] = black
				stack = stack[:len(stack)-1]
				continue
			}
			e := top.edges[top.next]
			top.next++
			switch color[e.Head] {
			case white:
				color[e.Head] = gray
				stack = append(stack, &frame{v: e.Head, edges: append([]*Edge{}, g.MustVertex(e.Head).out...)})
			case gray:
				// back edge: reverse it in place.
				g.ReplaceEdge(e, e.Head, e.Tail)
				e.Reversed = true
				res.reversed = append(res.reversed, e)
			case black:
				// forward or cross edge, nothing to do.
			}
		}
	}

	return res
}

// restore undoes preprocess's mutations: reversed edges are flipped
// back (Reversed stays true as a historical annotation) and self-loops
// are re-added, returning the recreated self-loop edges so the caller
// can fold them into its final edge list.
func (r *preprocessResult) restore(g *Graph) []*Edge {
	for _, e := range r.reversed {
		g.ReplaceEdge(e, e.Head, e.Tail)
	}
	restored := make([]*Edge, 0, len(r.selfLoops))
	for _, sl := range r.selfLoops {
		restored = append(restored, g.AddEdge(sl.vertex, sl.vertex, sl.weight, 0))
	}
	return restored
}
