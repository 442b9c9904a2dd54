package layout

// properize inserts a chain of dummy vertices into every edge spanning
// more than one rank, so that after this stage every edge connects
// vertices on adjacent ranks. Grounded on godagre's order.go
// addDummyNodes, generalized to record the dummy chain on the original
// edge's Waypoints for Finalize to expand or collapse.
func properize(g *Graph, vertexSpacing int) {
	for _, e := range append([]*Edge{}, g.edges...) {
		tail, head := g.MustVertex(e.Tail), g.MustVertex(e.Head)
		span := head.Rank - tail.Rank
		if span <= 1 {
			continue
		}

		e.Waypoints = append(e.Waypoints, e.Tail)
		prev := e.Tail
		for r := tail.Rank + 1; r < head.Rank; r++ {
			id := g.freshVertexID()
			dv := g.AddVertex(id)
			dv.IsDummy = true
			dv.Rank = r
			dv.Size = Size{W: 1, H: vertexSpacing}
			g.AddEdge(prev, id, e.Weight, 1)
			e.Waypoints = append(e.Waypoints, id)
			prev = id
		}
		g.AddEdge(prev, e.Head, e.Weight, 1)
		e.Waypoints = append(e.Waypoints, e.Head)

		g.RemoveEdge(e)
	}
}
