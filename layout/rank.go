package layout

import "sort"

// rank assigns an integer rank to every vertex of g so that for every
// edge u->v, rank(v)-rank(u) >= minLen, normalizing so the minimum rank
// is 0. When rt is NetworkSimplex the Gansner et al. rank-optimization
// algorithm (spec.md §4.2) minimizes total weighted edge length;
// LongestPathOnly keeps the initial feasible ranking as-is.
//
// Grounded on godagre's network_simplex.go for Go-side naming
// (leaveEdge/enterEdge/exchange/normalize) and on
// original_source/src/algorithm/p1_layering/mod.rs for the actual
// optimization logic the Go stub elides (its exchangeEdges/rank loop
// never implements the real LCA-scoped update; see SPEC_FULL.md §1.3).
func rank(g *Graph, minLen int, rt RankingType) {
	// Every edge reaching this stage is an original input edge (Preprocess
	// already stripped self-loops, and Properize's dummy-chain edges don't
	// exist yet), so the configured minimum length applies uniformly here;
	// Slack and the tree-building passes below read e.MinLen directly.
	for _, e := range g.edges {
		e.MinLen = minLen
	}

	switch rt {
	case LongestPathOnly:
		longestPath(g, minLen)
	default:
		networkSimplex(g, minLen)
		return
	}
	normalize(g)
}

// longestPath assigns the initial feasible ranking: a vertex's rank is
// the length of the longest path to it from any source, scaled by
// minLen. Requires g to be acyclic.
func longestPath(g *Graph, minLen int) {
	for _, v := range g.Vertices() {
		v.Rank = 0
	}
	order := topoOrder(g)
	for _, id := range order {
		v := g.MustVertex(id)
		for _, e := range v.in {
			if want := g.MustVertex(e.Tail).Rank + e.MinLenOr(minLen); want > v.Rank {
				v.Rank = want
			}
		}
	}
}

// MinLenOr returns e.MinLen if positive, else the fallback default.
// Edges constructed via the public entry points always carry an
// explicit MinLen, but internal dummy-chain edges created by Properize
// also set it explicitly; this guards direct test construction.
func (e *Edge) MinLenOr(fallback int) int {
	if e.MinLen > 0 {
		return e.MinLen
	}
	return fallback
}

// topoOrder returns a topological order of g's vertices via Kahn's
// algorithm. g must be acyclic (Preprocess guarantees this).
func topoOrder(g *Graph) []VertexID {
	indeg := make(map[VertexID]int, g.VertexCount())
	for _, v := range g.Vertices() {
		indeg[v.ID] = len(v.in)
	}
	var queue []VertexID
	for _, v := range g.Vertices() {
		if indeg[v.ID] == 0 {
			queue = append(queue, v.ID)
		}
	}
	var order []VertexID
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		for _, e := range g.MustVertex(id).out {
			indeg[e.Head]--
			if indeg[e.Head] == 0 {
				queue = append(queue, e.Head)
			}
		}
	}
	if len(order) != g.VertexCount() {
		invariantf("rank", "topological sort visited %d of %d vertices; graph is not acyclic", len(order), g.VertexCount())
	}
	return order
}

// networkSimplex implements the full Gansner et al. rank optimization:
// build a tight spanning tree, compute cut values, then repeatedly
// swap a negative-cut-value tree edge for the minimum-slack edge
// crossing the cut it induces, until no tree edge has negative cut
// value.
func networkSimplex(g *Graph, minLen int) {
	feasibleTree(g, minLen)
	computeLowLim(g)
	computeCutValues(g)

	bound := 50*(g.VertexCount()+g.EdgeCount()) + 1000
	for i := 0; i < bound; i++ {
		leave := leaveEdge(g)
		if leave == nil {
			normalize(g)
			return
		}
		enter := enterEdge(g, leave)
		exchange(g, leave, enter)
	}
	invariantf("rank", "network simplex failed to converge within %d exchanges", bound)
}

// feasibleTree builds an initial tight spanning tree: seed with the
// longest-path ranking, then grow a DFS tree over zero-slack edges;
// whenever growth stalls short of spanning every vertex, find the
// non-tree edge with minimum slack that has exactly one endpoint in
// the tree and shift the tree's ranks so that edge becomes tight,
// per spec.md §4.2 step 2.
func feasibleTree(g *Graph, minLen int) {
	longestPath(g, minLen)
	for _, e := range g.edges {
		e.IsTreeEdge = false
	}

	verts := g.Vertices()
	if len(verts) == 0 {
		return
	}
	sort.Slice(verts, func(i, j int) bool { return verts[i].ID < verts[j].ID })

	visited := make(map[VertexID]bool, len(verts))
	growTightTree(g, visited, verts[0].ID)

	for len(visited) < g.VertexCount() {
		e, treeVertex, newVertex := minSlackCrossingEdge(g, visited)
		delta := e.Slack(g)
		if treeVertex == e.Head {
			delta = -delta
		}
		for id := range visited {
			g.MustVertex(id).Rank += delta
		}
		e.IsTreeEdge = true
		growTightTree(g, visited, newVertex)
	}
}

// growTightTree extends visited by following zero-slack edges
// (incoming or outgoing) from v, marking each as a tree edge.
func growTightTree(g *Graph, visited map[VertexID]bool, v VertexID) {
	if visited[v] {
		return
	}
	visited[v] = true
	vert := g.MustVertex(v)
	for _, e := range vert.out {
		if !visited[e.Head] && e.Slack(g) == 0 {
			e.IsTreeEdge = true
			growTightTree(g, visited, e.Head)
		}
	}
	for _, e := range vert.in {
		if !visited[e.Tail] && e.Slack(g) == 0 {
			e.IsTreeEdge = true
			growTightTree(g, visited, e.Tail)
		}
	}
}

// minSlackCrossingEdge finds the minimum-slack edge with exactly one
// endpoint in visited, returning the edge, the endpoint already in the
// tree, and the endpoint not yet in the tree. Ties are broken by
// ascending edge insertion order (iteration order of g.edges).
func minSlackCrossingEdge(g *Graph, visited map[VertexID]bool) (*Edge, VertexID, VertexID) {
	var best *Edge
	bestSlack := 0
	for _, e := range g.edges {
		tIn, hIn := visited[e.Tail], visited[e.Head]
		if tIn == hIn {
			continue
		}
		s := e.Slack(g)
		if best == nil || s < bestSlack {
			best, bestSlack = e, s
		}
	}
	if best == nil {
		invariantf("rank", "tight tree growth stalled with no crossing edge; graph is not weakly connected")
	}
	if visited[best.Head] {
		return best, best.Head, best.Tail
	}
	return best, best.Tail, best.Head
}

// computeLowLim assigns each vertex a post-order DFS interval over the
// tree edges (IsTreeEdge == true), plus a ParentEdge pointer identifying
// the tree edge connecting it to its parent (nil at each tree's root).
func computeLowLim(g *Graph) {
	for _, v := range g.Vertices() {
		v.Low, v.Lim, v.ParentEdge = 0, 0, nil
	}
	visited := make(map[VertexID]bool, g.VertexCount())
	lim := 0
	for _, v := range g.Vertices() {
		if !visited[v.ID] {
			lim = dfsLowLim(g, visited, v.ID, lim)
		}
	}
}

func dfsLowLim(g *Graph, visited map[VertexID]bool, v VertexID, lim int) int {
	visited[v] = true
	vert := g.MustVertex(v)
	low := lim + 1
	for _, e := range vert.out {
		if e.IsTreeEdge && !visited[e.Head] {
			lim = dfsLowLimChild(g, visited, e.Head, e, lim)
		}
	}
	for _, e := range vert.in {
		if e.IsTreeEdge && !visited[e.Tail] {
			lim = dfsLowLimChild(g, visited, e.Tail, e, lim)
		}
	}
	vert.Low = low
	lim++
	vert.Lim = lim
	return lim
}

func dfsLowLimChild(g *Graph, visited map[VertexID]bool, v VertexID, parentEdge *Edge, lim int) int {
	lim = dfsLowLim(g, visited, v, lim)
	g.MustVertex(v).ParentEdge = parentEdge
	return lim
}

// computeCutValues sets CutValue on every tree edge: cut(e) = weight(e)
// + sum of non-tree edges crossing tail-side-to-head-side minus sum
// crossing head-side-to-tail-side, where removing e from the tree
// splits it into head-side (containing e.Head) and tail-side
// (containing e.Tail). A negative value means lengthening e (shifting
// head-side away) shortens the weighted total, which is what exchange
// does.
func computeCutValues(g *Graph) {
	for _, e := range g.edges {
		if e.IsTreeEdge {
			e.CutValue = cutValue(g, e)
		}
	}
}

func cutValue(g *Graph, e *Edge) int {
	headSide, tailSide := treeSides(g, e)
	cv := e.Weight
	for _, f := range g.edges {
		if f == e {
			continue
		}
		switch {
		case tailSide(f.Tail) && headSide(f.Head):
			cv += f.Weight
		case headSide(f.Tail) && tailSide(f.Head):
			cv -= f.Weight
		}
	}
	return cv
}

// treeSides returns membership predicates for the two components
// produced by conceptually removing tree edge e: headSide(x) is true
// iff x is on e.Head's side, tailSide(x) iff on e.Tail's side.
func treeSides(g *Graph, e *Edge) (headSide, tailSide func(VertexID) bool) {
	child := e.Head
	if g.MustVertex(e.Head).ParentEdge != e {
		child = e.Tail
	}
	c := g.MustVertex(child)
	inSubtree := func(x VertexID) bool {
		xv := g.MustVertex(x)
		return c.Low <= xv.Lim && xv.Lim <= c.Lim
	}
	outSubtree := func(x VertexID) bool { return !inSubtree(x) }
	if child == e.Head {
		return inSubtree, outSubtree
	}
	return outSubtree, inSubtree
}

// leaveEdge returns the first tree edge (in insertion order) with a
// negative cut value, or nil if none exists.
func leaveEdge(g *Graph) *Edge {
	for _, e := range g.edges {
		if e.IsTreeEdge && e.CutValue < 0 {
			return e
		}
	}
	return nil
}

// enterEdge finds the minimum-slack non-tree edge crossing leave's cut
// from head-side to tail-side, ties broken by ascending edge insertion
// order.
func enterEdge(g *Graph, leave *Edge) *Edge {
	headSide, tailSide := treeSides(g, leave)
	var best *Edge
	bestSlack := 0
	for _, e := range g.edges {
		if e.IsTreeEdge {
			continue
		}
		if headSide(e.Tail) && tailSide(e.Head) {
			s := e.Slack(g)
			if best == nil || s < bestSlack {
				best, bestSlack = e, s
			}
		}
	}
	if best == nil {
		invariantf("rank", "no entering edge found for a negative-cut-value tree edge")
	}
	return best
}

// exchange swaps leave out of the tree for enter, shifts ranks so enter
// becomes tight, and fully recomputes low/lim and cut values. spec.md
// Design Notes §9 permits a full recompute in place of the incremental
// LCA-scoped update; DESIGN.md documents this choice.
func exchange(g *Graph, leave, enter *Edge) {
	headSide, _ := treeSides(g, leave)
	delta := enter.Slack(g)
	for _, v := range g.Vertices() {
		if headSide(v.ID) {
			v.Rank += delta
		}
	}
	leave.IsTreeEdge = false
	enter.IsTreeEdge = true
	computeLowLim(g)
	computeCutValues(g)
}

// normalize subtracts the minimum rank from every vertex so the
// minimum rank is 0.
func normalize(g *Graph) {
	verts := g.Vertices()
	if len(verts) == 0 {
		return
	}
	min := verts[0].Rank
	for _, v := range verts {
		if v.Rank < min {
			min = v.Rank
		}
	}
	if min == 0 {
		return
	}
	for _, v := range verts {
		v.Rank -= min
	}
}

// forceRootVerticesToTop sets every indegree-0 vertex's rank to 0, per
// the builder's RootVerticesOnTop option. Since roots have no incoming
// edges, only ever lowering a root's rank (never raising it) can only
// relax the rank-feasibility invariant for its outgoing edges, never
// violate it.
func forceRootVerticesToTop(g *Graph) {
	for _, v := range g.Vertices() {
		if len(v.in) == 0 {
			v.Rank = 0
		}
	}
}
