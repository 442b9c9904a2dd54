package layout

// position assigns each vertex an X, Y coordinate using the
// Brandes-Köpf algorithm: four passes (the cross product of
// {up,down} x {left,right}) each produce a candidate x by aligning
// vertices with the median of their upper or lower neighbors wherever
// no type-1 conflict forbids it and the alignment slot is still free,
// then compacting each resulting block to its minimum feasible x. The
// final x is the average of the inner two of the four sorted
// candidates, discarding the extremes. Grounded on godagre's
// position.go for the buildLayerMatrix/horizontalCompaction structure,
// replacing its single nearest-neighbor pass (no conflict guard, no
// four-pass averaging) with the full algorithm per spec.md §4.5 and
// original_source/src/phases/p3_calculate_coordinates's alignment
// tests.
func position(g *Graph, cfg Config) {
	layers := layersByRank(g)
	numRanks := len(layers)
	if numRanks == 0 {
		return
	}

	for r, ids := range layers {
		y := r * cfg.VertexSpacing
		for _, id := range ids {
			g.MustVertex(id).Y = y
		}
	}
	if cfg.LayeringType == Up {
		for _, v := range g.Vertices() {
			v.Y = -v.Y
		}
	}

	for pass := 0; pass < 4; pass++ {
		vertical := pass < 2   // 0,1: up; 2,3: down
		leftward := pass%2 == 0 // 0,2: left; 1,3: right
		alignPass(g, layers, vertical, leftward, pass, cfg.VertexSpacing)
	}

	verts := g.Vertices()
	for _, v := range verts {
		xs := []int{v.PassX[0], v.PassX[1], v.PassX[2], v.PassX[3]}
		insertionSort4(xs)
		// Floor (not truncating) division: two candidates that differ by
		// at least 2*spacing still differ by at least spacing after halving.
		sum := xs[1] + xs[2]
		v.X = sum / 2
		if sum < 0 && sum%2 != 0 {
			v.X--
		}
	}

	// Translate so the minimum x is 0, per spec.md §4.5 — the four passes
	// include rightward sweeps that store negated candidates, so the
	// averaged x is not naturally zero-based.
	minX := verts[0].X
	for _, v := range verts {
		if v.X < minX {
			minX = v.X
		}
	}
	if minX != 0 {
		for _, v := range verts {
			v.X -= minX
		}
	}
}

func layersByRank(g *Graph) map[int][]VertexID {
	layers := map[int][]VertexID{}
	for _, v := range g.Vertices() {
		layers[v.Rank] = append(layers[v.Rank], v.ID)
	}
	for _, ids := range layers {
		// Pos was fixed by Order; sort layer slices by it so every pass
		// sees a consistent left-to-right order.
		insertionSortByPos(g, ids)
	}
	return layers
}

func insertionSortByPos(g *Graph, ids []VertexID) {
	for i := 1; i < len(ids); i++ {
		j := i
		for j > 0 && g.MustVertex(ids[j-1]).Pos > g.MustVertex(ids[j]).Pos {
			ids[j-1], ids[j] = ids[j], ids[j-1]
			j--
		}
	}
}

// alignPass runs one of the four Brandes-Köpf passes, writing its
// candidate x coordinate into v.PassX[slot].
func alignPass(g *Graph, layers map[int][]VertexID, vertical, leftward bool, slot, spacing int) {
	numRanks := len(layers)
	for _, v := range g.Vertices() {
		v.Root[slot] = v.ID
		v.Align[slot] = v.ID
	}

	rankOrder := make([]int, numRanks)
	for i := range rankOrder {
		rankOrder[i] = i
	}
	// vertical selects "up" (sweep ranks top-down, align to the rank
	// above); its complement is "down" (sweep bottom-up, align below).
	if !vertical {
		for i, j := 0, len(rankOrder)-1; i < j; i, j = i+1, j-1 {
			rankOrder[i], rankOrder[j] = rankOrder[j], rankOrder[i]
		}
	}

	for _, r := range rankOrder {
		ids := layers[r]
		neighborRank := r - 1
		if !vertical {
			neighborRank = r + 1
		}
		if _, ok := layers[neighborRank]; !ok {
			continue
		}
		order := orderedIDs(ids, leftward)
		prevIdx := -1
		for _, v := range order {
			med := medianNeighborsInRank(g, v, vertical)
			if len(med) == 0 {
				continue
			}
			lo, hi := alignCandidateRange(med, leftward)
			for i := lo; i != hi; i += step(leftward) {
				w := med[i]
				if g.MustVertex(w).Align[slot] != w {
					continue // w is already aligned with another vertex in this pass
				}
				if hasConflict(g, v, w, slot) {
					continue
				}
				wPos := g.MustVertex(w).Pos
				if leftward && wPos <= prevIdx {
					continue
				}
				if !leftward && prevIdx != -1 && wPos >= prevIdx {
					continue
				}
				root := g.MustVertex(w).Root[slot]
				g.MustVertex(v).Align[slot] = w
				g.MustVertex(w).Align[slot] = v
				g.MustVertex(v).Root[slot] = root
				prevIdx = wPos
				break
			}
		}
	}

	compact(g, layers, rankOrder, leftward, slot, spacing)
}

func step(leftward bool) int {
	if leftward {
		return 1
	}
	return -1
}

// alignCandidateRange returns [lo, hi) (exclusive end, walked with
// step) over med so the single-median case and the even-count
// lower/upper-median case both match the classic algorithm.
func alignCandidateRange(med []VertexID, leftward bool) (int, int) {
	if leftward {
		return 0, len(med)
	}
	return len(med) - 1, -1
}

func orderedIDs(ids []VertexID, leftward bool) []VertexID {
	out := append([]VertexID{}, ids...)
	if !leftward {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// medianNeighborsInRank returns v's neighbors that lie in rank
// (filtered by the out/in edges pointing the right direction),
// sorted by Pos, restricted to the middle one or two entries per the
// Brandes-Köpf median-alignment rule.
func medianNeighborsInRank(g *Graph, v VertexID, vertical bool) []VertexID {
	vert := g.MustVertex(v)
	edges := vert.in
	other := func(e *Edge) VertexID { return e.Tail }
	if !vertical {
		edges = vert.out
		other = func(e *Edge) VertexID { return e.Head }
	}
	neighbors := make([]VertexID, 0, len(edges))
	for _, e := range edges {
		neighbors = append(neighbors, other(e))
	}
	insertionSortByPos(g, neighbors)

	n := len(neighbors)
	if n == 0 {
		return nil
	}
	if n%2 == 1 {
		return []VertexID{neighbors[n/2]}
	}
	return []VertexID{neighbors[n/2-1], neighbors[n/2]}
}

// hasConflict reports whether the edge connecting v and w carries a
// marked type-1 conflict, in which case Brandes-Köpf forbids aligning
// them.
func hasConflict(g *Graph, v, w VertexID, slot int) bool {
	vv := g.MustVertex(v)
	edges := vv.in
	if slot >= 2 {
		edges = vv.out
	}
	for _, e := range edges {
		if (e.Tail == w || e.Head == w) && e.HasType1Conflict {
			return true
		}
	}
	return false
}

// compact assigns each vertex's PassX[slot] by pushing every root block
// as far left (or right) as its neighbors and minimum spacing allow.
func compact(g *Graph, layers map[int][]VertexID, rankOrder []int, leftward bool, slot, spacing int) {
	x := map[VertexID]int{}

	var root func(v VertexID) VertexID
	root = func(v VertexID) VertexID {
		r := g.MustVertex(v).Root[slot]
		if r == v {
			return v
		}
		return root(r)
	}

	placeBlock(g, layers, rankOrder, leftward, slot, spacing, root, x)

	for _, v := range g.Vertices() {
		v.PassX[slot] = x[root(v.ID)]
	}
}

// placeBlock computes x[root] for every block root, in sweep order, as
// the tightest position satisfying spacing against already-placed
// predecessor blocks on the same rank.
func placeBlock(g *Graph, layers map[int][]VertexID, rankOrder []int, leftward bool, slot, spacing int, root func(VertexID) VertexID, x map[VertexID]int) {
	placed := map[VertexID]bool{}
	for _, r := range rankOrder {
		ids := orderedIDs(layers[r], leftward)
		prevX := 0
		prevHalf := 0
		havePrev := false
		for _, v := range ids {
			rt := root(v)
			half := g.MustVertex(v).Size.W / 2
			if !placed[rt] {
				pos := half
				if havePrev {
					pos = prevX + prevHalf + spacing + half
				}
				x[rt] = pos
				placed[rt] = true
			}
			if x[rt] < prevX+prevHalf+spacing+half && havePrev {
				x[rt] = prevX + prevHalf + spacing + half
			}
			prevX, prevHalf, havePrev = x[rt], half, true
		}
	}
	if !leftward {
		for rt := range x {
			x[rt] = -x[rt]
		}
	}
}

func insertionSort4(xs []int) {
	for i := 1; i < len(xs); i++ {
		j := i
		for j > 0 && xs[j-1] > xs[j] {
			xs[j-1], xs[j] = xs[j], xs[j-1]
			j--
		}
	}
}
