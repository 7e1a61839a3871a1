package internal

// Walk the wedge table, chaining each wedge (a, b, c) to the wedge (b, c, ·),
// until every wedge has been used. Each closed walk is one face of the
// embedding, listed by the pivots of its wedges. Walks that are too short or
// revisit a vertex (back and forth along a bridge, for example) are dropped.
//
// The unbounded outer face is one of the walks, and is kept. Deciding that it
// is not worth coloring is the face registry's job.
//
// A missing continuation, or a walk that runs into a wedge already used by
// another walk, means the table does not describe an embedding at all. That is
// fatal, since any face produced past that point would be wrong.
func TraceFaces(table WedgeTable) []Face {
	var faces []Face
	used := make([]bool, len(table))
	// Wedges only ever become used, so the search for an unused one can resume
	// where it left off.
	cursor := 0
	for {
		for cursor < len(table) && used[cursor] {
			cursor++
		}
		if cursor == len(table) {
			break
		}

		start := table[cursor]
		used[cursor] = true
		face := Face{start.B}
		current := start
		for current.B != start.A || current.C != start.B {
			i := table.Search(current.B, current.C)
			if i < 0 {
				fatalf("no wedge continues %v", current)
			}
			if used[i] {
				fatalf("wedge %v continues into used wedge %v", current, table[i])
			}
			if len(face) > len(table) {
				fatalf("walk from %v does not close", start)
			}
			used[i] = true
			current = table[i]
			face = append(face, current.B)
		}

		if face.IsSimple() {
			faces = append(faces, face)
		}
	}
	return faces
}

// Run the whole extraction over a graph: angular edges, wedges, then tracing.
// The wedges are returned as well, for debug output. A graph with at most one
// edge has no faces, and short-circuits.
func ExtractFaces(g *Graph, coord func(PointID) Point) ([]Face, []Wedge) {
	if g.EdgeCount() <= 1 {
		return nil, nil
	}
	wedges := BuildWedges(AngularEdges(g, coord))
	return TraceFaces(NewWedgeTable(wedges)), wedges
}
