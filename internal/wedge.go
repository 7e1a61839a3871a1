package internal

import (
	"fmt"
	"math"
	"sort"

	"github.com/logrusorgru/aurora"
)

// Angle of the vector from p1 to p2 against the horizontal, in degrees within
// [0, 360). The y axis is flipped because screen coordinates grow downward, so
// angles increase counterclockwise as seen on screen.
func Angle(p1, p2 Point) float64 {
	y := p1.Y - p2.Y
	x := p2.X - p1.X
	if x == 0 && y == 0 {
		return 0
	}
	degrees := math.Atan2(y, x) * 180 / math.Pi
	if degrees < 0 {
		degrees += 360
	}
	return degrees
}

// Both directions of every edge in the graph, sorted by tail, then by angle.
// Within a tail's group this is the rotation order of its neighbors. Ties on
// angle (only possible for overlapping edges) fall back to the head id, to keep
// the order deterministic.
func AngularEdges(g *Graph, coord func(PointID) Point) []DirectedEdge {
	result := make([]DirectedEdge, 0, 2*g.EdgeCount())
	for _, e := range g.Edges() {
		from, to := coord(e.From), coord(e.To)
		result = append(result,
			DirectedEdge{Tail: e.From, Head: e.To, Angle: Angle(from, to)},
			DirectedEdge{Tail: e.To, Head: e.From, Angle: Angle(to, from)},
		)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.Tail != b.Tail {
			return a.Tail < b.Tail
		}
		if a.Angle != b.Angle {
			return a.Angle < b.Angle
		}
		return a.Head < b.Head
	})
	return result
}

// Turn each tail's angularly sorted group into wedges. For a group e0..ek
// around v, arriving from e_i's head continues to e_{i-1}'s head, and arriving
// from e0's head wraps around to ek's head. A vertex with a single neighbor
// gets a U-turn wedge (a, v, a).
func BuildWedges(edges []DirectedEdge) []Wedge {
	wedges := make([]Wedge, 0, len(edges))
	first := 0
	for i := range edges {
		if i > first {
			wedges = append(wedges, Wedge{edges[i].Head, edges[i].Tail, edges[i-1].Head})
		}
		// Last entry in the group closes the rotation
		if i+1 == len(edges) || edges[i+1].Tail != edges[i].Tail {
			wedges = append(wedges, Wedge{edges[first].Head, edges[i].Tail, edges[i].Head})
			first = i + 1
		}
	}
	return wedges
}

// Wedges sorted by (A, B), so that the continuation of a face walk can be
// found by binary search. Each (A, B) pair occurs once, since every neighbor
// appears once in its pivot's rotation.
type WedgeTable []Wedge

func NewWedgeTable(wedges []Wedge) WedgeTable {
	table := make(WedgeTable, len(wedges))
	copy(table, wedges)
	sort.Slice(table, func(i, j int) bool {
		return table[i].less(table[j].A, table[j].B)
	})
	return table
}

func (w Wedge) less(a, b PointID) bool {
	if w.A != a {
		return w.A < a
	}
	return w.B < b
}

// Index of the wedge arriving from a at pivot b, or -1.
func (t WedgeTable) Search(a, b PointID) int {
	i := sort.Search(len(t), func(i int) bool {
		return !t[i].less(a, b)
	})
	if i < len(t) && t[i].A == a && t[i].B == b {
		return i
	}
	return -1
}

func (w Wedge) String() string {
	return fmt.Sprintf("%d %s %d", w.A, aurora.Yellow(fmt.Sprintf("→%d→", w.B)), w.C)
}
