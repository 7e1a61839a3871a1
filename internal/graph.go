package internal

import (
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
)

// Connectivity between intersection points. An edge u→v exists when u and v
// are consecutive on some segment and neither is dangling. The direction is
// just the order the points appear along the segment; face extraction treats
// every edge as undirected.
type Graph struct {
	edges     []Edge
	adjacency map[PointID][]PointID
	dangling  []PointID
}

type Edge struct {
	From, To PointID
}

func undirected(u, v PointID) Edge {
	if v < u {
		u, v = v, u
	}
	return Edge{u, v}
}

// Derive the graph from the per-segment point lists. Dangling points are
// removed in two steps:
//
//  1. A point on fewer than two segments can never be a corner, so it goes.
//  2. Any point left with at most one edge is not on a cycle. Removing it can
//     strand its neighbor, so this repeats until nothing changes. What is left
//     is the 2-core of the graph.
//
// Pruning only ever gets less aggressive as segments are added, since degrees
// never go down. Because whole tails are pruned, a region with a segment
// dangling into or out of it is closed as soon as its boundary is, rather than
// waiting for the tail to be crossed by something else.
func BuildGraph(registry *PointRegistry) *Graph {
	occurrences := make(map[PointID]int)
	seen := make(map[Edge]struct{})
	var candidates []Edge
	for _, segment := range registry.Segments() {
		list := registry.OnSegment(segment)
		for _, id := range list {
			occurrences[id]++
		}
		for i := 0; i+1 < len(list); i++ {
			u, v := list[i], list[i+1]
			key := undirected(u, v)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			candidates = append(candidates, Edge{u, v})
		}
	}

	removed := make(map[PointID]struct{})
	for id, n := range occurrences {
		if n < 2 {
			removed[id] = struct{}{}
		}
	}

	// Degrees over edges that survive step 1
	degree := make(map[PointID]int)
	neighbors := make(map[PointID][]PointID)
	for _, e := range candidates {
		if isRemoved(removed, e.From) || isRemoved(removed, e.To) {
			continue
		}
		degree[e.From]++
		degree[e.To]++
		neighbors[e.From] = append(neighbors[e.From], e.To)
		neighbors[e.To] = append(neighbors[e.To], e.From)
	}

	var queue []PointID
	for id, d := range degree {
		if d <= 1 {
			queue = append(queue, id)
		}
	}
	for len(queue) > 0 {
		id := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		if isRemoved(removed, id) {
			continue
		}
		removed[id] = struct{}{}
		for _, n := range neighbors[id] {
			if isRemoved(removed, n) {
				continue
			}
			degree[n]--
			if degree[n] <= 1 {
				queue = append(queue, n)
			}
		}
	}

	g := &Graph{adjacency: make(map[PointID][]PointID)}
	for _, e := range candidates {
		if isRemoved(removed, e.From) || isRemoved(removed, e.To) {
			continue
		}
		g.edges = append(g.edges, e)
		g.adjacency[e.From] = append(g.adjacency[e.From], e.To)
	}
	for id := range removed {
		g.dangling = append(g.dangling, id)
	}
	sort.Slice(g.dangling, func(i, j int) bool { return g.dangling[i] < g.dangling[j] })
	return g
}

func isRemoved(removed map[PointID]struct{}, id PointID) bool {
	_, ok := removed[id]
	return ok
}

// Directed edges, in the order they were found (ascending segment id, then
// position along the segment).
func (g *Graph) Edges() []Edge {
	return g.edges
}

func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Heads of the directed edges leaving id.
func (g *Graph) Adjacent(id PointID) []PointID {
	return g.adjacency[id]
}

// Points that made it into the graph, ascending.
func (g *Graph) Vertices() []PointID {
	set := make(map[PointID]struct{})
	for _, e := range g.edges {
		set[e.From] = struct{}{}
		set[e.To] = struct{}{}
	}
	ids := make([]PointID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (g *Graph) Contains(id PointID) bool {
	for _, e := range g.edges {
		if e.From == id || e.To == id {
			return true
		}
	}
	return false
}

// Points excluded from the graph, ascending.
func (g *Graph) Dangling() []PointID {
	return g.dangling
}

// Graphviz rendering of the graph, for debugging.
func (g *Graph) DOT(name string) ([]byte, error) {
	ug := simple.NewUndirectedGraph()
	for _, e := range g.edges {
		ug.SetEdge(ug.NewEdge(simple.Node(e.From), simple.Node(e.To)))
	}
	b, err := dot.Marshal(ug, name, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshalling graph")
	}
	return b, nil
}
