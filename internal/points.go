package internal

import (
	"math"
	"sort"
)

type coordKey struct {
	x, y int64
}

// Gives every intersection point a stable id and tracks, per segment, the
// points lying on it in coordinate order.
type PointRegistry struct {
	snap     float64
	points   []IntersectionPoint
	position map[PointID]int
	byCoord  map[coordKey]PointID
	// Sorted by coordinate. See sortPointList.
	onSegment map[SegmentID][]PointID
	nextID    PointID
}

func NewPointRegistry(snap float64, firstID PointID) *PointRegistry {
	return &PointRegistry{
		snap:      snap,
		position:  make(map[PointID]int),
		byCoord:   make(map[coordKey]PointID),
		onSegment: make(map[SegmentID][]PointID),
		nextID:    firstID,
	}
}

func (r *PointRegistry) key(p Point) coordKey {
	if r.snap <= 0 {
		// Adding zero folds -0 into +0
		return coordKey{int64(math.Float64bits(p.X + 0)), int64(math.Float64bits(p.Y + 0))}
	}
	return coordKey{int64(math.Round(p.X / r.snap)), int64(math.Round(p.Y / r.snap))}
}

// Record that newSegment crosses existing at p. If a point already exists at
// that coordinate its id is reused, otherwise a new id is allocated. Either
// way, the point ends up in both segments' lists exactly once. Returns the id
// and whether it was newly created.
func (r *PointRegistry) Add(p Point, newSegment, existing SegmentID) (PointID, bool) {
	k := r.key(p)
	id, found := r.byCoord[k]
	if !found {
		id = r.nextID
		r.nextID++
		r.byCoord[k] = id
		r.position[id] = len(r.points)
		r.points = append(r.points, IntersectionPoint{
			ID:       id,
			Point:    p,
			Segments: [2]SegmentID{newSegment, existing},
		})
	}
	r.attach(newSegment, id)
	r.attach(existing, id)
	return id, !found
}

func (r *PointRegistry) attach(segment SegmentID, id PointID) {
	list := r.onSegment[segment]
	for _, existing := range list {
		if existing == id {
			return
		}
	}
	list = append(list, id)
	r.sortPointList(list)
	r.onSegment[segment] = list
}

// Lexicographic on coordinates, ties broken by id. Distinct points never share
// a coordinate, but the tie break keeps the order total regardless.
func (r *PointRegistry) sortPointList(list []PointID) {
	sort.Slice(list, func(i, j int) bool {
		a, b := r.Coord(list[i]), r.Coord(list[j])
		if a != b {
			return a.Less(b)
		}
		return list[i] < list[j]
	})
}

func (r *PointRegistry) Get(id PointID) (IntersectionPoint, bool) {
	i, ok := r.position[id]
	if !ok {
		return IntersectionPoint{}, false
	}
	return r.points[i], true
}

// The coordinate of a registered point. Asking for an unknown id is a bug.
func (r *PointRegistry) Coord(id PointID) Point {
	i, ok := r.position[id]
	if !ok {
		fatalf("unknown point %d", id)
	}
	return r.points[i].Point
}

func (r *PointRegistry) Len() int {
	return len(r.points)
}

// All points in id order. The slice must not be modified.
func (r *PointRegistry) All() []IntersectionPoint {
	return r.points
}

// The sorted point list of one segment. The slice must not be modified.
func (r *PointRegistry) OnSegment(segment SegmentID) []PointID {
	return r.onSegment[segment]
}

// Segment ids that have at least one point, ascending.
func (r *PointRegistry) Segments() []SegmentID {
	ids := make([]SegmentID, 0, len(r.onSegment))
	for id := range r.onSegment {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (r *PointRegistry) NextID() PointID {
	return r.nextID
}
