package internal

import (
	"sort"

	"github.com/jbeda/geom"
	"github.com/peterstace/simplefeatures/rtree"
)

func coord(p Point) geom.Coord {
	return geom.Coord{X: p.X, Y: p.Y}
}

func point(c geom.Coord) Point {
	return Point{X: c.X, Y: c.Y}
}

// Push both endpoints of a raw segment outward by margin, then order them so
// the lexicographically smaller endpoint comes first. Without the extension, a
// user closing a shape by drawing to the exact end of another segment would
// produce a near miss instead of a crossing.
//
// A zero-length segment has no direction, so it is left where it is.
func Canonicalize(raw RawSegment, margin float64) Segment {
	start, end := coord(raw.Start), coord(raw.End)
	direction := end.Minus(start)
	if direction.Magnitude() != 0 {
		push := direction.Unit().Times(margin)
		start = start.Minus(push)
		end = end.Plus(push)
	}

	s := Segment{Start: point(start), End: point(end)}
	if s.End.Less(s.Start) {
		s.Start, s.End = s.End, s.Start
	}
	return s
}

func (s Segment) Bounds() geom.Rect {
	r := geom.Rect{Min: coord(s.Start), Max: coord(s.Start)}
	r.ExpandToContainCoord(coord(s.End))
	return r
}

func box(r geom.Rect) rtree.Box {
	return rtree.Box{MinX: r.Min.X, MinY: r.Min.Y, MaxX: r.Max.X, MaxY: r.Max.Y}
}

// Holds the canonical segments in insertion order. Segments are never removed;
// the whole store is thrown away on reset.
type SegmentStore struct {
	segments    []Segment
	positions   map[SegmentID]int
	byEndpoints map[[2]Point]SegmentID

	// Spatial index over segment bounds. It is rebuilt lazily, the first time a
	// search happens after segments were added.
	index   *rtree.RTree
	indexed int
}

func NewSegmentStore() *SegmentStore {
	return &SegmentStore{
		positions:   make(map[SegmentID]int),
		byEndpoints: make(map[[2]Point]SegmentID),
	}
}

// Find a stored segment with exactly the same canonical endpoints.
func (s *SegmentStore) Lookup(segment Segment) (SegmentID, bool) {
	id, ok := s.byEndpoints[[2]Point{segment.Start, segment.End}]
	return id, ok
}

func (s *SegmentStore) Add(segment Segment) {
	s.positions[segment.ID] = len(s.segments)
	s.byEndpoints[[2]Point{segment.Start, segment.End}] = segment.ID
	s.segments = append(s.segments, segment)
}

func (s *SegmentStore) Get(id SegmentID) (Segment, bool) {
	i, ok := s.positions[id]
	if !ok {
		return Segment{}, false
	}
	return s.segments[i], true
}

func (s *SegmentStore) Len() int {
	return len(s.segments)
}

// All segments in insertion order. The slice must not be modified.
func (s *SegmentStore) All() []Segment {
	return s.segments
}

// Ids of stored segments whose bounds overlap the given segment's bounds, in
// ascending id order. Overlapping bounds are necessary for a crossing, so this
// never hides an intersection.
func (s *SegmentStore) Candidates(segment Segment) []SegmentID {
	if len(s.segments) == 0 {
		return nil
	}
	if s.index == nil || s.indexed != len(s.segments) {
		items := make([]rtree.BulkItem, len(s.segments))
		for i, stored := range s.segments {
			items[i] = rtree.BulkItem{Box: box(stored.Bounds()), RecordID: i}
		}
		s.index = rtree.BulkLoad(items)
		s.indexed = len(s.segments)
	}

	var ids []SegmentID
	_ = s.index.RangeSearch(box(segment.Bounds()), func(recordID int) error {
		ids = append(ids, s.segments[recordID].ID)
		return nil
	})
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
