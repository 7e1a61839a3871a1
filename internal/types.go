package internal

import "image/color"

// Coordinates are screen coordinates, so Y grows downward. Points are plain
// values; identity lives in the integer ids handed out by the registries, never
// in addresses.
type Point struct {
	X float64
	Y float64
}

type SegmentID int

type PointID int

// A segment as the user drew it, before canonicalization.
type RawSegment struct {
	Start, End Point
}

// A stored segment. Start and End are the canonical (extended, ordered)
// endpoints.
type Segment struct {
	ID         SegmentID
	Start, End Point
}

type IntersectionPoint struct {
	ID PointID
	Point
	// The pair of segments whose crossing first produced this point. The newer
	// segment comes first. Other segments may pass through the same point later.
	Segments [2]SegmentID
}

// One crossing found between a new segment and a stored one.
type Intersection struct {
	Segment SegmentID
	Point   Point
}

// An edge leaving Tail, tagged with its angle in degrees.
type DirectedEdge struct {
	Tail, Head PointID
	Angle      float64
}

// A turn at B: arriving from A, the next edge in rotation order leaves to C.
type Wedge struct {
	A, B, C PointID
}

// A closed cycle of point ids with no repeats.
type Face []PointID

type FaceRecord struct {
	// Rendering handle. Monotonic over the life of the arrangement.
	ID     int
	Face   Face
	Points []Point
	Key    string
	Color  color.RGBA
}

type Stats struct {
	Segments int
	Points   int
	Faces    int
	Edges    int
	Wedges   int
}
