package internal

// Is C strictly counterclockwise of the directed line AB? (In screen
// coordinates this reads clockwise, but only consistency matters here.)
func ccw(a, b, c Point) bool {
	return (c.Y-a.Y)*(b.X-a.X) > (b.Y-a.Y)*(c.X-a.X)
}

// Do segments AB and CD properly cross? C and D must lie on opposite sides of
// AB, and A and B on opposite sides of CD. This is only a pre-filter; the
// crossing point itself comes from Intersect.
func HasIntersect(a, b, c, d Point) bool {
	return ccw(a, c, d) != ccw(b, c, d) && ccw(a, b, c) != ccw(a, b, d)
}

func det(ax, ay, bx, by float64) float64 {
	return ax*by - ay*bx
}

// Solve for the point where the infinite lines through two segments meet.
//
// The determinant is compared against exactly zero. Parallel and collinear
// segments, including collinear segments that overlap, therefore report no
// intersection at all, and nearly parallel ones can produce far away points
// (which HasIntersect will normally have filtered out already).
func Intersect(s1, s2 Segment) (Point, bool) {
	xdiff0, xdiff1 := s1.Start.X-s1.End.X, s2.Start.X-s2.End.X
	ydiff0, ydiff1 := s1.Start.Y-s1.End.Y, s2.Start.Y-s2.End.Y

	div := det(xdiff0, xdiff1, ydiff0, ydiff1)
	if div == 0 {
		return Point{}, false
	}

	d0 := det(s1.Start.X, s1.Start.Y, s1.End.X, s1.End.Y)
	d1 := det(s2.Start.X, s2.Start.Y, s2.End.X, s2.End.Y)
	return Point{
		X: det(d0, d1, xdiff0, xdiff1) / div,
		Y: det(d0, d1, ydiff0, ydiff1) / div,
	}, true
}

// Find every crossing between a new segment and the stored ones. Stored
// segments are visited in ascending id order, so the order of the result (and
// therefore point id assignment) depends only on the insertion sequence.
func FindIntersections(segment Segment, store *SegmentStore) []Intersection {
	var result []Intersection
	for _, id := range store.Candidates(segment) {
		other, _ := store.Get(id)
		if !HasIntersect(segment.Start, segment.End, other.Start, other.End) {
			continue
		}
		p, ok := Intersect(segment, other)
		if !ok {
			continue
		}
		result = append(result, Intersection{Segment: id, Point: p})
	}
	return result
}
