package internal

import (
	"math"
	"strconv"
	"strings"
)

// Only used by tests and by callers that want approximate comparisons. The
// pipeline itself compares floats exactly, apart from the coordinate snapping
// done by the point registry.
const Tolerance = 1e-6

func Equal(a, b float64) bool {
	return math.Abs(a-b) < Tolerance
}

// Lexicographic ordering on (X, Y). This is the one total order used for
// canonical segments, per-segment point lists and canonical faces.
func (p Point) Less(other Point) bool {
	if p.X != other.X {
		return p.X < other.X
	}
	return p.Y < other.Y
}

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}

func (f Face) Contains(id PointID) bool {
	for _, v := range f {
		if v == id {
			return true
		}
	}
	return false
}

// A face is simple when it has at least three vertices and never repeats one.
func (f Face) IsSimple() bool {
	if len(f) < 3 {
		return false
	}
	seen := make(map[PointID]struct{}, len(f))
	for _, v := range f {
		if _, ok := seen[v]; ok {
			return false
		}
		seen[v] = struct{}{}
	}
	return true
}

func (f Face) key() string {
	parts := make([]string, len(f))
	for i, v := range f {
		parts[i] = strconv.Itoa(int(v))
	}
	return strings.Join(parts, ",")
}

// Twice the signed area of a polygon, by the shoelace formula. In screen
// coordinates a positive value means the vertices run clockwise as seen on
// screen.
func SignedArea2(points []Point) float64 {
	var sum float64
	for i, p := range points {
		q := points[CircularIndex(i+1, len(points))]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum
}
