package internal

import (
	"embed"
	"log"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// Fixtures are SVG drawings in the fixtures/ directory, available by name sans
// extension. Their <line> and <polyline> elements become segments. If anything
// goes wrong, loading panics.

//go:embed fixtures
var fixtures embed.FS

func LoadFixture(name string) []RawSegment {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}
	defer fixture.Close()

	segments, err := ReadSegmentsSVG(fixture)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}
	return segments
}

// An arrangement with a fixed color seed and no frame.
func testArrangement(t *testing.T, configure ...func(*Config)) *Arrangement {
	t.Helper()
	config := DefaultConfig()
	config.Seed = 42
	config.Canvas.Frame = false
	for _, f := range configure {
		f(&config)
	}
	a, err := New(config, nil)
	require.NoError(t, err)
	return a
}

func insertAll(t *testing.T, a *Arrangement, segments ...RawSegment) []*InsertResult {
	t.Helper()
	results := make([]*InsertResult, 0, len(segments))
	for _, segment := range segments {
		result, err := a.Insert(segment)
		require.NoError(t, err)
		results = append(results, result)
	}
	return results
}

func seg(x1, y1, x2, y2 float64) RawSegment {
	return RawSegment{Point{x1, y1}, Point{x2, y2}}
}

// The four sides of a w×h rectangle at the origin, drawn corner to corner.
func rectangle(w, h float64) []RawSegment {
	return []RawSegment{
		seg(0, 0, w, 0),
		seg(w, 0, w, h),
		seg(w, h, 0, h),
		seg(0, h, 0, 0),
	}
}

func diff(t *testing.T, want, got interface{}, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// Coordinates of a face, for readable assertions.
func faceCoords(a *Arrangement, face Face) []Point {
	points := make([]Point, len(face))
	for i, id := range face {
		points[i] = a.Coord(id)
	}
	return points
}
