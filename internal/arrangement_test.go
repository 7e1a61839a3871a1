package internal

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestArrangement_Rectangle(t *testing.T) {
	a := testArrangement(t)
	results := insertAll(t, a, rectangle(100, 100)...)

	for _, result := range results[:3] {
		assert.Empty(t, result.NewFaces)
	}
	require.Len(t, results[3].NewFaces, 1, "closing the rectangle makes the first face")
	face := results[3].NewFaces[0]
	assert.Equal(t, []Point{{0, 0}, {100, 0}, {100, 100}, {0, 100}}, face.Points)

	assert.Equal(t, Stats{Segments: 4, Points: 4, Faces: 1, Edges: 4, Wedges: 8}, a.Stats())
}

func TestArrangement_RectangleAnyOrder(t *testing.T) {
	sides := rectangle(100, 100)
	reversed := func(s RawSegment) RawSegment { return RawSegment{s.End, s.Start} }
	cases := map[string][]RawSegment{
		"clockwise":         {sides[0], sides[1], sides[2], sides[3]},
		"counterclockwise":  {sides[3], sides[2], sides[1], sides[0]},
		"opposite sides":    {sides[0], sides[2], sides[1], sides[3]},
		"shuffled":          {sides[2], sides[0], sides[3], sides[1]},
		"reversed sides":    {reversed(sides[1]), reversed(sides[3]), reversed(sides[0]), reversed(sides[2])},
		"reversed and flat": {reversed(sides[0]), reversed(sides[2]), sides[3], reversed(sides[1])},
	}
	for name, order := range cases {
		t.Run(name, func(t *testing.T) {
			a := testArrangement(t)
			results := insertAll(t, a, order...)
			for _, result := range results[:3] {
				assert.Empty(t, result.NewFaces)
			}
			require.Len(t, a.Faces(), 1)
			diff(t, []Point{{0, 0}, {100, 0}, {100, 100}, {0, 100}}, a.Faces()[0].Points)
			assert.Equal(t, 4, a.Stats().Points)
		})
	}
}

func TestArrangement_WindowPane(t *testing.T) {
	a := testArrangement(t)
	var segments []RawSegment
	for _, y := range []float64{100, 200, 300} {
		segments = append(segments, seg(50, y, 350, y))
	}
	for _, x := range []float64{100, 200, 300} {
		segments = append(segments, seg(x, 50, x, 350))
	}
	results := insertAll(t, a, segments...)

	var newFaces []int
	for _, result := range results {
		newFaces = append(newFaces, len(result.NewFaces))
	}
	assert.Equal(t, []int{0, 0, 0, 0, 2, 2}, newFaces)

	// Four cells, and nothing for the ring around them
	require.Len(t, a.Faces(), 4)
	for _, record := range a.Faces() {
		assert.Len(t, record.Face, 4)
	}
}

func TestArrangement_Diagonal(t *testing.T) {
	a := testArrangement(t)
	insertAll(t, a, rectangle(100, 100)...)

	result, err := a.Insert(seg(0, 0, 100, 100))
	require.NoError(t, err)
	assert.Empty(t, result.NewPoints, "the diagonal meets the sides at the existing corners")
	require.Len(t, result.NewFaces, 2)
	for _, record := range result.NewFaces {
		assert.Len(t, record.Face, 3)
	}
	diff(t, []Point{{0, 0}, {100, 100}, {100, 0}}, result.NewFaces[0].Points)
	diff(t, []Point{{0, 0}, {100, 100}, {0, 100}}, result.NewFaces[1].Points)

	stats := a.Stats()
	assert.Equal(t, 5, stats.Segments)
	assert.Equal(t, 4, stats.Points)
	assert.Equal(t, 3, stats.Faces)
}

func TestArrangement_ParallelSegments(t *testing.T) {
	a := testArrangement(t)
	results := insertAll(t, a, seg(10, 0, 10, 100), seg(20, 0, 20, 100))
	for _, result := range results {
		assert.Empty(t, result.NewPoints)
		assert.Empty(t, result.NewFaces)
	}
	assert.Equal(t, 0, a.Stats().Points)
	assert.Empty(t, a.Faces())
}

func TestArrangement_Duplicate(t *testing.T) {
	a := testArrangement(t)
	insertAll(t, a, rectangle(100, 100)...)
	before := a.Stats()

	// The top side again, drawn the other way
	result, err := a.Insert(seg(100, 0, 0, 0))
	require.NoError(t, err)
	assert.True(t, result.Duplicate)
	assert.Equal(t, SegmentID(0), result.Segment.ID)
	assert.Equal(t, before, a.Stats())
}

func TestArrangement_PointsOnSegments(t *testing.T) {
	a := testArrangement(t)
	insertAll(t, a, LoadFixture("grid")...)
	for _, segment := range a.Segments() {
		points := a.PointsOn(segment.ID)
		require.Len(t, points, 4, "segment %d", segment.ID)
		for i := 0; i+1 < len(points); i++ {
			assert.True(t, a.Coord(points[i]).Less(a.Coord(points[i+1])))
		}
	}
}

func TestArrangement_Grid(t *testing.T) {
	a := testArrangement(t)
	results := insertAll(t, a, LoadFixture("grid")...)

	var newFaces []int
	for _, result := range results {
		newFaces = append(newFaces, len(result.NewFaces))
	}
	// Each new line splits every cell it crosses in two
	assert.Equal(t, []int{0, 0, 0, 1, 2, 2, 6, 6}, newFaces)
	assert.Equal(t, 16, a.Stats().Points)
	assert.Equal(t, 17, a.Stats().Faces)

	for i, record := range a.Faces() {
		assert.Equal(t, i, record.ID)
	}
}

func TestArrangement_Tail(t *testing.T) {
	a := testArrangement(t)
	insertAll(t, a, LoadFixture("tail")...)
	require.Len(t, a.Faces(), 1)
	assert.Len(t, a.Faces()[0].Face, 5, "the tail's foot stays on the square's top side")
}

func TestArrangement_Reset(t *testing.T) {
	a := testArrangement(t)
	insertAll(t, a, rectangle(100, 100)...)
	require.NoError(t, a.Reset())
	assert.Equal(t, Stats{}, a.Stats())
	assert.Empty(t, a.Faces())

	results := insertAll(t, a, rectangle(50, 50)...)
	assert.Equal(t, SegmentID(4), results[0].Segment.ID)
	assert.Equal(t, []PointID{4}, results[1].NewPoints)
	require.Len(t, results[3].NewFaces, 1)
	assert.Equal(t, 1, results[3].NewFaces[0].ID)
}

func TestArrangement_Frame(t *testing.T) {
	a := testArrangement(t, func(c *Config) {
		c.Canvas = CanvasConfig{Width: 200, Height: 100, Frame: true, FrameOffset: 4}
	})
	require.Len(t, a.Faces(), 1)
	diff(t, []Point{{-4, -4}, {204, -4}, {204, 104}, {-4, 104}}, a.Faces()[0].Points)

	background, ok := a.Background()
	require.True(t, ok)
	assert.Equal(t, a.Faces()[0].Color, background)

	result, err := a.Insert(seg(100, -10, 100, 110))
	require.NoError(t, err)
	assert.Len(t, result.NewPoints, 2)
	assert.Len(t, result.NewFaces, 2)

	require.NoError(t, a.Reset())
	assert.Len(t, a.Faces(), 1, "reset brings the frame back")
	assert.Equal(t, 4, a.Stats().Segments)
}

func TestArrangement_ExtractRecovers(t *testing.T) {
	a := testArrangement(t)
	insertAll(t, a, rectangle(100, 100)...)

	// An edge to a point the registry has never seen
	a.graph = &Graph{edges: []Edge{{0, 1}, {1, 99}}}
	faces, wedges, err := a.extract()
	require.Error(t, err)
	assert.Equal(t, ErrInconsistentEmbedding, errors.Cause(err))
	assert.Nil(t, faces)
	assert.Nil(t, wedges)
}

func TestArrangement_InsertAfterFailedExtraction(t *testing.T) {
	a := testArrangement(t)
	insertAll(t, a, rectangle(100, 100)...)
	wedges := a.Wedges()

	// Two bogus segments routing the corners 0 and 1 through a point that was
	// never registered
	a.points.onSegment[98] = []PointID{0, 42}
	a.points.onSegment[99] = []PointID{42, 1}

	result, err := a.Insert(seg(0, 0, 100, 100))
	require.Error(t, err)
	assert.Equal(t, ErrInconsistentEmbedding, errors.Cause(err))

	require.NotNil(t, result)
	assert.False(t, result.Duplicate)
	assert.Empty(t, result.NewFaces)
	stored, ok := a.segments.Get(result.Segment.ID)
	require.True(t, ok, "the segment stays committed")
	assert.Equal(t, result.Segment, stored)
	assert.Len(t, a.PointsOn(result.Segment.ID), 2, "so do its points")

	assert.Equal(t, 5, a.Stats().Segments)
	assert.Len(t, a.Faces(), 1)
	assert.Equal(t, wedges, a.Wedges())
	assert.Equal(t, len(wedges), a.Stats().Wedges)
}

func TestArrangement_IndependentOwners(t *testing.T) {
	var wg sync.WaitGroup
	faces := make([]int, 4)
	errs := make([]error, 4)
	for i := range faces {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			core, _ := observer.New(zap.DebugLevel)
			config := DefaultConfig()
			config.Seed = int64(i + 1)
			a, err := New(config, zap.New(core))
			if err != nil {
				errs[i] = err
				return
			}
			for _, s := range append(rectangle(100, 100), seg(0, 0, 100, 100)) {
				if _, err := a.Insert(s); err != nil {
					errs[i] = err
					return
				}
			}
			faces[i] = len(a.Faces())
		}(i)
	}
	wg.Wait()

	for i := range faces {
		require.NoError(t, errs[i])
		// The frame, the square, then its two halves
		assert.Equal(t, 4, faces[i])
	}
}

func TestArrangement_InvalidConfig(t *testing.T) {
	config := DefaultConfig()
	config.ColorMin = 220
	_, err := New(config, nil)
	assert.Error(t, err)
}

func TestArrangement_Logging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	config := DefaultConfig()
	config.Canvas.Frame = false
	a, err := New(config, zap.New(core))
	require.NoError(t, err)

	for _, s := range rectangle(100, 100) {
		_, err := a.Insert(s)
		require.NoError(t, err)
	}
	_, err = a.Insert(seg(0, 0, 100, 0))
	require.NoError(t, err)

	assert.Equal(t, 4, logs.FilterMessage("extracted faces").Len())
	assert.Equal(t, 1, logs.FilterMessage("new face").Len())
	duplicates := logs.FilterMessage("segment already drawn").All()
	require.Len(t, duplicates, 1)
	assert.Equal(t, int64(0), duplicates[0].ContextMap()["segment"])
}
