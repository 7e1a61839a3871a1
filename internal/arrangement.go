package internal

import (
	"image/color"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// The planar arrangement built from the segments inserted so far, together with
// the faces that have been colored. An Arrangement is owned by its caller and
// is not safe for concurrent use: every insertion runs the whole pipeline to
// completion before the next may start.
type Arrangement struct {
	Config Config
	Logger *zap.Logger

	rng      *rand.Rand
	segments *SegmentStore
	points   *PointRegistry
	graph    *Graph
	wedges   []Wedge
	faces    *FaceRegistry

	// Ids survive Reset, so they are never reused.
	nextSegmentID SegmentID
}

type InsertResult struct {
	// The stored segment. When Duplicate is set, this is the segment that was
	// already there.
	Segment   Segment
	Duplicate bool
	// Points created by this insertion (reused points are not included).
	NewPoints []PointID
	NewFaces  []*FaceRecord
}

// Create an empty arrangement. If the canvas frame is enabled, the four frame
// segments are inserted right away. A nil logger discards everything.
func New(config Config, logger *zap.Logger) (*Arrangement, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	a := &Arrangement{
		Config: config,
		Logger: logger,
		rng:    rand.New(rand.NewSource(seed)),
	}
	a.clear(0, 0)
	if err := a.insertFrame(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Arrangement) clear(firstPoint PointID, firstFace int) {
	a.segments = NewSegmentStore()
	a.points = NewPointRegistry(a.Config.SnapPrecision, firstPoint)
	a.graph = BuildGraph(a.points)
	a.wedges = nil
	a.faces = NewFaceRegistry(a.Config, a.rng, firstFace)
}

// Throw away every segment, point and face, and start over (re-inserting the
// frame if enabled). Ids keep counting from where they were.
func (a *Arrangement) Reset() error {
	a.clear(a.points.NextID(), a.faces.NextID())
	a.Logger.Info("arrangement reset")
	return a.insertFrame()
}

// The canvas border, pushed out by the frame offset, so everything drawn on
// the canvas lands inside the first face.
func (a *Arrangement) insertFrame() error {
	canvas := a.Config.Canvas
	if !canvas.Frame {
		return nil
	}
	o := canvas.FrameOffset
	w, h := canvas.Width, canvas.Height
	corners := []Point{{-o, -o}, {w + o, -o}, {w + o, h + o}, {-o, h + o}}
	for i, corner := range corners {
		next := corners[CircularIndex(i+1, len(corners))]
		if _, err := a.Insert(RawSegment{corner, next}); err != nil {
			return errors.Wrap(err, "inserting canvas frame")
		}
	}
	return nil
}

// Add one segment and run the full pipeline: intersections, point registry,
// graph, face extraction, face registry.
//
// An exact duplicate of a stored segment changes nothing and is reported
// through InsertResult.Duplicate. If face extraction finds the embedding
// inconsistent, the error is returned but the segment and its points stay
// committed, and no face is registered for this insertion.
func (a *Arrangement) Insert(raw RawSegment) (*InsertResult, error) {
	segment := Canonicalize(raw, a.Config.ExtendMargin)
	if id, ok := a.segments.Lookup(segment); ok {
		existing, _ := a.segments.Get(id)
		a.Logger.Info("segment already drawn", zap.Int("segment", int(id)))
		return &InsertResult{Segment: existing, Duplicate: true}, nil
	}

	segment.ID = a.nextSegmentID
	a.nextSegmentID++
	result := &InsertResult{Segment: segment}

	start := time.Now()
	intersections := FindIntersections(segment, a.segments)
	a.segments.Add(segment)
	for _, x := range intersections {
		if id, created := a.points.Add(x.Point, segment.ID, x.Segment); created {
			result.NewPoints = append(result.NewPoints, id)
		}
	}
	a.Logger.Debug("found intersections",
		zap.Int("segment", int(segment.ID)),
		zap.Int("intersections", len(intersections)),
		zap.Int("new_points", len(result.NewPoints)),
		zap.Duration("elapsed", time.Since(start)),
	)

	start = time.Now()
	a.graph = BuildGraph(a.points)
	a.Logger.Debug("built graph",
		zap.Int("edges", a.graph.EdgeCount()),
		zap.Int("dangling", len(a.graph.Dangling())),
		zap.Duration("elapsed", time.Since(start)),
	)

	start = time.Now()
	faces, wedges, err := a.extract()
	if err != nil {
		a.Logger.Error("face extraction failed", zap.Int("segment", int(segment.ID)), zap.Error(err))
		return result, errors.Wrapf(err, "extracting faces after segment %d", segment.ID)
	}
	a.wedges = wedges
	result.NewFaces = a.faces.Register(faces, a.points.Coord)
	a.Logger.Debug("extracted faces",
		zap.Int("wedges", len(wedges)),
		zap.Int("faces", len(faces)),
		zap.Int("new_faces", len(result.NewFaces)),
		zap.Duration("elapsed", time.Since(start)),
	)
	for _, record := range result.NewFaces {
		a.Logger.Debug("new face", zap.Stringer("face", record))
	}
	return result, nil
}

func (a *Arrangement) extract() (faces []Face, wedges []Wedge, err error) {
	defer func() {
		recoveredErr := HandlePanicRecover(recover())
		if recoveredErr != nil {
			faces, wedges = nil, nil
			err = recoveredErr
		}
	}()
	faces, wedges = ExtractFaces(a.graph, a.points.Coord)
	return faces, wedges, nil
}

// Stored segments, in insertion order.
func (a *Arrangement) Segments() []Segment {
	return a.segments.All()
}

// Colored faces, in the order they were discovered.
func (a *Arrangement) Faces() []*FaceRecord {
	return a.faces.All()
}

func (a *Arrangement) Points() []IntersectionPoint {
	return a.points.All()
}

func (a *Arrangement) Coord(id PointID) Point {
	return a.points.Coord(id)
}

// The sorted point list of a segment.
func (a *Arrangement) PointsOn(segment SegmentID) []PointID {
	return a.points.OnSegment(segment)
}

func (a *Arrangement) Graph() *Graph {
	return a.graph
}

// Wedges of the last successful extraction. A failed extraction leaves them
// as they were.
func (a *Arrangement) Wedges() []Wedge {
	return a.wedges
}

// The first color handed out this session.
func (a *Arrangement) Background() (color.RGBA, bool) {
	return a.faces.Background()
}

func (a *Arrangement) Stats() Stats {
	return Stats{
		Segments: a.segments.Len(),
		Points:   a.points.Len(),
		Faces:    a.faces.Len(),
		Edges:    a.graph.EdgeCount(),
		Wedges:   len(a.wedges),
	}
}
