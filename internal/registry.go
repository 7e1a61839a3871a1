package internal

import (
	"fmt"
	"image/color"
	"math/rand"
	"sort"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/stainedglass/dbg"
)

// Rotate and orient a face so the same region always yields the same vertex
// sequence, no matter where the walk started or which way it went around. The
// sequence starts at the lexicographically smallest coordinate, and goes
// towards whichever neighbor of the start is not smaller than the other.
func CanonicalFace(face Face, coord func(PointID) Point) Face {
	n := len(face)
	if n == 0 {
		return Face{}
	}
	start := 0
	for i := 1; i < n; i++ {
		if coord(face[i]).Less(coord(face[start])) {
			start = i
		}
	}

	next := coord(face[CircularIndex(start+1, n)])
	prev := coord(face[CircularIndex(start-1, n)])
	step := 1
	if next.Less(prev) {
		step = -1
	}

	result := make(Face, n)
	for i := range result {
		result[i] = face[CircularIndex(start+i*step, n)]
	}
	return result
}

// Keeps every face that has been colored so far. Records are only ever added.
type FaceRegistry struct {
	policy  DedupPolicy
	rng     *rand.Rand
	min     int
	max     int
	records []*FaceRecord
	byKey   map[string]*FaceRecord
	nextID  int

	background    color.RGBA
	hasBackground bool
}

func NewFaceRegistry(config Config, rng *rand.Rand, firstID int) *FaceRegistry {
	return &FaceRegistry{
		policy: config.Dedup,
		rng:    rng,
		min:    config.ColorMin,
		max:    config.ColorMax,
		byKey:  make(map[string]*FaceRecord),
		nextID: firstID,
	}
}

// Register the faces of one extraction pass, returning the records for the
// ones that were not seen before. Candidates are considered smallest first, so
// that within a single pass the small faces are already stored by the time a
// large one that surrounds them is judged.
//
// Walks that do not enclose a region are dropped first. The wedge rotation
// traces every bounded face counterclockwise on screen, and the boundary of each
// connected component (the outer face, or the rim of a hole) the other way
// round, so the sign of the area tells them apart.
func (r *FaceRegistry) Register(candidates []Face, coord func(PointID) Point) []*FaceRecord {
	type candidate struct {
		face Face
		key  string
	}
	canonical := make([]candidate, 0, len(candidates))
	for _, face := range candidates {
		if !bounded(face, coord) {
			continue
		}
		c := CanonicalFace(face, coord)
		canonical = append(canonical, candidate{c, c.key()})
	}
	sort.SliceStable(canonical, func(i, j int) bool {
		if len(canonical[i].face) != len(canonical[j].face) {
			return len(canonical[i].face) < len(canonical[j].face)
		}
		return canonical[i].key < canonical[j].key
	})

	var added []*FaceRecord
	for _, c := range canonical {
		if _, ok := r.byKey[c.key]; ok {
			continue
		}
		if r.suppressed(c.face) {
			continue
		}
		points := make([]Point, len(c.face))
		for i, id := range c.face {
			points[i] = coord(id)
		}
		record := &FaceRecord{
			ID:     r.nextID,
			Face:   c.face,
			Points: points,
			Key:    c.key,
			Color:  r.generateColor(),
		}
		r.nextID++
		r.records = append(r.records, record)
		r.byKey[c.key] = record
		added = append(added, record)
	}
	return added
}

func bounded(face Face, coord func(PointID) Point) bool {
	points := make([]Point, len(face))
	for i, id := range face {
		points[i] = coord(id)
	}
	return SignedArea2(points) < 0
}

func (r *FaceRegistry) suppressed(face Face) bool {
	if r.policy == DedupExact {
		return false
	}
	for _, record := range r.records {
		if isSubset(record.Face, face) {
			return true
		}
		if r.policy == DedupContainment && isSubset(face, record.Face) {
			return true
		}
	}
	return false
}

// Is every vertex of a also a vertex of b?
func isSubset(a, b Face) bool {
	if len(a) > len(b) {
		return false
	}
	set := make(map[PointID]struct{}, len(b))
	for _, v := range b {
		set[v] = struct{}{}
	}
	for _, v := range a {
		if _, ok := set[v]; !ok {
			return false
		}
	}
	return true
}

func (r *FaceRegistry) generateColor() color.RGBA {
	channel := func() uint8 {
		return uint8(r.min + r.rng.Intn(r.max-r.min+1))
	}
	c := color.RGBA{R: channel(), G: channel(), B: channel(), A: 0xff}
	if !r.hasBackground {
		r.background = c
		r.hasBackground = true
	}
	return c
}

// The first color ever handed out. False until a face has been registered.
func (r *FaceRegistry) Background() (color.RGBA, bool) {
	return r.background, r.hasBackground
}

// Records in creation order. The slice must not be modified.
func (r *FaceRegistry) All() []*FaceRecord {
	return r.records
}

func (r *FaceRegistry) Len() int {
	return len(r.records)
}

func (r *FaceRegistry) NextID() int {
	return r.nextID
}

func (f *FaceRecord) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", f.Color.R, f.Color.G, f.Color.B)
}

func (f *FaceRecord) String() string {
	parts := make([]string, len(f.Face))
	for i, id := range f.Face {
		parts[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("Face %s %s [%s]", f.DbgName(), f.Hex(), strings.Join(parts, " "))
}

// Named after the key rather than the record, so the name memo holds strings
// and never keeps a record alive.
func (f *FaceRecord) DbgName() string {
	name := dbg.Name(f.Key)
	if len(f.Face) == 3 {
		name = aurora.Cyan(name).String()
	} else {
		name = aurora.Green(name).String()
	}
	return name
}
