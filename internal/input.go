package internal

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/pkg/errors"
)

// Read segments as text, one per line, in the form "x1 y1 x2 y2". Blank lines
// and lines starting with # are skipped.
func ReadSegments(in io.Reader) ([]RawSegment, error) {
	var segments []RawSegment
	scanner := bufio.NewScanner(in)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, errors.Errorf("line %d: expected 4 numbers, got %d", lineNumber, len(fields))
		}
		var values [4]float64
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNumber)
			}
			values[i] = v
		}
		segments = append(segments, RawSegment{
			Start: Point{values[0], values[1]},
			End:   Point{values[2], values[3]},
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading segments")
	}
	return segments, nil
}

// Read segments from an SVG document. This is not a full (or even correct) svg
// reader: every <line> element is a segment, and every <polyline> contributes
// one segment per consecutive pair of points. Transforms are ignored.
// Elements come out in document order, lines first.
func ReadSegmentsSVG(in io.Reader) ([]RawSegment, error) {
	root, err := svgparser.Parse(in, false)
	if err != nil {
		return nil, errors.Wrap(err, "parsing svg")
	}

	var segments []RawSegment
	for _, el := range root.FindAll("line") {
		var values [4]float64
		for i, name := range []string{"x1", "y1", "x2", "y2"} {
			v, err := strconv.ParseFloat(strings.TrimSpace(el.Attributes[name]), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid %s on <line>", name)
			}
			values[i] = v
		}
		segments = append(segments, RawSegment{
			Start: Point{values[0], values[1]},
			End:   Point{values[2], values[3]},
		})
	}

	for _, el := range root.FindAll("polyline") {
		points, err := parsePoints(el.Attributes["points"])
		if err != nil {
			return nil, err
		}
		for i := 0; i+1 < len(points); i++ {
			segments = append(segments, RawSegment{points[i], points[i+1]})
		}
	}
	return segments, nil
}

// Parse an SVG points attribute ("x,y x,y ..." or "x y x y ...").
func parsePoints(s string) ([]Point, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields)%2 != 0 {
		return nil, errors.Errorf("odd number of coordinates in points %q", s)
	}
	points := make([]Point, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid x value %q", fields[i])
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid y value %q", fields[i+1])
		}
		points = append(points, Point{x, y})
	}
	return points, nil
}
