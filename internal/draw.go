package internal

import (
	"fmt"
	"math"
	"os"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
)

type RenderOptions struct {
	// Draw the stored segments over the faces
	ShowLines bool
	// Overlay the connectivity graph: edge arrows, point ids and dots
	ShowDebug bool
}

const (
	lineWidth      = 0.5
	dotRadius      = 3
	labelOffset    = 14
	arrowHeadSize  = 6
	arrowHeadAngle = math.Pi / 7
)

// Draw the arrangement onto a canvas of the configured size. Faces are filled
// in the order they were discovered, so newer faces paint over the older ones
// they were split from.
func Render(a *Arrangement, options RenderOptions) *gg.Context {
	width := int(math.Ceil(a.Config.Canvas.Width))
	height := int(math.Ceil(a.Config.Canvas.Height))
	c := gg.NewContext(width, height)
	c.SetColor(colornames.White)
	c.Clear()

	for _, face := range a.Faces() {
		if len(face.Points) == 0 {
			continue
		}
		c.MoveTo(face.Points[0].X, face.Points[0].Y)
		for _, p := range face.Points[1:] {
			c.LineTo(p.X, p.Y)
		}
		c.ClosePath()
		c.SetColor(face.Color)
		c.SetLineWidth(lineWidth)
		c.FillPreserve()
		c.Stroke()
	}

	if options.ShowLines {
		c.SetColor(colornames.Black)
		c.SetLineWidth(lineWidth)
		for _, s := range a.Segments() {
			c.DrawLine(s.Start.X, s.Start.Y, s.End.X, s.End.Y)
			c.Stroke()
		}
	}

	if options.ShowDebug {
		drawDebug(c, a)
	}
	return c
}

func drawDebug(c *gg.Context, a *Arrangement) {
	c.SetColor(colornames.Blue)
	c.SetLineWidth(2)
	for _, e := range a.Graph().Edges() {
		drawArrow(c, a.Coord(e.From), a.Coord(e.To))
	}

	for _, p := range a.Points() {
		c.SetColor(colornames.Black)
		c.DrawStringAnchored(fmt.Sprint(p.ID), p.X, p.Y+labelOffset, 0.5, 0.5)
		c.SetColor(colornames.Red)
		c.DrawCircle(p.X, p.Y, dotRadius)
		c.Fill()
	}
}

func drawArrow(c *gg.Context, from, to Point) {
	c.DrawLine(from.X, from.Y, to.X, to.Y)
	c.Stroke()
	angle := math.Atan2(to.Y-from.Y, to.X-from.X)
	for _, side := range []float64{-1, 1} {
		a := angle + math.Pi + side*arrowHeadAngle
		c.DrawLine(to.X, to.Y, to.X+arrowHeadSize*math.Cos(a), to.Y+arrowHeadSize*math.Sin(a))
		c.Stroke()
	}
}

func SavePNG(a *Arrangement, options RenderOptions, path string) error {
	if err := Render(a, options).SavePNG(path); err != nil {
		return errors.Wrapf(err, "saving %s", path)
	}
	return nil
}

// Print a PNG to the terminal (iTerm only).
func Preview(path string) {
	imgcat.CatFile(path, os.Stdout)
}
