package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kr/pretty"
	"github.com/osuushi/stainedglass/internal"
	"go.uber.org/zap"
	"gopkg.in/alecthomas/kingpin.v2"
)

// Demo of the arrangement pipeline. Segments are read from a file (or stdin),
// inserted one by one, and the resulting stained glass is written as a PNG.
//
// Text input has one segment per line in the form "x1 y1 x2 y2". SVG input
// uses <line> and <polyline> elements.

var (
	app = kingpin.New("stainedglass", "Fill the regions enclosed by a set of line segments.")

	input      = app.Arg("input", "Segment file. Reads stdin when omitted or \"-\".").Default("-").String()
	configPath = app.Flag("config", "YAML config file.").ExistingFile()
	format     = app.Flag("format", "Input format. Guessed from the file extension when auto.").Default("auto").Enum("auto", "text", "svg")
	width      = app.Flag("width", "Canvas width. Overrides the config when positive.").Float64()
	height     = app.Flag("height", "Canvas height. Overrides the config when positive.").Float64()
	frame      = app.Flag("frame", "Insert the canvas frame before any segment.").Default("config").Enum("config", "on", "off")
	seed       = app.Flag("seed", "Color seed. Overrides the config when non-zero.").Int64()
	dedup      = app.Flag("dedup", "Face dedup policy. Overrides the config when set.").Enum(string(internal.DedupSuperset), string(internal.DedupContainment), string(internal.DedupExact))
	out        = app.Flag("out", "PNG output path.").Short('o').Default("stainedglass.png").String()
	lines      = app.Flag("lines", "Draw the segments over the faces.").Default("true").Bool()
	debug      = app.Flag("debug", "Overlay the connectivity graph.").Bool()
	preview    = app.Flag("imgcat", "Print the PNG to the terminal (iTerm only).").Bool()
	dotPath    = app.Flag("dot", "Write the connectivity graph in DOT format to this path.").String()
	dump       = app.Flag("dump", "Print every face record.").Bool()
	verbose    = app.Flag("verbose", "Log every pipeline stage.").Short('v').Bool()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger, err := newLogger(*verbose)
	app.FatalIfError(err, "creating logger")
	defer logger.Sync()

	config, err := loadConfig()
	app.FatalIfError(err, "")

	segments, err := readInput(*input, *format)
	app.FatalIfError(err, "reading %s", *input)
	logger.Info("read segments", zap.Int("count", len(segments)))

	arrangement, err := internal.New(config, logger)
	app.FatalIfError(err, "")

	for _, segment := range segments {
		// A failed extraction leaves the arrangement usable, so keep going.
		if _, err := arrangement.Insert(segment); err != nil {
			logger.Error("insert failed", zap.Error(err))
		}
	}

	options := internal.RenderOptions{ShowLines: *lines, ShowDebug: *debug}
	app.FatalIfError(internal.SavePNG(arrangement, options, *out), "")
	if *preview {
		internal.Preview(*out)
	}

	if *dotPath != "" {
		b, err := arrangement.Graph().DOT("arrangement")
		app.FatalIfError(err, "")
		app.FatalIfError(os.WriteFile(*dotPath, b, 0o644), "writing %s", *dotPath)
	}

	if *dump {
		for _, record := range arrangement.Faces() {
			pretty.Println(record)
		}
	}

	stats := arrangement.Stats()
	fmt.Printf("%d segments, %d points, %d faces\n", stats.Segments, stats.Points, stats.Faces)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func loadConfig() (internal.Config, error) {
	config := internal.DefaultConfig()
	if *configPath != "" {
		var err error
		if config, err = internal.LoadConfig(*configPath); err != nil {
			return config, err
		}
	}
	if *width > 0 {
		config.Canvas.Width = *width
	}
	if *height > 0 {
		config.Canvas.Height = *height
	}
	switch *frame {
	case "on":
		config.Canvas.Frame = true
	case "off":
		config.Canvas.Frame = false
	}
	if *seed != 0 {
		config.Seed = *seed
	}
	if *dedup != "" {
		config.Dedup = internal.DedupPolicy(*dedup)
	}
	return config, config.Validate()
}

func readInput(path, format string) ([]internal.RawSegment, error) {
	var in io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		in = f
	}

	if format == "auto" {
		format = "text"
		if strings.EqualFold(filepath.Ext(path), ".svg") {
			format = "svg"
		}
	}
	if format == "svg" {
		return internal.ReadSegmentsSVG(in)
	}
	return internal.ReadSegments(in)
}
