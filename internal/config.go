package internal

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// How the face registry decides that a freshly traced face is just an old
// region seen again.
type DedupPolicy string

const (
	// Suppress a face whose vertex set contains every vertex of a stored face.
	// This catches faces that merely gained a vertex on one of their edges.
	DedupSuperset DedupPolicy = "superset"
	// Suppress a face whose vertex set is a subset or a superset of a stored
	// face. This also suppresses faces split off by a chord between existing
	// vertices.
	DedupContainment DedupPolicy = "containment"
	// Compare canonical keys only.
	DedupExact DedupPolicy = "exact"
)

type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// Insert four segments tracing the canvas border, so the whole canvas is
	// the first face.
	Frame       bool    `yaml:"frame"`
	FrameOffset float64 `yaml:"frame_offset"`
}

type Config struct {
	// Each drawn segment is pushed out by this much at both ends, so segments
	// drawn to meet end to end actually cross.
	ExtendMargin float64 `yaml:"extend_margin"`
	// Intersection coordinates closer than this share one point id. Zero means
	// exact float equality.
	SnapPrecision float64      `yaml:"snap_precision"`
	Dedup         DedupPolicy  `yaml:"dedup"`
	Seed          int64        `yaml:"seed"`
	ColorMin      int          `yaml:"color_min"`
	ColorMax      int          `yaml:"color_max"`
	Canvas        CanvasConfig `yaml:"canvas"`
}

func DefaultConfig() Config {
	return Config{
		ExtendMargin:  3,
		SnapPrecision: 1e-6,
		Dedup:         DedupSuperset,
		ColorMin:      50,
		ColorMax:      200,
		Canvas: CanvasConfig{
			Width:       800,
			Height:      600,
			Frame:       true,
			FrameOffset: 4,
		},
	}
}

// Read a YAML config file on top of the defaults. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return config, errors.Wrap(err, "opening config")
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil {
		return config, errors.Wrapf(err, "decoding config %q", path)
	}
	if err := config.Validate(); err != nil {
		return config, errors.Wrapf(err, "invalid config %q", path)
	}
	return config, nil
}

func (c Config) Validate() error {
	if c.ExtendMargin < 0 {
		return errors.Errorf("extend_margin must not be negative, got %v", c.ExtendMargin)
	}
	if c.SnapPrecision < 0 {
		return errors.Errorf("snap_precision must not be negative, got %v", c.SnapPrecision)
	}
	switch c.Dedup {
	case DedupSuperset, DedupContainment, DedupExact:
	default:
		return errors.Errorf("unknown dedup policy %q", c.Dedup)
	}
	if c.ColorMin < 0 || c.ColorMax > 255 || c.ColorMin > c.ColorMax {
		return errors.Errorf("color range [%d, %d] is not within [0, 255]", c.ColorMin, c.ColorMax)
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return errors.Errorf("canvas must have a positive size, got %vx%v", c.Canvas.Width, c.Canvas.Height)
	}
	return nil
}
