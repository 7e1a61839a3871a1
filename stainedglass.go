// Incremental planar arrangements for stained glass drawings.
//
// Segments are inserted one at a time. After each insertion the package finds
// every crossing with the segments already there, rebuilds the graph of
// crossing points, traces the faces of that graph, and hands back the faces
// that were not colored before, each with a fresh random color.
package stainedglass

import (
	"github.com/osuushi/stainedglass/internal"
	"go.uber.org/zap"
)

type Point = internal.Point
type RawSegment = internal.RawSegment
type Segment = internal.Segment
type FaceRecord = internal.FaceRecord
type Config = internal.Config
type Stats = internal.Stats
type Arrangement = internal.Arrangement
type InsertResult = internal.InsertResult
type RenderOptions = internal.RenderOptions

var ErrInconsistentEmbedding = internal.ErrInconsistentEmbedding

func DefaultConfig() Config {
	return internal.DefaultConfig()
}

func LoadConfig(path string) (Config, error) {
	return internal.LoadConfig(path)
}

// Create an empty arrangement. A nil logger discards all logging.
func New(config Config, logger *zap.Logger) (*Arrangement, error) {
	return internal.New(config, logger)
}

// Build an arrangement from a batch of segments, inserted in order. The
// arrangement is returned even on error, holding everything inserted up to and
// including the segment that failed.
func Build(config Config, segments ...RawSegment) (result *Arrangement, err error) {
	defer func() {
		recoveredErr := internal.HandlePanicRecover(recover())
		if recoveredErr != nil {
			err = recoveredErr
		}
	}()
	result, err = internal.New(config, nil)
	if err != nil {
		return nil, err
	}
	for _, segment := range segments {
		if _, err = result.Insert(segment); err != nil {
			return result, err
		}
	}
	return result, nil
}
