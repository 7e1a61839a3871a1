package internal

import "github.com/pkg/errors"

// Threading errors through every step of wedge construction and face tracing
// would add a ton of noise to the code. Instead, we use panics, and the
// insertion pipeline recovers to convert to an error.

// The wedge table does not describe a consistent embedding. This always means
// a bug upstream (an edge without its reverse wedge, for example).
var ErrInconsistentEmbedding = errors.New("inconsistent embedding")

// Panic with an error wrapping ErrInconsistentEmbedding.
func fatalf(format string, args ...interface{}) {
	panic(errors.Wrapf(ErrInconsistentEmbedding, format, args...))
}

// Convert a panic raised by fatalf back into its error. Anything else,
// including runtime errors, is panicked again.
func HandlePanicRecover(r interface{}) error {
	if r == nil {
		return nil
	}
	if err, ok := r.(error); ok && errors.Cause(err) == ErrInconsistentEmbedding {
		return err
	}
	panic(r)
}
