package pine

import (
	"errors"

	"github.com/uname-n/pine/internal/errkind"
)

// ErrorKind classifies every error returned by a Pine operation.
//
// The kinds form a closed set. Each kind is also an error value, so callers
// match with errors.Is:
//
//	if errors.Is(err, pine.IOFailure) { ... }
type ErrorKind = errkind.Kind

const (
	// IOFailure: a directory or file could not be created, read, written or removed.
	IOFailure = errkind.IO
	// EncodingFailure: a vector record could not be serialized or deserialized.
	EncodingFailure = errkind.Encoding
	// TextEncodingFailure: an index entry does not hold valid UTF-8 text.
	TextEncodingFailure = errkind.TextEncoding
	// PathConversionFailure: a location or id cannot be represented as a path.
	PathConversionFailure = errkind.PathConversion
)

// Error is the concrete type of every error returned by a Pine operation.
//
// Op names the internal step that failed and Path the file or directory it
// was working on. The original underlying error (if any) can be accessed via
// errors.Unwrap.
type Error = errkind.Error

// ErrInvalidID is wrapped by the PathConversionFailure returned when an id
// cannot be used as a file name.
var ErrInvalidID = errors.New("invalid id")

// KindOf returns the kind of err, or false if err did not come from Pine.
func KindOf(err error) (ErrorKind, bool) {
	return errkind.Of(err)
}
