// Package errkind defines the closed set of failure classes surfaced by the store.
//
// Internal packages classify every failure they return with one of the kinds
// below; the root package re-exports them so callers can match with errors.Is.
package errkind

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
//
// A Kind is itself an error so it can be used as an errors.Is target:
//
//	if errors.Is(err, errkind.IO) { ... }
type Kind uint8

const (
	// IO covers directory/file create, read, write and remove failures.
	IO Kind = iota + 1
	// Encoding covers serialize/deserialize failures of the vector record format.
	Encoding
	// TextEncoding reports index entry bytes that are not valid UTF-8.
	TextEncoding
	// PathConversion reports a location or id that cannot be rendered as a path.
	PathConversion
)

func (k Kind) String() string {
	switch k {
	case IO:
		return "io failure"
	case Encoding:
		return "encoding failure"
	case TextEncoding:
		return "text encoding failure"
	case PathConversion:
		return "path conversion failure"
	default:
		return fmt.Sprintf("unknown failure(%d)", uint8(k))
	}
}

// Error implements error.
func (k Kind) Error() string { return k.String() }

// Error is a classified failure.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg += ": " + e.Kind.String()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the Kind of e.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// New returns a classified error.
func New(kind Kind, op, path string, err error) error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// Of returns the kind of the first classified error in err's chain.
func Of(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
