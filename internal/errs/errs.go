package errs

import (
	"errors"
	"fmt"
)

// Kind classifies every failure the pipeline can surface. There is no retry
// and no partial success: any kind aborts the run.
type Kind string

const (
	Configuration     Kind = "configuration"
	ImageDecode       Kind = "image_decode"
	DimensionMismatch Kind = "dimension_mismatch"
	Encoding          Kind = "encoding"
	Lifecycle         Kind = "lifecycle"
)

// Error carries the failure kind plus the offending file and frame index when
// known, so the shell can report something actionable.
type Error struct {
	Kind  Kind
	Path  string
	Index int
	Msg   string
	Err   error
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Index: -1, Msg: msg}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Index: -1, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Index: -1, Msg: msg, Err: err}
}

func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

func (e *Error) WithIndex(index int) *Error {
	e.Index = index
	return e
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	if e.Path != "" {
		msg += fmt.Sprintf(" (file %s)", e.Path)
	}
	if e.Index >= 0 {
		msg += fmt.Sprintf(" (frame %d)", e.Index)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err or anything it wraps is an Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}

// KindOf extracts the kind from err, or "" when err carries none.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
