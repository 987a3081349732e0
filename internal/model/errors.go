package model

import (
	"errors"
	"fmt"
)

// Kind classifies failures so callers can decide how to react to them.
type Kind int

// Error kinds.
const (
	KindUnknown Kind = iota
	KindEnvironmentMissing
	KindConfigLoad
	KindSubprocessSpawn
	KindSubprocessExit
	KindFileRead
	KindFileWrite
	KindUTF8Decode
)

var kindNames = map[Kind]string{
	KindUnknown:            "unknown",
	KindEnvironmentMissing: "environment missing",
	KindConfigLoad:         "config load",
	KindSubprocessSpawn:    "subprocess spawn",
	KindSubprocessExit:     "subprocess exit",
	KindFileRead:           "file read",
	KindFileWrite:          "file write",
	KindUTF8Decode:         "utf-8 decode",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sentinel errors, one per kind, for use with errors.Is.
var (
	ErrEnvironmentMissing = &Error{Kind: KindEnvironmentMissing}
	ErrConfigLoad         = &Error{Kind: KindConfigLoad}
	ErrSubprocessSpawn    = &Error{Kind: KindSubprocessSpawn}
	ErrSubprocessExit     = &Error{Kind: KindSubprocessExit}
	ErrFileRead           = &Error{Kind: KindFileRead}
	ErrFileWrite          = &Error{Kind: KindFileWrite}
	ErrUTF8Decode         = &Error{Kind: KindUTF8Decode}
)

// Error is a failure tagged with a Kind.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// NewError constructs an Error of the given kind.
func NewError(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Op != "":
		return e.Op
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

// Unwrap exposes the underlying error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the outermost *Error in err's chain,
// or KindUnknown if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
