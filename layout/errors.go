package layout

import "fmt"

// ErrorKind classifies the errors layout can produce.
type ErrorKind int

const (
	// ErrKindInput means the caller handed the core data it cannot
	// possibly lay out, e.g. an edge naming a vertex absent from an
	// explicit vertex set.
	ErrKindInput ErrorKind = iota
	// ErrKindInvariant means a stage's own post-condition failed; this
	// should not happen on any input and indicates a bug.
	ErrKindInvariant
)

// Error is the error type returned by the package's exported entry
// points.
type Error struct {
	Kind  ErrorKind
	Stage string
	Msg   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("layout: %s: %s", e.Stage, e.Msg)
}

// InvariantError is panicked by internal stage code when a
// post-condition is violated. Build recovers it and converts it to an
// *Error with ErrKindInvariant.
type InvariantError struct {
	Stage string
	Msg   string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("layout: internal invariant violated in %s: %s", e.Stage, e.Msg)
}

func invariantf(stage, format string, args ...interface{}) {
	panic(&InvariantError{Stage: stage, Msg: fmt.Sprintf(format, args...)})
}
