// Package ierr defines the error taxonomy shared by the interpreter and the
// planner: every failure that can reach a caller of the pipeline is one of
// the six kinds named here, each matchable with errors.Is against the
// exported sentinel, with a human-readable message layered on top.
package ierr

import (
	"errors"
	"fmt"
)

var (
	// ErrParseEmpty means the external parser produced no parse at all.
	ErrParseEmpty = errors.New("no parse was produced for the given utterance")

	// ErrNoMatchingObject means a referring expression resolved to zero
	// identifiers.
	ErrNoMatchingObject = errors.New("no object in the world matches that description")

	// ErrNoValidInterpretation means every candidate pairing the command
	// could produce violates the physical-legality law, or the quantifier
	// combination itself is illegal (e.g. "all X inside all Y").
	ErrNoValidInterpretation = errors.New("no valid interpretation satisfies the laws of physics")

	// ErrAmbiguousThe means a "the"-quantified referring expression still
	// had more than one candidate once the interpretation was built.
	ErrAmbiguousThe = errors.New("that description matches more than one object")

	// ErrSearchTimeout means A* exceeded its wall-clock budget.
	ErrSearchTimeout = errors.New("search exceeded its time budget")

	// ErrNoPath means A* exhausted the reachable state space without
	// finding a goal state.
	ErrNoPath = errors.New("no sequence of actions reaches the goal")
)

// Error is the concrete error type returned from the interpreter and
// planner. Its Error() method gives a technical description suitable for
// logs; Clarification gives the message a caller should show to an end
// user, which for an ambiguous-the error enumerates the candidates.
type Error struct {
	msg           string
	clarification string
	cause         error
}

func (e *Error) Error() string {
	return e.msg
}

// Clarification returns the human-facing message for the error. If none was
// set explicitly, it is the same as Error().
func (e *Error) Clarification() string {
	if e.clarification != "" {
		return e.clarification
	}
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

func new(cause error, msg string) error {
	return &Error{msg: msg, cause: cause}
}

func newf(cause error, format string, a ...interface{}) error {
	return new(cause, fmt.Sprintf(format, a...))
}

// NoMatchingObject builds a no-matching-object error for the given
// human-readable description of the referring expression that failed to
// resolve.
func NoMatchingObject(description string) error {
	return newf(ErrNoMatchingObject, "no object matches %s", description)
}

// NoValidInterpretation builds a no-valid-interpretation error, naming the
// reason no candidate survived (an illegal quantifier combination, or every
// pair failing the physical law).
func NoValidInterpretation(reason string) error {
	return newf(ErrNoValidInterpretation, "no valid interpretation: %s", reason)
}

// AmbiguousThe builds an ambiguous-the error whose Clarification lists the
// conflicting candidates.
func AmbiguousThe(clarification string) error {
	return &Error{
		msg:           "ambiguous reference: " + clarification,
		clarification: clarification,
		cause:         ErrAmbiguousThe,
	}
}

// SearchTimeout builds a search-timeout error.
func SearchTimeout() error {
	return new(ErrSearchTimeout, "search exceeded its time budget")
}

// NoPath builds a no-path error.
func NoPath() error {
	return new(ErrNoPath, "no sequence of actions reaches the goal")
}

// ParseEmpty builds a parse-empty error.
func ParseEmpty() error {
	return new(ErrParseEmpty, "no parse was produced for the given utterance")
}

// Clarification returns the human-facing message for any error produced by
// this package, falling back to err.Error() for errors from elsewhere.
func Clarification(err error) string {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Clarification()
	}
	return err.Error()
}
