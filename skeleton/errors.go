package skeleton

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrRaiseNotLegal is returned by RaiseBounds when RAISE is not a legal
	// action in the state.
	ErrRaiseNotLegal = errors.New("raise is not a legal action")

	// ErrSessionClosed is returned when the session has already ended.
	ErrSessionClosed = errors.New("session closed")
)

// TransportError means the engine connection failed or was reset.
type TransportError struct {
	Op  string
	Err error
}

func (e TransportError) Error() string {
	return fmt.Sprintf("transport error during %s: %v", e.Op, e.Err)
}

func (e TransportError) Unwrap() error {
	return e.Err
}

// MalformedMessageError means a line from the engine could not be decoded.
// Line holds the raw text for diagnosis.
type MalformedMessageError struct {
	Line   string
	Clause string
	Reason string
}

func (e MalformedMessageError) Error() string {
	if e.Clause == "" {
		return fmt.Sprintf("malformed engine message %q: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed engine message %q (clause %q): %s", e.Line, e.Clause, e.Reason)
}

// IllegalActionError means a bot returned an action outside the legal set or
// the raise bounds of the state it responded to.
type IllegalActionError struct {
	Action Action
	Legal  ActionSet
	Min    int
	Max    int
}

func (e IllegalActionError) Error() string {
	if e.Action.Type == ActionRaise && e.Legal.Contains(ActionRaise) {
		return fmt.Sprintf("illegal action %s: raise must be within [%d, %d]", e.Action, e.Min, e.Max)
	}
	return fmt.Sprintf("illegal action %s (legal: %s)", e.Action, e.Legal)
}

// AccessViolationError means a seat tried to read concealed data of the
// other seat.
type AccessViolationError struct {
	Field  string
	Seat   int
	Viewer int
}

func (e AccessViolationError) Error() string {
	return fmt.Sprintf("seat %d cannot read %s of seat %d", e.Viewer, e.Field, e.Seat)
}
