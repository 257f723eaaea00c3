package common

import (
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Sentinel Errors
// --------------------------------------------------------------------------

var (
	// ErrNotConnected is returned when a command cannot even be submitted
	// because no connection is available and none is being established.
	// A command failed with this error was never sent.
	ErrNotConnected = errors.New("hllrcon: not connected")

	// ErrQueueFull is returned when a command cannot be queued while the
	// session is reconnecting because the backlog is exhausted. A command
	// failed with this error was never sent.
	ErrQueueFull = errors.New("hllrcon: command queue is full")

	// ErrConnectionLost is returned for commands that were in flight when
	// the physical connection dropped. Whether the server executed the
	// command is unknown.
	ErrConnectionLost = errors.New("hllrcon: connection lost")

	// ErrCommandTimeout is returned when no matching response arrived
	// within the caller's deadline. The command may still have been
	// executed by the server; callers must treat the outcome as ambiguous.
	ErrCommandTimeout = errors.New("hllrcon: command timed out")

	// ErrPoolClosed is returned once the connection pool has been shut
	// down. A closed pool never accepts new commands.
	ErrPoolClosed = errors.New("hllrcon: pool is closed")

	// ErrUnsupportedVersion is returned by typed commands that have no
	// equivalent in the configured protocol generation.
	ErrUnsupportedVersion = errors.New("hllrcon: command not supported by this protocol generation")
)

// --------------------------------------------------------------------------
// Typed Errors
// --------------------------------------------------------------------------

// HandshakeRejectedError indicates the server explicitly refused the
// authentication or version negotiation. It is never retried automatically:
// the session moves to the Faulted state until the caller resets it,
// typically after supplying new credentials.
type HandshakeRejectedError struct {
	StatusCode StatusCode
	Message    string
}

func (e *HandshakeRejectedError) Error() string {
	return fmt.Sprintf("hllrcon: handshake rejected (%s): %s", e.StatusCode, e.Message)
}

// CommandError indicates the server answered a command with a non-OK status.
// The connection itself remains healthy.
type CommandError struct {
	StatusCode StatusCode
	Message    string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("hllrcon: command failed (%s): %s", e.StatusCode, e.Message)
}

// DecodeError indicates a malformed or undecryptable frame. It is fatal to
// the physical connection: once framing is off, nothing received afterwards
// can be trusted. It usually points at a protocol generation mismatch or an
// encryption key desync.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string {
	return "hllrcon: protocol decode error: " + e.Reason
}
