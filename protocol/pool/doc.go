// Package pool multiplexes commands over a fixed set of sessions to one
// server.
//
// Each slot is a self-healing session (see the session package); the pool
// adds dispatch on top: an incoming command goes to the slot with the
// fewest queued or executing commands, with a rotating starting offset so
// equally loaded slots are used evenly.
//
// The pool is safe for concurrent use. Closing it drains every slot and
// fails further calls with ErrPoolClosed.
package pool
