// Package session implements the reconnecting session: a stable logical
// endpoint that wraps one physical connection at a time and replaces it
// transparently when it fails.
//
// The session is an explicit state machine:
//
//	Disconnected -> Handshaking -> Ready
//	Ready        -> Disconnected        (socket failure, auto-reconnect)
//	Handshaking  -> Faulted             (handshake rejected / retries exhausted)
//	Faulted      -> Disconnected        (only via an explicit Reset)
//	any          -> Draining            (Close; terminal)
//
// Reconnection attempts use exponential backoff with jitter, bounded by a
// maximum delay and an optional attempt budget. Every attempt re-runs the
// full connect plus handshake sequence, so the encryption context is always
// fresh. Callers submitting commands while the session is not Ready wait in
// a bounded queue for readiness instead of being silently dropped; a full
// queue or a faulted session fails the command immediately, distinguishing
// "never sent" from "sent, outcome unknown".
package session
