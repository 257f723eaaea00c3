// Package common contains the core data structures shared across the RCON
// protocol engine: the request/response wire messages, the client
// configuration, and the error taxonomy surfaced to callers.
//
// The package is intentionally free of networking code so that both the
// engine packages (codec, conn, session, pool) and the typed command facade
// can depend on it without cycles.
package common
