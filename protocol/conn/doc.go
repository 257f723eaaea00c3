// Package conn implements a single physical RCON connection: TCP dial,
// handshake negotiation, the frame read loop, and the request correlator
// that pairs asynchronous responses with their waiting callers.
//
// A Connection is single-use. Once its socket fails or Close is called it
// enters a terminal closed state, fails every outstanding request with a
// connection-lost error and rejects new submissions; recovery is the job of
// the session layer, which replaces the Connection wholesale.
//
// Concurrency model: many callers may Execute concurrently. Physical writes
// are serialized by a mutex so partial frames never interleave on the wire;
// the socket has exactly one reader, the internal read loop, which feeds the
// codec and resolves pending requests through the correlator.
package conn
