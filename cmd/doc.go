// Package cmd implements the command-line interface for administering a
// Hell Let Loose game server over RCON. It provides a hierarchical command
// structure built on top of the client package.
//
// The package is organized into several subpackages:
//
//   - admin: Moderation commands (broadcast, kick, ban, map changes, ...)
//   - info: Read-only queries (players, session, config, rotation, ...)
//   - exec: Raw command execution and notification watching
//   - perf: Benchmarking tool for command round-trip latency
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See hllrcon -help for a list of all commands.
package cmd
