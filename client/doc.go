// Package client is the high-level command interface to a Hell Let Loose
// server.
//
// A Client owns a connection pool (see protocol/pool) and exposes one typed
// method per console command, handling body encoding, status-code checking
// and response decoding. The generation configured in ClientConfig.Version
// decides whether a command is sent as a v2 JSON envelope or as legacy v1
// text; commands with no legacy equivalent return ErrUnsupportedVersion on
// a v1 client.
//
// For one-shot usage, With runs a function against a temporary client and
// guarantees teardown:
//
//	err := client.With(ctx, cfg, func(c *client.Client) error {
//		return c.Broadcast(ctx, "server restart in 5 minutes")
//	})
package client
