package common

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Client configuration struct
// --------------------------------------------------------------------------

// Default values applied by WithDefaults for zero-valued fields.
const (
	DefaultPoolSize             = 1
	DefaultTimeoutSecond        = 10
	DefaultConnectTimeoutSecond = 15
	DefaultHandshakeTimeoutSec  = 10
	DefaultQueueSize            = 32
	DefaultBackoffBaseMs        = 250
	DefaultBackoffMaxMs         = 30_000
)

// ClientConfig holds all parameters the engine needs to reach and
// authenticate against a game server. Credential and configuration loading
// is the caller's concern (see cmd/util); the engine only consumes the
// resulting struct.
type ClientConfig struct {
	// Connection target
	Host     string
	Port     int
	Password string

	// Version selects the protocol generation (ProtocolV1 or ProtocolV2).
	Version int

	// PoolSize is the number of concurrent sessions. 1 gives strict
	// per-connection ordering; larger values increase throughput.
	PoolSize int

	// Timeouts (seconds)
	TimeoutSecond          int // default per-command deadline, 0 = none
	ConnectTimeoutSecond   int
	HandshakeTimeoutSecond int

	// QueueSize bounds how many callers may wait for a session to become
	// ready while it is connecting or backing off.
	QueueSize int

	// Reconnect backoff policy. MaxRetries 0 means retry indefinitely.
	ReconnectMaxRetries  int
	ReconnectBaseDelayMs int
	ReconnectMaxDelayMs  int
}

// WithDefaults returns a copy of the config with all zero-valued tunables
// replaced by their defaults. It is idempotent and safe to call at every
// layer boundary.
func (c ClientConfig) WithDefaults() ClientConfig {
	if c.Version == 0 {
		c.Version = ProtocolV2
	}
	if c.PoolSize <= 0 {
		c.PoolSize = DefaultPoolSize
	}
	if c.TimeoutSecond < 0 {
		c.TimeoutSecond = 0
	} else if c.TimeoutSecond == 0 {
		c.TimeoutSecond = DefaultTimeoutSecond
	}
	if c.ConnectTimeoutSecond <= 0 {
		c.ConnectTimeoutSecond = DefaultConnectTimeoutSecond
	}
	if c.HandshakeTimeoutSecond <= 0 {
		c.HandshakeTimeoutSecond = DefaultHandshakeTimeoutSec
	}
	if c.QueueSize <= 0 {
		c.QueueSize = DefaultQueueSize
	}
	if c.ReconnectBaseDelayMs <= 0 {
		c.ReconnectBaseDelayMs = DefaultBackoffBaseMs
	}
	if c.ReconnectMaxDelayMs <= 0 {
		c.ReconnectMaxDelayMs = DefaultBackoffMaxMs
	}
	return c
}

// Validate checks the parts of the config that have no sensible default.
func (c *ClientConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("no host provided")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if v := c.Version; v != 0 && v != ProtocolV1 && v != ProtocolV2 {
		return fmt.Errorf("invalid protocol version %d (must be %d or %d)", v, ProtocolV1, ProtocolV2)
	}
	return nil
}

// Addr returns the host:port dial target.
func (c *ClientConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *ClientConfig) CommandTimeout() time.Duration {
	return time.Duration(c.TimeoutSecond) * time.Second
}

func (c *ClientConfig) ConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeoutSecond) * time.Second
}

func (c *ClientConfig) HandshakeTimeout() time.Duration {
	return time.Duration(c.HandshakeTimeoutSecond) * time.Second
}

func (c *ClientConfig) BackoffBase() time.Duration {
	return time.Duration(c.ReconnectBaseDelayMs) * time.Millisecond
}

func (c *ClientConfig) BackoffMax() time.Duration {
	return time.Duration(c.ReconnectMaxDelayMs) * time.Millisecond
}

// String returns a formatted string representation of the configuration.
// The password is never included.
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("RCON Server")
	addField("Address", c.Addr())
	addField("Protocol Version", strconv.Itoa(c.Version))

	addSection("Client")
	addField("Pool Size", strconv.Itoa(c.PoolSize))
	addField("Command Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Connect Timeout", fmt.Sprintf("%d sec", c.ConnectTimeoutSecond))
	addField("Handshake Timeout", fmt.Sprintf("%d sec", c.HandshakeTimeoutSecond))
	addField("Queue Size", strconv.Itoa(c.QueueSize))

	addSection("Reconnect")
	if c.ReconnectMaxRetries > 0 {
		addField("Max Retries", strconv.Itoa(c.ReconnectMaxRetries))
	} else {
		addField("Max Retries", "unlimited")
	}
	addField("Backoff Base", fmt.Sprintf("%d ms", c.ReconnectBaseDelayMs))
	addField("Backoff Max", fmt.Sprintf("%d ms", c.ReconnectMaxDelayMs))

	return sb.String()
}
