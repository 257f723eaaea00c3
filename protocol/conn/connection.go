package conn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/2KU77B0N3S/hllrcon/protocol/codec"
	"github.com/2KU77B0N3S/hllrcon/protocol/common"
)

const (
	readBufferSize = 4096

	// notificationBuffer bounds the out-of-band notification channel.
	// Notifications beyond it are dropped, never blocking the read loop.
	notificationBuffer = 64
)

// Connection owns one TCP socket plus its handshake state and codec. It is
// safe for concurrent use by multiple callers; see the package docs for the
// concurrency model.
type Connection struct {
	cfg   common.ClientConfig
	raw   net.Conn
	codec codec.IFrameCodec
	corr  *correlator

	writeMu sync.Mutex // serializes physical writes

	authMu    sync.RWMutex
	authToken string

	notifications chan *common.Response

	closeOnce sync.Once
	closed    chan struct{}
	reasonMu  sync.Mutex
	reason    error
}

// Connect dials the server, runs the handshake for the configured protocol
// generation and returns a ready Connection. A *common.HandshakeRejectedError
// is returned as-is so callers can distinguish the non-retryable rejection
// from transport failures.
func Connect(ctx context.Context, cfg common.ClientConfig) (*Connection, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dialer := net.Dialer{Timeout: cfg.ConnectTimeout()}
	raw, err := dialer.DialContext(ctx, "tcp", cfg.Addr())
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Addr(), err)
	}

	c := &Connection{
		cfg:           cfg,
		raw:           raw,
		codec:         codec.New(cfg.Version),
		corr:          newCorrelator(),
		notifications: make(chan *common.Response, notificationBuffer),
		closed:        make(chan struct{}),
	}

	hs := newHandshaker(cfg.Version, cfg.Password)
	if err := hs.Prelude(raw, c.codec, cfg.HandshakeTimeout()); err != nil {
		raw.Close()
		return nil, err
	}

	go c.readLoop()

	hctx, cancel := context.WithTimeout(ctx, cfg.HandshakeTimeout())
	defer cancel()

	token, err := hs.Negotiate(hctx, c.Execute, c.codec)
	if err != nil {
		c.teardown(err)
		var rejected *common.HandshakeRejectedError
		if errors.As(err, &rejected) {
			return nil, err
		}
		return nil, fmt.Errorf("handshake with %s: %w", cfg.Addr(), err)
	}
	c.setAuthToken(token)

	handshakesTotal.Inc()
	log.Info().
		Str("addr", cfg.Addr()).
		Int("version", cfg.Version).
		Bool("encrypted", c.codec.Encrypted()).
		Msg("rcon connection ready")

	return c, nil
}

// Execute submits one command and awaits its correlated response. It blocks
// until the response arrives, ctx is done, or the connection is lost,
// whichever happens first. Every submitted command resolves to exactly one
// of response or error.
func (c *Connection) Execute(ctx context.Context, name string, version int, body string) (*common.Response, error) {
	select {
	case <-c.closed:
		return nil, c.closeReason()
	default:
	}

	payload, err := common.NewRequest(name, version, c.authTokenValue(), body).Pack()
	if err != nil {
		return nil, err
	}

	requestID, ch, err := c.corr.register(ctx)
	if err != nil {
		return nil, err
	}
	frame := c.codec.EncodeRequest(requestID, payload)

	c.writeMu.Lock()
	// The deadline is per command: a fresh value every write, so an
	// expired deadline from an earlier caller cannot fail this one.
	if deadline, ok := ctx.Deadline(); ok {
		c.raw.SetWriteDeadline(deadline)
	} else {
		c.raw.SetWriteDeadline(time.Time{})
	}
	_, werr := c.raw.Write(frame)
	c.writeMu.Unlock()

	if werr != nil {
		c.corr.cancel(requestID)
		werr = fmt.Errorf("write %s: %w", name, werr)
		c.teardown(werr)
		return nil, werr
	}
	requestsTotal.Inc()

	select {
	case res := <-ch:
		if res.err != nil {
			requestErrorsTotal.Inc()
			return nil, res.err
		}
		return res.resp, nil
	case <-ctx.Done():
		c.corr.cancel(requestID)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			requestTimeoutsTotal.Inc()
			return nil, fmt.Errorf("%w: %s", common.ErrCommandTimeout, name)
		}
		return nil, ctx.Err()
	case <-c.closed:
		c.corr.cancel(requestID)
		requestErrorsTotal.Inc()
		return nil, c.closeReason()
	}
}

// Notifications returns the channel server-initiated frames are delivered
// on. The channel is never closed; consumers should additionally select on
// Closed.
func (c *Connection) Notifications() <-chan *common.Response {
	return c.notifications
}

// Closed returns a channel that is closed once the connection is torn down.
func (c *Connection) Closed() <-chan struct{} {
	return c.closed
}

// IsConnected reports whether the connection is still usable.
func (c *Connection) IsConnected() bool {
	select {
	case <-c.closed:
		return false
	default:
		return true
	}
}

// Pending returns the number of in-flight requests.
func (c *Connection) Pending() int {
	return c.corr.pending()
}

// Close tears the connection down, failing all outstanding requests.
func (c *Connection) Close() error {
	c.teardown(nil)
	return nil
}

// --------------------------------------------------------------------------
// Read loop
// --------------------------------------------------------------------------

// readLoop is the single owner of the socket's read path. It feeds raw
// bytes into the codec and dispatches every completed frame until the
// socket fails or a decode error makes the stream untrustworthy.
func (c *Connection) readLoop() {
	buf := make([]byte, readBufferSize)
	for {
		n, err := c.raw.Read(buf)
		if n > 0 {
			frames, derr := c.codec.Feed(buf[:n])
			for _, f := range frames {
				if derr2 := c.dispatch(f); derr2 != nil {
					derr = derr2
					break
				}
			}
			if derr != nil {
				decodeErrorsTotal.Inc()
				log.Error().Err(derr).Str("addr", c.cfg.Addr()).Msg("frame decode failed, dropping connection")
				c.teardown(derr)
				return
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Info().Str("addr", c.cfg.Addr()).Msg("server closed connection")
			}
			c.teardown(err)
			return
		}
	}
}

// dispatch routes one decoded frame: out-of-band notifications to the
// notification channel, everything else to the correlator. A body that
// cannot be unpacked is fatal, most likely an encryption desync.
func (c *Connection) dispatch(f codec.Frame) error {
	resp, err := common.UnpackResponse(f.RequestID, f.Body, c.cfg.Version)
	if err != nil {
		return err
	}
	if f.RequestID == notificationID {
		select {
		case c.notifications <- resp:
		default:
			droppedNotifsTotal.Inc()
			log.Warn().Str("name", resp.Name).Msg("notification channel full, dropping")
		}
		return nil
	}
	if !c.corr.resolve(f.RequestID, resp) {
		droppedFramesTotal.Inc()
		log.Warn().Uint32("request_id", f.RequestID).Msg("no pending request for response, dropping")
	}
	return nil
}

// --------------------------------------------------------------------------
// Teardown
// --------------------------------------------------------------------------

// teardown moves the connection to its terminal closed state exactly once:
// close the socket, fail every pending request, signal watchers.
func (c *Connection) teardown(cause error) {
	c.closeOnce.Do(func() {
		reason := common.ErrConnectionLost
		if cause != nil && !errors.Is(cause, io.EOF) {
			reason = fmt.Errorf("%w: %v", common.ErrConnectionLost, cause)
		}
		c.reasonMu.Lock()
		c.reason = reason
		c.reasonMu.Unlock()

		c.raw.Close()
		close(c.closed)
		c.corr.failAll(reason)

		connectionsLostTotal.Inc()
		log.Debug().Str("addr", c.cfg.Addr()).Err(cause).Msg("rcon connection torn down")
	})
}

func (c *Connection) closeReason() error {
	c.reasonMu.Lock()
	defer c.reasonMu.Unlock()
	if c.reason != nil {
		return c.reason
	}
	return common.ErrConnectionLost
}

func (c *Connection) setAuthToken(token string) {
	c.authMu.Lock()
	defer c.authMu.Unlock()
	c.authToken = token
}

func (c *Connection) authTokenValue() string {
	c.authMu.RLock()
	defer c.authMu.RUnlock()
	return c.authToken
}
