package conn

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/2KU77B0N3S/hllrcon/protocol/codec"
	"github.com/2KU77B0N3S/hllrcon/protocol/common"
)

// exchangeFunc sends one command over the connection being negotiated and
// awaits its correlated response. During negotiation no auth token is
// installed yet, so requests go out with the blank placeholder token.
type exchangeFunc func(ctx context.Context, name string, version int, body string) (*common.Response, error)

// IHandshaker is the per-generation negotiation strategy, run once per
// physical connection before it is handed to callers.
//
// Prelude consumes any unframed bytes the server emits directly after
// accept, before the read loop takes ownership of the socket. Negotiate
// performs the framed part of the exchange through the regular request
// path and returns the auth token to inject into subsequent requests
// (empty for generations without token auth).
type IHandshaker interface {
	Prelude(raw net.Conn, cd codec.IFrameCodec, timeout time.Duration) error
	Negotiate(ctx context.Context, exchange exchangeFunc, cd codec.IFrameCodec) (authToken string, err error)
}

// newHandshaker returns the handshake strategy for the given generation.
func newHandshaker(version int, password string) IHandshaker {
	if version == common.ProtocolV1 {
		return &v1HandshakerImpl{password: password}
	}
	return &v2HandshakerImpl{password: password}
}

// --------------------------------------------------------------------------
// Modern generation (key exchange + token login)
// --------------------------------------------------------------------------

type v2HandshakerImpl struct {
	password string
}

// Prelude is a no-op: the v2 codec discards the legacy key announcement
// itself, so the read loop can start immediately.
func (h *v2HandshakerImpl) Prelude(net.Conn, codec.IFrameCodec, time.Duration) error {
	return nil
}

func (h *v2HandshakerImpl) Negotiate(ctx context.Context, exchange exchangeFunc, cd codec.IFrameCodec) (string, error) {
	// ServerConnect travels unencrypted and answers with the base64 XOR
	// key all further traffic is encrypted with.
	resp, err := exchange(ctx, "ServerConnect", common.ProtocolV2, "")
	if err != nil {
		return "", err
	}
	if err := rejection(resp); err != nil {
		return "", err
	}
	key, err := base64.StdEncoding.DecodeString(resp.ContentBody)
	if err != nil {
		return "", &common.DecodeError{Reason: fmt.Sprintf("ServerConnect key is not valid base64: %v", err)}
	}
	cd.SetKey(key)

	resp, err = exchange(ctx, "Login", common.ProtocolV2, h.password)
	if err != nil {
		return "", err
	}
	if err := rejection(resp); err != nil {
		return "", err
	}
	return resp.ContentBody, nil
}

func rejection(resp *common.Response) error {
	if resp.StatusCode == common.StatusOK {
		return nil
	}
	return &common.HandshakeRejectedError{
		StatusCode: resp.StatusCode,
		Message:    resp.StatusMessage,
	}
}

// --------------------------------------------------------------------------
// Legacy generation (key announcement + plain text login)
// --------------------------------------------------------------------------

type v1HandshakerImpl struct {
	password string
}

// Prelude reads the 4 raw key bytes the legacy server sends before any
// framed traffic and installs them as the cipher key.
func (h *v1HandshakerImpl) Prelude(raw net.Conn, cd codec.IFrameCodec, timeout time.Duration) error {
	if timeout > 0 {
		if err := raw.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			return err
		}
		defer raw.SetReadDeadline(time.Time{})
	}
	key := make([]byte, codec.LegacyKeySize)
	if _, err := io.ReadFull(raw, key); err != nil {
		return fmt.Errorf("read legacy xor key: %w", err)
	}
	cd.SetKey(key)
	return nil
}

func (h *v1HandshakerImpl) Negotiate(ctx context.Context, exchange exchangeFunc, _ codec.IFrameCodec) (string, error) {
	resp, err := exchange(ctx, "login", common.ProtocolV1, h.password)
	if err != nil {
		return "", err
	}
	if resp.ContentBody != "SUCCESS" {
		return "", &common.HandshakeRejectedError{
			StatusCode: common.StatusUnauthorized,
			Message:    "login rejected",
		}
	}
	// The legacy generation has no auth token; the login binds the
	// connection itself.
	return "", nil
}
