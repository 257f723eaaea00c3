package codec

import (
	"encoding/binary"

	"github.com/2KU77B0N3S/hllrcon/protocol/common"
)

const (
	// HeaderSize is the size of the frame header: a little-endian uint32
	// request id followed by a little-endian uint32 body length.
	HeaderSize = 8

	// LegacyKeySize is the size of the XOR key the server announces as raw
	// bytes immediately after accepting a connection.
	LegacyKeySize = 4

	// MaxFrameSize is the upper bound accepted for a declared body length.
	// Anything larger is treated as a framing desync and fails the
	// connection.
	MaxFrameSize = 8 << 20
)

// Frame is one length-delimited unit of wire data after decryption.
type Frame struct {
	RequestID uint32
	Body      []byte
}

// IFrameCodec is the interface for the per-generation framing strategies.
// EncodeRequest may be called from any goroutine; Feed must only be called
// from the connection's single reader.
type IFrameCodec interface {
	// EncodeRequest produces the complete wire frame for a packed request
	// body, applying the encryption transform if a key is installed.
	EncodeRequest(requestID uint32, body []byte) []byte

	// Feed consumes raw bytes from the socket and returns all frames that
	// became complete, retaining any incomplete tail internally. A non-nil
	// error means the stream can no longer be trusted; frames returned
	// alongside it were decoded before the failure.
	Feed(p []byte) ([]Frame, error)

	// SetKey installs the encryption key derived from the handshake.
	SetKey(key []byte)

	// Encrypted reports whether an encryption key is installed.
	Encrypted() bool
}

// New returns the codec for the given protocol generation.
func New(version int) IFrameCodec {
	if version == common.ProtocolV1 {
		return NewV1Codec()
	}
	return NewV2Codec(true)
}

func putHeader(frame []byte, requestID uint32, bodyLen int) {
	binary.LittleEndian.PutUint32(frame[0:4], requestID)
	binary.LittleEndian.PutUint32(frame[4:8], uint32(bodyLen))
}

func parseHeader(header []byte) (requestID uint32, bodyLen uint32) {
	return binary.LittleEndian.Uint32(header[0:4]), binary.LittleEndian.Uint32(header[4:8])
}
