package codec

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/2KU77B0N3S/hllrcon/protocol/common"
)

// NewV2Codec creates the codec for the modern protocol generation.
//
// When skipLegacyKey is set, the first LegacyKeySize bytes fed into the
// decoder are discarded: the server still announces the legacy 4 byte XOR
// key on every fresh connection, which a v2 client ignores.
func NewV2Codec(skipLegacyKey bool) IFrameCodec {
	c := &v2CodecImpl{}
	if skipLegacyKey {
		c.discard = LegacyKeySize
	}
	return c
}

// v2CodecImpl implements the IFrameCodec interface for the modern
// generation. Requests are encrypted header included; responses arrive with
// a plaintext header and an encrypted body keyed from offset zero.
type v2CodecImpl struct {
	mu      sync.RWMutex // guards key against SetKey during handshake
	key     []byte
	buf     []byte // incomplete inbound tail, owned by the single reader
	discard int    // legacy key bytes still to skip
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.IFrameCodec)
// --------------------------------------------------------------------------

func (c *v2CodecImpl) EncodeRequest(requestID uint32, body []byte) []byte {
	frame := make([]byte, HeaderSize+len(body))
	putHeader(frame, requestID, len(body))
	copy(frame[HeaderSize:], body)
	return XOR(c.currentKey(), frame, 0)
}

func (c *v2CodecImpl) Feed(p []byte) ([]Frame, error) {
	if c.discard > 0 {
		n := min(c.discard, len(p))
		c.discard -= n
		p = p[n:]
		log.Trace().Int("bytes", n).Msg("discarded legacy xor key announcement")
	}
	c.buf = append(c.buf, p...)

	var frames []Frame
	for {
		if len(c.buf) < HeaderSize {
			return frames, nil
		}
		requestID, bodyLen := parseHeader(c.buf)
		if bodyLen == 0 || bodyLen > MaxFrameSize {
			return frames, &common.DecodeError{
				Reason: fmt.Sprintf("implausible body length %d for request id %d", bodyLen, requestID),
			}
		}
		total := HeaderSize + int(bodyLen)
		if len(c.buf) < total {
			return frames, nil
		}
		frames = append(frames, Frame{
			RequestID: requestID,
			Body:      XOR(c.currentKey(), c.buf[HeaderSize:total], 0),
		})
		c.buf = append(c.buf[:0], c.buf[total:]...)
	}
}

func (c *v2CodecImpl) SetKey(key []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key = append([]byte(nil), key...)
}

func (c *v2CodecImpl) Encrypted() bool {
	return len(c.currentKey()) > 0
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func (c *v2CodecImpl) currentKey() []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.key
}
