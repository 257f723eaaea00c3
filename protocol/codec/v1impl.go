package codec

import (
	"fmt"
	"sync"

	"github.com/2KU77B0N3S/hllrcon/protocol/common"
)

// NewV1Codec creates the codec for the legacy protocol generation. The
// header stays plaintext in both directions; bodies are XOR-encrypted once
// the connection prelude has captured the server's 4 byte key. An empty
// body is legal on inbound frames (the legacy server signals failure with
// an empty reply).
func NewV1Codec() IFrameCodec {
	return &v1CodecImpl{}
}

// v1CodecImpl implements the IFrameCodec interface for the legacy generation.
type v1CodecImpl struct {
	mu  sync.RWMutex
	key []byte
	buf []byte
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.IFrameCodec)
// --------------------------------------------------------------------------

func (c *v1CodecImpl) EncodeRequest(requestID uint32, body []byte) []byte {
	frame := make([]byte, HeaderSize+len(body))
	putHeader(frame, requestID, len(body))
	copy(frame[HeaderSize:], XOR(c.currentKey(), body, 0))
	return frame
}

func (c *v1CodecImpl) Feed(p []byte) ([]Frame, error) {
	c.buf = append(c.buf, p...)

	var frames []Frame
	for {
		if len(c.buf) < HeaderSize {
			return frames, nil
		}
		requestID, bodyLen := parseHeader(c.buf)
		if bodyLen > MaxFrameSize {
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

func (c *v1CodecImpl) SetKey(key []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key = append([]byte(nil), key...)
}

func (c *v1CodecImpl) Encrypted() bool {
	return len(c.currentKey()) > 0
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func (c *v1CodecImpl) currentKey() []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.key
}
