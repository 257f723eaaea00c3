package codec

import (
	"bytes"
	"testing"
)

// TestXORSymmetry verifies that applying the transform twice restores the
// input for various key lengths and offsets.
func TestXORSymmetry(t *testing.T) {
	payload := []byte("the quick brown fox jumps over the lazy dog")
	keys := [][]byte{
		{0x01},
		{0xde, 0xad, 0xbe, 0xef},
		[]byte("longer-key-than-the-usual-four-bytes"),
	}

	for _, key := range keys {
		for _, offset := range []int{0, 1, 7, 8, 100} {
			encrypted := XOR(key, payload, offset)
			if bytes.Equal(encrypted, payload) {
				t.Errorf("key %x offset %d: transform was a no-op", key, offset)
			}
			restored := XOR(key, encrypted, offset)
			if !bytes.Equal(restored, payload) {
				t.Errorf("key %x offset %d: round trip mismatch: %q", key, offset, restored)
			}
		}
	}
}

// TestXORNilKeyIsIdentity verifies that a missing key passes data through
// unchanged but still copies it.
func TestXORNilKeyIsIdentity(t *testing.T) {
	payload := []byte("plaintext")

	out := XOR(nil, payload, 3)
	if !bytes.Equal(out, payload) {
		t.Fatalf("nil key changed the payload: %q", out)
	}

	// The result must be a copy, not an alias.
	out[0] = 'X'
	if payload[0] == 'X' {
		t.Error("XOR with nil key aliased the input slice")
	}
}

// TestXOROffsetContinuation verifies that encrypting a frame in two parts
// with a continued offset equals encrypting it in one piece.
func TestXOROffsetContinuation(t *testing.T) {
	key := []byte{0x10, 0x20, 0x30}
	frame := []byte("0123456789abcdef")

	whole := XOR(key, frame, 0)
	head := XOR(key, frame[:8], 0)
	tail := XOR(key, frame[8:], 8)

	if !bytes.Equal(whole[:8], head) || !bytes.Equal(whole[8:], tail) {
		t.Error("split transform with continued offset diverges from whole-frame transform")
	}
}
