package codec

// XOR applies the repeating-key XOR transform to p, starting at the given
// offset into the key stream, and returns the result as a new slice. The
// transform is symmetric: applying it twice with the same key and offset
// yields the input. A nil or empty key is the identity transform.
//
// The offset matters because outgoing v2 frames are encrypted in full: the
// body sits 8 bytes into the key stream, not at its start.
func XOR(key, p []byte, offset int) []byte {
	out := make([]byte, len(p))
	if len(key) == 0 {
		copy(out, p)
		return out
	}
	for i, b := range p {
		out[i] = b ^ key[(offset+i)%len(key)]
	}
	return out
}
