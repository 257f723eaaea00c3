// Package codec implements the wire framing and encryption transforms for
// both RCON protocol generations.
//
// A codec turns outgoing command payloads into complete frames and
// reassembles inbound frames from an arbitrary byte stream, buffering any
// incomplete tail. Decoding never assumes read-boundary alignment: frames
// may arrive split across several reads or packed several to a read.
//
// The byte-level differences between the legacy and the modern generation
// live entirely behind the IFrameCodec interface:
//
//   - NewV2Codec: JSON envelope bodies; outgoing frames are XOR-encrypted in
//     full once the handshake key is installed, inbound frames carry a
//     plaintext header and an encrypted body. The first 4 bytes the server
//     sends (a legacy-era key announcement) are discarded.
//
//   - NewV1Codec: plain text bodies; the header stays plaintext in both
//     directions and bodies are XOR-encrypted with the 4 byte key the
//     server announces on connect.
package codec
