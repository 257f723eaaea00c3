package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// --------------------------------------------------------------------------
// Protocol Generations
// --------------------------------------------------------------------------

// The two wire generations spoken by Hell Let Loose game servers. Both use
// the same 8 byte little-endian header (request id + body length); they
// differ in body format and encryption setup.
const (
	// ProtocolV1 is the legacy generation: plain text command bodies,
	// XOR-encrypted with a 4 byte key the server announces on connect.
	ProtocolV1 = 1

	// ProtocolV2 is the modern generation: JSON envelope bodies,
	// XOR-encrypted with a key obtained through the ServerConnect handshake.
	ProtocolV2 = 2
)

// --------------------------------------------------------------------------
// Status Codes
// --------------------------------------------------------------------------

// StatusCode is the RCON response status returned by the game server.
type StatusCode int

const (
	StatusOK            StatusCode = 200
	StatusBadRequest    StatusCode = 400
	StatusUnauthorized  StatusCode = 401
	StatusInternalError StatusCode = 500
)

// String returns the string representation of a StatusCode.
func (s StatusCode) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusBadRequest:
		return "bad request"
	case StatusUnauthorized:
		return "unauthorized"
	case StatusInternalError:
		return "internal server error"
	default:
		return fmt.Sprintf("status %d", int(s))
	}
}

// --------------------------------------------------------------------------
// Request
// --------------------------------------------------------------------------

// Request represents a single outgoing RCON command before framing.
//
// For ProtocolV2 the request is serialized as a compact JSON envelope. The
// server requires every field to be present; an absent auth token is sent as
// a single space, matching the behaviour of the official clients.
type Request struct {
	AuthToken   string `json:"AuthToken"`
	Version     int    `json:"Version"`
	Name        string `json:"Name"`
	ContentBody string `json:"ContentBody"`
}

// NewRequest creates a new request for the given command. An empty authToken
// is substituted with a single space as required by the v2 envelope.
func NewRequest(name string, version int, authToken, contentBody string) *Request {
	if authToken == "" {
		authToken = " "
	}
	return &Request{
		AuthToken:   authToken,
		Version:     version,
		Name:        name,
		ContentBody: contentBody,
	}
}

// Pack serializes the request body for the wire. The framing header and the
// encryption transform are applied later by the codec.
func (r *Request) Pack() ([]byte, error) {
	if r.Version == ProtocolV1 {
		// Legacy requests are plain "command[ args]" text.
		if r.ContentBody == "" {
			return []byte(r.Name), nil
		}
		return []byte(r.Name + " " + r.ContentBody), nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("pack request %q: %w", r.Name, err)
	}
	return b, nil
}

// --------------------------------------------------------------------------
// Response
// --------------------------------------------------------------------------

// Response represents a single decoded RCON reply, correlated back to its
// request by RequestID.
type Response struct {
	RequestID     uint32
	Name          string
	Version       int
	StatusCode    StatusCode
	StatusMessage string
	ContentBody   string
}

// v2ResponseBody mirrors the JSON envelope the v2 server wraps replies in.
type v2ResponseBody struct {
	Name          string `json:"name"`
	Version       int    `json:"version"`
	StatusCode    int    `json:"statusCode"`
	StatusMessage string `json:"statusMessage"`
	ContentBody   string `json:"contentBody"`
}

// UnpackResponse decodes a decrypted frame body into a Response. For the
// legacy generation the body is raw text; an empty body signals a server
// side failure since v1 has no status codes of its own.
func UnpackResponse(requestID uint32, body []byte, version int) (*Response, error) {
	if version == ProtocolV1 {
		content := string(body)
		status := StatusOK
		message := "OK"
		if content == "" {
			status = StatusInternalError
			message = "Error"
		}
		return &Response{
			RequestID:     requestID,
			Version:       ProtocolV1,
			StatusCode:    status,
			StatusMessage: message,
			ContentBody:   content,
		}, nil
	}

	var b v2ResponseBody
	if err := json.Unmarshal(body, &b); err != nil {
		return nil, &DecodeError{Reason: fmt.Sprintf("response body is not valid JSON: %v", err)}
	}
	return &Response{
		RequestID:     requestID,
		Name:          b.Name,
		Version:       b.Version,
		StatusCode:    StatusCode(b.StatusCode),
		StatusMessage: b.StatusMessage,
		ContentBody:   b.ContentBody,
	}, nil
}

// Err returns a *CommandError if the response carries a non-OK status,
// nil otherwise.
func (r *Response) Err() error {
	if r.StatusCode == StatusOK {
		return nil
	}
	return &CommandError{StatusCode: r.StatusCode, Message: r.StatusMessage}
}

// String returns a short representation for logging.
func (r *Response) String() string {
	body := r.ContentBody
	if len(body) > 64 {
		body = body[:64] + "..."
	}
	return strings.TrimSpace(fmt.Sprintf("%d %s %s", int(r.StatusCode), r.Name, body))
}
