package common

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// TestRequestPackV2 verifies the JSON envelope, including the blank token
// placeholder the server requires.
func TestRequestPackV2(t *testing.T) {
	packed, err := NewRequest("Login", ProtocolV2, "", "hunter2").Pack()
	if err != nil {
		t.Fatalf("pack failed: %v", err)
	}

	var envelope map[string]any
	if err := json.Unmarshal(packed, &envelope); err != nil {
		t.Fatalf("packed request is not JSON: %v", err)
	}
	if envelope["AuthToken"] != " " {
		t.Errorf("empty auth token packed as %q, want single space", envelope["AuthToken"])
	}
	if envelope["Name"] != "Login" || envelope["ContentBody"] != "hunter2" {
		t.Errorf("unexpected envelope: %v", envelope)
	}
	if envelope["Version"] != float64(ProtocolV2) {
		t.Errorf("version packed as %v", envelope["Version"])
	}
}

// TestRequestPackV1 verifies the legacy plain text command line.
func TestRequestPackV1(t *testing.T) {
	cases := map[string]struct {
		name, body, want string
	}{
		"with args": {"kick", "76561198000000000 spam", "kick 76561198000000000 spam"},
		"bare":      {"get maps", "", "get maps"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			packed, err := NewRequest(tc.name, ProtocolV1, "", tc.body).Pack()
			if err != nil {
				t.Fatalf("pack failed: %v", err)
			}
			if string(packed) != tc.want {
				t.Errorf("packed = %q, want %q", packed, tc.want)
			}
		})
	}
}

// TestUnpackResponseV2 verifies envelope decoding and the JSON failure
// path.
func TestUnpackResponseV2(t *testing.T) {
	resp, err := UnpackResponse(12, []byte(`{"name":"Login","version":2,"statusCode":401,"statusMessage":"invalid password","contentBody":""}`), ProtocolV2)
	if err != nil {
		t.Fatalf("unpack failed: %v", err)
	}
	if resp.RequestID != 12 || resp.Name != "Login" || resp.StatusCode != StatusUnauthorized {
		t.Errorf("unexpected response: %+v", resp)
	}

	var cmdErr *CommandError
	if err := resp.Err(); !errors.As(err, &cmdErr) || cmdErr.StatusCode != StatusUnauthorized {
		t.Errorf("Err() = %v, want CommandError 401", err)
	}

	_, err = UnpackResponse(1, []byte("not json"), ProtocolV2)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Errorf("malformed body: got %v, want DecodeError", err)
	}
}

// TestUnpackResponseV1 verifies that legacy replies synthesize status
// codes: non-empty is OK, empty is a server side failure.
func TestUnpackResponseV1(t *testing.T) {
	resp, err := UnpackResponse(3, []byte("SUCCESS"), ProtocolV1)
	if err != nil {
		t.Fatalf("unpack failed: %v", err)
	}
	if resp.StatusCode != StatusOK || resp.ContentBody != "SUCCESS" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Err() != nil {
		t.Errorf("Err() = %v on success", resp.Err())
	}

	resp, err = UnpackResponse(4, nil, ProtocolV1)
	if err != nil {
		t.Fatalf("unpack failed: %v", err)
	}
	if resp.StatusCode != StatusInternalError {
		t.Errorf("empty body status = %v, want %v", resp.StatusCode, StatusInternalError)
	}
}

// TestResponseStringTruncates verifies log output stays short.
func TestResponseStringTruncates(t *testing.T) {
	resp := &Response{StatusCode: StatusOK, Name: "GetPlayers", ContentBody: strings.Repeat("x", 200)}
	if s := resp.String(); len(s) > 100 || !strings.Contains(s, "...") {
		t.Errorf("String() not truncated: %q", s)
	}
}
