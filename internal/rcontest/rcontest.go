package rcontest

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/2KU77B0N3S/hllrcon/protocol/codec"
	"github.com/2KU77B0N3S/hllrcon/protocol/common"
)

const defaultAuthToken = "rcontest-auth-token"

// Handler scripts the response to one v2 command. Returning a non-OK
// status turns into a command failure on the client side.
type Handler func(req *common.Request) (common.StatusCode, string)

// Options configures the test server.
type Options struct {
	// Password accepted at login. Empty means any password is accepted.
	Password string

	// Version is the protocol generation the server speaks,
	// common.ProtocolV2 unless set.
	Version int

	// XORKey is the stream cipher key. A fixed default is used if nil.
	XORKey []byte

	// RejectLogin makes every login attempt fail regardless of password.
	RejectLogin bool

	// Handler scripts v2 command responses. The default echoes the
	// request's content body. Login and ServerConnect are always handled
	// by the server itself.
	Handler Handler
}

// Server is an in-process console endpoint for tests.
type Server struct {
	opts        Options
	ln          net.Listener
	rejectLogin atomic.Bool

	mu    sync.Mutex
	conns map[*serverConn]struct{}

	wg sync.WaitGroup
}

// Start launches the server on a random loopback port and registers its
// shutdown with t.
func Start(t *testing.T, opts Options) *Server {
	t.Helper()

	if opts.Version == 0 {
		opts.Version = common.ProtocolV2
	}
	if opts.XORKey == nil {
		opts.XORKey = []byte{0x5c, 0x0a, 0x91, 0xe3}
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("rcontest: listen: %v", err)
	}

	s := &Server{opts: opts, ln: ln, conns: make(map[*serverConn]struct{})}
	s.rejectLogin.Store(opts.RejectLogin)
	s.wg.Add(1)
	go s.acceptLoop()
	t.Cleanup(s.Stop)
	return s
}

// Addr returns the host:port the server listens on.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Host returns the listen host and Port the listen port.
func (s *Server) Host() string {
	host, _, _ := net.SplitHostPort(s.Addr())
	return host
}

func (s *Server) Port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

// AuthToken returns the token issued on successful v2 logins.
func (s *Server) AuthToken() string {
	return defaultAuthToken
}

// SetRejectLogin toggles login rejection at runtime, e.g. to simulate a
// password change on a live server.
func (s *Server) SetRejectLogin(reject bool) {
	s.rejectLogin.Store(reject)
}

// DropConnections severs every active connection, simulating a server
// restart. The listener stays up so clients can reconnect.
func (s *Server) DropConnections() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.conns {
		c.raw.Close()
	}
}

// Notify pushes a server-initiated frame (request id 0) with the given
// name and content body to every connected, authenticated client.
func (s *Server) Notify(name, contentBody string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.conns {
		c.writeResponse(0, name, common.StatusOK, "", contentBody)
	}
}

// ConnCount returns the number of live connections.
func (s *Server) ConnCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// Stop closes the listener and all connections and waits for the handlers
// to finish.
func (s *Server) Stop() {
	s.ln.Close()
	s.DropConnections()
	s.wg.Wait()
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		raw, err := s.ln.Accept()
		if err != nil {
			return
		}

		c := &serverConn{raw: raw, version: s.opts.Version}
		if s.opts.Version == common.ProtocolV1 {
			// The legacy console encrypts from the first frame on.
			c.key = s.opts.XORKey
		}

		s.mu.Lock()
		s.conns[c] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serve(c)
			s.mu.Lock()
			delete(s.conns, c)
			s.mu.Unlock()
		}()
	}
}

// serverConn is one accepted client connection.
type serverConn struct {
	raw     net.Conn
	version int

	writeMu sync.Mutex
	key     []byte // nil until the key is issued (v2) or from accept (v1)
}

func (s *Server) serve(c *serverConn) {
	defer c.raw.Close()

	// Both generations announce the legacy key blob on accept.
	if _, err := c.raw.Write(s.opts.XORKey[:codec.LegacyKeySize]); err != nil {
		return
	}

	for {
		requestID, body, err := c.readFrame()
		if err != nil {
			return
		}
		if s.opts.Version == common.ProtocolV1 {
			s.handleV1(c, requestID, string(body))
		} else {
			if err := s.handleV2(c, requestID, body); err != nil {
				return
			}
		}
	}
}

// readFrame reads one request frame, undoing the client-side encryption.
// v2 clients encrypt the whole frame once the key is issued, so the header
// uses key offset 0 and the body continues at offset HeaderSize. Legacy
// clients leave the header plaintext and key the body from offset 0.
func (c *serverConn) readFrame() (uint32, []byte, error) {
	header := make([]byte, codec.HeaderSize)
	if _, err := io.ReadFull(c.raw, header); err != nil {
		return 0, nil, err
	}
	bodyOffset := 0
	if c.version != common.ProtocolV1 && c.key != nil {
		header = codec.XOR(c.key, header, 0)
		bodyOffset = codec.HeaderSize
	}

	requestID := binary.LittleEndian.Uint32(header[0:4])
	bodyLen := binary.LittleEndian.Uint32(header[4:8])
	if bodyLen > codec.MaxFrameSize {
		return 0, nil, fmt.Errorf("rcontest: implausible body length %d", bodyLen)
	}

	body := make([]byte, bodyLen)
	if _, err := io.ReadFull(c.raw, body); err != nil {
		return 0, nil, err
	}
	if c.version == common.ProtocolV1 {
		body = codec.XOR(c.key, body, 0)
	} else if c.key != nil {
		body = codec.XOR(c.key, body, bodyOffset)
	}
	return requestID, body, nil
}

// writeResponse emits one response frame: plaintext header, body keyed
// from offset 0 once a key is active.
func (c *serverConn) writeResponse(requestID uint32, name string, status common.StatusCode, message, contentBody string) error {
	var body []byte
	if c.version == common.ProtocolV1 {
		body = []byte(contentBody)
	} else {
		body, _ = json.Marshal(map[string]any{
			"name":          name,
			"version":       2,
			"statusCode":    int(status),
			"statusMessage": message,
			"contentBody":   contentBody,
		})
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	frame := make([]byte, codec.HeaderSize+len(body))
	binary.LittleEndian.PutUint32(frame[0:4], requestID)
	binary.LittleEndian.PutUint32(frame[4:8], uint32(len(body)))
	copy(frame[codec.HeaderSize:], codec.XOR(c.key, body, 0))
	_, err := c.raw.Write(frame)
	return err
}

func (s *Server) handleV2(c *serverConn, requestID uint32, body []byte) error {
	var req common.Request
	if err := json.Unmarshal(body, &req); err != nil {
		return fmt.Errorf("rcontest: malformed request envelope: %w", err)
	}

	switch req.Name {
	case "ServerConnect":
		encoded := base64.StdEncoding.EncodeToString(s.opts.XORKey)
		if err := c.writeResponse(requestID, req.Name, common.StatusOK, "", encoded); err != nil {
			return err
		}
		// Everything after the key announcement is encrypted.
		c.writeMu.Lock()
		c.key = s.opts.XORKey
		c.writeMu.Unlock()
		return nil

	case "Login":
		if s.rejectLogin.Load() || (s.opts.Password != "" && req.ContentBody != s.opts.Password) {
			return c.writeResponse(requestID, req.Name, common.StatusUnauthorized, "invalid password", "")
		}
		return c.writeResponse(requestID, req.Name, common.StatusOK, "", defaultAuthToken)
	}

	if req.AuthToken == "" || req.AuthToken == " " {
		return c.writeResponse(requestID, req.Name, common.StatusUnauthorized, "not logged in", "")
	}

	status, content := common.StatusOK, req.ContentBody
	if s.opts.Handler != nil {
		status, content = s.opts.Handler(&req)
	}
	message := ""
	if status != common.StatusOK {
		message = status.String()
	}
	return c.writeResponse(requestID, req.Name, status, message, content)
}

func (s *Server) handleV1(c *serverConn, requestID uint32, body string) {
	if cmd, rest, _ := strings.Cut(body, " "); cmd == "login" {
		if s.rejectLogin.Load() || (s.opts.Password != "" && rest != s.opts.Password) {
			c.writeResponse(requestID, "", common.StatusUnauthorized, "", "FAIL")
			return
		}
		c.writeResponse(requestID, "", common.StatusOK, "", "SUCCESS")
		return
	}
	// Echo the command line back.
	c.writeResponse(requestID, "", common.StatusOK, "", body)
}
