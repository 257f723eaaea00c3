package conn

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/2KU77B0N3S/hllrcon/internal/rcontest"
	"github.com/2KU77B0N3S/hllrcon/protocol/common"
)

func testConfig(s *rcontest.Server, version int) common.ClientConfig {
	return common.ClientConfig{
		Host:     s.Host(),
		Port:     s.Port(),
		Password: "secret",
		Version:  version,
	}
}

// TestConnectAndExecuteV2 verifies the full v2 handshake (key exchange,
// login) followed by an encrypted echo round trip.
func TestConnectAndExecuteV2(t *testing.T) {
	srv := rcontest.Start(t, rcontest.Options{Password: "secret"})

	c, err := Connect(context.Background(), testConfig(srv, common.ProtocolV2))
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer c.Close()

	if !c.IsConnected() {
		t.Fatal("connection not marked connected")
	}

	resp, err := c.Execute(context.Background(), "ServerBroadcast", common.ProtocolV2, "hello")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if resp.StatusCode != common.StatusOK || resp.ContentBody != "hello" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

// TestConnectAndExecuteV1 verifies the legacy handshake (raw key read,
// plain text login) and an echo round trip.
func TestConnectAndExecuteV1(t *testing.T) {
	srv := rcontest.Start(t, rcontest.Options{Password: "secret", Version: common.ProtocolV1})

	c, err := Connect(context.Background(), testConfig(srv, common.ProtocolV1))
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer c.Close()

	resp, err := c.Execute(context.Background(), "broadcast", common.ProtocolV1, "hello")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if resp.ContentBody != "broadcast hello" {
		t.Errorf("unexpected echo: %q", resp.ContentBody)
	}
}

// TestConnectRejectedPassword verifies that a refused login surfaces as a
// HandshakeRejectedError for both generations.
func TestConnectRejectedPassword(t *testing.T) {
	for _, version := range []int{common.ProtocolV1, common.ProtocolV2} {
		t.Run(fmt.Sprintf("v%d", version), func(t *testing.T) {
			srv := rcontest.Start(t, rcontest.Options{Password: "secret", Version: version})

			cfg := testConfig(srv, version)
			cfg.Password = "wrong"

			_, err := Connect(context.Background(), cfg)
			var rejected *common.HandshakeRejectedError
			if !errors.As(err, &rejected) {
				t.Fatalf("got %v, want HandshakeRejectedError", err)
			}
		})
	}
}

// TestExecuteConcurrent verifies correlation under concurrent submitters
// sharing one connection.
func TestExecuteConcurrent(t *testing.T) {
	srv := rcontest.Start(t, rcontest.Options{Password: "secret"})

	c, err := Connect(context.Background(), testConfig(srv, common.ProtocolV2))
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer c.Close()

	const workers = 8
	const perWorker = 25

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				body := fmt.Sprintf("w%d-%d", w, i)
				resp, err := c.Execute(context.Background(), "Echo", common.ProtocolV2, body)
				if err != nil {
					t.Errorf("execute failed: %v", err)
					return
				}
				if resp.ContentBody != body {
					t.Errorf("response %q correlated to request %q", resp.ContentBody, body)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	if c.Pending() != 0 {
		t.Errorf("pending = %d after all commands resolved", c.Pending())
	}
}

// TestExecuteTimeout verifies that an unanswered command fails with
// ErrCommandTimeout once its deadline passes.
func TestExecuteTimeout(t *testing.T) {
	srv := rcontest.Start(t, rcontest.Options{
		Password: "secret",
		Handler: func(req *common.Request) (common.StatusCode, string) {
			if req.Name == "Slow" {
				time.Sleep(300 * time.Millisecond)
			}
			return common.StatusOK, req.ContentBody
		},
	})

	c, err := Connect(context.Background(), testConfig(srv, common.ProtocolV2))
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = c.Execute(ctx, "Slow", common.ProtocolV2, "")
	if !errors.Is(err, common.ErrCommandTimeout) {
		t.Fatalf("got %v, want ErrCommandTimeout", err)
	}

	// The slot must be released; the connection stays usable.
	resp, err := c.Execute(context.Background(), "Fast", common.ProtocolV2, "ok")
	if err != nil || resp.ContentBody != "ok" {
		t.Fatalf("connection unusable after timeout: %v", err)
	}
}

// TestTeardownFailsPending verifies that a dropped connection fails every
// in-flight command with ErrConnectionLost.
func TestTeardownFailsPending(t *testing.T) {
	srv := rcontest.Start(t, rcontest.Options{
		Password: "secret",
		Handler: func(req *common.Request) (common.StatusCode, string) {
			if req.Name == "Hang" {
				time.Sleep(time.Second)
			}
			return common.StatusOK, req.ContentBody
		},
	})

	c, err := Connect(context.Background(), testConfig(srv, common.ProtocolV2))
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer c.Close()

	const pending = 3
	errs := make(chan error, pending)
	for i := 0; i < pending; i++ {
		go func() {
			_, err := c.Execute(context.Background(), "Hang", common.ProtocolV2, "")
			errs <- err
		}()
	}

	// Wait until all commands are registered, then cut the wire.
	deadline := time.After(2 * time.Second)
	for c.Pending() < pending {
		select {
		case <-deadline:
			t.Fatal("commands never became pending")
		case <-time.After(5 * time.Millisecond):
		}
	}
	srv.DropConnections()

	for i := 0; i < pending; i++ {
		select {
		case err := <-errs:
			if !errors.Is(err, common.ErrConnectionLost) {
				t.Errorf("got %v, want ErrConnectionLost", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("pending command never failed")
		}
	}

	select {
	case <-c.Closed():
	default:
		t.Error("Closed() not signalled after teardown")
	}
	if _, err := c.Execute(context.Background(), "Late", common.ProtocolV2, ""); !errors.Is(err, common.ErrConnectionLost) {
		t.Errorf("execute on dead connection: got %v, want ErrConnectionLost", err)
	}
}

// TestNotifications verifies that request id 0 frames bypass correlation
// and arrive on the notification channel.
func TestNotifications(t *testing.T) {
	srv := rcontest.Start(t, rcontest.Options{Password: "secret"})

	c, err := Connect(context.Background(), testConfig(srv, common.ProtocolV2))
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer c.Close()

	srv.Notify("ChatMessage", "hello from the server")

	select {
	case n := <-c.Notifications():
		if n.Name != "ChatMessage" || n.ContentBody != "hello from the server" {
			t.Errorf("unexpected notification: %+v", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("notification never arrived")
	}
}

// TestWriteDeadlineDoesNotLeak verifies a caller's expired deadline never
// carries over to the next command: after a timed-out command, a command
// with no deadline must still write and succeed on the same connection.
func TestWriteDeadlineDoesNotLeak(t *testing.T) {
	srv := rcontest.Start(t, rcontest.Options{
		Password: "secret",
		Handler: func(req *common.Request) (common.StatusCode, string) {
			if req.Name == "Slow" {
				time.Sleep(300 * time.Millisecond)
			}
			return common.StatusOK, req.ContentBody
		},
	})

	c, err := Connect(context.Background(), testConfig(srv, common.ProtocolV2))
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := c.Execute(ctx, "Slow", common.ProtocolV2, ""); !errors.Is(err, common.ErrCommandTimeout) {
		t.Fatalf("got %v, want ErrCommandTimeout", err)
	}

	// Let the first caller's deadline lie well in the past.
	time.Sleep(100 * time.Millisecond)

	resp, err := c.Execute(context.Background(), "Echo", common.ProtocolV2, "still alive")
	if err != nil {
		t.Fatalf("command with no deadline failed on a healthy connection: %v", err)
	}
	if resp.ContentBody != "still alive" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if !c.IsConnected() {
		t.Error("connection torn down by a stale deadline")
	}
}
