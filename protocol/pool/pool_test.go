package pool

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

func testConfig(s *rcontest.Server, size int) common.ClientConfig {
	return common.ClientConfig{
		Host:     s.Host(),
		Port:     s.Port(),
		Password: "secret",
		Version:  common.ProtocolV2,
		PoolSize: size,
	}
}

// TestPoolConnectAndExecute verifies the happy path across all sessions.
func TestPoolConnectAndExecute(t *testing.T) {
	srv := rcontest.Start(t, rcontest.Options{Password: "secret"})

	p, err := New(testConfig(srv, 4))
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	defer p.Close()

	if err := p.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if !p.IsConnected() {
		t.Error("pool not connected after Connect")
	}
	if srv.ConnCount() != 4 {
		t.Errorf("server sees %d connections, want 4", srv.ConnCount())
	}

	resp, err := p.Execute(context.Background(), "Echo", common.ProtocolV2, "ping")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if resp.ContentBody != "ping" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

// TestPoolExecuteConcurrent hammers the pool and checks every response is
// correlated to its own request.
func TestPoolExecuteConcurrent(t *testing.T) {
	srv := rcontest.Start(t, rcontest.Options{Password: "secret"})

	p, err := New(testConfig(srv, 4))
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	defer p.Close()

	const workers = 8
	const perWorker = 25

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				body := fmt.Sprintf("w%d-%d", w, i)
				resp, err := p.Execute(context.Background(), "Echo", common.ProtocolV2, body)
				if err != nil {
					t.Errorf("execute %s: %v", body, err)
					return
				}
				if resp.ContentBody != body {
					t.Errorf("got %q, want %q", resp.ContentBody, body)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	if p.Pending() != 0 {
		t.Errorf("pending = %d after all commands returned", p.Pending())
	}
}

// TestPoolExecuteAppliesCommandTimeout verifies the configured per-command
// timeout is used when the caller context carries no deadline.
func TestPoolExecuteAppliesCommandTimeout(t *testing.T) {
	srv := rcontest.Start(t, rcontest.Options{
		Password: "secret",
		Handler: func(req *common.Request) (common.StatusCode, string) {
			if req.Name == "Slow" {
				time.Sleep(500 * time.Millisecond)
			}
			return common.StatusOK, req.ContentBody
		},
	})

	cfg := testConfig(srv, 1)
	cfg.TimeoutSecond = 0 // falls back to the default
	p, err := New(cfg)
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	defer p.Close()

	// Caller deadline wins over the configured timeout.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := p.Execute(ctx, "Slow", common.ProtocolV2, ""); !errors.Is(err, common.ErrCommandTimeout) {
		t.Fatalf("got %v, want ErrCommandTimeout", err)
	}
}

// TestPoolClosed verifies Execute after Close fails fast and Close is
// idempotent.
func TestPoolClosed(t *testing.T) {
	srv := rcontest.Start(t, rcontest.Options{Password: "secret"})

	p, err := New(testConfig(srv, 2))
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	if err := p.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	if err := p.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if _, err := p.Execute(context.Background(), "Echo", common.ProtocolV2, ""); !errors.Is(err, common.ErrPoolClosed) {
		t.Errorf("got %v, want ErrPoolClosed", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second close failed: %v", err)
	}
}

// TestPoolInvalidConfig verifies config validation happens at construction.
func TestPoolInvalidConfig(t *testing.T) {
	if _, err := New(common.ClientConfig{Port: 27015}); err == nil {
		t.Error("pool accepted config without host")
	}
	if _, err := New(common.ClientConfig{Host: "localhost", Port: -1}); err == nil {
		t.Error("pool accepted invalid port")
	}
}

// TestPoolNotifications verifies server-initiated frames from any session
// surface on the shared channel.
func TestPoolNotifications(t *testing.T) {
	srv := rcontest.Start(t, rcontest.Options{Password: "secret"})

	p, err := New(testConfig(srv, 2))
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	defer p.Close()
	if err := p.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	srv.Notify("ServerBroadcast", "map change imminent")

	// Every connection receives the broadcast; at least one must surface.
	select {
	case n := <-p.Notifications():
		if n.Name != "ServerBroadcast" || n.ContentBody != "map change imminent" {
			t.Errorf("unexpected notification: %+v", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no notification received")
	}
}

// TestPoolWith verifies the scoped helper closes the pool afterwards.
func TestPoolWith(t *testing.T) {
	srv := rcontest.Start(t, rcontest.Options{Password: "secret"})

	var captured *Pool
	err := With(context.Background(), testConfig(srv, 2), func(p *Pool) error {
		captured = p
		_, err := p.Execute(context.Background(), "Echo", common.ProtocolV2, "scoped")
		return err
	})
	if err != nil {
		t.Fatalf("with failed: %v", err)
	}

	if _, err := captured.Execute(context.Background(), "Echo", common.ProtocolV2, ""); !errors.Is(err, common.ErrPoolClosed) {
		t.Errorf("pool still usable after With returned: %v", err)
	}
}

// TestPoolWithErrorExit verifies the scoped helper tears the pool down when
// fn fails, and propagates the failure.
func TestPoolWithErrorExit(t *testing.T) {
	srv := rcontest.Start(t, rcontest.Options{Password: "secret"})

	boom := errors.New("command batch failed")
	var captured *Pool
	err := With(context.Background(), testConfig(srv, 2), func(p *Pool) error {
		captured = p
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want the fn error", err)
	}
	if _, err := captured.Execute(context.Background(), "Echo", common.ProtocolV2, ""); !errors.Is(err, common.ErrPoolClosed) {
		t.Errorf("pool still usable after error exit: %v", err)
	}
}

// TestPoolWithPanicExit verifies the pool is closed even when fn panics.
func TestPoolWithPanicExit(t *testing.T) {
	srv := rcontest.Start(t, rcontest.Options{Password: "secret"})

	var captured *Pool
	func() {
		defer func() {
			if recover() == nil {
				t.Error("panic did not propagate out of With")
			}
		}()
		With(context.Background(), testConfig(srv, 2), func(p *Pool) error {
			captured = p
			panic("mid-batch failure")
		})
	}()

	if _, err := captured.Execute(context.Background(), "Echo", common.ProtocolV2, ""); !errors.Is(err, common.ErrPoolClosed) {
		t.Errorf("pool still usable after panic exit: %v", err)
	}
}
