package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/rs/zerolog/log"

	"github.com/2KU77B0N3S/hllrcon/protocol/common"
	"github.com/2KU77B0N3S/hllrcon/protocol/conn"
)

var (
	reconnectsTotal = metrics.NewCounter(`hllrcon_session_reconnects_total`)
	faultsTotal     = metrics.NewCounter(`hllrcon_session_faults_total`)
)

// Session wraps one connection slot and keeps it alive, presenting a stable
// logical endpoint to the pool above it. See the package docs for the state
// machine.
type Session struct {
	cfg common.ClientConfig

	mu         sync.Mutex
	state      State
	conn       *conn.Connection
	faultErr   error
	stateCh    chan struct{} // closed and replaced on every transition
	connecting bool
	closed     bool

	queued   atomic.Int32 // callers waiting for readiness
	pending  atomic.Int32 // queued + executing, for pool dispatch
	inflight sync.WaitGroup

	notifications chan *common.Response
	closeCh       chan struct{}
}

// New creates a session in the Disconnected state. No connection attempt is
// made until Connect or the first Execute.
func New(cfg common.ClientConfig) *Session {
	return &Session{
		cfg:           cfg.WithDefaults(),
		state:         StateDisconnected,
		stateCh:       make(chan struct{}),
		notifications: make(chan *common.Response, 64),
		closeCh:       make(chan struct{}),
	}
}

// Connect starts the connection attempt if necessary and blocks until the
// session is Ready, Faulted, closed, or ctx is done.
func (s *Session) Connect(ctx context.Context) error {
	for {
		s.mu.Lock()
		switch s.state {
		case StateReady:
			s.mu.Unlock()
			return nil
		case StateFaulted:
			err := s.faultErr
			s.mu.Unlock()
			if err == nil {
				err = common.ErrNotConnected
			}
			return err
		case StateDraining:
			s.mu.Unlock()
			return common.ErrNotConnected
		default:
			if s.closed {
				s.mu.Unlock()
				return common.ErrNotConnected
			}
			s.ensureConnectingLocked()
			ch := s.stateCh
			s.mu.Unlock()
			select {
			case <-ch:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// Execute submits one command. If the session is not Ready the caller waits
// in the bounded queue for readiness; a full queue or a faulted session
// fails immediately so the command is known to never have been sent.
func (s *Session) Execute(ctx context.Context, name string, version int, body string) (*common.Response, error) {
	for {
		s.mu.Lock()
		switch s.state {
		case StateReady:
			cn := s.conn
			// Register in-flight before releasing the lock so Close
			// cannot pass inflight.Wait between admission and Add.
			s.inflight.Add(1)
			s.pending.Add(1)
			s.mu.Unlock()
			resp, err := cn.Execute(ctx, name, version, body)
			s.pending.Add(-1)
			s.inflight.Done()
			return resp, err

		case StateFaulted:
			err := s.faultErr
			s.mu.Unlock()
			if err == nil {
				err = common.ErrNotConnected
			}
			return nil, err

		case StateDraining:
			s.mu.Unlock()
			return nil, common.ErrNotConnected

		default: // Disconnected, Handshaking
			if s.closed {
				s.mu.Unlock()
				return nil, common.ErrNotConnected
			}
			if int(s.queued.Load()) >= s.cfg.QueueSize {
				s.mu.Unlock()
				return nil, common.ErrQueueFull
			}
			s.ensureConnectingLocked()
			ch := s.stateCh
			// Claim the queue slot under the lock so concurrent
			// arrivals cannot overshoot the bound.
			s.queued.Add(1)
			s.pending.Add(1)
			s.mu.Unlock()
			select {
			case <-ch:
				s.queued.Add(-1)
				s.pending.Add(-1)
				// State changed; re-evaluate.
			case <-ctx.Done():
				s.queued.Add(-1)
				s.pending.Add(-1)
				// The command was never sent.
				return nil, fmt.Errorf("%w: %v", common.ErrNotConnected, ctx.Err())
			}
		}
	}
}

// Reset moves a Faulted session back to Disconnected and starts a fresh
// connection attempt. It is the only way out of the Faulted state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateFaulted || s.closed {
		return
	}
	s.faultErr = nil
	s.setStateLocked(StateDisconnected)
	s.ensureConnectingLocked()
}

// Close drains the session: no new commands are accepted, in-flight
// commands finish or time out, then the socket is closed.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.closeCh)
	s.setStateLocked(StateDraining)
	cn := s.conn
	s.mu.Unlock()

	s.inflight.Wait()
	if cn != nil {
		cn.Close()
	}
	return nil
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsConnected reports whether the session is Ready.
func (s *Session) IsConnected() bool {
	return s.State() == StateReady
}

// Pending returns the number of commands queued or executing on this
// session. The pool uses it as its least-loaded dispatch heuristic.
func (s *Session) Pending() int {
	return int(s.pending.Load())
}

// Notifications returns the channel server-initiated frames are forwarded
// on, across reconnects.
func (s *Session) Notifications() <-chan *common.Response {
	return s.notifications
}

// --------------------------------------------------------------------------
// Connect loop
// --------------------------------------------------------------------------

// ensureConnectingLocked starts the connect loop if no attempt is running.
// Caller must hold s.mu.
func (s *Session) ensureConnectingLocked() {
	if s.connecting || s.closed || s.state != StateDisconnected {
		return
	}
	s.connecting = true
	go s.connectLoop()
}

// connectLoop re-runs the full connect plus handshake sequence with backoff
// until it succeeds, the handshake is rejected, the retry budget is
// exhausted, or the session is closed.
func (s *Session) connectLoop() {
	attempt := 0
	for {
		s.mu.Lock()
		if s.closed {
			s.connecting = false
			s.mu.Unlock()
			return
		}
		s.setStateLocked(StateHandshaking)
		s.mu.Unlock()

		cn, err := conn.Connect(context.Background(), s.cfg)
		if err == nil {
			s.mu.Lock()
			if s.closed {
				s.connecting = false
				s.mu.Unlock()
				cn.Close()
				return
			}
			s.conn = cn
			s.connecting = false
			s.setStateLocked(StateReady)
			s.mu.Unlock()

			if attempt > 0 {
				reconnectsTotal.Inc()
			}
			go s.watch(cn)
			go s.forward(cn)
			return
		}

		var rejected *common.HandshakeRejectedError
		if errors.As(err, &rejected) {
			s.fault(err)
			return
		}

		attempt++
		if s.cfg.ReconnectMaxRetries > 0 && attempt >= s.cfg.ReconnectMaxRetries {
			s.fault(fmt.Errorf("reconnect attempts exhausted after %d tries: %w", attempt, err))
			return
		}

		delay := nextDelay(attempt-1, s.cfg.BackoffBase(), s.cfg.BackoffMax(), randomJitter)
		log.Warn().
			Err(err).
			Str("addr", s.cfg.Addr()).
			Int("attempt", attempt).
			Dur("retry_in", delay).
			Msg("rcon connect failed, backing off")

		s.mu.Lock()
		s.setStateLocked(StateDisconnected)
		s.mu.Unlock()

		select {
		case <-s.closeCh:
			s.mu.Lock()
			s.connecting = false
			s.mu.Unlock()
			return
		case <-time.After(delay):
		}
	}
}

// fault moves the session to the terminal Faulted state.
func (s *Session) fault(err error) {
	faultsTotal.Inc()
	log.Error().Err(err).Str("addr", s.cfg.Addr()).Msg("rcon session faulted")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.faultErr = err
	s.connecting = false
	s.setStateLocked(StateFaulted)
}

// watch schedules a reconnect when the active connection drops out from
// under a Ready session.
func (s *Session) watch(cn *conn.Connection) {
	<-cn.Closed()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != cn {
		return
	}
	s.conn = nil
	if !s.closed && s.state == StateReady {
		s.setStateLocked(StateDisconnected)
		s.ensureConnectingLocked()
	}
}

// forward relays the connection's out-of-band notifications onto the
// session-level channel until the connection dies.
func (s *Session) forward(cn *conn.Connection) {
	for {
		select {
		case n := <-cn.Notifications():
			select {
			case s.notifications <- n:
			default:
				log.Warn().Str("name", n.Name).Msg("session notification channel full, dropping")
			}
		case <-cn.Closed():
			return
		}
	}
}

// setStateLocked transitions the state machine and wakes every waiter.
// Caller must hold s.mu.
func (s *Session) setStateLocked(next State) {
	if s.state == next {
		return
	}
	log.Debug().
		Str("addr", s.cfg.Addr()).
		Stringer("from", s.state).
		Stringer("to", next).
		Msg("session state change")
	s.state = next
	close(s.stateCh)
	s.stateCh = make(chan struct{})
}
