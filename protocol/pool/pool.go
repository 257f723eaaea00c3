package pool

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/2KU77B0N3S/hllrcon/protocol/common"
	"github.com/2KU77B0N3S/hllrcon/protocol/session"
)

// Pool fans commands out over cfg.PoolSize sessions to a single server.
type Pool struct {
	cfg      common.ClientConfig
	sessions []*session.Session

	next   atomic.Uint32 // rotating tiebreak offset
	closed atomic.Bool

	notifications chan *common.Response
	closeCh       chan struct{}
	forwarders    sync.WaitGroup
}

// New creates a pool of cfg.PoolSize sessions. No connections are opened
// until Connect or the first Execute.
func New(cfg common.ClientConfig) (*Pool, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pool{
		cfg:           cfg,
		sessions:      make([]*session.Session, cfg.PoolSize),
		notifications: make(chan *common.Response, 64),
		closeCh:       make(chan struct{}),
	}
	for i := range p.sessions {
		p.sessions[i] = session.New(cfg)
	}
	for _, s := range p.sessions {
		p.forwarders.Add(1)
		go p.forward(s)
	}

	log.Debug().Str("addr", cfg.Addr()).Int("pool_size", cfg.PoolSize).Msg("rcon pool created")
	return p, nil
}

// Connect brings up all sessions concurrently. It succeeds as soon as at
// least one session is Ready; if every attempt fails, the first error is
// returned.
func (p *Pool) Connect(ctx context.Context) error {
	if p.closed.Load() {
		return common.ErrPoolClosed
	}

	errs := make([]error, len(p.sessions))
	var wg sync.WaitGroup
	for i, s := range p.sessions {
		wg.Add(1)
		go func(i int, s *session.Session) {
			defer wg.Done()
			errs[i] = s.Connect(ctx)
		}(i, s)
	}
	wg.Wait()

	var firstErr error
	for _, err := range errs {
		if err == nil {
			return nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Execute dispatches one command to the least loaded session. If ctx
// carries no deadline the configured per-command timeout is applied.
func (p *Pool) Execute(ctx context.Context, name string, version int, body string) (*common.Response, error) {
	if p.closed.Load() {
		return nil, common.ErrPoolClosed
	}

	if _, ok := ctx.Deadline(); !ok {
		if timeout := p.cfg.CommandTimeout(); timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
	}

	return p.pick().Execute(ctx, name, version, body)
}

// pick returns the session with the fewest pending commands, scanning from
// a rotating offset so ties do not always land on slot zero.
func (p *Pool) pick() *session.Session {
	offset := int(p.next.Add(1))
	best := p.sessions[offset%len(p.sessions)]
	bestLoad := best.Pending()
	for i := 1; i < len(p.sessions); i++ {
		s := p.sessions[(offset+i)%len(p.sessions)]
		if load := s.Pending(); load < bestLoad {
			best, bestLoad = s, load
		}
	}
	return best
}

// Reset recovers every faulted session.
func (p *Pool) Reset() {
	for _, s := range p.sessions {
		s.Reset()
	}
}

// Close drains all sessions and releases the pool. It is idempotent.
func (p *Pool) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(p.closeCh)

	var wg sync.WaitGroup
	for _, s := range p.sessions {
		wg.Add(1)
		go func(s *session.Session) {
			defer wg.Done()
			s.Close()
		}(s)
	}
	wg.Wait()
	p.forwarders.Wait()
	return nil
}

// IsConnected reports whether at least one session is Ready.
func (p *Pool) IsConnected() bool {
	for _, s := range p.sessions {
		if s.IsConnected() {
			return true
		}
	}
	return false
}

// Pending returns the total number of queued or executing commands.
func (p *Pool) Pending() int {
	var total int
	for _, s := range p.sessions {
		total += s.Pending()
	}
	return total
}

// Notifications returns the merged stream of server-initiated frames from
// all sessions.
func (p *Pool) Notifications() <-chan *common.Response {
	return p.notifications
}

// forward relays one session's notifications onto the merged channel.
func (p *Pool) forward(s *session.Session) {
	defer p.forwarders.Done()
	for {
		select {
		case n := <-s.Notifications():
			select {
			case p.notifications <- n:
			default:
				log.Warn().Str("name", n.Name).Msg("pool notification channel full, dropping")
			}
		case <-p.closeCh:
			return
		}
	}
}

// With runs fn against a temporary pool and tears it down afterwards, even
// if fn panics. Connection setup failures are returned before fn runs.
func With(ctx context.Context, cfg common.ClientConfig, fn func(p *Pool) error) error {
	p, err := New(cfg)
	if err != nil {
		return err
	}
	defer p.Close()

	if err := p.Connect(ctx); err != nil {
		return err
	}
	return fn(p)
}
