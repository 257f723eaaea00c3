package conn

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/2KU77B0N3S/hllrcon/protocol/common"
)

// notificationID is the request id the server uses for out-of-band,
// server-initiated frames. It is never assigned to a request.
const notificationID uint32 = 0

// result is delivered to exactly one waiting caller per request.
type result struct {
	resp *common.Response
	err  error
}

// correlator assigns sequence identifiers to outgoing requests and
// demultiplexes inbound frames back to the waiting caller. Identifiers are
// monotonically increasing and wrap around the uint32 space; an id that is
// still pending after a wraparound is skipped rather than reused, and
// assignment backs off (instead of corrupting the table) in the pathological
// case where the whole space is in flight.
type correlator struct {
	waiters *xsync.MapOf[uint32, chan result]
	nextID  atomic.Uint32
}

func newCorrelator() *correlator {
	return &correlator{waiters: xsync.NewMapOf[uint32, chan result]()}
}

// register claims the next free sequence id and returns the channel its
// result will be delivered on. The channel is buffered so resolution never
// blocks the read loop, even when the caller has already given up.
func (c *correlator) register(ctx context.Context) (uint32, chan result, error) {
	for attempts := 0; ; attempts++ {
		id := c.nextID.Add(1)
		if id == notificationID {
			continue
		}
		ch := make(chan result, 1)
		if _, loaded := c.waiters.LoadOrStore(id, ch); !loaded {
			return id, ch, nil
		}
		// Wrapped around onto a still-pending id. Skip it; if we keep
		// colliding, back off until the collisions clear.
		if attempts > 0 && attempts%4096 == 0 {
			select {
			case <-ctx.Done():
				return 0, nil, ctx.Err()
			case <-time.After(time.Millisecond):
			}
		}
	}
}

// resolve routes an inbound response to its waiting caller. It reports
// whether a matching pending request existed. LoadAndDelete guarantees a
// single winner between resolve, cancel and failAll, so a request resolves
// at most once even under a timeout-versus-late-response race.
func (c *correlator) resolve(id uint32, resp *common.Response) bool {
	ch, ok := c.waiters.LoadAndDelete(id)
	if !ok {
		return false
	}
	ch <- result{resp: resp}
	return true
}

// cancel releases a pending slot whose caller gave up waiting. A response
// arriving afterwards finds no waiter and is dropped as unmatched.
func (c *correlator) cancel(id uint32) {
	c.waiters.Delete(id)
}

// failAll resolves every outstanding request with err. Used on connection
// teardown so no submitted command is ever silently forgotten.
func (c *correlator) failAll(err error) {
	c.waiters.Range(func(id uint32, _ chan result) bool {
		if ch, ok := c.waiters.LoadAndDelete(id); ok {
			ch <- result{err: err}
		}
		return true
	})
}

// pending returns the number of in-flight requests.
func (c *correlator) pending() int {
	return c.waiters.Size()
}
