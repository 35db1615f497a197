/*
 * MIT License
 *
 * Copyright (c) 2026 flog authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/nabbar/flog/certs"
	"github.com/nabbar/flog/netproto"
	"github.com/nabbar/flog/rpcuri"
	"github.com/nabbar/flog/socket"
	"github.com/nabbar/flog/socket/config"
)

// DefaultReadChunk is the size of each buffer engine.Client hands to
// socket.Client.Read while reassembling a response, matching spec.md
// §4.8's "new 1024-byte buffer" per read.
const DefaultReadChunk = 1024

// ClientOption configures a Client at construction time.
type ClientOption func(*Client)

// WithTimeout sets the per-operation timeout every aio_connect/aio_write/
// aio_read is raced against. The zero value (the default) disables the
// timer entirely.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = d }
}

// WithQueue overrides the default socket.NewWorkerQueue.
func WithQueue(q socket.CompletionQueue) ClientOption {
	return func(c *Client) { c.queue = q }
}

// WithTimers overrides the default socket.NewTimerQueue.
func WithTimers(t socket.TimerQueue) ClientOption {
	return func(c *Client) { c.timers = t }
}

// WithFlags sets the optional behavior flags (currently just FlagTrace).
func WithFlags(f Flags) ClientOption {
	return func(c *Client) { c.flags = f }
}

// WithTraceLog supplies the logger FlagTrace wraps every dialed socket
// with. Has no effect unless FlagTrace is also set via WithFlags.
func WithTraceLog(log *logrus.Entry) ClientOption {
	return func(c *Client) { c.traceLog = log }
}

// WithTLS overrides the TLS posture rpcuri.Parse derived from the URI's
// scheme suffix — useful when the caller needs client certificates or a
// non-default ServerName.
func WithTLS(cfg certs.Config, serverName string) ClientOption {
	return func(c *Client) {
		c.tlsEnabled = true
		c.tlsConfig = cfg
		c.tlsServerName = serverName
	}
}

// Client is the generic client engine of spec.md §4.8: a target URI, a
// pool of idle sockets kept as a LIFO stack, and the dial/write/read
// pipeline each Send call drives through a CompletionQueue and raced
// against a per-operation timer.
type Client struct {
	uri  *rpcuri.URI
	cfg  config.Client
	flags Flags

	queue  socket.CompletionQueue
	timers socket.TimerQueue

	timeout time.Duration

	traceLog *logrus.Entry

	tlsEnabled    bool
	tlsConfig     certs.Config
	tlsServerName string

	mu   sync.Mutex
	pool []socket.Client

	stats Stats
}

// NewClient builds a Client targeting raw, a URI of the form
// scheme://host[:port]/resource per rpcuri's grammar.
func NewClient(raw string, opts ...ClientOption) (*Client, error) {
	u, err := rpcuri.Parse(raw)
	if err != nil {
		return nil, err
	}

	c := &Client{
		uri:    u,
		queue:  socket.NewWorkerQueue(),
		timers: socket.NewTimerQueue(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.cfg = config.Client{
		Network: networkFor(u),
		Address: u.Address(),
	}
	if u.TLS || c.tlsEnabled {
		c.cfg.TLS = config.TLSClient{
			Enabled:    true,
			Config:     c.tlsConfig,
			ServerName: firstNonEmpty(c.tlsServerName, u.Host),
		}
	}
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}
	c.stats.bindTarget(c.cfg.Address)
	return c, nil
}

func networkFor(u *rpcuri.URI) netproto.Protocol {
	if u.UDP {
		return netproto.UDP
	}
	return netproto.TCP
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// Stats returns a snapshot of this client's benchmark counters.
func (c *Client) Stats() StatsSnapshot {
	return c.stats.Snapshot()
}

// Collector exposes this client's benchmark counters as a
// prometheus.Collector, labeled by target address, for registration
// against a prometheus.Registerer.
func (c *Client) Collector() prometheus.Collector {
	return &c.stats
}

// PoolSize reports how many idle sockets are currently held, for tests
// asserting the idle-pool invariant of spec.md §8.
func (c *Client) PoolSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pool)
}

// Send submits req asynchronously: done is invoked exactly once, on
// whatever goroutine the CompletionQueue runs the work on, with either a
// fully parsed Response or a classifying error.
func (c *Client) Send(ctx context.Context, req Request, done ResponseFunc) {
	c.queue.Submit(func() {
		c.do(ctx, req, done)
	})
}

func (c *Client) acquireSocket(ctx context.Context) (socket.Client, bool, error) {
	c.mu.Lock()
	if n := len(c.pool); n > 0 {
		s := c.pool[n-1]
		c.pool = c.pool[:n-1]
		c.mu.Unlock()
		c.stats.poolHits.Add(1)
		return s, true, nil
	}
	c.mu.Unlock()
	c.stats.poolMiss.Add(1)

	sock, err := socket.NewClient(c.cfg)
	if err != nil {
		return nil, false, err
	}
	if c.flags.Has(FlagTrace) && c.traceLog != nil {
		sock = socket.TracingClient(sock, c.traceLog)
	}

	// aio_connect is raced against the same configured timeout as
	// aio_write/aio_read (WithTimeout's doc comment). Unlike those, there
	// is no established conn yet for a timer to abort via Close, but
	// socket.Client.Connect already threads ctx into net.Dialer.DialContext,
	// so a derived, timeout-bounded context is the native way to bound it.
	connectCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		connectCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if err := sock.Connect(connectCtx); err != nil {
		if connectCtx.Err() == context.DeadlineExceeded && ctx.Err() != context.DeadlineExceeded {
			c.stats.timeouts.Add(1)
			return nil, false, ErrorTimeout.Error()
		}
		return nil, false, ErrorConnect.Error(err)
	}
	return sock, false, nil
}

func (c *Client) releaseSocket(s socket.Client) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pool = append(c.pool, s)
}

// do realizes spec.md §4.8's per-request pipeline: acquire a socket
// (pooled or freshly dialed), write the serialized request, then read
// until the Response reports done/malformed, every step raced against a
// single-acquire timer so a timeout and a late completion can never both
// proceed.
func (c *Client) do(ctx context.Context, req Request, done ResponseFunc) {
	sock, _, err := c.acquireSocket(ctx)
	if err != nil {
		done(nil, err)
		return
	}

	var acquired atomic.Bool
	acquire := func() bool { return acquired.CompareAndSwap(false, true) }

	onTimeout := func() {
		if acquire() {
			c.stats.timeouts.Add(1)
			_ = sock.Close()
			done(nil, ErrorTimeout.Error())
		}
	}

	// Every outstanding aio_write/aio_read in spec.md §4.8 is "scheduled
	// ... with timer"/"with a new timer" — realized here as re-arming the
	// same OperationTimer before each blocking call instead of the
	// original's one-control-block-per-operation bookkeeping.
	var timer socket.OperationTimer
	armTimer := func() {
		if c.timeout <= 0 {
			return
		}
		if timer == nil {
			timer = c.timers.After(c.timeout, onTimeout)
		} else {
			timer.Reset(c.timeout)
		}
	}
	stopTimer := func() {
		if timer != nil {
			timer.Stop()
		}
	}

	armTimer()
	if _, err := sock.Write(req.Serialize()); err != nil {
		if acquire() {
			stopTimer()
			_ = sock.Close()
			done(nil, err)
		}
		return
	}
	c.stats.sent.Add(1)

	resp := req.CreateResponse()
	var buf []byte
	for {
		armTimer()
		chunk := make([]byte, DefaultReadChunk)
		n, err := sock.Read(chunk)
		if err != nil {
			if acquire() {
				stopTimer()
				_ = sock.Close()
				done(nil, err)
			}
			return
		}
		buf = append(buf, chunk[:n]...)

		switch r := resp.Deserialize(buf); {
		case r == 0:
			if !acquire() {
				// the timer already won the race and closed the socket.
				return
			}
			stopTimer()
			c.stats.received.Add(1)
			c.releaseSocket(sock)
			done(resp, nil)
			return
		case r < 0:
			if acquire() {
				stopTimer()
				c.stats.malformed.Add(1)
				_ = sock.Close()
				done(nil, ErrorMalformed.Error())
			}
			return
		default:
			continue
		}
	}
}

// Close tears down every idle socket currently held in the pool.
func (c *Client) Close() error {
	c.mu.Lock()
	pool := c.pool
	c.pool = nil
	c.mu.Unlock()

	var first error
	for _, s := range pool {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
