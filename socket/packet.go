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

package socket

import (
	"context"
	"net"
	"sync"
	"sync/atomic"

	"github.com/nabbar/flog/netproto"
	"github.com/nabbar/flog/socket/config"
)

// packetServer backs udp and unixgram: connectionless protocols with no
// accept loop. Each datagram's source address stands in for a
// connection; a packetContext wraps the shared net.PacketConn bound to
// that one peer so the handler still sees the same Context shape a
// stream server hands out.
type packetServer struct {
	cfg     config.Server
	handler HandlerFunc

	queue CompletionQueue

	conn net.PacketConn

	errFn  atomic.Pointer[FuncError]
	infoFn atomic.Pointer[FuncInfo]

	running atomic.Bool
	open    atomic.Int64

	closeOnce controlBlock
	done      chan struct{}
}

func newPacketServer(cfg config.Server, handler HandlerFunc) *packetServer {
	return &packetServer{
		cfg:     cfg,
		handler: handler,
		queue:   NewWorkerQueue(),
		done:    make(chan struct{}),
	}
}

func (s *packetServer) RegisterFuncError(f FuncError) { s.errFn.Store(&f) }
func (s *packetServer) RegisterFuncInfo(f FuncInfo)    { s.infoFn.Store(&f) }

func (s *packetServer) reportError(err error) {
	if e := ErrorFilter(err); e != nil {
		if p := s.errFn.Load(); p != nil && *p != nil {
			(*p)(e)
		}
	}
}

func (s *packetServer) reportInfo(local, remote net.Addr, state ConnState) {
	if p := s.infoFn.Load(); p != nil && *p != nil {
		(*p)(local, remote, state)
	}
}

func (s *packetServer) Listen(ctx context.Context) error {
	conn, err := net.ListenPacket(s.cfg.Network.String(), s.cfg.Address)
	if err != nil {
		return err
	}

	if s.cfg.Network == netproto.UnixGram {
		if err = applyUnixPerms(s.cfg.Address, s.cfg.PermFile, s.cfg.GroupPerm); err != nil {
			_ = conn.Close()
			return err
		}
	}

	s.conn = conn
	s.running.Store(true)
	defer func() {
		s.running.Store(false)
		close(s.done)
	}()

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	buf := make([]byte, DefaultBufferSize)
	for {
		n, addr, err := conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if e := ErrorFilter(err); e != nil {
				s.reportError(e)
				continue
			}
			return nil
		}

		payload := make([]byte, n)
		copy(payload, buf[:n])

		s.open.Add(1)
		s.queue.Submit(func() {
			defer s.open.Add(-1)
			s.serve(ctx, addr, payload)
		})
	}
}

func (s *packetServer) serve(ctx context.Context, remote net.Addr, payload []byte) {
	cctx := newPacketContext(ctx, s.conn, remote, payload)
	defer func() {
		s.reportInfo(s.conn.LocalAddr(), remote, ConnectionClose)
		_ = cctx.Close()
	}()

	s.reportInfo(s.conn.LocalAddr(), remote, ConnectionNew)
	s.reportInfo(s.conn.LocalAddr(), remote, ConnectionHandler)
	s.handler(cctx)
}

func (s *packetServer) Shutdown(ctx context.Context) error {
	if s.conn != nil {
		_ = s.conn.Close()
	}
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *packetServer) Close() error {
	if !s.closeOnce.Acquire() {
		return nil
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

func (s *packetServer) IsRunning() bool        { return s.running.Load() }
func (s *packetServer) IsGone() bool           { return !s.running.Load() }
func (s *packetServer) OpenConnections() int64 { return s.open.Load() }

// packetContext is the Context a packetServer hands its handler: Read
// serves the one datagram already received, Write sends a reply
// datagram back to the same peer.
type packetContext struct {
	context.Context
	cancel context.CancelFunc

	conn   net.PacketConn
	remote net.Addr

	payload []byte
	readPos int
	readMu  sync.Mutex

	connected atomic.Bool
	closeOnce controlBlock
}

func newPacketContext(parent context.Context, conn net.PacketConn, remote net.Addr, payload []byte) *packetContext {
	ctx, cancel := context.WithCancel(parent)
	c := &packetContext{Context: ctx, cancel: cancel, conn: conn, remote: remote, payload: payload}
	c.connected.Store(true)
	return c
}

func (c *packetContext) Read(p []byte) (int, error) {
	c.readMu.Lock()
	defer c.readMu.Unlock()
	if c.readPos >= len(c.payload) {
		return 0, nil
	}
	n := copy(p, c.payload[c.readPos:])
	c.readPos += n
	return n, nil
}

func (c *packetContext) Write(p []byte) (int, error) {
	return c.conn.WriteTo(p, c.remote)
}

func (c *packetContext) Close() error {
	if !c.closeOnce.Acquire() {
		return nil
	}
	c.connected.Store(false)
	c.cancel()
	return nil
}

func (c *packetContext) IsConnected() bool { return c.connected.Load() }

func (c *packetContext) LocalHost() string {
	if c.conn == nil || c.conn.LocalAddr() == nil {
		return ""
	}
	return c.conn.LocalAddr().String()
}

func (c *packetContext) RemoteHost() string {
	if c.remote == nil {
		return ""
	}
	return c.remote.String()
}

// packetClient backs udp and unixgram clients: Connect dials (for udp,
// net.Dial still gives a connected socket that filters by peer; for
// unixgram, net.DialUnix binds a private receive address).
type packetClient struct {
	cfg  config.Client
	conn net.Conn

	errFn     atomic.Pointer[FuncError]
	connected atomic.Bool
	mu        controlBlock
}

func newPacketClient(cfg config.Client) *packetClient {
	return &packetClient{cfg: cfg}
}

func (c *packetClient) RegisterFuncError(f FuncError) { c.errFn.Store(&f) }

func (c *packetClient) reportError(err error) {
	if e := ErrorFilter(err); e != nil {
		if p := c.errFn.Load(); p != nil && *p != nil {
			(*p)(e)
		}
	}
}

func (c *packetClient) Connect(ctx context.Context) error {
	conn, err := dialWithFallback(ctx, c.cfg.Network.String(), c.cfg.Address)
	if err != nil {
		return err
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.conn = conn
	c.connected.Store(true)
	return nil
}

func (c *packetClient) Read(p []byte) (int, error) {
	n, err := c.conn.Read(p)
	if err != nil {
		c.connected.Store(false)
	}
	c.reportError(err)
	return n, err
}

func (c *packetClient) Write(p []byte) (int, error) {
	n, err := c.conn.Write(p)
	if err != nil {
		c.connected.Store(false)
	}
	c.reportError(err)
	return n, err
}

func (c *packetClient) Once(ctx context.Context, req []byte, resp func(r interface {
	Read(p []byte) (int, error)
})) error {
	if _, err := c.Write(req); err != nil {
		return err
	}
	resp(c.conn)
	return nil
}

func (c *packetClient) Close() error {
	if !c.mu.Acquire() {
		return nil
	}
	c.connected.Store(false)
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *packetClient) IsConnected() bool { return c.connected.Load() }
