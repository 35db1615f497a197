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
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/nabbar/flog/fileperm"
	"github.com/nabbar/flog/netproto"
	"github.com/nabbar/flog/socket/config"
)

// streamServer backs every connection-oriented Server: tcp, tls-over-
// tcp, and unix domain stream sockets. The only protocol-specific
// pieces are the network string passed to net.Listen and, for unix
// sockets, fixing up the socket file's permissions after bind.
type streamServer struct {
	cfg     config.Server
	handler HandlerFunc
	update  func(net.Conn)

	queue  CompletionQueue
	timers TimerQueue

	errFn  atomic.Pointer[FuncError]
	infoFn atomic.Pointer[FuncInfo]

	listener net.Listener
	running  atomic.Bool
	open     atomic.Int64

	closeOnce controlBlock
	done      chan struct{}
}

// NewServer builds a Server for cfg.Network: tcp/tcp4/tcp6 (optionally
// TLS, per cfg.TLS), udp family, or unix/unixgram. updateConn, if
// non-nil, is called on every accepted net.Conn before the handler
// runs, letting a caller tune socket options beyond this package's
// defaults — the same hook the teacher's own socket examples expose.
func NewServer(cfg config.Server, handler HandlerFunc, updateConn func(net.Conn)) (Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch {
	case cfg.Network.IsStream():
		return &streamServer{
			cfg:     cfg,
			handler: handler,
			update:  updateConn,
			queue:   NewWorkerQueue(),
			timers:  NewTimerQueue(),
			done:    make(chan struct{}),
		}, nil
	case cfg.Network.IsDatagram():
		return newPacketServer(cfg, handler), nil
	default:
		return nil, config.ErrInvalidProtocol
	}
}

func (s *streamServer) RegisterFuncError(f FuncError) { s.errFn.Store(&f) }
func (s *streamServer) RegisterFuncInfo(f FuncInfo)    { s.infoFn.Store(&f) }

func (s *streamServer) reportError(errs ...error) {
	var filtered []error
	for _, e := range errs {
		if e = ErrorFilter(e); e != nil {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) == 0 {
		return
	}
	if p := s.errFn.Load(); p != nil && *p != nil {
		(*p)(filtered...)
	}
}

func (s *streamServer) reportInfo(local, remote net.Addr, state ConnState) {
	if p := s.infoFn.Load(); p != nil && *p != nil {
		(*p)(local, remote, state)
	}
}

func (s *streamServer) Listen(ctx context.Context) error {
	var lc net.ListenConfig

	ln, err := lc.Listen(ctx, s.cfg.Network.String(), s.cfg.Address)
	if err != nil {
		return err
	}

	if s.cfg.Network == netproto.Unix {
		if err = applyUnixPerms(s.cfg.Address, s.cfg.PermFile, s.cfg.GroupPerm); err != nil {
			_ = ln.Close()
			return err
		}
	}

	if ok, tc := s.cfg.GetTLS(); ok {
		conf, err := tc.TLSConfig()
		if err != nil {
			_ = ln.Close()
			return err
		}
		ln = tls.NewListener(ln, conf)
	}

	s.listener = ln
	s.running.Store(true)
	defer func() {
		s.running.Store(false)
		close(s.done)
	}()

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
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

		applyTCPOptions(conn)
		if s.update != nil {
			s.update(conn)
		}

		s.open.Add(1)
		s.queue.Submit(func() {
			defer s.open.Add(-1)
			s.serve(ctx, conn)
		})
	}
}

func (s *streamServer) serve(ctx context.Context, conn net.Conn) {
	cctx := newConnContext(ctx, conn)
	defer func() {
		s.reportInfo(conn.LocalAddr(), conn.RemoteAddr(), ConnectionClose)
		_ = cctx.Close()
	}()

	s.reportInfo(conn.LocalAddr(), conn.RemoteAddr(), ConnectionNew)

	var timer OperationTimer
	if s.cfg.ConIdleTimeout > 0 {
		timer = s.timers.After(s.cfg.ConIdleTimeout, func() { _ = cctx.Close() })
		defer timer.Stop()
	}

	s.reportInfo(conn.LocalAddr(), conn.RemoteAddr(), ConnectionHandler)
	s.handler(cctx)
}

func (s *streamServer) Shutdown(ctx context.Context) error {
	if s.listener != nil {
		_ = s.listener.Close()
	}
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *streamServer) Close() error {
	if !s.closeOnce.Acquire() {
		return nil
	}
	if s.listener != nil {
		return s.listener.Close()
	}
	return nil
}

func (s *streamServer) IsRunning() bool        { return s.running.Load() }
func (s *streamServer) IsGone() bool           { return !s.running.Load() }
func (s *streamServer) OpenConnections() int64 { return s.open.Load() }

// streamClient backs every connection-oriented Client: tcp, tls-over-
// tcp, and unix domain stream sockets.
type streamClient struct {
	cfg  config.Client
	conn net.Conn

	errFn     atomic.Pointer[FuncError]
	connected atomic.Bool
	mu        controlBlock
}

// NewClient builds a Client for cfg.Network.
func NewClient(cfg config.Client) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch {
	case cfg.Network.IsStream():
		return &streamClient{cfg: cfg}, nil
	case cfg.Network.IsDatagram():
		return newPacketClient(cfg), nil
	default:
		return nil, config.ErrInvalidProtocol
	}
}

func (c *streamClient) RegisterFuncError(f FuncError) { c.errFn.Store(&f) }

func (c *streamClient) reportError(err error) {
	if e := ErrorFilter(err); e != nil {
		if p := c.errFn.Load(); p != nil && *p != nil {
			(*p)(e)
		}
	}
}

func (c *streamClient) Connect(ctx context.Context) error {
	conn, err := dialWithFallback(ctx, c.cfg.Network.String(), c.cfg.Address)
	if err != nil {
		return err
	}
	applyTCPOptions(conn)

	if ok, tc, serverName := c.cfg.GetTLS(); ok {
		conf, err := tc.TLSConfig()
		if err != nil {
			_ = conn.Close()
			return err
		}
		if conf.ServerName == "" {
			conf.ServerName = serverName
		}
		conn = tls.Client(conn, conf)
	}

	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.conn = conn
	c.connected.Store(true)
	return nil
}

func (c *streamClient) Read(p []byte) (int, error) {
	n, err := c.conn.Read(p)
	if err != nil {
		c.connected.Store(false)
	}
	c.reportError(err)
	return n, err
}

func (c *streamClient) Write(p []byte) (int, error) {
	n, err := c.conn.Write(p)
	if err != nil {
		c.connected.Store(false)
	}
	c.reportError(err)
	return n, err
}

func (c *streamClient) Once(ctx context.Context, req []byte, resp func(r interface {
	Read(p []byte) (int, error)
})) error {
	if _, err := c.Write(req); err != nil {
		return err
	}
	resp(c.conn)
	return nil
}

func (c *streamClient) Close() error {
	if !c.mu.Acquire() {
		return nil
	}
	c.connected.Store(false)
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *streamClient) IsConnected() bool {
	return c.connected.Load()
}

// dialWithFallback resolves address and dials it, retrying with the
// IPv4 family if the first attempt fails because the address family is
// unsupported on this host — the common failure mode dialing an IPv6
// literal on a host with IPv6 disabled.
func dialWithFallback(ctx context.Context, network, address string) (net.Conn, error) {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, network, address)
	if err == nil {
		return conn, nil
	}
	if !isAddrFamilyErr(err) {
		return nil, err
	}

	host, port, splitErr := net.SplitHostPort(address)
	if splitErr != nil {
		return nil, err
	}
	ips, lookupErr := net.DefaultResolver.LookupIPAddr(ctx, host)
	if lookupErr != nil {
		return nil, err
	}
	for _, ip := range ips {
		if ip.IP.To4() == nil {
			continue
		}
		fallback := net.JoinHostPort(ip.IP.String(), port)
		if fbConn, fbErr := d.DialContext(ctx, fallback4(network), fallback); fbErr == nil {
			return fbConn, nil
		}
	}
	return nil, err
}

func fallback4(network string) string {
	switch network {
	case "tcp", "tcp6":
		return "tcp4"
	case "udp", "udp6":
		return "udp4"
	default:
		return network
	}
}

func isAddrFamilyErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "address family not supported") ||
		strings.Contains(msg, "network is unreachable")
}

// applyTCPOptions sets the low-level options the spec calls out for
// stream sockets (TCP_NODELAY, SO_KEEPALIVE, SO_LINGER(0)) on every
// *net.TCPConn this package hands out, server- or client-side. Applied
// after accept/dial rather than via net.ListenConfig.Control, since Go
// already exposes these as typed methods on *net.TCPConn.
func applyTCPOptions(conn net.Conn) {
	tc, ok := conn.(*net.TCPConn)
	if !ok {
		return
	}
	_ = tc.SetNoDelay(true)
	_ = tc.SetKeepAlive(true)
	_ = tc.SetKeepAlivePeriod(30 * time.Second)
	_ = tc.SetLinger(0)
}

func applyUnixPerms(path string, perm fileperm.Perm, gid int32) error {
	if perm != 0 {
		if err := os.Chmod(path, perm.FileMode()); err != nil {
			return fmt.Errorf("socket: chmod unix socket: %w", err)
		}
	}
	if gid >= 0 {
		if err := os.Chown(path, -1, int(gid)); err != nil {
			return fmt.Errorf("socket: chown unix socket: %w", err)
		}
	}
	return nil
}
