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
	"sync/atomic"
)

// connContext is the concrete Context handed to a HandlerFunc for one
// stream connection (tcp, tls, unix). It composes a cancellable
// context.Context (so Deadline/Done/Err/Value all come for free) with
// the net.Conn the handler reads and writes.
type connContext struct {
	context.Context
	cancel context.CancelFunc

	conn      net.Conn
	connected atomic.Bool
	closeOnce controlBlock
}

func newConnContext(parent context.Context, conn net.Conn) *connContext {
	ctx, cancel := context.WithCancel(parent)
	c := &connContext{Context: ctx, cancel: cancel, conn: conn}
	c.connected.Store(true)
	return c
}

func (c *connContext) Read(p []byte) (int, error) {
	n, err := c.conn.Read(p)
	if err != nil {
		c.connected.Store(false)
	}
	return n, err
}

func (c *connContext) Write(p []byte) (int, error) {
	n, err := c.conn.Write(p)
	if err != nil {
		c.connected.Store(false)
	}
	return n, err
}

func (c *connContext) Close() error {
	if !c.closeOnce.Acquire() {
		return nil
	}
	c.connected.Store(false)
	c.cancel()
	return c.conn.Close()
}

func (c *connContext) IsConnected() bool {
	return c.connected.Load()
}

func (c *connContext) LocalHost() string {
	if c.conn == nil || c.conn.LocalAddr() == nil {
		return ""
	}
	return c.conn.LocalAddr().String()
}

func (c *connContext) RemoteHost() string {
	if c.conn == nil || c.conn.RemoteAddr() == nil {
		return ""
	}
	return c.conn.RemoteAddr().String()
}
