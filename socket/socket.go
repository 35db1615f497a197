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

// Package socket provides the asynchronous connection-oriented runtime
// every protocol-specific client/server in this module builds on: a
// Context handed to a HandlerFunc for each accepted or dialed
// connection, a ConnState lifecycle, and the Server/Client ports a
// concrete tcp/udp/unix socket implements.
package socket

import (
	"context"
	"net"
	"strings"
)

// DefaultBufferSize is the read/write scratch buffer size used when a
// caller does not size one explicitly.
const DefaultBufferSize = 32 * 1024

// EOL is the line terminator used by the line-oriented codecs built on
// top of a socket Context (header, HTTP status lines).
const EOL = byte('\n')

// ErrorFilter drops errors that are the expected side effect of a
// deliberate connection shutdown (a goroutine's blocking Read/Write
// unblocking because Close ran underneath it) so callers can log real
// failures without being spammed by the shutdown path.
func ErrorFilter(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "use of closed network connection") {
		return nil
	}
	return err
}

// ConnState names a point in a connection's lifecycle, reported to a
// registered FuncInfo callback as the connection progresses.
type ConnState uint8

const (
	ConnectionDial ConnState = iota
	ConnectionNew
	ConnectionRead
	ConnectionCloseRead
	ConnectionHandler
	ConnectionWrite
	ConnectionCloseWrite
	ConnectionClose
)

func (c ConnState) String() string {
	switch c {
	case ConnectionDial:
		return "Dial Connection"
	case ConnectionNew:
		return "New Connection"
	case ConnectionRead:
		return "Read Incoming Stream"
	case ConnectionCloseRead:
		return "Close Incoming Stream"
	case ConnectionHandler:
		return "Run HandlerFunc"
	case ConnectionWrite:
		return "Write Outgoing Steam"
	case ConnectionCloseWrite:
		return "Close Outgoing Stream"
	case ConnectionClose:
		return "Close Connection"
	default:
		return "unknown connection state"
	}
}

// FuncError receives errors surfaced by a Server or Client as they
// occur. Errors already filtered by ErrorFilter are never passed here.
type FuncError func(errs ...error)

// FuncInfo is notified of every ConnState transition for a connection,
// along with the local and remote addresses involved.
type FuncInfo func(local, remote net.Addr, state ConnState)

// HandlerFunc processes one accepted or dialed connection through the
// Context given to it. The Context is only valid for the duration of
// the call; the socket runtime closes it when the handler returns.
type HandlerFunc func(ctx Context)

// Context is the per-connection handle a HandlerFunc operates on: a
// context.Context so handlers can honour cancellation/deadlines the
// same way any other Go API does, plus the raw byte stream and the
// address/state introspection a handler needs.
type Context interface {
	context.Context

	// Read and Write pass straight through to the underlying net.Conn.
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)

	// Close ends the connection. Safe to call multiple times.
	Close() error

	// IsConnected reports whether the underlying connection is still
	// open from this Context's point of view.
	IsConnected() bool

	// LocalHost and RemoteHost render the connection's local and
	// remote net.Addr as strings, or "" when no address is known. They
	// keep reporting the addresses after Close.
	LocalHost() string
	RemoteHost() string
}

// Server is a listening socket endpoint: it accepts connections and
// dispatches each to the registered HandlerFunc until Shutdown or Close
// is called or the context given to Listen ends.
type Server interface {
	// RegisterFuncError installs the callback used to report errors
	// not filtered by ErrorFilter. Safe to call before or after Listen.
	RegisterFuncError(f FuncError)

	// RegisterFuncInfo installs the callback used to report ConnState
	// transitions.
	RegisterFuncInfo(f FuncInfo)

	// Listen binds (if not already bound) and accepts connections
	// until ctx is done or Close/Shutdown is called. It blocks.
	Listen(ctx context.Context) error

	// Shutdown closes the listener and waits for Listen to return, or
	// for ctx to expire, whichever comes first. It does not wait for
	// handlers already running; OpenConnections reports those.
	Shutdown(ctx context.Context) error

	// Close closes the listener. Connections already accepted are not
	// closed by it; they stay with their handlers.
	Close() error

	// IsRunning reports whether Listen is currently accepting.
	IsRunning() bool

	// IsGone reports whether the server has fully stopped (the
	// complement of IsRunning once Listen has returned).
	IsGone() bool

	// OpenConnections reports the number of connections currently
	// being served.
	OpenConnections() int64
}

// Client is a single outbound connection: it dials once, then Read and
// Write operate on that connection until Close.
type Client interface {
	// RegisterFuncError installs the callback used to report errors
	// not filtered by ErrorFilter.
	RegisterFuncError(f FuncError)

	// Connect dials the configured remote address. Calling it again
	// after a successful dial re-dials, closing any prior connection.
	Connect(ctx context.Context) error

	// Read and Write operate on the dialed connection. Connect must
	// have succeeded first.
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)

	// Once writes req and invokes resp with the reply stream, for the
	// common one-shot request/response pattern over a connection that
	// is otherwise managed by the caller.
	Once(ctx context.Context, req []byte, resp func(r interface {
		Read(p []byte) (int, error)
	})) error

	// Close ends the connection. Safe to call multiple times.
	Close() error

	// IsConnected reports whether Connect has succeeded and Close has
	// not since been called.
	IsConnected() bool
}
