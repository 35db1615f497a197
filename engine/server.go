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
	"net"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/nabbar/flog/socket"
	"github.com/nabbar/flog/socket/config"
)

// Server drives socket.Server's HandlerFunc contract with the read/
// deserialize/dispatch loop spec.md §4.9 describes: read into a buffer,
// attempt to deserialize the message accumulated so far, loop on
// "need more", deliver to Handler on success (then loop again for the
// next message on the same connection), and close on malformed input.
type Server struct {
	socket.Server

	newMessage func() ServerMessage
	handle     Handler
	stats      Stats
}

// NewServer builds a Server listening per cfg. newMessage constructs a
// fresh ServerMessage for each inbound message; handle is invoked once
// per fully-deserialized message, with a Responder bound to whatever
// sent it (the open connection for TCP/TLS, the remembered peer address
// for UDP). traceLog, if non-nil, wraps the built socket.Server with
// socket.TracingServer, the listener-side counterpart to the per-dial
// socket.TracingClient wiring engine.Client's WithTraceLog offers.
func NewServer(cfg config.Server, newMessage func() ServerMessage, handle Handler, updateConn func(net.Conn), traceLog *logrus.Entry) (*Server, error) {
	s := &Server{newMessage: newMessage, handle: handle}
	s.stats.bindTarget(cfg.Address)
	inner, err := socket.NewServer(cfg, s.serve, updateConn)
	if err != nil {
		return nil, err
	}
	if traceLog != nil {
		inner = socket.TracingServer(inner, traceLog)
	}
	s.Server = inner
	return s, nil
}

// Stats returns a snapshot of this server's benchmark counters.
func (s *Server) Stats() StatsSnapshot {
	return s.stats.Snapshot()
}

// Collector exposes this server's benchmark counters as a
// prometheus.Collector, labeled by listen address, for registration
// against a prometheus.Registerer.
func (s *Server) Collector() prometheus.Collector {
	return &s.stats
}

func (s *Server) serve(ctx socket.Context) {
	r := &connResponder{ctx: ctx, stats: &s.stats}
	for {
		msg := s.newMessage()
		var buf []byte
		done := false
		for !done {
			chunk := make([]byte, socket.DefaultBufferSize)
			n, err := ctx.Read(chunk)
			if err != nil || n == 0 {
				return
			}
			buf = append(buf, chunk[:n]...)

			switch rc := msg.Deserialize(buf); {
			case rc == 0:
				s.stats.received.Add(1)
				s.handle(msg, r)
				done = true
			case rc < 0:
				s.stats.malformed.Add(1)
				return
			default:
				continue
			}
		}
	}
}

// connResponder binds Responder.Respond to a socket.Context's Write,
// which already resolves to the right destination (open stream, or
// WriteTo the remembered UDP peer) without this package needing to know
// which.
type connResponder struct {
	ctx   socket.Context
	stats *Stats
}

func (r *connResponder) Respond(payload []byte) error {
	_, err := r.ctx.Write(payload)
	if err == nil {
		r.stats.sent.Add(1)
	}
	return err
}
