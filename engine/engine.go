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

// Package engine implements the generic client and server state machines
// spec.md §4.8/§4.9 describe, sitting on top of package socket: a client
// that dials (or reuses a pooled connection), writes a serialized
// request, and reassembles a response off however many reads it takes;
// and a server that reassembles an inbound message the same way and
// dispatches it to a Handler with a Responder bound to whatever sent it.
// Protocol-specific wire shapes (HTTP, ONC-RPC) are supplied by the
// caller through the Request/Response/ServerMessage interfaces — this
// package owns only the dial/pool/timeout/framing-loop machinery common
// to both.
package engine

import (
	liberr "github.com/nabbar/flog/errors"
)

const (
	ErrorTimeout liberr.CodeError = iota + liberr.MinPkgEngine + 1
	ErrorMalformed
	ErrorConnect
)

func init() {
	liberr.RegisterMessages(liberr.MinPkgEngine, func(c liberr.CodeError) string {
		switch c {
		case ErrorTimeout:
			return "request timed out"
		case ErrorMalformed:
			return "malformed response"
		case ErrorConnect:
			return "connect failed"
		default:
			return ""
		}
	})
}

// Request is a single outbound call: its wire representation, and a hook
// that builds the Response object that will parse the reply it expects
// back.
type Request interface {
	Serialize() []byte
	CreateResponse() Response
}

// Response incrementally parses bytes read off the wire. Deserialize is
// handed the full buffer accumulated so far (not just the newest read)
// and reports, per spec.md §4.8: 0 once a complete response has been
// parsed, a positive value when more bytes are still needed, or a
// negative value when the buffer is malformed beyond recovery.
type Response interface {
	Deserialize(buf []byte) int
}

// ResponseFunc receives the terminal outcome of one Client.Send call:
// either a fully parsed Response, or a non-nil error classifying why one
// never arrived (connect failure, timeout, transport error, malformed
// reply).
type ResponseFunc func(resp Response, err error)

// ServerMessage is an inbound message being reassembled off an accepted
// or associated connection, with the same three-way Deserialize contract
// as Response.
type ServerMessage interface {
	Deserialize(buf []byte) int
}

// Responder is how a Handler replies to the peer that sent it a
// ServerMessage: an open stream connection for TCP/TLS, or the
// remembered source address for UDP — package socket's Context already
// hides that distinction behind Write.
type Responder interface {
	Respond(payload []byte) error
}

// Handler processes one fully-deserialized ServerMessage. A one-way
// message (no reply expected) simply never calls r.Respond.
type Handler func(msg ServerMessage, r Responder)
