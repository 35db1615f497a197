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

// Package header implements the RFC 822-style header block shared by
// the HTTP codec: an incremental, restartable parser that survives
// being fed a stream one buffer refill at a time, and a serializer that
// builds a vectored write over the parsed fields without copying them
// into one contiguous byte slice first.
//
// A scratch buffer sized for the common case (256 bytes, embedded in
// the Parser struct) absorbs header bytes as they arrive; a header
// block larger than that promotes to a heap-allocated slice, the same
// small-object/heap-promotion shape this module's buffer package uses
// for its own growable buffer.
package header

import (
	"bytes"

	liberr "github.com/nabbar/flog/errors"
)

const (
	ErrorFraming liberr.CodeError = iota + liberr.MinPkgHeader + 1
	ErrorFolded
)

func init() {
	liberr.RegisterMessages(liberr.MinPkgHeader, func(c liberr.CodeError) string {
		switch c {
		case ErrorFraming:
			return "malformed header block"
		case ErrorFolded:
			return "folded header continuation is not supported"
		default:
			return ""
		}
	})
}

const scratchSize = 256

// Field is one parsed header: Name and Value are copies, stable across
// further Feed calls (unlike slicing directly into the scratch buffer,
// which a later append could relocate).
type Field struct {
	Name  []byte
	Value []byte
}

// state follows the parser state machine the header block is read
// with: LeadingWs -> HeaderName -> NameValueSep -> HeaderValue ->
// ValueTerminator, looping back to HeaderName for the next field, or
// falling to TrailingCrlf/Done when a header-name position instead sees
// the block-terminating blank line.
type state uint8

const (
	stateLeadingWs state = iota
	stateHeaderName
	stateNameValueSep
	stateHeaderValue
	stateValueCr
	stateBlockCr
	stateDone
)

// Parser is a single-pass, restartable RFC 822 header block reader. Feed
// may be called repeatedly with successive chunks of input; each call
// either finishes the block (Done returns true) or reports that more
// input is needed, preserving parse state across calls.
type Parser struct {
	st     state
	fields []Field

	scratch [scratchSize]byte
	buf     []byte // promoted storage once scratch overflows

	name  []byte
	start int
}

// NewParser returns a Parser ready to Feed.
func NewParser() *Parser {
	p := &Parser{}
	p.buf = p.scratch[:0]
	return p
}

// Done reports whether the header block has been fully parsed (the
// terminating blank line was seen).
func (p *Parser) Done() bool {
	return p.st == stateDone
}

// Fields returns the headers parsed so far.
func (p *Parser) Fields() []Field {
	return p.fields
}

// Reset clears the parser for a new header block, reusing its scratch
// storage.
func (p *Parser) Reset() {
	p.st = stateLeadingWs
	p.fields = p.fields[:0]
	p.buf = p.scratch[:0]
	p.name = nil
	p.start = 0
}

// appendScratch appends b to the parser's scratch storage, promoting to
// a heap slice once the embedded array overflows.
func (p *Parser) appendScratch(b byte) {
	p.buf = append(p.buf, b)
}

// Feed consumes input, advancing the state machine, and returns how
// many bytes it consumed. Once Done returns true, any bytes left in
// input past n belong to the message body, not the header block. While
// !Done, Feed always consumes the whole input and the caller must
// refill and call again ("need more").
func (p *Parser) Feed(input []byte) (n int, err error) {
	for n = 0; n < len(input); n++ {
		c := input[n]
		switch p.st {
		case stateLeadingWs:
			if c == '\r' {
				p.st = stateBlockCr
				continue
			}
			if c == ' ' || c == '\t' {
				return n, ErrorFolded.Error()
			}
			p.start = len(p.buf)
			p.appendScratch(c)
			p.st = stateHeaderName

		case stateHeaderName:
			if c == ':' {
				p.name = cloneBytes(p.buf[p.start:])
				p.buf = p.buf[:p.start]
				p.st = stateNameValueSep
				continue
			}
			p.appendScratch(c)

		case stateNameValueSep:
			if c == ' ' || c == '\t' {
				continue
			}
			p.start = len(p.buf)
			p.appendScratch(c)
			p.st = stateHeaderValue

		case stateHeaderValue:
			if c == '\r' {
				val := cloneBytes(p.buf[p.start:])
				p.buf = p.buf[:p.start]
				p.fields = append(p.fields, Field{Name: p.name, Value: val})
				p.name = nil
				p.st = stateValueCr
				continue
			}
			p.appendScratch(c)

		case stateValueCr:
			if c != '\n' {
				return n, ErrorFraming.Error()
			}
			p.st = stateLeadingWs

		case stateBlockCr:
			if c != '\n' {
				return n, ErrorFraming.Error()
			}
			p.st = stateDone
			return n + 1, nil
		}
	}
	return n, nil
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Get scans the parsed fields for name, matching case-sensitively as
// stored on the wire, and returns its value or def if absent.
func Get(fields []Field, name string, def []byte) []byte {
	nb := []byte(name)
	for _, f := range fields {
		if bytes.Equal(f.Name, nb) {
			return f.Value
		}
	}
	return def
}

// GetFold scans the parsed fields for name case-insensitively, matching
// the HTTP codec's need to recognize "Content-Length" and
// "Content-length" as the same header.
func GetFold(fields []Field, name string, def []byte) []byte {
	nb := []byte(name)
	for _, f := range fields {
		if bytes.EqualFold(f.Name, nb) {
			return f.Value
		}
	}
	return def
}
