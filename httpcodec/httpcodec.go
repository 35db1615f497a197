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

// Package httpcodec implements the minimal HTTP/1.1 request/response
// wire format this module's engines speak: a start line, an RFC 822
// header block (package header), and an optional body whose length
// comes from Content-Length — chunked transfer-encoding is explicitly
// unsupported on the inbound path, matching the source this module was
// distilled from.
package httpcodec

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	liberr "github.com/nabbar/flog/errors"
	"github.com/nabbar/flog/header"
)

const (
	ErrorFraming liberr.CodeError = iota + liberr.MinPkgHTTP + 1
	ErrorChunked
	ErrorNoStatusLine
	ErrorNoRequestLine
	ErrorIncomplete
)

func init() {
	liberr.RegisterMessages(liberr.MinPkgHTTP, func(c liberr.CodeError) string {
		switch c {
		case ErrorFraming:
			return "malformed HTTP start line"
		case ErrorChunked:
			return "chunked transfer-encoding is not supported"
		case ErrorNoStatusLine:
			return "response missing status line"
		case ErrorNoRequestLine:
			return "request missing request line"
		case ErrorIncomplete:
			return "body not fully received yet"
		default:
			return ""
		}
	})
}

// DefaultUserAgent is attached by client convenience helpers that do
// not set their own.
const DefaultUserAgent = "Flog 0.99"

const maxMethodLen = 16

// Message is the shared shape of an HTTP/1.1 request or response once
// the start line has been stripped: headers plus an optional body.
type Message struct {
	Minor   int // HTTP/1.<Minor>
	Headers []header.Field
	Body    []byte
}

// ContentLength returns the message's declared Content-Length, trying
// both common header-name spellings, or -1 if absent/unparsable.
func (m *Message) ContentLength() int {
	v := header.GetFold(m.Headers, "Content-Length", nil)
	if v == nil {
		return -1
	}
	n, err := strconv.Atoi(string(v))
	if err != nil {
		return -1
	}
	return n
}

// IsChunked reports whether Transfer-Encoding: chunked is present.
func (m *Message) IsChunked() bool {
	v := header.GetFold(m.Headers, "Transfer-Encoding", nil)
	return bytes.EqualFold(bytes.TrimSpace(v), []byte("chunked"))
}

// Expect100Continue reports whether the message carries
// "Expect: 100-continue".
func (m *Message) Expect100Continue() bool {
	v := header.GetFold(m.Headers, "Expect", nil)
	return bytes.EqualFold(bytes.TrimSpace(v), []byte("100-continue"))
}

// deserializeBody implements spec §4.6's body-attachment rule given the
// headers have already been parsed and rest is whatever input remains
// after the header block. Per SPEC_FULL.md §9's "require Content-Length
// and accumulate into a sized buffer" decision, a declared
// Content-Length longer than what has arrived so far is reported as
// ErrorIncomplete rather than silently truncated — the caller is
// expected to feed more bytes and retry, the same "need more" contract
// package oncrpc's record framing uses.
func deserializeBody(m *Message, rest []byte) error {
	if m.IsChunked() {
		return ErrorChunked.Error()
	}
	n := m.ContentLength()
	if n <= 0 {
		return nil
	}
	if m.Expect100Continue() {
		return nil
	}
	if n > len(rest) {
		return ErrorIncomplete.Error()
	}
	m.Body = rest[:n]
	return nil
}

// Request is an HTTP/1.1 request: method, URI, and the shared Message
// fields.
type Request struct {
	Method string
	URI    string
	Message
}

// DeserializeRequest parses a complete request (start line, headers,
// and as much of the body as Content-Length declares) out of data. The
// header block itself is read through header.Parser, which is
// restartable; the front matter (method/URI/version) is not, since a
// request line never spans a meaningful fraction of a buffer refill in
// practice — a simplification from spec.md's fully incremental model,
// documented as such.
func DeserializeRequest(data []byte) (*Request, int, error) {
	method, rest, n1, err := scanToken(data, ' ', maxMethodLen)
	if err != nil {
		return nil, 0, ErrorNoRequestLine.Error()
	}
	uri, rest, n2, err := scanToken(rest, ' ', 0)
	if err != nil {
		return nil, 0, ErrorNoRequestLine.Error()
	}
	minor, rest, n3, err := scanVersion(rest)
	if err != nil {
		return nil, 0, err
	}

	p := header.NewParser()
	hn, err := p.Feed(rest)
	if err != nil {
		return nil, 0, err
	}
	if !p.Done() {
		return nil, 0, ErrorFraming.Error()
	}

	req := &Request{
		Method: string(method),
		URI:    string(uri),
		Message: Message{
			Minor:   minor,
			Headers: p.Fields(),
		},
	}

	consumed := n1 + n2 + n3 + hn
	if err := deserializeBody(&req.Message, rest[hn:]); err != nil {
		return nil, 0, err
	}
	consumed += len(req.Body)
	return req, consumed, nil
}

// Serialize emits "METHOD URI HTTP/1.1\r\n" followed by the header
// block and, if present, the body. Content-Length is computed and
// inserted when a body is attached and the header is absent.
func (r *Request) Serialize() []byte {
	headers := withContentLength(r.Headers, r.Body)

	var buf bytes.Buffer
	buf.WriteString(r.Method)
	buf.WriteByte(' ')
	buf.WriteString(r.URI)
	buf.WriteString(fmt.Sprintf(" HTTP/1.%d\r\n", r.Minor))

	g := header.Serialize(headers)
	for _, seg := range g.Buffers() {
		buf.Write(seg)
	}
	buf.Write(r.Body)
	return buf.Bytes()
}

// Response is an HTTP/1.1 response: status line plus the shared
// Message fields.
type Response struct {
	Status int
	Reason string
	Message
}

// DeserializeResponse parses a complete response out of data, the
// mirror of DeserializeRequest.
func DeserializeResponse(data []byte) (*Response, int, error) {
	if len(data) < len("HTTP/1.x ") {
		return nil, 0, ErrorNoStatusLine.Error()
	}
	minor, rest, n1, err := scanVersionFirst(data)
	if err != nil {
		return nil, 0, err
	}
	statusTok, rest, n2, err := scanToken(rest, ' ', 3)
	if err != nil {
		return nil, 0, ErrorNoStatusLine.Error()
	}
	status, err := strconv.Atoi(string(statusTok))
	if err != nil {
		return nil, 0, ErrorNoStatusLine.Error()
	}
	reason, rest, n3, err := scanToCR(rest)
	if err != nil {
		return nil, 0, ErrorNoStatusLine.Error()
	}

	p := header.NewParser()
	hn, err := p.Feed(rest)
	if err != nil {
		return nil, 0, err
	}
	if !p.Done() {
		return nil, 0, ErrorFraming.Error()
	}

	resp := &Response{
		Status: status,
		Reason: string(reason),
		Message: Message{
			Minor:   minor,
			Headers: p.Fields(),
		},
	}

	consumed := n1 + n2 + n3 + hn
	if err := deserializeBody(&resp.Message, rest[hn:]); err != nil {
		return nil, 0, err
	}
	consumed += len(resp.Body)
	return resp, consumed, nil
}

// Serialize emits one of the fixed status lines (falling back to 500
// for an unrecognized code), the header block with a Date header always
// inserted, and the body.
func (r *Response) Serialize() []byte {
	line := StatusLine(r.Status)

	headers := withContentLength(r.Headers, r.Body)
	headers = header.Set(headers, "Date", []byte(time.Now().UTC().Format(http.TimeFormat)))

	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("HTTP/1.%d ", r.Minor))
	buf.WriteString(line)
	buf.WriteString("\r\n")

	g := header.Serialize(headers)
	for _, seg := range g.Buffers() {
		buf.Write(seg)
	}
	buf.Write(r.Body)
	return buf.Bytes()
}

func withContentLength(headers []header.Field, body []byte) []header.Field {
	if len(body) == 0 {
		return headers
	}
	if header.GetFold(headers, "Content-Length", nil) != nil {
		return headers
	}
	return header.Set(headers, "Content-Length", []byte(strconv.Itoa(len(body))))
}
