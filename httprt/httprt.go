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

// Package httprt is the thin HTTP façade spec.md §4.10 describes: it
// picks the http/https scheme default, builds httpcodec.Request/Response
// objects, and exposes the convenience GET/PUT operations that build one
// request, send it through engine.Client's single in-flight response
// slot, and return the parsed response synchronously.
package httprt

import (
	"context"

	liberr "github.com/nabbar/flog/errors"
	"github.com/nabbar/flog/engine"
	"github.com/nabbar/flog/header"
	"github.com/nabbar/flog/httpcodec"
)

// maxResponseBuffer bounds how much unparseable data Deserialize will
// keep accumulating before giving up and reporting malformed — a
// response whose start line or headers are simply never going to arrive
// must not loop forever waiting for "more bytes".
const maxResponseBuffer = 8 * 1024 * 1024

// Client is a single-target HTTP client: one engine.Client, reused
// across every GET/PUT call, with its own idle-socket pool.
type Client struct {
	eng *engine.Client
}

// NewClient targets baseURI (an http:// or https:// URI naming the host
// and port; the resource path is supplied per-call).
func NewClient(baseURI string, opts ...engine.ClientOption) (*Client, error) {
	eng, err := engine.NewClient(baseURI, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{eng: eng}, nil
}

// Stats returns the underlying engine.Client's benchmark counters.
func (c *Client) Stats() engine.StatsSnapshot { return c.eng.Stats() }

// GET issues a GET request for resource and waits for the response.
func (c *Client) GET(ctx context.Context, resource string) (*httpcodec.Response, error) {
	return c.do(ctx, "GET", resource, nil)
}

// PUT issues a PUT request for resource with body and waits for the
// response.
func (c *Client) PUT(ctx context.Context, resource string, body []byte) (*httpcodec.Response, error) {
	return c.do(ctx, "PUT", resource, body)
}

func (c *Client) do(ctx context.Context, method, resource string, body []byte) (*httpcodec.Response, error) {
	req := &httpcodec.Request{
		Method: method,
		URI:    resource,
		Message: httpcodec.Message{
			Minor: 1,
			Headers: []header.Field{
				{Name: []byte("User-Agent"), Value: []byte(httpcodec.DefaultUserAgent)},
			},
			Body: body,
		},
	}

	done := make(chan struct{})
	var resp *httpcodec.Response
	var outErr error

	c.eng.Send(ctx, &requestAdapter{req: req}, func(r engine.Response, err error) {
		defer close(done)
		if err != nil {
			outErr = err
			return
		}
		resp = r.(*responseAdapter).resp
	})

	select {
	case <-done:
		return resp, outErr
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// requestAdapter makes *httpcodec.Request satisfy engine.Request.
type requestAdapter struct {
	req *httpcodec.Request
}

func (a *requestAdapter) Serialize() []byte { return a.req.Serialize() }

func (a *requestAdapter) CreateResponse() engine.Response { return &responseAdapter{} }

// responseAdapter makes *httpcodec.Response satisfy engine.Response.
// httpcodec's DeserializeResponse is a one-shot, full-message parse (see
// httpcodec's own documented simplification) that re-runs against the
// full accumulated buffer on every call. httpcodec.ErrorIncomplete is
// its explicit "need more bytes" signal (a declared Content-Length
// longer than what has arrived so far); any other error — a still-
// arriving start line/header block, or genuinely malformed input — is
// likewise treated as "need more" up to maxResponseBuffer, since those
// cases are not yet distinguished from one another below the start
// line.
type responseAdapter struct {
	resp *httpcodec.Response
}

func (a *responseAdapter) Deserialize(buf []byte) int {
	resp, _, err := httpcodec.DeserializeResponse(buf)
	if err != nil {
		if liberr.HasCode(err, httpcodec.ErrorIncomplete) {
			return 1
		}
		if len(buf) > maxResponseBuffer {
			return -1
		}
		return 1
	}
	a.resp = resp
	return 0
}
