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

// Package rpcuri parses the scheme-encodes-transport URI grammar the
// client engine dispatches on: a suffix of 's' engages TLS, a suffix of
// 'u' engages UDP, anything else is plain TCP. It is a thin wrapper over
// net/url, the same way the teacher's httpcli leans on net/url directly
// rather than a bespoke URI parser.
package rpcuri

import (
	"net/url"
	"strings"

	liberr "github.com/nabbar/flog/errors"
)

const (
	ErrorMissingScheme liberr.CodeError = iota + liberr.MinPkgURI + 1
	ErrorUnknownScheme
	ErrorMissingHost
	ErrorMissingPort
)

func init() {
	liberr.RegisterMessages(liberr.MinPkgURI, func(c liberr.CodeError) string {
		switch c {
		case ErrorMissingScheme:
			return "rpcuri: URI has no scheme"
		case ErrorUnknownScheme:
			return "rpcuri: unrecognized scheme"
		case ErrorMissingHost:
			return "rpcuri: URI has no host"
		case ErrorMissingPort:
			return "rpcuri: URI has no port and its scheme has no default"
		default:
			return ""
		}
	})
}

// baseSchemes is the set of recognized scheme roots, stripped of their
// trailing 's'/'u' transport suffix, with their default port (empty
// meaning "no default, port is required").
var baseSchemes = map[string]string{
	"http":   "80",
	"oncrpc": "",
}

// URI is a parsed scheme ::= "http" | "https" | "oncrpc" | "oncrpcs" |
// "oncrpcu" endpoint reference, decomposed into the transport selection
// a client engine needs to pick a socket kind.
type URI struct {
	Raw      *url.URL
	Scheme   string // base scheme, suffix stripped: "http" or "oncrpc"
	Host     string
	Port     string
	Resource string
	TLS      bool
	UDP      bool
}

// Parse decomposes raw per the scheme suffix convention: trailing 's'
// engages TLS, trailing 'u' engages UDP, any other scheme is plain TCP.
// Port defaults to 80 for the http family when omitted; every other
// family requires an explicit port.
func Parse(raw string) (*URI, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" {
		return nil, ErrorMissingScheme.Error()
	}
	if u.Host == "" {
		return nil, ErrorMissingHost.Error()
	}

	scheme := strings.ToLower(u.Scheme)
	tls := false
	udp := false
	base := scheme

	switch {
	case strings.HasSuffix(scheme, "s"):
		base = strings.TrimSuffix(scheme, "s")
		tls = true
	case strings.HasSuffix(scheme, "u"):
		base = strings.TrimSuffix(scheme, "u")
		udp = true
	}

	defPort, ok := baseSchemes[base]
	if !ok {
		return nil, ErrorUnknownScheme.Error()
	}

	port := u.Port()
	if port == "" {
		if defPort == "" {
			return nil, ErrorMissingPort.Error()
		}
		port = defPort
	}

	return &URI{
		Raw:      u,
		Scheme:   base,
		Host:     u.Hostname(),
		Port:     port,
		Resource: u.RequestURI(),
		TLS:      tls,
		UDP:      udp,
	}, nil
}

// Address renders host:port, the form net.Dial and socket/config.Client
// expect.
func (u *URI) Address() string {
	return u.Host + ":" + u.Port
}
