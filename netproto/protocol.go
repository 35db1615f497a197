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

// Package netproto names the network protocols a socket endpoint can bind
// or dial: the plain net.Dial network strings (tcp, tcp4, tcp6, udp, udp4,
// udp6, ip, ip4, ip6, unix, unixgram) plus a zero value for "not set".
//
// socket/config stores the protocol as this enum rather than a bare
// string so validation and the listen/dial dispatch in package socket can
// switch on it instead of string-comparing everywhere.
package netproto

import (
	"bytes"
	"strconv"
	"strings"
)

// Protocol identifies a network transport. The zero value, Empty, means
// no protocol was configured.
type Protocol uint8

const (
	Empty Protocol = iota
	Unix
	TCP
	TCP4
	TCP6
	UDP
	UDP4
	UDP6
	IP
	IP4
	IP6
	UnixGram
)

var names = map[Protocol]string{
	Unix:     "unix",
	TCP:      "tcp",
	TCP4:     "tcp4",
	TCP6:     "tcp6",
	UDP:      "udp",
	UDP4:     "udp4",
	UDP6:     "udp6",
	IP:       "ip",
	IP4:      "ip4",
	IP6:      "ip6",
	UnixGram: "unixgram",
}

var byName map[string]Protocol

func init() {
	byName = make(map[string]Protocol, len(names))
	for p, n := range names {
		byName[n] = p
	}
}

// String returns the net.Dial-compatible network name, or "" if p is
// Empty or not a recognized value.
func (p Protocol) String() string {
	return names[p]
}

// Code is an alias for String kept for symmetry with the rest of this
// module's enum types, all of which expose both names.
func (p Protocol) Code() string {
	return p.String()
}

// Int returns the numeric value of p, or 0 if p is out of range.
func (p Protocol) Int() int {
	if _, ok := names[p]; !ok && p != Empty {
		return 0
	}
	return int(p)
}

// Int64 is Int as an int64.
func (p Protocol) Int64() int64 {
	return int64(p.Int())
}

// Uint is Int as a uint.
func (p Protocol) Uint() uint {
	return uint(p.Int())
}

// Uint64 is Int as a uint64.
func (p Protocol) Uint64() uint64 {
	return uint64(p.Int())
}

// IsStream reports whether p is a stream-oriented (TCP-family or Unix
// stream socket) protocol, as opposed to a datagram one.
func (p Protocol) IsStream() bool {
	switch p {
	case TCP, TCP4, TCP6, Unix:
		return true
	default:
		return false
	}
}

// IsDatagram reports whether p is a datagram-oriented protocol.
func (p Protocol) IsDatagram() bool {
	switch p {
	case UDP, UDP4, UDP6, UnixGram:
		return true
	default:
		return false
	}
}

// Parse resolves a protocol name to a Protocol, trimming surrounding
// whitespace, a single layer of ` "`/backtick quoting, and matching
// case-insensitively. Unrecognized input returns Empty rather than an
// error: callers treat Empty as "not configured" uniformly.
func Parse(s string) Protocol {
	s = strings.TrimSpace(s)
	s = unquote(s)
	s = strings.TrimSpace(s)
	return byName[strings.ToLower(s)]
}

// ParseBytes is Parse over a byte slice, avoiding a string copy when the
// caller already has one (e.g. off a wire read).
func ParseBytes(b []byte) Protocol {
	if len(b) == 0 {
		return Empty
	}
	return Parse(string(b))
}

// ParseInt64 resolves a numeric protocol value back to a Protocol.
// Negative values, 0 and anything outside the enum's range return Empty.
func ParseInt64(v int64) Protocol {
	if v <= 0 || v > 255 {
		return Empty
	}
	p := Protocol(uint8(v))
	if _, ok := names[p]; !ok {
		return Empty
	}
	return p
}

func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	pairs := [][2]byte{{'"', '"'}, {'`', '`'}}
	for _, p := range pairs {
		if s[0] == p[0] && s[len(s)-1] == p[1] {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// MarshalJSON renders p as its JSON string form, an empty string for
// Empty or an unrecognized value.
func (p Protocol) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(p.String())), nil
}

// UnmarshalJSON resolves a JSON string back into a Protocol via Parse.
func (p *Protocol) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(bytes.TrimSpace(data)))
	if err != nil {
		s = string(data)
	}
	*p = Parse(s)
	return nil
}

// MarshalText implements encoding.TextMarshaler for config decoders that
// use it instead of JSON (e.g. mapstructure-based viper unmarshaling).
func (p Protocol) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Protocol) UnmarshalText(text []byte) error {
	*p = ParseBytes(text)
	return nil
}
