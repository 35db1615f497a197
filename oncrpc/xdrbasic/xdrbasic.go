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

// Package xdrbasic is a minimal big-endian XDR (RFC 4506) encoder and
// decoder: just enough of the standard's type set (bool, (u)int32,
// (u)int64, float64, string, opaque) to make package oncrpc
// self-testable. A full XDR marshalling kernel is an out-of-scope
// external collaborator per the system this package's caller was
// distilled from; this implementation exists only so the call/reply
// envelope has something real to round-trip through in tests.
package xdrbasic

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Codec both writes to an internal growable buffer and reads back from
// a fixed input buffer, implementing oncrpc.Marshaller.
type Codec struct {
	out []byte
	in  []byte
	pos int
}

// NewEncoder returns a Codec ready to accept Write* calls; Bytes()
// returns the encoded result.
func NewEncoder() *Codec {
	return &Codec{}
}

// NewDecoder returns a Codec that reads back data via Read* calls, in
// the order it was written.
func NewDecoder(data []byte) *Codec {
	return &Codec{in: data}
}

func (c *Codec) Bytes() []byte {
	if c.out != nil {
		return c.out
	}
	return c.in[c.pos:]
}

// pad4 rounds n up to the next multiple of 4, XDR's alignment unit.
func pad4(n int) int {
	if r := n % 4; r != 0 {
		return n + (4 - r)
	}
	return n
}

func (c *Codec) WriteBool(b bool) {
	if b {
		c.WriteUint32(1)
	} else {
		c.WriteUint32(0)
	}
}

func (c *Codec) WriteInt32(v int32) { c.WriteUint32(uint32(v)) }

func (c *Codec) WriteUint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	c.out = append(c.out, b[:]...)
}

func (c *Codec) WriteInt64(v int64) { c.WriteUint64(uint64(v)) }

func (c *Codec) WriteUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	c.out = append(c.out, b[:]...)
}

func (c *Codec) WriteFloat64(v float64) {
	c.WriteUint64(math.Float64bits(v))
}

func (c *Codec) WriteString(s string) {
	c.WriteOpaque([]byte(s))
}

// WriteOpaque writes a length-prefixed, 4-byte-aligned byte string, the
// XDR "variable-length opaque data" shape.
func (c *Codec) WriteOpaque(b []byte) {
	c.WriteUint32(uint32(len(b)))
	c.out = append(c.out, b...)
	if pad := pad4(len(b)) - len(b); pad > 0 {
		c.out = append(c.out, make([]byte, pad)...)
	}
}

func (c *Codec) ReadBool() (bool, error) {
	v, err := c.ReadUint32()
	return v != 0, err
}

func (c *Codec) ReadInt32() (int32, error) {
	v, err := c.ReadUint32()
	return int32(v), err
}

func (c *Codec) ReadUint32() (uint32, error) {
	if len(c.in)-c.pos < 4 {
		return 0, fmt.Errorf("xdrbasic: truncated uint32")
	}
	v := binary.BigEndian.Uint32(c.in[c.pos : c.pos+4])
	c.pos += 4
	return v, nil
}

func (c *Codec) ReadInt64() (int64, error) {
	v, err := c.ReadUint64()
	return int64(v), err
}

func (c *Codec) ReadUint64() (uint64, error) {
	if len(c.in)-c.pos < 8 {
		return 0, fmt.Errorf("xdrbasic: truncated uint64")
	}
	v := binary.BigEndian.Uint64(c.in[c.pos : c.pos+8])
	c.pos += 8
	return v, nil
}

func (c *Codec) ReadFloat64() (float64, error) {
	v, err := c.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

func (c *Codec) ReadString() (string, error) {
	b, err := c.ReadOpaque()
	return string(b), err
}

func (c *Codec) ReadOpaque() ([]byte, error) {
	n, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	total := pad4(int(n))
	if len(c.in)-c.pos < total {
		return nil, fmt.Errorf("xdrbasic: truncated opaque data")
	}
	b := c.in[c.pos : c.pos+int(n)]
	c.pos += total
	return b, nil
}
