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

package buffer

import "net"

// Gather wraps net.Buffers, Go's native scatter/gather vector type: on
// platforms with writev support, (*net.Buffers).WriteTo issues a single
// vectored syscall instead of one write per segment. It is the idiomatic
// Go stand-in for the spec's externally-owned iovec array (spec §4.1,
// §4.5): the RFC 822 header codec builds one from {name, ": ", value,
// "\r\n"} quadruples without copying the header bytes into one
// contiguous buffer first.
//
// Get is not supported: a Gather exists to be hand straight to a
// vectored write, never to be read back byte-by-byte.
type Gather struct {
	segs net.Buffers
}

// NewGather wraps the given byte ranges as a Gather buffer. The caller
// retains ownership of the underlying storage; Gather only holds the
// slice headers.
func NewGather(segs ...[]byte) *Gather {
	g := &Gather{}
	for _, s := range segs {
		g.segs = append(g.segs, s)
	}
	return g
}

func (g *Gather) Get(dst []byte) int {
	// Gather buffers are write-only by contract (spec §4.1); callers
	// that need to consume bytes should use Heap or Str instead.
	return 0
}

func (g *Gather) Put(src []byte) int {
	g.segs = append(g.segs, src)
	return len(src)
}

func (g *Gather) Size() int {
	n := 0
	for _, s := range g.segs {
		n += len(s)
	}
	return n
}

func (g *Gather) Capacity() int {
	return 0
}

// Advance is not supported: a Gather only ever receives segments through
// Put, it never owns storage a kernel write could land in directly.
func (g *Gather) Advance(n int) int {
	return 0
}

func (g *Gather) Vectors() [][]byte {
	out := make([][]byte, len(g.segs))
	copy(out, g.segs)
	return out
}

// Buffers returns the net.Buffers this Gather wraps, ready to be passed
// to (*net.TCPConn).Write or handed to net.Buffers.WriteTo directly.
func (g *Gather) Buffers() net.Buffers {
	out := make(net.Buffers, len(g.segs))
	copy(out, g.segs)
	return out
}
