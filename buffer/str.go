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

import "strings"

// Str is a string-backed Buffer for bytes that arrive in read-sized
// chunks across several reads and are parsed as a whole once complete.
// No other package in this module uses it; oncrpc.RecordReader
// accumulates into a plain byte slice.
//
// strings.Builder never shrinks, which matches the accumulate-then-
// parse-once usage pattern: the buffer is built up, drained once via
// Get, and then discarded rather than reused.
type Str struct {
	b   strings.Builder
	rd  string
	off int
	max int
}

// NewStr returns an empty Str buffer bounded by max bytes (0 = unbounded).
func NewStr(max int) *Str {
	return &Str{max: max}
}

func (s *Str) Put(src []byte) int {
	if src == nil {
		return 0
	}
	if s.max > 0 && s.Size()+len(src) > s.max {
		src = src[:s.max-s.Size()]
	}
	s.b.Write(src)
	return len(src)
}

func (s *Str) Get(dst []byte) int {
	if s.rd == "" && s.b.Len() > 0 {
		s.rd = s.b.String()
		s.off = 0
	}
	n := copy(dst, s.rd[s.off:])
	s.off += n
	return n
}

func (s *Str) Size() int {
	if s.rd != "" {
		return len(s.rd) - s.off
	}
	return s.b.Len()
}

func (s *Str) Capacity() int {
	return s.max
}

// Advance is not supported: a Str only ever receives bytes through Put.
func (s *Str) Advance(n int) int {
	return 0
}

// String returns the full unconsumed content without consuming it.
func (s *Str) String() string {
	if s.rd != "" {
		return s.rd[s.off:]
	}
	return s.b.String()
}
