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

// Package buffer implements the chainable byte containers that every
// codec and socket operation in this module passes data through: a
// heap-backed growable buffer, a string-backed buffer sized for
// accumulating framed records, and a gather buffer wrapping net.Buffers
// for vectored writes.
//
// All three share the same minimal contract so that the completion
// layer (package socket) and the codecs (packages header, httpcodec,
// oncrpc) can treat a Buffer as opaque: Get consumes, Put appends, Size
// reports what Get can still return, Capacity reports the upper bound
// (0 meaning unbounded).
package buffer

// Buffer is the common contract for every buffer variant in this
// module. Get and Put are intentionally not io.Reader/io.Writer: the
// semantics (consuming vs. non-consuming, partial reads never erroring)
// differ enough from the stdlib interfaces that reusing them would be
// misleading at call sites that branch on the returned count.
type Buffer interface {
	// Get copies up to len(dst) bytes into dst, removing them from the
	// buffer, and returns how many bytes were actually copied.
	Get(dst []byte) int

	// Put appends src to the buffer, growing it as permitted by
	// Capacity, and returns how many bytes were actually appended.
	Put(src []byte) int

	// Size reports the number of bytes currently available to Get.
	Size() int

	// Capacity reports the upper bound this buffer will grow to, or 0
	// if unbounded.
	Capacity() int

	// Advance grows Size by n without copying, used after a datagram
	// receive has written directly into spare storage past Size (for
	// Heap, the region returned by Reserve).
	// Returns the number of bytes actually advanced, capped by Capacity.
	Advance(n int) int
}

// Gatherable is implemented by buffer variants that can hand their
// storage straight to a vectored write without copying.
type Gatherable interface {
	Buffer

	// Vectors returns the current backing byte ranges, valid until the
	// next Put or Get call.
	Vectors() [][]byte
}
