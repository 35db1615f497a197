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

// Heap is a growable, heap-backed Buffer. It is the default choice for
// request/response bodies and header scratch space: Get slides a read
// cursor forward, Put appends (growing the slice with append's normal
// doubling), and the buffer compacts itself once fully drained so it
// does not retain memory for the lifetime of a long-lived connection.
type Heap struct {
	data []byte
	off  int
	max  int // 0 = unbounded
}

// NewHeap returns an empty Heap buffer. max bounds how large it is
// allowed to grow via Put; 0 means unbounded.
func NewHeap(max int) *Heap {
	return &Heap{max: max}
}

// NewHeapFrom returns a Heap pre-loaded with b's contents. The caller
// must not mutate b afterwards.
func NewHeapFrom(b []byte, max int) *Heap {
	return &Heap{data: b, max: max}
}

func (h *Heap) Get(dst []byte) int {
	n := copy(dst, h.data[h.off:])
	h.off += n
	h.compact()
	return n
}

func (h *Heap) Put(src []byte) int {
	if src == nil {
		return 0
	}
	if h.max > 0 && h.Size()+len(src) > h.max {
		src = src[:h.max-h.Size()]
	}
	h.data = append(h.data, src...)
	return len(src)
}

// Advance grows Size by n without copying: a datagram receive writes
// straight into the spare region returned by Reserve, then calls Advance
// to make those bytes visible to Get. n is capped by max and by the
// spare capacity already allocated.
func (h *Heap) Advance(n int) int {
	if n <= 0 {
		return 0
	}
	if h.max > 0 && h.Size()+n > h.max {
		n = h.max - h.Size()
	}
	if n <= 0 {
		return 0
	}
	if len(h.data)+n > cap(h.data) {
		n = cap(h.data) - len(h.data)
	}
	h.data = h.data[:len(h.data)+n]
	return n
}

func (h *Heap) Size() int {
	return len(h.data) - h.off
}

func (h *Heap) Capacity() int {
	return h.max
}

// Bytes exposes the unconsumed portion (the bytes Get would still
// return) without consuming it. It does not include spare capacity; use
// Reserve for a direct kernel write followed by Advance.
func (h *Heap) Bytes() []byte {
	return h.data[h.off:]
}

// Reserve ensures n bytes of spare capacity past the current Size
// without extending Size itself, and returns that spare region for a
// datagram recvfrom to write into directly. A following Advance(n)
// call makes the written bytes visible to Get.
func (h *Heap) Reserve(n int) []byte {
	h.compact()
	cur := len(h.data)
	if cap(h.data)-cur < n {
		grown := make([]byte, cur, max(cur+n, 2*cap(h.data)+n))
		copy(grown, h.data)
		h.data = grown
	}
	return h.data[cur : cur+n : cur+n]
}

// Grow extends the buffer by n bytes and returns that new tail region
// for the caller to fill in place, at least doubling the capacity
// whenever it has to reallocate.
func (h *Heap) Grow(n int) []byte {
	h.compact()
	old := len(h.data)
	need := old + n
	if cap(h.data) < need {
		grown := make([]byte, old, max(need, 2*cap(h.data)+n))
		copy(grown, h.data)
		h.data = grown
	}
	h.data = h.data[:need]
	return h.data[old:need]
}

func (h *Heap) compact() {
	if h.off == 0 {
		return
	}
	if h.off == len(h.data) {
		h.data = h.data[:0]
		h.off = 0
		return
	}
	// Only compact once the consumed prefix is worth reclaiming.
	if h.off > 4096 || h.off == len(h.data) {
		h.data = append(h.data[:0], h.data[h.off:]...)
		h.off = 0
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
