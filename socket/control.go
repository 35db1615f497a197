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

package socket

import "sync/atomic"

// controlBlock guards against a connection being driven by more than
// one blocking operation (a handler loop and a concurrent Close, or two
// overlapping handler invocations) at once — the spec's single-acquire
// lock, realized here as a compare-and-swap instead of a mutex since
// the only operation needed is "try to become the sole owner".
type controlBlock struct {
	acquired atomic.Bool
}

// Acquire reports whether the caller won exclusive ownership. A caller
// that loses must not proceed with the operation it was guarding.
func (c *controlBlock) Acquire() bool {
	return c.acquired.CompareAndSwap(false, true)
}

// Release gives up ownership, allowing a future Acquire to succeed.
func (c *controlBlock) Release() {
	c.acquired.Store(false)
}

// Held reports whether the block is currently acquired, without trying
// to acquire it.
func (c *controlBlock) Held() bool {
	return c.acquired.Load()
}
