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

// CompletionQueue dispatches a unit of work — running a HandlerFunc
// against one accepted connection or received datagram. It is the Go realization of the spec's completion
// queue: Go's own scheduler is the multiplexer, so the default queue
// below is nothing more than "spawn a goroutine", but the interface
// stays pluggable so a bounded worker pool can be substituted when a
// server needs to cap concurrency instead of spawning unbounded
// goroutines.
type CompletionQueue interface {
	// Submit hands fn off to be run. Whether the caller waits depends
	// on the queue: the inline queue runs fn before returning, the
	// bounded queue blocks while its backlog is full, and the worker
	// queue never waits.
	Submit(fn func())
}

// NewInlineQueue returns a CompletionQueue that runs every submission
// synchronously on the submitting goroutine. Useful for tests that need
// deterministic ordering, or single-threaded embedding.
func NewInlineQueue() CompletionQueue {
	return inlineQueue{}
}

type inlineQueue struct{}

func (inlineQueue) Submit(fn func()) { fn() }

// NewWorkerQueue returns a CompletionQueue that spawns one goroutine per
// submission. This is the queue every Server constructor in this
// package uses; Clients hold no queue.
func NewWorkerQueue() CompletionQueue {
	return workerQueue{}
}

type workerQueue struct{}

func (workerQueue) Submit(fn func()) { go fn() }

// NewBoundedQueue returns a CompletionQueue backed by a fixed-size pool
// of n goroutines reading off a shared channel, for servers that need
// to cap how many handlers run concurrently.
func NewBoundedQueue(n int) CompletionQueue {
	if n <= 0 {
		n = 1
	}
	q := &boundedQueue{work: make(chan func(), n*4)}
	for i := 0; i < n; i++ {
		go q.run()
	}
	return q
}

type boundedQueue struct {
	work chan func()
}

func (q *boundedQueue) Submit(fn func()) {
	q.work <- fn
}

func (q *boundedQueue) run() {
	for fn := range q.work {
		fn()
	}
}
