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

import "time"

// TimerQueue schedules a one-shot callback after a delay, and lets it
// be cancelled before it fires. This backs per-connection idle timeouts
// (config.Server.ConIdleTimeout) without every socket needing its own
// sleeping goroutine.
type TimerQueue interface {
	// After schedules fn to run after d elapses, returning a handle
	// whose Stop cancels it if it has not already fired.
	After(d time.Duration, fn func()) OperationTimer
}

// OperationTimer is a handle to a scheduled, possibly already-fired,
// timer callback.
type OperationTimer interface {
	// Stop cancels the timer. It reports whether the cancellation won
	// the race against the timer firing, exactly like time.Timer.Stop.
	Stop() bool

	// Reset re-arms the timer for d from now.
	Reset(d time.Duration) bool
}

// NewTimerQueue returns the default TimerQueue, backed directly by
// time.AfterFunc — no dedicated goroutine of its own, since the Go
// runtime's timer heap already does that job.
func NewTimerQueue() TimerQueue {
	return stdTimerQueue{}
}

type stdTimerQueue struct{}

func (stdTimerQueue) After(d time.Duration, fn func()) OperationTimer {
	return &stdTimer{t: time.AfterFunc(d, fn)}
}

type stdTimer struct {
	t *time.Timer
}

func (s *stdTimer) Stop() bool             { return s.t.Stop() }
func (s *stdTimer) Reset(d time.Duration) bool { return s.t.Reset(d) }
