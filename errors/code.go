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

package errors

import "strconv"

// CodeError is a small numeric classification for an Error, in the same
// spirit as an HTTP status code: callers can switch on it without
// string-matching messages.
type CodeError uint16

// UnknownError is the code used for errors wrapped from a plain error.
const UnknownError CodeError = 0

const unknownMessage = "unknown error"

// RegisterMessages installs one message function covering a contiguous
// range of codes, used by packages with an init() of the shape seen
// throughout this module (header, httpcodec, oncrpc, engine, ...).
func RegisterMessages(base CodeError, fct func(CodeError) string) {
	byBase[base] = fct
}

var byBase = make(map[CodeError]func(CodeError) string)

func (c CodeError) String() string {
	return strconv.Itoa(int(c))
}

// Message resolves the human-readable text for c by scanning registered
// package ranges from the highest base below or equal to c.
func (c CodeError) Message() string {
	if c == UnknownError {
		return unknownMessage
	}
	var best CodeError
	var found bool
	for base := range byBase {
		if base <= c && (!found || base > best) {
			best, found = base, true
		}
	}
	if !found {
		return unknownMessage
	}
	if m := byBase[best](c); m != "" {
		return m
	}
	return unknownMessage
}

// Error builds a new Error carrying this code, c's registered message,
// and the given parents.
func (c CodeError) Error(parent ...error) Error {
	return New(c, c.Message(), parent...)
}

// Errorf is Error with a formatted message instead of the registered one.
func (c CodeError) Errorf(pattern string, args ...interface{}) Error {
	return Newf(c, pattern, args...)
}
