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

// Package errors gives every other package in this module a uniform way
// to carry a numeric code, a stack frame and a chain of parent causes
// alongside the standard error string.
//
// It is deliberately smaller than a general-purpose error-handling
// library: no gin integration, no error pool, no multi-pattern message
// registry beyond a single code->message map per package. Each package
// in this module that reports coded errors owns a CodeError range (see
// modules.go) and registers
// its messages in an init() function, mirroring the convention used
// throughout the rest of this codebase.
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Error extends the standard error with a numeric code, parent errors
// and the call site where it was created.
type Error interface {
	error

	Is(e error) bool

	// Code returns the numeric code of this error, ignoring parents.
	Code() CodeError
	// HasCode reports whether this error or any parent carries code.
	HasCode(code CodeError) bool

	// Add appends non-nil errors as parents of this error.
	Add(parent ...error)
	// HasParent reports whether any parent was recorded.
	HasParent() bool
	// Parents returns the direct parents, in the order they were added.
	Parents() []error

	// Unwrap gives compatibility with errors.Is/errors.As.
	Unwrap() []error

	// Frame returns the call site that created this error.
	Frame() runtime.Frame
}

type ers struct {
	code CodeError
	msg  string
	par  []Error
	at   runtime.Frame
}

func (e *ers) Error() string {
	if e.code == UnknownError {
		return e.msg
	}
	return fmt.Sprintf("[%d] %s", e.code, e.msg)
}

func (e *ers) Code() CodeError {
	return e.code
}

func (e *ers) HasCode(code CodeError) bool {
	if e.code == code {
		return true
	}
	for _, p := range e.par {
		if p.HasCode(code) {
			return true
		}
	}
	return false
}

func (e *ers) Add(parent ...error) {
	for _, p := range parent {
		if p == nil {
			continue
		}
		if pe := Make(p); pe != nil {
			e.par = append(e.par, pe)
		}
	}
}

func (e *ers) HasParent() bool {
	return len(e.par) > 0
}

func (e *ers) Parents() []error {
	out := make([]error, 0, len(e.par))
	for _, p := range e.par {
		out = append(out, p)
	}
	return out
}

func (e *ers) Unwrap() []error {
	return e.Parents()
}

func (e *ers) Frame() runtime.Frame {
	return e.at
}

func (e *ers) Is(target error) bool {
	if target == nil {
		return false
	}
	var o *ers
	if errors.As(target, &o) {
		return e.code != UnknownError && e.code == o.code && e.msg == o.msg
	}
	return false
}

// Is reports whether err carries this package's Error interface.
func Is(err error) bool {
	var e Error
	return errors.As(err, &e)
}

// Get returns err as an Error if it is one, nil otherwise.
func Get(err error) Error {
	var e Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// HasCode reports whether err, or one of its parents, carries code.
func HasCode(err error, code CodeError) bool {
	if e := Get(err); e != nil {
		return e.HasCode(code)
	}
	return false
}

// Make wraps a plain error into Error (code 0) unless it already is one.
func Make(err error) Error {
	if err == nil {
		return nil
	}
	if e := Get(err); e != nil {
		return e
	}
	return &ers{code: UnknownError, msg: err.Error(), at: getFrame()}
}

// New creates an Error with the given code, message and optional parents.
func New(code CodeError, message string, parent ...error) Error {
	e := &ers{code: code, msg: message, at: getFrame()}
	e.Add(parent...)
	return e
}

// Newf is New with fmt.Sprintf-style formatting of message.
func Newf(code CodeError, pattern string, args ...interface{}) Error {
	return &ers{code: code, msg: fmt.Sprintf(pattern, args...), at: getFrame()}
}

// MakeIfError returns nil if every given error is nil, otherwise an Error
// aggregating all non-nil ones as parents of the first.
func MakeIfError(errs ...error) Error {
	var out Error
	for _, e := range errs {
		if e == nil {
			continue
		}
		if out == nil {
			out = Make(e)
		} else {
			out.Add(e)
		}
	}
	return out
}

func getFrame() runtime.Frame {
	pc := make([]uintptr, 24)
	n := runtime.Callers(3, pc)
	if n == 0 {
		return runtime.Frame{}
	}
	frames := runtime.CallersFrames(pc[:n])
	more := true
	for more {
		var fr runtime.Frame
		fr, more = frames.Next()
		if strings.Contains(fr.Function, "nabbar/flog/errors") {
			continue
		}
		return runtime.Frame{Function: fr.Function, File: fr.File, Line: fr.Line}
	}
	return runtime.Frame{}
}
