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

// Package code ranges, one block per package in this module that raises
// its own errors. Mirrors the MinPkgXxx convention used across this
// codebase so every CodeError value carries an obvious origin.
const (
	MinPkgBuffer  CodeError = 100
	MinPkgSocket  CodeError = 200
	MinPkgConfig  CodeError = 300
	MinPkgCerts   CodeError = 400
	MinPkgHeader  CodeError = 500
	MinPkgHTTP    CodeError = 600
	MinPkgOncRPC  CodeError = 700
	MinPkgEngine  CodeError = 800
	MinPkgHTTPRt  CodeError = 900
	MinPkgRPCRt   CodeError = 1000
	MinPkgURI     CodeError = 1100
	MinAvailable  CodeError = 2000
)
