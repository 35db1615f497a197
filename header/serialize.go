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

package header

import "github.com/nabbar/flog/buffer"

var (
	sep  = []byte(": ")
	crlf = []byte("\r\n")
)

// Serialize builds a vectored write over fields without copying header
// bytes into one contiguous buffer: each field contributes four
// segments to the returned Gather (name, ": ", value, "\r\n"), the flat
// iovec-table shape spec.md describes, followed by the block-
// terminating blank line.
func Serialize(fields []Field) *buffer.Gather {
	g := buffer.NewGather()
	for _, f := range fields {
		g.Put(f.Name)
		g.Put(sep)
		g.Put(f.Value)
		g.Put(crlf)
	}
	g.Put(crlf)
	return g
}

// Set appends or replaces (matching case-sensitively) name's value in
// fields, returning the updated slice.
func Set(fields []Field, name string, value []byte) []Field {
	nb := []byte(name)
	for i, f := range fields {
		if string(f.Name) == string(nb) {
			fields[i].Value = value
			return fields
		}
	}
	return append(fields, Field{Name: nb, Value: value})
}
