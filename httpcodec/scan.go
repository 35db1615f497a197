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

package httpcodec

import "fmt"

// scanToken reads bytes up to (not including) sep, returning the token,
// the remainder after sep, and the number of bytes consumed including
// sep. maxLen, if non-zero, bounds the token length (the method token
// is capped at 16 bytes per spec.md §4.6); the URI token passes 0 for
// unbounded. Every token is returned as a sub-slice of data, uncopied.
func scanToken(data []byte, sep byte, maxLen int) (tok, rest []byte, consumed int, err error) {
	for i, c := range data {
		if c == sep {
			if maxLen > 0 && i > maxLen {
				return nil, nil, 0, fmt.Errorf("httpcodec: token exceeds %d bytes", maxLen)
			}
			return data[:i], data[i+1:], i + 1, nil
		}
	}
	return nil, nil, 0, fmt.Errorf("httpcodec: separator %q not found", sep)
}

// scanToCR reads bytes up to (not including) '\r', requiring the next
// byte to be '\n', and returns the token plus the remainder after the
// CRLF.
func scanToCR(data []byte) (tok, rest []byte, consumed int, err error) {
	for i, c := range data {
		if c == '\r' {
			if i+1 >= len(data) || data[i+1] != '\n' {
				return nil, nil, 0, fmt.Errorf("httpcodec: CR not followed by LF")
			}
			return data[:i], data[i+2:], i + 2, nil
		}
	}
	return nil, nil, 0, fmt.Errorf("httpcodec: CRLF not found")
}

// scanVersion reads "HTTP/1.<minor>\r\n" from a request's front matter.
func scanVersion(data []byte) (minor int, rest []byte, consumed int, err error) {
	const prefix = "HTTP/1."
	if len(data) < len(prefix)+1 {
		return 0, nil, 0, fmt.Errorf("httpcodec: truncated version")
	}
	if string(data[:len(prefix)]) != prefix {
		return 0, nil, 0, fmt.Errorf("httpcodec: expected HTTP/1.x version")
	}
	digit := data[len(prefix)]
	if digit < '0' || digit > '9' {
		return 0, nil, 0, fmt.Errorf("httpcodec: invalid version digit")
	}
	i := len(prefix) + 1
	if i+1 >= len(data) || data[i] != '\r' || data[i+1] != '\n' {
		return 0, nil, 0, fmt.Errorf("httpcodec: version not terminated by CRLF")
	}
	return int(digit - '0'), data[i+2:], i + 2, nil
}

// scanVersionFirst reads "HTTP/1.<minor> " from a response's front
// matter (space-terminated, not CRLF-terminated — the status code
// follows on the same line).
func scanVersionFirst(data []byte) (minor int, rest []byte, consumed int, err error) {
	const prefix = "HTTP/1."
	if len(data) < len(prefix)+2 {
		return 0, nil, 0, fmt.Errorf("httpcodec: truncated version")
	}
	if string(data[:len(prefix)]) != prefix {
		return 0, nil, 0, fmt.Errorf("httpcodec: expected HTTP/1.x version")
	}
	digit := data[len(prefix)]
	if digit < '0' || digit > '9' {
		return 0, nil, 0, fmt.Errorf("httpcodec: invalid version digit")
	}
	i := len(prefix) + 1
	if data[i] != ' ' {
		return 0, nil, 0, fmt.Errorf("httpcodec: version not space-terminated")
	}
	return int(digit - '0'), data[i+1:], i + 1, nil
}
