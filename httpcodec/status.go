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

// statusLines covers the fixed set spec.md §4.6 calls out (100-507);
// an unrecognized code falls back to 500. Kept as a map rather than an
// array indexed 100..507 directly (spec.md's described shape) since Go
// arrays index from 0 and a 508-entry array with 100 wasted slots
// buys nothing a sparse map doesn't already give.
var statusLines = map[int]string{
	100: "100 Continue",
	101: "101 Switching Protocols",
	200: "200 OK",
	201: "201 Created",
	202: "202 Accepted",
	204: "204 No Content",
	206: "206 Partial Content",
	300: "300 Multiple Choices",
	301: "301 Moved Permanently",
	302: "302 Found",
	303: "303 See Other",
	304: "304 Not Modified",
	307: "307 Temporary Redirect",
	308: "308 Permanent Redirect",
	400: "400 Bad Request",
	401: "401 Unauthorized",
	403: "403 Forbidden",
	404: "404 Not Found",
	405: "405 Method Not Allowed",
	408: "408 Request Timeout",
	409: "409 Conflict",
	411: "411 Length Required",
	413: "413 Payload Too Large",
	414: "414 URI Too Long",
	415: "415 Unsupported Media Type",
	429: "429 Too Many Requests",
	500: "500 Internal Server Error",
	501: "501 Not Implemented",
	502: "502 Bad Gateway",
	503: "503 Service Unavailable",
	504: "504 Gateway Timeout",
	505: "505 HTTP Version Not Supported",
	507: "507 Insufficient Storage",
}

const fallbackStatusLine = "500 Internal Server Error"

// StatusLine returns the full status line for code, the three-digit
// code followed by its reason phrase (e.g. "404 Not Found"), falling back to
// "500 Internal Server Error" for an unrecognized code, as spec.md
// §4.6 requires.
func StatusLine(code int) string {
	if line, ok := statusLines[code]; ok {
		return line
	}
	return fallbackStatusLine
}

// ReasonPhrase returns just the text portion of StatusLine(code),
// without the leading three-digit code.
func ReasonPhrase(code int) string {
	line := StatusLine(code)
	if len(line) <= 4 {
		return ""
	}
	return line[4:]
}
