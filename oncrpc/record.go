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

package oncrpc

import "encoding/binary"

// recordState follows spec.md §4.7's deserialize diagram:
// RecordMarker -> RecordFragment -> [LongRecordFragment*] -> Done. The
// "Long" branch is realized here as accumulating into a growable
// buffer across repeated Feed calls whenever the marker's declared
// length exceeds what a single Feed call's input already holds.
type recordState uint8

const (
	recordMarker recordState = iota
	recordFragment
	recordDone
)

// RecordReader accumulates one ONC-RPC record across successive Feed
// calls, the way a socket handler sees a fragment arrive split across
// several reads. Feed always copies the payload into its own byte
// slice, whether the fragment arrives in one Feed call or across
// several, until the marker's declared length is reached.
type RecordReader struct {
	st        recordState
	markerBuf []byte
	length    uint32
	scratch   []byte
}

// NewRecordReader returns a RecordReader ready to Feed.
func NewRecordReader() *RecordReader {
	return &RecordReader{}
}

// Done reports whether a complete record payload is available via
// Payload.
func (r *RecordReader) Done() bool {
	return r.st == recordDone
}

// Payload returns the fully-accumulated record payload. Valid only
// once Done returns true.
func (r *RecordReader) Payload() []byte {
	return r.scratch
}

// Reset clears the reader for the next record.
func (r *RecordReader) Reset() {
	r.st = recordMarker
	r.markerBuf = nil
	r.length = 0
	r.scratch = nil
}

// Feed consumes input, returning how many bytes it used. Once Done
// becomes true, bytes past n belong to whatever follows this record.
func (r *RecordReader) Feed(input []byte) (n int, err error) {
	for n < len(input) {
		switch r.st {
		case recordMarker:
			need := 4 - len(r.markerBuf)
			avail := len(input) - n
			if avail < need {
				r.markerBuf = append(r.markerBuf, input[n:]...)
				return len(input), nil
			}
			r.markerBuf = append(r.markerBuf, input[n:n+need]...)
			n += need

			marker := binary.BigEndian.Uint32(r.markerBuf)
			if marker&lastFragmentBit == 0 {
				return n, ErrorMultiFragment.Error()
			}
			r.length = marker &^ lastFragmentBit
			if r.length > MaxFragmentSize {
				return n, ErrorFragmentTooLarge.Error()
			}
			r.scratch = make([]byte, 0, r.length)
			r.st = recordFragment

		case recordFragment:
			need := int(r.length) - len(r.scratch)
			avail := len(input) - n
			if avail >= need {
				r.scratch = append(r.scratch, input[n:n+need]...)
				n += need
				r.st = recordDone
				return n, nil
			}
			r.scratch = append(r.scratch, input[n:]...)
			n = len(input)

		case recordDone:
			return n, nil
		}
	}
	return n, nil
}
