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

// Package oncrpc implements the ONC-RPC (Sun RPC) record framing and
// call/reply envelope this module's RPC engine speaks: a record marker
// with a last-fragment flag and payload length, and the xid/prog/vers/
// proc call header and reply_stat/accept_stat reply header RFC 1057
// defines. Marshalling the call/reply bodies themselves is delegated to
// a Marshaller the caller supplies — this package owns only the
// envelope, not application-specific argument/result types.
package oncrpc

import (
	"encoding/binary"

	liberr "github.com/nabbar/flog/errors"
)

const (
	ErrorFragmentTooLarge liberr.CodeError = iota + liberr.MinPkgOncRPC + 1
	ErrorMultiFragment
	ErrorTruncated
)

func init() {
	liberr.RegisterMessages(liberr.MinPkgOncRPC, func(c liberr.CodeError) string {
		switch c {
		case ErrorFragmentTooLarge:
			return "record fragment exceeds the maximum allowed size"
		case ErrorMultiFragment:
			return "multi-fragment records are not supported"
		case ErrorTruncated:
			return "record fragment truncated"
		default:
			return ""
		}
	})
}

// MaxFragmentSize is the safety cap spec.md §4.7 imposes on a single
// record fragment.
const MaxFragmentSize = 32 * 1024 * 1024

const lastFragmentBit = uint32(1) << 31

// Marshaller is the XDR read/write surface a call/reply body is
// encoded and decoded through. package xdrbasic provides a minimal
// big-endian implementation sufficient to make this package
// self-testable; a production XDR kernel is an out-of-scope external
// collaborator per spec.md §1.
type Marshaller interface {
	WriteBool(b bool)
	WriteInt32(v int32)
	WriteUint32(v uint32)
	WriteInt64(v int64)
	WriteUint64(v uint64)
	WriteFloat64(v float64)
	WriteString(s string)
	WriteOpaque(b []byte)

	ReadBool() (bool, error)
	ReadInt32() (int32, error)
	ReadUint32() (uint32, error)
	ReadInt64() (int64, error)
	ReadUint64() (uint64, error)
	ReadFloat64() (float64, error)
	ReadString() (string, error)
	ReadOpaque() ([]byte, error)

	Bytes() []byte
}

// DecodeFragment reads a record marker from the front of data and
// reports whether the (single, required) fragment is fully present.
// Multi-fragment records (marker's last-fragment bit unset) are
// rejected, matching spec.md §4.7's "accepts single-fragment records;
// multi-fragment records are rejected as malformed".
func DecodeFragment(data []byte) (payload []byte, consumed int, err error) {
	if len(data) < 4 {
		return nil, 0, ErrorTruncated.Error()
	}
	marker := binary.BigEndian.Uint32(data[:4])
	if marker&lastFragmentBit == 0 {
		return nil, 0, ErrorMultiFragment.Error()
	}
	length := marker &^ lastFragmentBit
	if length > MaxFragmentSize {
		return nil, 0, ErrorFragmentTooLarge.Error()
	}
	if uint32(len(data)-4) < length {
		return nil, 0, ErrorTruncated.Error()
	}
	return data[4 : 4+int(length)], 4 + int(length), nil
}

// EncodeFragment wraps payload in a single-fragment record marker.
func EncodeFragment(payload []byte) ([]byte, error) {
	if len(payload) > MaxFragmentSize {
		return nil, ErrorFragmentTooLarge.Error()
	}
	out := make([]byte, 4+len(payload))
	binary.BigEndian.PutUint32(out, lastFragmentBit|uint32(len(payload)))
	copy(out[4:], payload)
	return out, nil
}

// CredVerf is the (flavor, body) pair carried as both a call's
// authentication credential and its verifier, and a reply's verifier.
type CredVerf struct {
	Flavor uint32
	Body   []byte
}

// Call is an ONC-RPC call message: the xid/prog/vers/proc header plus
// credential, verifier, and opaque call-specific body.
type Call struct {
	Xid  uint32
	Prog uint32
	Vers uint32
	Proc uint32
	Cred CredVerf
	Verf CredVerf
	Body []byte
}

// AcceptStat mirrors RFC 1057's accept_stat enumeration.
type AcceptStat uint32

const (
	AcceptSuccess AcceptStat = iota
	AcceptProgramUnavailable
	AcceptProgramMismatch
	AcceptProcedureUnavailable
	AcceptGarbageArgs
	AcceptSystemError
)

// ReplyStat mirrors RFC 1057's reply_stat enumeration.
type ReplyStat uint32

const (
	ReplyAccepted ReplyStat = iota
	ReplyDenied
)

// Reply is an ONC-RPC reply message.
type Reply struct {
	Xid        uint32
	Stat       ReplyStat
	Verf       CredVerf
	AcceptStat AcceptStat
	Body       []byte
}

// exceptionBodies maps the fixed accept_stat values spec.md §4.7 calls
// out to their canned exception text; AcceptSystemError and any
// unrecognized value the caller should ask its interface for a custom
// body fall back to "system error" here.
var exceptionBodies = map[AcceptStat]string{
	AcceptProgramUnavailable:   "program unavailable",
	AcceptProgramMismatch:      "program mismatch",
	AcceptProcedureUnavailable: "procedure unavailable",
	AcceptGarbageArgs:          "garbage arguments",
	AcceptSystemError:          "system error",
}

// ExceptionBody returns the canned exception text for stat, defaulting
// to "system error" for any value outside the fixed 1..5 range (an
// unknown accept_stat, or a caller-supplied custom body the interface
// didn't provide).
func ExceptionBody(stat AcceptStat) string {
	if body, ok := exceptionBodies[stat]; ok {
		return body
	}
	return "system error"
}

// NewExceptionReply builds the synthesised-exception Reply spec.md
// §4.7 describes for an accept_stat outside AcceptSuccess. The reply
// always carries Stat ReplyAccepted, with stat as its AcceptStat and
// ExceptionBody(stat) as its body; it has no form for a denied
// reply_stat or a verifier mismatch.
func NewExceptionReply(xid uint32, stat AcceptStat) Reply {
	return Reply{
		Xid:        xid,
		Stat:       ReplyAccepted,
		AcceptStat: stat,
		Body:       []byte(ExceptionBody(stat)),
	}
}
