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

package oncrpcrt_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/nabbar/flog/engine"
	"github.com/nabbar/flog/oncrpc"
	"github.com/nabbar/flog/oncrpc/xdrbasic"
	"github.com/nabbar/flog/oncrpcrt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestOncRPCRt(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "OncRPCRt Suite")
}

func freeAddr() string {
	l, _ := net.Listen("tcp", "127.0.0.1:0")
	addr := l.Addr().String()
	_ = l.Close()
	return addr
}

// encodeAcceptedReply builds the wire bytes of a successful ONC-RPC
// reply carrying body as its result, echoing the call's xid.
func encodeAcceptedReply(xid uint32, body []byte) []byte {
	enc := xdrbasic.NewEncoder()
	enc.WriteUint32(xid)
	enc.WriteUint32(1) // msg_type: REPLY
	enc.WriteUint32(uint32(oncrpc.ReplyAccepted))
	enc.WriteUint32(0) // verifier flavor: AUTH_NONE
	enc.WriteOpaque(nil)
	enc.WriteUint32(uint32(oncrpc.AcceptSuccess))
	payload := append(enc.Bytes(), body...)
	wire, _ := oncrpc.EncodeFragment(payload)
	return wire
}

// startEchoingRPCServer accepts one connection, decodes the call's xid
// out of the fragment it receives, and replies with a canned body.
func startEchoingRPCServer(addr string, body []byte) {
	ln, err := net.Listen("tcp", addr)
	Expect(err).NotTo(HaveOccurred())
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		defer ln.Close()

		buf := make([]byte, 4096)
		n, err := conn.Read(buf)
		if err != nil {
			return
		}
		payload, _, err := oncrpc.DecodeFragment(buf[:n])
		if err != nil {
			return
		}
		dec := xdrbasic.NewDecoder(payload)
		xid, _ := dec.ReadUint32()

		_, _ = conn.Write(encodeAcceptedReply(xid, body))
	}()
}

var _ = Describe("Client", func() {
	It("sends a call and parses the accepted reply", func() {
		addr := freeAddr()
		startEchoingRPCServer(addr, []byte("result"))

		cli, err := oncrpcrt.NewClient("oncrpc://"+addr, engine.WithTimeout(2*time.Second))
		Expect(err).NotTo(HaveOccurred())

		reply, err := cli.Call(context.Background(), 7, 3, []byte("args"))
		Expect(err).NotTo(HaveOccurred())
		Expect(reply.Stat).To(Equal(oncrpc.ReplyAccepted))
		Expect(reply.AcceptStat).To(Equal(oncrpc.AcceptSuccess))
		Expect(string(reply.Body)).To(Equal("result"))
	})

	It("derives prog/vers from the interface tag per the fixed offset", func() {
		prog, vers := oncrpcrt.ProgVers(7)
		Expect(prog).To(Equal(uint32(0x20000000 + 7)))
		Expect(vers).To(Equal(uint32(7)))
	})
})
