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

package socket_test

import (
	"fmt"
	"testing"

	"github.com/nabbar/flog/socket"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSocket(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Socket Suite")
}

var _ = Describe("Constants", func() {
	It("has the documented default buffer size", func() {
		Expect(socket.DefaultBufferSize).To(Equal(32 * 1024))
	})

	It("uses newline as EOL", func() {
		Expect(socket.EOL).To(Equal(byte('\n')))
	})
})

var _ = Describe("ErrorFilter", func() {
	It("passes nil through", func() {
		Expect(socket.ErrorFilter(nil)).To(BeNil())
	})

	It("drops a closed-network-connection error", func() {
		err := fmt.Errorf("use of closed network connection")
		Expect(socket.ErrorFilter(err)).To(BeNil())
	})

	It("drops a closed-network-connection error embedded in context", func() {
		err := fmt.Errorf("read tcp 127.0.0.1:8080->127.0.0.1:54321: use of closed network connection")
		Expect(socket.ErrorFilter(err)).To(BeNil())
	})

	It("passes through any other error unchanged", func() {
		err := fmt.Errorf("connection timeout")
		got := socket.ErrorFilter(err)
		Expect(got).NotTo(BeNil())
		Expect(got.Error()).To(Equal("connection timeout"))
	})
})

var _ = Describe("ConnState", func() {
	DescribeTable("String",
		func(s socket.ConnState, exp string) {
			Expect(s.String()).To(Equal(exp))
		},
		Entry("ConnectionDial", socket.ConnectionDial, "Dial Connection"),
		Entry("ConnectionNew", socket.ConnectionNew, "New Connection"),
		Entry("ConnectionRead", socket.ConnectionRead, "Read Incoming Stream"),
		Entry("ConnectionCloseRead", socket.ConnectionCloseRead, "Close Incoming Stream"),
		Entry("ConnectionHandler", socket.ConnectionHandler, "Run HandlerFunc"),
		Entry("ConnectionWrite", socket.ConnectionWrite, "Write Outgoing Steam"),
		Entry("ConnectionCloseWrite", socket.ConnectionCloseWrite, "Close Outgoing Stream"),
		Entry("ConnectionClose", socket.ConnectionClose, "Close Connection"),
		Entry("unknown", socket.ConnState(255), "unknown connection state"),
	)

	It("assigns the documented numeric values", func() {
		Expect(socket.ConnectionDial).To(Equal(socket.ConnState(0)))
		Expect(socket.ConnectionNew).To(Equal(socket.ConnState(1)))
		Expect(socket.ConnectionRead).To(Equal(socket.ConnState(2)))
		Expect(socket.ConnectionCloseRead).To(Equal(socket.ConnState(3)))
		Expect(socket.ConnectionHandler).To(Equal(socket.ConnState(4)))
		Expect(socket.ConnectionWrite).To(Equal(socket.ConnState(5)))
		Expect(socket.ConnectionCloseWrite).To(Equal(socket.ConnState(6)))
		Expect(socket.ConnectionClose).To(Equal(socket.ConnState(7)))
	})
})
