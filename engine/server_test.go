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

package engine_test

import (
	"bytes"
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nabbar/flog/engine"
	"github.com/nabbar/flog/netproto"
	"github.com/nabbar/flog/socket"
	"github.com/nabbar/flog/socket/config"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// lineMessage is the server-side half of the test protocol used in
// client_test.go.
type lineMessage struct{ line string }

func (m *lineMessage) Deserialize(buf []byte) int {
	if i := bytes.IndexByte(buf, '\n'); i >= 0 {
		m.line = string(buf[:i])
		return 0
	}
	return 1
}

var _ = Describe("Server", func() {
	It("dispatches a fully-deserialized message to Handler and replies", func() {
		addr := freeAddr()

		var lastLine string
		srv, err := engine.NewServer(
			config.Server{Network: netproto.TCP, Address: addr},
			func() engine.ServerMessage { return &lineMessage{} },
			func(msg engine.ServerMessage, r engine.Responder) {
				lm := msg.(*lineMessage)
				lastLine = lm.line
				_ = r.Respond([]byte("echo:" + lm.line + "\n"))
			},
			nil,
			nil,
		)
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = srv.Listen(ctx) }()
		Eventually(srv.IsRunning).Should(BeTrue())

		cli, err := socket.NewClient(config.Client{Network: netproto.TCP, Address: addr})
		Expect(err).NotTo(HaveOccurred())
		Expect(cli.Connect(context.Background())).To(Succeed())
		defer cli.Close()

		_, err = cli.Write([]byte("ping\n"))
		Expect(err).NotTo(HaveOccurred())

		buf := make([]byte, 64)
		var n int
		Eventually(func() error {
			var readErr error
			n, readErr = cli.Read(buf)
			return readErr
		}, time.Second).Should(Succeed())

		Expect(string(buf[:n])).To(Equal("echo:ping\n"))
		Expect(lastLine).To(Equal("ping"))
		Expect(srv.Stats().Received).To(Equal(int64(1)))
	})

	It("closes the connection on a malformed message", func() {
		addr := freeAddr()

		srv, err := engine.NewServer(
			config.Server{Network: netproto.TCP, Address: addr},
			func() engine.ServerMessage { return &rejectingMessage{} },
			func(msg engine.ServerMessage, r engine.Responder) {},
			nil,
			nil,
		)
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = srv.Listen(ctx) }()
		Eventually(srv.IsRunning).Should(BeTrue())

		cli, err := socket.NewClient(config.Client{Network: netproto.TCP, Address: addr})
		Expect(err).NotTo(HaveOccurred())
		Expect(cli.Connect(context.Background())).To(Succeed())
		defer cli.Close()

		_, err = cli.Write([]byte("x"))
		Expect(err).NotTo(HaveOccurred())

		buf := make([]byte, 16)
		Eventually(func() error {
			_, readErr := cli.Read(buf)
			return readErr
		}, time.Second).Should(HaveOccurred())
	})

	It("accepts a trace logger and still dispatches normally", func() {
		addr := freeAddr()

		log := logrus.NewEntry(logrus.New())
		srv, err := engine.NewServer(
			config.Server{Network: netproto.TCP, Address: addr},
			func() engine.ServerMessage { return &lineMessage{} },
			func(msg engine.ServerMessage, r engine.Responder) {
				_ = r.Respond([]byte("ok\n"))
			},
			nil,
			log,
		)
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = srv.Listen(ctx) }()
		Eventually(srv.IsRunning).Should(BeTrue())

		cli, err := socket.NewClient(config.Client{Network: netproto.TCP, Address: addr})
		Expect(err).NotTo(HaveOccurred())
		Expect(cli.Connect(context.Background())).To(Succeed())
		defer cli.Close()

		_, err = cli.Write([]byte("ping\n"))
		Expect(err).NotTo(HaveOccurred())

		buf2 := make([]byte, 16)
		Eventually(func() error {
			_, readErr := cli.Read(buf2)
			return readErr
		}, time.Second).Should(Succeed())
	})
})

// rejectingMessage always reports malformed, to exercise the server's
// close-on-malformed path.
type rejectingMessage struct{}

func (m *rejectingMessage) Deserialize(buf []byte) int { return -1 }
