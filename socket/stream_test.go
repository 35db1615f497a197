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
	"bufio"
	"context"
	"net"
	"time"

	"github.com/nabbar/flog/netproto"
	"github.com/nabbar/flog/socket"
	"github.com/nabbar/flog/socket/config"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// freeTCPAddr asks the OS for an ephemeral port by opening and
// immediately closing a listener, then dials against the returned
// address once the real server is up.
func freeTCPAddr() string {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	Expect(err).NotTo(HaveOccurred())
	addr := ln.Addr().String()
	Expect(ln.Close()).To(Succeed())
	return addr
}

var _ = Describe("tcp stream round-trip", func() {
	It("echoes a line back to the client", func() {
		addr := freeTCPAddr()

		srv, err := socket.NewServer(config.Server{
			Network: netproto.TCP,
			Address: addr,
		}, func(ctx socket.Context) {
			r := bufio.NewReader(ctx)
			line, rerr := r.ReadString(socket.EOL)
			if rerr != nil {
				return
			}
			_, _ = ctx.Write([]byte(line))
		}, nil)
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go func() { _ = srv.Listen(ctx) }()
		Eventually(srv.IsRunning).Should(BeTrue())

		cli, err := socket.NewClient(config.Client{
			Network: netproto.TCP,
			Address: addr,
		})
		Expect(err).NotTo(HaveOccurred())

		dctx, dcancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer dcancel()
		Expect(cli.Connect(dctx)).To(Succeed())
		defer func() { _ = cli.Close() }()

		_, err = cli.Write([]byte("hello\n"))
		Expect(err).NotTo(HaveOccurred())

		buf := make([]byte, 64)
		n, err := cli.Read(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(buf[:n])).To(Equal("hello\n"))

		Expect(srv.Close()).To(Succeed())
	})

	It("reports OpenConnections while a handler is in flight", func() {
		addr := freeTCPAddr()
		release := make(chan struct{})

		srv, err := socket.NewServer(config.Server{
			Network: netproto.TCP,
			Address: addr,
		}, func(ctx socket.Context) {
			<-release
		}, nil)
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = srv.Listen(ctx) }()
		Eventually(srv.IsRunning).Should(BeTrue())

		cli, err := socket.NewClient(config.Client{Network: netproto.TCP, Address: addr})
		Expect(err).NotTo(HaveOccurred())
		dctx, dcancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer dcancel()
		Expect(cli.Connect(dctx)).To(Succeed())

		Eventually(srv.OpenConnections).Should(BeNumerically(">=", int64(1)))

		close(release)
		_ = cli.Close()
		Expect(srv.Close()).To(Succeed())
	})
})

var _ = Describe("udp packet round-trip", func() {
	It("echoes a datagram back to the client", func() {
		ln, lerr := net.ListenPacket("udp", "127.0.0.1:0")
		Expect(lerr).NotTo(HaveOccurred())
		addr := ln.LocalAddr().String()
		Expect(ln.Close()).To(Succeed())

		srv, err := socket.NewServer(config.Server{
			Network: netproto.UDP,
			Address: addr,
		}, func(ctx socket.Context) {
			buf := make([]byte, socket.DefaultBufferSize)
			n, rerr := ctx.Read(buf)
			if rerr != nil {
				return
			}
			_, _ = ctx.Write(buf[:n])
		}, nil)
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = srv.Listen(ctx) }()
		Eventually(srv.IsRunning).Should(BeTrue())

		cli, err := socket.NewClient(config.Client{Network: netproto.UDP, Address: addr})
		Expect(err).NotTo(HaveOccurred())
		dctx, dcancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer dcancel()
		Expect(cli.Connect(dctx)).To(Succeed())
		defer func() { _ = cli.Close() }()

		_, err = cli.Write([]byte("ping"))
		Expect(err).NotTo(HaveOccurred())

		buf := make([]byte, 64)
		n, err := cli.Read(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(buf[:n])).To(Equal("ping"))

		Expect(srv.Close()).To(Succeed())
	})
})
