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

package config_test

import (
	"testing"
	"time"

	"github.com/nabbar/flog/fileperm"
	"github.com/nabbar/flog/netproto"
	"github.com/nabbar/flog/socket/config"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Socket Config Suite")
}

var _ = Describe("Client configuration", func() {
	It("zero-values to an empty, disabled client", func() {
		var c config.Client
		Expect(c.Network).To(Equal(netproto.Protocol(0)))
		Expect(c.Address).To(BeEmpty())
		Expect(c.TLS.Enabled).To(BeFalse())
	})

	It("validates every TCP protocol with a matching address", func() {
		for _, addr := range validTCPAddresses() {
			c := config.Client{Network: netproto.TCP, Address: addr}
			Expect(c.Validate()).NotTo(HaveOccurred(), "address %s", addr)
		}
	})

	It("validates every UDP protocol with a matching address", func() {
		for _, addr := range validUDPAddresses() {
			c := config.Client{Network: netproto.UDP, Address: addr}
			Expect(c.Validate()).NotTo(HaveOccurred(), "address %s", addr)
		}
	})

	It("validates unix socket paths", func() {
		skipIfWindows("unix sockets not supported")
		for _, addr := range validUnixAddresses() {
			c := config.Client{Network: netproto.Unix, Address: addr}
			Expect(c.Validate()).NotTo(HaveOccurred(), "address %s", addr)
		}
	})

	It("rejects an unset protocol", func() {
		c := config.Client{Network: netproto.Empty, Address: "localhost:8080"}
		Expect(c.Validate()).To(MatchError(config.ErrInvalidProtocol))
	})

	It("validates every stream protocol variant", func() {
		for _, p := range tcpProtocols() {
			c := config.Client{Network: p, Address: "localhost:8080"}
			Expect(c.Validate()).NotTo(HaveOccurred(), "protocol %v", p)
		}
	})

	It("validates every datagram protocol variant", func() {
		for _, p := range udpProtocols() {
			c := config.Client{Network: p, Address: "localhost:9000"}
			Expect(c.Validate()).NotTo(HaveOccurred(), "protocol %v", p)
		}
	})

	It("validates every unix protocol variant", func() {
		skipIfWindows("unix sockets not supported")
		for _, p := range unixProtocols() {
			c := config.Client{Network: p, Address: "/tmp/test.sock"}
			Expect(c.Validate()).NotTo(HaveOccurred(), "protocol %v", p)
		}
	})

	Context("TLS", func() {
		It("accepts TLS disabled on any protocol", func() {
			c := config.Client{Network: netproto.TCP, Address: "localhost:8080"}
			Expect(c.Validate()).NotTo(HaveOccurred())
		})

		It("rejects TLS on a non-stream protocol", func() {
			c := config.Client{Network: netproto.UDP, Address: "localhost:9000"}
			c.TLS.Enabled = true
			c.TLS.ServerName = "localhost"
			Expect(c.Validate()).To(MatchError(config.ErrInvalidTLSConfig))
		})

		It("rejects TLS without a ServerName", func() {
			c := config.Client{Network: netproto.TCP, Address: "localhost:8080"}
			c.TLS.Enabled = true
			Expect(c.Validate()).To(HaveOccurred())
		})

		It("reports GetTLS state", func() {
			c := config.Client{Network: netproto.TCP, Address: "localhost:8080"}
			c.TLS.Enabled = true
			c.TLS.ServerName = "localhost"

			enabled, _, name := c.GetTLS()
			Expect(enabled).To(BeTrue())
			Expect(name).To(Equal("localhost"))

			c.TLS.Enabled = false
			enabled, cfg, name := c.GetTLS()
			Expect(enabled).To(BeFalse())
			Expect(cfg).To(BeNil())
			Expect(name).To(BeEmpty())
		})

		It("tolerates a nil default in DefaultTLS", func() {
			c := config.Client{Network: netproto.TCP, Address: "localhost:8080"}
			Expect(func() { c.DefaultTLS(nil) }).NotTo(Panic())
		})
	})
})

var _ = Describe("Server configuration", func() {
	It("zero-values to an empty, disabled server", func() {
		var s config.Server
		Expect(s.Network).To(Equal(netproto.Protocol(0)))
		Expect(s.Address).To(BeEmpty())
		Expect(s.PermFile).To(Equal(fileperm.Perm(0)))
		Expect(s.GroupPerm).To(Equal(int32(0)))
		Expect(s.TLS.Enable).To(BeFalse())
	})

	It("validates wildcard and specific TCP addresses", func() {
		for _, addr := range []string{":8080", "127.0.0.1:8080", "[::1]:8080"} {
			s := config.Server{Network: netproto.TCP, Address: addr}
			Expect(s.Validate()).NotTo(HaveOccurred(), "address %s", addr)
		}
	})

	Context("unix socket permissions", func() {
		BeforeEach(func() { skipIfWindows("unix sockets not supported") })

		It("accepts every documented valid permission", func() {
			for _, perm := range validFilePermissions() {
				s := config.Server{Network: netproto.Unix, Address: "/tmp/test.sock", PermFile: perm}
				Expect(s.Validate()).NotTo(HaveOccurred(), "perm %o", perm)
			}
		})
	})

	Context("unix socket group", func() {
		It("accepts every documented valid group id", func() {
			for _, gid := range validGroupIDs() {
				s := config.Server{Network: netproto.TCP, Address: ":8080", GroupPerm: gid}
				Expect(s.Validate()).NotTo(HaveOccurred(), "gid %d", gid)
			}
		})

		It("rejects a group id past MaxGID", func() {
			for _, gid := range invalidGroupIDs() {
				s := config.Server{Network: netproto.TCP, Address: ":8080", GroupPerm: gid}
				Expect(s.Validate()).To(MatchError(config.ErrInvalidGroup), "gid %d", gid)
			}
		})

		It("accepts MaxGID exactly", func() {
			s := config.Server{Network: netproto.TCP, Address: ":8080", GroupPerm: config.MaxGID}
			Expect(s.Validate()).NotTo(HaveOccurred())
		})
	})

	Context("connection idle timeout", func() {
		It("accepts zero, positive and negative durations", func() {
			for _, d := range []time.Duration{0, 5 * time.Minute, -1 * time.Second} {
				s := config.Server{Network: netproto.TCP, Address: ":8080", ConIdleTimeout: d}
				Expect(s.Validate()).NotTo(HaveOccurred())
			}
		})
	})

	Context("TLS", func() {
		It("rejects TLS on a non-stream protocol", func() {
			s := config.Server{Network: netproto.UDP, Address: ":9000"}
			s.TLS.Enable = true
			Expect(s.Validate()).To(MatchError(config.ErrInvalidTLSConfig))
		})

		It("reports GetTLS state", func() {
			s := config.Server{Network: netproto.TCP, Address: ":8080"}
			s.TLS.Enable = true
			enabled, _ := s.GetTLS()
			Expect(enabled).To(BeTrue())

			s.TLS.Enable = false
			enabled, cfg := s.GetTLS()
			Expect(enabled).To(BeFalse())
			Expect(cfg).To(BeNil())
		})
	})

	It("rejects an unset protocol", func() {
		s := config.Server{Network: netproto.Empty, Address: ":8080"}
		Expect(s.Validate()).To(MatchError(config.ErrInvalidProtocol))
	})
})
