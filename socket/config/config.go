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

// Package config holds the declarative configuration for a socket client
// or server: the network protocol, address, TLS material, and the
// handful of unix-socket-specific and idle-timeout knobs a completion-
// based endpoint needs before it can bind or dial.
package config

import (
	"errors"
	"net"
	"time"

	"github.com/nabbar/flog/certs"
	"github.com/nabbar/flog/fileperm"
	"github.com/nabbar/flog/netproto"
)

// MaxGID is the largest unix group id this module will accept for
// Server.GroupPerm, matching the 16-bit gid_t range most unix systems use.
const MaxGID int32 = 32767

var (
	ErrInvalidProtocol  = errors.New("socket/config: invalid protocol")
	ErrInvalidAddress   = errors.New("socket/config: invalid address")
	ErrInvalidTLSConfig = errors.New("socket/config: invalid TLS config")
	ErrInvalidGroup     = errors.New("socket/config: invalid unix group")
)

// TLSClient is a client endpoint's TLS posture: whether to engage TLS at
// all, the certificate material backing it, and the server name to
// verify against (or skip verifying, for VERIFY_NONE-style setups).
type TLSClient struct {
	Enabled    bool         `mapstructure:"enabled" json:"enabled"`
	Config     certs.Config `mapstructure:"config" json:"config"`
	ServerName string       `mapstructure:"serverName" json:"serverName"`
}

// TLSServer is a server endpoint's TLS posture.
type TLSServer struct {
	Enable bool         `mapstructure:"enable" json:"enable"`
	Config certs.Config `mapstructure:"config" json:"config"`
}

// Client is the configuration for a socket endpoint that connects out.
type Client struct {
	Network netproto.Protocol `mapstructure:"network" json:"network"`
	Address string            `mapstructure:"address" json:"address"`
	TLS     TLSClient         `mapstructure:"tls" json:"tls"`
}

// Validate resolves Address against Network (failing if the address
// cannot be resolved for that protocol family) and checks that TLS, if
// enabled, is only requested for a TCP-family protocol and carries a
// ServerName to verify against.
func (c *Client) Validate() error {
	if err := validateProtocolAddress(c.Network, c.Address); err != nil {
		return err
	}

	if c.TLS.Enabled {
		if !c.Network.IsStream() || c.Network == netproto.Unix {
			return ErrInvalidTLSConfig
		}
		if c.TLS.ServerName == "" {
			return errors.New("socket/config: TLS client requires a ServerName")
		}
	}

	return nil
}

// GetTLS reports whether TLS is enabled and, if so, returns the
// *certs.Config to build it from plus the server name to verify the
// peer against.
func (c *Client) GetTLS() (bool, *certs.Config, string) {
	if !c.TLS.Enabled {
		return false, nil, ""
	}
	return true, &c.TLS.Config, c.TLS.ServerName
}

// DefaultTLS merges a package-wide default certs.Config into c.TLS.Config
// wherever c's own fields are left at their zero value, the same
// inherit-unless-overridden pattern this module uses throughout config.
func (c *Client) DefaultTLS(def *certs.Config) {
	if def == nil {
		return
	}
	mergeTLSDefaults(&c.TLS.Config, def)
}

// Server is the configuration for a socket endpoint that listens/binds.
type Server struct {
	Network        netproto.Protocol `mapstructure:"network" json:"network"`
	Address        string            `mapstructure:"address" json:"address"`
	TLS            TLSServer         `mapstructure:"tls" json:"tls"`
	PermFile       fileperm.Perm     `mapstructure:"permFile" json:"permFile"`
	GroupPerm      int32             `mapstructure:"groupPerm" json:"groupPerm"`
	ConIdleTimeout time.Duration     `mapstructure:"conIdleTimeout" json:"conIdleTimeout"`
}

// Validate resolves Address against Network, checks TLS eligibility as
// Client.Validate does, and bounds GroupPerm to a valid gid_t range.
func (s *Server) Validate() error {
	if err := validateProtocolAddress(s.Network, s.Address); err != nil {
		return err
	}

	if s.TLS.Enable {
		if !s.Network.IsStream() || s.Network == netproto.Unix {
			return ErrInvalidTLSConfig
		}
	}

	if s.GroupPerm > MaxGID {
		return ErrInvalidGroup
	}

	return nil
}

// GetTLS reports whether TLS is enabled and, if so, returns the built
// *certs.Config.
func (s *Server) GetTLS() (bool, *certs.Config) {
	if !s.TLS.Enable {
		return false, nil
	}
	return true, &s.TLS.Config
}

// DefaultTLS merges a package-wide default certs.Config into s.TLS.Config.
func (s *Server) DefaultTLS(def *certs.Config) {
	if def == nil {
		return
	}
	mergeTLSDefaults(&s.TLS.Config, def)
}

func mergeTLSDefaults(dst *certs.Config, def *certs.Config) {
	if dst.MinVersion == 0 {
		dst.MinVersion = def.MinVersion
	}
	if dst.MaxVersion == 0 {
		dst.MaxVersion = def.MaxVersion
	}
	if len(dst.ClientCAFiles) == 0 {
		dst.ClientCAFiles = def.ClientCAFiles
	}
}

func validateProtocolAddress(p netproto.Protocol, addr string) error {
	switch p {
	case netproto.TCP, netproto.TCP4, netproto.TCP6:
		if _, err := net.ResolveTCPAddr(p.String(), addr); err != nil {
			return ErrInvalidAddress
		}
	case netproto.UDP, netproto.UDP4, netproto.UDP6:
		if _, err := net.ResolveUDPAddr(p.String(), addr); err != nil {
			return ErrInvalidAddress
		}
	case netproto.Unix, netproto.UnixGram:
		if _, err := net.ResolveUnixAddr(p.String(), addr); err != nil {
			return ErrInvalidAddress
		}
	default:
		return ErrInvalidProtocol
	}
	return nil
}
