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

// Package certs builds a *tls.Config from the forms a TLS endpoint's
// configuration actually takes: a PEM certificate + private key pair
// (optionally passphrase-protected), or a PKCS#12 bundle, plus an
// optional client CA pool and minimum/maximum protocol version.
//
// It is a deliberately narrower surface than a general-purpose
// certificate-management library: one certificate identity per Config,
// no certificate chains-of-chains, no CBOR/TOML encoding. Callers that
// need to load several certificates compose several Configs.
package certs

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	libval "github.com/go-playground/validator/v10"
	"golang.org/x/crypto/pkcs12"

	liberr "github.com/nabbar/flog/errors"
)

const (
	ErrorConfig liberr.CodeError = iota + liberr.MinPkgCerts + 1
	ErrorLoadPair
	ErrorLoadPKCS12
	ErrorDecodeCA
)

func init() {
	liberr.RegisterMessages(liberr.MinPkgCerts, func(c liberr.CodeError) string {
		switch c {
		case ErrorConfig:
			return "invalid TLS certificate configuration"
		case ErrorLoadPair:
			return "unable to load PEM certificate/key pair"
		case ErrorLoadPKCS12:
			return "unable to decode PKCS#12 bundle"
		case ErrorDecodeCA:
			return "unable to parse CA certificate"
		default:
			return ""
		}
	})
}

// Config is the declarative shape of a TLS endpoint's certificate
// material, populated directly from a loaded configuration file.
//
// Exactly one of (CertFile+KeyFile), (CertPEM+KeyPEM) or
// (PKCS12File/PKCS12Data + PKCS12Passphrase) should be set to provide an
// identity; a Config with none of them is valid and yields a TLS client
// config with no local certificate (the common client-only case).
type Config struct {
	CertFile string `mapstructure:"certFile" json:"certFile" validate:"omitempty,file"`
	KeyFile  string `mapstructure:"keyFile" json:"keyFile" validate:"omitempty,file"`

	CertPEM string `mapstructure:"certPem" json:"certPem"`
	KeyPEM  string `mapstructure:"keyPem" json:"keyPem"`

	KeyPassphrase string `mapstructure:"keyPassphrase" json:"-"`

	PKCS12File       string `mapstructure:"pkcs12File" json:"pkcs12File" validate:"omitempty,file"`
	PKCS12Data       []byte `mapstructure:"-" json:"-"`
	PKCS12Passphrase string `mapstructure:"pkcs12Passphrase" json:"-"`

	ClientCAFiles []string `mapstructure:"clientCAFiles" json:"clientCAFiles" validate:"omitempty,dive,file"`

	ServerName         string             `mapstructure:"serverName" json:"serverName"`
	InsecureSkipVerify bool               `mapstructure:"insecureSkipVerify" json:"insecureSkipVerify"`
	MinVersion         uint16             `mapstructure:"minVersion" json:"minVersion"`
	MaxVersion         uint16             `mapstructure:"maxVersion" json:"maxVersion"`
	ClientAuth         tls.ClientAuthType `mapstructure:"clientAuth" json:"clientAuth"`
}

// Validate checks the struct-tag constraints (file existence for any
// path fields that were set) via go-playground/validator.
func (c *Config) Validate() liberr.Error {
	if er := libval.New().Struct(c); er != nil {
		err := ErrorConfig.Error()
		if ve, ok := er.(libval.ValidationErrors); ok {
			for _, e := range ve {
				err.Add(fmt.Errorf("field '%s' failed constraint '%s'", e.StructNamespace(), e.ActualTag()))
			}
		} else {
			err.Add(er)
		}
		return err
	}
	return nil
}

// hasIdentity reports whether c carries enough material to build a
// local certificate (as opposed to a client-only, cert-less config).
func (c *Config) hasIdentity() bool {
	return c.CertFile != "" || c.CertPEM != "" || c.PKCS12File != "" || len(c.PKCS12Data) > 0
}

// TLSConfig builds a *tls.Config from c. Per this module's default
// posture, InsecureSkipVerify is honoured as given rather than forced:
// callers that want the historical "accept anything" default should set
// it explicitly, since a library default of skipping verification
// would be a silent security footgun for every other caller.
func (c *Config) TLSConfig() (*tls.Config, error) {
	cfg := &tls.Config{
		ServerName:         c.ServerName,
		InsecureSkipVerify: c.InsecureSkipVerify,
		MinVersion:         c.MinVersion,
		MaxVersion:         c.MaxVersion,
		ClientAuth:         c.ClientAuth,
	}

	if c.hasIdentity() {
		cert, err := c.loadCertificate()
		if err != nil {
			return nil, err
		}
		cfg.Certificates = []tls.Certificate{cert}
	}

	if len(c.ClientCAFiles) > 0 {
		pool := x509.NewCertPool()
		for _, f := range c.ClientCAFiles {
			pem, err := os.ReadFile(f)
			if err != nil {
				return nil, ErrorDecodeCA.Errorf("reading %s: %s", f, err)
			}
			if !pool.AppendCertsFromPEM(pem) {
				return nil, ErrorDecodeCA.Errorf("no valid certificate found in %s", f)
			}
		}
		cfg.ClientCAs = pool
	}

	return cfg, nil
}

func (c *Config) loadCertificate() (tls.Certificate, error) {
	switch {
	case c.PKCS12File != "" || len(c.PKCS12Data) > 0:
		return c.loadPKCS12()
	case c.CertFile != "" && c.KeyFile != "":
		return tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
	case c.CertPEM != "" && c.KeyPEM != "":
		key := []byte(c.KeyPEM)
		if c.KeyPassphrase != "" {
			decoded, err := decryptPEMKey(key, c.KeyPassphrase)
			if err != nil {
				return tls.Certificate{}, ErrorLoadPair.Errorf("decrypting private key: %s", err)
			}
			key = decoded
		}
		return tls.X509KeyPair([]byte(c.CertPEM), key)
	default:
		return tls.Certificate{}, ErrorLoadPair.Errorf("no certificate material configured")
	}
}

func (c *Config) loadPKCS12() (tls.Certificate, error) {
	data := c.PKCS12Data
	if len(data) == 0 {
		raw, err := os.ReadFile(c.PKCS12File)
		if err != nil {
			return tls.Certificate{}, ErrorLoadPKCS12.Errorf("reading %s: %s", c.PKCS12File, err)
		}
		data = raw
	}

	key, cert, err := pkcs12.Decode(data, c.PKCS12Passphrase)
	if err != nil {
		return tls.Certificate{}, ErrorLoadPKCS12.Errorf("decoding: %s", err)
	}

	return tls.Certificate{
		Certificate: [][]byte{cert.Raw},
		PrivateKey:  key,
		Leaf:        cert,
	}, nil
}
