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

package socket

import (
	"context"
	"net"

	"github.com/sirupsen/logrus"
)

// tracingServer decorates a Server, logging every accept, state
// transition, and error at debug level — the Go stand-in for the
// original runtime's per-syscall trace log (descriptor, direction,
// byte count collapse here into "state transition on this address
// pair", since Go's net.Conn hides the raw descriptor).
type tracingServer struct {
	Server
	log *logrus.Entry
}

// TracingServer wraps srv so every ConnState transition and reported
// error is logged through log. The logging runs as srv's FuncInfo and
// FuncError callbacks, so registering either again, on srv or on the
// returned Server, replaces the logging callback of that kind.
func TracingServer(srv Server, log *logrus.Entry) Server {
	t := &tracingServer{Server: srv, log: log}
	srv.RegisterFuncInfo(func(local, remote net.Addr, state ConnState) {
		log.WithFields(logrus.Fields{
			"local":  local.String(),
			"remote": remote.String(),
			"state":  state.String(),
		}).Debug("socket: connection state")
	})
	srv.RegisterFuncError(func(errs ...error) {
		for _, e := range errs {
			log.WithError(e).Warn("socket: server error")
		}
	})
	return t
}

func (t *tracingServer) Listen(ctx context.Context) error {
	t.log.Debug("socket: listen starting")
	err := t.Server.Listen(ctx)
	t.log.WithError(err).Debug("socket: listen returned")
	return err
}

// tracingClient decorates a Client the same way TracingServer decorates
// a Server.
type tracingClient struct {
	Client
	log *logrus.Entry
}

// TracingClient wraps cli so every Connect call and reported error is
// also logged through log. Errors are logged by cli's FuncError
// callback, so registering another one replaces that logging.
func TracingClient(cli Client, log *logrus.Entry) Client {
	t := &tracingClient{Client: cli, log: log}
	cli.RegisterFuncError(func(errs ...error) {
		for _, e := range errs {
			log.WithError(e).Warn("socket: client error")
		}
	})
	return t
}

func (t *tracingClient) Connect(ctx context.Context) error {
	t.log.Debug("socket: connect starting")
	err := t.Client.Connect(ctx)
	t.log.WithError(err).Debug("socket: connect returned")
	return err
}
