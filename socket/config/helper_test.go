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
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/nabbar/flog/fileperm"
	"github.com/nabbar/flog/netproto"

	. "github.com/onsi/ginkgo/v2"
)

func isWindows() bool {
	return runtime.GOOS == "windows"
}

func skipIfWindows(msg string) {
	if isWindows() {
		Skip(fmt.Sprintf("skipping on windows: %s", msg))
	}
}

func tmpSocketPath(prefix string) string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("%s_%d.sock", prefix, os.Getpid()))
}

func validTCPAddresses() []string {
	return []string{"localhost:8080", "127.0.0.1:8080", ":8080", "0.0.0.0:8080", "[::1]:8080", "[::]:8080"}
}

func invalidTCPAddresses() []string {
	return []string{"", "localhost", "localhost:", ":99999", "invalid:port", "[::1]"}
}

func validUDPAddresses() []string {
	return []string{"localhost:9000", "127.0.0.1:9000", ":9000", "0.0.0.0:9000", "[::1]:9000", "[::]:9000"}
}

func invalidUDPAddresses() []string {
	return []string{"", "localhost", "localhost:", ":99999", "invalid:port"}
}

func validUnixAddresses() []string {
	dir := os.TempDir()
	return []string{filepath.Join(dir, "test.sock"), filepath.Join(dir, "app", "server.sock"), "./test.sock", "/tmp/test.sock"}
}

func invalidUnixAddresses() []string {
	return []string{""}
}

func tcpProtocols() []netproto.Protocol {
	return []netproto.Protocol{netproto.TCP, netproto.TCP4, netproto.TCP6}
}

func udpProtocols() []netproto.Protocol {
	return []netproto.Protocol{netproto.UDP, netproto.UDP4, netproto.UDP6}
}

func unixProtocols() []netproto.Protocol {
	return []netproto.Protocol{netproto.Unix, netproto.UnixGram}
}

func validGroupIDs() []int32 {
	return []int32{-1, 0, 1000, 32767}
}

func invalidGroupIDs() []int32 {
	return []int32{32768, 99999}
}

func validFilePermissions() []fileperm.Perm {
	return []fileperm.Perm{0600, 0660, 0666, 0700, 0770}
}
