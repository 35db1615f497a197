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

package fileperm_test

import (
	"os"
	"reflect"
	"testing"

	"github.com/nabbar/flog/fileperm"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestFilePerm(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "FilePerm Suite")
}

var _ = Describe("Perm parsing", func() {
	It("parses an octal string", func() {
		p, err := fileperm.Parse("0644")
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Uint64()).To(Equal(uint64(0644)))
	})

	It("parses a symbolic string without a type prefix", func() {
		p, err := fileperm.Parse("rw-r--r--")
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Uint64()).To(Equal(uint64(0644)))
	})

	It("parses a symbolic string with a directory prefix", func() {
		p, err := fileperm.Parse("drwxr-xr-x")
		Expect(err).NotTo(HaveOccurred())
		Expect(p.FileMode() & os.ModeDir).To(Equal(os.ModeDir))
	})

	It("rejects an invalid permission character", func() {
		_, err := fileperm.Parse("rwzr--r--")
		Expect(err).To(HaveOccurred())
	})

	It("rejects a string of the wrong length", func() {
		_, err := fileperm.Parse("rwx")
		Expect(err).To(HaveOccurred())
	})

	It("converts ParseFileMode back to the original bits", func() {
		mode := os.FileMode(0755)
		Expect(fileperm.ParseFileMode(mode).FileMode()).To(Equal(mode))
	})

	It("formats String as an octal literal", func() {
		Expect(fileperm.Perm(0644).String()).To(Equal("0644"))
	})

	It("round-trips through MarshalText/UnmarshalText", func() {
		var p fileperm.Perm
		text, err := fileperm.Perm(0600).MarshalText()
		Expect(err).NotTo(HaveOccurred())
		Expect(p.UnmarshalText(text)).To(Succeed())
		Expect(p.Uint64()).To(Equal(uint64(0600)))
	})
})

var _ = Describe("ViperDecoderHook", func() {
	It("decodes an octal string into a Perm", func() {
		hook := fileperm.ViperDecoderHook()
		result, err := hook(reflect.TypeOf(""), reflect.TypeOf(fileperm.Perm(0)), "0640")
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(fileperm.Perm(0640)))
	})

	It("passes through a non-Perm target unchanged", func() {
		hook := fileperm.ViperDecoderHook()
		result, err := hook(reflect.TypeOf(""), reflect.TypeOf(""), "0640")
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal("0640"))
	})
})
