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

package xdrbasic_test

import (
	"testing"

	"github.com/nabbar/flog/oncrpc/xdrbasic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestXdrbasic(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Xdrbasic Suite")
}

var _ = Describe("Codec round-trip", func() {
	It("round-trips every scalar type in written order", func() {
		enc := xdrbasic.NewEncoder()
		enc.WriteBool(true)
		enc.WriteInt32(-42)
		enc.WriteUint32(42)
		enc.WriteInt64(-1234567890123)
		enc.WriteUint64(1234567890123)
		enc.WriteFloat64(3.25)
		enc.WriteString("hello")
		enc.WriteOpaque([]byte{1, 2, 3})

		dec := xdrbasic.NewDecoder(enc.Bytes())

		b, err := dec.ReadBool()
		Expect(err).NotTo(HaveOccurred())
		Expect(b).To(BeTrue())

		i32, err := dec.ReadInt32()
		Expect(err).NotTo(HaveOccurred())
		Expect(i32).To(Equal(int32(-42)))

		u32, err := dec.ReadUint32()
		Expect(err).NotTo(HaveOccurred())
		Expect(u32).To(Equal(uint32(42)))

		i64, err := dec.ReadInt64()
		Expect(err).NotTo(HaveOccurred())
		Expect(i64).To(Equal(int64(-1234567890123)))

		u64, err := dec.ReadUint64()
		Expect(err).NotTo(HaveOccurred())
		Expect(u64).To(Equal(uint64(1234567890123)))

		f64, err := dec.ReadFloat64()
		Expect(err).NotTo(HaveOccurred())
		Expect(f64).To(Equal(3.25))

		s, err := dec.ReadString()
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(Equal("hello"))

		o, err := dec.ReadOpaque()
		Expect(err).NotTo(HaveOccurred())
		Expect(o).To(Equal([]byte{1, 2, 3}))
	})

	It("pads opaque data to a 4-byte boundary", func() {
		enc := xdrbasic.NewEncoder()
		enc.WriteOpaque([]byte{1})
		enc.WriteUint32(0xAABBCCDD)

		// length(4) + data(1) + pad(3) + next uint32(4) = 12
		Expect(len(enc.Bytes())).To(Equal(12))

		dec := xdrbasic.NewDecoder(enc.Bytes())
		o, err := dec.ReadOpaque()
		Expect(err).NotTo(HaveOccurred())
		Expect(o).To(Equal([]byte{1}))

		u, err := dec.ReadUint32()
		Expect(err).NotTo(HaveOccurred())
		Expect(u).To(Equal(uint32(0xAABBCCDD)))
	})

	It("errors on a truncated read", func() {
		dec := xdrbasic.NewDecoder([]byte{0, 0})
		_, err := dec.ReadUint32()
		Expect(err).To(HaveOccurred())
	})
})
