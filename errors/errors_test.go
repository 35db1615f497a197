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

package errors_test

import (
	stderrors "errors"

	liberr "github.com/nabbar/flog/errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const testCode liberr.CodeError = liberr.MinAvailable + 1

var _ = Describe("Error creation and chaining", func() {
	It("carries a code and message", func() {
		e := testCode.Errorf("boom: %d", 42)
		Expect(e.Code()).To(Equal(testCode))
		Expect(e.Error()).To(ContainSubstring("boom: 42"))
	})

	It("chains parents and reports HasCode", func() {
		root := stderrors.New("root cause")
		e := liberr.New(testCode, "wrapped", root)
		Expect(e.HasParent()).To(BeTrue())
		Expect(e.HasCode(testCode)).To(BeTrue())
	})

	It("Make is idempotent on an already-wrapped error", func() {
		e := liberr.New(testCode, "already")
		Expect(liberr.Make(e)).To(BeIdenticalTo(e))
	})

	It("MakeIfError returns nil when every argument is nil", func() {
		Expect(liberr.MakeIfError(nil, nil)).To(BeNil())
	})

	It("MakeIfError aggregates non-nil errors as parents", func() {
		e := liberr.MakeIfError(nil, stderrors.New("a"), stderrors.New("b"))
		Expect(e).NotTo(BeNil())
		Expect(e.HasParent()).To(BeTrue())
	})

	It("Get returns the Error itself, and nil for a plain error built from its text", func() {
		e := liberr.New(testCode, "inner")
		wrapped := stderrors.New("outer: " + e.Error())
		Expect(liberr.Get(wrapped)).To(BeNil())
		Expect(liberr.Get(e)).To(Equal(e))
	})
})
