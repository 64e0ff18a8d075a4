/*
 * MIT License
 *
 * Copyright (c) 2025 eventsock contributors
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
 */

package perm_test

import (
	"os"
	"reflect"

	. "github.com/nabbar/eventsock/socket/perm"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Perm", func() {
	Describe("Parse", func() {
		It("parses a leading-zero octal string", func() {
			p, err := Parse("0644")
			Expect(err).ToNot(HaveOccurred())
			Expect(p.FileMode()).To(Equal(os.FileMode(0644)))
		})

		It("parses an octal string without the leading zero", func() {
			p, err := Parse("755")
			Expect(err).ToNot(HaveOccurred())
			Expect(p.FileMode()).To(Equal(os.FileMode(0755)))
		})

		It("parses the 0o-prefixed Go literal form", func() {
			p, err := Parse("0o600")
			Expect(err).ToNot(HaveOccurred())
			Expect(p.FileMode()).To(Equal(os.FileMode(0600)))
		})

		It("treats an empty string as the unset zero value", func() {
			p, err := Parse("")
			Expect(err).ToNot(HaveOccurred())
			Expect(p).To(Equal(Perm(0)))
		})

		It("rejects a non-octal string", func() {
			_, err := Parse("not-a-mode")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("String", func() {
		It("renders as a zero-padded octal string", func() {
			p, _ := Parse("0644")
			Expect(p.String()).To(Equal("0644"))
		})
	})

	Describe("ViperDecoderHook", func() {
		var hook func(reflect.Type, reflect.Type, interface{}) (interface{}, error)

		BeforeEach(func() {
			hook = ViperDecoderHook()
		})

		It("decodes a string into the matching Perm", func() {
			out, err := hook(reflect.TypeOf(""), reflect.TypeOf(Perm(0)), "0640")
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal(Perm(0640)))
		})

		It("passes through untouched when the target type isn't Perm", func() {
			out, err := hook(reflect.TypeOf(""), reflect.TypeOf(0), "hello")
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal("hello"))
		})

		It("passes through untouched when the source isn't a string", func() {
			out, err := hook(reflect.TypeOf(0), reflect.TypeOf(Perm(0)), 420)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal(420))
		})
	})
})
