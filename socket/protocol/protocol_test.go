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

package protocol_test

import (
	"reflect"

	. "github.com/nabbar/eventsock/socket/protocol"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("NetworkProtocol", func() {
	Describe("Parse", func() {
		It("parses every known network name case-insensitively", func() {
			Expect(Parse("tcp")).To(Equal(NetworkTCP))
			Expect(Parse("TCP")).To(Equal(NetworkTCP))
			Expect(Parse(" Tcp4 ")).To(Equal(NetworkTCP4))
			Expect(Parse("tcp6")).To(Equal(NetworkTCP6))
			Expect(Parse("udp")).To(Equal(NetworkUDP))
			Expect(Parse("udp4")).To(Equal(NetworkUDP4))
			Expect(Parse("udp6")).To(Equal(NetworkUDP6))
			Expect(Parse("unix")).To(Equal(NetworkUnix))
			Expect(Parse("unixgram")).To(Equal(NetworkUnixGram))
		})

		It("returns the zero value for an unrecognized name", func() {
			Expect(Parse("sctp")).To(Equal(NetworkProtocol(0)))
			Expect(Parse("")).To(Equal(NetworkProtocol(0)))
		})
	})

	Describe("String", func() {
		It("round-trips through Parse for every named constant", func() {
			for _, p := range []NetworkProtocol{
				NetworkUnix, NetworkTCP, NetworkTCP4, NetworkTCP6,
				NetworkUDP, NetworkUDP4, NetworkUDP6, NetworkUnixGram,
			} {
				Expect(Parse(p.String())).To(Equal(p))
			}
		})

		It("returns empty for the zero value", func() {
			Expect(NetworkProtocol(0).String()).To(Equal(""))
		})
	})

	Describe("IsStream", func() {
		It("is true for TCP variants and Unix stream sockets", func() {
			Expect(NetworkTCP.IsStream()).To(BeTrue())
			Expect(NetworkTCP4.IsStream()).To(BeTrue())
			Expect(NetworkTCP6.IsStream()).To(BeTrue())
			Expect(NetworkUnix.IsStream()).To(BeTrue())
		})

		It("is false for datagram transports", func() {
			Expect(NetworkUDP.IsStream()).To(BeFalse())
			Expect(NetworkUDP4.IsStream()).To(BeFalse())
			Expect(NetworkUDP6.IsStream()).To(BeFalse())
			Expect(NetworkUnixGram.IsStream()).To(BeFalse())
		})
	})

	Describe("IsUnix", func() {
		It("is true only for the two Unix-domain protocols", func() {
			Expect(NetworkUnix.IsUnix()).To(BeTrue())
			Expect(NetworkUnixGram.IsUnix()).To(BeTrue())
			Expect(NetworkTCP.IsUnix()).To(BeFalse())
			Expect(NetworkUDP.IsUnix()).To(BeFalse())
		})
	})

	Describe("ViperDecoderHook", func() {
		var hook func(reflect.Type, reflect.Type, interface{}) (interface{}, error)

		BeforeEach(func() {
			hook = ViperDecoderHook()
		})

		It("decodes a string into the matching NetworkProtocol", func() {
			out, err := hook(reflect.TypeOf(""), reflect.TypeOf(NetworkProtocol(0)), "tcp6")
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal(NetworkTCP6))
		})

		It("rejects an unrecognized non-empty string", func() {
			_, err := hook(reflect.TypeOf(""), reflect.TypeOf(NetworkProtocol(0)), "sctp")
			Expect(err).To(HaveOccurred())
		})

		It("decodes a numeric value by its ordinal", func() {
			out, err := hook(reflect.TypeOf(int(0)), reflect.TypeOf(NetworkProtocol(0)), int(NetworkUDP))
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal(NetworkUDP))
		})

		It("passes through untouched when the target type isn't NetworkProtocol", func() {
			out, err := hook(reflect.TypeOf(""), reflect.TypeOf(0), "hello")
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal("hello"))
		})
	})
})
