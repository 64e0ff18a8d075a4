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

package config_test

import (
	. "github.com/nabbar/eventsock/socket/config"
	"github.com/nabbar/eventsock/socket/protocol"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Client", func() {
	Describe("Validate", func() {
		It("rejects the zero-value protocol", func() {
			c := Client{}
			Expect(c.Validate()).To(MatchError(ErrInvalidProtocol))
		})

		It("accepts a Unix target without resolving anything", func() {
			c := Client{Network: protocol.NetworkUnix, Address: "/does/not/exist.sock"}
			Expect(c.Validate()).ToNot(HaveOccurred())
		})

		It("accepts an empty address for a resolvable protocol", func() {
			c := Client{Network: protocol.NetworkTCP}
			Expect(c.Validate()).ToNot(HaveOccurred())
		})

		It("resolves a well-formed TCP address", func() {
			c := Client{Network: protocol.NetworkTCP, Address: "127.0.0.1:0"}
			Expect(c.Validate()).ToNot(HaveOccurred())
		})

		It("rejects a malformed TCP address", func() {
			c := Client{Network: protocol.NetworkTCP, Address: "not-an-address"}
			Expect(c.Validate()).To(HaveOccurred())
		})

		It("resolves a well-formed UDP address", func() {
			c := Client{Network: protocol.NetworkUDP, Address: "127.0.0.1:0"}
			Expect(c.Validate()).ToNot(HaveOccurred())
		})
	})
})

var _ = Describe("Server", func() {
	Describe("Validate", func() {
		It("rejects the zero-value protocol", func() {
			s := Server{}
			Expect(s.Validate()).To(MatchError(ErrInvalidProtocol))
		})

		It("rejects a GroupPerm below -1", func() {
			s := Server{Network: protocol.NetworkUnix, GroupPerm: -2}
			Expect(s.Validate()).To(MatchError(ErrInvalidGroup))
		})

		It("rejects a GroupPerm above MaxGID", func() {
			s := Server{Network: protocol.NetworkUnix, GroupPerm: MaxGID + 1}
			Expect(s.Validate()).To(MatchError(ErrInvalidGroup))
		})

		It("accepts -1 as the sentinel for no chown", func() {
			s := Server{Network: protocol.NetworkUnix, GroupPerm: -1}
			Expect(s.Validate()).ToNot(HaveOccurred())
		})

		It("accepts MaxGID exactly", func() {
			s := Server{Network: protocol.NetworkUnix, GroupPerm: MaxGID}
			Expect(s.Validate()).ToNot(HaveOccurred())
		})

		It("accepts a Unix listener path without resolving it", func() {
			s := Server{Network: protocol.NetworkUnixGram, Address: "@abstract-name"}
			Expect(s.Validate()).ToNot(HaveOccurred())
		})

		It("resolves a well-formed TCP listen address", func() {
			s := Server{Network: protocol.NetworkTCP, Address: "0.0.0.0:0"}
			Expect(s.Validate()).ToNot(HaveOccurred())
		})

		It("rejects a malformed UDP listen address", func() {
			s := Server{Network: protocol.NetworkUDP, Address: "not-an-address"}
			Expect(s.Validate()).To(HaveOccurred())
		})
	})
})
