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

package server_test

import (
	"io"
	"net"
	"sync/atomic"
	"time"

	"github.com/nabbar/eventsock/socket"
	"github.com/nabbar/eventsock/socket/config"
	"github.com/nabbar/eventsock/socket/conn"
	"github.com/nabbar/eventsock/socket/protocol"
	"github.com/nabbar/eventsock/socket/server"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Server", func() {
	Describe("New", func() {
		It("rejects a config that fails Validate", func() {
			srv, err := server.New(nil, socket.Handler{}, config.Server{})
			Expect(err).To(HaveOccurred())
			Expect(srv).To(BeNil())
		})

		It("accepts a valid config without binding anything", func() {
			srv, err := server.New(nil, socket.Handler{}, config.Server{
				Network: protocol.NetworkTCP,
				Address: getTestAddress(),
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(srv).ToNot(BeNil())
			Expect(srv.IsRunning()).To(BeFalse())
		})
	})

	Describe("TCP lifecycle", func() {
		var (
			srv  *server.Server
			addr string
		)

		BeforeEach(func() {
			addr = getTestAddress()
			var err error
			srv, err = server.New(nil, socket.Handler{
				Data: func(ctx socket.Context, buf []byte) (int, error) {
					_, werr := ctx.Send(buf)
					return len(buf), werr
				},
			}, config.Server{Network: protocol.NetworkTCP, Address: addr})
			Expect(err).ToNot(HaveOccurred())
		})

		AfterEach(func() {
			_ = srv.Shutdown(backgroundCtx())
		})

		It("starts running after Listen and stops running after Shutdown", func() {
			Expect(srv.Listen(backgroundCtx())).ToNot(HaveOccurred())
			Expect(srv.IsRunning()).To(BeTrue())

			Expect(srv.Shutdown(backgroundCtx())).ToNot(HaveOccurred())
			Expect(srv.IsRunning()).To(BeFalse())
		})

		It("rejects a second Listen while already running", func() {
			Expect(srv.Listen(backgroundCtx())).ToNot(HaveOccurred())
			Expect(srv.Listen(backgroundCtx())).To(HaveOccurred())
		})

		It("echoes data sent by a connected client and tracks it as open", func() {
			Expect(srv.Listen(backgroundCtx())).ToNot(HaveOccurred())

			c := connectClient(addr)
			defer func() { _ = c.Close() }()

			Expect(waitFor(func() bool { return srv.OpenConnections() == 1 }, time.Second)).To(BeTrue())

			_, err := c.Write([]byte("hello"))
			Expect(err).ToNot(HaveOccurred())

			buf := make([]byte, 5)
			Expect(c.SetReadDeadline(time.Now().Add(2 * time.Second))).ToNot(HaveOccurred())
			_, err = io.ReadFull(c, buf)
			Expect(err).ToNot(HaveOccurred())
			Expect(string(buf)).To(Equal("hello"))
		})

		It("decrements OpenConnections once a client disconnects", func() {
			Expect(srv.Listen(backgroundCtx())).ToNot(HaveOccurred())

			c := connectClient(addr)
			Expect(waitFor(func() bool { return srv.OpenConnections() == 1 }, time.Second)).To(BeTrue())

			Expect(c.Close()).ToNot(HaveOccurred())
			Expect(waitFor(func() bool { return srv.OpenConnections() == 0 }, 2*time.Second)).To(BeTrue())
		})

		It("runs the UpdateConn hook against every accepted raw connection", func() {
			var seen atomic.Int32
			var err error
			srv, err = server.New(func(nc net.Conn) {
				seen.Add(1)
			}, socket.Handler{}, config.Server{Network: protocol.NetworkTCP, Address: addr})
			Expect(err).ToNot(HaveOccurred())
			Expect(srv.Listen(backgroundCtx())).ToNot(HaveOccurred())

			c := connectClient(addr)
			defer func() { _ = c.Close() }()

			Expect(waitFor(func() bool { return seen.Load() == 1 }, time.Second)).To(BeTrue())
		})

		It("runs the ChildDestructor hook once per still-open connection on Shutdown", func() {
			var destroyed atomic.Int32
			srv.SetChildDestructor(func(*conn.Conn) {
				destroyed.Add(1)
			})
			Expect(srv.Listen(backgroundCtx())).ToNot(HaveOccurred())

			c := connectClient(addr)
			defer func() { _ = c.Close() }()
			Expect(waitFor(func() bool { return srv.OpenConnections() == 1 }, time.Second)).To(BeTrue())

			Expect(srv.Shutdown(backgroundCtx())).ToNot(HaveOccurred())
			Expect(destroyed.Load()).To(Equal(int32(1)))
		})
	})

	Describe("UDP lifecycle", func() {
		It("is immediately running with one logical open connection after Listen", func() {
			addr := getTestAddress()
			srv, err := server.New(nil, socket.Handler{
				Datagram: func(ctx socket.Context, buf []byte) {
					peer := ctx.Peer()
					_, _ = ctx.SendTo(peer.Addr, peer.Port, buf)
				},
			}, config.Server{Network: protocol.NetworkUDP, Address: addr})
			Expect(err).ToNot(HaveOccurred())
			Expect(srv.Listen(backgroundCtx())).ToNot(HaveOccurred())
			defer func() { _ = srv.Shutdown(backgroundCtx()) }()

			Expect(srv.IsRunning()).To(BeTrue())
			Expect(srv.OpenConnections()).To(Equal(1))

			uc, err := net.Dial("udp", addr)
			Expect(err).ToNot(HaveOccurred())
			defer func() { _ = uc.Close() }()

			_, err = uc.Write([]byte("ping"))
			Expect(err).ToNot(HaveOccurred())

			buf := make([]byte, 4)
			Expect(uc.SetReadDeadline(time.Now().Add(2 * time.Second))).ToNot(HaveOccurred())
			_, err = io.ReadFull(uc, buf)
			Expect(err).ToNot(HaveOccurred())
			Expect(string(buf)).To(Equal("ping"))
		})

		It("rejects an invalid MulticastGroup and leaves the server not running", func() {
			srv, err := server.New(nil, socket.Handler{}, config.Server{
				Network:        protocol.NetworkUDP6,
				Address:        getTestUDP6Address(),
				MulticastGroup: "not-an-ip",
			})
			Expect(err).ToNot(HaveOccurred())

			Expect(srv.Listen(backgroundCtx())).To(HaveOccurred())
			Expect(srv.IsRunning()).To(BeFalse())
		})
	})
})
