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

// Package conn implements the per-connection I/O engine: the Conn state
// machine, its receive-buffering and framing protocol, the inactivity
// timer, and the orderly shutdown sequence.
package conn

import (
	"net"
	"sync"

	"github.com/google/uuid"

	"github.com/nabbar/eventsock/socket"
	"github.com/nabbar/eventsock/socket/address"
	"github.com/nabbar/eventsock/socket/buffer"
	"github.com/nabbar/eventsock/socket/logger"
)

// Conn is one socket — TCP, UDP, or Unix-domain stream/datagram — driven
// by a single dedicated I/O worker goroutine. The zero value is not usable;
// construct with New.
type Conn struct {
	mu sync.Mutex

	id     string
	family socket.Family
	state  socket.ConnState
	mode   socket.Mode
	log    logger.Logger

	// stream transport (TCP or Unix stream)
	streamConn net.Conn
	listener   net.Listener

	// datagram transport (UDP or Unix datagram)
	dgramConn net.PacketConn

	tcpPeer       address.Info
	udpLastSender address.Info

	rx      *buffer.Buffer
	handler socket.Handler

	workerRunning bool
	workerGID     uint64 // 0 means "no worker running"
	newConnection bool

	inactivityMs     uint32
	inactivityNextMs uint32

	stopCh chan struct{} // never created or closed; Close unblocks the worker by closing its transport
	doneCh chan struct{} // closed by the worker when its goroutine returns
}

// New constructs a Conn for the given address family. Every field starts
// at its None/invalid zero value; the receive buffer is pre-reserved to
// buffer.GrowSize bytes.
func New(family socket.Family) *Conn {
	return newConn(family)
}

func newConn(family socket.Family) *Conn {
	return &Conn{
		id:               uuid.NewString(),
		family:           family,
		state:            socket.StateNone,
		log:              logger.Discard(),
		rx:               buffer.New(),
		inactivityNextMs: uint32(socket.InactivityInterval.Milliseconds()),
	}
}

// ID returns this Conn's stable identity, used in log correlation and as
// the key a server's cleanup queue tracks children by.
func (c *Conn) ID() string { return c.id }

// SetLogger installs a structured logger; passing nil restores the
// discard logger. Like SetHandler, this must precede Connect/Listen/the
// worker starting.
func (c *Conn) SetLogger(l logger.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if l == nil {
		l = logger.Discard()
	}
	c.log = l
}

// SetHandler installs the handler table the I/O worker will invoke. This
// takes a copy of the struct (it holds only function values, so the copy
// is cheap and the caller is free to discard its own copy). Calling
// SetHandler after the worker has started is undefined.
func (c *Conn) SetHandler(h socket.Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = h
}

// State returns the current connection state under the Conn's mutex.
func (c *Conn) State() socket.ConnState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Mode returns the currently active transport bitset.
func (c *Conn) Mode() socket.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Peer returns the TCP peer address captured at connect/accept time.
func (c *Conn) Peer() address.Info {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tcpPeer
}

// RawConn returns the underlying net.Conn for a stream Connection, or nil
// for a datagram or not-yet-established one. It exists solely so a server
// can run its UpdateConn hook right after accept; handlers should use
// Context.Send/SendTo instead of reaching for this directly.
func (c *Conn) RawConn() net.Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.streamConn
}

// PacketConn returns the underlying net.PacketConn for a datagram
// Connection, or nil for a stream or not-yet-established one. Like
// RawConn, it exists for a server to reach the raw socket (to join a
// multicast group) without exposing it through Context.
func (c *Conn) PacketConn() net.PacketConn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dgramConn
}

// Done returns a channel closed once this Connection's I/O worker has
// exited — on its own (peer close, handler rejection) or because Close
// tore the transport down. A server uses this to learn when an accepted
// child is ready for cleanup without polling State(). Done returns nil if
// no worker has ever been started.
func (c *Conn) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doneCh
}

// reset reinitializes every field except the mutex itself to the same
// None/invalid zero state New would produce. It backs the "placement
// accept" path: passing existing storage to Accept re-runs
// construction on that storage rather than allocating a fresh Conn.
func (c *Conn) reset(family socket.Family) {
	c.id = uuid.NewString()
	c.family = family
	c.state = socket.StateNone
	c.mode = socket.ModeNone
	c.log = logger.Discard()
	c.streamConn = nil
	c.listener = nil
	c.dgramConn = nil
	c.tcpPeer = address.Info{}
	c.udpLastSender = address.Info{}
	c.rx = buffer.New()
	c.handler = socket.Handler{}
	c.workerRunning = false
	c.workerGID = 0
	c.newConnection = false
	c.inactivityMs = 0
	c.inactivityNextMs = uint32(socket.InactivityInterval.Milliseconds())
	c.stopCh = nil
	c.doneCh = nil
}

func (c *Conn) networkForFamily(stream bool) string {
	switch c.family {
	case socket.FamilyIPv4:
		if stream {
			return "tcp4"
		}
		return "udp4"
	case socket.FamilyIPv6:
		if stream {
			return "tcp6"
		}
		return "udp6"
	default:
		if stream {
			return "tcp"
		}
		return "udp"
	}
}
