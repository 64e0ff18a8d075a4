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

package conn

import (
	"net"

	"github.com/nabbar/eventsock/socket"
	"github.com/nabbar/eventsock/socket/address"
	"github.com/nabbar/eventsock/internal/sockopt"
)

// Accept blocks on the listening socket and returns one accepted child
// Connection in StateEstablished. If existing is nil, a fresh Conn is
// allocated; otherwise existing is reset in place ("placement accept")
// and returned. Accept transitions self to StateAccepting only for the
// duration of the blocking call, then back to StateListening. It does not
// hold the mutex across the blocking accept(2): a concurrent Close on
// this same listening Conn closes the listener, which is what unblocks
// Accept when the server tears down.
//
// Accept does not install a handler on the child or start its I/O
// worker: the caller installs per-child handlers with SetHandler/
// SetLogger and then calls StartIO, the same separation the
// server-level accept handler is responsible for.
//
// On failure (most commonly: the listener was closed from another
// goroutine), Accept returns a nil Conn and a non-nil error — never a
// partially-initialized child.
func (c *Conn) Accept(existing *Conn) (*Conn, error) {
	c.mu.Lock()
	if c.state != socket.StateListening || c.listener == nil {
		c.mu.Unlock()
		return nil, socket.ErrWrongState
	}
	c.state = socket.StateAccepting
	ln := c.listener
	c.mu.Unlock()

	nc, err := ln.Accept()

	c.mu.Lock()
	if c.state == socket.StateAccepting {
		c.state = socket.StateListening
	}
	c.mu.Unlock()

	if err != nil {
		if socket.ErrorFilter(err) == nil {
			return nil, socket.ErrClosed
		}
		return nil, socket.SystemCallError(err)
	}

	if tc, ok := nc.(*net.TCPConn); ok {
		if err := sockopt.SetNoDelay(tc); err != nil {
			_ = nc.Close()
			return nil, err
		}
	}

	var child *Conn
	if existing != nil {
		existing.mu.Lock()
		existing.reset(c.family)
		child = existing
	} else {
		child = newConn(c.family)
		child.mu.Lock()
	}
	child.streamConn = nc
	child.mode = socket.ModeTCP
	child.tcpPeer = address.FromNetAddr(nc.RemoteAddr())
	child.state = socket.StateEstablished
	child.newConnection = true
	child.mu.Unlock()

	return child, nil
}
