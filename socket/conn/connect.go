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
	"context"
	"net"
	"strconv"

	"github.com/nabbar/eventsock/socket"
	"github.com/nabbar/eventsock/socket/address"
	"github.com/nabbar/eventsock/internal/sockopt"
)

// Connect is the active-open path: it requires TCP not already active,
// parses addr as a numeric address for this Conn's family, dials, enables TCP_NODELAY,
// records the peer, transitions to Established, and starts the I/O
// worker. A failure after the socket was created closes it before
// returning, and a failure to start the worker leaves the Conn Closed.
// Connect does not check that a handler is installed: a Conn without one
// still connects, and its received bytes stay in the receive buffer.
func (c *Conn) Connect(ctx context.Context, addr string, port uint16) error {
	c.mu.Lock()
	if c.mode.Has(socket.ModeTCP) {
		c.mu.Unlock()
		return socket.ErrWrongState
	}
	c.mu.Unlock()

	ip := net.ParseIP(addr)
	if ip == nil {
		return socket.ErrInvalidArgument
	}
	if is4 := ip.To4() != nil; (c.family == socket.FamilyIPv4 && !is4) || (c.family == socket.FamilyIPv6 && is4) {
		return socket.ErrInvalidArgument
	}

	dialer := net.Dialer{}
	target := net.JoinHostPort(addr, strconv.Itoa(int(port)))
	nc, err := dialer.DialContext(ctx, c.networkForFamily(true), target)
	if err != nil {
		return socket.SystemCallError(err)
	}

	if tc, ok := nc.(*net.TCPConn); ok {
		if err := sockopt.SetNoDelay(tc); err != nil {
			_ = nc.Close()
			return socket.SystemCallError(err)
		}
	}

	c.mu.Lock()
	c.streamConn = nc
	c.mode |= socket.ModeTCP
	c.tcpPeer = address.FromNetAddr(nc.RemoteAddr())
	c.state = socket.StateEstablished
	c.newConnection = true
	c.mu.Unlock()

	if err := c.startWorker(); err != nil {
		_ = nc.Close()
		c.mu.Lock()
		c.state = socket.StateClosed
		c.mode = socket.ModeNone
		c.streamConn = nil
		c.mu.Unlock()
		return err
	}
	return nil
}

// UnixConnect is the local-domain analogue of Connect. A leading '@' in
// path selects the Linux abstract namespace, per the same convention used
// by ListenUnix.
func (c *Conn) UnixConnect(ctx context.Context, path string) error {
	c.mu.Lock()
	if c.mode.Has(socket.ModeTCP) {
		c.mu.Unlock()
		return socket.ErrWrongState
	}
	c.mu.Unlock()

	dialer := net.Dialer{}
	nc, err := dialer.DialContext(ctx, "unix", path)
	if err != nil {
		return socket.SystemCallError(err)
	}

	c.mu.Lock()
	c.streamConn = nc
	c.mode |= socket.ModeTCP
	c.tcpPeer = address.FromNetAddr(nc.RemoteAddr())
	c.state = socket.StateEstablished
	c.newConnection = true
	c.mu.Unlock()

	if err := c.startWorker(); err != nil {
		_ = nc.Close()
		c.mu.Lock()
		c.state = socket.StateClosed
		c.mode = socket.ModeNone
		c.streamConn = nil
		c.mu.Unlock()
		return err
	}
	return nil
}
