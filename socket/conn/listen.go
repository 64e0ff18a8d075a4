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
	"github.com/nabbar/eventsock/internal/sockopt"
)

// Listen binds a listening socket. mode must be exactly
// ModeUDP or ModeTCP. A UDP listener starts its own I/O worker immediately
// and delivers datagrams via Handler.Datagram; a TCP listener transitions
// to StateListening and waits for Accept — it does not start a worker.
func (c *Conn) Listen(ctx context.Context, mode socket.Mode, port uint16, addr string) error {
	switch mode {
	case socket.ModeUDP:
		return c.listenUDP(ctx, port, addr)
	case socket.ModeTCP:
		return c.listenTCP(ctx, port, addr)
	default:
		return socket.ErrInvalidArgument
	}
}

func (c *Conn) listenUDP(ctx context.Context, port uint16, addr string) error {
	c.mu.Lock()
	if c.mode.Has(socket.ModeUDP) || c.mode.Has(socket.ModeTCP) {
		c.mu.Unlock()
		return socket.ErrWrongState
	}
	c.mu.Unlock()

	lc := sockopt.ListenConfig(c.family == socket.FamilyIPv4)
	bindAddr := net.JoinHostPort(addr, strconv.Itoa(int(port)))
	pc, err := lc.ListenPacket(ctx, c.networkForFamily(false), bindAddr)
	if err != nil {
		return socket.SystemCallError(err)
	}

	c.mu.Lock()
	c.dgramConn = pc
	c.mode |= socket.ModeUDP
	c.state = socket.StateEstablished
	c.mu.Unlock()

	c.startWorker()
	return nil
}

func (c *Conn) listenTCP(ctx context.Context, port uint16, addr string) error {
	c.mu.Lock()
	if c.mode.Has(socket.ModeUDP) || c.mode.Has(socket.ModeTCP) {
		c.mu.Unlock()
		return socket.ErrWrongState
	}
	c.mu.Unlock()

	lc := sockopt.ListenConfig(false)
	bindAddr := net.JoinHostPort(addr, strconv.Itoa(int(port)))
	ln, err := lc.Listen(ctx, c.networkForFamily(true), bindAddr)
	if err != nil {
		return socket.SystemCallError(err)
	}

	c.mu.Lock()
	c.listener = ln
	c.mode |= socket.ModeTCP
	c.state = socket.StateListening
	c.mu.Unlock()
	return nil
}

// ListenUnix is the local-domain analogue of a TCP Listen: it binds a
// Unix-domain stream socket and transitions to StateListening without
// starting a worker. A path beginning with '@' maps to the Linux abstract
// namespace (a leading NUL on the wire), matching net's own convention.
func (c *Conn) ListenUnix(ctx context.Context, path string) error {
	c.mu.Lock()
	if c.mode.Has(socket.ModeUDP) || c.mode.Has(socket.ModeTCP) {
		c.mu.Unlock()
		return socket.ErrWrongState
	}
	c.mu.Unlock()

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "unix", path)
	if err != nil {
		return socket.SystemCallError(err)
	}

	c.mu.Lock()
	c.listener = ln
	c.mode |= socket.ModeTCP
	c.state = socket.StateListening
	c.mu.Unlock()
	return nil
}

// ListenUnixgram binds a Unix-domain datagram socket and starts the I/O
// worker immediately, mirroring the UDP listen path.
func (c *Conn) ListenUnixgram(ctx context.Context, path string) error {
	c.mu.Lock()
	if c.mode.Has(socket.ModeUDP) || c.mode.Has(socket.ModeTCP) {
		c.mu.Unlock()
		return socket.ErrWrongState
	}
	c.mu.Unlock()

	var lc net.ListenConfig
	pc, err := lc.ListenPacket(ctx, "unixgram", path)
	if err != nil {
		return socket.SystemCallError(err)
	}

	c.mu.Lock()
	c.dgramConn = pc
	c.mode |= socket.ModeUDP
	c.state = socket.StateEstablished
	c.mu.Unlock()

	c.startWorker()
	return nil
}
