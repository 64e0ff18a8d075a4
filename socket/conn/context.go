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

	"github.com/nabbar/eventsock/socket"
	"github.com/nabbar/eventsock/socket/address"
)

// connContext is the socket.Context implementation handed to every
// handler callback. It never exposes the Conn's internals directly.
type connContext struct {
	conn *Conn
}

var _ socket.Context = (*connContext)(nil)

func (x *connContext) ID() string { return x.conn.ID() }

func (x *connContext) Peer() address.Info {
	x.conn.mu.Lock()
	defer x.conn.mu.Unlock()
	if x.conn.mode.Has(socket.ModeUDP) {
		return x.conn.udpLastSender
	}
	return x.conn.tcpPeer
}

func (x *connContext) Send(p []byte) (int, error) { return x.conn.Send(p) }

func (x *connContext) SendTo(addr string, port uint16, p []byte) (int, error) {
	return x.conn.SendTo(addr, port, p)
}

// RequestClose is the only self-close path safe to call synchronously from
// inside a handler: it hands the actual Close off to a new goroutine so
// this callback can return and let the I/O worker exit before Close's join
// waits on it. See conn.Close for the belt-and-suspenders guard against a
// direct, blocking self-call.
func (x *connContext) RequestClose() {
	go func() {
		_ = x.conn.Close(context.Background())
	}()
}
