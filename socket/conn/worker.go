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
	"errors"
	"io"
	"net"
	"strings"
	"time"

	"github.com/nabbar/eventsock/internal/gid"
	"github.com/nabbar/eventsock/socket"
	"github.com/nabbar/eventsock/socket/address"
	"github.com/nabbar/eventsock/socket/metrics"
)

// StartIO launches the I/O worker on a Conn that reached StateEstablished
// without one already running — most notably a child returned by Accept,
// which deliberately leaves handler installation and worker startup to its
// caller. SetHandler/SetLogger must be called, if at all, before StartIO:
// the worker takes its own copy of the handler table when it starts and
// never re-reads it afterward.
func (c *Conn) StartIO() error {
	return c.startWorker()
}

// startWorker launches the single I/O worker goroutine that drives this
// Conn's readiness loop. It blocks until the worker has
// recorded its goroutine id, so a Close racing immediately after
// Connect/Listen can never miss the self-close check.
func (c *Conn) startWorker() error {
	c.mu.Lock()
	if c.workerRunning {
		c.mu.Unlock()
		return nil
	}
	c.workerRunning = true
	c.doneCh = make(chan struct{})
	c.mu.Unlock()

	started := make(chan struct{})
	go c.runWorker(started)
	<-started
	return nil
}

func (c *Conn) runWorker(started chan<- struct{}) {
	c.mu.Lock()
	c.workerGID = gid.Current()
	h := c.handler
	fireConnected := c.newConnection
	c.newConnection = false
	c.mu.Unlock()
	close(started)

	ctx := &connContext{conn: c}

	if fireConnected && h.Connected != nil {
		h.Connected(ctx)
	}

	scratch := make([]byte, socket.ScratchBufferSize)

	for {
		c.mu.Lock()
		state := c.state
		mode := c.mode
		c.mu.Unlock()

		if state == socket.StateClosing || state == socket.StateClosed || state == socket.StateNone {
			break
		}

		var cont bool
		switch {
		case mode.Has(socket.ModeUDP):
			cont = c.pollUDP(scratch, ctx, h)
		case mode.Has(socket.ModeTCP):
			cont = c.pollTCP(scratch, ctx, h)
		default:
			cont = false
		}
		if !cont {
			break
		}
	}

	c.mu.Lock()
	c.workerRunning = false
	c.workerGID = 0
	done := c.doneCh
	c.mu.Unlock()
	if done != nil {
		close(done)
	}
}

func (c *Conn) onIdleTick(ctx *connContext, h socket.Handler) bool {
	c.mu.Lock()
	state := c.state
	if state == socket.StateClosing {
		c.mu.Unlock()
		return false
	}
	if state != socket.StateEstablished {
		c.mu.Unlock()
		return true
	}
	c.inactivityMs += uint32(socket.InactivityTick.Milliseconds())
	elapsed := c.inactivityMs
	fire := c.inactivityMs >= c.inactivityNextMs
	if fire {
		c.inactivityNextMs += uint32(socket.InactivityInterval.Milliseconds())
	}
	c.mu.Unlock()

	if fire && h.Inactivity != nil {
		h.Inactivity(ctx, elapsed)
	}
	return true
}

func (c *Conn) pollUDP(scratch []byte, ctx *connContext, h socket.Handler) bool {
	c.mu.Lock()
	pc := c.dgramConn
	c.mu.Unlock()
	if pc == nil {
		return false
	}

	_ = pc.SetReadDeadline(time.Now().Add(socket.ReadinessTimeout))
	n, raddr, err := pc.ReadFrom(scratch)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return c.onIdleTick(ctx, h)
		}
		return false
	}

	c.mu.Lock()
	c.udpLastSender = address.FromNetAddr(raddr)
	c.mu.Unlock()

	metrics.BytesTotal.WithLabelValues("udp", "in").Add(float64(n))

	if h.Datagram != nil {
		buf := make([]byte, n)
		copy(buf, scratch[:n])
		h.Datagram(ctx, buf)
	}
	return true
}

func (c *Conn) pollTCP(scratch []byte, ctx *connContext, h socket.Handler) bool {
	c.mu.Lock()
	nc := c.streamConn
	c.mu.Unlock()
	if nc == nil {
		return false
	}

	_ = nc.SetReadDeadline(time.Now().Add(socket.ReadinessTimeout))
	n, err := nc.Read(scratch)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return c.onIdleTick(ctx, h)
		}

		c.mu.Lock()
		wasClosing := c.state == socket.StateClosing
		c.state = socket.StateClosing
		c.mu.Unlock()

		if isPeerClose(err) && !wasClosing && h.Disconnected != nil {
			h.Disconnected(ctx)
		}
		return false
	}

	metrics.BytesTotal.WithLabelValues("tcp", "in").Add(float64(n))

	if err := c.rx.Append(scratch[:n]); err != nil {
		return false
	}

	if h.Data == nil {
		return true
	}

	for c.rx.Length() > 0 {
		consumed, derr := h.Data(ctx, c.rx.Data())
		if derr != nil {
			c.mu.Lock()
			c.state = socket.StateClosing
			c.mu.Unlock()
			return false
		}
		if consumed == 0 {
			break
		}
		if consumed > c.rx.Length() {
			// consumed must never exceed the buffered length; treat a
			// violation the same as a rejection rather than reading past
			// the buffer.
			c.mu.Lock()
			c.state = socket.StateClosing
			c.mu.Unlock()
			return false
		}
		if err := c.rx.TrimLeft(consumed); err != nil {
			return false
		}
	}
	return true
}

// isPeerClose reports whether err represents the peer ending the stream
// in an orderly fashion (EOF) or resetting it, as opposed to some other
// fatal I/O error. Only this class of error triggers Handler.Disconnected;
// any other read error still terminates the worker but leaves the
// disconnect notification to the caller, matching the asymmetry around
// a handler-rejected frame.
func isPeerClose(err error) bool {
	if errors.Is(err, io.EOF) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "reset by peer") ||
		strings.Contains(msg, "connection reset")
}
