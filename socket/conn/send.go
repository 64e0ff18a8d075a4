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
	"strconv"

	"github.com/nabbar/eventsock/socket"
	"github.com/nabbar/eventsock/socket/metrics"
)

// Send requires ModeTCP and drains p fully: a short underlying Write is
// retried from where it left off, and any non-positive result is fatal.
// A successful Send resets the inactivity counters.
func (c *Conn) Send(p []byte) (int, error) {
	c.mu.Lock()
	if !c.mode.Has(socket.ModeTCP) || c.streamConn == nil {
		c.mu.Unlock()
		return 0, socket.ErrInvalidArgument
	}
	nc := c.streamConn
	c.mu.Unlock()

	written := 0
	for written < len(p) {
		n, err := nc.Write(p[written:])
		if n <= 0 || err != nil {
			return written, socket.SystemCallError(err)
		}
		written += n
	}

	c.mu.Lock()
	c.inactivityMs = 0
	c.inactivityNextMs = uint32(socket.InactivityInterval.Milliseconds())
	c.mu.Unlock()

	metrics.BytesTotal.WithLabelValues("tcp", "out").Add(float64(written))
	return written, nil
}

// SendTo requires ModeUDP and issues exactly one underlying write; partial
// datagram writes are not retried. A successful SendTo
// resets the inactivity counters.
func (c *Conn) SendTo(addr string, port uint16, p []byte) (int, error) {
	c.mu.Lock()
	if !c.mode.Has(socket.ModeUDP) || c.dgramConn == nil {
		c.mu.Unlock()
		return 0, socket.ErrInvalidArgument
	}
	pc := c.dgramConn
	c.mu.Unlock()

	dst, err := net.ResolveUDPAddr(c.networkForFamily(false), net.JoinHostPort(addr, strconv.Itoa(int(port))))
	if err != nil {
		return 0, socket.ErrInvalidArgument
	}

	n, err := pc.WriteTo(p, dst)
	if err != nil {
		return n, socket.SystemCallError(err)
	}

	c.mu.Lock()
	c.inactivityMs = 0
	c.inactivityNextMs = uint32(socket.InactivityInterval.Milliseconds())
	c.mu.Unlock()

	metrics.BytesTotal.WithLabelValues("udp", "out").Add(float64(n))
	return n, nil
}
