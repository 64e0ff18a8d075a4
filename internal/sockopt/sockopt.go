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

// Package sockopt wires the platform-specific socket options a listening
// socket needs (SO_REUSEADDR, SO_BROADCAST) through
// net.ListenConfig.Control, so socket/conn stays free of build tags. Their
// syscall numbers come from golang.org/x/sys (unix and windows variants).
// TCP_NODELAY on a dialed or accepted connection is set through
// net.TCPConn.SetNoDelay.
package sockopt

import (
	"net"
	"syscall"
)

// ListenConfig returns a net.ListenConfig whose Control hook sets
// SO_REUSEADDR (and, for UDP, SO_BROADCAST) before bind.
func ListenConfig(broadcast bool) net.ListenConfig {
	return net.ListenConfig{
		Control: func(_, _ string, c syscall.RawConn) error {
			var ctrlErr error
			err := c.Control(func(fd uintptr) {
				ctrlErr = setReuseAddr(fd)
				if ctrlErr == nil && broadcast {
					ctrlErr = setBroadcast(fd)
				}
			})
			if err != nil {
				return err
			}
			return ctrlErr
		},
	}
}

// SetNoDelay enables TCP_NODELAY on a freshly established/accepted TCP
// connection.
func SetNoDelay(conn *net.TCPConn) error {
	return conn.SetNoDelay(true)
}

