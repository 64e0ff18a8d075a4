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
	"time"

	"github.com/nabbar/eventsock/internal/gid"
	"github.com/nabbar/eventsock/socket"
)

// Close tears a Conn down in one orderly sequence: mark closing, close the
// underlying transport so a blocked worker read/accept unblocks, wait for
// the worker goroutine to exit, then release remaining resources. It is
// idempotent — a second call on an already-closed Conn is a no-op.
//
// Calling Close from inside the I/O worker's own goroutine (for instance a
// Handler.Data callback that calls Conn.Close directly instead of going
// through Context.RequestClose) would otherwise deadlock: the worker can
// never signal doneCh while it is blocked waiting for itself. Close guards
// against this by comparing the calling goroutine's id against the
// recorded workerGID: a match is a no-op, yielding immediately without
// touching state or any handle, rather than tearing the connection down
// out from under the very callback that's still running on it.
func (c *Conn) Close(ctx context.Context) error {
	c.mu.Lock()
	if c.state == socket.StateClosed || c.state == socket.StateNone {
		c.mu.Unlock()
		return nil
	}
	selfClose := c.workerRunning && c.workerGID != 0 && c.workerGID == gid.Current()
	if selfClose {
		c.mu.Unlock()
		return nil
	}

	c.state = socket.StateClosing
	done := c.doneCh

	if c.streamConn != nil {
		_ = c.streamConn.Close()
	}
	if c.listener != nil {
		_ = c.listener.Close()
	}
	if c.dgramConn != nil {
		_ = c.dgramConn.Close()
	}
	running := c.workerRunning
	c.mu.Unlock()

	if running && done != nil {
		if err := c.joinWorker(ctx, done); err != nil {
			return err
		}
	}

	c.mu.Lock()
	c.state = socket.StateClosed
	c.mode = socket.ModeNone
	c.streamConn = nil
	c.listener = nil
	c.dgramConn = nil
	c.mu.Unlock()

	return nil
}

// joinWorker waits once for the worker to signal done, for at most
// socket.CloseAttempts × socket.ReadinessTimeout, or until ctx is
// cancelled — whichever comes first, rather than waiting unboundedly on
// a goroutine that, under some platform's I/O semantics, might not
// unblock promptly.
func (c *Conn) joinWorker(ctx context.Context, done <-chan struct{}) error {
	deadline := time.NewTimer(socket.ReadinessTimeout * time.Duration(socket.CloseAttempts))
	defer deadline.Stop()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-deadline.C:
		return socket.ErrSystemCall
	}
}
