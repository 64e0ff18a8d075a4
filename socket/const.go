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

// Package socket defines the shared types of the event-driven socket
// library: the handler table application code implements, the connection
// state machine, and the small set of sentinel errors every sub-package
// returns. The I/O engine itself lives in socket/conn; the accept/cleanup
// subsystem lives in socket/server.
package socket

import "time"

const (
	// ScratchBufferSize is the size of the fixed scratch buffer the I/O
	// worker reads into on every readiness cycle.
	ScratchBufferSize = 8192

	// ListenBacklog is the nominal TCP/Unix listen backlog. It is not
	// passed to the listen syscall: socket/conn listens through
	// net.ListenConfig, which uses the operating system's default backlog.
	ListenBacklog = 5

	// ReadinessTimeout bounds how long the I/O worker waits for a socket
	// to become readable before re-checking its own state.
	ReadinessTimeout = 50 * time.Millisecond

	// InactivityTick is the granularity at which the inactivity counter
	// advances; it equals ReadinessTimeout because the counter only moves
	// forward on a readiness timeout.
	InactivityTick = 50 * time.Millisecond

	// InactivityInterval is the multiple of elapsed idle time at which
	// Handler.Inactivity fires.
	InactivityInterval = 1000 * time.Millisecond

	// CloseAttempts multiplies ReadinessTimeout to give the longest time
	// Conn.Close waits for the I/O worker to exit. Close waits once for
	// that duration; it does not retry the shutdown sequence.
	CloseAttempts = 20

	// CleanupPollInterval is a 200ms cleanup polling interval. No code
	// reads it: socket/server has no polling cleanup worker and tears each
	// child down as soon as that child's I/O worker exits.
	CleanupPollInterval = 200 * time.Millisecond
)
