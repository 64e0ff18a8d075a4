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

package socket

import "github.com/nabbar/eventsock/socket/address"

// Context is the per-callback handle passed to every handler entry. It
// exposes just enough of the owning Connection for a handler to answer
// (Send/SendTo), inspect the peer, or ask for its own teardown — never the
// Connection's internals.
type Context interface {
	// ID is the Connection's stable identity (see socket/conn.Conn.ID).
	ID() string

	// Peer is the remote address this callback concerns: the TCP peer for
	// stream callbacks, or the last UDP sender for datagram callbacks.
	Peer() address.Info

	// Send writes on the TCP side of the Connection.
	Send(p []byte) (int, error)

	// SendTo writes one UDP datagram to addr:port.
	SendTo(addr string, port uint16, p []byte) (int, error)

	// RequestClose asks the owning Connection to close. Called from
	// within a handler running on the Connection's own I/O worker, this
	// is the only safe way to ask for a close from inside a callback: a
	// direct Close() call from the worker's own goroutine is rejected.
	// RequestClose defers the actual Close to a separate goroutine so
	// the worker can return first.
	RequestClose()
}

// DataFunc is the TCP framing handler, shaped after bufio.SplitFunc: the
// handler is handed a read-only view of everything currently buffered and
// reports how many leading bytes it consumed.
//
//   - err != nil: fatal — the handler rejected the data. The Connection
//     transitions to Closing and Handler.Disconnected is *not* invoked.
//   - err == nil, consumed == 0: not enough bytes yet for one frame; the
//     worker returns to waiting for more bytes.
//   - err == nil, consumed > 0: the handler consumed the first `consumed`
//     bytes; the worker trims them and calls DataFunc again immediately
//     in case a further frame is already buffered.
//
// consumed must never exceed len(buf).
type DataFunc func(ctx Context, buf []byte) (consumed int, err error)

// ConnectedFunc fires once, from the I/O worker, before the first DataFunc
// call on a Connection established by Connect, UnixConnect or Accept. A
// datagram listener never fires it.
type ConnectedFunc func(ctx Context)

// DisconnectedFunc fires at most once per Established→Closing transition
// caused by a peer close, never when DataFunc itself returned an error.
type DisconnectedFunc func(ctx Context)

// InactivityFunc fires every time the idle counter crosses a multiple of
// InactivityInterval with elapsed set to the total idle duration. A send
// resets the idle counter: a steady trickle of outbound
// traffic can suppress this indefinitely. That is intentional, not a bug.
type InactivityFunc func(ctx Context, elapsed uint32)

// DatagramFunc fires once per UDP datagram read by the I/O worker.
type DatagramFunc func(ctx Context, buf []byte)

// Handler is the table of callbacks an application installs on a
// Connection. Every field is optional; a nil field silently disables the
// corresponding event, with one exception: a nil DataFunc on a TCP
// Connection means bytes accumulate in the receive buffer forever and are
// never parsed.
type Handler struct {
	Connected    ConnectedFunc
	Disconnected DisconnectedFunc
	Data         DataFunc
	Inactivity   InactivityFunc
	Datagram     DatagramFunc
}
