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

// Package buffer implements the growable receive buffer shared by every
// socket.Conn: a byte container that only ever grows in fixed-size chunks,
// supports appending new bytes at the tail and trimming consumed bytes from
// the head, and never reallocates on trim.
package buffer

import "errors"

// GrowSize is the fixed chunk size the buffer grows by, and also the
// minimum capacity a freshly reserved Buffer holds.
const GrowSize = 8 * 1024

// ErrInvalidArgument is returned when an operation is given a nil receiver
// or an out-of-range trim point.
var ErrInvalidArgument = errors.New("buffer: invalid argument")

// Buffer is a growable byte container used to hold bytes read from a TCP
// stream between framing passes. It is not safe for concurrent use; the
// contract (see socket/conn) is that only the owning I/O worker touches it.
type Buffer struct {
	data []byte
}

// New returns a Buffer reserved to at least GrowSize bytes of capacity.
func New() *Buffer {
	b := &Buffer{}
	b.Reserve(GrowSize)
	return b
}

// Reserve ensures the buffer's capacity is at least n, growing by whole
// multiples of GrowSize in a single reallocation when it must grow at all.
func (b *Buffer) Reserve(n int) error {
	if b == nil {
		return ErrInvalidArgument
	}
	if cap(b.data) >= n {
		return nil
	}
	chunks := (n + GrowSize - 1) / GrowSize
	newCap := chunks * GrowSize
	if newCap < GrowSize {
		newCap = GrowSize
	}
	grown := make([]byte, len(b.data), newCap)
	copy(grown, b.data)
	b.data = grown
	return nil
}

// Append grows the buffer as needed and copies p onto its tail.
func (b *Buffer) Append(p []byte) error {
	if b == nil {
		return ErrInvalidArgument
	}
	if len(p) == 0 {
		return nil
	}
	if err := b.Reserve(len(b.data) + len(p)); err != nil {
		return err
	}
	b.data = append(b.data, p...)
	return nil
}

// TrimLeft removes the first n bytes, sliding the remaining suffix down to
// offset 0. It is the composition partner of Append: Append(a); TrimLeft(k);
// Append(b) leaves the buffer holding a[k:] followed by b.
func (b *Buffer) TrimLeft(n int) error {
	if b == nil {
		return ErrInvalidArgument
	}
	if n < 0 || n > len(b.data) {
		return ErrInvalidArgument
	}
	if n == 0 {
		return nil
	}
	remaining := len(b.data) - n
	copy(b.data[:remaining], b.data[n:])
	b.data = b.data[:remaining]
	return nil
}

// Clear resets the buffer's length to zero without releasing capacity.
func (b *Buffer) Clear() {
	if b == nil {
		return
	}
	b.data = b.data[:0]
}

// Length returns the number of unconsumed bytes currently held.
func (b *Buffer) Length() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// Data returns the read-only view of the buffer's current contents. The
// slice is only valid until the next Append/TrimLeft/Clear call.
func (b *Buffer) Data() []byte {
	if b == nil {
		return nil
	}
	return b.data
}
