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

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nabbar/eventsock/socket/errs"
)

// Sentinel errors covering the library's failure taxonomy. Only
// ErrSystemCall is also reachable via errors.As against an *errs.Error
// (see SystemCallError); the others are returned as bare sentinels.
var (
	ErrInvalidArgument = errors.New("socket: invalid argument")
	ErrOutOfMemory     = errors.New("socket: out of memory")
	ErrSystemCall      = errors.New("socket: system call failed")
	ErrHandlerRejected = errors.New("socket: handler rejected data")
	ErrClosed          = errors.New("socket: connection closed")
	ErrWrongState      = errors.New("socket: invalid state for operation")
)

// SystemCallError wraps a syscall/stdlib-returned err as an *errs.Error
// carrying errs.CodeSystemCall; errors.Is(result, ErrSystemCall) still
// succeeds because the errs.Error's Cause itself wraps ErrSystemCall.
func SystemCallError(err error) error {
	return errs.New(errs.CodeSystemCall, fmt.Errorf("%w: %v", ErrSystemCall, err))
}

// ErrorFilter suppresses the noise a closing socket produces on its last
// read/write: errors that only mean "the connection was shut down by the
// other half of the orderly close sequence" are reported as nil so callers
// don't log a shutdown as a failure.
func ErrorFilter(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "use of closed network connection"),
		strings.Contains(msg, "broken pipe"):
		return nil
	default:
		return err
	}
}
