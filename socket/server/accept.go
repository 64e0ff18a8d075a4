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

package server

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/nabbar/eventsock/socket/conn"
	"github.com/nabbar/eventsock/socket/metrics"
)

// cleanupConcurrency bounds how many children are torn down at once, so a
// burst of disconnects doesn't spawn an unbounded number of goroutines all
// calling the (possibly slow) ChildDestructor hook simultaneously.
const cleanupConcurrency = 8

// acceptLoop repeatedly calls Accept on the listening Connection and, for
// each child, runs UpdateConn against the raw net.Conn, then installs this
// server's handler/logger, then starts the child's I/O worker — in that
// order, and only then publishes the child so it's reachable from
// OpenConnections/Shutdown. It returns when Accept starts failing, which
// happens once Shutdown closes the listener.
func (s *Server) acceptLoop() {
	defer close(s.doneCh)

	sem := semaphore.NewWeighted(cleanupConcurrency)
	ctx := context.Background()

	for {
		s.mu.Lock()
		ln := s.listener
		update := s.update
		handler := s.handler
		log := s.log
		s.mu.Unlock()
		if ln == nil {
			return
		}

		child, err := ln.Accept(nil)
		if err != nil {
			return
		}

		if update != nil {
			if nc := child.RawConn(); nc != nil {
				update(nc)
			}
		}

		child.SetHandler(handler)
		child.SetLogger(log)
		if err := child.StartIO(); err != nil {
			_ = child.Close(ctx)
			continue
		}

		s.mu.Lock()
		s.children[child.ID()] = child
		count := len(s.children)
		s.mu.Unlock()
		metrics.ConnectionsTotal.WithLabelValues("tcp").Inc()
		metrics.CleanupQueueDepth.Set(float64(count))

		go s.watchChild(ctx, child, sem)
	}
}

// watchChild blocks until child's worker exits, then destroys it under a
// bounded semaphore so a burst of simultaneous disconnects is throttled
// rather than spawning unbounded teardown work.
func (s *Server) watchChild(ctx context.Context, child *conn.Conn, sem *semaphore.Weighted) {
	done := child.Done()
	if done != nil {
		<-done
	}

	if err := sem.Acquire(ctx, 1); err != nil {
		return
	}
	defer sem.Release(1)

	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	if !running {
		return
	}

	_ = s.destroyChild(ctx, child)

	s.mu.Lock()
	depth := len(s.children)
	s.mu.Unlock()
	metrics.CleanupQueueDepth.Set(float64(depth))
}
