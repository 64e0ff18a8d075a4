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

// Package server wraps a listening socket/conn.Conn with an accept loop, a
// bounded-concurrency cleanup queue for finished children, and the
// bookkeeping an application needs to tell how many connections are open
// and to shut everything down in one call.
package server

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/nabbar/eventsock/socket"
	"github.com/nabbar/eventsock/socket/config"
	"github.com/nabbar/eventsock/socket/conn"
	"github.com/nabbar/eventsock/socket/logger"
	"github.com/nabbar/eventsock/socket/metrics"
	"github.com/nabbar/eventsock/socket/protocol"
)

// ChildDestructor is an optional hook run synchronously, by the goroutine
// tearing a child down (that child's watcher, or Shutdown), right before
// the child Connection is closed and released. It lets a
// caller release application-level resources (session state, metrics
// tags) tied to that child's lifetime.
type ChildDestructor func(*conn.Conn)

// Server owns one listening or datagram Connection and, for stream
// transports, every child Connection it has accepted.
type Server struct {
	mu sync.Mutex

	cfg     config.Server
	handler socket.Handler
	update  socket.UpdateConn
	log     logger.Logger
	destroy ChildDestructor

	listener *conn.Conn // nil for datagram transports
	dgram    *conn.Conn // nil for stream transports

	children map[string]*conn.Conn

	running bool
	doneCh  chan struct{} // accept loop exit
}

// New validates cfg and constructs a Server without binding anything yet;
// call Listen to actually bind and start serving.
func New(update socket.UpdateConn, handler socket.Handler, cfg config.Server) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Server{
		cfg:      cfg,
		handler:  handler,
		update:   update,
		log:      logger.Discard(),
		children: make(map[string]*conn.Conn),
	}, nil
}

// SetChildDestructor installs the optional per-child teardown hook. Must
// be called before Listen.
func (s *Server) SetChildDestructor(d ChildDestructor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroy = d
}

// SetLogger installs a structured logger.
func (s *Server) SetLogger(l logger.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l == nil {
		l = logger.Discard()
	}
	s.log = l
}

func familyFor(p protocol.NetworkProtocol) socket.Family {
	switch p {
	case protocol.NetworkTCP6, protocol.NetworkUDP6:
		return socket.FamilyIPv6
	case protocol.NetworkUnix, protocol.NetworkUnixGram:
		return socket.FamilyUnix
	default:
		return socket.FamilyIPv4
	}
}

// Listen binds the configured transport and starts serving: for TCP/Unix
// it starts the accept loop, which starts one cleanup watcher per accepted
// child; for UDP/Unixgram it starts
// the single datagram Connection's own worker directly.
func (s *Server) Listen(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return socket.ErrWrongState
	}
	cfg := s.cfg
	s.mu.Unlock()

	c := conn.New(familyFor(cfg.Network))
	c.SetLogger(s.log)
	c.SetHandler(s.handler)

	var err error
	switch cfg.Network {
	case protocol.NetworkUnix:
		err = c.ListenUnix(ctx, cfg.Address)
		if err == nil {
			applyUnixPerm(cfg)
		}
	case protocol.NetworkUnixGram:
		err = c.ListenUnixgram(ctx, cfg.Address)
		if err == nil {
			applyUnixPerm(cfg)
		}
	case protocol.NetworkUDP, protocol.NetworkUDP4, protocol.NetworkUDP6:
		host, port, perr := splitHostPort(cfg.Address)
		if perr != nil {
			return perr
		}
		err = c.Listen(ctx, socket.ModeUDP, port, host)
		if err == nil && cfg.Network == protocol.NetworkUDP6 {
			if jerr := joinMulticastGroup(c.PacketConn(), cfg); jerr != nil {
				_ = c.Close(ctx)
				return jerr
			}
		}
	default: // TCP, TCP4, TCP6
		host, port, perr := splitHostPort(cfg.Address)
		if perr != nil {
			return perr
		}
		err = c.Listen(ctx, socket.ModeTCP, port, host)
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cfg.Network == protocol.NetworkUDP || cfg.Network == protocol.NetworkUDP4 ||
		cfg.Network == protocol.NetworkUDP6 || cfg.Network == protocol.NetworkUnixGram {
		s.dgram = c
		s.running = true
		return nil
	}

	s.listener = c
	s.doneCh = make(chan struct{})
	s.running = true
	go s.acceptLoop()
	return nil
}

// IsRunning reports whether Listen has succeeded and Shutdown has not yet
// completed.
func (s *Server) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// OpenConnections returns the number of currently tracked child
// Connections. For a datagram transport, which has no children, it
// returns 1 while listening and 0 otherwise.
func (s *Server) OpenConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dgram != nil {
		if s.running {
			return 1
		}
		return 0
	}
	return len(s.children)
}

// Shutdown stops accepting, closes every tracked child, and releases the
// listening socket, then removes its file if it is a non-abstract
// Unix-domain path. Errors from individual teardown steps are aggregated
// rather than stopping the sequence partway through.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	listener := s.listener
	dgram := s.dgram
	done := s.doneCh
	cfg := s.cfg
	s.mu.Unlock()

	var result *multierror.Error

	if dgram != nil {
		if err := dgram.Close(ctx); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if listener != nil {
		if err := listener.Close(ctx); err != nil {
			result = multierror.Append(result, err)
		}
		if done != nil {
			<-done
		}

		s.mu.Lock()
		children := make([]*conn.Conn, 0, len(s.children))
		for _, c := range s.children {
			children = append(children, c)
		}
		s.mu.Unlock()

		for _, c := range children {
			if err := s.destroyChild(ctx, c); err != nil {
				result = multierror.Append(result, err)
			}
		}
	}

	if cfg.Network == protocol.NetworkUnix || cfg.Network == protocol.NetworkUnixGram {
		if len(cfg.Address) > 0 && cfg.Address[0] != '@' {
			if err := os.Remove(cfg.Address); err != nil && !errors.Is(err, os.ErrNotExist) {
				result = multierror.Append(result, err)
			}
		}
	}

	metrics.CleanupQueueDepth.Set(0)
	return result.ErrorOrNil()
}

func (s *Server) destroyChild(ctx context.Context, c *conn.Conn) error {
	s.mu.Lock()
	_, tracked := s.children[c.ID()]
	destroy := s.destroy
	delete(s.children, c.ID())
	s.mu.Unlock()

	if !tracked {
		return nil
	}
	if destroy != nil {
		destroy(c)
	}
	return c.Close(ctx)
}
