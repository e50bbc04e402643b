/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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
 *
 */

package mux

import (
	"net"

	"github.com/evloop-go/tcpmux/config"
	liberr "github.com/evloop-go/tcpmux/errors"
	liblog "github.com/evloop-go/tcpmux/logger"
	"github.com/evloop-go/tcpmux/metrics"
	"github.com/evloop-go/tcpmux/tlsprovider"
)

// Server owns a listening socket (or none), the set of live Connections,
// the one user Callback and its opaque UserData, and the optional
// server-side/client-side TLS configuration new Connections are built
// from. All of it is owned exclusively by the goroutine that calls Poll;
// using a Server from multiple goroutines concurrently is a programming error.
type Server struct {
	cfg *config.Config
	cb  Callback

	// UserData is an opaque pointer the callback may read and set freely.
	UserData interface{}

	listener net.Listener
	head     *Conn
	count    int

	serverTLS *tlsprovider.Config
	clientTLS *tlsprovider.Config

	log     liblog.Logger
	metrics *metrics.Registry
}

// New builds a Server bound to no listener yet. cb is the single callback
// invoked for every event on every Connection this Server ever tracks.
func New(cfg *config.Config, cb Callback) *Server {
	bootstrap()

	return &Server{
		cfg:       cfg,
		cb:        cb,
		serverTLS: cfg.TLS,
		log:       liblog.New(nil, liblog.NilLevel),
	}
}

// SetLogger replaces the Server's logger; a nil Logger disables logging.
func (s *Server) SetLogger(log liblog.Logger) {
	if log == nil {
		log = liblog.New(nil, liblog.NilLevel)
	}
	s.log = log
}

// SetMetrics attaches a metrics.Registry; nil disables instrumentation.
func (s *Server) SetMetrics(reg *metrics.Registry) {
	s.metrics = reg
}

// SetClientTLS configures the TLS material used for outbound Connect
// calls made with useTLS true.
func (s *Server) SetClientTLS(cfg *tlsprovider.Config) {
	s.clientTLS = cfg
}

// ConnectionCount returns the number of Connections currently linked.
func (s *Server) ConnectionCount() int {
	return s.count
}

func (s *Server) link(c *Conn) {
	c.next = s.head
	if s.head != nil {
		s.head.prev = c
	}
	s.head = c
	s.count++
}

func (s *Server) unlink(c *Conn) {
	if c.prev != nil {
		c.prev.next = c.next
	} else {
		s.head = c.next
	}
	if c.next != nil {
		c.next.prev = c.prev
	}
	c.prev, c.next = nil, nil
	s.count--
}

// deliver is the sole call site invoking the user Callback, so every
// dispatch path is logged uniformly.
func (s *Server) deliver(c *Conn, ev EventKind, payload interface{}) {
	s.log.Debug("dispatching event", liblog.Fields{"conn": c.id.String(), "event": ev.String()})
	_ = s.cb(c, ev, payload)
}

// Close tears a single Connection down immediately: delivers CLOSE,
// unlinks it, closes its socket, and frees both I/O buffers and any TLS
// session. CLOSE is delivered exactly once.
func (s *Server) Close(c *Conn) {
	s.deliver(c, EventClose, nil)

	s.unlink(c)

	if c.tls != nil {
		_ = c.tls.Close()
	} else if c.conn != nil {
		_ = c.conn.Close()
	}

	c.recv.Free()
	c.send.Free()

	if s.metrics != nil {
		s.metrics.Closed()
	}
}

// Free performs one final zero-timeout poll, closes the listener, then
// every remaining Connection.
func (s *Server) Free() liberr.Error {
	if _, err := s.Poll(0); err != nil {
		s.log.Warning("final poll before teardown failed", liblog.Fields{"error": err.Error()})
	}

	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}

	for c := s.head; c != nil; {
		next := c.next
		s.Close(c)
		c = next
	}

	return nil
}
