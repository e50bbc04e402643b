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
	"time"

	"github.com/evloop-go/tcpmux/tlsprovider"
)

// acceptOnce performs a single blocking accept, bounded by deadline. Poll
// calls it AcceptsPerSweep times per sweep (once by default, since some
// platforms misbehave when looping accept on a non-blocking listener). It runs inside a worker goroutine during Phase B and touches only the
// raw listener and the freshly accepted socket; it must not construct a
// Conn, mutate the Server's Connection list, or invoke the callback —
// finishAccept does that back on the Poll goroutine.
func (s *Server) acceptOnce(deadline time.Time) net.Conn {
	if s.listener == nil {
		return nil
	}

	if tl, ok := s.listener.(*net.TCPListener); ok {
		_ = tl.SetDeadline(deadline)
	}

	raw, err := s.listener.Accept()
	if err != nil {
		return nil
	}

	return raw
}

// finishAccept wires an already-accepted raw socket into a fresh Conn,
// links it at the head of the Server's list, and delivers ACCEPT — all on
// the Poll goroutine, exactly like read/write outcomes are applied.
func (s *Server) finishAccept(raw net.Conn) *Conn {
	c := newConn(s, raw, s.cfg.BufferInitialSize, s.cfg.BufferMultiplier)
	c.flags.set(flagAccepted)

	if s.serverTLS != nil {
		tc, terr := s.serverTLS.TLS("")
		if terr != nil {
			s.log.Warning("server TLS config build failed, dropping accepted socket", nil)
			_ = raw.Close()
			return nil
		}
		c.tls = tlsprovider.NewServerSession(raw, tc)
	}

	s.link(c)

	if s.metrics != nil {
		s.metrics.Accepted()
	}

	s.deliver(c, EventAccept, nil)

	return c
}
