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
	"context"
	"crypto/tls"
	"fmt"
	"net"

	liblog "github.com/evloop-go/tcpmux/logger"
	"github.com/evloop-go/tcpmux/netaddr"
	"github.com/evloop-go/tcpmux/tlsprovider"
)

// Connect resolves host to an IPv4 address with a single synchronous
// lookup, then initiates an outbound connection. It returns true once the
// attempt is enqueued; false on resolve failure, with no Conn created and
// no event fired. Success only means the connection was enqueued — the
// eventual EventConnect fires later, once the TCP (and TLS) handshake
// resolves, carrying the final outcome.
func (s *Server) Connect(host string, port int, useTLS bool, userData interface{}) bool {
	ip, ok := netaddr.ResolveIPv4(context.Background(), host)
	if !ok {
		s.log.Warning("connect: resolve failed", liblog.Fields{"host": host})
		return false
	}

	addr := net.JoinHostPort(ip.String(), fmt.Sprintf("%d", port))

	c := newConn(s, nil, s.cfg.BufferInitialSize, s.cfg.BufferMultiplier)
	c.flags.set(flagConnecting)
	c.UserData = userData
	c.dialDone = make(chan struct{})

	var tc *tls.Config
	if useTLS {
		if s.clientTLS == nil {
			s.log.Warning("connect: TLS requested with no client TLS config", nil)
			return false
		}
		built, terr := s.clientTLS.TLS(host)
		if terr != nil {
			s.log.Warning("connect: client TLS config build failed", liblog.Fields{"error": terr.Error()})
			return false
		}
		tc = built
	}

	go s.dial(c, addr, tc)

	s.link(c)

	return true
}

// dial performs the blocking net.Dial call in its own goroutine (Go's net
// package gives no way to observe a connect() in progress via writability
// the way a raw non-blocking socket would) and reports completion by
// closing c.dialDone, after storing any error in c.dialErr. On success it wraps the established connection in a TLS
// client session when tc is non-nil.
func (s *Server) dial(c *Conn, addr string, tc *tls.Config) {
	raw, err := net.Dial("tcp4", addr)
	if err != nil {
		c.dialErr = err
		close(c.dialDone)
		return
	}

	c.conn = raw
	if tc != nil {
		c.tls = tlsprovider.NewClientSession(raw, tc)
	}

	close(c.dialDone)
}
