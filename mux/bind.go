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
	"fmt"
	"net"

	liblog "github.com/evloop-go/tcpmux/logger"
	"github.com/evloop-go/tcpmux/netaddr"
)

// Bind parses spec (the grammar in netaddr.ParseBindSpec), opens a stream
// listener, and replaces any previous listener on success. It returns the
// bound port, or 0 on any failure — malformed spec, resolve, or listen
// error alike — leaving the Server's listener untouched (absent, if there
// was none before).
func (s *Server) Bind(spec string) int {
	bs, ok := netaddr.ParseBindSpec(spec)
	if !ok {
		s.log.Warning("malformed bind spec", liblog.Fields{"spec": spec})
		return 0
	}

	addr := net.JoinHostPort(bs.Host, fmt.Sprintf("%d", bs.Port))

	// config.Config.Backlog is not wired here: package net's Listen gives no
	// portable way to choose the listen() backlog (it picks the value
	// itself internally), so the field is honored only as validated config,
	// not a tunable knob, on this platform.
	ln, err := net.Listen(bs.Family.String(), addr)
	if err != nil {
		s.log.Warning("bind failed", liblog.Fields{"spec": spec, "error": err.Error()})
		return 0
	}

	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.listener = ln

	port := ln.Addr().(*net.TCPAddr).Port
	s.log.Info("listening", liblog.Fields{"addr": ln.Addr().String()})
	return port
}
