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

	"github.com/evloop-go/tcpmux/iobuf"
	"github.com/evloop-go/tcpmux/tlsprovider"

	"github.com/google/uuid"
)

// Conn is one peer connection tracked by a Server: its socket, its
// composable state flags, its two I/O buffers, an optional TLS session,
// and the intrusive links the Server's connection list traverses.
//
// A Conn belongs to exactly one Server for its entire life and must only
// be touched from the goroutine driving that Server's Poll.
type Conn struct {
	id   uuid.UUID
	conn net.Conn
	srv  *Server

	flags flagSet

	recv *iobuf.Buffer
	send *iobuf.Buffer

	tls *tlsprovider.Session

	lastIOTime time.Time

	// dialDone is closed once Connect's background net.Dial call
	// completes; nil for accepted Connections. A closed channel can be
	// received from repeatedly without blocking, so every sweep after the
	// first observes completion immediately instead of only the first.
	// dialErr holds the Dial error, readable only after dialDone closes
	// (the close establishes the happens-before Go's memory model
	// requires for the unsynchronized write in the dial goroutine to
	// become visible here).
	dialDone chan struct{}
	dialErr  error

	// UserData is an opaque pointer the callback may set and read freely;
	// the core never inspects it.
	UserData interface{}

	prev, next *Conn
}

// ID returns this Connection's identity, stable for its whole life and
// attached to every log entry it produces.
func (c *Conn) ID() uuid.UUID {
	return c.id
}

// RemoteAddr returns the peer address, or nil if the socket is gone.
func (c *Conn) RemoteAddr() net.Addr {
	if c.conn == nil {
		return nil
	}
	return c.conn.RemoteAddr()
}

// LastIOTime returns the timestamp of this Connection's most recent read
// or write, stamped at creation for both accepted and outbound
// connections so it is never left zero before the first I/O.
func (c *Conn) LastIOTime() time.Time {
	return c.lastIOTime
}

// Recv returns the Connection's receive buffer; the callback typically
// inspects it and removes consumed bytes from the head.
func (c *Conn) Recv() *iobuf.Buffer {
	return c.recv
}

// Send queues bytes for transmission and returns the count actually
// queued: len(p) on success, 0 if the send buffer failed to grow.
func (c *Conn) Send(p []byte) int {
	n, _ := c.send.Append(p)
	return n
}

// SetCloseImmediately schedules this Connection for teardown at the next
// sweep boundary. Monotonic: once set it is never cleared before CLOSE.
func (c *Conn) SetCloseImmediately() {
	c.flags.set(flagCloseImmediately)
}

// SetFinishedSendingData marks that no further bytes will be queued; the
// Connection closes once its send buffer fully drains.
func (c *Conn) SetFinishedSendingData() {
	c.flags.set(flagFinishedSendingData)
}

// SetBufferButDontSend stalls writes for this Connection: bytes keep
// accumulating in the send buffer but write_to_socket is skipped.
func (c *Conn) SetBufferButDontSend(stall bool) {
	if stall {
		c.flags.set(flagBufferButDontSend)
	} else {
		c.flags.clear(flagBufferButDontSend)
	}
}

// IsCloseImmediately reports whether this Connection is scheduled for teardown.
func (c *Conn) IsCloseImmediately() bool {
	return c.flags.has(flagCloseImmediately)
}

// IsConnecting reports whether the outbound TCP handshake is still in progress.
func (c *Conn) IsConnecting() bool {
	return c.flags.has(flagConnecting)
}

// IsHandshakeDone reports whether a TLS handshake has completed, reachable
// only when the Connection carries a TLS session.
func (c *Conn) IsHandshakeDone() bool {
	return c.flags.has(flagSSLHandshakeDone)
}

func newConn(srv *Server, raw net.Conn, bufInitial int, bufMul float64) *Conn {
	return &Conn{
		id:         uuid.New(),
		conn:       raw,
		srv:        srv,
		flags:      newFlagSet(),
		recv:       iobuf.NewWithMultiplier(bufInitial, bufMul),
		send:       iobuf.NewWithMultiplier(bufInitial, bufMul),
		lastIOTime: time.Now(),
	}
}
