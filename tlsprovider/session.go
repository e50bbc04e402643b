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

package tlsprovider

import (
	"crypto/tls"
	"errors"
	"net"
	"os"
	"syscall"

	liberr "github.com/evloop-go/tcpmux/errors"
)

// HandshakeResult classifies the outcome of one non-blocking handshake step.
// The mux poll loop re-drives WantRead/WantWrite sessions across subsequent
// sweeps without surfacing any event to the callback until Done or Failed.
type HandshakeResult uint8

const (
	HandshakeWantRead HandshakeResult = iota
	HandshakeWantWrite
	HandshakeDone
	HandshakeFailed
)

// Session wraps a *tls.Conn with the want-read/want-write classification the
// event loop needs to re-arm poll readiness, mirroring the handshake/read/
// write contract certificates.Config hands to consumers of its *tls.Config,
// but driven explicitly one non-blocking step at a time instead of via the
// blocking net/http transport path.
//
// crypto/tls caches the first error Handshake returns and replays it
// verbatim on every later call instead of resuming — a deadline hit mid
// handshake therefore permanently wedges the *tls.Conn. Session tracks the
// last error it saw so a second, identical one is reported as a hard
// failure rather than retried forever.
type Session struct {
	conn    *tls.Conn
	client  bool
	done    bool
	lastErr error
}

// NewServerSession wraps raw for an inbound TLS handshake using cfg.
func NewServerSession(raw net.Conn, cfg *tls.Config) *Session {
	return &Session{conn: tls.Server(raw, cfg)}
}

// NewClientSession wraps raw for an outbound TLS handshake using cfg.
func NewClientSession(raw net.Conn, cfg *tls.Config) *Session {
	return &Session{conn: tls.Client(raw, cfg), client: true}
}

// Handshake drives one step of the TLS handshake. It blocks the caller's
// goroutine until the handshake completes, fails, or hits the deadline set
// on raw; a deadline hit is reported as HandshakeWantRead.
//
// A transient want-read/want-write classification is only trustworthy the
// first time it's seen: crypto/tls replays the exact same cached error on
// every subsequent call once one has occurred, so seeing it again means the
// handshake can never advance rather than that it merely needs another
// sweep. That repeat is reported as HandshakeFailed instead of being
// retried forever.
func (s *Session) Handshake() (HandshakeResult, liberr.Error) {
	if s.done {
		return HandshakeDone, nil
	}
	err := s.conn.Handshake()
	if err == nil {
		s.done = true
		return HandshakeDone, nil
	}
	if s.lastErr != nil && err == s.lastErr {
		return HandshakeFailed, liberr.CodeTLSHandshake.Error(err)
	}
	s.lastErr = err
	switch classifyIOErr(err) {
	case ioWantRead:
		return HandshakeWantRead, nil
	case ioWantWrite:
		return HandshakeWantWrite, nil
	default:
		return HandshakeFailed, liberr.CodeTLSHandshake.Error(err)
	}
}

// Read reads decrypted bytes, classifying transient want-read/want-write
// conditions the same way the mux core classifies raw socket errors.
func (s *Session) Read(p []byte) (n int, wouldBlock bool, err liberr.Error) {
	n, e := s.conn.Read(p)
	if e == nil {
		return n, false, nil
	}
	switch classifyIOErr(e) {
	case ioWantRead, ioWantWrite:
		return n, true, nil
	default:
		return n, false, liberr.CodeHardIO.Error(e)
	}
}

// Write writes plaintext bytes for encryption and transmission.
func (s *Session) Write(p []byte) (n int, wouldBlock bool, err liberr.Error) {
	n, e := s.conn.Write(p)
	if e == nil {
		return n, false, nil
	}
	switch classifyIOErr(e) {
	case ioWantRead, ioWantWrite:
		return n, true, nil
	default:
		return n, false, liberr.CodeHardIO.Error(e)
	}
}

// Close tears down the TLS record layer and the underlying connection.
func (s *Session) Close() error {
	return s.conn.Close()
}

type ioClass uint8

const (
	ioFatal ioClass = iota
	ioWantRead
	ioWantWrite
)

// classifyIOErr distinguishes transient non-blocking conditions from hard
// failures, the same split applied to raw socket I/O elsewhere in the
// module.
func classifyIOErr(err error) ioClass {
	if err == nil {
		return ioFatal
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return ioWantRead
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return ioWantRead
	}
	var sysErr *net.OpError
	if errors.As(err, &sysErr) {
		if isWouldBlock(sysErr.Err) {
			return ioWantRead
		}
	}
	return ioFatal
}

// isWouldBlock reports whether err is the platform's EAGAIN/EWOULDBLOCK,
// the transient condition a non-blocking socket raises when no data or
// buffer space is available yet.
func isWouldBlock(err error) bool {
	return errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK)
}
