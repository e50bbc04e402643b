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
	"errors"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/evloop-go/tcpmux/tlsprovider"
)

// recvChunkSize is the fixed-size read buffer used per sweep per
// Connection, rather than sizing a read off the Connection's recv IOBuf.
const recvChunkSize = 2048

// ioOutcome is the result a read/write worker goroutine reports back to
// the single Poll goroutine; Poll applies it to Conn/Server state and
// invokes the callback. No user code runs inside the worker.
type ioOutcome struct {
	conn *Conn

	recvData    []byte
	recvReady   bool
	sendN       int
	sendReady   bool
	connectDone bool
	connectErr  error
	closeNow    bool
}

// isTransient reports whether err is a retryable non-blocking condition —
// interrupted, would-block, in-progress, again; any other error, or a
// zero-byte read (peer closed), is a hard error.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	if errors.Is(err, syscall.EINTR) || errors.Is(err, syscall.EAGAIN) ||
		errors.Is(err, syscall.EWOULDBLOCK) || errors.Is(err, syscall.EINPROGRESS) {
		return true
	}
	return false
}

// readWorker performs the blocking half of read_from_socket: it runs in
// its own goroutine, touches only the raw socket (never Conn/Server
// state), and reports what happened so the Poll goroutine can apply it.
func readWorker(c *Conn, deadline time.Time) ioOutcome {
	out := ioOutcome{conn: c}

	if c.flags.has(flagConnecting) {
		return connectWorker(c, deadline)
	}

	if c.tls != nil && !c.flags.has(flagSSLHandshakeDone) {
		_ = c.conn.SetReadDeadline(deadline)
		res, err := c.tls.Handshake()
		if err != nil {
			out.closeNow = true
			return out
		}
		if res == tlsprovider.HandshakeDone {
			out.connectDone = true
		}
		return out
	}

	_ = c.conn.SetReadDeadline(deadline)

	buf := make([]byte, recvChunkSize)

	if c.tls != nil {
		n, wouldBlock, tlsErr := c.tls.Read(buf)
		if tlsErr != nil {
			out.closeNow = true
			return out
		}
		if wouldBlock {
			return out
		}
		if n == 0 {
			out.closeNow = true
			return out
		}
		out.recvReady = true
		out.recvData = buf[:n]
		return out
	}

	n, err := c.conn.Read(buf)
	if err != nil {
		if isTransient(err) {
			return out
		}
		out.closeNow = true
		return out
	}

	if n == 0 {
		out.closeNow = true
		return out
	}

	out.recvReady = true
	out.recvData = buf[:n]
	return out
}

// connectWorker drives the CONNECTING → connect-complete path. It waits
// (up to deadline) on the channel Connect's background Dial goroutine
// reports to; a synchronous-success Dial is folded into this same path
// rather than misclassified as a hard error.
func connectWorker(c *Conn, deadline time.Time) ioOutcome {
	out := ioOutcome{conn: c}

	timer := time.NewTimer(time.Until(deadline))
	defer timer.Stop()

	select {
	case <-c.dialDone:
		if c.dialErr != nil {
			out.connectErr = c.dialErr
			out.connectDone = true
			return out
		}
	case <-timer.C:
		return out
	}

	if c.tls == nil {
		out.connectDone = true
		return out
	}

	_ = c.conn.SetDeadline(deadline)
	res, err := c.tls.Handshake()
	if err != nil {
		out.connectErr = err
		out.connectDone = true
		return out
	}
	switch res {
	case tlsprovider.HandshakeDone:
		out.connectDone = true
	default:
		// want-read/want-write: re-armed next sweep, no event yet.
	}
	return out
}

// writeWorker performs the blocking half of write_to_socket.
func writeWorker(c *Conn, deadline time.Time) ioOutcome {
	out := ioOutcome{conn: c}

	pending := c.send.Bytes()
	if len(pending) == 0 {
		return out
	}

	_ = c.conn.SetWriteDeadline(deadline)

	var n int
	var err error
	if c.tls != nil {
		n, _, err = c.tls.Write(pending)
	} else {
		n, err = c.conn.Write(pending)
	}

	if err != nil && !isTransient(err) {
		out.closeNow = true
		return out
	}

	if n > 0 {
		out.sendReady = true
		out.sendN = n
	}

	return out
}
