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

// EventKind identifies the significant moments in a Connection's life that
// reach the user Callback.
type EventKind uint8

const (
	// EventAccept fires once, when an inbound connection is admitted.
	EventAccept EventKind = iota
	// EventConnect fires once for an outbound connection, once the background
	// dial (and, if enabled, the TLS handshake) has succeeded or failed.
	EventConnect
	// EventRecv fires once per successful read, after the bytes are
	// appended to the Connection's receive buffer.
	EventRecv
	// EventSend fires once per successful write, after bytes are dropped
	// from the head of the send buffer.
	EventSend
	// EventPoll fires once per Connection at the start of every sweep,
	// before any I/O for that sweep.
	EventPoll
	// EventClose fires exactly once, as the Connection is reclaimed. No
	// event follows it for that Connection.
	EventClose
)

// String renders the event kind for logging.
func (k EventKind) String() string {
	switch k {
	case EventAccept:
		return "ACCEPT"
	case EventConnect:
		return "CONNECT"
	case EventRecv:
		return "RECV"
	case EventSend:
		return "SEND"
	case EventPoll:
		return "POLL"
	case EventClose:
		return "CLOSE"
	default:
		return "UNKNOWN"
	}
}

// Callback is the single dispatch point for every event a Server's
// Connections raise. Its return value is advisory only: the core never
// inspects or acts on it.
//
// payload is a *ConnectResult for EventConnect and nil for every other kind.
type Callback func(conn *Conn, event EventKind, payload interface{}) int

// ConnectResult is the EventConnect payload: Err is nil on success.
type ConnectResult struct {
	Err error
}
