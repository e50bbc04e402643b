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

// Package mux implements a single-threaded, event-driven TCP connection
// multiplexer: one Server owns a listening socket and a set of
// Connections, and a single call to Server.Poll runs one sweep that arms
// read/write readiness, waits up to a deadline, then dispatches accept,
// read, write and close work across every Connection, delivering every
// event to one user-supplied Callback.
//
// A Server is not safe for concurrent use: Poll, Bind, Connect and Close
// must all be called from the same goroutine, and the Callback runs
// synchronously inside Poll. Internally Poll fans work out to short-lived
// goroutines that perform the actual blocking socket I/O concurrently
// (Go's net.Conn explicitly allows concurrent Read/Write from distinct
// goroutines), but every Connection and Server field is read and written
// only by the goroutine that calls Poll, preserving the single-threaded
// contract for callback code.
package mux
