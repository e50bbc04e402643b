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

package errors

import "strconv"

// CodeError is a numeric error classification, similar to an HTTP status code.
type CodeError uint16

// Uint16 returns the raw code value.
func (c CodeError) Uint16() uint16 {
	return uint16(c)
}

// String renders the code as a decimal string.
func (c CodeError) String() string {
	return strconv.Itoa(int(c))
}

// Error builds an Error value carrying this code and the code's registered message.
func (c CodeError) Error(parent ...error) Error {
	return New(c, c.Message(), parent...)
}

// Message returns the human-readable description registered for this code.
func (c CodeError) Message() string {
	if m, ok := codeMessages[c]; ok {
		return m
	}
	return "unknown error"
}

const UnknownError CodeError = 0

// Error codes raised by the mux core and its domain packages.
//
// CodeTransient and CodeHardIO split the I/O classification the poll loop
// relies on: transient conditions are absorbed silently and retried next
// sweep, hard errors schedule connection teardown.
const (
	CodeTransient    CodeError = 100 // interrupted / would-block / in-progress / again
	CodeHardIO       CodeError = 101 // peer closed or unrecoverable socket error
	CodeAllocFailed  CodeError = 102 // IOBuf growth failed
	CodeResolve      CodeError = 200 // DNS resolution failure
	CodeBind         CodeError = 201 // listen/bind failure
	CodeConnect      CodeError = 202 // outbound connect failure
	CodeTLSHandshake CodeError = 203 // TLS handshake failure
	CodeConfig       CodeError = 300 // configuration validation failure
)

var codeMessages = map[CodeError]string{
	CodeTransient:    "transient I/O condition",
	CodeHardIO:       "hard I/O error",
	CodeAllocFailed:  "buffer allocation failed",
	CodeResolve:      "address resolution failed",
	CodeBind:         "bind failed",
	CodeConnect:      "connect failed",
	CodeTLSHandshake: "TLS handshake failed",
	CodeConfig:       "invalid configuration",
}
