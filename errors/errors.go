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

import (
	"fmt"
	"runtime"
	"strings"
)

type ers struct {
	c CodeError
	e string
	p []Error
	t runtime.Frame
}

// New creates an Error with the given code and message, capturing the call site.
func New(code CodeError, message string, parent ...error) Error {
	e := &ers{c: code, e: message, t: getFrame()}
	e.Add(parent...)
	return e
}

// Newf is New with fmt.Sprintf-style formatting of message.
func Newf(code CodeError, message string, args ...interface{}) Error {
	return New(code, fmt.Sprintf(message, args...))
}

// WrapError wraps an existing error under code if it is not already nil.
func WrapError(code CodeError, err error) Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*ers); ok && e.c == code {
		return e
	}
	return New(code, err.Error(), err)
}

func getFrame() runtime.Frame {
	pc := make([]uintptr, 16)
	n := runtime.Callers(3, pc)
	if n == 0 {
		return runtime.Frame{}
	}
	frames := runtime.CallersFrames(pc[:n])
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.Function, "nabbar/golib/errors") && !strings.Contains(frame.Function, "evloop-go/tcpmux/errors") {
			return frame
		}
		if !more {
			break
		}
	}
	return runtime.Frame{}
}

func (e *ers) Error() string {
	if e == nil {
		return ""
	}
	if e.e == "" {
		return "unknown error"
	}
	return e.e
}

func (e *ers) StringError() string {
	return e.Error()
}

func (e *ers) Code() CodeError {
	return e.c
}

func (e *ers) IsCode(code CodeError) bool {
	return e.c == code
}

func (e *ers) HasCode(code CodeError) bool {
	if e.IsCode(code) {
		return true
	}
	for _, p := range e.p {
		if p.HasCode(code) {
			return true
		}
	}
	return false
}

func (e *ers) Add(parent ...error) {
	for _, v := range parent {
		if v == nil {
			continue
		}
		if er, ok := v.(Error); ok {
			e.p = append(e.p, er)
		} else {
			e.p = append(e.p, &ers{c: UnknownError, e: v.Error()})
		}
	}
}

func (e *ers) HasParent() bool {
	return len(e.p) > 0
}

func (e *ers) GetParent(withSelf bool) []error {
	res := make([]error, 0, len(e.p)+1)
	if withSelf {
		res = append(res, &ers{c: e.c, e: e.e, t: e.t})
	}
	for _, p := range e.p {
		res = append(res, p)
	}
	return res
}

func (e *ers) Map(fct FuncMap) bool {
	if !fct(e) {
		return false
	}
	for _, p := range e.p {
		if !p.Map(fct) {
			return false
		}
	}
	return true
}

func (e *ers) Unwrap() []error {
	if len(e.p) == 0 {
		return nil
	}
	res := make([]error, 0, len(e.p))
	for _, p := range e.p {
		res = append(res, p)
	}
	return res
}

func (e *ers) Is(target error) bool {
	other, ok := target.(*ers)
	if !ok {
		return strings.EqualFold(e.Error(), target.Error())
	}
	return e.c == other.c && strings.EqualFold(e.e, other.e)
}

func (e *ers) GetTrace() string {
	if e.t.File == "" {
		return ""
	}
	return fmt.Sprintf("%s#%d", e.t.File, e.t.Line)
}

func (e *ers) CodeError(pattern string) string {
	if pattern == "" {
		pattern = defaultPattern
	}
	return fmt.Sprintf(pattern, e.c.Uint16(), e.Error())
}
