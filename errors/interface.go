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

// FuncMap is called for each error in a chain by Error.Map; returning false
// stops the walk early.
type FuncMap func(e error) bool

// Error extends the standard error with a numeric code, a parent chain,
// and the call site that created it.
type Error interface {
	error

	// IsCode reports whether this error's own code equals code (parents not checked).
	IsCode(code CodeError) bool
	// HasCode reports whether this error or any parent carries code.
	HasCode(code CodeError) bool
	// Code returns this error's own code.
	Code() CodeError

	// Add appends non-nil errors as parents of this error.
	Add(parent ...error)
	// HasParent reports whether this error has at least one parent.
	HasParent() bool
	// GetParent returns the parent chain, optionally including this error first.
	GetParent(withSelf bool) []error
	// Map walks this error and its parents depth-first until fct returns false.
	Map(fct FuncMap) bool

	// Unwrap satisfies errors.Is/errors.As tree-walking (Go 1.20+ multi-error Unwrap).
	Unwrap() []error

	// StringError returns the message of this error alone, without parents.
	StringError() string
	// GetTrace returns "file#line" for the call site that created this error.
	GetTrace() string
	// CodeError formats this error as fmt.Sprintf(pattern, code, message).
	CodeError(pattern string) string
}

const defaultPattern = "[%d] %s"
