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
	hscvrs "github.com/hashicorp/go-version"
)

// rawVersion is this module's semantic version. Bump it alongside tagged
// releases.
const rawVersion = "1.0.0"

// Version is the parsed semantic version of this module, exposed so an
// embedder can branch on capability (e.g. "is TLS reload available") by
// comparing against it instead of inspecting source or go.mod.
var Version = hscvrs.Must(hscvrs.NewVersion(rawVersion))

// AtLeast reports whether Version is greater than or equal to other, parsed
// with the same semantic-version rules as Version itself.
func AtLeast(other string) bool {
	o, err := hscvrs.NewVersion(other)
	if err != nil {
		return false
	}
	return Version.GreaterThanOrEqual(o)
}
