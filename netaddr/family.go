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

package netaddr

import "strings"

// Family identifies the IP address family a listener or outbound connect
// should use.
type Family uint8

const (
	FamilyUnknown Family = iota
	FamilyTCP            // either IPv4 or IPv6, resolver's choice
	FamilyTCP4
	FamilyTCP6
)

// String renders the Family the way net.Dial expects it as a network name.
func (f Family) String() string {
	switch f {
	case FamilyTCP:
		return "tcp"
	case FamilyTCP4:
		return "tcp4"
	case FamilyTCP6:
		return "tcp6"
	default:
		return ""
	}
}

// Parse maps a case-insensitive network name ("tcp", "tcp4", "tcp6") to a
// Family, returning FamilyUnknown for anything else.
func Parse(s string) Family {
	switch strings.ToLower(s) {
	case "tcp":
		return FamilyTCP
	case "tcp4":
		return FamilyTCP4
	case "tcp6":
		return FamilyTCP6
	default:
		return FamilyUnknown
	}
}
