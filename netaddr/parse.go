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

import (
	"strconv"
	"strings"
)

// BindSpec is a parsed bind address: Host is empty for "all interfaces".
type BindSpec struct {
	Host   string
	Port   int
	Family Family
}

// ParseBindSpec parses the grammar described in the package doc. Malformed
// input returns a zero BindSpec and ok=false; the port is then 0.
func ParseBindSpec(spec string) (BindSpec, bool) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return BindSpec{}, false
	}

	// "[" ipv6 "]" ":" port
	if strings.HasPrefix(spec, "[") {
		end := strings.Index(spec, "]")
		if end < 0 || end+1 >= len(spec) || spec[end+1] != ':' {
			return BindSpec{}, false
		}
		host := spec[1:end]
		port, ok := parsePort(spec[end+2:])
		if !ok || host == "" {
			return BindSpec{}, false
		}
		return BindSpec{Host: host, Port: port, Family: FamilyTCP6}, true
	}

	// bare port binds to all interfaces.
	if port, ok := parsePort(spec); ok {
		return BindSpec{Host: "", Port: port, Family: FamilyTCP}, true
	}

	// ipv4 ":" port
	idx := strings.LastIndex(spec, ":")
	if idx <= 0 || idx == len(spec)-1 {
		return BindSpec{}, false
	}
	host, portStr := spec[:idx], spec[idx+1:]
	if !isIPv4(host) {
		return BindSpec{}, false
	}
	port, ok := parsePort(portStr)
	if !ok {
		return BindSpec{}, false
	}
	return BindSpec{Host: host, Port: port, Family: FamilyTCP4}, true
}

func parsePort(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 65535 {
		return 0, false
	}
	return n, true
}

func isIPv4(s string) bool {
	octets := strings.Split(s, ".")
	if len(octets) != 4 {
		return false
	}
	for _, o := range octets {
		if o == "" || len(o) > 3 {
			return false
		}
		n, err := strconv.Atoi(o)
		if err != nil || n < 0 || n > 255 {
			return false
		}
	}
	return true
}
