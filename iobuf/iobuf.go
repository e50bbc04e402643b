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

package iobuf

import "math"

// DefaultMultiplier is the growth factor applied when an append would
// overflow the current capacity.
const DefaultMultiplier = 2.0

// Buffer is a growable byte region with a valid prefix of Len() bytes out
// of Size() bytes of capacity. It is not safe for concurrent use; each
// Connection owns exactly one recv and one send Buffer, used only from
// the single goroutine driving the poll loop.
type Buffer struct {
	buf []byte
	n   int
	mul float64
	max int // 0 = unbounded; otherwise growth beyond max bytes fails
}

// New allocates a Buffer with the given initial capacity (0 is valid: an
// absent region that grows lazily on first append) and the default growth
// multiplier.
func New(initialSize int) *Buffer {
	return NewWithMultiplier(initialSize, DefaultMultiplier)
}

// NewWithMultiplier is New with an explicit growth multiplier. Deployments
// trade memory for fewer allocator calls by raising it past the 2.0 default.
func NewWithMultiplier(initialSize int, multiplier float64) *Buffer {
	if multiplier <= 1.0 {
		multiplier = DefaultMultiplier
	}
	if initialSize < 0 {
		initialSize = 0
	}
	return &Buffer{
		buf: make([]byte, initialSize),
		mul: multiplier,
	}
}

// SetMaxSize bounds how large the backing region may grow; 0 means
// unbounded. An append that would need to grow past max returns 0 instead
// of succeeding, modeling allocation failure deterministically instead of
// relying on process OOM behavior.
func (b *Buffer) SetMaxSize(max int) {
	b.max = max
}

// Len returns the number of meaningful bytes at the buffer's head.
func (b *Buffer) Len() int {
	return b.n
}

// Size returns the current backing capacity.
func (b *Buffer) Size() int {
	return len(b.buf)
}

// Bytes returns the valid prefix as a slice sharing the buffer's backing
// array; it is invalidated by the next Append or Remove call.
func (b *Buffer) Bytes() []byte {
	return b.buf[:b.n]
}

// Append copies p onto the tail of the buffer, growing the backing region
// first if needed. It returns (len(p), true) on success, including the
// zero-length case, or (0, false) if growth failed; appends are never
// partial. The bool return exists so a legitimate zero-byte append can't
// be mistaken for a growth failure, which also reports 0 bytes written.
func (b *Buffer) Append(p []byte) (int, bool) {
	if len(p) == 0 {
		return 0, true
	}

	need := b.n + len(p)
	if need > len(b.buf) {
		if !b.grow(need) {
			return 0, false
		}
	}

	copy(b.buf[b.n:need], p)
	b.n = need
	return len(p), true
}

func (b *Buffer) grow(need int) bool {
	target := int(math.Ceil(float64(need) * b.mul))
	if target < need {
		target = need
	}
	if b.max > 0 && target > b.max {
		if need > b.max {
			return false
		}
		target = b.max
	}

	grown := make([]byte, target)
	copy(grown, b.buf[:b.n])
	b.buf = grown
	return true
}

// Remove shifts out the first min(n, Len()) bytes, preserving the order of
// the remainder. A negative n is a no-op.
func (b *Buffer) Remove(n int) {
	if n <= 0 {
		return
	}
	if n > b.n {
		n = b.n
	}
	copy(b.buf, b.buf[n:b.n])
	b.n -= n
}

// Free releases the backing region and resets the buffer to empty.
func (b *Buffer) Free() {
	b.buf = nil
	b.n = 0
}
