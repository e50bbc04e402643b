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

import "github.com/bits-and-blooms/bitset"

// flag indexes a single named bit in a Conn's flag set. Composable states
// rather than a single bit-field, per the recommendation against a raw
// bit-field conflating state and policy.
type flag uint

const (
	flagAccepted flag = iota
	flagConnecting
	flagSSLHandshakeDone
	flagFinishedSendingData
	flagBufferButDontSend
	flagCloseImmediately
	flagCount
)

// flagSet is a small bitset.BitSet wrapper giving named, testable access
// to a Conn's composable state flags.
type flagSet struct {
	bits *bitset.BitSet
}

func newFlagSet() flagSet {
	return flagSet{bits: bitset.New(uint(flagCount))}
}

func (f flagSet) set(b flag) {
	f.bits.Set(uint(b))
}

func (f flagSet) clear(b flag) {
	f.bits.Clear(uint(b))
}

func (f flagSet) has(b flag) bool {
	return f.bits.Test(uint(b))
}
