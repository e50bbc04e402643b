package iobuf_test

import (
	"bytes"

	"github.com/evloop-go/tcpmux/iobuf"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Buffer", func() {
	It("starts empty with the requested capacity", func() {
		b := iobuf.New(16)
		Expect(b.Len()).To(Equal(0))
		Expect(b.Size()).To(Equal(16))
	})

	It("appends in place while capacity allows", func() {
		b := iobuf.New(16)
		n, ok := b.Append([]byte("hello"))
		Expect(ok).To(BeTrue())
		Expect(n).To(Equal(5))
		Expect(b.Len()).To(Equal(5))
		Expect(b.Size()).To(Equal(16))
		Expect(b.Bytes()).To(Equal([]byte("hello")))
	})

	It("grows by the configured multiplier on overflow, never partially", func() {
		b := iobuf.NewWithMultiplier(4, 2.0)
		n, ok := b.Append([]byte("hello world"))
		Expect(ok).To(BeTrue())
		Expect(n).To(Equal(11))
		Expect(b.Len()).To(Equal(11))
		Expect(b.Size()).To(BeNumerically(">=", 11))
		Expect(b.Bytes()).To(Equal([]byte("hello world")))
	})

	It("returns ok=false and leaves state unchanged when growth would exceed MaxSize", func() {
		b := iobuf.New(4)
		b.SetMaxSize(8)
		n, ok := b.Append([]byte("0123456789"))
		Expect(ok).To(BeFalse())
		Expect(n).To(Equal(0))
		Expect(b.Len()).To(Equal(0))
	})

	It("reports a zero-length append as a successful no-op, not a failure", func() {
		b := iobuf.New(4)
		b.SetMaxSize(4)
		n, ok := b.Append(nil)
		Expect(ok).To(BeTrue())
		Expect(n).To(Equal(0))
	})

	It("removes from the head, shifting the remainder, in O(len-n)", func() {
		b := iobuf.New(16)
		b.Append([]byte("abcdef"))
		b.Remove(2)
		Expect(b.Len()).To(Equal(4))
		Expect(b.Bytes()).To(Equal([]byte("cdef")))
	})

	It("treats negative Remove as a no-op", func() {
		b := iobuf.New(16)
		b.Append([]byte("abc"))
		b.Remove(-5)
		Expect(b.Bytes()).To(Equal([]byte("abc")))
	})

	It("clamps Remove(n) to Len() when n exceeds it", func() {
		b := iobuf.New(16)
		b.Append([]byte("abc"))
		b.Remove(100)
		Expect(b.Len()).To(Equal(0))
	})

	It("resets to empty on Free", func() {
		b := iobuf.New(16)
		b.Append([]byte("abc"))
		b.Free()
		Expect(b.Len()).To(Equal(0))
		Expect(b.Size()).To(Equal(0))
	})

	It("round-trips append then remove of the same length", func() {
		b := iobuf.New(8)
		before := append([]byte{}, b.Bytes()...)

		b.Append([]byte("XYZ"))
		b.Remove(3)

		Expect(b.Bytes()).To(Equal(before))
	})

	It("preserves FIFO order across partitioned appends (growth idempotence)", func() {
		whole := iobuf.New(64)
		whole.Append([]byte("abcdefghij"))

		parts := iobuf.New(1)
		for _, chunk := range [][]byte{[]byte("ab"), []byte("cde"), []byte("fghij")} {
			parts.Append(chunk)
		}

		Expect(parts.Len()).To(Equal(whole.Len()))
		Expect(bytes.Equal(parts.Bytes(), whole.Bytes())).To(BeTrue())
	})
})
