package buffer_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/mockwire/buffer"
)

var _ = Describe("Buffer", func() {
	It("starts empty", func() {
		b := buffer.New()
		Expect(b.Len()).To(Equal(0))
		Expect(b.Bytes()).To(BeEmpty())
	})

	It("appends bytes in arrival order", func() {
		b := buffer.New()
		b.Append([]byte("hello "))
		b.Append([]byte("world"))

		Expect(b.Len()).To(Equal(11))
		Expect(string(b.Bytes())).To(Equal("hello world"))
	})

	It("consumes from the front only", func() {
		b := buffer.New()
		b.Append([]byte("PING rest"))

		b.Consume(5)
		Expect(string(b.Bytes())).To(Equal("rest"))
	})

	It("clamps an over-long Consume to the whole buffer", func() {
		b := buffer.New()
		b.Append([]byte("abc"))

		b.Consume(10)
		Expect(b.Len()).To(Equal(0))
	})

	It("ignores a non-positive Consume", func() {
		b := buffer.New()
		b.Append([]byte("abc"))

		b.Consume(0)
		b.Consume(-1)
		Expect(string(b.Bytes())).To(Equal("abc"))
	})

	It("probes a prefix without mutating", func() {
		b := buffer.New()
		b.Append([]byte("hello"))

		Expect(b.HasPrefix([]byte("he"))).To(BeTrue())
		Expect(b.HasPrefix([]byte("xx"))).To(BeFalse())
		Expect(string(b.Bytes())).To(Equal("hello"))
	})

	It("finds bytes and subsequences", func() {
		b := buffer.New()
		b.Append([]byte("line one\nline two"))

		Expect(b.IndexByte('\n')).To(Equal(8))
		Expect(b.IndexByte('x')).To(Equal(-1))
		Expect(b.Index([]byte("two"))).To(Equal(14))
		Expect(b.Index([]byte("three"))).To(Equal(-1))
	})

	It("Snapshot is a copy independent of later mutation", func() {
		b := buffer.New()
		b.Append([]byte("abcdef"))

		snap := b.Snapshot()
		b.Consume(3)

		Expect(string(snap)).To(Equal("abcdef"))
		Expect(string(b.Bytes())).To(Equal("def"))
	})
})
