package trigger_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/mockwire/buffer"
	"github.com/sabouaram/mockwire/trigger"
)

var _ = Describe("Prefix", func() {
	It("consumes exactly the matched prefix", func() {
		buf := buffer.New()
		buf.Append([]byte("PING rest"))

		t := trigger.Prefix("PING")
		Expect(t.Match(buf)).To(BeTrue())
		Expect(string(buf.Bytes())).To(Equal(" rest"))
	})

	It("leaves the buffer untouched on a miss", func() {
		buf := buffer.New()
		buf.Append([]byte("PONG rest"))

		t := trigger.Prefix("PING")
		Expect(t.Match(buf)).To(BeFalse())
		Expect(string(buf.Bytes())).To(Equal("PONG rest"))
	})
})

var _ = Describe("AnyLine", func() {
	It("consumes up to and including the terminator", func() {
		buf := buffer.New()
		buf.Append([]byte("hello\nworld"))

		t := trigger.AnyLine('\n')
		Expect(t.Match(buf)).To(BeTrue())
		Expect(string(buf.Bytes())).To(Equal("world"))
	})

	It("does not match without a terminator present", func() {
		buf := buffer.New()
		buf.Append([]byte("hello"))

		t := trigger.AnyLine('\n')
		Expect(t.Match(buf)).To(BeFalse())
		Expect(string(buf.Bytes())).To(Equal("hello"))
	})
})

var _ = Describe("Regex", func() {
	It("consumes through the end of the match", func() {
		buf := buffer.New()
		buf.Append([]byte("foo123bar"))

		t := trigger.MustRegex("[0-9]+")
		Expect(t.Match(buf)).To(BeTrue())
		Expect(string(buf.Bytes())).To(Equal("bar"))
	})

	It("leaves the buffer untouched when there is no match", func() {
		buf := buffer.New()
		buf.Append([]byte("foobar"))

		t := trigger.MustRegex("[0-9]+")
		Expect(t.Match(buf)).To(BeFalse())
		Expect(string(buf.Bytes())).To(Equal("foobar"))
	})

	It("rejects an invalid pattern at compile time", func() {
		_, err := trigger.Regex("(unclosed")
		Expect(err).To(HaveOccurred())
	})
})
