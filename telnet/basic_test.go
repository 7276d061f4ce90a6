package telnet_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/mockwire/action"
	"github.com/sabouaram/mockwire/buffer"
	"github.com/sabouaram/mockwire/telnet"
)

var _ = Describe("Builder", func() {
	It("matches a literal prefix with no terminator required", func() {
		b := telnet.New()
		b.When("hello world").Reply("hola mundo")
		set := b.Build()

		buf := buffer.New()
		buf.Append([]byte("hello world"))

		var written []byte
		ctx := action.Context{Stream: recordingStream(&written)}

		fired, err := set.Feed(buf, ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(fired).To(Equal(1))
		Expect(written).To(HaveLen(10))
		Expect(string(written)).To(Equal("hola mundo"))
		Expect(buf.Len()).To(Equal(0))
	})

	It("retires a ReplyOnce rule after its single fire", func() {
		b := telnet.New()
		b.When("HELLO").ReplyOnce("HI")
		set := b.Build()

		var written []byte
		ctx := action.Context{Stream: recordingStream(&written)}

		buf1 := buffer.New()
		buf1.Append([]byte("HELLO"))
		fired1, _ := set.Feed(buf1, ctx)

		buf2 := buffer.New()
		buf2.Append([]byte("HELLO"))
		fired2, _ := set.Feed(buf2, ctx)

		Expect(fired1).To(Equal(1))
		Expect(fired2).To(Equal(0))
	})

	It("scans a lower-order rule before a higher-order one", func() {
		b := telnet.New()
		b.WhenAnyLine().Order(5).Reply("fallback")
		b.When("HI").Order(1).Reply("specific")
		set := b.Build()

		var written []byte
		ctx := action.Context{Stream: recordingStream(&written)}

		buf := buffer.New()
		buf.Append([]byte("HI\n"))

		// "HI" fires the order-1 rule first; the scan then restarts and the
		// leftover "\n" is a complete line for the order-5 rule.
		_, _ = set.Feed(buf, ctx)
		Expect(string(written)).To(Equal("specificfallback"))
	})

	It("freezes without writing anything back", func() {
		b := telnet.New()
		b.When("QUIET").Freeze(0)
		set := b.Build()

		var written []byte
		ctx := action.Context{Stream: recordingStream(&written)}

		buf := buffer.New()
		buf.Append([]byte("QUIET"))

		fired, _ := set.Feed(buf, ctx)
		Expect(fired).To(Equal(1))
		Expect(written).To(BeEmpty())
	})

	It("chains a reply before a close_connection on the same rule", func() {
		b := telnet.New()
		b.When("BYE").Reply("CYA").CloseConnection()
		set := b.Build()

		var written []byte
		stream := recordingStream(&written)
		ctx := action.Context{Stream: stream}

		buf := buffer.New()
		buf.Append([]byte("BYE"))

		fired, err := set.Feed(buf, ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(fired).To(Equal(1))
		Expect(string(written)).To(Equal("CYA"))
		Expect(stream.disconnected).To(BeTrue())
	})

	It("finalizes the previously staged rule once a new When starts", func() {
		b := telnet.New()
		b.When("A").Reply("first")
		b.When("B").Reply("second")
		set := b.Build()

		var written []byte
		ctx := action.Context{Stream: recordingStream(&written)}

		buf := buffer.New()
		buf.Append([]byte("AB"))

		fired, err := set.Feed(buf, ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(fired).To(Equal(2))
		Expect(string(written)).To(Equal("firstsecond"))
	})

	It("ReplyLine appends the terminator explicitly, unlike Reply", func() {
		b := telnet.New()
		b.When("PING").ReplyLine("PONG")
		set := b.Build()

		buf := buffer.New()
		buf.Append([]byte("PING"))

		var written []byte
		ctx := action.Context{Stream: recordingStream(&written)}

		fired, err := set.Feed(buf, ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(fired).To(Equal(1))
		Expect(string(written)).To(Equal("PONG\n"))
	})
})

// recordingStream returns a stream.Stream whose WriteAll/WriteSome append
// to dst, satisfying just enough of the interface for action tests that
// only ever exercise the write path.
func recordingStream(dst *[]byte) *telnetTestStream {
	return &telnetTestStream{dst: dst}
}

type telnetTestStream struct {
	dst          *[]byte
	disconnected bool
}

func (s *telnetTestStream) ReadSome(p []byte) (int, error)  { return 0, nil }
func (s *telnetTestStream) WriteSome(p []byte) (int, error) { *s.dst = append(*s.dst, p...); return len(p), nil }
func (s *telnetTestStream) ReadAll(p []byte) (int, error)   { return 0, nil }
func (s *telnetTestStream) WriteAll(p []byte) error         { *s.dst = append(*s.dst, p...); return nil }
func (s *telnetTestStream) Connected() bool                 { return !s.disconnected }
func (s *telnetTestStream) Shutdown() error                 { s.disconnected = true; return nil }
func (s *telnetTestStream) Disconnect() error               { s.disconnected = true; return nil }
func (s *telnetTestStream) LocalAddr() string               { return "" }
func (s *telnetTestStream) RemoteAddr() string              { return "" }
