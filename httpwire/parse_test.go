package httpwire_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/mockwire/buffer"
	"github.com/sabouaram/mockwire/httpwire"
)

var _ = Describe("Parse", func() {
	It("reports Incomplete before the header terminator arrives", func() {
		buf := buffer.New()
		buf.Append([]byte("GET / HTTP/1.1\r\nHost: x\r\n"))

		verdict, req, err := httpwire.Parse(buf)
		Expect(verdict).To(Equal(httpwire.Incomplete))
		Expect(req).To(BeNil())
		Expect(err).NotTo(HaveOccurred())
		Expect(buf.Len()).To(BeNumerically(">", 0))
	})

	It("reports Incomplete while the body is still arriving", func() {
		buf := buffer.New()
		buf.Append([]byte("POST /x HTTP/1.1\r\nContent-Length: 5\r\n\r\nab"))

		verdict, req, err := httpwire.Parse(buf)
		Expect(verdict).To(Equal(httpwire.Incomplete))
		Expect(req).To(BeNil())
		Expect(err).NotTo(HaveOccurred())
	})

	It("parses a complete request with no body and consumes its bytes", func() {
		buf := buffer.New()
		buf.Append([]byte("GET /ping HTTP/1.1\r\nHost: example\r\n\r\n"))

		verdict, req, err := httpwire.Parse(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(verdict).To(Equal(httpwire.Complete))
		Expect(req.Method).To(Equal("GET"))
		Expect(req.URI).To(Equal("/ping"))
		Expect(req.Version).To(Equal("HTTP/1.1"))
		Expect(req.Header("Host")).To(Equal("example"))
		Expect(buf.Len()).To(Equal(0))
	})

	It("parses a complete request with a Content-Length body", func() {
		buf := buffer.New()
		buf.Append([]byte("POST /submit HTTP/1.1\r\nContent-Length: 5\r\n\r\nhello"))

		verdict, req, err := httpwire.Parse(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(verdict).To(Equal(httpwire.Complete))
		Expect(string(req.Body)).To(Equal("hello"))
	})

	It("leaves a trailing pipelined request untouched", func() {
		buf := buffer.New()
		buf.Append([]byte("GET /a HTTP/1.1\r\n\r\nGET /b HTTP/1.1\r\n\r\n"))

		verdict, req, err := httpwire.Parse(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(verdict).To(Equal(httpwire.Complete))
		Expect(req.URI).To(Equal("/a"))
		Expect(string(buf.Bytes())).To(Equal("GET /b HTTP/1.1\r\n\r\n"))
	})

	It("reports Malformed for a bad request line", func() {
		buf := buffer.New()
		buf.Append([]byte("NOTHTTP\r\n\r\n"))

		verdict, req, err := httpwire.Parse(buf)
		Expect(verdict).To(Equal(httpwire.Malformed))
		Expect(req).To(BeNil())
		Expect(err).To(HaveOccurred())
	})

	It("reports Malformed for a method outside the recognized set", func() {
		buf := buffer.New()
		buf.Append([]byte("FETCH / HTTP/1.1\r\n\r\n"))

		verdict, _, err := httpwire.Parse(buf)
		Expect(verdict).To(Equal(httpwire.Malformed))
		Expect(err).To(HaveOccurred())
	})

	It("reports Malformed for an unrecognized HTTP version", func() {
		buf := buffer.New()
		buf.Append([]byte("GET / HTTP/9.9\r\n\r\n"))

		verdict, _, err := httpwire.Parse(buf)
		Expect(verdict).To(Equal(httpwire.Malformed))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("ReasonPhrase", func() {
	It("returns the standard phrase for a known code", func() {
		Expect(httpwire.ReasonPhrase(404)).To(Equal("Not Found"))
	})

	It("returns empty for an unregistered code", func() {
		Expect(httpwire.ReasonPhrase(999)).To(Equal(""))
	})
})
