package errors_test

import (
	stderr "errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	liberr "github.com/sabouaram/mockwire/errors"
)

var _ = Describe("CodeError", func() {
	It("builds an Error carrying its code and default message", func() {
		err := liberr.NetworkError.Error()

		Expect(err.Code()).To(Equal(liberr.NetworkError))
		Expect(err.Error()).To(Equal("network error"))
	})

	It("falls back to the unknown message for an unregistered code", func() {
		Expect(liberr.CodeError(9999).Message()).To(Equal("unknown error"))
	})
})

var _ = Describe("Error", func() {
	It("chains parents into the rendered message", func() {
		cause := stderr.New("connection reset by peer")
		err := liberr.NetworkError.Error(cause)

		Expect(err.Error()).To(ContainSubstring("network error"))
		Expect(err.Error()).To(ContainSubstring("connection reset by peer"))
		Expect(err.Parent()).To(HaveLen(1))
	})

	It("finds a code anywhere in the causal chain", func() {
		inner := liberr.NotConnectedError.Error()
		outer := liberr.NetworkError.Error(inner)

		Expect(outer.IsCode(liberr.NetworkError)).To(BeTrue())
		Expect(outer.IsCode(liberr.NotConnectedError)).To(BeTrue())
		Expect(outer.IsCode(liberr.AlreadyRunningError)).To(BeFalse())
	})

	It("skips nil parents on Add", func() {
		err := liberr.NetworkError.Error()
		err.Add(nil, stderr.New("real cause"))

		Expect(err.Parent()).To(HaveLen(1))
	})

	It("captures the raising call site", func() {
		err := liberr.ServerDownError.Error()

		Expect(err.GetFile()).To(ContainSubstring("code_test.go"))
		Expect(err.GetLine()).To(BeNumerically(">", 0))
	})

	It("formats through Newf", func() {
		err := liberr.Newf(liberr.ParseMalformedError, "bad header at byte %d", 17)
		Expect(err.Error()).To(Equal("bad header at byte 17"))
		Expect(err.Code()).To(Equal(liberr.ParseMalformedError))
	})
})
