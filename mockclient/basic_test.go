package mockclient_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/mockwire/logger"
	"github.com/sabouaram/mockwire/mockclient"
	"github.com/sabouaram/mockwire/server"
	"github.com/sabouaram/mockwire/telnet"
)

var _ = Describe("Connect", func() {
	var srv *server.Server

	BeforeEach(func() {
		b := telnet.New()
		b.When("HELLO").Reply("WORLD")
		srv = server.New(b.Build(), logger.New())

		_, err := srv.Start(0)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if srv.Running() {
			_ = srv.Stop()
			_ = srv.Wait()
		}
	})

	It("dials the running server and round-trips a line", func() {
		cli, err := mockclient.Connect(context.Background(), srv)
		Expect(err).NotTo(HaveOccurred())
		defer func() { _ = cli.Close() }()

		Expect(cli.Connected()).To(BeTrue())

		_, err = cli.WriteString("HELLO")
		Expect(err).NotTo(HaveOccurred())

		buf := make([]byte, len("WORLD"))
		n, err := cli.ReadAll(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(len(buf)))
		Expect(string(buf)).To(Equal("WORLD"))
	})

	It("fails further writes once the client is closed", func() {
		cli, err := mockclient.Connect(context.Background(), srv)
		Expect(err).NotTo(HaveOccurred())

		Expect(cli.Close()).To(Succeed())
		time.Sleep(10 * time.Millisecond)

		_, err = cli.WriteString("anything")
		Expect(err).To(HaveOccurred())
	})
})
