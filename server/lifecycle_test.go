package server_test

import (
	"io"
	"net"
	"strconv"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/mockwire/action"
	"github.com/sabouaram/mockwire/expectation"
	"github.com/sabouaram/mockwire/logger"
	"github.com/sabouaram/mockwire/server"
	"github.com/sabouaram/mockwire/trigger"
)

func dial(port int) net.Conn {
	var (
		con net.Conn
		err error
	)

	Eventually(func() error {
		con, err = net.DialTimeout("tcp", addrFor(port), 100*time.Millisecond)
		return err
	}, 2*time.Second, 20*time.Millisecond).Should(Succeed())

	return con
}

func addrFor(port int) string {
	return net.JoinHostPort("localhost", strconv.Itoa(port))
}

var _ = Describe("Server lifecycle", func() {
	var srv *server.Server

	BeforeEach(func() {
		exp := expectation.New("ping", trigger.Prefix("PING\n"), action.WriteString("PONG\n"))
		srv = server.New(expectation.NewSet(exp), logger.New())
	})

	AfterEach(func() {
		if srv.Running() {
			_ = srv.Stop()
			_ = srv.Wait()
		}
	})

	It("binds an ephemeral port when started with 0", func() {
		port, err := srv.Start(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(port).To(BeNumerically(">", 0))
		Expect(srv.Running()).To(BeTrue())
	})

	It("rejects a second Start while already running", func() {
		_, err := srv.Start(0)
		Expect(err).NotTo(HaveOccurred())

		_, err = srv.Start(0)
		Expect(err).To(HaveOccurred())
	})

	It("serves the configured expectation to a connected client", func() {
		port, err := srv.Start(0)
		Expect(err).NotTo(HaveOccurred())

		con := dial(port)
		defer func() { _ = con.Close() }()

		_, err = con.Write([]byte("PING\n"))
		Expect(err).NotTo(HaveOccurred())

		buf := make([]byte, 5)
		_, err = io.ReadFull(con, buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(buf)).To(Equal("PONG\n"))
	})

	It("is idempotent when Stop is called while not running", func() {
		Expect(srv.Stop()).To(Succeed())
		Expect(srv.Running()).To(BeFalse())
	})

	It("is idempotent across repeated Stop calls on a running server", func() {
		_, err := srv.Start(0)
		Expect(err).NotTo(HaveOccurred())

		Expect(srv.Stop()).To(Succeed())
		Expect(srv.Stop()).To(Succeed())
		Expect(srv.Wait()).To(Succeed())
	})

	It("tracks open connections and clears them once closed", func() {
		port, err := srv.Start(0)
		Expect(err).NotTo(HaveOccurred())

		con := dial(port)

		Eventually(func() int { return srv.OpenConnections() }, time.Second, 10*time.Millisecond).
			Should(Equal(1))

		Expect(con.Close()).To(Succeed())

		Eventually(func() int { return srv.OpenConnections() }, time.Second, 10*time.Millisecond).
			Should(Equal(0))
	})

	It("StartEphemeral hands back a running server and a release func", func() {
		exp := expectation.New("ping", trigger.Prefix("PING\n"), action.WriteString("PONG\n"))
		scoped, done, err := server.StartEphemeral(expectation.NewSet(exp), logger.New())
		Expect(err).NotTo(HaveOccurred())
		Expect(scoped.Running()).To(BeTrue())
		Expect(scoped.Port()).To(BeNumerically(">", 0))

		done()
		Expect(scoped.Running()).To(BeFalse())
	})

	It("supports a restart cycle on a fresh ephemeral port", func() {
		port1, err := srv.Start(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(srv.Stop()).To(Succeed())
		Expect(srv.Wait()).To(Succeed())

		port2, err := srv.Start(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(port2).To(BeNumerically(">", 0))
		_ = port1
	})
})
