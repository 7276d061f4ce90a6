/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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

// Package server is the mock's acceptor: a TCP listener built on
// github.com/nabbar/golib/socket/server/tcp, binding an ephemeral port on
// request, handing each accepted connection to a fresh session.Session, and
// running the acceptor's Listen call inside an errgroup.Group that Wait
// joins. Per-connection handlers run on goroutines the tcp server starts;
// they are tracked in a session registry, not in the errgroup.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	libptc "github.com/nabbar/golib/network/protocol"
	libsck "github.com/nabbar/golib/socket"
	sckcfg "github.com/nabbar/golib/socket/config"
	tcp "github.com/nabbar/golib/socket/server/tcp"
	"golang.org/x/sync/errgroup"

	libatm "github.com/sabouaram/mockwire/atomic"
	liberr "github.com/sabouaram/mockwire/errors"
	"github.com/sabouaram/mockwire/expectation"
	"github.com/sabouaram/mockwire/logger"
	"github.com/sabouaram/mockwire/session"
	"github.com/sabouaram/mockwire/stream"
)

// startupPoll bounds how long Start waits for the underlying acceptor to
// report itself running before giving up and returning the bind error, if
// any was observed in that window.
const startupPoll = 2 * time.Second

// Server is a programmable mock TCP server: a template expectation.Set
// applied, per connection, to a session.Session.
type Server struct {
	log      logger.Logger
	template *expectation.Set

	mu      sync.Mutex
	running libatm.Value[bool]
	port    int
	tcpSrv  tcp.ServerTcp
	cancel  context.CancelFunc
	group   *errgroup.Group

	// sessions tracks every connection currently being served, so Stop can
	// force-disconnect stragglers in addition to closing the listener, and
	// so a test can ask how many clients are live without guessing.
	sessions libatm.MapTyped[string, *session.Session]
}

// New builds a Server around the given template expectation set. The set
// is cloned once per accepted connection; mutating it after Start affects
// only connections accepted afterward.
func New(template *expectation.Set, log logger.Logger) *Server {
	return &Server{
		log:      log,
		template: template,
		running:  libatm.NewValue[bool](),
		sessions: libatm.NewMapTyped[string, *session.Session](),
	}
}

// Start binds a listener on the given port (0 for an OS-assigned ephemeral
// port) and begins accepting connections in the background. It returns the
// concrete bound port. Calling Start while already running returns
// errors.AlreadyRunningError.
func (s *Server) Start(port int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running.Load() {
		return 0, liberr.AlreadyRunningError.Error()
	}

	actual := port
	if actual == 0 {
		p, err := freePort()
		if err != nil {
			return 0, liberr.NetworkError.Error(err)
		}
		actual = p
	}

	addr := fmt.Sprintf("localhost:%d", actual)
	cfg := sckcfg.Server{Network: libptc.NetworkTCP, Address: addr}

	ctx, cancel := context.WithCancel(context.Background())
	group, gctx := errgroup.WithContext(ctx)

	srv, err := tcp.New(nil, s.handler(gctx), cfg)
	if err != nil {
		cancel()
		return 0, liberr.NetworkError.Error(err)
	}

	group.Go(func() error {
		return srv.Listen(gctx)
	})

	deadline := time.Now().Add(startupPoll)
	for !srv.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	// Start must not report success while the listener is still down: if
	// the acceptor never came up (port already bound, address denied), the
	// bind error is what Listen returned.
	if !srv.IsRunning() {
		cancel()
		_ = srv.Close()
		err = group.Wait()
		return 0, liberr.NetworkError.Error(err)
	}

	s.tcpSrv = srv
	s.port = actual
	s.cancel = cancel
	s.group = group

	s.running.Store(true)
	s.log.WithField("port", actual).Info("server started")

	return actual, nil
}

// Stop cancels the acceptor, closes the listener and disconnects every
// in-flight session, then returns without waiting for them to unwind (Wait
// does that). Stop is idempotent: calling it when not running
// (including a second call after Stop has already returned) is a no-op,
// not errors.ServerDownError.
func (s *Server) Stop() error {
	s.mu.Lock()
	if !s.running.Load() {
		s.mu.Unlock()
		return nil
	}

	cancel := s.cancel
	srv := s.tcpSrv
	s.running.Store(false)
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if srv != nil {
		_ = srv.Close()
	}

	// Closing the listener does not guarantee every already-accepted
	// connection unblocks its pending read; disconnect each tracked
	// session's stream directly so none is left polling forever.
	s.sessions.Range(func(_ string, sess *session.Session) bool {
		sess.Disconnect()
		return true
	})

	s.log.Info("server stopped")
	return nil
}

// OpenConnections reports how many sessions are currently being served.
func (s *Server) OpenConnections() int {
	n := 0
	s.sessions.Range(func(_ string, _ *session.Session) bool {
		n++
		return true
	})
	return n
}

// Wait blocks until the acceptor's Listen call has returned; it does not
// itself join the per-connection handlers. It is safe to call concurrently
// with Stop. A deliberate
// shutdown (context canceled, listener closed) is normal termination,
// not an error.
func (s *Server) Wait() error {
	s.mu.Lock()
	g := s.group
	s.mu.Unlock()

	if g == nil {
		return nil
	}

	err := g.Wait()
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, net.ErrClosed) {
		return nil
	}
	return liberr.NetworkError.Error(err)
}

// Running reports whether the acceptor is currently bound and accepting.
func (s *Server) Running() bool {
	return s.running.Load()
}

// Port returns the most recently bound port, valid only while Running.
func (s *Server) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port
}

// StartEphemeral builds a Server around template, starts it on an
// OS-assigned port, and returns it together with a release function that
// stops the server and joins the acceptor. Meant for tests:
//
//	srv, done, err := server.StartEphemeral(set, logger.New())
//	defer done()
func StartEphemeral(template *expectation.Set, log logger.Logger) (*Server, func(), error) {
	srv := New(template, log)

	if _, err := srv.Start(0); err != nil {
		return nil, nil, err
	}

	return srv, func() {
		_ = srv.Stop()
		_ = srv.Wait()
	}, nil
}

// handler builds the per-connection entry point the underlying TCP
// acceptor invokes on its own per-connection goroutine: that goroutine is
// this server's "worker", tracked by registering its session inline. A
// panic inside an action is caught by the recover in the session's feed
// step, not by the acceptor.
func (s *Server) handler(ctx context.Context) libsck.HandlerFunc {
	return func(c libsck.Context) {
		st := stream.New(c)
		sess := session.New(st, s.template, s, s.log)

		s.sessions.Store(sess.ID(), sess)
		defer s.sessions.Delete(sess.ID())

		_ = sess.Run(ctx)
	}
}

// freePort asks the OS for an unused TCP port by binding to port 0 and
// immediately releasing it, the same trick nabbar-golib's own test helpers
// use to pick an ephemeral port ahead of starting the real listener.
func freePort() (int, error) {
	addr, err := net.ResolveTCPAddr(libptc.NetworkTCP.Code(), "localhost:0")
	if err != nil {
		return 0, err
	}

	lis, err := net.ListenTCP(libptc.NetworkTCP.Code(), addr)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = lis.Close()
	}()

	return lis.Addr().(*net.TCPAddr).Port, nil
}
