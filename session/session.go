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

// Package session drives one accepted connection's read-feed-act loop:
// clone the template expectation set so this connection's fire
// counters are independent of every other, read bytes into a buffer, feed
// the buffer to the clone, and repeat until the peer disconnects or the
// session is asked to stop. A panic raised inside an action is recovered
// and logged rather than taking the whole acceptor down with it.
package session

import (
	"context"
	"io"

	"github.com/hashicorp/go-uuid"

	"github.com/sabouaram/mockwire/action"
	"github.com/sabouaram/mockwire/buffer"
	liberr "github.com/sabouaram/mockwire/errors"
	"github.com/sabouaram/mockwire/expectation"
	"github.com/sabouaram/mockwire/logger"
	"github.com/sabouaram/mockwire/stream"
)

// readChunk is the size of each ReadSome call's scratch buffer. It bounds
// memory per poll, not the total size of an accepted request.
const readChunk = 4096

// Session owns one connection's lifetime: its stream, the per-connection
// clone of the template expectation set, and a correlation id for logging.
type Session struct {
	id       string
	stream   stream.Stream
	template *expectation.Set
	server   action.Server
	log      logger.Logger
}

// New builds a Session over an already-accepted stream. template is the
// server's configured expectation set; it is cloned once per session so
// concurrent connections never share fire counters or rotation state.
func New(s stream.Stream, template *expectation.Set, srv action.Server, log logger.Logger) *Session {
	id, err := uuid.GenerateUUID()
	if err != nil {
		id = "unknown"
	}

	return &Session{
		id:       id,
		stream:   s,
		template: template,
		server:   srv,
		log:      log.WithField("session", id),
	}
}

// ID returns this session's correlation id, used only to tell concurrent
// connections' log lines apart.
func (s *Session) ID() string {
	return s.id
}

// Disconnect force-closes this session's stream from outside the read
// loop, unblocking a pending ReadSome so Run returns. Used by the server
// to make sure Stop doesn't leave a straggling connection polling forever.
func (s *Session) Disconnect() {
	_ = s.stream.Disconnect()
}

// Run feeds bytes from the stream to a fresh clone of the template set
// until the peer disconnects, a network error occurs, or ctx is canceled.
// It always returns nil: connection teardown is normal termination, not a
// caller-visible failure.
func (s *Session) Run(ctx context.Context) error {
	set := s.template.Clone()
	buf := buffer.New()
	actx := action.Context{Stream: s.stream, Server: s.server, Log: s.log}
	scratch := make([]byte, readChunk)

	s.log.Debug("session started")
	defer s.log.Debug("session ended")

	for {
		select {
		case <-ctx.Done():
			_ = s.stream.Disconnect()
			return nil
		default:
		}

		n, err := s.stream.ReadSome(scratch)
		if n > 0 {
			buf.Append(scratch[:n])
			s.feed(set, buf, actx)
		}

		if err != nil {
			if err == io.EOF {
				return nil
			}
			if le, ok := err.(liberr.Error); ok && le.IsCode(liberr.NotConnectedError) {
				return nil
			}

			s.log.WithError(err).Warn("session read failed")
			return nil
		}

		if !s.stream.Connected() {
			return nil
		}
	}
}

// feed runs one Set.Feed pass, recovering a panic raised inside an action
// so one broken expectation does not take the acceptor's worker down.
func (s *Session) feed(set *expectation.Set, buf *buffer.Buffer, actx action.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithField("recovered", r).Error("action panicked")
		}
	}()

	if _, err := set.Feed(buf, actx); err != nil {
		s.log.WithError(err).Warn("action returned an error")
	}
}
