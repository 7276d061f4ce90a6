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

// Package stream wraps one connected peer's byte pipe with a blocking
// read-some/write-some/read-all/write-all discipline: WriteAll loops
// until every byte is accepted, and the Shutdown/Disconnect pair nulls
// the handle on the way out. ReadSome blocks on the underlying Read; the
// acceptor closes the connection's handle on shutdown, which unblocks a
// pending Read with an error rather than requiring a deadline-polling
// loop here.
//
// The concrete transport is github.com/nabbar/golib/socket's Context, the
// per-connection handle its TCP/UDP/Unix socket servers hand to a
// registered HandlerFunc.
package stream

import (
	"io"
	"sync"

	libsck "github.com/nabbar/golib/socket"
	liberr "github.com/sabouaram/mockwire/errors"
)

// Stream is the byte-pipe abstraction every trigger/action operates on.
type Stream interface {
	// ReadSome performs one OS-native read. Returns (0, io.EOF) when the
	// peer closed, and a wrapped errors.NetworkError otherwise.
	ReadSome(p []byte) (int, error)

	// WriteSome performs one OS-native short write.
	WriteSome(p []byte) (int, error)

	// ReadAll loops ReadSome until len(p) bytes are read or an error occurs.
	ReadAll(p []byte) (int, error)

	// WriteAll loops WriteSome until every byte of p is written.
	WriteAll(p []byte) error

	// Connected reports whether the stream still has a live peer handle.
	Connected() bool

	// Shutdown closes the underlying handle in both directions and releases
	// it; it is a full close, not a half-close. ReadSome/WriteSome after
	// Shutdown fail with errors.NotConnectedError.
	Shutdown() error

	// Disconnect is the same operation as Shutdown.
	Disconnect() error

	LocalAddr() string
	RemoteAddr() string
}

type connStream struct {
	mu sync.RWMutex
	c  libsck.Context
}

// New wraps a connected socket.Context in the Stream discipline.
func New(c libsck.Context) Stream {
	return &connStream{c: c}
}

func (s *connStream) handle() libsck.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.c
}

// connState is probed via type assertion rather than assumed, since not
// every Context implementation carries it.
type connState interface {
	IsConnected() bool
}

// hostInfo is probed the same way as connState.
type hostInfo interface {
	LocalHost() string
	RemoteHost() string
}

func (s *connStream) Connected() bool {
	c := s.handle()
	if c == nil {
		return false
	}
	if cs, ok := c.(connState); ok {
		return cs.IsConnected()
	}
	return true
}

func (s *connStream) ReadSome(p []byte) (int, error) {
	c := s.handle()
	if c == nil {
		return 0, liberr.NotConnectedError.Error()
	}

	n, err := c.Read(p)
	if err != nil {
		if err == io.EOF {
			return n, io.EOF
		}
		return n, liberr.NetworkError.Error(err)
	}

	return n, nil
}

func (s *connStream) WriteSome(p []byte) (int, error) {
	c := s.handle()
	if c == nil {
		return 0, liberr.NotConnectedError.Error()
	}

	n, err := c.Write(p)
	if err != nil {
		return n, liberr.NetworkError.Error(err)
	}

	return n, nil
}

func (s *connStream) ReadAll(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		n, err := s.ReadSome(p[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (s *connStream) WriteAll(p []byte) error {
	total := 0
	for total < len(p) {
		n, err := s.WriteSome(p[total:])
		total += n
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *connStream) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.c == nil {
		return liberr.NotConnectedError.Error()
	}

	err := s.c.Close()
	s.c = nil

	if err != nil {
		return liberr.NetworkError.Error(err)
	}
	return nil
}

func (s *connStream) Disconnect() error {
	return s.Shutdown()
}

func (s *connStream) LocalAddr() string {
	if c := s.handle(); c != nil {
		if hi, ok := c.(hostInfo); ok {
			return hi.LocalHost()
		}
	}
	return ""
}

func (s *connStream) RemoteAddr() string {
	if c := s.handle(); c != nil {
		if hi, ok := c.(hostInfo); ok {
			return hi.RemoteHost()
		}
	}
	return ""
}
