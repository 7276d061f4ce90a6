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

// Package mockclient is the test-author-facing side of the harness:
// Connect opens a real TCP connection to a running mockwire/server.Server
// on 127.0.0.1, so integration tests can write requests and read the
// mock's responses without touching net directly. It is built on
// github.com/nabbar/golib/socket/client/tcp, the client-side counterpart
// to the server package's socket/server/tcp.
package mockclient

import (
	"context"
	"io"
	"net"
	"strconv"

	sckclt "github.com/nabbar/golib/socket/client/tcp"

	liberr "github.com/sabouaram/mockwire/errors"
)

// addressable is the subset of Server this package needs: just enough to
// dial it without importing the server package's full lifecycle surface
// (keeping this package usable against any fake with a Port()).
type addressable interface {
	Port() int
}

// Client is a thin convenience wrapper around a connected TCP client,
// giving tests Read/Write/Close plus a one-shot request/response helper.
type Client struct {
	raw sckclt.ClientTCP
}

// Connect dials 127.0.0.1:<srv.Port()> and blocks until the connection is
// established or ctx is done.
func Connect(ctx context.Context, srv addressable) (*Client, error) {
	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(srv.Port()))

	raw, err := sckclt.New(addr)
	if err != nil {
		return nil, liberr.NetworkError.Error(err)
	}

	if err = raw.Connect(ctx); err != nil {
		return nil, liberr.NetworkError.Error(err)
	}

	return &Client{raw: raw}, nil
}

// Write sends p to the mock server.
func (c *Client) Write(p []byte) (int, error) {
	if !c.raw.IsConnected() {
		return 0, liberr.NotConnectedError.Error()
	}
	return c.raw.Write(p)
}

// WriteString is Write for a string payload.
func (c *Client) WriteString(s string) (int, error) {
	return c.Write([]byte(s))
}

// Read reads whatever bytes the mock server has written back so far.
func (c *Client) Read(p []byte) (int, error) {
	if !c.raw.IsConnected() {
		return 0, liberr.NotConnectedError.Error()
	}
	return c.raw.Read(p)
}

// ReadAll reads exactly len(p) bytes, looping over short reads.
func (c *Client) ReadAll(p []byte) (int, error) {
	return io.ReadFull(c, p)
}

// Once sends request in full, then hands every byte read back to onReply
// until the server closes its side — mirroring the underlying client's
// single-shot request/response helper.
func (c *Client) Once(ctx context.Context, request io.Reader, onReply func(io.Reader)) error {
	return c.raw.Once(ctx, request, onReply)
}

// Connected reports whether the underlying socket is still live.
func (c *Client) Connected() bool {
	return c.raw.IsConnected()
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.raw.Close()
}
