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

// Package action implements the side effects an expectation fires once
// its trigger matches: writing bytes back to the peer, freezing the
// connection open without a reply, closing the connection, and shutting the
// owning server down. Every Action receives the session's Context so it can
// reach the stream, the server handle, and a scoped logger without a global.
package action

import (
	"time"

	"github.com/sabouaram/mockwire/logger"
	"github.com/sabouaram/mockwire/stream"
)

// Server is the subset of server lifecycle an action needs to trigger a
// shutdown without importing the server package (which itself depends on
// session, which depends on action — Context breaks the cycle).
type Server interface {
	Stop() error
}

// Context is the state an Action executes against: the connection's stream,
// an optional handle on the owning server (nil outside a real server-backed
// session, e.g. in a unit test), and a logger scoped to the connection.
type Context struct {
	Stream stream.Stream
	Server Server
	Log    logger.Logger
}

// Action is one side effect fired when an expectation's trigger matches.
// It must not block indefinitely; long-running behavior belongs in the
// trigger/expectation layer, not here.
type Action interface {
	Run(ctx Context) error
}

// Func adapts a plain function to the Action interface.
type Func func(ctx Context) error

// Run implements Action.
func (f Func) Run(ctx Context) error { return f(ctx) }

// Write sends literal bytes back over the connection's stream.
func Write(payload []byte) Action {
	p := append([]byte(nil), payload...)

	return Func(func(ctx Context) error {
		return ctx.Stream.WriteAll(p)
	})
}

// WriteString is Write for a string payload.
func WriteString(payload string) Action {
	return Write([]byte(payload))
}

// Freeze pauses the session for d before the next action in the same
// expectation runs. d == 0 is a legal instant pause, used by DSLs to
// stage "match this but do not reply" without an explicit sleep.
func Freeze(d time.Duration) Action {
	return Func(func(ctx Context) error {
		if d > 0 {
			time.Sleep(d)
		}
		return nil
	})
}

// CloseConnection disconnects the peer after any actions ordered before it
// have run.
func CloseConnection() Action {
	return Func(func(ctx Context) error {
		return ctx.Stream.Disconnect()
	})
}

// ShutdownServer stops the owning server. It is a no-op (not an error) when
// ctx.Server is nil, so actions built for unit tests outside a running
// server remain safe to execute.
func ShutdownServer() Action {
	return Func(func(ctx Context) error {
		if ctx.Server == nil {
			return nil
		}
		return ctx.Server.Stop()
	})
}

// Sequence runs each action in order, stopping at the first error. It also
// stops early, without error, once the stream disconnects: an action that
// closes the stream makes later actions in the same expectation no-ops.
func Sequence(actions ...Action) Action {
	return Func(func(ctx Context) error {
		for _, a := range actions {
			if err := a.Run(ctx); err != nil {
				return err
			}
			if ctx.Stream != nil && !ctx.Stream.Connected() {
				return nil
			}
		}
		return nil
	})
}
