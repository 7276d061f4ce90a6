/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

// Package errors provides the small coded-error taxonomy used across the mock
// server: a CodeError classifies what went wrong (network failure, lifecycle
// misuse, malformed wire input) independently of the human-readable message,
// the way HTTP status codes classify responses.
package errors

import "strconv"

// CodeError classifies an Error without depending on its message text.
type CodeError uint16

const (
	// UnknownError is returned when no more specific code applies.
	UnknownError CodeError = iota

	// NetworkError: a syscall on a connected stream failed, or the peer
	// closed the connection while a frame was still being read or written.
	NetworkError

	// NotConnectedError: an operation was attempted on a stream handle that
	// has no live peer (never connected, or already disconnected).
	NotConnectedError

	// AlreadyRunningError: Server.Start was called while the acceptor was
	// already bound and running.
	AlreadyRunningError

	// ServerDownError: an operation requires a running server but the
	// server has not been started (or has already been stopped).
	ServerDownError

	// AlreadyConnectedError: a client attempted to connect twice without
	// disconnecting first.
	AlreadyConnectedError

	// ParseMalformedError: the HTTP wire parser found a request line or
	// header it could not make sense of.
	ParseMalformedError
)

var codeMessage = map[CodeError]string{
	UnknownError:          "unknown error",
	NetworkError:          "network error",
	NotConnectedError:     "not connected",
	AlreadyRunningError:   "server already running",
	ServerDownError:       "server is not running",
	AlreadyConnectedError: "client already connected",
	ParseMalformedError:   "malformed request",
}

// Uint16 returns the code as its underlying uint16 value.
func (c CodeError) Uint16() uint16 {
	return uint16(c)
}

// String implements fmt.Stringer, returning the decimal code.
func (c CodeError) String() string {
	return strconv.Itoa(int(c))
}

// Message returns the default human-readable text registered for the code.
func (c CodeError) Message() string {
	if m, ok := codeMessage[c]; ok {
		return m
	}

	return codeMessage[UnknownError]
}

// Error builds a new Error carrying this code, the code's default message,
// and the given parents (previous errors in the causal chain).
func (c CodeError) Error(parent ...error) Error {
	return New(c, c.Message(), parent...)
}
