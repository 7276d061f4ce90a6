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

// Package buffer holds the per-connection input buffer that triggers read
// from and consume on a successful match. It is deliberately the simplest
// piece of the engine: an ordered byte sequence that can only shrink from
// the front (or, for a regex/HTTP-frame match, from an arbitrary prefix
// range), never grow except by appending newly-read bytes.
package buffer

import "bytes"

// Buffer is the stream-oriented input accumulator a Trigger inspects.
type Buffer struct {
	b []byte
}

// New returns an empty Buffer.
func New() *Buffer {
	return &Buffer{}
}

// Append adds newly read bytes to the tail of the buffer.
func (b *Buffer) Append(p []byte) {
	if len(p) == 0 {
		return
	}
	b.b = append(b.b, p...)
}

// Len returns the number of bytes currently buffered.
func (b *Buffer) Len() int {
	return len(b.b)
}

// Bytes returns the buffered bytes. The returned slice aliases the
// buffer's storage and must not be retained across a Consume call.
func (b *Buffer) Bytes() []byte {
	return b.b
}

// HasPrefix reports whether the buffer currently starts with p.
func (b *Buffer) HasPrefix(p []byte) bool {
	return bytes.HasPrefix(b.b, p)
}

// IndexByte returns the index of the first occurrence of c, or -1.
func (b *Buffer) IndexByte(c byte) int {
	return bytes.IndexByte(b.b, c)
}

// Index returns the index of the first occurrence of sep, or -1.
func (b *Buffer) Index(sep []byte) int {
	return bytes.Index(b.b, sep)
}

// Consume removes the first n bytes from the buffer. It is the only
// mutating operation a Trigger may perform, and only on a successful match.
func (b *Buffer) Consume(n int) {
	if n <= 0 {
		return
	}
	if n >= len(b.b) {
		b.b = b.b[:0]
		return
	}

	remaining := make([]byte, len(b.b)-n)
	copy(remaining, b.b[n:])
	b.b = remaining
}

// Snapshot returns a defensive copy of the buffered bytes, for trigger
// implementations that must scan without risking an accidental mutation
// (e.g. regex execution against the live slice).
func (b *Buffer) Snapshot() []byte {
	cp := make([]byte, len(b.b))
	copy(cp, b.b)
	return cp
}
