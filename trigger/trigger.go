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

// Package trigger implements the built-in pattern predicates: pure
// functions over a buffer.Buffer that consume matched bytes only when they
// return true. A false return must leave the buffer bytewise identical —
// every trigger in this package is tested against that invariant.
package trigger

import (
	"regexp"

	"github.com/sabouaram/mockwire/buffer"
)

// Trigger is a pure predicate with the side effect of consuming matched
// bytes from buf on success. It must be deterministic given identical
// buffer contents, and must not mutate buf when it returns false.
type Trigger interface {
	Match(buf *buffer.Buffer) bool
}

// Func adapts a plain function to the Trigger interface.
type Func func(buf *buffer.Buffer) bool

// Match implements Trigger.
func (f Func) Match(buf *buffer.Buffer) bool { return f(buf) }

// Prefix matches when the buffer starts with pattern, consuming exactly
// len(pattern) bytes.
func Prefix(pattern string) Trigger {
	p := []byte(pattern)

	return Func(func(buf *buffer.Buffer) bool {
		if !buf.HasPrefix(p) {
			return false
		}
		buf.Consume(len(p))
		return true
	})
}

// AnyLine matches as soon as the terminator byte appears anywhere in the
// buffer, consuming everything up to and including it.
func AnyLine(terminator byte) Trigger {
	return Func(func(buf *buffer.Buffer) bool {
		i := buf.IndexByte(terminator)
		if i < 0 {
			return false
		}
		buf.Consume(i + 1)
		return true
	})
}

// Regex compiles a POSIX extended regular expression once and matches it
// with leftmost-longest POSIX semantics, consuming [0, match.end) on a hit.
func Regex(pattern string) (Trigger, error) {
	re, err := regexp.CompilePOSIX(pattern)
	if err != nil {
		return nil, err
	}

	return Func(func(buf *buffer.Buffer) bool {
		loc := re.FindIndex(buf.Bytes())
		if loc == nil {
			return false
		}
		buf.Consume(loc[1])
		return true
	}), nil
}

// MustRegex is Regex but panics on an invalid pattern, for use in test
// fixtures and builder DSLs where the pattern is a compile-time literal.
func MustRegex(pattern string) Trigger {
	t, err := Regex(pattern)
	if err != nil {
		panic(err)
	}
	return t
}
