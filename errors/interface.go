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

package errors

// Error is a coded error with an optional causal chain and a captured
// call site. It satisfies the standard error interface so it composes with
// errors.Is / errors.As and with code that only expects `error`.
type Error interface {
	error

	// Code returns the classification of this error.
	Code() CodeError

	// IsCode reports whether this error (or any of its parents) carries c.
	IsCode(c CodeError) bool

	// Add appends further causes to this error's parent chain.
	Add(parent ...error)

	// Parent returns the direct causes of this error, oldest first.
	Parent() []error

	// GetFile and GetLine report where the error was raised.
	GetFile() string
	GetLine() int
}

// New builds an Error with code c, message msg, and the given parents.
func New(c CodeError, msg string, parent ...error) Error {
	e := &ers{
		c: c,
		m: msg,
		t: trace(),
	}

	e.Add(parent...)

	return e
}

// Newf is New with fmt.Sprintf-style message formatting.
func Newf(c CodeError, format string, args ...interface{}) Error {
	return New(c, sprintf(format, args...))
}
