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

import (
	"fmt"
	"runtime"
	"strings"
)

func sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}

	return fmt.Sprintf(format, args...)
}

type ers struct {
	c CodeError
	m string
	p []error
	t runtime.Frame
}

func (e *ers) Error() string {
	if e.m == "" {
		return e.c.Message()
	}

	if len(e.p) == 0 {
		return e.m
	}

	var s []string
	for _, p := range e.p {
		if p != nil {
			s = append(s, p.Error())
		}
	}

	if len(s) == 0 {
		return e.m
	}

	return fmt.Sprintf("%s: %s", e.m, strings.Join(s, "; "))
}

func (e *ers) Code() CodeError {
	return e.c
}

func (e *ers) IsCode(c CodeError) bool {
	if e.c == c {
		return true
	}

	for _, p := range e.p {
		if a, ok := p.(Error); ok && a.IsCode(c) {
			return true
		}
	}

	return false
}

func (e *ers) Add(parent ...error) {
	for _, p := range parent {
		if p != nil {
			e.p = append(e.p, p)
		}
	}
}

func (e *ers) Parent() []error {
	return e.p
}

func (e *ers) GetFile() string {
	return e.t.File
}

func (e *ers) GetLine() int {
	return e.t.Line
}
