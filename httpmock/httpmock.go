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

// Package httpmock is the HTTP/1.x builder DSL: request pattern
// matchers (method, uri, version, header subset, body) that build on
// httpwire's structural parser, paired with a response builder that
// serializes a status line, headers, and body back over the wire.
package httpmock

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sabouaram/mockwire/action"
	"github.com/sabouaram/mockwire/buffer"
	"github.com/sabouaram/mockwire/expectation"
	"github.com/sabouaram/mockwire/httpwire"
	"github.com/sabouaram/mockwire/trigger"
)

// RequestPattern describes the conditions an incoming HTTP request must
// satisfy to match. The zero value matches any structurally valid request
// (the unexpected() convenience default).
type RequestPattern struct {
	method  string
	uri     string
	version string
	headers map[string]string
	body    []byte
}

// NewRequest starts an empty pattern matching any request.
func NewRequest() *RequestPattern {
	return &RequestPattern{headers: make(map[string]string)}
}

func method(verb string) *RequestPattern {
	p := NewRequest()
	p.method = verb
	return p
}

// GET, POST, PUT, PATCH, DELETE, HEAD, OPTIONS, TRACE, CONNECT start a
// pattern pinned to that method; Uri/Version/Header/Content further
// narrow it.
func GET() *RequestPattern     { return method("GET") }
func POST() *RequestPattern    { return method("POST") }
func PUT() *RequestPattern     { return method("PUT") }
func PATCH() *RequestPattern   { return method("PATCH") }
func DELETE() *RequestPattern  { return method("DELETE") }
func HEAD() *RequestPattern    { return method("HEAD") }
func OPTIONS() *RequestPattern { return method("OPTIONS") }
func TRACE() *RequestPattern   { return method("TRACE") }
func CONNECT() *RequestPattern { return method("CONNECT") }

// Unexpected starts a pattern with no constraints at all: it matches every
// structurally valid request. It shares DefaultOrder with every other
// expectation; give the resulting expectation a larger Order (via
// WithOrder) so specific patterns are tried first.
func Unexpected() *RequestPattern {
	return NewRequest()
}

// Method constrains the pattern to the given HTTP method.
func (p *RequestPattern) Method(m string) *RequestPattern {
	p.method = strings.ToUpper(m)
	return p
}

// Uri constrains the pattern to an exact request-target match.
func (p *RequestPattern) Uri(uri string) *RequestPattern {
	p.uri = uri
	return p
}

// Version constrains the pattern to an exact HTTP version ("HTTP/1.1").
func (p *RequestPattern) Version(version string) *RequestPattern {
	p.version = version
	return p
}

// Header requires the request to carry a header with this name and value.
// Matching is a subset check: extra headers on the actual request are
// allowed, only the ones named here must be present with the given value.
func (p *RequestPattern) Header(name, value string) *RequestPattern {
	p.headers[strings.ToUpper(name)] = value
	return p
}

// Content requires an exact body match.
func (p *RequestPattern) Content(body string) *RequestPattern {
	p.body = []byte(body)
	return p
}

func (p *RequestPattern) matches(req *httpwire.Request) bool {
	if p.method != "" && req.Method != p.method {
		return false
	}
	if p.uri != "" && req.URI != p.uri {
		return false
	}
	if p.version != "" && req.Version != p.version {
		return false
	}
	for name, value := range p.headers {
		if req.Header(name) != value {
			return false
		}
	}
	if p.body != nil && string(req.Body) != string(p.body) {
		return false
	}
	return true
}

// Trigger builds the trigger.Trigger this pattern represents: it peeks a
// structurally complete HTTP request from the buffer and only consumes it
// (returning true) if the request also satisfies every constraint set on
// this pattern. A structurally incomplete or non-matching frame leaves
// the buffer untouched, preserving the trigger purity invariant.
func (p *RequestPattern) Trigger() trigger.Trigger {
	return trigger.Func(func(buf *buffer.Buffer) bool {
		verdict, req, frameLen, err := httpwire.Peek(buf.Bytes())
		if err != nil || verdict != httpwire.Complete {
			return false
		}
		if !p.matches(req) {
			return false
		}

		buf.Consume(frameLen)
		return true
	})
}

// Expect registers this pattern against a, returning the Expectation so
// Order/Times can still be applied via expectation.Expectation's own
// With* helpers.
func (p *RequestPattern) Expect(a action.Action) *expectation.Expectation {
	name := p.method
	if name == "" {
		name = "ANY"
	}
	if p.uri != "" {
		name = name + " " + p.uri
	}
	return expectation.New(name, p.Trigger(), a)
}

// ResponseBuilder assembles an HTTP/1.x response frame.
type ResponseBuilder struct {
	version string
	status  int
	reason  string
	headers []headerField
	body    []byte
}

type headerField struct {
	name  string
	value string
}

// NewResponse starts a response with HTTP/1.1 and the given status code,
// using the standard reason phrase when one is registered.
func NewResponse(status int) *ResponseBuilder {
	return &ResponseBuilder{
		version: "HTTP/1.1",
		status:  status,
		reason:  httpwire.ReasonPhrase(status),
	}
}

// Reason overrides the default reason phrase.
func (r *ResponseBuilder) Reason(reason string) *ResponseBuilder {
	r.reason = reason
	return r
}

// Header appends a response header.
func (r *ResponseBuilder) Header(name, value string) *ResponseBuilder {
	r.headers = append(r.headers, headerField{name: name, value: value})
	return r
}

// Body sets the response body and sets Content-Length accordingly.
func (r *ResponseBuilder) Body(body string) *ResponseBuilder {
	r.body = []byte(body)
	return r
}

// Bytes serializes the response into a wire frame. A response with no
// body and no explicit headers is exactly the bare status line followed by
// the empty header block ("HTTP/1.1 200 OK\r\n\r\n"); Content-Length is
// only emitted when a body is present and the caller did not already set
// it.
func (r *ResponseBuilder) Bytes() []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %d %s\r\n", r.version, r.status, r.reason)

	hasContentLength := false
	for _, h := range r.headers {
		if strings.EqualFold(h.name, "Content-Length") {
			hasContentLength = true
		}
		fmt.Fprintf(&b, "%s: %s\r\n", h.name, h.value)
	}
	if len(r.body) > 0 && !hasContentLength {
		fmt.Fprintf(&b, "Content-Length: %s\r\n", strconv.Itoa(len(r.body)))
	}

	b.WriteString("\r\n")
	b.Write(r.body)

	return []byte(b.String())
}

// Action adapts this response into an action.Action that writes the
// serialized frame back to the connection.
func (r *ResponseBuilder) Action() action.Action {
	return action.Write(r.Bytes())
}

// RequestBuilder assembles an HTTP/1.x request frame: the client-side
// counterpart of ResponseBuilder, used by tests to produce the exact wire
// bytes a mocked server expects to receive.
type RequestBuilder struct {
	method  string
	uri     string
	version string
	headers []headerField
	body    []byte
}

// NewRequestFrame starts a request frame for the given method and
// request-target, defaulting to HTTP/1.1.
func NewRequestFrame(method, uri string) *RequestBuilder {
	return &RequestBuilder{
		method:  strings.ToUpper(method),
		uri:     uri,
		version: "HTTP/1.1",
	}
}

// Version overrides the HTTP version on the request line.
func (r *RequestBuilder) Version(version string) *RequestBuilder {
	r.version = version
	return r
}

// Header appends a request header.
func (r *RequestBuilder) Header(name, value string) *RequestBuilder {
	r.headers = append(r.headers, headerField{name: name, value: value})
	return r
}

// Body sets the request body; Content-Length is derived from it.
func (r *RequestBuilder) Body(body string) *RequestBuilder {
	r.body = []byte(body)
	return r
}

// Bytes serializes the request into a wire frame. Content-Length is
// always present so the receiving parser can frame the body, zero-length
// bodies included.
func (r *RequestBuilder) Bytes() []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s %s\r\n", r.method, r.uri, r.version)
	fmt.Fprintf(&b, "Content-Length: %s\r\n", strconv.Itoa(len(r.body)))
	for _, h := range r.headers {
		fmt.Fprintf(&b, "%s: %s\r\n", h.name, h.value)
	}

	b.WriteString("\r\n")
	b.Write(r.body)

	return []byte(b.String())
}
