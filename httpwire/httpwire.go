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

// Package httpwire implements a minimal HTTP/1.x request-frame parser:
// given the bytes accumulated so far, tell apart a frame that needs more
// bytes, one that is malformed beyond repair, and one that parsed
// cleanly, using only CRLF-CRLF header termination and Content-Length
// framing. Chunked transfer-encoding is not supported; net/http cannot
// serve here because it owns the connection once it parses, while a mock
// needs to leave unmatched bytes in place for a later pattern.
package httpwire

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/sabouaram/mockwire/buffer"
	liberr "github.com/sabouaram/mockwire/errors"
)

// Verdict classifies how much of a request frame is present in the buffer.
type Verdict int

const (
	// Incomplete: not enough bytes yet to determine the frame's shape.
	Incomplete Verdict = iota
	// Malformed: the request line or a header could not be parsed.
	Malformed
	// Complete: a full request frame was parsed (Parse also consumes it;
	// Peek does not).
	Complete
)

var headerTerminator = []byte("\r\n\r\n")

// Request is a parsed HTTP/1.x request frame.
type Request struct {
	Method  string
	URI     string
	Version string
	Headers map[string][]string
	Body    []byte
}

// Header returns the first value registered for the given header name
// (case-insensitive), or "" if absent.
func (r *Request) Header(name string) string {
	if r == nil {
		return ""
	}
	v := r.Headers[strings.ToUpper(name)]
	if len(v) == 0 {
		return ""
	}
	return v[0]
}

// Parse inspects buf for one complete HTTP/1.x request frame. On
// Complete, the consumed bytes have already been removed from buf and req
// is populated. On Incomplete, buf is untouched and req is nil. On
// Malformed, buf is untouched, req is nil, and err describes the problem
// (errors.ParseMalformedError).
func Parse(buf *buffer.Buffer) (Verdict, *Request, error) {
	verdict, req, frameLen, err := Peek(buf.Bytes())
	if verdict == Complete {
		buf.Consume(frameLen)
	}
	return verdict, req, err
}

// Peek is Parse without the side effect: it inspects raw (typically
// buf.Bytes()) and reports the verdict, the parsed request on Complete,
// and the number of bytes the frame occupies, without consuming anything.
// Trigger implementations that need to inspect a request before deciding
// whether to consume it (httpmock's request matchers) call this directly.
func Peek(raw []byte) (Verdict, *Request, int, error) {
	headerEnd := bytes.Index(raw, headerTerminator)
	if headerEnd < 0 {
		return Incomplete, nil, 0, nil
	}

	head := raw[:headerEnd]
	lines := bytes.Split(head, []byte("\r\n"))

	reqLine := strings.Fields(string(lines[0]))
	if len(reqLine) != 3 {
		return Malformed, nil, 0, liberr.ParseMalformedError.Error()
	}

	method, uri, version := reqLine[0], reqLine[1], reqLine[2]
	if !validMethod(method) {
		return Malformed, nil, 0, liberr.ParseMalformedError.Error()
	}
	if !validVersion(version) {
		return Malformed, nil, 0, liberr.ParseMalformedError.Error()
	}

	headers := make(map[string][]string)
	for _, line := range lines[1:] {
		if len(line) == 0 {
			continue
		}

		idx := bytes.IndexByte(line, ':')
		if idx < 0 {
			return Malformed, nil, 0, liberr.ParseMalformedError.Error()
		}

		name := strings.ToUpper(strings.TrimSpace(string(line[:idx])))
		value := strings.TrimSpace(string(line[idx+1:]))
		headers[name] = append(headers[name], value)
	}

	bodyLen := 0
	if cl, ok := headers["CONTENT-LENGTH"]; ok && len(cl) > 0 {
		n, err := strconv.Atoi(cl[0])
		if err != nil || n < 0 {
			return Malformed, nil, 0, liberr.ParseMalformedError.Error()
		}
		bodyLen = n
	}

	frameLen := headerEnd + len(headerTerminator) + bodyLen
	if len(raw) < frameLen {
		return Incomplete, nil, 0, nil
	}

	body := make([]byte, bodyLen)
	copy(body, raw[headerEnd+len(headerTerminator):frameLen])

	req := &Request{
		Method:  method,
		URI:     uri,
		Version: version,
		Headers: headers,
		Body:    body,
	}

	return Complete, req, frameLen, nil
}

var knownMethods = map[string]bool{
	"GET":     true,
	"POST":    true,
	"HEAD":    true,
	"PUT":     true,
	"DELETE":  true,
	"TRACE":   true,
	"OPTIONS": true,
	"CONNECT": true,
	"PATCH":   true,
}

func validMethod(m string) bool {
	return knownMethods[m]
}

func validVersion(v string) bool {
	return v == "HTTP/1.0" || v == "HTTP/1.1"
}
