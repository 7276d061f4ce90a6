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

// Package telnet is the line-protocol builder DSL: a fluent way to
// describe a template expectation.Set for a plain-text wire protocol,
// without touching the trigger/action/expectation packages directly.
// Builder holds exactly one staged Rule at a time; every new
// When/WhenPrefix/WhenAnyLine/WhenRegex call finalizes whatever was staged
// before it, and Build finalizes the last one.
package telnet

import (
	"time"

	"github.com/sabouaram/mockwire/action"
	"github.com/sabouaram/mockwire/expectation"
	"github.com/sabouaram/mockwire/trigger"
)

// LineTerminator is the byte that ends a line for WhenAnyLine matching and
// that ReplyLine appends; When does not use it.
const LineTerminator = '\n'

// Builder accumulates expectations for a line-oriented server.
type Builder struct {
	exps   []*expectation.Expectation
	staged *Rule
}

// New starts an empty telnet protocol builder.
func New() *Builder {
	return &Builder{}
}

// Rule is the expectation currently under construction: reply()/freeze()/
// close_connection()/shutdown_server()/do() each append one action and
// return the same Rule so calls compose in declaration order; order()/
// times()/once() set cardinality. It stays staged until the next When* call
// or Build finalizes it into the set.
type Rule struct {
	b        *Builder
	name     string
	t        trigger.Trigger
	order    int
	maxCalls int
	actions  []action.Action
}

func (b *Builder) stage(r *Rule) *Rule {
	b.finalizeStaged()
	r.order = expectation.DefaultOrder
	b.staged = r
	return r
}

func (b *Builder) finalizeStaged() {
	if b.staged == nil {
		return
	}

	r := b.staged
	b.staged = nil

	exp := expectation.New(r.name, r.t, action.Sequence(r.actions...)).WithOrder(r.order)
	if r.maxCalls != 0 {
		exp = exp.WithMaxCalls(r.maxCalls)
	}

	b.exps = append(b.exps, exp)
}

// When starts a rule matched by the literal byte prefix s; no terminator
// is required or consumed. Use WhenAnyLine or WhenRegex paired with
// LineTerminator for line-oriented matching.
func (b *Builder) When(s string) *Rule {
	return b.stage(&Rule{b: b, name: s, t: trigger.Prefix(s)})
}

// WhenPrefix starts a rule matched when the buffer begins with prefix; like
// When, it consumes only the prefix bytes, not the rest of the line.
func (b *Builder) WhenPrefix(prefix string) *Rule {
	return b.stage(&Rule{b: b, name: prefix, t: trigger.Prefix(prefix)})
}

// WhenAnyLine starts a rule matched by any complete line, regardless of
// its content.
func (b *Builder) WhenAnyLine() *Rule {
	return b.stage(&Rule{b: b, name: "*", t: trigger.AnyLine(LineTerminator)})
}

// WhenRegex starts a rule matched by a POSIX extended regular expression.
func (b *Builder) WhenRegex(pattern string) *Rule {
	return b.stage(&Rule{b: b, name: pattern, t: trigger.MustRegex(pattern)})
}

// Order re-buckets this rule to the given priority; lower values are
// scanned first. Rules that never call Order share
// expectation.DefaultOrder.
func (r *Rule) Order(order int) *Rule {
	r.order = order
	return r
}

// Times caps how many times this rule may fire before it retires.
func (r *Rule) Times(n int) *Rule {
	r.maxCalls = n
	return r
}

// Once is sugar for Times(1).
func (r *Rule) Once() *Rule {
	return r.Times(1)
}

// Reply appends an action writing back the literal bytes of s, with no
// terminator appended — the mirror of When's literal-prefix matching.
// Further actions (Freeze, CloseConnection, ...) may still be chained
// after it.
func (r *Rule) Reply(s string) *Rule {
	r.actions = append(r.actions, action.WriteString(s))
	return r
}

// ReplyOnce is Reply(s).Once() in one call.
func (r *Rule) ReplyOnce(s string) *Rule {
	return r.Reply(s).Once()
}

// ReplyLine is Reply with LineTerminator appended, for callers that want
// the line-oriented ergonomic explicitly rather than through when/reply.
func (r *Rule) ReplyLine(line string) *Rule {
	return r.Reply(line + string(LineTerminator))
}

// Freeze appends a pause of d before the next action runs. Freeze(0)
// stages "match but do not reply yet".
func (r *Rule) Freeze(d time.Duration) *Rule {
	r.actions = append(r.actions, action.Freeze(d))
	return r
}

// CloseConnection appends the close-connection action: any action staged
// after it on the same rule never runs once the trigger fires.
func (r *Rule) CloseConnection() *Rule {
	r.actions = append(r.actions, action.CloseConnection())
	return r
}

// ShutdownServer appends the shutdown-server action.
func (r *Rule) ShutdownServer() *Rule {
	r.actions = append(r.actions, action.ShutdownServer())
	return r
}

// Do appends a caller-supplied action, for cases the built-in helpers
// don't cover.
func (r *Rule) Do(a action.Action) *Rule {
	r.actions = append(r.actions, a)
	return r
}

// Build finalizes the staged rule (if any) and returns the accumulated
// rules as a template expectation.Set, ready to be cloned per connection
// by session.Session.
func (b *Builder) Build() *expectation.Set {
	b.finalizeStaged()
	return expectation.NewSet(b.exps...)
}
