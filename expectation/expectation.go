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

// Package expectation implements the matching engine: a priority-
// bucketed set of expectations, each pairing a trigger.Trigger with an
// action.Action, fired with round-robin rotation inside its bucket and
// retired once it has fired its fire limit. Lower Order values are
// scanned first; expectations left at DefaultOrder share one bucket, so
// an explicitly lower Order jumps ahead of them and an explicitly higher
// one becomes a fallback.
package expectation

import (
	"sort"
	"sync"

	"github.com/sabouaram/mockwire/action"
	"github.com/sabouaram/mockwire/buffer"
	"github.com/sabouaram/mockwire/trigger"
)

// DefaultOrder is the priority bucket an expectation lands in when the
// builder never calls Order: far enough from zero that callers can slot
// rules both before and after the defaults.
const DefaultOrder = 100

// Expectation pairs a trigger with the action it fires, plus the
// bookkeeping the engine needs to rotate and retire it.
type Expectation struct {
	Name     string
	Trigger  trigger.Trigger
	Action   action.Action
	Order    int
	MaxCalls int // 0 means unlimited

	mu    sync.Mutex
	fired int
}

// New builds an Expectation with MaxCalls 0 (unlimited) and DefaultOrder.
func New(name string, t trigger.Trigger, a action.Action) *Expectation {
	return &Expectation{Name: name, Trigger: t, Action: a, Order: DefaultOrder}
}

// WithOrder returns a copy of the template Expectation re-bucketed to the
// given priority, used by the builder DSLs' order(n) call.
func (e *Expectation) WithOrder(order int) *Expectation {
	cp := e.clone()
	cp.Order = order
	return cp
}

// WithMaxCalls returns a copy of the template Expectation with a fire limit,
// used by the builder DSLs' times(n)/once() calls.
func (e *Expectation) WithMaxCalls(n int) *Expectation {
	cp := e.clone()
	cp.MaxCalls = n
	return cp
}

// TimesFired reports how many times this expectation has fired on its
// owning connection's snapshot.
func (e *Expectation) TimesFired() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fired
}

func (e *Expectation) clone() *Expectation {
	e.mu.Lock()
	defer e.mu.Unlock()

	return &Expectation{
		Name:     e.Name,
		Trigger:  e.Trigger,
		Action:   e.Action,
		Order:    e.Order,
		MaxCalls: e.MaxCalls,
		fired:    e.fired,
	}
}

func (e *Expectation) retired() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.MaxCalls > 0 && e.fired >= e.MaxCalls
}

func (e *Expectation) recordFire() {
	e.mu.Lock()
	e.fired++
	e.mu.Unlock()
}

// Set is an ordered, rotating collection of expectations: the template a
// server is configured with, or the per-connection clone a session loop
// feeds bytes through.
type Set struct {
	mu      sync.Mutex
	buckets map[int][]*Expectation
}

// NewSet builds a Set from the given expectations, bucketed by Order.
func NewSet(exps ...*Expectation) *Set {
	s := &Set{
		buckets: make(map[int][]*Expectation),
	}
	for _, e := range exps {
		s.buckets[e.Order] = append(s.buckets[e.Order], e)
	}
	return s
}

// Add appends an expectation to its Order's bucket.
func (s *Set) Add(e *Expectation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets[e.Order] = append(s.buckets[e.Order], e)
}

// Clone returns an independent per-connection copy: same triggers and
// actions, but its own fire counters and bucket ordering, so concurrent
// connections never observe each other's match history or rotation.
func (s *Set) Clone() *Set {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := &Set{
		buckets: make(map[int][]*Expectation, len(s.buckets)),
	}
	for order, bucket := range s.buckets {
		nb := make([]*Expectation, len(bucket))
		for i, e := range bucket {
			nb[i] = e.clone()
		}
		cp.buckets[order] = nb
	}
	return cp
}

func (s *Set) sortedOrders() []int {
	orders := make([]int, 0, len(s.buckets))
	for order := range s.buckets {
		orders = append(orders, order)
	}
	sort.Ints(orders)
	return orders
}

// Feed scans buf against the set until a full pass finds no further match,
// restarting from the highest-priority bucket every time an expectation
// fires (the buffer has shrunk, so an earlier/higher-priority trigger may
// now apply). Within a bucket the first expectation whose trigger matches
// wins; if it is still active after firing it is moved to the back of its
// bucket, and once its fire limit is reached it is removed outright.
// Returns the number of fires (an expectation that fires twice counts
// twice) and the first action error
// encountered, if any; a fired action error does not stop the scan of
// remaining bytes.
func (s *Set) Feed(buf *buffer.Buffer, ctx action.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fired := 0
	var firstErr error

	for {
		matchedThisPass := false

		for _, order := range s.sortedOrders() {
			bucket := s.buckets[order]

			for idx, exp := range bucket {
				if exp.retired() {
					continue
				}

				if !exp.Trigger.Match(buf) {
					continue
				}

				exp.recordFire()
				fired++

				rest := append(bucket[:idx:idx], bucket[idx+1:]...)
				if exp.retired() {
					s.buckets[order] = rest
				} else {
					s.buckets[order] = append(rest, exp)
				}

				if err := exp.Action.Run(ctx); err != nil && firstErr == nil {
					firstErr = err
				}

				matchedThisPass = true
				break
			}

			if matchedThisPass {
				break
			}
		}

		if !matchedThisPass {
			break
		}
	}

	return fired, firstErr
}
