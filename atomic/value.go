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

package atomic

import (
	"sync/atomic"
)

// val is the sole implementation of Value[T]: a thin, type-safe wrapper
// over sync/atomic.Value. Load before the first Store returns T's zero
// value.
type val[T any] struct {
	av *atomic.Value
}

// Load retrieves the current value, or the zero value of T if nothing has
// been stored yet. Lock-free and safe for concurrent use.
func (o *val[T]) Load() (value T) {
	v, _ := Cast[T](o.av.Load())
	return v
}

// Store sets the value atomically.
func (o *val[T]) Store(value T) {
	o.av.Store(value)
}

// Swap atomically stores new and returns the previous value, or the zero
// value of T if nothing had been stored yet.
func (o *val[T]) Swap(new T) (old T) {
	v, _ := Cast[T](o.av.Swap(new))
	return v
}

// CompareAndSwap atomically stores new if the current value equals old,
// reporting whether the swap happened.
func (o *val[T]) CompareAndSwap(old, new T) (swapped bool) {
	return o.av.CompareAndSwap(old, new)
}
