/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

import "sync/atomic"

// Value is a generic, type-safe wrapper over sync/atomic.Value.
type Value[T any] interface {
	Load() (value T)
	Store(value T)
	Swap(new T) (old T)
	CompareAndSwap(old, new T) (swapped bool)
}

// MapTyped is a generic, type-safe wrapper over sync.Map for a fixed
// key/value pair, used as the server's per-session registry.
type MapTyped[K comparable, V any] interface {
	Load(key K) (value V, ok bool)
	Store(key K, value V)
	LoadOrStore(key K, value V) (actual V, loaded bool)
	LoadAndDelete(key K) (value V, loaded bool)
	Delete(key K)
	Swap(key K, value V) (previous V, loaded bool)
	CompareAndSwap(key K, old, new V) bool
	CompareAndDelete(key K, old V) (deleted bool)

	// Range calls f for each entry, in no particular order, until f
	// returns false. An entry whose value does not cast to V is deleted
	// rather than passed to f; since Cast reports V's zero value as a
	// failed cast, this includes an entry stored with V's zero value.
	Range(f func(key K, value V) bool)
}

// NewValue returns a ready-to-use Value whose Load returns the zero value
// of T until the first Store.
func NewValue[T any]() Value[T] {
	return &val[T]{av: new(atomic.Value)}
}

// NewMapTyped returns an empty, ready-to-use MapTyped backed by a sync.Map.
func NewMapTyped[K comparable, V any]() MapTyped[K, V] {
	return &mt[K, V]{}
}
