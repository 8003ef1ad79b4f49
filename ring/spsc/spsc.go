// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package spsc provides a bounded, single-producer single-consumer ring
// buffer.
package spsc

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/dkit"
)

// Ring is a single-producer single-consumer bounded queue.
//
// Based on Lamport's ring buffer with cached index optimization: the
// producer caches the consumer's dequeue index, and vice versa, reducing
// cross-core cache line traffic. No CAS is needed on either side — the
// producer owns tail, the consumer owns head, and each reads the other's
// counter with acquire ordering.
//
// Violating the single-producer / single-consumer discipline (more than
// one goroutine calling Push, or more than one calling Pop) causes data
// corruption; Ring does not detect or guard against it.
type Ring[T any] struct {
	_          pad
	head       atomix.Uint64 // consumer reads from here
	_          pad
	cachedTail uint64 // consumer's cached view of tail
	_          pad
	tail       atomix.Uint64 // producer writes here
	_          pad
	cachedHead uint64 // producer's cached view of head
	_          pad
	buffer     []T
	mask       uint64
}

// New creates a new SPSC ring. Capacity rounds up to the next power of 2.
// Panics if capacity < 2.
func New[T any](capacity int) *Ring[T] {
	if capacity < 2 {
		panic("spsc: capacity must be >= 2")
	}
	n := uint64(roundToPow2(capacity))
	return &Ring[T]{
		buffer: make([]T, n),
		mask:   n - 1,
	}
}

// Push adds an item to the queue (producer only).
// Returns dkit.ErrWouldBlock if the queue is full.
func (q *Ring[T]) Push(item T) error {
	tail := q.tail.LoadRelaxed()
	if tail-q.cachedHead > q.mask {
		q.cachedHead = q.head.LoadAcquire()
		if tail-q.cachedHead > q.mask {
			return dkit.ErrWouldBlock
		}
	}

	q.buffer[tail&q.mask] = item
	q.tail.StoreRelease(tail + 1)
	return nil
}

// Pop removes and returns the item at the front of the queue (consumer
// only). Returns dkit.ErrWouldBlock if the queue is empty.
func (q *Ring[T]) Pop() (T, error) {
	head := q.head.LoadRelaxed()
	if head >= q.cachedTail {
		q.cachedTail = q.tail.LoadAcquire()
		if head >= q.cachedTail {
			var zero T
			return zero, dkit.ErrWouldBlock
		}
	}

	elem := q.buffer[head&q.mask]
	var zero T
	q.buffer[head&q.mask] = zero
	q.head.StoreRelease(head + 1)
	return elem, nil
}

// Peek returns the item at the front of the queue without removing it
// (consumer only). Returns dkit.ErrWouldBlock if the queue is empty.
func (q *Ring[T]) Peek() (T, error) {
	head := q.head.LoadRelaxed()
	if head >= q.cachedTail {
		q.cachedTail = q.tail.LoadAcquire()
		if head >= q.cachedTail {
			var zero T
			return zero, dkit.ErrWouldBlock
		}
	}
	return q.buffer[head&q.mask], nil
}

// Clear empties the queue. Not safe against a concurrent producer or
// consumer; callers must ensure the queue is quiescent.
func (q *Ring[T]) Clear() {
	for {
		if _, err := q.Pop(); err != nil {
			return
		}
	}
}

// Empty reports whether the queue currently holds no items.
func (q *Ring[T]) Empty() bool {
	return q.head.LoadAcquire() >= q.tail.LoadAcquire()
}

// Size reports the current number of items in the queue. Advisory under
// concurrent load.
func (q *Ring[T]) Size() int {
	return int(q.tail.LoadAcquire() - q.head.LoadAcquire())
}

// Cap returns the queue capacity.
func (q *Ring[T]) Cap() int {
	return int(q.mask + 1)
}

var _ dkit.FIFO[int] = (*Ring[int])(nil)

func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte
