// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package spmc provides a bounded, single-producer multi-consumer ring
// buffer.
package spmc

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/dkit"
	"code.hybscloud.com/spin"
)

// Ring is a single-producer multi-consumer bounded queue.
//
// The producer owns tail outright and never needs an RMW. Consumers
// contend for head via CAS: a consumer that wins the CAS on a given index
// takes ownership of that cell's value and clears its valid bit. Consumers
// linearize on the CAS of head, so that order is what each winner's pop
// reflects.
//
// Violating the single-producer discipline (more than one goroutine
// calling Push) causes data corruption; Ring does not detect or guard
// against it.
type Ring[T any] struct {
	_      pad
	head   atomix.Uint64 // consumers contend here via CAS
	_      pad
	tail   atomix.Uint64 // producer-owned
	_      pad
	buffer []cell[T]
	mask   uint64
}

type cell[T any] struct {
	_     pad
	valid atomix.Bool
	value T
}

// New creates a new SPMC ring. Capacity rounds up to the next power of 2.
// Panics if capacity < 2.
func New[T any](capacity int) *Ring[T] {
	if capacity < 2 {
		panic("spmc: capacity must be >= 2")
	}
	n := uint64(roundToPow2(capacity))
	return &Ring[T]{
		buffer: make([]cell[T], n),
		mask:   n - 1,
	}
}

// Push adds an item to the queue (single producer only).
// Returns dkit.ErrWouldBlock if the queue is full.
func (q *Ring[T]) Push(item T) error {
	tail := q.tail.LoadRelaxed()
	c := &q.buffer[tail&q.mask]

	if c.valid.LoadAcquire() {
		return dkit.ErrWouldBlock
	}

	c.value = item
	c.valid.StoreRelease(true)
	q.tail.StoreRelease(tail + 1)
	return nil
}

// Pop removes and returns the item at the front of the queue (multiple
// consumers safe). Returns dkit.ErrWouldBlock if the queue is empty.
func (q *Ring[T]) Pop() (T, error) {
	sw := spin.Wait{}
	for {
		head := q.head.LoadAcquire()
		c := &q.buffer[head&q.mask]

		if !c.valid.LoadAcquire() {
			var zero T
			return zero, dkit.ErrWouldBlock
		}

		if q.head.CompareAndSwapAcqRel(head, head+1) {
			val := c.value
			var zero T
			c.value = zero
			c.valid.StoreRelease(false)
			return val, nil
		}
		sw.Once()
	}
}

// Peek returns the item that would currently be popped next, without
// removing it. Because multiple consumers may race ahead of this call,
// the standard peek-then-pop hazards apply: the value observed may already
// be gone by the time the caller acts on it.
func (q *Ring[T]) Peek() (T, error) {
	head := q.head.LoadAcquire()
	c := &q.buffer[head&q.mask]
	if !c.valid.LoadAcquire() {
		var zero T
		return zero, dkit.ErrWouldBlock
	}
	return c.value, nil
}

// Clear empties the queue. Not safe against the producer or concurrent
// consumers; callers must ensure the queue is quiescent.
func (q *Ring[T]) Clear() {
	for {
		if _, err := q.Pop(); err != nil {
			return
		}
	}
}

// Empty reports whether the queue currently holds no items.
func (q *Ring[T]) Empty() bool {
	return q.Size() <= 0
}

// Size reports the current number of items in the queue. Advisory under
// concurrent load.
func (q *Ring[T]) Size() int {
	n := int64(q.tail.LoadAcquire() - q.head.LoadAcquire())
	if n < 0 {
		return 0
	}
	if n > int64(q.mask+1) {
		return int(q.mask + 1)
	}
	return int(n)
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

type pad [64]byte
