// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package mpsc provides a bounded, multi-producer single-consumer ring
// buffer.
package mpsc

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/dkit"
)

// Ring is a multi-producer single-consumer bounded queue.
//
// Producers reserve a slot by fetch-adding tail; the pre-increment value
// modulo capacity names their cell. A producer that lands on a cell whose
// valid bit is already set has run into the consumer's tail: it backs the
// counter out with a matching fetch-add of -1 and reports the queue full.
// Producers linearize on the fetch-add of tail, so the delivery order the
// single consumer observes matches that linearization.
//
// Violating the single-consumer discipline (more than one goroutine
// calling Pop) causes data corruption; Ring does not detect or guard
// against it.
type Ring[T any] struct {
	_      pad
	head   atomix.Uint64 // consumer-owned
	_      pad
	tail   atomix.Uint64 // producers contend here via fetch-add
	_      pad
	buffer []cell[T]
	mask   uint64
}

type cell[T any] struct {
	_     pad
	valid atomix.Bool
	value T
}

// New creates a new MPSC ring. Capacity rounds up to the next power of 2.
// Panics if capacity < 2.
func New[T any](capacity int) *Ring[T] {
	if capacity < 2 {
		panic("mpsc: capacity must be >= 2")
	}
	n := uint64(roundToPow2(capacity))
	return &Ring[T]{
		buffer: make([]cell[T], n),
		mask:   n - 1,
	}
}

// Push adds an item to the queue (multiple producers safe).
// Returns dkit.ErrWouldBlock if the queue is full.
func (q *Ring[T]) Push(item T) error {
	tail := q.tail.AddAcqRel(1) - 1
	c := &q.buffer[tail&q.mask]

	if c.valid.LoadAcquire() {
		// Slot still holds an unconsumed value: back the reservation out.
		// A racing consumer may drain the slot between this check and the
		// back-out; that only means a later producer finds the slot free.
		q.tail.AddAcqRel(^uint64(0)) // fetch_sub(tail, 1)
		return dkit.ErrWouldBlock
	}

	c.value = item
	c.valid.StoreRelease(true)
	return nil
}

// Pop removes and returns the item at the front of the queue (single
// consumer only). Returns dkit.ErrWouldBlock if the queue is empty.
func (q *Ring[T]) Pop() (T, error) {
	head := q.head.LoadRelaxed()
	c := &q.buffer[head&q.mask]

	if !c.valid.LoadAcquire() {
		var zero T
		return zero, dkit.ErrWouldBlock
	}

	val := c.value
	var zero T
	c.value = zero
	c.valid.StoreRelease(false)
	q.head.StoreRelease(head + 1)
	return val, nil
}

// Peek returns the item at the front of the queue without removing it
// (single consumer only). Returns dkit.ErrWouldBlock if the queue is
// empty.
func (q *Ring[T]) Peek() (T, error) {
	head := q.head.LoadRelaxed()
	c := &q.buffer[head&q.mask]
	if !c.valid.LoadAcquire() {
		var zero T
		return zero, dkit.ErrWouldBlock
	}
	return c.value, nil
}

// Clear empties the queue. Not safe against concurrent producers or the
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
	return q.Size() <= 0
}

// Size reports the current number of items in the queue. Advisory under
// concurrent load: tail may transiently overshoot head during a
// producer's back-out window.
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
