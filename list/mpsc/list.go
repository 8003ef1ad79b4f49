// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package mpsc provides an unbounded, multi-producer single-consumer
// linked FIFO queue.
package mpsc

import (
	"sync/atomic"

	"code.hybscloud.com/dkit"
)

type node[T any] struct {
	value T
	next  atomic.Pointer[node[T]]
}

// List is an unbounded multi-producer single-consumer queue.
//
// The list keeps a sentinel node at head; the consumer always reads from
// head.next, so an empty list is simply one whose sentinel has no
// successor yet. Push swings tail to the new node first and links the
// previous tail to it second — there is a transient window between those
// two steps where the new node is the tail but not yet reachable from
// head, which Pop tolerates by treating head.next == nil as "empty for
// now" rather than "permanently empty".
//
// Because there is exactly one consumer, the CAS Pop uses to swing head
// has no contender; the discipline still exists so the consumer and a
// racing producer agree on which node is about to be freed.
//
// Violating the single-consumer discipline (more than one goroutine
// calling Pop) causes data corruption; List does not detect or guard
// against it.
type List[T any] struct {
	head atomic.Pointer[node[T]]
	tail atomic.Pointer[node[T]]
}

// New creates an empty MPSC list.
func New[T any]() *List[T] {
	sentinel := &node[T]{}
	l := &List[T]{}
	l.head.Store(sentinel)
	l.tail.Store(sentinel)
	return l
}

// Push adds an item to the queue (multiple producers safe). Push only
// fails if node allocation fails, which in Go surfaces as an out-of-memory
// panic rather than a returned error; Push itself always returns nil.
func (l *List[T]) Push(item T) error {
	n := &node[T]{value: item}
	oldTail := l.tail.Swap(n)
	oldTail.next.Store(n)
	return nil
}

// Pop removes and returns the item at the front of the queue (single
// consumer only). Returns dkit.ErrWouldBlock if the queue is empty.
func (l *List[T]) Pop() (T, error) {
	head := l.head.Load()
	next := head.next.Load()
	if next == nil {
		var zero T
		return zero, dkit.ErrWouldBlock
	}
	l.head.CompareAndSwap(head, next)
	val := next.value
	var zero T
	next.value = zero
	return val, nil
}

// Peek returns the item at the front of the queue without removing it
// (single consumer only). Returns dkit.ErrWouldBlock if the queue is
// empty.
func (l *List[T]) Peek() (T, error) {
	head := l.head.Load()
	next := head.next.Load()
	if next == nil {
		var zero T
		return zero, dkit.ErrWouldBlock
	}
	return next.value, nil
}

// Clear empties the queue. Not safe against concurrent producers or the
// consumer; callers must ensure the queue is quiescent.
func (l *List[T]) Clear() {
	for {
		if _, err := l.Pop(); err != nil {
			return
		}
	}
}

// Empty reports whether the queue currently holds no items.
func (l *List[T]) Empty() bool {
	return l.head.Load().next.Load() == nil
}

// Size reports the current number of items in the queue by walking the
// list. Advisory under concurrent load, and O(n).
func (l *List[T]) Size() int {
	n := 0
	for cur := l.head.Load().next.Load(); cur != nil; cur = cur.next.Load() {
		n++
	}
	return n
}

var _ dkit.FIFO[int] = (*List[int])(nil)
