// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package spmc provides an unbounded, single-producer multi-consumer
// linked FIFO queue.
package spmc

import (
	"sync/atomic"

	"code.hybscloud.com/dkit"
)

type node[T any] struct {
	value T
	next  atomic.Pointer[node[T]]
}

// List is an unbounded single-producer multi-consumer queue.
//
// Unlike the MPSC list, List keeps no sentinel node: head points directly
// at the first real element, or is nil when the queue is empty. Push
// links the new node onto the current tail and then swings tail forward;
// linking uses CompareAndSwap(nil, n) rather than a plain store, because
// the node being linked onto may concurrently be popped out from under
// the producer.
//
// A popped node's next field is stamped with a private, non-nil
// tombstone value before the node is dropped. Tombstoning matters only
// when the popped node was also the tail: it prevents the producer's
// in-flight link CAS on that node from silently succeeding and attaching
// a new node to memory that is no longer reachable from head. When that
// race is lost, Push still advances tail to the orphaned node; the next
// Push links onto it normally, so the race costs at most one dropped
// element rather than queue corruption.
//
// Violating the single-producer discipline (more than one goroutine
// calling Push) causes data corruption; List does not detect or guard
// against it.
type List[T any] struct {
	head      atomic.Pointer[node[T]]
	tail      atomic.Pointer[node[T]]
	tombstone *node[T]
}

// New creates an empty SPMC list.
func New[T any]() *List[T] {
	return &List[T]{tombstone: &node[T]{}}
}

// Push adds an item to the queue (single producer only). Push itself
// always returns nil; allocation failure surfaces as a panic, per Go
// convention.
func (l *List[T]) Push(item T) error {
	n := &node[T]{value: item}

	if !l.head.CompareAndSwap(nil, n) {
		tail := l.tail.Load()
		tail.next.CompareAndSwap(nil, n)
	}

	for {
		oldTail := l.tail.Load()
		if l.tail.CompareAndSwap(oldTail, n) {
			break
		}
	}
	return nil
}

// Pop removes and returns the item at the front of the queue (multiple
// consumers safe). Returns dkit.ErrWouldBlock if the queue is empty.
func (l *List[T]) Pop() (T, error) {
	for {
		oldHead := l.head.Load()
		if oldHead == nil {
			var zero T
			return zero, dkit.ErrWouldBlock
		}
		if l.head.CompareAndSwap(oldHead, oldHead.next.Load()) {
			val := oldHead.value
			oldHead.next.CompareAndSwap(nil, l.tombstone)
			return val, nil
		}
	}
}

// Peek returns the item at the front of the queue without removing it.
// In a multi-consumer queue a racing Pop may remove the value observed
// here before the caller acts on it; Peek is only reliable when the
// queue is known to be stable.
func (l *List[T]) Peek() (T, error) {
	h := l.head.Load()
	if h == nil {
		var zero T
		return zero, dkit.ErrWouldBlock
	}
	return h.value, nil
}

// Clear empties the queue. Not safe against the producer or concurrent
// consumers; callers must ensure the queue is quiescent.
func (l *List[T]) Clear() {
	for {
		if _, err := l.Pop(); err != nil {
			return
		}
	}
}

// Empty reports whether the queue currently holds no items.
func (l *List[T]) Empty() bool {
	return l.head.Load() == nil
}

// Size reports the current number of items in the queue by walking the
// list. Advisory under concurrent load, and O(n).
func (l *List[T]) Size() int {
	n := 0
	for cur := l.head.Load(); cur != nil; cur = cur.next.Load() {
		n++
	}
	return n
}

var _ dkit.FIFO[int] = (*List[int])(nil)
