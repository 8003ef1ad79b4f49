// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dkit

// FIFO is the abstract contract every queue in this module satisfies,
// regardless of whether it is bounded or unbounded, or which
// producer/consumer discipline it enforces.
//
// Size and Empty are advisory snapshots under concurrent load: by the time
// a caller observes the result, another goroutine may have already pushed
// or popped. Peek may return a value that a concurrent consumer pops before
// the caller acts on it when more than one consumer is allowed; callers
// relying on peek-then-pop atomicity must arrange for a quiescent queue.
type FIFO[T any] interface {
	// Push adds an item to the queue. It returns ErrWouldBlock if the
	// queue is bounded and full.
	Push(item T) error
	// Pop removes and returns the item at the front of the queue. It
	// returns ErrWouldBlock if the queue is empty.
	Pop() (T, error)
	// Peek returns the item at the front of the queue without removing
	// it. It returns ErrWouldBlock if the queue is empty.
	Peek() (T, error)
	// Clear empties the queue. Clear is not safe against concurrent
	// Push/Pop/Peek; callers must ensure the queue is quiescent.
	Clear()
	// Empty reports whether the queue currently holds no items.
	Empty() bool
	// Size reports the current number of items in the queue.
	Size() int
}
