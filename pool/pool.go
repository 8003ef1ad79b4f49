// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pool provides a generic object pool built on top of any of the
// dkit FIFO disciplines, trading the usual create/use/destroy cycle for
// amortized reuse.
package pool

import "code.hybscloud.com/dkit"

// Pool recycles values of type T through a backing dkit.FIFO[T]. The
// backing queue's own discipline (spsc, mpsc, or spmc ring or list)
// determines which goroutines may call Take and Recycle concurrently;
// Pool adds no synchronization of its own beyond what the backing queue
// already provides.
type Pool[T any] struct {
	queue   dkit.FIFO[T]
	factory func() T
	destroy func(T)
}

// New creates a pool backed by queue. factory produces a fresh value
// whenever Take finds the queue empty; it must never be nil. destroy, if
// non-nil, is called on a value that Recycle cannot fit back into the
// queue because it is full; it is also called, during Close, on every
// value still resident in the queue.
func New[T any](queue dkit.FIFO[T], factory func() T, destroy func(T)) *Pool[T] {
	if factory == nil {
		panic("pool: factory must not be nil")
	}
	return &Pool[T]{queue: queue, factory: factory, destroy: destroy}
}

// Take returns an item from the pool, or a freshly constructed one if the
// pool is currently empty.
func (p *Pool[T]) Take() T {
	if v, err := p.queue.Pop(); err == nil {
		return v
	}
	return p.factory()
}

// Recycle returns an item to the pool for future reuse. If the backing
// queue is full, the item is destroyed instead via the pool's destroy
// callback, if one was supplied.
func (p *Pool[T]) Recycle(item T) {
	if err := p.queue.Push(item); err != nil {
		if p.destroy != nil {
			p.destroy(item)
		}
	}
}

// Size reports the number of items currently resident in the pool,
// available for Take without constructing a new value.
func (p *Pool[T]) Size() int {
	return p.queue.Size()
}

// Empty reports whether the pool currently holds no resident items.
func (p *Pool[T]) Empty() bool {
	return p.queue.Empty()
}

// Close drains the pool, destroying every resident item via the pool's
// destroy callback, if one was supplied. Callers must ensure no
// concurrent Take or Recycle is in flight.
func (p *Pool[T]) Close() {
	for {
		v, err := p.queue.Pop()
		if err != nil {
			return
		}
		if p.destroy != nil {
			p.destroy(v)
		}
	}
}
