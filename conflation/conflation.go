// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package conflation provides a latest-value-wins queue: a trie holds
// the current value for each key, while a FIFO of key handles preserves
// first-arrival ordering. Pushing the same key twice before it is popped
// collapses to one queue entry carrying whatever value was written last.
package conflation

import (
	"code.hybscloud.com/dkit"
	"code.hybscloud.com/dkit/pool"
	"code.hybscloud.com/dkit/trie"
)

// Handle is a reusable, fixed-width key buffer cycled through the
// conflation queue's key pool.
type Handle struct {
	bytes []byte
}

// Queue conflates a FIFO of key handles with a Trie of values: a key is
// only ever resident in the handle FIFO once while the trie holds a
// value for it. The FIFO and pool disciplines are supplied by the
// caller (any spsc/mpsc/spmc ring or list satisfying dkit.FIFO), so a
// Queue inherits whatever concurrency discipline its backing queues do.
type Queue[T any] struct {
	keyOf   func(T) []byte
	trie    *trie.Trie[T]
	handles dkit.FIFO[*Handle]
	pool    *pool.Pool[*Handle]
}

// New creates a conflation queue. ks is the trie's key width; keyOf
// extracts a ks-byte key from a value; handles is the FIFO of key
// handles backing the queue itself (its discipline and capacity set the
// queue's discipline and capacity); poolBacking is a separate FIFO used
// to recycle key handles (its own capacity caps how many handles are
// pooled before new ones are allocated).
func New[T any](ks trie.KeySize, keyOf func(T) []byte, handles dkit.FIFO[*Handle], poolBacking dkit.FIFO[*Handle]) *Queue[T] {
	p := pool.New[*Handle](
		poolBacking,
		func() *Handle { return &Handle{bytes: make([]byte, ks)} },
		nil,
	)
	return &Queue[T]{
		keyOf:   keyOf,
		trie:    trie.New[T](ks),
		handles: handles,
		pool:    p,
	}
}

// Push upserts item into the trie under its key. If the key was not
// already present, a handle is taken from the pool, stamped with the
// key bytes, and enqueued so a future Pop will surface this key exactly
// once. If the key was already present, the trie now holds the newer
// value and no second handle is enqueued — the pending Pop will observe
// this value instead of whatever was there before.
func (q *Queue[T]) Push(item T) error {
	key := q.keyOf(item)
	if wasPresent := q.trie.Upsert(key, item); wasPresent {
		return nil
	}

	h := q.pool.Take()
	copy(h.bytes, key)
	if err := q.handles.Push(h); err != nil {
		q.pool.Recycle(h)
		return err
	}
	return nil
}

// Pop dequeues the next key handle and returns the value currently
// stored for that key in the trie — which may have been overwritten by
// a later Push since the handle was enqueued — then removes the trie
// entry and recycles the handle.
func (q *Queue[T]) Pop() (T, error) {
	var zero T
	h, err := q.handles.Pop()
	if err != nil {
		return zero, err
	}
	v, _ := q.trie.Remove(h.bytes)
	q.pool.Recycle(h)
	return v, nil
}

// Peek returns the value currently stored for the key at the front of
// the handle FIFO, without dequeuing it. The usual peek-vs-pop hazards
// apply when the backing FIFO has multiple consumers.
func (q *Queue[T]) Peek() (T, error) {
	var zero T
	h, err := q.handles.Peek()
	if err != nil {
		return zero, err
	}
	v, ok := q.trie.Get(h.bytes)
	if !ok {
		return zero, dkit.ErrWouldBlock
	}
	return v, nil
}

// Clear drains the handle FIFO, recycling each handle, and tears down
// the trie. Not safe against concurrent Push/Pop.
func (q *Queue[T]) Clear() {
	for {
		h, err := q.handles.Pop()
		if err != nil {
			break
		}
		q.pool.Recycle(h)
	}
	q.trie.Reset()
}

// Empty reports whether the handle FIFO currently holds no keys.
func (q *Queue[T]) Empty() bool {
	return q.handles.Empty()
}

// Size returns the handle FIFO's size — the number of distinct keys
// currently pending — not the number of values resident in the trie.
func (q *Queue[T]) Size() int {
	return q.handles.Size()
}
