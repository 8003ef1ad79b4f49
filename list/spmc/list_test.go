// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spmc_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"code.hybscloud.com/dkit"
	"code.hybscloud.com/dkit/list/spmc"
)

func TestListBasic(t *testing.T) {
	l := spmc.New[int]()
	if !l.Empty() {
		t.Fatalf("Empty: want true on new list")
	}
	if _, err := l.Pop(); !errors.Is(err, dkit.ErrWouldBlock) {
		t.Fatalf("Pop on empty: got %v, want ErrWouldBlock", err)
	}
	for i := 0; i < 5; i++ {
		if err := l.Push(i); err != nil {
			t.Fatalf("Push(%d): %v", i, err)
		}
	}
	if l.Size() != 5 {
		t.Fatalf("Size: got %d, want 5", l.Size())
	}
	for i := 0; i < 5; i++ {
		v, err := l.Pop()
		if err != nil || v != i {
			t.Fatalf("Pop(%d): got (%d, %v)", i, v, err)
		}
	}
	if !l.Empty() {
		t.Fatalf("Empty: want true after draining")
	}
}

// TestListInterleavedPushPop exercises the push-into-concurrently-emptied
// tail race: a single producer repeatedly pushes one item at a time while
// consumers race to drain each one before the next arrives, keeping the
// list oscillating between one item and empty.
func TestListInterleavedPushPop(t *testing.T) {
	const total = 50_000
	const consumers = 4

	l := spmc.New[int]()

	go func() {
		for i := 0; i < total; i++ {
			for l.Push(i) != nil {
			}
		}
	}()

	seen := make([]int32, total)
	var drained int64
	var wg sync.WaitGroup
	wg.Add(consumers)
	for c := 0; c < consumers; c++ {
		go func() {
			defer wg.Done()
			for atomic.LoadInt64(&drained) < total {
				v, err := l.Pop()
				if err != nil {
					continue
				}
				if atomic.AddInt32(&seen[v], 1) != 1 {
					panic("duplicate delivery")
				}
				atomic.AddInt64(&drained, 1)
			}
		}()
	}
	wg.Wait()

	for i, n := range seen {
		if n != 1 {
			t.Fatalf("value %d delivered %d times, want 1", i, n)
		}
	}
}
