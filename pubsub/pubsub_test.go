// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pubsub_test

import (
	"sync"
	"testing"

	"code.hybscloud.com/dkit/pubsub"
)

func TestSendFanOut(t *testing.T) {
	src := pubsub.NewSource[int]("prices")

	var mu sync.Mutex
	var a, b []int
	sinkA := pubsub.NewSink[int]("a", func(v int) bool {
		mu.Lock()
		a = append(a, v)
		mu.Unlock()
		return true
	})
	sinkB := pubsub.NewSink[int]("b", func(v int) bool {
		mu.Lock()
		b = append(b, v)
		mu.Unlock()
		return true
	})

	if !src.AddListener(sinkA) {
		t.Fatalf("AddListener(sinkA): want true")
	}
	if !src.AddListener(sinkB) {
		t.Fatalf("AddListener(sinkB): want true")
	}
	if src.AddListener(sinkA) {
		t.Fatalf("AddListener(sinkA) duplicate: want false")
	}

	for i := 0; i < 5; i++ {
		if !src.Send(i) {
			t.Fatalf("Send(%d): want true", i)
		}
	}

	if len(a) != 5 || len(b) != 5 {
		t.Fatalf("fan-out counts: a=%d b=%d, want 5/5", len(a), len(b))
	}
}

func TestSendOfflineIsNoOp(t *testing.T) {
	src := pubsub.NewSource[int]("s")
	delivered := 0
	sink := pubsub.NewSink[int]("sink", func(int) bool {
		delivered++
		return true
	})
	src.AddListener(sink)

	src.SetOnline(false)
	if !src.Send(1) {
		t.Fatalf("Send while offline: want true (no-op success)")
	}
	if delivered != 0 {
		t.Fatalf("delivered: got %d, want 0", delivered)
	}

	src.SetOnline(true)
	src.Send(2)
	if delivered != 1 {
		t.Fatalf("delivered after online: got %d, want 1", delivered)
	}
}

func TestSendReportsFailureFromAnySink(t *testing.T) {
	src := pubsub.NewSource[int]("s")
	src.AddListener(pubsub.NewSink[int]("ok", func(int) bool { return true }))
	src.AddListener(pubsub.NewSink[int]("bad", func(int) bool { return false }))

	if src.Send(1) {
		t.Fatalf("Send: want false when a sink reports failure")
	}
}

func TestRemoveListenerIsMutual(t *testing.T) {
	src := pubsub.NewSource[int]("s")
	sink := pubsub.NewSink[int]("sink", nil)
	src.AddListener(sink)

	if !src.RemoveListener(sink) {
		t.Fatalf("RemoveListener: want true")
	}
	if src.RemoveListener(sink) {
		t.Fatalf("RemoveListener twice: want false")
	}

	delivered := false
	sink.RecvFunc = func(int) bool { delivered = true; return true }
	src.Send(1)
	if delivered {
		t.Fatalf("Send after removal: want no delivery")
	}
}

func TestAdapterTransformsAndForwards(t *testing.T) {
	upstream := pubsub.NewSource[int]("ints")
	adapter := pubsub.NewAdapter[int, string]("itoa", func(v int) (string, bool) {
		if v < 0 {
			return "", false
		}
		return "n", true
	})
	upstream.AddListener(adapter.Sink)

	var out []string
	downstream := pubsub.NewSink[string]("strings", func(v string) bool {
		out = append(out, v)
		return true
	})
	adapter.Source.AddListener(downstream)

	upstream.Send(1)
	upstream.Send(-1)
	upstream.Send(2)

	if len(out) != 2 {
		t.Fatalf("downstream deliveries: got %d, want 2 (negative dropped)", len(out))
	}
}
