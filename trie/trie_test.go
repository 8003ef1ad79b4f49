// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package trie_test

import (
	"sync"
	"testing"

	"code.hybscloud.com/dkit/trie"
)

func TestTrieKS2PutGet(t *testing.T) {
	tr := trie.New[string](trie.KS2)
	for i := 0; i < 65536; i += 997 {
		k := trie.Uint16Key(uint16(i))
		tr.Put(k, "v")
		v, ok := tr.Get(k)
		if !ok || v != "v" {
			t.Fatalf("Get(%d): got (%q, %v)", i, v, ok)
		}
	}
}

// TestTrieInsertGetSize mirrors the spec's scenario: every 16-bit key
// from 0 to 65535 is inserted, then every key is retrieved, then Size is
// checked against the exact count.
func TestTrieInsertGetSize(t *testing.T) {
	tr := trie.New[int](trie.KS2)
	for i := 0; i < 65536; i++ {
		tr.Put(trie.Uint16Key(uint16(i)), i)
	}
	if tr.Size() != 65536 {
		t.Fatalf("Size: got %d, want 65536", tr.Size())
	}
	for i := 0; i < 65536; i++ {
		v, ok := tr.Get(trie.Uint16Key(uint16(i)))
		if !ok || v != i {
			t.Fatalf("Get(%d): got (%d, %v)", i, v, ok)
		}
	}
}

func TestTrieKS4(t *testing.T) {
	tr := trie.New[int](trie.KS4)
	keys := []uint32{0, 1, 255, 256, 65535, 65536, 1<<24 + 7, 0xFFFFFFFF}
	for _, k := range keys {
		tr.Put(trie.Uint32Key(k), int(k))
	}
	for _, k := range keys {
		v, ok := tr.Get(trie.Uint32Key(k))
		if !ok || v != int(k) {
			t.Fatalf("Get(%d): got (%d, %v)", k, v, ok)
		}
	}
	if tr.Size() != len(keys) {
		t.Fatalf("Size: got %d, want %d", tr.Size(), len(keys))
	}
}

func TestTrieKS8(t *testing.T) {
	tr := trie.New[int](trie.KS8)
	keys := []uint64{0, 1, 1 << 40, 1<<63 - 1, 0xFFFFFFFFFFFFFFFF}
	for _, k := range keys {
		tr.Put(trie.Uint64Key(k), int(k))
	}
	for _, k := range keys {
		v, ok := tr.Get(trie.Uint64Key(k))
		if !ok || v != int(k) {
			t.Fatalf("Get(%d): got (%d, %v)", k, v, ok)
		}
	}
}

func TestTrieKS16(t *testing.T) {
	tr := trie.New[string](trie.KS16)
	key := make([]byte, 16)
	for i := range key {
		key[i] = byte(i * 17)
	}
	tr.Put(key, "hello")
	v, ok := tr.Get(key)
	if !ok || v != "hello" {
		t.Fatalf("Get: got (%q, %v)", v, ok)
	}
	other := make([]byte, 16)
	copy(other, key)
	other[15]++
	if _, ok := tr.Get(other); ok {
		t.Fatalf("Get on unrelated key: want miss")
	}
}

func TestTrieUpsertRemove(t *testing.T) {
	tr := trie.New[int](trie.KS2)
	k := trie.Uint16Key(42)

	if wasPresent := tr.Upsert(k, 1); wasPresent {
		t.Fatalf("Upsert on fresh key: got wasPresent=true")
	}
	if wasPresent := tr.Upsert(k, 2); !wasPresent {
		t.Fatalf("Upsert on existing key: got wasPresent=false")
	}
	v, ok := tr.Get(k)
	if !ok || v != 2 {
		t.Fatalf("Get after upsert: got (%d, %v)", v, ok)
	}

	removed, ok := tr.Remove(k)
	if !ok || removed != 2 {
		t.Fatalf("Remove: got (%d, %v)", removed, ok)
	}
	if _, ok := tr.Get(k); ok {
		t.Fatalf("Get after Remove: want miss")
	}
	if !tr.Empty() {
		t.Fatalf("Empty: want true after removing only entry")
	}
}

func TestTrieGetMissingPath(t *testing.T) {
	tr := trie.New[int](trie.KS4)
	if _, ok := tr.Get(trie.Uint32Key(12345)); ok {
		t.Fatalf("Get on never-built path: want miss")
	}
	if !tr.Empty() {
		t.Fatalf("Empty: want true on fresh trie")
	}
}

func TestTrieConcurrentInsert(t *testing.T) {
	tr := trie.New[int](trie.KS4)
	const n = 20_000
	var wg sync.WaitGroup
	wg.Add(4)
	for w := 0; w < 4; w++ {
		go func(base int) {
			defer wg.Done()
			for i := 0; i < n/4; i++ {
				k := base + i
				tr.Put(trie.Uint32Key(uint32(k)), k)
			}
		}(w * (n / 4))
	}
	wg.Wait()

	if tr.Size() != n {
		t.Fatalf("Size: got %d, want %d", tr.Size(), n)
	}
	for i := 0; i < n; i++ {
		v, ok := tr.Get(trie.Uint32Key(uint32(i)))
		if !ok || v != i {
			t.Fatalf("Get(%d): got (%d, %v)", i, v, ok)
		}
	}
}

func TestTrieApply(t *testing.T) {
	tr := trie.New[int](trie.KS2)
	want := map[uint16]int{1: 10, 2: 20, 3: 30}
	for k, v := range want {
		tr.Put(trie.Uint16Key(k), v)
	}

	got := make(map[uint16]int)
	tr.Apply(func(key []byte, v int) bool {
		k := uint16(key[0]) | uint16(key[1])<<8
		got[k] = v
		return true
	})

	if len(got) != len(want) {
		t.Fatalf("Apply visited %d entries, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("Apply entry %d: got %d, want %d", k, got[k], v)
		}
	}
}
