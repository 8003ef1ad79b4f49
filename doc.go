// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package dkit provides lock-free concurrent data structures and a typed
// pub/sub message-passing substrate for building low-latency systems.
//
// The toolkit is organized as a small family of subpackages, each
// implementing one concern with atomic operations on the hot path (the
// trie's per-cell mutex and pubsub's subscriber-set spinlock are the
// exceptions):
//
//   - ring/spsc, ring/mpsc, ring/spmc: bounded FIFO rings parameterized by
//     producer/consumer concurrency discipline.
//   - list/mpsc, list/spmc: unbounded linked FIFO queues for the same
//     disciplines, used when callers cannot size a ring ahead of time.
//   - pool: an object pool layered over any of the above queues, giving
//     amortized-constant allocation/recycling for hot objects.
//   - trie: a fixed-depth, byte-keyed concurrent map with lazy branch
//     construction by CAS; each value cell is guarded by its own mutex.
//   - conflation: a queue that layers a trie over a FIFO of key handles so
//     that duplicate keys in the pipeline collapse to the latest value
//     while preserving first-arrival ordering.
//   - pubsub: a source/sink/adapter graph for composing the primitives
//     above into data pipelines.
//
// This root package holds only what is shared across all of them: the
// abstract FIFO contract and the error values used to report backpressure
// and allocation failure.
//
// # Thread Safety
//
// Every data structure in this module documents the producer/consumer
// discipline it was built for (SPSC, MPSC, SPMC) in its own package. None
// of the queues block: operations either succeed immediately or return
// [ErrWouldBlock] for the caller to retry, typically with a short backoff.
//
// # Error Handling
//
// Queue operations report backpressure and emptiness through
// [ErrWouldBlock], following the same control-flow-not-failure philosophy
// used across the ecosystem this module draws from. Structural allocation
// failure (a trie branch or linked node that could not be created) is a
// distinct, fatal condition; in Go it surfaces as a runtime panic, and no
// operation in this module returns [ErrAllocation].
package dkit
