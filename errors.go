// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dkit

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For Push: the queue is full (backpressure).
// For Pop/Peek: the queue is empty (no data available).
//
// ErrWouldBlock is a control flow signal, not a failure. The caller should
// retry the operation later, typically with backoff, rather than
// propagating the error.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrAllocation reports that a structural allocation failed while building
// the shape a queue or trie needs to represent an item: a linked-list node,
// or a trie branch/leaf. Unlike ErrWouldBlock this is fatal — the caller
// cannot retry their way out of it, because the invariant the structure
// relies on (every reachable key has a path to a leaf) has been broken.
// No operation in this module returns it: a failed allocation in Go
// panics instead.
var ErrAllocation = errors.New("dkit: structural allocation failure")

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal rather than a
// failure. Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition:
// nil or ErrWouldBlock. Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
