// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pubsub

import "code.hybscloud.com/atomix"

// Source fans items of type T out to every registered Sink[T],
// synchronously on the caller's goroutine.
type Source[T any] struct {
	Name string

	online atomix.Bool
	mu     spinlock
	sinks  map[*Sink[T]]struct{}
}

// NewSource creates an online source with no listeners.
func NewSource[T any](name string) *Source[T] {
	src := &Source[T]{
		Name:  name,
		sinks: make(map[*Sink[T]]struct{}),
	}
	src.online.StoreRelease(true)
	return src
}

// IsOnline reports whether Send currently delivers to listeners.
func (src *Source[T]) IsOnline() bool {
	return src.online.LoadAcquire()
}

// SetOnline toggles delivery without touching registrations; an offline
// source's Send is a no-op that reports success.
func (src *Source[T]) SetOnline(online bool) {
	src.online.StoreRelease(online)
}

// AddListener mutually registers sink as a listener of this source.
// Duplicate registration is a no-op that reports false.
func (src *Source[T]) AddListener(sink *Sink[T]) bool {
	if sink == nil {
		return false
	}
	if !sink.addSource(src) {
		return false
	}
	return src.addSink(sink)
}

// RemoveListener mutually deregisters sink. Reports whether sink was a
// registered listener.
func (src *Source[T]) RemoveListener(sink *Sink[T]) bool {
	if !src.isSink(sink) {
		return false
	}
	sink.removeSource(src)
	src.removeSink(sink)
	return true
}

// RemoveAllListeners deregisters every listener of this source, on both
// sides, leaving no dangling back-references.
func (src *Source[T]) RemoveAllListeners() {
	src.mu.Lock()
	sinks := make([]*Sink[T], 0, len(src.sinks))
	for s := range src.sinks {
		sinks = append(sinks, s)
	}
	src.sinks = make(map[*Sink[T]]struct{})
	src.mu.Unlock()

	for _, s := range sinks {
		s.removeSource(src)
	}
}

// Send delivers item to every registered sink, one at a time, holding
// the subscriber-set spinlock for the duration of the fan-out — a sink
// cannot (de)register while a Send is in flight. Reports true only if
// every sink's Recv reported true; an offline source reports true
// without delivering to anyone. Send is not reentrant: a sink whose Recv
// calls Send on the same source spins forever on the held lock.
func (src *Source[T]) Send(item T) bool {
	if !src.online.LoadAcquire() {
		return true
	}

	src.mu.Lock()
	defer src.mu.Unlock()

	ok := true
	for s := range src.sinks {
		if !s.Recv(item) {
			ok = false
		}
	}
	return ok
}

func (src *Source[T]) addSink(sink *Sink[T]) bool {
	src.mu.Lock()
	defer src.mu.Unlock()
	if _, exists := src.sinks[sink]; exists {
		return false
	}
	src.sinks[sink] = struct{}{}
	return true
}

func (src *Source[T]) removeSink(sink *Sink[T]) {
	src.mu.Lock()
	defer src.mu.Unlock()
	delete(src.sinks, sink)
}

func (src *Source[T]) isSink(sink *Sink[T]) bool {
	src.mu.Lock()
	defer src.mu.Unlock()
	_, ok := src.sinks[sink]
	return ok
}
