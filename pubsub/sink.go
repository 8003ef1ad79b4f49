// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pubsub provides a synchronous publish/subscribe graph: sources
// fan an item out to every registered sink on the producing goroutine,
// and sinks and sources keep mutual back-references so either side can
// tear down a registration cleanly.
package pubsub

import (
	"code.hybscloud.com/atomix"
)

// Sink consumes items of type T delivered by any Source[T] it is
// registered with. RecvFunc, if set, is invoked for every delivered
// item; a nil RecvFunc makes Recv a no-op that reports success, i.e. it
// silently drops everything delivered to it.
type Sink[T any] struct {
	Name     string
	RecvFunc func(item T) bool

	online  atomix.Bool
	mu      spinlock
	sources map[*Source[T]]struct{}
}

// NewSink creates an online sink with no publishers.
func NewSink[T any](name string, recv func(T) bool) *Sink[T] {
	s := &Sink[T]{
		Name:     name,
		RecvFunc: recv,
		sources:  make(map[*Source[T]]struct{}),
	}
	s.online.StoreRelease(true)
	return s
}

// Recv is called by a registered Source on delivery. It dispatches to
// RecvFunc if one is set, otherwise drops the item and reports success.
func (s *Sink[T]) Recv(item T) bool {
	if !s.online.LoadAcquire() {
		return true
	}
	if s.RecvFunc != nil {
		return s.RecvFunc(item)
	}
	return true
}

// IsOnline reports whether this sink currently processes delivered
// items; an offline sink's Recv is a no-op that still reports success.
func (s *Sink[T]) IsOnline() bool {
	return s.online.LoadAcquire()
}

// SetOnline toggles delivery processing without touching registrations.
func (s *Sink[T]) SetOnline(online bool) {
	s.online.StoreRelease(online)
}

// AddToPublishers mutually registers src as a publisher of this sink.
// Reports whether the registration was new on both sides.
func (s *Sink[T]) AddToPublishers(src *Source[T]) bool {
	if src == nil {
		return false
	}
	if !src.addSink(s) {
		return false
	}
	return s.addSource(src)
}

// RemoveFromPublishers mutually deregisters src. Reports whether src was
// a registered publisher.
func (s *Sink[T]) RemoveFromPublishers(src *Source[T]) bool {
	if !s.isSource(src) {
		return false
	}
	src.removeSink(s)
	s.removeSource(src)
	return true
}

// RemoveAllPublishers deregisters every publisher of this sink, on both
// sides, leaving no dangling back-references.
func (s *Sink[T]) RemoveAllPublishers() {
	s.mu.Lock()
	sources := make([]*Source[T], 0, len(s.sources))
	for src := range s.sources {
		sources = append(sources, src)
	}
	s.sources = make(map[*Source[T]]struct{})
	s.mu.Unlock()

	for _, src := range sources {
		src.removeSink(s)
	}
}

func (s *Sink[T]) addSource(src *Source[T]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sources[src]; exists {
		return false
	}
	s.sources[src] = struct{}{}
	return true
}

func (s *Sink[T]) removeSource(src *Source[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sources, src)
}

func (s *Sink[T]) isSource(src *Source[T]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sources[src]
	return ok
}
