// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pubsub

// Adapter is both a Sink[TIN] and a Source[TOUT]: it subscribes upstream
// to receive TIN items, transforms them, and fans the result out to its
// own listeners. The trivial adapter (transform returns ok=false for
// everything) drops all input and emits nothing, while still reporting
// success upstream.
type Adapter[TIN, TOUT any] struct {
	*Sink[TIN]
	*Source[TOUT]
}

// NewAdapter creates an adapter named name. transform maps an incoming
// TIN to an outgoing TOUT; when it reports ok=false the item is dropped
// and nothing is sent downstream, but upstream still sees success.
func NewAdapter[TIN, TOUT any](name string, transform func(TIN) (TOUT, bool)) *Adapter[TIN, TOUT] {
	a := &Adapter[TIN, TOUT]{
		Source: NewSource[TOUT](name),
	}
	a.Sink = NewSink[TIN](name, func(item TIN) bool {
		out, ok := transform(item)
		if !ok {
			return true
		}
		return a.Source.Send(out)
	})
	return a
}
