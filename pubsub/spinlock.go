// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pubsub

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// spinlock is a non-blocking lock over the subscriber sets: registration
// holds it only for the duration of a map operation, while Source.Send
// holds it for the whole fan-out to every sink.
type spinlock struct {
	locked atomix.Bool
}

func (l *spinlock) Lock() {
	sw := spin.Wait{}
	for !l.locked.CompareAndSwapAcqRel(false, true) {
		sw.Once()
	}
}

func (l *spinlock) Unlock() {
	l.locked.StoreRelease(false)
}
