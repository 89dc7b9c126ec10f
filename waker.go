// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpmc

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
)

// Waker is an opaque handle that requests a suspended consumer be polled
// again. Wake must be safe to call from any goroutine and must tolerate
// spurious invocations: a woken consumer re-checks the queue and may find
// nothing.
type Waker interface {
	Wake()
}

// WakerFunc adapts a plain function to the Waker interface.
type WakerFunc func()

// Wake calls f.
func (f WakerFunc) Wake() { f() }

// AtomicWaker is a single-slot waker register.
//
// At most one waker is pending. Register replaces any previous
// registration — last registered wins, matching the single-consumer await
// pattern; concurrent registrations from multiple consumers racing on the
// same slot are unsupported. Wake takes the pending waker, so each
// registration fires at most once, from any number of waking goroutines.
type AtomicWaker struct {
	w atomic.Pointer[Waker]
}

// Register stores w as the pending waker, replacing any previous one.
// The caller must re-check its readiness condition after registering: a
// wake that fired before the registration landed has already been consumed
// and will not fire again.
func (a *AtomicWaker) Register(w Waker) {
	a.w.Store(&w)
}

// Wake takes and invokes the pending waker, if any.
func (a *AtomicWaker) Wake() {
	if p := a.w.Swap(nil); p != nil {
		(*p).Wake()
	}
}

// Clear discards the pending waker without invoking it.
func (a *AtomicWaker) Clear() {
	a.w.Store(nil)
}

// wakerSlot is one asynchronous consumer's entry in a channel's waker
// list. A slot is prepended once, at wrapper construction, and marked dead
// when the wrapper closes; the list itself is released at channel teardown.
type wakerSlot struct {
	AtomicWaker
	next *wakerSlot
	dead atomix.Uint32
}

// retire marks the slot dead and discards its pending waker. A dead slot
// stays linked but is skipped by wakeAll.
func (s *wakerSlot) retire() {
	s.dead.Add(1)
	s.Clear()
}

// wakerList is a lock-free prepend-only list of waker slots, one per live
// asynchronous consumer of the channel.
type wakerList struct {
	head atomic.Pointer[wakerSlot]
}

// register prepends and returns a fresh slot.
func (l *wakerList) register() *wakerSlot {
	s := new(wakerSlot)
	for {
		head := l.head.Load()
		s.next = head
		if l.head.CompareAndSwap(head, s) {
			return s
		}
	}
}

// wakeAll fires the pending waker of every live slot. Slots with no
// pending waker are a cheap no-op.
func (l *wakerList) wakeAll() {
	for s := l.head.Load(); s != nil; s = s.next {
		if s.dead.Load() != 0 {
			continue
		}
		s.Wake()
	}
}
