// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpmc

import (
	"context"
	"iter"
)

// AsyncReceiver wraps a Receiver with a waker slot, turning "no data yet"
// into a suspension point instead of a busy return.
//
// The wrapper is single-consumer: one task polls and registers at a time.
// For multiple concurrent consumers, Clone independent wrappers — each
// holds its own Receiver clone and waker slot and is woken independently.
// Synchronous and asynchronous consumers may be mixed freely on the same
// channel.
type AsyncReceiver[T any] struct {
	rx   *Receiver[T]
	slot *wakerSlot
}

// NewAsync creates a channel and returns a Sender and an AsyncReceiver.
// The Sender is identical to the synchronous one.
func NewAsync[T any]() (*Sender[T], *AsyncReceiver[T]) {
	c := newCore[T]()
	return &Sender[T]{c: c}, &AsyncReceiver[T]{
		rx:   &Receiver[T]{c: c},
		slot: c.wakers.register(),
	}
}

// Async returns an AsyncReceiver over a clone of r. The original handle
// remains usable for synchronous receives.
func Async[T any](r *Receiver[T]) *AsyncReceiver[T] {
	rx := r.Clone()
	return &AsyncReceiver[T]{rx: rx, slot: rx.c.wakers.register()}
}

// Poll attempts to produce the next value without blocking.
//
// It returns (v, nil) when a value was dequeued; (zero, [ErrClosed]) when
// every Sender has closed and the queue is drained — the stream is
// exhausted and no further value will ever arrive; or (zero,
// [ErrWouldBlock]) after w has been registered, in which case a subsequent
// Send (or the final Sender close) invokes w and the caller polls again.
//
// The dequeue is re-checked after registration: a send landing between the
// first empty check and the registration would otherwise be observed by no
// one, stalling the consumer permanently.
func (r *AsyncReceiver[T]) Poll(w Waker) (T, error) {
	if v, err := r.rx.Recv(); err == nil {
		return v, nil
	}
	r.slot.Register(w)
	// Re-check after registering. A send that landed in the window found
	// either no waker or the one just stored; dequeuing here covers the
	// first case, the registration covers the second.
	if v, err := r.rx.Recv(); err == nil {
		r.slot.Clear()
		return v, nil
	}
	if r.rx.c.disconnected() {
		// No sender remains, so the queue can only shrink. One final
		// dequeue: values published before the last close must still
		// be delivered ahead of the exhaustion signal.
		if v, err := r.rx.Recv(); err == nil {
			r.slot.Clear()
			return v, nil
		}
		r.slot.Clear()
		var zero T
		return zero, ErrClosed
	}
	var zero T
	return zero, ErrWouldBlock
}

// Next blocks until a value arrives, the stream is exhausted, or ctx is
// done. It is the goroutine-world driver over Poll; runtimes with their own
// scheduling call Poll directly with their own Waker.
//
// The channel itself has no timeout parameter: a timed receive is ctx's
// job, exactly as with any other blocking operation.
func (r *AsyncReceiver[T]) Next(ctx context.Context) (T, error) {
	ready := make(chan struct{}, 1)
	w := WakerFunc(func() {
		select {
		case ready <- struct{}{}:
		default:
		}
	})
	for {
		v, err := r.Poll(w)
		if !IsWouldBlock(err) {
			return v, err
		}
		select {
		case <-ready:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

// Seq returns the stream view of the receiver: a lazy, unbounded sequence
// that yields each received value and terminates when the stream is
// exhausted or ctx is done. An empty queue with live senders simply
// suspends awaiting future data.
func (r *AsyncReceiver[T]) Seq(ctx context.Context) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, err := r.Next(ctx)
			if err != nil {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Clone returns an independent AsyncReceiver with its own Receiver clone
// and its own waker slot.
func (r *AsyncReceiver[T]) Clone() *AsyncReceiver[T] {
	rx := r.rx.Clone()
	return &AsyncReceiver[T]{rx: rx, slot: rx.c.wakers.register()}
}

// Close retires the waker slot and drops the underlying Receiver handle.
// No cancellation signal reaches in-flight producers.
func (r *AsyncReceiver[T]) Close() {
	r.slot.retire()
	r.rx.Close()
}

// Serial returns the serial number assigned to this handle's channel.
func (r *AsyncReceiver[T]) Serial() Serial {
	return r.rx.Serial()
}
