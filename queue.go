// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpmc

import "sync/atomic"

// node is a single cell of the unbounded linked queue.
// A node belongs to the queue until a dequeue CAS advances head past it;
// from then on it is exclusively owned by the winning dequeuer.
type node[T any] struct {
	next  atomic.Pointer[node[T]]
	value T
}

// queue is an unbounded Michael–Scott multi-producer multi-consumer queue.
//
// Invariant: the list always contains at least one node, the sentinel.
// head points at the sentinel (the last consumed node), tail points at the
// last linked node, and the front value lives in the node after head. The
// sentinel is what makes single-CAS dequeue safe: only the goroutine whose
// CAS advances head may claim the old head node, so no other goroutine can
// be mid-dereference of a reclaimed cell as long as every dereference goes
// through the atomic head/next fields.
type queue[T any] struct {
	head atomic.Pointer[node[T]]
	tail atomic.Pointer[node[T]]
}

// init links the initial sentinel: head == tail, next == nil.
func (q *queue[T]) init() {
	sentinel := new(node[T])
	q.head.Store(sentinel)
	q.tail.Store(sentinel)
}

// push appends v after the current tail.
//
// Lock-free with helping: a producer that observes a half-finished push
// (tail.next already linked, tail not yet advanced) advances tail on the
// stalled producer's behalf and retries, so system-wide progress never
// depends on the original producer being scheduled again.
func (q *queue[T]) push(v T) {
	n := &node[T]{value: v}
	for {
		// Race load the tail and its link,
		tail := q.tail.Load()
		next := tail.next.Load()
		if next != nil {
			// another producer linked a node but has not advanced
			// tail yet; help it along and retry.
			q.tail.CompareAndSwap(tail, next)
			continue
		}
		// tail is the last node; try to link n after it.
		if tail.next.CompareAndSwap(nil, n) {
			// Linked. Advancing tail is best effort: if this CAS
			// fails, a helper already moved it past tail.
			q.tail.CompareAndSwap(tail, n)
			return
		}
	}
}

// pop removes and returns the front value.
// The second result is false when the queue is logically empty. Empty is a
// steady-state outcome, not a transient failure: pop never retries on it.
func (q *queue[T]) pop() (T, bool) {
	for {
		head := q.head.Load()
		next := head.next.Load()
		if next == nil {
			// The sentinel has no successor: logically empty.
			var zero T
			return zero, false
		}
		if q.head.CompareAndSwap(head, next) {
			// The CAS winner exclusively owns the spent sentinel
			// and the value slot of the node that replaced it.
			// Move the value out so the new sentinel does not pin
			// it for the rest of the node's lifetime.
			v := next.value
			var zero T
			next.value = zero
			return v, true
		}
		// Lost the race for this node; retry on the new head.
	}
}

// drain tears the queue down, clearing remaining values front to back and
// unlinking every node including the sentinel. It returns the number of
// values dropped. Must run exactly once, after the last handle has closed,
// with no push or pop in flight.
func (q *queue[T]) drain() int {
	n := q.head.Load()
	q.head.Store(nil)
	q.tail.Store(nil)
	dropped := 0
	sentinel := true
	for n != nil {
		next := n.next.Load()
		n.next.Store(nil)
		if !sentinel {
			var zero T
			n.value = zero
			dropped++
		}
		sentinel = false
		n = next
	}
	return dropped
}
