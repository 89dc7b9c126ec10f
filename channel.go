// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpmc

import "code.hybscloud.com/atomix"

// core is the state shared by every handle of one channel: the unbounded
// queue, the live-handle accounting that drives teardown, and the waker
// list for attached asynchronous consumers.
type core[T any] struct {
	q       queue[T]
	senders atomix.Int64 // live Sender handles
	readers atomix.Int64 // live Receiver handles, sync and async
	refs    atomix.Int64 // total live handles; teardown when it hits zero
	wakers  wakerList
	serial  Serial
}

// newCore creates a channel core with one sentinel node and a live count
// of one Sender plus one Receiver.
func newCore[T any]() *core[T] {
	c := &core[T]{serial: nextSerial()}
	c.q.init()
	c.senders.Add(1)
	c.readers.Add(1)
	c.refs.Add(2)
	return c
}

// send enqueues v and then wakes parked asynchronous consumers. The wake
// follows the push, so a woken consumer always observes the linked node.
func (c *core[T]) send(v T) {
	c.q.push(v)
	c.wakers.wakeAll()
}

// disconnected reports whether no live Sender remains. A true result is
// stable: the sender count never recovers from zero.
func (c *core[T]) disconnected() bool {
	return c.senders.Load() == 0
}

func (c *core[T]) dropSender() {
	if c.senders.Add(-1) == 0 {
		// The last producer is gone. Parked consumers must observe
		// exhaustion rather than suspend forever.
		c.wakers.wakeAll()
	}
	c.release()
}

func (c *core[T]) dropReader() {
	c.readers.Add(-1)
	c.release()
}

// release drops one handle reference. The final release tears the queue
// down, clearing remaining values front to back. Runs at most once: the
// total count never recovers from zero.
func (c *core[T]) release() {
	if c.refs.Add(-1) == 0 {
		c.q.drain()
	}
}

// Sender is the producing handle of a channel. It is safe for concurrent
// use from any number of goroutines; Send never blocks and never suspends,
// so it may run in contexts that must not wait, such as interrupt-style
// callbacks. Independent producers are obtained with Clone.
type Sender[T any] struct {
	c      *core[T]
	closed atomix.Uint32
}

// New creates a channel and returns its initial handle pair sharing one
// fresh queue.
func New[T any]() (*Sender[T], *Receiver[T]) {
	c := newCore[T]()
	return &Sender[T]{c: c}, &Receiver[T]{c: c}
}

// Send hands v to the channel. The queue is unbounded: Send always
// succeeds and its growth is limited only by available memory. If
// asynchronous receivers are attached, the parked consumer is woken after
// the value is visible.
//
// Send on a closed handle is invalid.
func (s *Sender[T]) Send(v T) {
	s.c.send(v)
}

// Clone returns a new independent Sender over the same channel,
// incrementing the live sender count.
func (s *Sender[T]) Clone() *Sender[T] {
	s.c.senders.Add(1)
	s.c.refs.Add(1)
	return &Sender[T]{c: s.c}
}

// Close drops this handle. Idempotent per handle. Closing the last Sender
// wakes parked asynchronous consumers so they observe exhaustion; closing
// the last handle of either family tears the queue down, dropping any
// values still enqueued in front-to-back order.
func (s *Sender[T]) Close() {
	if s.closed.Add(1) != 1 {
		return
	}
	s.c.dropSender()
}

// Serial returns the serial number assigned to this handle's channel.
func (s *Sender[T]) Serial() Serial {
	return s.c.serial
}

// Receiver is the consuming handle of a channel. It is safe for concurrent
// use from any number of goroutines; Recv never blocks. Independent
// consumers are obtained with Clone.
type Receiver[T any] struct {
	c      *core[T]
	closed atomix.Uint32
}

// Recv dequeues the front value. It returns immediately in both the
// data-available and the empty case; an empty queue is reported as
// [ErrWouldBlock]. The empty indicator does not distinguish a channel whose
// senders have all closed from one that is transiently empty — track sender
// liveness externally, or use an [AsyncReceiver], whose exhaustion signal
// does distinguish permanent closure.
func (r *Receiver[T]) Recv() (T, error) {
	v, ok := r.c.q.pop()
	if !ok {
		return v, ErrWouldBlock
	}
	return v, nil
}

// Clone returns a new independent Receiver over the same channel,
// incrementing the live receiver count.
func (r *Receiver[T]) Clone() *Receiver[T] {
	r.c.readers.Add(1)
	r.c.refs.Add(1)
	return &Receiver[T]{c: r.c}
}

// Close drops this handle. Idempotent per handle. Closing the last handle
// of either family tears the queue down.
func (r *Receiver[T]) Close() {
	if r.closed.Add(1) != 1 {
		return
	}
	r.c.dropReader()
}

// Serial returns the serial number assigned to this handle's channel.
func (r *Receiver[T]) Serial() Serial {
	return r.c.serial
}
