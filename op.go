// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpmc

import (
	"code.hybscloud.com/kont"
)

// Pipe bundles both handle families of one channel into a dispatch context
// for effect-world protocols. A protocol performed against a Pipe may both
// produce and consume.
type Pipe[T any] struct {
	tx *Sender[T]
	rx *Receiver[T]
}

// NewPipe creates a channel and returns its effect-dispatch context.
func NewPipe[T any]() *Pipe[T] {
	tx, rx := New[T]()
	return &Pipe[T]{tx: tx, rx: rx}
}

// PipeOf wraps existing handles into a dispatch context. Ownership of both
// handles transfers to the pipe: Close closes them.
func PipeOf[T any](tx *Sender[T], rx *Receiver[T]) *Pipe[T] {
	return &Pipe[T]{tx: tx, rx: rx}
}

// Tx returns the underlying Sender, for handing to plain producers.
func (p *Pipe[T]) Tx() *Sender[T] { return p.tx }

// Rx returns the underlying Receiver, for handing to plain consumers.
func (p *Pipe[T]) Rx() *Receiver[T] { return p.rx }

// Close drops both underlying handles.
func (p *Pipe[T]) Close() {
	p.tx.Close()
	p.rx.Close()
}

// pipeDispatcher is the structural interface for channel effect
// operations. DispatchPipe is non-blocking: it returns iox.ErrWouldBlock at
// the boundary when the queue cannot make progress, and ErrClosed when it
// never will again.
type pipeDispatcher[T any] interface {
	DispatchPipe(p *Pipe[T]) (kont.Resumed, error)
}

// Send is the effect operation for sending a value of type T.
// Perform(Send[T]{Value: v}) enqueues v on the pipe's channel.
type Send[T any] struct {
	kont.Phantom[struct{}]
	Value T
}

// DispatchPipe handles Send on the channel. The queue is unbounded, so the
// enqueue always succeeds and never blocks.
func (s Send[T]) DispatchPipe(p *Pipe[T]) (kont.Resumed, error) {
	p.tx.Send(s.Value)
	return struct{}{}, nil
}

// Recv is the effect operation for receiving a value of type T.
// Perform(Recv[T]{}) dequeues the front value.
type Recv[T any] struct {
	kont.Phantom[T]
}

// DispatchPipe handles Recv on the channel. Non-blocking: returns
// iox.ErrWouldBlock if the queue is empty, or ErrClosed if it is empty and
// every Sender of the channel has closed (the protocol can never resume).
func (Recv[T]) DispatchPipe(p *Pipe[T]) (kont.Resumed, error) {
	v, err := p.rx.Recv()
	if err == nil {
		return v, nil
	}
	if p.rx.c.disconnected() {
		// Senders are gone; re-check once for values published
		// before the last close.
		if v, err := p.rx.Recv(); err == nil {
			return v, nil
		}
		return nil, ErrClosed
	}
	return nil, err
}
