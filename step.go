// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpmc

import (
	"code.hybscloud.com/kont"
)

// Step evaluates a channel protocol until the first effect suspension.
// Returns (result, nil) on completion, or (zero, suspension) if pending.
func Step[R any](protocol kont.Expr[R]) (R, *kont.Suspension[R]) {
	return kont.StepExpr(protocol)
}

// Advance dispatches the suspended channel operation on the pipe.
// DispatchPipe is non-blocking: it returns iox.ErrWouldBlock when the queue
// cannot make progress (the I/O boundary).
//
// On success (nil error), the suspension is consumed and the protocol
// advances to the next effect or completion.
// On iox.ErrWouldBlock, the suspension is unconsumed and may be retried
// once data arrives — typically signalled through an AsyncReceiver waker on
// the same channel. On ErrClosed the suspension is likewise unconsumed but
// permanent: no retry can ever succeed.
func Advance[T, R any](p *Pipe[T], susp *kont.Suspension[R]) (R, *kont.Suspension[R], error) {
	cop, ok := susp.Op().(pipeDispatcher[T])
	if !ok {
		panic("mpmc: unhandled effect in Advance")
	}
	v, err := cop.DispatchPipe(p)
	if err != nil {
		var zero R
		return zero, susp, err
	}
	result, next := susp.Resume(v)
	return result, next, nil
}
