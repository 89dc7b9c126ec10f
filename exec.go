// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpmc

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// pipeHandler implements kont.Handler for channel effects.
// Waits on iox.ErrWouldBlock, converting non-blocking dispatch into
// blocking evaluation for Exec/ExecExpr.
type pipeHandler[T, R any] struct {
	p *Pipe[T]
}

// Dispatch implements kont.Handler via structural interface assertion.
// Waits past the iox.ErrWouldBlock boundary with adaptive backoff.
func (h pipeHandler[T, R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	cop, ok := op.(pipeDispatcher[T])
	if !ok {
		panic("mpmc: unhandled effect in pipeHandler")
	}
	return dispatchWait(h.p, cop), true
}

// dispatchWait blocks until DispatchPipe succeeds, backing off on
// iox.ErrWouldBlock with iox.Backoff. A receive that can never succeed —
// the channel is exhausted — panics rather than spinning forever: a
// blocking protocol must not outlive the channel's producers.
func dispatchWait[T any](p *Pipe[T], cop pipeDispatcher[T]) kont.Resumed {
	var bo iox.Backoff
	for {
		v, err := cop.DispatchPipe(p)
		if err == nil {
			return v
		}
		if IsClosed(err) {
			panic("mpmc: receive from exhausted channel in blocking protocol")
		}
		bo.Wait()
	}
}

// Exec runs a Cont-world channel protocol on a pre-created pipe.
// Blocks on iox.ErrWouldBlock via adaptive backoff (iox.Backoff),
// without spawning goroutines or creating channels.
func Exec[T, R any](p *Pipe[T], protocol kont.Eff[R]) R {
	h := pipeHandler[T, R]{p: p}
	return kont.Handle(protocol, h)
}

// ExecExpr runs an Expr-world channel protocol on a pre-created pipe.
// Blocks on iox.ErrWouldBlock via adaptive backoff (iox.Backoff),
// without spawning goroutines or creating channels.
func ExecExpr[T, R any](p *Pipe[T], protocol kont.Expr[R]) R {
	h := pipeHandler[T, R]{p: p}
	return kont.HandleExpr(protocol, h)
}
