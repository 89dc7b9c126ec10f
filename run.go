// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpmc

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Run creates a channel, runs a producer protocol and a consumer protocol
// against it, and returns both results. Interleaves execution of both sides
// on the calling goroutine using adaptive backoff (iox.Backoff) when
// neither side can make progress. Does not spawn goroutines or create
// channels beyond the one under the pipe.
//
// The element type is explicit because it appears only inside the
// protocols: Run[int](producer, consumer).
func Run[T, A, B any](producer kont.Eff[A], consumer kont.Eff[B]) (A, B) {
	return RunExpr[T](Reify(producer), Reify(consumer))
}

// RunExpr creates a channel, runs an Expr-world producer protocol and
// consumer protocol against it, and returns both results. Interleaves
// execution of both sides on the calling goroutine using adaptive backoff
// (iox.Backoff) when neither side can make progress.
func RunExpr[T, A, B any](producer kont.Expr[A], consumer kont.Expr[B]) (A, B) {
	p := NewPipe[T]()
	defer p.Close()
	resultA, suspA := Step[A](producer)
	resultB, suspB := Step[B](consumer)
	var bo iox.Backoff
	for suspA != nil || suspB != nil {
		progress := false
		if suspA != nil {
			var err error
			resultA, suspA, err = Advance(p, suspA)
			if err == nil {
				progress = true
			}
		}
		if suspB != nil {
			var err error
			resultB, suspB, err = Advance(p, suspB)
			if err == nil {
				progress = true
			}
		}
		if !progress {
			bo.Wait()
		} else {
			bo.Reset()
		}
	}
	return resultA, resultB
}
