// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpmc_test

import (
	"context"
	"testing"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/mpmc"
)

func TestAsyncSendNext(t *testing.T) {
	tx, arx := mpmc.NewAsync[uint32]()
	defer arx.Close()

	tx.Send(42)
	v, err := arx.Next(t.Context())
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if v != 42 {
		t.Fatalf("Next: got %d, want 42", v)
	}

	tx.Close()
	if _, err := arx.Next(t.Context()); !mpmc.IsClosed(err) {
		t.Fatalf("Next after last sender closed: got %v, want ErrClosed", err)
	}
}

func TestAsyncPollContract(t *testing.T) {
	tx, arx := mpmc.NewAsync[int]()
	defer tx.Close()
	defer arx.Close()

	woken := make(chan struct{}, 1)
	w := mpmc.WakerFunc(func() { woken <- struct{}{} })

	if _, err := arx.Poll(w); !mpmc.IsWouldBlock(err) {
		t.Fatalf("Poll on empty: got %v, want ErrWouldBlock", err)
	}
	tx.Send(5)
	select {
	case <-woken:
	case <-time.After(5 * time.Second):
		t.Fatal("send did not wake the registered waker")
	}
	v, err := arx.Poll(w)
	if err != nil {
		t.Fatalf("Poll after wake: %v", err)
	}
	if v != 5 {
		t.Fatalf("Poll: got %d, want 5", v)
	}
}

func TestAsyncWakeConsumedOncePerRegistration(t *testing.T) {
	tx, arx := mpmc.NewAsync[int]()
	defer tx.Close()
	defer arx.Close()

	var wakes atomix.Int64
	w := mpmc.WakerFunc(func() { wakes.Add(1) })

	if _, err := arx.Poll(w); !mpmc.IsWouldBlock(err) {
		t.Fatalf("Poll on empty: got %v, want ErrWouldBlock", err)
	}
	tx.Send(1)
	tx.Send(2)
	// The slot held one registration; the first send took it, the second
	// found the slot empty.
	if got := wakes.Load(); got != 1 {
		t.Fatalf("wakes: got %d, want 1", got)
	}
}

func TestAsyncExhaustionDrainsBacklog(t *testing.T) {
	tx, arx := mpmc.NewAsync[int]()
	defer arx.Close()

	for i := range 3 {
		tx.Send(i)
	}
	tx.Close()

	// Values published before the last close are delivered ahead of the
	// exhaustion signal.
	for i := range 3 {
		v, err := arx.Next(t.Context())
		if err != nil {
			t.Fatalf("Next %d: %v", i, err)
		}
		if v != i {
			t.Fatalf("Next %d: got %d, want %d", i, v, i)
		}
	}
	if _, err := arx.Next(t.Context()); !mpmc.IsClosed(err) {
		t.Fatalf("Next after backlog: got %v, want ErrClosed", err)
	}
}

func TestAsyncNoMissedWakeup(t *testing.T) {
	skipRace(t)
	const n = 10000
	tx, arx := mpmc.NewAsync[int]()
	defer arx.Close()

	// Unpaced sends race the consumer's empty-check/register window on
	// every iteration; a missed wakeup stalls Next and trips the deadline.
	go func() {
		defer tx.Close()
		for i := range n {
			tx.Send(i)
		}
	}()

	ctx, cancel := context.WithTimeout(t.Context(), 30*time.Second)
	defer cancel()
	for i := range n {
		v, err := arx.Next(ctx)
		if err != nil {
			t.Fatalf("Next %d: %v", i, err)
		}
		if v != i {
			t.Fatalf("Next %d: got %d, want %d", i, v, i)
		}
	}
	if _, err := arx.Next(ctx); !mpmc.IsClosed(err) {
		t.Fatalf("Next after producer exit: got %v, want ErrClosed", err)
	}
}

func TestAsyncCloneIndependentWakers(t *testing.T) {
	skipRace(t)
	tx, arx1 := mpmc.NewAsync[int]()
	defer tx.Close()
	defer arx1.Close()
	arx2 := arx1.Clone()
	defer arx2.Close()

	woken1 := make(chan struct{}, 1)
	woken2 := make(chan struct{}, 1)
	if _, err := arx1.Poll(mpmc.WakerFunc(func() { woken1 <- struct{}{} })); !mpmc.IsWouldBlock(err) {
		t.Fatalf("Poll arx1: got %v, want ErrWouldBlock", err)
	}
	if _, err := arx2.Poll(mpmc.WakerFunc(func() { woken2 <- struct{}{} })); !mpmc.IsWouldBlock(err) {
		t.Fatalf("Poll arx2: got %v, want ErrWouldBlock", err)
	}

	tx.Send(1)
	// Both wrappers are parked on their own slot; one send wakes both,
	// whichever polls first wins the value and the other re-parks.
	select {
	case <-woken1:
	case <-time.After(5 * time.Second):
		t.Fatal("first wrapper not woken")
	}
	select {
	case <-woken2:
	case <-time.After(5 * time.Second):
		t.Fatal("second wrapper not woken")
	}
}

func TestAsyncNextCancel(t *testing.T) {
	tx, arx := mpmc.NewAsync[int]()
	defer tx.Close()
	defer arx.Close()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	if _, err := arx.Next(ctx); err != context.Canceled {
		t.Fatalf("Next on cancelled ctx: got %v, want context.Canceled", err)
	}
}

func TestAsyncSeq(t *testing.T) {
	tx, arx := mpmc.NewAsync[int]()
	defer arx.Close()

	go func() {
		defer tx.Close()
		for i := range 5 {
			tx.Send(i)
		}
	}()

	var got []int
	for v := range arx.Seq(t.Context()) {
		got = append(got, v)
	}
	if len(got) != 5 {
		t.Fatalf("Seq: got %d values, want 5", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("Seq[%d]: got %d, want %d", i, v, i)
		}
	}
}

func TestAsyncOverExistingReceiver(t *testing.T) {
	tx, rx := mpmc.New[int]()
	defer rx.Close()

	arx := mpmc.Async(rx)
	defer arx.Close()

	tx.Send(1)
	tx.Send(2)
	// Mixed consumption: sync handle and async wrapper share the queue.
	if v, err := rx.Recv(); err != nil || v != 1 {
		t.Fatalf("Recv: got (%d, %v), want (1, nil)", v, err)
	}
	tx.Close()
	if v, err := arx.Next(t.Context()); err != nil || v != 2 {
		t.Fatalf("Next: got (%d, %v), want (2, nil)", v, err)
	}
	if _, err := arx.Next(t.Context()); !mpmc.IsClosed(err) {
		t.Fatalf("Next after drain: got %v, want ErrClosed", err)
	}
}
