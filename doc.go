// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package mpmc provides an unbounded lock-free multi-producer
// multi-consumer channel with reference-counted handles and an optional
// asynchronous receive path.
//
// Where [code.hybscloud.com/lfq] covers bounded ring queues, this package
// covers the unbounded case: a Michael–Scott linked-list queue behind a
// cloneable [Sender]/[Receiver] handle pair. Send and Recv never block,
// never take a lock, and never suspend, which makes the synchronous surface
// safe for callers that must not wait.
//
// # Architecture
//
//   - Queue: unbounded lock-free linked list with a permanent sentinel
//     node. Enqueue uses a CAS loop with lagging-tail helping; dequeue is a
//     single CAS on head that transfers node ownership to the winner.
//   - Handles: [Sender] and [Receiver] are independently cloneable views
//     over one shared queue. The queue is torn down exactly once, when the
//     last handle of either family closes, dropping any values still
//     enqueued in front-to-back order.
//   - Async extension: [AsyncReceiver] adds a single-slot waker register so
//     a consumer suspends on empty instead of polling. Send wakes parked
//     consumers after the enqueue is visible; closing the last Sender wakes
//     them so the stream terminates instead of suspending forever.
//   - Effect world: channel operations double as [code.hybscloud.com/kont]
//     effects ([Send], [Recv]) dispatched on a [Pipe], with [Exec] blocking
//     evaluation and the [Step]/[Advance] stepping boundary for proactor
//     loops.
//
// # Quick Start
//
//	tx, rx := mpmc.New[int]()
//	defer tx.Close()
//	defer rx.Close()
//
//	tx.Send(50)
//	v, err := rx.Recv()       // 50, nil
//	_, err = rx.Recv()        // mpmc.ErrWouldBlock: empty, not an error
//
// Asynchronous consumption:
//
//	tx, arx := mpmc.NewAsync[int]()
//	go func() { tx.Send(42); tx.Close() }()
//	for v := range arx.Seq(ctx) {
//		process(v) // terminates when all senders close
//	}
//
// # Ordering
//
// Enqueue order among concurrently racing producers is whichever linking
// CAS wins first, but once linked, dequeue order is strictly FIFO: values
// sent by a single producer without external interleaving are received in
// send order, and no value is lost or duplicated.
//
// # Error Handling
//
// An empty queue is reported as [ErrWouldBlock], sourced from
// [code.hybscloud.com/iox] for ecosystem consistency; it is a steady-state
// outcome, not a failure. Stream exhaustion on the async path is
// [ErrClosed]. Internal CAS retries are never surfaced, only as latency.
// Classify with [IsWouldBlock] and [IsClosed].
//
// # Capacity
//
// The queue is unbounded; growth is limited only by available memory.
// There is no backpressure and no length accessor: accurate counts in
// lock-free structures require cross-core synchronization the hot path
// should not pay for. Track counts in application logic when needed.
//
// # Race Detection
//
// Handle accounting uses [code.hybscloud.com/atomix] counters whose
// explicit memory orderings the race detector cannot track, so stress
// tests that hammer handles from many goroutines are excluded under
// -race via a skipRace helper. The queue itself builds on sync/atomic and
// is race-detector clean.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors and
// adaptive backoff, [code.hybscloud.com/atomix] for counters and flags,
// and [code.hybscloud.com/kont] for the effect-world integration.
package mpmc
