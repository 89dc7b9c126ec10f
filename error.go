// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpmc

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock reports that a non-blocking receive found the queue empty.
// It is a steady-state outcome, not a failure: poll again later, park on an
// [AsyncReceiver], or drive the receive as an effect via [Step]/[Advance].
// The error value is sourced from [code.hybscloud.com/iox] for ecosystem
// consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrClosed reports stream exhaustion: every Sender has closed and the
// queue has been drained. Only the asynchronous path returns it — the
// synchronous [Receiver.Recv] cannot distinguish permanent closure from a
// transient empty read and reports both as [ErrWouldBlock].
var ErrClosed = errors.New("mpmc: channel closed")

// IsWouldBlock reports whether err is the empty-queue indicator.
func IsWouldBlock(err error) bool { return errors.Is(err, iox.ErrWouldBlock) }

// IsClosed reports whether err is the exhaustion indicator.
func IsClosed(err error) bool { return errors.Is(err, ErrClosed) }
