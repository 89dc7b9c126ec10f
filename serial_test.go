// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpmc_test

import (
	"testing"

	"code.hybscloud.com/mpmc"
)

func TestSerialSharedByHandles(t *testing.T) {
	tx, rx := mpmc.New[int]()
	defer tx.Close()
	defer rx.Close()

	if tx.Serial() != rx.Serial() {
		t.Fatalf("handle serials differ: %d vs %d", tx.Serial(), rx.Serial())
	}
	if tx2 := tx.Clone(); tx2.Serial() != tx.Serial() {
		t.Fatalf("clone serial differs: %d vs %d", tx2.Serial(), tx.Serial())
	} else {
		tx2.Close()
	}
}

func TestSerialDistinctPerChannel(t *testing.T) {
	tx1, rx1 := mpmc.New[int]()
	defer tx1.Close()
	defer rx1.Close()
	tx2, arx2 := mpmc.NewAsync[int]()
	defer tx2.Close()
	defer arx2.Close()

	if tx1.Serial() == tx2.Serial() {
		t.Fatalf("distinct channels share serial %d", tx1.Serial())
	}
	if tx2.Serial() != arx2.Serial() {
		t.Fatalf("async handle serials differ: %d vs %d", tx2.Serial(), arx2.Serial())
	}
}
