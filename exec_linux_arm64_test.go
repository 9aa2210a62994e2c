// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dasm

import (
	"testing"

	"gate.computer/dasm/buffer"
	"gate.computer/dasm/internal/exec"
	"golang.org/x/sys/unix"
)

func TestExecuteMov(t *testing.T) {
	actions := []uint32{
		Esc(), 0,
		ImmMov(false),
		retIns,
		Stop(),
	}

	a := New(1)
	a.SetupGlobal(0)
	a.Setup(actions)

	a.Put(0, 42)
	size, err := a.Link()
	if err != nil {
		t.Fatal(err)
	}

	mem, err := unix.Mmap(-1, 0, unix.Getpagesize(), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		t.Fatal(err)
	}
	defer unix.Munmap(mem)

	buf := buffer.NewStatic(mem[:0:len(mem)])
	if err := a.Encode(buf.ResizeBytes(size)); err != nil {
		t.Fatal(err)
	}

	if err := unix.Mprotect(mem, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		t.Fatal(err)
	}

	if ret := exec.Call(mem); uint32(ret) != 42 {
		t.Errorf("returned %d", ret)
	}
}
