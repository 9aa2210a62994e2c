// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"gate.computer/dasm/internal/exec"
	"golang.org/x/sys/unix"
	"golang.org/x/xerrors"
)

// run copies the encoded text into an anonymous mapping, remaps it
// executable, and calls through it.
func run(text []byte) (ret uint64, err error) {
	size := (len(text) + unix.Getpagesize() - 1) &^ (unix.Getpagesize() - 1)

	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		err = xerrors.Errorf("mmap: %w", err)
		return
	}
	defer unix.Munmap(mem)

	copy(mem, text)

	if err = unix.Mprotect(mem, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		err = xerrors.Errorf("mprotect: %w", err)
		return
	}

	ret = exec.Call(mem)
	return
}
