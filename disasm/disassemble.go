// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm dumps encoded AArch64 machine code for debugging.
package disasm

import (
	"fmt"
	"io"

	"github.com/bnagy/gapstone"
)

// Fprint disassembles the encoded text and writes one instruction per
// line, prefixed with its byte offset.
func Fprint(w io.Writer, text []byte) (err error) {
	engine, err := gapstone.New(gapstone.CS_ARCH_ARM64, 0)
	if err != nil {
		return
	}
	defer engine.Close()

	insns, err := engine.Disasm(text, 0, 0)
	if err != nil {
		return
	}

	for _, insn := range insns {
		_, err = fmt.Fprintf(w, "%8x:\t%s\t%s\n", insn.Address, insn.Mnemonic, insn.OpStr)
		if err != nil {
			return
		}
	}

	return
}
