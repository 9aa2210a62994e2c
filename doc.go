// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package dasm is a dynamic assembler encoding engine for AArch64.  It
consumes a compact action list (a read-only sequence of instruction
template words and tagged directives, produced by an external front
end), interleaves it with runtime arguments, resolves label and branch
references, and writes relocatable machine code into a caller-supplied
buffer.

Encoding is a three-pass pipeline over one Assembler:

	a := dasm.New(1)
	a.Setup(actions)
	a.Put(0, args...)
	size, err := a.Link()
	err = a.Encode(buf)

The engine does not parse any source language, choose instructions, or
allocate registers; and it never makes memory executable — see
cmd/dasmjit for a minimal example of running the emitted code.

# Errors

Failures are classified by Kind and carry the originating action list
offset (or label number).  Pass 1 errors are sticky: the first
violation poisons the session until the next Setup.  Validations can be
compiled out with the dasm_unchecked build tag for trusted action
lists.
*/
package dasm
