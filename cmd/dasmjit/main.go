// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Program dasmjit assembles "mov w0, #value; ret" at run time and
// executes it, demonstrating the encoding engine.  The engine itself
// never makes memory executable; that happens here.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"gate.computer/dasm"
	"gate.computer/dasm/buffer"
	"gate.computer/dasm/disasm"
	"golang.org/x/xerrors"
)

const retWord = 0xd65f03c0

var (
	verbose = false
	dump    = false
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] integer\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.BoolVar(&verbose, "v", verbose, "verbose output")
	flag.BoolVar(&dump, "dump", dump, "disassemble the encoded text")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	value, err := strconv.ParseInt(flag.Arg(0), 0, 32)
	if err != nil {
		log.Fatal(err)
	}

	text, err := assemble(int32(value))
	if err != nil {
		log.Fatal(err)
	}

	if dump {
		if err := disasm.Fprint(os.Stderr, text); err != nil {
			log.Fatal(err)
		}
	}

	ret, err := run(text)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(int32(ret))
}

func assemble(value int32) ([]byte, error) {
	actions := []uint32{
		dasm.Esc(), 0, // Template word completed by the move immediate.
		dasm.ImmMov(false),
		retWord,
		dasm.Stop(),
	}

	a := dasm.New(1)
	defer a.Free()

	a.Setup(actions)
	a.Put(0, int64(value))

	size, err := a.Link()
	if err != nil {
		return nil, xerrors.Errorf("link: %w", err)
	}
	if verbose {
		log.Printf("code size: %d", size)
	}

	buf := buffer.NewDynamicHint(nil, size)
	if err := a.Encode(buf.ResizeBytes(size)); err != nil {
		return nil, xerrors.Errorf("encode: %w", err)
	}

	return buf.Bytes(), nil
}
