// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dasm

import (
	"gate.computer/dasm/internal/check"
	"gate.computer/dasm/internal/pos"
)

// Local label slots occupy the low end of the label array; global slots
// start at this index.  See the label numbering note in action.go.
const lgGlobalBase = 10

// Maximum number of section buffer positions for a single Put call.
const maxSecPos = 25

type section struct {
	buf []int32 // Action list references and argument slots.
	pos pos.P   // Biased write position.
	ofs int32   // Byte offset estimate.
}

// ensure makes room for one Put call's worth of positions.  Positions
// recorded before growth remain valid: they are biased indexes, not
// pointers.
func (s *section) ensure() {
	need := s.pos.Index() + maxSecPos
	if need <= len(s.buf) {
		return
	}

	n := len(s.buf)*2 + 2*maxSecPos
	if n < need {
		n = need + maxSecPos
	}

	buf := make([]int32, n)
	copy(buf, s.buf)
	s.buf = buf
}

// Assembler encodes action lists into AArch64 machine code.  One
// Assembler is a single encode-and-emit session at a time: Setup must
// precede Put, Link must follow the last Put, and Encode must follow
// Link.  Calling Setup again resets the section cursors and starts a
// new session.  An Assembler is not safe for concurrent use.
type Assembler struct {
	actions  []uint32
	sections []section
	sec      *section
	lglabels []int32 // Local/global label chain heads or defined positions.
	pclabels []int32 // PC label chain heads or defined positions.
	globals  []int32 // Byte offsets of defined global labels.
	codesize int32
	status   error

	// Extern resolves RelExt relocations during encoding.  It receives
	// the byte offset of the referencing instruction's end, the symbol
	// index, and whether the relocation is relative; it returns the
	// delta to patch in.  Nil resolves everything to zero.
	Extern func(addr int32, index uint32, relative bool) int32
}

// New initializes an assembler with the given number of sections
// (at least one).
func New(maxSection int) *Assembler {
	if maxSection < 1 {
		maxSection = 1
	}

	a := &Assembler{
		sections: make([]section, maxSection),
	}
	for i := range a.sections {
		a.sections[i].pos = pos.FromSec(i)
	}
	a.sec = &a.sections[0]
	return a
}

// Free releases the section buffers and label arrays.  The assembler
// must not be used afterwards.
func (a *Assembler) Free() {
	*a = Assembler{}
}

// SetupGlobal sizes the global label table for maxgl globals.  Must be
// called before Setup.
func (a *Assembler) SetupGlobal(maxgl int) {
	a.lglabels = make([]int32, lgGlobalBase+maxgl)
	a.globals = make([]int32, maxgl)
}

// GrowPC extends the PC label array to maxpc entries.  May be called
// after Setup; new slots start out undefined with empty chains.
func (a *Assembler) GrowPC(maxpc int) {
	if maxpc <= len(a.pclabels) {
		return
	}

	labels := make([]int32, maxpc)
	copy(labels, a.pclabels)
	a.pclabels = labels
}

// Setup starts an encoding session over the given action list.  The
// list is read, never written, and must stay unchanged until the
// session's Encode call has returned.
func (a *Assembler) Setup(actions []uint32) {
	a.actions = actions
	a.status = nil
	a.sec = &a.sections[0]
	for i := range a.lglabels {
		a.lglabels[i] = 0
	}
	for i := range a.pclabels {
		a.pclabels[i] = 0
	}
	for i := range a.sections {
		a.sections[i].pos = pos.FromSec(i)
		a.sections[i].ofs = 0
	}
}

// Err returns the sticky status of the current session.  Pass 1 errors
// stick: once set, subsequent Put calls are ignored and Link reports
// the error.
func (a *Assembler) Err() error {
	return a.status
}

// posPtr returns the buffer slot at a biased position.
func (a *Assembler) posPtr(p int32) *int32 {
	q := pos.P(p)
	return &a.sections[q.Sec()].buf[q.Index()]
}

// PCLabel returns the byte offset of a PC label after Link, or -1 if
// the label is undefined, or -2 if it is unused or out of range.
func (a *Assembler) PCLabel(pc int) int32 {
	if pc >= 0 && pc < len(a.pclabels) {
		if c := a.pclabels[pc]; c < 0 {
			return *a.posPtr(-c)
		} else if c > 0 {
			return -1
		}
	}
	return -2
}

// Global returns the byte offset of a defined global label in the
// encoded output.  Valid after Encode.
func (a *Assembler) Global(g int) int32 {
	return a.globals[g]
}

// CheckStep is an optional sanity check between isolated encoding
// steps.  It verifies that no local label has pending forward
// references, resets the local labels for the next step, and checks
// that the active section is the expected one (pass a negative value
// to skip that check).
func (a *Assembler) CheckStep(secmatch int) error {
	if !check.Enabled {
		return a.status
	}

	if a.status == nil {
		for i := 1; i <= 9; i++ {
			if a.lglabels[i] > 0 {
				a.status = Status{ErrUndefLG, int32(i)}
				break
			}
			a.lglabels[i] = 0
		}
	}
	if a.status == nil && secmatch >= 0 {
		if sec := a.secIndex(); sec != secmatch {
			a.status = Status{ErrMatchSec, int32(sec)}
		}
	}
	return a.status
}

func (a *Assembler) secIndex() int {
	for i := range a.sections {
		if a.sec == &a.sections[i] {
			return i
		}
	}
	return -1
}
