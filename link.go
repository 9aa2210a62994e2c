// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dasm

import (
	"gate.computer/dasm/internal/check"
	"gate.computer/dasm/internal/pos"
)

// Link runs pass 2: it shrinks alignment padding to its final size,
// fixes every label's byte offset, and concatenates the sections into
// one contiguous address space.  It returns the total code size to be
// passed to Encode.
//
// Globals not defined in this session do not fail the link: their
// chains are collapsed into undefined markers, and only a relocation
// against one fails, during Encode.  An undefined PC label is a link
// error.
func (a *Assembler) Link() (int, error) {
	if check.Enabled {
		if a.status != nil {
			return 0, a.status
		}
		for pc, c := range a.pclabels {
			if c > 0 {
				return 0, Status{ErrUndefPC, int32(pc)}
			}
		}
	}

	for idx := lgGlobalBase; idx < len(a.lglabels); idx++ {
		c := a.lglabels[idx]
		for c > 0 { // Collapse the chain into undefined-global markers.
			q := a.posPtr(c)
			c, *q = *q, -int32(idx)
		}
	}

	// Combine all code sections.  No support for data sections.
	var ofs int32

	for si := range a.sections {
		sec := &a.sections[si]
		pp := pos.FromSec(si)

		for pp != sec.pos {
			p := int(sec.buf[pp.Index()])
			pp++

		frag:
			for {
				ins := a.actions[p]
				p++
				act := ins >> 16

				switch {
				case act >= actMax: // Literal word: length is fixed.

				case act == actStop || act == actSection:
					break frag

				case act == actEsc:
					p++

				case act == actRelExt:

				case act == actAlign:
					// The pass 1 estimate assumed maximal padding;
					// subtract the overshoot at the final offset.
					ofs -= (sec.buf[pp.Index()] + ofs) & int32(ins&255)
					pp++

				case act == actRelLG || act == actRelPC:
					pp++

				case act == actLabelLG || act == actLabelPC:
					sec.buf[pp.Index()] += ofs
					pp++

				default: // Immediate slot.
					pp++
				}
			}
		}

		ofs += sec.ofs // Next section starts right after the current one.
	}

	a.codesize = ofs
	return int(ofs), nil
}
