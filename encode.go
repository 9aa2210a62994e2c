// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dasm

import (
	"encoding/binary"

	"gate.computer/dasm/internal/check"
	"gate.computer/dasm/internal/errorpanic"
	"gate.computer/dasm/internal/pos"
	"import.name/pan"
)

// Alignment padding word (NOP).
const nopWord = 0xd503201f

// Encode runs pass 3: it emits the final machine code into dest, which
// must hold at least the number of bytes returned by Link.  Literal
// words are copied verbatim, relocations are patched with the deltas
// computed during linking, and global label offsets are published to
// the Global table.  The engine never reallocates dest.
func (a *Assembler) Encode(dest []byte) (err error) {
	if check.Enabled && a.status != nil {
		return a.status
	}
	if len(dest) < int(a.codesize) {
		return Status{ErrNomem, 0}
	}

	defer func() {
		if e := errorpanic.Handle(recover()); e != nil {
			err = e
		}
	}()

	cp := 0 // Byte offset into dest.

	for si := range a.sections {
		sec := &a.sections[si]
		bi := pos.FromSec(si)

		for bi != sec.pos {
			p := int(sec.buf[bi.Index()])
			bi++

		frag:
			for {
				ins := a.actions[p]
				p++
				act := ins >> 16

				var n int32
				if act >= actAlign && act < actMax {
					n = sec.buf[bi.Index()]
					bi++
				}

				switch {
				case act >= actMax:
					binary.LittleEndian.PutUint32(dest[cp:], ins)
					cp += 4

				case act == actStop || act == actSection:
					break frag

				case act == actEsc:
					binary.LittleEndian.PutUint32(dest[cp:], a.actions[p])
					p++
					cp += 4

				case act == actRelExt:
					if a.Extern != nil {
						n = a.Extern(int32(cp), ins&2047, ins&2048 == 0)
					}
					patchRel(dest, cp, ins, n, p-1)

				case act == actAlign:
					for cp&int(ins&255) != 0 {
						binary.LittleEndian.PutUint32(dest[cp:], nopWord)
						cp += 4
					}

				case act == actRelLG || act == actRelPC:
					if check.Enabled && n < 0 {
						if act == actRelLG {
							pan.Panic(Status{ErrUndefLG, int32(p - 1)})
						}
						pan.Panic(Status{ErrUndefPC, int32(p - 1)})
					}
					n = *a.posPtr(n) - int32(cp) + 4
					patchRel(dest, cp, ins, n, p-1)

				case act == actLabelLG:
					if k := ins & 2047; k >= 20 {
						a.globals[k-20] = n
					}

				case act == actLabelPC:

				case act == actImmAddrOff:
					w := binary.LittleEndian.Uint32(dest[cp-4:])
					if n&1 != 0 {
						w &= 0xfeffffff // Unscaled-offset instruction form.
					}
					binary.LittleEndian.PutUint32(dest[cp-4:], w|uint32(n&^1))

				default: // Immediate: OR into the preceding word.
					w := binary.LittleEndian.Uint32(dest[cp-4:])
					binary.LittleEndian.PutUint32(dest[cp-4:], w|uint32(n))
				}
			}
		}
	}

	if cp != int(a.codesize) { // Passes fell out of sync.
		return Status{ErrPhase, 0}
	}
	return
}

// patchRel packs the signed byte delta n into the relocation field of
// the just-emitted instruction word, in the layout selected by the
// action word's width sub-tag.
func patchRel(dest []byte, cp int, ins uint32, n int32, aofs int) {
	w := binary.LittleEndian.Uint32(dest[cp-4:])

	switch RelWidth(ins & 0xf000) {
	case Page21:
		n1 := n >> 12
		if check.Enabled && !(n&0xfff == 0 && -0x100000 < n1 && n1 < 0x100000) {
			pan.Panic(Status{ErrRangeRel, int32(aofs)})
		}
		w |= uint32(n1&3)<<29 | uint32(n1>>2&0x7ffff)<<5

	case Byte21:
		if check.Enabled && !(-0x100000 < n && n < 0x100000) {
			pan.Panic(Status{ErrRangeRel, int32(aofs)})
		}
		w |= uint32(n&3)<<29 | uint32(n>>2&0x7ffff)<<5

	case Word14:
		if check.Enabled && !(n&3 == 0 && -0x8000 < n && n < 0x8000) {
			pan.Panic(Status{ErrRangeRel, int32(aofs)})
		}
		w |= uint32(n>>2&0x7fff) << 5

	case Word19:
		if check.Enabled && !(n&3 == 0 && -0x100000 < n && n < 0x100000) {
			pan.Panic(Status{ErrRangeRel, int32(aofs)})
		}
		w |= uint32(n>>2&0x7ffff) << 5

	default: // Word26
		if check.Enabled && !(n&3 == 0 && -0x8000000 < n && n < 0x8000000) {
			pan.Panic(Status{ErrRangeRel, int32(aofs)})
		}
		w |= uint32(n>>2) & 0x3ffffff
	}

	binary.LittleEndian.PutUint32(dest[cp-4:], w)
}
