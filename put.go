// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dasm

import (
	"gate.computer/dasm/internal/check"
	"gate.computer/dasm/internal/errorpanic"
	"gate.computer/dasm/internal/imm"
	"gate.computer/dasm/internal/pos"
	"import.name/pan"
)

func (a *Assembler) fail(k Kind, ofs int) {
	pan.Panic(Status{k, int32(ofs)})
}

// Put runs pass 1 over one action list fragment: it stores actions and
// encoded arguments into the active section, links branch references to
// label chains, and estimates byte offsets.  Arguments are consumed by
// argument-taking directives in action list order.
//
// The first violation sets a sticky status and masks the rest of the
// fragment; subsequent Put calls are ignored until the next Setup.
// Check Err (or the Link result) after the last Put.
func (a *Assembler) Put(start int, args ...int64) {
	if a.status != nil {
		return
	}

	defer func() {
		if err := errorpanic.Handle(recover()); err != nil {
			a.status = err
		}
	}()

	a.put(start, args)
}

// putRel stores a resolved label position, or links the reference into
// the label's chain of pending positions.
func putRel(pl *int32, b []int32, pp pos.P) pos.P {
	if c := *pl; c < 0 { // Label exists.  Store its position.
		b[pp.Index()] = -c
	} else {
		b[pp.Index()] = c
		*pl = int32(pp)
	}
	return pp + 1
}

// putLabel collapses the label's chain, overwriting every pending
// reference with the definition position, and marks the label defined.
func (a *Assembler) putLabel(pl *int32, b []int32, pp pos.P, ofs int32) pos.P {
	c := *pl
	for c > 0 {
		q := a.posPtr(c)
		c, *q = *q, int32(pp)
	}
	*pl = -int32(pp) // Label exists now.
	b[pp.Index()] = ofs
	return pp + 1
}

func (a *Assembler) put(start int, args []int64) {
	p := start
	sec := a.sec
	sec.ensure()
	b := sec.buf
	pp := sec.pos
	ofs := sec.ofs
	argi := 0

	b[pp.Index()] = int32(start)
	pp++

	store := func(e int32) {
		b[pp.Index()] = e
		pp++
	}

loop:
	for {
		ins := a.actions[p]
		p++
		act := ins >> 16

		if act >= actMax { // Literal instruction word.
			ofs += 4
			continue
		}

		var l int64
		if act >= actRelPC {
			if argi < len(args) {
				l = args[argi]
				argi++
			} else if check.Enabled {
				a.fail(ErrRangeImm, p-1)
			}
		}
		n := int32(l)

		switch act {
		case actStop:
			break loop

		case actSection:
			sn := int(ins & 255)
			if check.Enabled && sn >= len(a.sections) {
				a.fail(ErrRangeSec, p-1)
			}
			a.sec = &a.sections[sn]
			break loop

		case actEsc:
			p++
			ofs += 4

		case actRelExt:

		case actAlign:
			ofs += int32(ins & 255)
			store(ofs)

		case actRelLG:
			k := int32(ins&2047) - lgGlobalBase
			if k >= 0 { // Backward local reference, or global.
				if check.Enabled {
					if int(k) >= len(a.lglabels) {
						a.fail(ErrRangeLG, p-1)
					}
					if k < lgGlobalBase && a.lglabels[k] >= 0 {
						a.fail(ErrRangeLG, p-1)
					}
				}
				pp = putRel(&a.lglabels[k], b, pp)
				break
			}
			// Forward local reference: always chain, even if the label
			// exists (it will be redefined).
			pl := &a.lglabels[k+lgGlobalBase]
			c := *pl
			if c < 0 {
				c = 0 // Start a new chain.
			}
			b[pp.Index()] = c
			*pl = int32(pp)
			pp++

		case actRelPC:
			if check.Enabled && (n < 0 || int(n) >= len(a.pclabels)) {
				a.fail(ErrRangePC, p-1)
			}
			pp = putRel(&a.pclabels[n], b, pp)

		case actLabelLG:
			k := int32(ins&2047) - lgGlobalBase
			if check.Enabled && (k < 0 || int(k) >= len(a.lglabels)) {
				a.fail(ErrRangeLG, p-1)
			}
			pp = a.putLabel(&a.lglabels[k], b, pp, ofs)

		case actLabelPC:
			if check.Enabled && (n < 0 || int(n) >= len(a.pclabels)) {
				a.fail(ErrRangePC, p-1)
			}
			pp = a.putLabel(&a.pclabels[n], b, pp, ofs)

		case actImm:
			e, ok := imm.Field(n, ins)
			if !ok {
				a.fail(ErrRangeImm, p-1)
			}
			store(int32(e))

		case actImmAddrOff:
			store(imm.AddrOff(n, ins))

		case actImmNSR:
			if check.Enabled && ins&0xffff > 1 {
				a.fail(ErrRangeImm, p-1)
			}
			e, ok := imm.NSR(uint64(l), ins&1 != 0)
			if !ok {
				a.fail(ErrRangeImm, p-1)
			}
			store(int32(e))

		case actImmLSB:
			e, ok := imm.LSB(n, ins)
			if !ok {
				a.fail(ErrRangeImm, p-1)
			}
			store(int32(e))

		case actImmWidth1, actImmWidth2:
			if check.Enabled && pp.Index() == 0 {
				a.fail(ErrRangeImm, p-1)
			}
			prev := b[pp.Index()-1]
			var e uint32
			var ok bool
			if act == actImmWidth1 {
				e, ok = imm.Width1(n, prev, ins)
			} else {
				e, ok = imm.Width2(n, prev, ins)
			}
			if !ok {
				a.fail(ErrRangeImm, p-1)
			}
			store(int32(e))

		case actImmShift:
			e, ok := imm.Shift(n, ins)
			if !ok {
				a.fail(ErrRangeImm, p-1)
			}
			store(int32(e))

		case actImmMov:
			e, ok := imm.Mov(l, ins)
			if !ok {
				a.fail(ErrRangeImm, p-1)
			}
			store(int32(e))

		case actImmTBN:
			e, ok := imm.TBN(n, ins)
			if !ok {
				a.fail(ErrRangeImm, p-1)
			}
			store(int32(e))

		case actImmA2H:
			e, ok := imm.A2H(n, ins)
			if !ok {
				a.fail(ErrRangeImm, p-1)
			}
			store(int32(e))

		case actImmA2H64:
			e, ok := imm.A2H64(l, ins)
			if !ok {
				a.fail(ErrRangeImm, p-1)
			}
			store(int32(e))

		case actImmA2HFP:
			e, ok := imm.A2HFP(l, ins)
			if !ok {
				a.fail(ErrRangeImm, p-1)
			}
			store(int32(e))

		case actImmFP8:
			e, ok := imm.FP8(l, ins)
			if !ok {
				a.fail(ErrRangeImm, p-1)
			}
			store(int32(e))

		case actImmHLM:
			e, ok := imm.HLM(n, ins)
			if !ok {
				a.fail(ErrRangeImm, p-1)
			}
			store(int32(e))

		case actImmQSS:
			e, ok := imm.QSS(n, ins)
			if !ok {
				a.fail(ErrRangeImm, p-1)
			}
			store(int32(e))

		case actImmHB:
			e, ok := imm.HB(n, ins)
			if !ok {
				a.fail(ErrRangeImm, p-1)
			}
			store(int32(e))

		case actImmScale:
			e, ok := imm.Scale(n, ins)
			if !ok {
				a.fail(ErrRangeImm, p-1)
			}
			store(int32(e))
		}
	}

	sec.pos = pp
	sec.ofs = ofs
}
