// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package imm translates runtime arguments into AArch64 instruction
// immediate fields.  Each encoder is a pure function of the argument
// and the action word's low half; the boolean result is false when the
// value cannot be represented (always true in unchecked builds, except
// for table lookup misses).
package imm

import (
	"gate.computer/dasm/internal/check"
)

// Width flag conventions shared by several encoders: action word bit 0
// selects the 64-bit variant of the field.
func widthMax(ins uint32) int32 {
	if ins&1 != 0 {
		return 63
	}
	return 31
}

// Field packs n into a fixed field.  Action word layout: bit 15 signed
// flag, bits 10-14 pre-shift, bits 5-9 field width, bits 0-4 target bit
// position.
func Field(n int32, ins uint32) (uint32, bool) {
	scale := (ins >> 10) & 31
	width := (ins >> 5) & 31

	if check.Enabled {
		if n&(1<<scale-1) != 0 {
			return 0, false
		}
		if ins&0x8000 != 0 {
			if (n+1<<(width-1))>>width != 0 {
				return 0, false
			}
		} else if n>>width != 0 {
			return 0, false
		}
	}

	return uint32((n>>scale)&(1<<width-1)) << (ins & 31), true
}

// AddrOff encodes a load/store address offset.  Negative or unscaled
// offsets in [-256, 255] select the unscaled-offset instruction form:
// the stored word carries the imm9 payload and a flag bit consumed by
// the final pass (which clears bit 24 of the instruction).  Scaled
// offsets use the unsigned imm12 field.
func AddrOff(n int32, ins uint32) int32 {
	scale := (ins >> 10) & 31

	if (n >= -256 && n < 0) || (n <= 255 && n&(1<<scale-1) != 0) {
		return 1 | (n&0x1ff)<<12
	}
	return ((n >> scale) & 0xfff) << 10
}

// LSB encodes a bitfield least significant bit position as the immr
// field (negated-and-masked rotate convention).
func LSB(n int32, ins uint32) (uint32, bool) {
	max := widthMax(ins)

	if check.Enabled {
		if ins&0xffff > 1 {
			return 0, false
		}
		if n < 0 || n > max {
			return 0, false
		}
	}

	return uint32(-n&max) << 16, true
}

// Width1 encodes a bitfield width as the imms field, counted from bit 0
// and bounded by the previously encoded immr (prev is the stored LSB
// encoding).
func Width1(n, prev int32, ins uint32) (uint32, bool) {
	max := widthMax(ins)

	if check.Enabled {
		if ins&0xffff > 1 {
			return 0, false
		}
		if n-1 < 0 || n-1 >= prev>>16 {
			return 0, false
		}
	}

	return uint32((n-1)&max) << 10, true
}

// Width2 encodes a bitfield width as the imms field, counted upward
// from the previously encoded immr.
func Width2(n, prev int32, ins uint32) (uint32, bool) {
	max := widthMax(ins)
	immr := prev >> 16
	imms := immr + n - 1

	if check.Enabled {
		if ins&0xffff > 1 {
			return 0, false
		}
		if imms < immr || imms > max {
			return 0, false
		}
	}

	return uint32(imms&max) << 10, true
}

// Shift encodes a logical shift amount as the immr/imms pair using the
// complement relationship of rotate-based shift aliases.
func Shift(n int32, ins uint32) (uint32, bool) {
	max := widthMax(ins)

	if check.Enabled {
		if ins&0xffff > 1 {
			return 0, false
		}
		if n < 0 || n > max {
			return 0, false
		}
	}

	return uint32(-n&max)<<16 | uint32((max-n)&max)<<10, true
}

// wide matches values which are zero or have exactly one non-zero
// 16-bit lane, yielding the hw/imm16 fields of the move-wide formats.
func wide(v uint64, ins uint32) (uint32, bool) {
	lanes := 2
	if ins&1 != 0 {
		lanes = 4
	}

	if v == 0 {
		return 0, true
	}

	m := uint64(0xffff)
	for i := 0; i < lanes; i++ {
		if v&m != 0 && v&^m == 0 {
			return uint32(v>>(i*16))<<5 | uint32(i)<<21, true
		}
		m <<= 16
	}

	return 0, false
}

// Wide encodes a move-wide immediate (MOVZ/MOVK payload).
func Wide(v uint64, ins uint32) (uint32, bool) {
	return wide(v, ins)
}

// Mov synthesizes a move immediate: MOVZ form first, then inverted
// MOVN form (excluding two 32-bit patterns reserved for the legacy
// preprocessor), then the logical immediate form.  Exhausting all
// three is a range failure even in unchecked builds.
func Mov(v int64, ins uint32) (uint32, bool) {
	if check.Enabled && ins&0xffff > 1 {
		return 0, false
	}

	if e, ok := wide(uint64(v), ins); ok {
		return e | 0x52800000, true
	}
	if e, ok := wide(^uint64(v), ins); ok && !(ins&1 == 0 && (v == 0xffff0000 || v == 0x0000ffff)) {
		return e | 0x12800000, true
	}
	if e, ok := NSR(uint64(v), ins&1 != 0); ok {
		return e | 0x32000000, true
	}
	return 0, false
}

// TBN encodes a test-bit number.  The 64-bit flag restricts the range
// to the upper half; the b5 bit lives in the opcode template.
func TBN(n int32, ins uint32) (uint32, bool) {
	if check.Enabled {
		if ins&0xffff > 1 {
			return 0, false
		}
		if ins&1 != 0 {
			if n < 32 || n > 63 {
				return 0, false
			}
		} else if n < 0 || n > 31 {
			return 0, false
		}
	}

	return uint32(n&0x1f) << 19, true
}

// A2H encodes an 8-bit immediate into the abc/defgh fields of the
// AdvSIMD modified-immediate format.
func A2H(n int32, ins uint32) (uint32, bool) {
	if check.Enabled && (n < 0 || n > 255) {
		return 0, false
	}

	return uint32(n>>5)<<16 | uint32(n&0x1f)<<5, true
}

// A2H64 encodes a 64-bit immediate whose bytes are each 0x00 or 0xff
// (the MOVI 64-bit byte-mask form).
func A2H64(v int64, ins uint32) (uint32, bool) {
	var e uint32

	for i := 0; i < 8; i++ {
		switch b := uint64(v) >> (i * 8) & 0xff; b {
		case 0xff:
			e |= 1 << i
		case 0:
		default:
			return 0, false
		}
	}

	return (e>>5)<<16 | (e&0x1f)<<5, true
}

// fp8Fields validates that the argument (IEEE-754 double bits) fits the
// 8-bit float immediate format: the exponent must collapse to one of
// the two legal compressed patterns and only the top four significand
// bits may be set (lower bits are truncated like the original engine).
func fp8Fields(v int64) (s, e, sig uint32, ok bool) {
	s = uint32(uint64(v) >> 63)
	e = uint32(v>>52) & 0x7ff
	sig = uint32(v>>48) & 0xf
	ok = (e&0x400 != 0 && e&0x3fc == 0) || (e&0x400 == 0 && e&0x3fc == 0x3fc)
	return
}

// A2HFP encodes a floating-point immediate into the AdvSIMD
// modified-immediate field layout (a:b:c at bits 18:17:16, d at bit 9,
// efgh at bits 5-8).
func A2HFP(v int64, ins uint32) (uint32, bool) {
	s, e, sig, ok := fp8Fields(v)
	if check.Enabled && !ok {
		return 0, false
	}

	return s<<18 | (e>>10)<<17 | (e>>1&1)<<16 | (e&1)<<9 | sig<<5, true
}

// FP8 encodes a floating-point immediate into the scalar FMOV imm8
// field layout (a:b at bits 20:19, cd at bits 17-18, efgh at bits
// 13-16).
func FP8(v int64, ins uint32) (uint32, bool) {
	s, e, sig, ok := fp8Fields(v)
	if check.Enabled && !ok {
		return 0, false
	}

	return s<<20 | (e>>10)<<19 | (e&3)<<17 | sig<<13, true
}

// HLM encodes an AdvSIMD element index into the H:L:M bits.  The action
// word's low half carries the index width (1-3 bits).
func HLM(n int32, ins uint32) (uint32, bool) {
	bits := ins & 0xffff

	if check.Enabled {
		if bits < 1 || bits > 3 || n < 0 || n >= 1<<bits {
			return 0, false
		}
	}

	switch bits {
	case 3:
		return uint32(n>>2&1)<<11 | uint32(n&3)<<20, true
	case 2:
		return uint32(n>>1&1)<<11 | uint32(n&1)<<21, true
	default:
		return uint32(n&1) << 11, true
	}
}

// QSS encodes an AdvSIMD element index into the Q:S:size bits.  The
// action word's low half carries the index width (1-4 bits).
func QSS(n int32, ins uint32) (uint32, bool) {
	bits := ins & 0xffff

	if check.Enabled {
		if bits < 1 || bits > 4 || n < 0 || n >= 1<<bits {
			return 0, false
		}
	}

	switch bits {
	case 4:
		return uint32(n>>3&1)<<30 | uint32(n&7)<<10, true
	case 3:
		return uint32(n>>2&1)<<30 | uint32(n&3)<<11, true
	case 2:
		return uint32(n>>1&1)<<30 | uint32(n&1)<<12, true
	default:
		return uint32(n&1) << 30, true
	}
}

// HB encodes an AdvSIMD shift amount into the immh:immb field as the
// complement within the element size (3-6 bits wide).
func HB(n int32, ins uint32) (uint32, bool) {
	bits := ins & 0xffff

	if check.Enabled {
		if bits < 3 || bits > 6 || n < 1 || n > 1<<bits {
			return 0, false
		}
	}

	max := int32(1) << bits
	return uint32((max-n)&(max-1)) << 16, true
}

// Scale encodes a fixed-point scale (fbits) as the complement of the
// operand width.
func Scale(n int32, ins uint32) (uint32, bool) {
	max := int32(32)
	if ins&1 != 0 {
		max = 64
	}

	if check.Enabled {
		if ins&0xffff > 1 {
			return 0, false
		}
		if n < 1 || n > max {
			return 0, false
		}
	}

	return uint32((max-n)&(max-1)) << 10, true
}
