// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dasm

// An action list is a read-only sequence of 32-bit words.  A word whose
// high half is actMax or more is a literal AArch64 instruction; smaller
// high halves are directives with auxiliary data in the low half.
// Literal words with a small high half must be escaped with Esc.
//
// Directives at actRelPC and beyond consume one runtime argument from
// the Put call, in action list order.
const (
	actStop = iota
	actSection
	actEsc
	actRelExt

	// The following actions need a buffer position.
	actAlign
	actRelLG
	actLabelLG

	// The following actions also consume an argument.
	actRelPC
	actLabelPC
	actImm
	actImmAddrOff
	actImmNSR
	actImmLSB
	actImmWidth1
	actImmWidth2
	actImmShift
	actImmMov
	actImmTBN
	actImmA2H
	actImmA2H64
	actImmA2HFP
	actImmFP8
	actImmHLM
	actImmQSS
	actImmHB
	actImmScale

	actMax
)

// RelWidth selects the relocation field layout patched into the
// preceding instruction word by the final pass.
type RelWidth uint32

const (
	Page21 RelWidth = iota << 12 // 4 KiB page delta in [5:23]:[29:30] (ADRP).
	Byte21                       // Byte delta in [5:23]:[29:30], +-1 MiB (ADR).
	Word14                       // Word delta in [5:18], +-32 KiB (TBZ).
	Word19                       // Word delta in [5:23], +-1 MiB (B.cond, CBZ).
	Word26                       // Word delta in [0:25], +-128 MiB (B, BL).
)

// Label numbering follows the DynASM convention: 1-9 are forward local
// references, 11-19 backward local references and local definitions,
// and GlobalLabel(g) the g'th global.
func GlobalLabel(g int) int {
	return 20 + g
}

// Stop terminates an action list fragment.
func Stop() uint32 {
	return actStop << 16
}

// SwitchSection terminates a fragment and makes sec the active section.
func SwitchSection(sec int) uint32 {
	return actSection<<16 | uint32(sec&255)
}

// Esc marks the next action list word as a literal instruction word.
func Esc() uint32 {
	return actEsc << 16
}

// RelExt records an externally resolved relocation against symbol
// index.  The delta is obtained from the Extern hook during encoding.
func RelExt(w RelWidth, index int, relative bool) uint32 {
	ins := actRelExt<<16 | uint32(w) | uint32(index)&2047
	if !relative {
		ins |= 2048
	}
	return ins
}

// Align pads the section to a multiple of pow2 bytes with NOP words.
func Align(pow2 int) uint32 {
	return actAlign<<16 | uint32(pow2-1)&255
}

// RelLG records a relocation against a local or global label.
func RelLG(w RelWidth, label int) uint32 {
	return actRelLG<<16 | uint32(w) | uint32(label)&2047
}

// LabelLG defines a local or global label at the current position.
func LabelLG(label int) uint32 {
	return actLabelLG<<16 | uint32(label)&2047
}

// RelPC records a relocation against the PC label given as a runtime
// argument.
func RelPC(w RelWidth) uint32 {
	return actRelPC<<16 | uint32(w)
}

// LabelPC defines the PC label given as a runtime argument.
func LabelPC() uint32 {
	return actLabelPC << 16
}

// Imm packs an argument into a fixed field of the preceding
// instruction: right-shifted by scale, masked to width bits, placed at
// bit position at.  Signed fields get a two's-complement range check.
func Imm(at, width, scale uint32, signed bool) uint32 {
	ins := actImm<<16 | (scale&31)<<10 | (width&31)<<5 | at&31
	if signed {
		ins |= 0x8000
	}
	return ins
}

// ImmAddrOff packs a load/store address offset scaled by 1<<scale,
// falling back to the unscaled-offset instruction form for negative or
// unaligned offsets in [-256, 255].
func ImmAddrOff(scale uint32) uint32 {
	return actImmAddrOff<<16 | (scale&31)<<10
}

func immWidth(act int, wide bool) uint32 {
	ins := uint32(act) << 16
	if wide {
		ins |= 1
	}
	return ins
}

// ImmNSR packs an argument as a logical (bitmask) immediate.
func ImmNSR(wide bool) uint32 { return immWidth(actImmNSR, wide) }

// ImmLSB packs a bitfield least significant bit position (immr).
func ImmLSB(wide bool) uint32 { return immWidth(actImmLSB, wide) }

// ImmWidth1 packs a bitfield width counted from bit 0 (imms); must
// follow ImmLSB.
func ImmWidth1(wide bool) uint32 { return immWidth(actImmWidth1, wide) }

// ImmWidth2 packs a bitfield width counted from the lsb (imms); must
// follow ImmLSB.
func ImmWidth2(wide bool) uint32 { return immWidth(actImmWidth2, wide) }

// ImmShift packs a shift amount as the complementary immr/imms pair.
func ImmShift(wide bool) uint32 { return immWidth(actImmShift, wide) }

// ImmMov synthesizes a complete move-immediate instruction, trying the
// MOVZ, MOVN and logical immediate forms in order.
func ImmMov(wide bool) uint32 { return immWidth(actImmMov, wide) }

// ImmTBN packs a test-bit number (0-31, or 32-63 if wide).
func ImmTBN(wide bool) uint32 { return immWidth(actImmTBN, wide) }

// ImmA2H packs an 8-bit immediate into the abc/defgh fields.
func ImmA2H() uint32 { return actImmA2H << 16 }

// ImmA2H64 packs a 64-bit byte-mask immediate (MOVI.2D form).
func ImmA2H64() uint32 { return actImmA2H64 << 16 }

// ImmA2HFP packs a floating-point immediate into the abc/defgh fields.
func ImmA2HFP() uint32 { return actImmA2HFP << 16 }

// ImmFP8 packs a floating-point immediate into the scalar imm8 field.
func ImmFP8() uint32 { return actImmFP8 << 16 }

// ImmHLM packs a vector element index of the given width (1-3 bits)
// into the H:L:M bits.
func ImmHLM(bits int) uint32 {
	return actImmHLM<<16 | uint32(bits)&0xffff
}

// ImmQSS packs a vector element index of the given width (1-4 bits)
// into the Q:S:size bits.
func ImmQSS(bits int) uint32 {
	return actImmQSS<<16 | uint32(bits)&0xffff
}

// ImmHB packs a vector shift amount into the immh:immb field; bits
// (3-6) selects the element size.
func ImmHB(bits int) uint32 {
	return actImmHB<<16 | uint32(bits)&0xffff
}

// ImmScale packs a fixed-point scale (1-32, or 1-64 if wide).
func ImmScale(wide bool) uint32 { return immWidth(actImmScale, wide) }
