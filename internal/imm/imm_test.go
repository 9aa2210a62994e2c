// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imm

import (
	"math"
	"testing"
)

// Action words are synthesized from the documented low-half layouts;
// the high half (the directive code) is ignored by the encoders.

func fieldIns(at, width, scale uint32, signed bool) uint32 {
	ins := scale<<10 | width<<5 | at
	if signed {
		ins |= 0x8000
	}
	return ins
}

func TestField(t *testing.T) {
	tests := []struct {
		n      int32
		ins    uint32
		encode uint32
		ok     bool
	}{
		{0, fieldIns(10, 12, 0, false), 0, true},
		{4095, fieldIns(10, 12, 0, false), 4095 << 10, true},
		{4096, fieldIns(10, 12, 0, false), 0, false},
		{-1, fieldIns(10, 12, 0, false), 0, false},
		{4096, fieldIns(10, 24, 12, false), 1 << 10, true}, // Pre-shifted.
		{4100, fieldIns(10, 24, 12, false), 0, false},      // Unaligned.
		{63, fieldIns(5, 7, 0, true), 63 << 5, true},
		{-64, fieldIns(5, 7, 0, true), 64 << 5, true},
		{64, fieldIns(5, 7, 0, true), 0, false},
		{-65, fieldIns(5, 7, 0, true), 0, false},
	}

	for _, test := range tests {
		encode, ok := Field(test.n, test.ins)
		if ok != test.ok || encode != test.encode {
			t.Errorf("Field(%d, %#x) = %#x, %v; want %#x, %v", test.n, test.ins, encode, ok, test.encode, test.ok)
		}
	}
}

func TestAddrOff(t *testing.T) {
	tests := []struct {
		n      int32
		scale  uint32
		encode int32
	}{
		{0, 3, 0},
		{8, 3, 1 << 10},
		{32760, 3, 4095 << 10},
		{-8, 3, 1 | (-8&0x1ff)<<12},  // Negative: unscaled form.
		{255, 3, 1 | (255&0x1ff)<<12}, // Unaligned: unscaled form.
		{3, 1, 1 | (3&0x1ff)<<12},
		{-256, 0, 1 | (-256&0x1ff)<<12},
	}

	for _, test := range tests {
		if encode := AddrOff(test.n, test.scale<<10); encode != test.encode {
			t.Errorf("AddrOff(%d, scale %d) = %#x, want %#x", test.n, test.scale, encode, test.encode)
		}
	}
}

func TestLSBShift(t *testing.T) {
	if e, ok := LSB(0, 0); !ok || e != 0 {
		t.Errorf("LSB(0) = %#x, %v", e, ok)
	}
	if e, ok := LSB(5, 0); !ok || e != 27<<16 {
		t.Errorf("LSB(5) = %#x, %v", e, ok)
	}
	if e, ok := LSB(63, 1); !ok || e != 1<<16 {
		t.Errorf("LSB(63) wide = %#x, %v", e, ok)
	}
	if _, ok := LSB(32, 0); ok {
		t.Error("LSB(32) accepted at 32-bit width")
	}

	if e, ok := Shift(0, 0); !ok || e != 31<<10 {
		t.Errorf("Shift(0) = %#x, %v", e, ok)
	}
	if e, ok := Shift(12, 0); !ok || e != 20<<16|19<<10 {
		t.Errorf("Shift(12) = %#x, %v", e, ok)
	}
	if _, ok := Shift(64, 1); ok {
		t.Error("Shift(64) accepted at 64-bit width")
	}
}

func TestWidth(t *testing.T) {
	prev := int32(24 << 16) // LSB(8) at 32-bit width.

	if e, ok := Width1(24, prev, 0); !ok || e != 23<<10 {
		t.Errorf("Width1(24) = %#x, %v", e, ok)
	}
	if _, ok := Width1(25, prev, 0); ok {
		t.Error("Width1(25) exceeds the lsb bound")
	}
	if _, ok := Width1(0, prev, 0); ok {
		t.Error("Width1(0) accepted")
	}

	prev = 5 << 16 // Direct immr field.

	if e, ok := Width2(4, prev, 0); !ok || e != 8<<10 {
		t.Errorf("Width2(4) = %#x, %v", e, ok)
	}
	if e, ok := Width2(27, prev, 0); !ok || e != 31<<10 {
		t.Errorf("Width2(27) = %#x, %v", e, ok)
	}
	if _, ok := Width2(28, prev, 0); ok {
		t.Error("Width2(28) exceeds the operand width")
	}
	if _, ok := Width2(0, prev, 0); ok {
		t.Error("Width2(0) accepted")
	}
}

func TestMov(t *testing.T) {
	tests := []struct {
		v      int64
		wide   bool
		encode uint32
		ok     bool
	}{
		{0, false, 0x52800000, true},                     // movz wzr-form payload 0
		{0x1234, false, 0x52800000 | 0x1234<<5, true},    // movz
		{0x12340000, false, 0x52a00000 | 0x1234<<5, true}, // movz, hw=1
		{-1, false, 0x12800000, true},                    // movn #0
		{-2, false, 0x12800000 | 1<<5, true},             // movn #1
		{0x55555555, false, 0x32000000 | 0xf000, true},   // orr (logical immediate)
		{0x12345678, false, 0, false},
		{0x123400000000, true, 0x52c00000 | 0x1234<<5, true}, // movz, hw=2
		{-1, true, 0x12800000, true},                         // movn #0 (sf comes from the template)
	}

	for _, test := range tests {
		ins := uint32(0)
		if test.wide {
			ins = 1
		}
		encode, ok := Mov(test.v, ins)
		if ok != test.ok || encode != test.encode {
			t.Errorf("Mov(%#x, wide=%v) = %#x, %v; want %#x, %v", test.v, test.wide, encode, ok, test.encode, test.ok)
		}
	}
}

func TestTBN(t *testing.T) {
	if e, ok := TBN(31, 0); !ok || e != 31<<19 {
		t.Errorf("TBN(31) = %#x, %v", e, ok)
	}
	if e, ok := TBN(63, 1); !ok || e != 31<<19 {
		t.Errorf("TBN(63) wide = %#x, %v", e, ok)
	}
	if _, ok := TBN(32, 0); ok {
		t.Error("TBN(32) accepted at 32-bit width")
	}
	if _, ok := TBN(31, 1); ok {
		t.Error("TBN(31) accepted at 64-bit width")
	}
}

func TestA2H(t *testing.T) {
	if e, ok := A2H(255, 0); !ok || e != 7<<16|31<<5 {
		t.Errorf("A2H(255) = %#x, %v", e, ok)
	}
	if _, ok := A2H(256, 0); ok {
		t.Error("A2H(256) accepted")
	}
	if _, ok := A2H(-1, 0); ok {
		t.Error("A2H(-1) accepted")
	}

	if e, ok := A2H64(0xff, 0); !ok || e != 1<<5 {
		t.Errorf("A2H64(0xff) = %#x, %v", e, ok)
	}
	if e, ok := A2H64(-1, 0); !ok || e != 7<<16|31<<5 {
		t.Errorf("A2H64(-1) = %#x, %v", e, ok)
	}
	if _, ok := A2H64(0x0100, 0); ok {
		t.Error("A2H64 accepted a non-mask byte")
	}
}

func TestFloatImm(t *testing.T) {
	bits := func(f float64) int64 { return int64(math.Float64bits(f)) }

	if e, ok := A2HFP(bits(1.0), 0); !ok || e != 1<<16|1<<9 {
		t.Errorf("A2HFP(1.0) = %#x, %v", e, ok)
	}
	if e, ok := FP8(bits(1.0), 0); !ok || e != 3<<17 {
		t.Errorf("FP8(1.0) = %#x, %v", e, ok)
	}
	if e, ok := FP8(bits(2.0), 0); !ok || e != 1<<19 {
		t.Errorf("FP8(2.0) = %#x, %v", e, ok)
	}
	if e, ok := FP8(bits(3.0), 0); !ok || e != 1<<19|8<<13 {
		t.Errorf("FP8(3.0) = %#x, %v", e, ok)
	}
	if e, ok := FP8(bits(-1.0), 0); !ok || e != 1<<20|3<<17 {
		t.Errorf("FP8(-1.0) = %#x, %v", e, ok)
	}
	if _, ok := FP8(bits(0.0), 0); ok {
		t.Error("FP8(0.0) accepted")
	}
	if _, ok := FP8(bits(1e10), 0); ok {
		t.Error("FP8(1e10) accepted")
	}
}

func TestHLM(t *testing.T) {
	if e, ok := HLM(7, 3); !ok || e != 1<<11|3<<20 {
		t.Errorf("HLM(7, 3 bits) = %#x, %v", e, ok)
	}
	if e, ok := HLM(3, 2); !ok || e != 1<<11|1<<21 {
		t.Errorf("HLM(3, 2 bits) = %#x, %v", e, ok)
	}
	if e, ok := HLM(1, 1); !ok || e != 1<<11 {
		t.Errorf("HLM(1, 1 bit) = %#x, %v", e, ok)
	}
	if _, ok := HLM(8, 3); ok {
		t.Error("HLM(8) accepted for a 3-bit index")
	}
	if _, ok := HLM(0, 4); ok {
		t.Error("HLM accepted a 4-bit index width")
	}
}

func TestQSS(t *testing.T) {
	if e, ok := QSS(15, 4); !ok || e != 1<<30|7<<10 {
		t.Errorf("QSS(15, 4 bits) = %#x, %v", e, ok)
	}
	if e, ok := QSS(7, 3); !ok || e != 1<<30|3<<11 {
		t.Errorf("QSS(7, 3 bits) = %#x, %v", e, ok)
	}
	if e, ok := QSS(3, 2); !ok || e != 1<<30|1<<12 {
		t.Errorf("QSS(3, 2 bits) = %#x, %v", e, ok)
	}
	if e, ok := QSS(1, 1); !ok || e != 1<<30 {
		t.Errorf("QSS(1, 1 bit) = %#x, %v", e, ok)
	}
	if _, ok := QSS(16, 4); ok {
		t.Error("QSS(16) accepted for a 4-bit index")
	}
}

func TestHB(t *testing.T) {
	// immh:immb is the complement of the shift within the element size.
	if e, ok := HB(1, 3); !ok || e != 7<<16 {
		t.Errorf("HB(1, 3 bits) = %#x, %v", e, ok)
	}
	if e, ok := HB(8, 3); !ok || e != 0 {
		t.Errorf("HB(8, 3 bits) = %#x, %v", e, ok)
	}
	if e, ok := HB(64, 6); !ok || e != 0 {
		t.Errorf("HB(64, 6 bits) = %#x, %v", e, ok)
	}
	if _, ok := HB(0, 3); ok {
		t.Error("HB(0) accepted")
	}
	if _, ok := HB(65, 6); ok {
		t.Error("HB(65) accepted")
	}
}

func TestScale(t *testing.T) {
	if e, ok := Scale(1, 0); !ok || e != 31<<10 {
		t.Errorf("Scale(1) = %#x, %v", e, ok)
	}
	if e, ok := Scale(32, 0); !ok || e != 0 {
		t.Errorf("Scale(32) = %#x, %v", e, ok)
	}
	if e, ok := Scale(64, 1); !ok || e != 0 {
		t.Errorf("Scale(64) wide = %#x, %v", e, ok)
	}
	if _, ok := Scale(0, 0); ok {
		t.Error("Scale(0) accepted")
	}
	if _, ok := Scale(33, 0); ok {
		t.Error("Scale(33) accepted at 32-bit width")
	}
}
