// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imm

import (
	"math/bits"
	"testing"
)

// expandLogical reverses the field packing: the (N, immr, imms) triple
// is decoded into the immediate value per the architectural expansion.
func expandLogical(encode uint32, wide bool) uint64 {
	n := encode >> 22 & 1
	immr := encode >> 16 & 0x3f
	imms := encode >> 10 & 0x3f

	length := bits.Len32(n<<6|^imms&0x3f) - 1
	esize := uint32(1) << length
	s := imms & (esize - 1)
	r := immr & (esize - 1)

	elem := uint64(1)<<(s+1) - 1
	if r != 0 {
		elem = elem>>r | (elem&(uint64(1)<<r-1))<<(esize-r)
	}

	width := uint32(32)
	if wide {
		width = 64
	}

	var v uint64
	for ofs := uint32(0); ofs < width; ofs += esize {
		v |= elem << ofs
	}
	return v
}

func TestNSRTableSizes(t *testing.T) {
	nsrOnce.Do(buildNSR)

	if len(nsr32) != 1302 {
		t.Errorf("32-bit table has %d entries", len(nsr32))
	}
	if len(nsr64) != 5334 {
		t.Errorf("64-bit table has %d entries", len(nsr64))
	}
}

func TestNSRTableOrder(t *testing.T) {
	nsrOnce.Do(buildNSR)

	for _, tab := range [][]nsrEntry{nsr32, nsr64} {
		for i := 1; i < len(tab); i++ {
			if tab[i-1].imm >= tab[i].imm {
				t.Fatalf("entries %d and %d out of order: %#x %#x", i-1, i, tab[i-1].imm, tab[i].imm)
			}
		}
	}
}

func TestNSRRoundTrip(t *testing.T) {
	nsrOnce.Do(buildNSR)

	for _, e := range nsr32 {
		if v := expandLogical(e.encode, false); v != e.imm {
			t.Fatalf("encoding %#x expands to %#x, want %#x", e.encode, v, e.imm)
		}
		if encode, ok := NSR(e.imm, false); !ok || encode != e.encode {
			t.Fatalf("lookup of %#x: %#x %v", e.imm, encode, ok)
		}
	}

	for _, e := range nsr64 {
		if v := expandLogical(e.encode, true); v != e.imm {
			t.Fatalf("encoding %#x expands to %#x, want %#x", e.encode, v, e.imm)
		}
		if encode, ok := NSR(e.imm, true); !ok || encode != e.encode {
			t.Fatalf("lookup of %#x: %#x %v", e.imm, encode, ok)
		}
	}
}

func TestNSRKnown(t *testing.T) {
	known := []struct {
		imm    uint64
		wide   bool
		encode uint32
	}{
		{1, false, 0x000000},
		{0x55555555, false, 0x00f000},
		{0xaaaaaaaa, false, 0x01f000},
		{0xff00ff00, false, 0x089c00},
		{0xffffffff, true, 0x407c00},
		{0x7fffffffffffffff, true, 0x40f800},
	}

	for _, k := range known {
		encode, ok := NSR(k.imm, k.wide)
		if !ok {
			t.Errorf("%#x (wide=%v) not representable", k.imm, k.wide)
			continue
		}
		if encode != k.encode {
			t.Errorf("%#x (wide=%v) encoded as %#x, want %#x", k.imm, k.wide, encode, k.encode)
		}
	}
}

func TestNSRMiss(t *testing.T) {
	miss := []struct {
		imm  uint64
		wide bool
	}{
		{0, false},
		{0, true},
		{0xffffffff, false}, // All ones at operand width.
		{0xffffffffffffffff, true},
		{0x12345678, false},
		{0x5555555500000000, true}, // Half-replicated.
	}

	for _, m := range miss {
		if encode, ok := NSR(m.imm, m.wide); ok {
			t.Errorf("%#x (wide=%v) unexpectedly encoded as %#x", m.imm, m.wide, encode)
		}
	}
}
