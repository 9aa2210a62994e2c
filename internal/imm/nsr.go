// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imm

import (
	"sort"
	"sync"
)

// Logical immediates are runs of ones rotated within an element of 2,
// 4, 8, 16, 32 or 64 bits and replicated to the operand width.  The
// instruction field is the (N, immr, imms) triple.  Every representable
// value is enumerated up front and the tables are sorted by immediate
// value for binary search:
//
//	N   imms    immr   esize  S+1    R
//	1  ssssss  rrrrrr   64    1-63  0-63
//	0  0sssss  0rrrrr   32    1-31  0-31
//	0  10ssss  00rrrr   16    1-15  0-15
//	0  110sss  000rrr    8    1-7   0-7
//	0  1110ss  0000rr    4    1-3   0-3
//	0  11110s  00000r    2    1     0-1
//
// 32*31 + 16*15 + 8*7 + 4*3 + 2*1 = 1302 values at 32-bit width, plus
// 64*63 more at 64-bit width for a total of 5334.

type nsrEntry struct {
	imm    uint64
	encode uint32
}

var (
	nsrOnce sync.Once
	nsr32   []nsrEntry
	nsr64   []nsrEntry
)

func buildNSR() {
	nsr32 = make([]nsrEntry, 0, 1302)
	nsr64 = make([]nsrEntry, 0, 5334)

	for n := 1; n < 6; n++ {
		esize := 1 << n
		imms := uint32(^(1<<(n+1) - 1)) & 0x3f

		for s := 1; s < esize; s++ {
			t := uint64(1)<<s - 1

			for r := 0; r < esize; r++ {
				t1 := t
				if r != 0 {
					t1 = t>>r | (t&(uint64(1)<<r-1))<<(esize-r)
				}

				var u32 uint32
				for es := 0; es < 32; es += esize {
					u32 |= uint32(t1 << es)
				}

				var u64 uint64
				for es := 0; es < 64; es += esize {
					u64 |= t1 << es
				}

				encode := (imms|uint32(s-1))<<10 | uint32(r)<<16
				nsr32 = append(nsr32, nsrEntry{uint64(u32), encode})
				nsr64 = append(nsr64, nsrEntry{u64, encode})
			}
		}
	}

	// 64-bit element: N=1, no replication.
	for s := 1; s <= 63; s++ {
		t := uint64(1)<<s - 1

		for r := 0; r <= 63; r++ {
			u64 := t
			if r != 0 {
				u64 = t>>r | (t&(uint64(1)<<r-1))<<(64-r)
			}

			encode := 0x400000 | uint32(s-1)<<10 | uint32(r)<<16
			nsr64 = append(nsr64, nsrEntry{u64, encode})
		}
	}

	sort.Slice(nsr32, func(i, j int) bool { return nsr32[i].imm < nsr32[j].imm })
	sort.Slice(nsr64, func(i, j int) bool { return nsr64[i].imm < nsr64[j].imm })
}

// NSR looks up the logical immediate encoding of v at the given operand
// width.  All-zeros and all-ones values are not representable and miss.
func NSR(v uint64, wide bool) (uint32, bool) {
	nsrOnce.Do(buildNSR)

	t := nsr32
	if wide {
		t = nsr64
	}

	i := sort.Search(len(t), func(i int) bool { return t[i].imm >= v })
	if i < len(t) && t[i].imm == v {
		return t[i].encode, true
	}
	return 0, false
}
