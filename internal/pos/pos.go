// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pos implements biased section buffer positions.
package pos

// P is a position within a section buffer: section index in the high 8
// bits, word index in the low 24 bits.  Adding 1 advances the word index.
// The composite survives buffer reallocation, unlike a pointer.
type P int32

const indexBits = 24

func FromSec(sec int) P {
	return P(sec << indexBits)
}

func (p P) Sec() int {
	return int(p) >> indexBits
}

func (p P) Index() int {
	return int(p) & (1<<indexBits - 1)
}
