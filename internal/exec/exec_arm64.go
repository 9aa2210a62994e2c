// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build arm64

package exec

// Call branches to the start of text and returns the value left in R0.
// The memory must already be executable.
func Call(text []byte) uint64
