// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !dasm_unchecked

// Package check selects between checked and unchecked encoder builds.
package check

// Enabled gates range and label validations.  Build with the
// dasm_unchecked tag to skip them for trusted, pre-validated action
// lists.
const Enabled = true
