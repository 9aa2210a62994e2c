// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !(linux && arm64)

package main

import (
	"errors"
)

func run(text []byte) (uint64, error) {
	return 0, errors.New("execution requires linux/arm64")
}
