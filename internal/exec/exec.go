// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package exec branches to encoded machine code.  The code must follow
// the platform calling convention and end with a RET.  Call is only
// available on arm64.
package exec
