// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errorpanic

import (
	"import.name/pan"
)

// Handle a recovered panic value.  Errors raised via pan.Panic are
// returned; any other panic is propagated.
func Handle(x interface{}) (err error) {
	if x != nil {
		err = pan.Error(x)
		if err == nil {
			panic(x)
		}
	}

	return
}
