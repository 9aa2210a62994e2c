// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package buffer

import (
	"bytes"
	"io"
	"testing"

	"import.name/pan"
)

func TestStaticLimit(t *testing.T) {
	s := NewStatic(make([]byte, 0, 8))

	s.PutUint32(0xd503201f)
	s.PutUint32(0xd65f03c0)
	if s.Len() != 8 {
		t.Errorf("length %d", s.Len())
	}

	defer func() {
		if err := pan.Error(recover()); err != ErrStaticSize {
			t.Errorf("panic: %v", err)
		}
	}()
	s.PutByte(0)
}

func TestStaticWrite(t *testing.T) {
	s := NewStatic(make([]byte, 0, 4))

	n, err := s.Write([]byte{1, 2, 3, 4, 5})
	if n != 4 || err != io.EOF {
		t.Errorf("wrote %d bytes: %v", n, err)
	}
	if !bytes.Equal(s.Bytes(), []byte{1, 2, 3, 4}) {
		t.Errorf("contents % x", s.Bytes())
	}
}

func TestDynamicGrowth(t *testing.T) {
	d := NewDynamicHint(nil, 16)

	for i := 0; i < 100; i++ {
		d.PutByte(byte(i))
	}
	if d.Len() != 100 {
		t.Errorf("length %d", d.Len())
	}
	for i, b := range d.Bytes() {
		if b != byte(i) {
			t.Fatalf("byte %d is %d", i, b)
		}
	}

	b := d.ResizeBytes(4)
	if len(b) != 4 {
		t.Errorf("resized to %d", len(b))
	}
}
