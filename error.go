// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dasm

import (
	"fmt"
)

// CodeError indicates that an error was caused by the action list or
// its runtime arguments, as opposed to an internal consistency bug.
type CodeError interface {
	error
	CodeError() bool
}

// Kind classifies encoder failures.  Kind values are errors themselves,
// usable as targets of errors.Is against Status values.
type Kind int

const (
	ErrNomem Kind = iota + 1
	ErrPhase
	ErrMatchSec
	ErrRangeImm
	ErrRangeSec
	ErrRangeLG
	ErrRangePC
	ErrRangeRel
	ErrUndefLG
	ErrUndefPC
)

var kindText = [...]string{
	ErrNomem:    "out of memory",
	ErrPhase:    "phase error: encoded size disagrees with linked size",
	ErrMatchSec: "unexpected active section",
	ErrRangeImm: "immediate out of range",
	ErrRangeSec: "section index out of range",
	ErrRangeLG:  "local/global label out of range",
	ErrRangePC:  "pc label out of range",
	ErrRangeRel: "relocation distance out of range",
	ErrUndefLG:  "undefined local/global label",
	ErrUndefPC:  "undefined pc label",
}

func (k Kind) Error() string {
	if k > 0 && int(k) < len(kindText) {
		return kindText[k]
	}
	return "unknown encoding error"
}

func (k Kind) CodeError() bool { return true }

// Status carries an error kind together with the originating action
// list offset, or the label number for the undefined-label kinds.
type Status struct {
	Kind Kind
	Ofs  int32
}

func (s Status) Error() string {
	switch s.Kind {
	case ErrUndefLG, ErrUndefPC, ErrMatchSec:
		return fmt.Sprintf("%s %d", s.Kind.Error(), s.Ofs)
	case ErrPhase:
		return s.Kind.Error()
	default:
		return fmt.Sprintf("%s (action list offset %d)", s.Kind.Error(), s.Ofs)
	}
}

func (s Status) CodeError() bool { return true }

// Is reports a match against the bare Kind, so that
// errors.Is(err, ErrRangeRel) works.
func (s Status) Is(err error) bool {
	k, ok := err.(Kind)
	return ok && k == s.Kind
}
