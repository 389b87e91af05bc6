// Copyright 2024 The cfgdata Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

//go:build debug

package cfgdata

import (
	"errors"
	"testing"
)

func TestToNumberOnWrongTypePanicsInDebugBuilds(t *testing.T) {
	cd := Make(nil, nil, 0, 0)
	str := cd.AddString("not a number")

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("ToNumber on a string Loc did not panic in a debug build")
		}
		if !errors.Is(r.(error), ErrWrongType) {
			t.Fatalf("panic value = %v, want ErrWrongType", r)
		}
	}()
	cd.ToNumber(str)
}

func TestToStringOnWrongTypePanicsInDebugBuilds(t *testing.T) {
	cd := Make(nil, nil, 0, 0)
	num := cd.AddNumber(1)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("ToString on a number Loc did not panic in a debug build")
		}
		if !errors.Is(r.(error), ErrWrongType) {
			t.Fatalf("panic value = %v, want ErrWrongType", r)
		}
	}()
	cd.ToString(num)
}
