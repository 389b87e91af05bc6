// Copyright 2024 The cfgdata Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package cfgdata

import "testing"

func TestMakeLocRoundTrip(t *testing.T) {
	tests := []struct {
		typ    ValueType
		offset int
	}{
		{TypeNull, 0},
		{TypeNumber, 12},
		{TypeString, 4096},
		{TypeArray, maxOffset},
	}

	for _, tt := range tests {
		loc := makeLoc(tt.typ, tt.offset)
		if got := loc.Type(); got != tt.typ {
			t.Errorf("makeLoc(%v, %d).Type() = %v, want %v", tt.typ, tt.offset, got, tt.typ)
		}
		if got := loc.Offset(); got != tt.offset {
			t.Errorf("makeLoc(%v, %d).Offset() = %d, want %d", tt.typ, tt.offset, got, tt.offset)
		}
	}
}

func TestMakeLocPanicsOnOverflow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("makeLoc did not panic on an offset that does not fit")
		}
	}()
	makeLoc(TypeNumber, maxOffset+1)
}

func TestNullIsNull(t *testing.T) {
	if !Null().IsNull() {
		t.Fatalf("Null().IsNull() = false, want true")
	}
	if False().IsNull() {
		t.Fatalf("False().IsNull() = true, want false")
	}
	if True().Type() != TypeTrue {
		t.Fatalf("True().Type() = %v, want TypeTrue", True().Type())
	}
}
