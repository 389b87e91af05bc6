// Copyright 2024 The cfgdata Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package cfgdata

import "errors"

// Sentinel errors used as panic values by arena and string-table
// operations. Out-of-range indexed access does not error; it returns Null()
// or the zero value, per the contract in spec section 7.
var (
	// ErrBufferTooSmall is the panic value of NewStringTable (and so of
	// Make, which calls it) when the requested size cannot even hold the
	// fixed header, one hash slot and the reserved empty string.
	ErrBufferTooSmall = errors.New("cfgdata: buffer smaller than minimum table size")

	// ErrWrongType is the panic value typed accessors (ToNumber, ToString)
	// raise when called on a Loc whose tag does not match, but only in
	// binaries built with the debug tag (-tags debug; see assert_debug.go).
	// In ordinary builds this condition is undefined behavior per spec
	// section 7: checkType is a no-op (assert_release.go) and the accessor
	// reads whatever bytes happen to be at the offset.
	ErrWrongType = errors.New("cfgdata: loc has the wrong type for this accessor")
)
