// Copyright 2024 The cfgdata Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

//go:build debug

package cfgdata

// checkType panics with ErrWrongType if loc's tag does not match want. Only
// compiled in under the debug build tag (go test/build -tags debug); the
// accessors remain UB-on-mismatch, as documented, in ordinary builds.
func (cd *ConfigData) checkType(loc Loc, want ValueType) {
	if loc.Type() != want {
		panic(ErrWrongType)
	}
}
