// Copyright 2024 The cfgdata Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

//go:build !debug

package cfgdata

// checkType is a no-op outside the debug build tag: loc.Type() != want is
// documented UB here, not a checked error.
func (cd *ConfigData) checkType(loc Loc, want ValueType) {}
