// Copyright 2024 The cfgdata Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package cfgdata

import "github.com/niklasfrykholm/cfgdata/jsonparser"

// Fuzz is a go-fuzz entry point exercising NormalizeSource and the parser's
// most permissive settings against arbitrary input.
func Fuzz(data []byte) int {
	src, err := NormalizeSource(data)
	if err != nil {
		return 0
	}

	cd := Make(nil, nil, 0, 0)
	defer cd.Free()

	err = jsonparser.ParseWithSettings(src, cd, jsonparser.Settings{
		UnquotedKeys:           true,
		CComments:              true,
		ImplicitRootObject:     true,
		OptionalCommas:         true,
		EqualsForColon:         true,
		PythonMultilineStrings: true,
		AllowControlCharacters: true,
	})
	if err != nil {
		return 0
	}
	return 1
}
