// Copyright 2024 The cfgdata Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package jsonparser

import "fmt"

// ParseError is returned by Parse and ParseWithSettings on malformed input.
// Its Error string is always a single line of the form "<line>: <message>",
// where line is the 1-based source line the parser had reached when it gave
// up.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d: %s", e.Line, e.Message)
}
