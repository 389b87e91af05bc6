// Copyright 2024 The cfgdata Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

// Package jsonparser parses JSON, and a set of independently toggleable
// relaxations of it, directly into a cfgdata.ConfigData arena.
package jsonparser

// Settings toggles the eight grammar relaxations a parse may apply on top
// of strict JSON. The zero value is strict JSON.
type Settings struct {
	// UnquotedKeys allows object keys matching [A-Za-z0-9_-]+ to appear
	// without surrounding quotes.
	UnquotedKeys bool

	// CComments allows // line comments and /* block */ comments anywhere
	// whitespace is allowed.
	CComments bool

	// ImplicitRootObject allows the document to omit the outermost { }: if
	// the first non-whitespace character is not '{', the whole input (or
	// nothing, for an empty input) is parsed as the object's members.
	ImplicitRootObject bool

	// OptionalCommas treats ',' as insignificant whitespace, so array and
	// object members may be separated by a comma, by whitespace alone, or
	// both.
	OptionalCommas bool

	// EqualsForColon allows '=' wherever ':' would otherwise be required
	// between an object key and its value.
	EqualsForColon bool

	// PythonMultilineStrings allows """ ... """ raw string literals, whose
	// content runs verbatim (no escape processing) until the first """ not
	// immediately followed by another ".
	PythonMultilineStrings bool

	// SkipEscapeSequences disables backslash escape processing inside
	// ordinary quoted strings: a backslash is an ordinary character.
	SkipEscapeSequences bool

	// AllowControlCharacters permits raw bytes below 0x20 (other than the
	// terminating NUL) inside ordinary quoted strings.
	AllowControlCharacters bool
}
