// Copyright 2024 The cfgdata Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package jsonparser

import (
	"testing"

	"github.com/niklasfrykholm/cfgdata"
)

func mustParse(t *testing.T, src string, settings Settings) (*cfgdata.ConfigData, cfgdata.Loc) {
	t.Helper()
	cd := cfgdata.Make(nil, nil, 0, 0)
	if err := ParseWithSettings(src, cd, settings); err != nil {
		t.Fatalf("ParseWithSettings(%q) returned error: %v", src, err)
	}
	return cd, cd.Root()
}

func TestParseStrictScalars(t *testing.T) {
	tests := []struct {
		src  string
		typ  cfgdata.ValueType
		want any
	}{
		{"null", cfgdata.TypeNull, nil},
		{"true", cfgdata.TypeTrue, nil},
		{"false", cfgdata.TypeFalse, nil},
		{"42", cfgdata.TypeNumber, 42.0},
		{"-17.5", cfgdata.TypeNumber, -17.5},
		{"1e3", cfgdata.TypeNumber, 1000.0},
		{`"hello"`, cfgdata.TypeString, "hello"},
	}
	for _, tt := range tests {
		cd, root := mustParse(t, tt.src, Settings{})
		if cd.Type(root) != tt.typ {
			t.Errorf("Parse(%q).Type() = %v, want %v", tt.src, cd.Type(root), tt.typ)
		}
		switch tt.typ {
		case cfgdata.TypeNumber:
			if cd.ToNumber(root) != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.src, cd.ToNumber(root), tt.want)
			}
		case cfgdata.TypeString:
			if cd.ToString(root) != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.src, cd.ToString(root), tt.want)
			}
		}
	}
}

func TestParseObjectAndArray(t *testing.T) {
	src := `{"name": "plasma", "tags": ["a", "b", "c"], "count": 3, "nested": {"ok": true}}`
	cd, root := mustParse(t, src, Settings{})

	if cd.Type(root) != cfgdata.TypeObject {
		t.Fatalf("root type = %v, want object", cd.Type(root))
	}
	if got := cd.ObjectSize(root); got != 4 {
		t.Fatalf("ObjectSize(root) = %d, want 4", got)
	}

	name := cd.ObjectLookup(root, "name")
	if cd.ToString(name) != "plasma" {
		t.Fatalf(`ObjectLookup(root, "name") = %q, want "plasma"`, cd.ToString(name))
	}

	tags := cd.ObjectLookup(root, "tags")
	if cd.Type(tags) != cfgdata.TypeArray || cd.ArraySize(tags) != 3 {
		t.Fatalf("tags = %v (size %d), want a 3-element array", cd.Type(tags), cd.ArraySize(tags))
	}
	for i, want := range []string{"a", "b", "c"} {
		if got := cd.ToString(cd.ArrayItem(tags, i)); got != want {
			t.Errorf("tags[%d] = %q, want %q", i, got, want)
		}
	}

	nested := cd.ObjectLookup(root, "nested")
	if cd.Type(nested) != cfgdata.TypeObject {
		t.Fatalf("nested = %v, want object", cd.Type(nested))
	}
	if ok := cd.ObjectLookup(nested, "ok"); cd.Type(ok) != cfgdata.TypeTrue {
		t.Fatalf("nested.ok = %v, want true", cd.Type(ok))
	}
}

func TestParseUnicodeEscapes(t *testing.T) {
	src := `"\` + `u00e4\` + `u6176"`
	cd, root := mustParse(t, src, Settings{})
	want := "\xc3\xa4\xe6\x85\xb6" // "ä慶" in UTF-8
	if got := cd.ToString(root); got != want {
		t.Fatalf(`Parse(%s) = %q, want %q`, src, got, want)
	}
}

func TestParseEscapeSequences(t *testing.T) {
	cd, root := mustParse(t, `"a\tb\nc\"d\\e"`, Settings{})
	want := "a\tb\nc\"d\\e"
	if got := cd.ToString(root); got != want {
		t.Fatalf("escape sequence parse = %q, want %q", got, want)
	}
}

func TestParseRelaxationsIndividually(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		settings Settings
	}{
		{"unquoted keys", `{a: 1, b: 2}`, Settings{UnquotedKeys: true}},
		{"c comments", "{\n// a comment\n\"a\": 1 /* another */\n}", Settings{CComments: true}},
		{"optional commas", `{"a": 1 "b": 2}`, Settings{OptionalCommas: true}},
		{"equals for colon", `{"a" = 1, "b" = 2}`, Settings{EqualsForColon: true}},
		{"implicit root object", `"a": 1, "b": 2`, Settings{ImplicitRootObject: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cd, root := mustParse(t, tt.src, tt.settings)
			if cd.Type(root) != cfgdata.TypeObject {
				t.Fatalf("%s: root type = %v, want object", tt.name, cd.Type(root))
			}
			a := cd.ObjectLookup(root, "a")
			if cd.Type(a) != cfgdata.TypeNumber || cd.ToNumber(a) != 1 {
				t.Errorf("%s: a = %v, want 1", tt.name, a)
			}
		})
	}
}

func TestParseAllRelaxationsCombined(t *testing.T) {
	src := "\n// leading comment\na: 1 b: [1 2 3] c = true\n"
	settings := Settings{
		UnquotedKeys:       true,
		CComments:          true,
		ImplicitRootObject: true,
		OptionalCommas:     true,
		EqualsForColon:     true,
	}
	cd, root := mustParse(t, src, settings)
	if cd.Type(root) != cfgdata.TypeObject {
		t.Fatalf("root type = %v, want object", cd.Type(root))
	}
	if got := cd.ObjectSize(root); got != 3 {
		t.Fatalf("ObjectSize(root) = %d, want 3", got)
	}
	b := cd.ObjectLookup(root, "b")
	if cd.Type(b) != cfgdata.TypeArray || cd.ArraySize(b) != 3 {
		t.Fatalf("b = %v (size %d), want a 3-element array", cd.Type(b), cd.ArraySize(b))
	}
}

func TestParsePythonTripleQuotedStrings(t *testing.T) {
	cd, root := mustParse(t, `""""" x """""`, Settings{PythonMultilineStrings: true})
	want := `"" x ""`
	if got := cd.ToString(root); got != want {
		t.Fatalf("triple-quoted parse = %q, want %q", got, want)
	}
}

func TestParseEmptyInputImplicitRootIsEmptyObject(t *testing.T) {
	cd, root := mustParse(t, "", Settings{ImplicitRootObject: true})
	if cd.Type(root) != cfgdata.TypeObject || cd.ObjectSize(root) != 0 {
		t.Fatalf("empty input with implicit root = %v, want an empty object", cd.Type(root))
	}
}

func TestParseEmptyInputStrictIsError(t *testing.T) {
	cd := cfgdata.Make(nil, nil, 0, 0)
	err := ParseWithSettings("", cd, Settings{})
	if err == nil {
		t.Fatalf("ParseWithSettings(\"\", ...) under strict settings did not error")
	}
	if err.Error() != "1: Unexpected end of input" {
		t.Fatalf("error = %q, want %q", err.Error(), "1: Unexpected end of input")
	}
}

func TestParseErrorLineNumberAndShape(t *testing.T) {
	cd := cfgdata.Make(nil, nil, 0, 0)

	err := ParseWithSettings("fulse", cd, Settings{})
	if err == nil {
		t.Fatalf(`ParseWithSettings("fulse", ...) did not error`)
	}
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("error type = %T, want *ParseError", err)
	}

	err = ParseWithSettings("\n\nfulse", cd, Settings{})
	if err == nil {
		t.Fatalf(`ParseWithSettings("\n\nfulse", ...) did not error`)
	}
	pe := err.(*ParseError)
	if pe.Line != 3 {
		t.Fatalf("error line = %d, want 3", pe.Line)
	}
}

func TestParseControlCharacterInStringIsError(t *testing.T) {
	cd := cfgdata.Make(nil, nil, 0, 0)
	src := "\"a\tb\""
	if err := ParseWithSettings(src, cd, Settings{}); err == nil {
		t.Fatalf("strict parse of a literal control character in a string did not error")
	}
	if err := ParseWithSettings(src, cd, Settings{AllowControlCharacters: true}); err != nil {
		t.Fatalf("AllowControlCharacters: true still errored: %v", err)
	}
}

func TestParseStrictMissingCommaIsError(t *testing.T) {
	cd := cfgdata.Make(nil, nil, 0, 0)
	err := ParseWithSettings("[1 2 3]", cd, Settings{})
	if err == nil {
		t.Fatalf("strict parse of [1 2 3] (missing commas) did not error")
	}
}

func TestParseMalformedNumbers(t *testing.T) {
	malformed := []string{
		"--3.14", ".1", "-.1", "00", "00.0", "0e", "0.", "0.e1", "0.0ee", "0.0++e",
	}
	for _, src := range malformed {
		cd := cfgdata.Make(nil, nil, 0, 0)
		if err := ParseWithSettings(src, cd, Settings{}); err == nil {
			t.Errorf("ParseWithSettings(%q, ...) did not error", src)
		}
	}
}

func TestParseErrorLeavesRootAsEmptyObject(t *testing.T) {
	cd := cfgdata.Make(nil, nil, 0, 0)
	if err := ParseWithSettings("not json", cd, Settings{}); err == nil {
		t.Fatalf("expected an error")
	}
	root := cd.Root()
	if cd.Type(root) != cfgdata.TypeObject || cd.ObjectSize(root) != 0 {
		t.Fatalf("root after a parse error = %v, want an empty object", cd.Type(root))
	}
}
