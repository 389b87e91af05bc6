// Copyright 2024 The cfgdata Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package cfgdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/niklasfrykholm/cfgdata/jsonparser"
)

func TestNormalizeSourcePlainUTF8PassesThrough(t *testing.T) {
	src := `{"a": 1}`
	got, err := NormalizeSource([]byte(src))
	if err != nil {
		t.Fatalf("NormalizeSource returned error: %v", err)
	}
	if got != src {
		t.Fatalf("NormalizeSource(%q) = %q, want unchanged", src, got)
	}
}

func TestNormalizeSourceStripsUTF8BOM(t *testing.T) {
	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"a": 1}`)...)
	got, err := NormalizeSource(withBOM)
	if err != nil {
		t.Fatalf("NormalizeSource returned error: %v", err)
	}
	if got != `{"a": 1}` {
		t.Fatalf("NormalizeSource did not strip the UTF-8 BOM, got %q", got)
	}
}

func TestNormalizeSourceTranscodesUTF16LE(t *testing.T) {
	// U+FEFF BOM followed by `{}` in UTF-16LE.
	data := []byte{0xFF, 0xFE, '{', 0x00, '}', 0x00}
	got, err := NormalizeSource(data)
	if err != nil {
		t.Fatalf("NormalizeSource returned error: %v", err)
	}
	if got != "{}" {
		t.Fatalf("NormalizeSource(UTF-16LE) = %q, want %q", got, "{}")
	}
}

func TestLoadFileParsesAMappedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"a": [1, 2, 3]}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cd, err := LoadFile(path, nil)
	if err != nil {
		t.Fatalf("LoadFile(%q, nil) returned error: %v", path, err)
	}
	defer cd.Free()

	a := cd.ObjectLookup(cd.Root(), "a")
	if cd.Type(a) != TypeArray || cd.ArraySize(a) != 3 {
		t.Fatalf("LoadFile result's .a = %v (size %d), want a 3-element array", cd.Type(a), cd.ArraySize(a))
	}
}

func TestLoadFileMissingFileIsError(t *testing.T) {
	_, err := LoadFile("/nonexistent/path/to/config.json", &LoadOptions{Settings: jsonparser.Settings{}})
	if err == nil {
		t.Fatalf("LoadFile on a nonexistent path did not error")
	}
}
