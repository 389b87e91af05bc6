// Copyright 2024 The cfgdata Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package cfgdata

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"golang.org/x/text/encoding/unicode"

	"github.com/niklasfrykholm/cfgdata/cfgdlog"
	"github.com/niklasfrykholm/cfgdata/jsonparser"
)

// NormalizeSource transcodes data to a plain UTF-8 string suitable for
// jsonparser.ParseWithSettings, auto-detecting and stripping a UTF-8,
// UTF-16LE or UTF-16BE byte-order mark. Input with no recognized BOM is
// passed through unchanged, on the assumption that it is already UTF-8 (as
// essentially all JSON in the wild is).
func NormalizeSource(data []byte) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, err := decoder.Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// LoadOptions configures LoadFile. The zero value logs errors only, to
// stderr.
type LoadOptions struct {
	// Settings selects which JSON relaxations the document may use.
	Settings jsonparser.Settings

	// Logger receives Debug-level progress messages and Error-level
	// failures. Defaults to an error-only stderr logger.
	Logger cfgdlog.Logger
}

// LoadFile memory-maps the file at path, normalizes it with NormalizeSource
// and parses it into a freshly made ConfigData arena under opts.Settings.
func LoadFile(path string, opts *LoadOptions) (*ConfigData, error) {
	if opts == nil {
		opts = &LoadOptions{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = cfgdlog.NewFilter(cfgdlog.NewStdLogger(os.Stderr), cfgdlog.FilterLevel(cfgdlog.LevelError))
	}
	log := cfgdlog.NewHelper(logger)

	f, err := os.Open(path)
	if err != nil {
		log.Errorw("msg", "failed to open config file", "path", path, "err", err)
		return nil, err
	}
	defer f.Close()

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		log.Errorw("msg", "failed to mmap config file", "path", path, "err", err)
		return nil, err
	}
	defer data.Unmap()
	log.Debugw("msg", "mapped config file", "path", path, "bytes", len(data))

	src, err := NormalizeSource(data)
	if err != nil {
		log.Errorw("msg", "failed to normalize config source", "path", path, "err", err)
		return nil, err
	}

	cd := Make(nil, nil, 0, 0)
	if err := jsonparser.ParseWithSettings(src, cd, opts.Settings); err != nil {
		log.Errorw("msg", "failed to parse config file", "path", path, "err", err)
		cd.Free()
		return nil, err
	}
	log.Debugw("msg", "parsed config file", "path", path)
	return cd, nil
}
