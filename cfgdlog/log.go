// Copyright 2024 The cfgdata Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

// Package cfgdlog is the small structured-logging facade used by cfgdata's
// LoadFile: a leveled key/value Logger, a
// Filter that drops entries below a minimum level, and a Helper that adds
// Debugw/Infow/Warnw/Errorw convenience methods on top of a Logger.
package cfgdlog

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Level is a log severity.
type Level int

// The four levels cfgdlog understands, in increasing severity.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger logs a leveled message with structured key/value pairs (an even
// number of keyvals, alternating key, value).
type Logger interface {
	Log(level Level, keyvals ...any) error
}

// stdLogger writes one line per entry to an io.Writer.
type stdLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewStdLogger returns a Logger that writes timestamped, leveled lines to w.
func NewStdLogger(w io.Writer) Logger {
	return &stdLogger{w: w}
}

func (l *stdLogger) Log(level Level, keyvals ...any) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "%s %-5s", time.Now().Format(time.RFC3339), level)
	for i := 0; i+1 < len(keyvals); i += 2 {
		fmt.Fprintf(l.w, " %v=%v", keyvals[i], keyvals[i+1])
	}
	_, err := fmt.Fprintln(l.w)
	return err
}

// filter wraps a Logger, dropping entries below a minimum level.
type filter struct {
	next Logger
	min  Level
}

// FilterOption configures a Filter.
type FilterOption func(*filter)

// FilterLevel sets the minimum level a Filter passes through.
func FilterLevel(min Level) FilterOption {
	return func(f *filter) { f.min = min }
}

// NewFilter wraps next, applying the given options.
func NewFilter(next Logger, opts ...FilterOption) Logger {
	f := &filter{next: next, min: LevelInfo}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *filter) Log(level Level, keyvals ...any) error {
	if level < f.min {
		return nil
	}
	return f.next.Log(level, keyvals...)
}

// Helper adds leveled convenience methods on top of a Logger.
type Helper struct {
	logger Logger
}

// NewHelper wraps logger in a Helper.
func NewHelper(logger Logger) *Helper {
	return &Helper{logger: logger}
}

// Debugw logs a debug-level entry.
func (h *Helper) Debugw(keyvals ...any) { h.logger.Log(LevelDebug, keyvals...) }

// Infow logs an info-level entry.
func (h *Helper) Infow(keyvals ...any) { h.logger.Log(LevelInfo, keyvals...) }

// Warnw logs a warn-level entry.
func (h *Helper) Warnw(keyvals ...any) { h.logger.Log(LevelWarn, keyvals...) }

// Errorw logs an error-level entry.
func (h *Helper) Errorw(keyvals ...any) { h.logger.Log(LevelError, keyvals...) }
