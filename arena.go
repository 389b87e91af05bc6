// Copyright 2024 The cfgdata Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

// Package cfgdata implements a relocatable arena for dynamically typed
// configuration documents (null, booleans, numbers, strings, arrays,
// objects), backed by a single contiguous byte buffer and a co-located
// string-interning table. Every value is addressed by a 32-bit Loc handle
// that packs a type tag and a buffer offset, so the whole arena may be
// copied, memory-mapped or relocated without any pointer fix-up.
package cfgdata

import (
	"encoding/binary"
	"math"
)

// headerSize is the byte size of the arena header preceding the data
// section: dataAllocated, usedBytes, root, each a little-endian uint32.
const headerSize = 12

// Default sizes used by Make when the caller passes 0.
const (
	defaultConfigSize      = 8 * 1024
	defaultStringTableSize = 8 * 1024
)

// AllocFunc mirrors a realloc callback: given the arena's current backing
// bytes (nil on first allocation) it returns a buffer of length newSize
// with old's content preserved at the same offsets. newSize == 0 means
// free; the return value is then ignored.
type AllocFunc func(ud any, old []byte, newSize int) []byte

// defaultAlloc is the allocator used when Make is given a nil AllocFunc.
// It never reuses old's backing array, matching Go's append-style growth
// rather than true in-place realloc, but preserves the same observable
// contract: a fresh slice of newSize bytes with old's prefix copied in.
func defaultAlloc(_ any, old []byte, newSize int) []byte {
	if newSize == 0 {
		return nil
	}
	buf := make([]byte, newSize)
	copy(buf, old)
	return buf
}

// ConfigData is a relocatable arena holding one configuration document. All
// values live in a single []byte buffer that may be copied bitwise — there
// are no live pointers inside it — and is grown by reallocation through the
// supplied AllocFunc as documents are built up.
type ConfigData struct {
	buf   []byte
	alloc AllocFunc
	ud    any
}

// Make allocates a new arena. configSize and stringTableSize default to
// 8 KiB each when 0. alloc defaults to a make+copy based allocator when
// nil.
func Make(alloc AllocFunc, ud any, configSize, stringTableSize int) *ConfigData {
	if alloc == nil {
		alloc = defaultAlloc
	}
	if configSize <= 0 {
		configSize = defaultConfigSize
	}
	if stringTableSize <= 0 {
		stringTableSize = defaultStringTableSize
	}

	buf := alloc(ud, nil, configSize+stringTableSize)
	cd := &ConfigData{buf: buf, alloc: alloc, ud: ud}
	cd.setDataAllocated(configSize)
	cd.setUsedBytesRaw(headerSize)
	cd.setRootRaw(Null())
	NewStringTable(cd.buf[configSize:], 15)
	return cd
}

// Free releases the arena's backing buffer by invoking its allocator with
// newSize == 0. The ConfigData must not be used afterwards.
func (cd *ConfigData) Free() {
	cd.alloc(cd.ud, cd.buf, 0)
	cd.buf = nil
}

// Allocator returns the arena's allocator callback and user data, so that
// collaborators (such as the JSON parser's scratch buffers) can share it.
func (cd *ConfigData) Allocator() (AllocFunc, any) {
	return cd.alloc, cd.ud
}

// Bytes returns a copy of the arena's backing buffer: the full total_bytes
// span (header, data section, string table), safe to write to a file, mmap
// back later, or hand to FromBytes to build an independent arena that
// shares no state with this one. This is the relocatability guarantee made
// concrete: the returned slice, memcpy'd anywhere, is a fully functional
// arena on its own.
func (cd *ConfigData) Bytes() []byte {
	out := make([]byte, len(cd.buf))
	copy(out, cd.buf)
	return out
}

// FromBytes wraps buf — typically obtained from Bytes, or read/mapped back
// from disk — as a ConfigData. The returned arena takes ownership of buf:
// callers must not mutate it afterwards except through the returned
// *ConfigData. alloc and ud default exactly as in Make.
func FromBytes(buf []byte, alloc AllocFunc, ud any) *ConfigData {
	if alloc == nil {
		alloc = defaultAlloc
	}
	return &ConfigData{buf: buf, alloc: alloc, ud: ud}
}

func (cd *ConfigData) dataAllocated() int {
	return int(binary.LittleEndian.Uint32(cd.buf[0:4]))
}
func (cd *ConfigData) setDataAllocated(v int) {
	binary.LittleEndian.PutUint32(cd.buf[0:4], uint32(v))
}
func (cd *ConfigData) usedBytes() int {
	return int(binary.LittleEndian.Uint32(cd.buf[4:8]))
}
func (cd *ConfigData) setUsedBytesRaw(v int) {
	binary.LittleEndian.PutUint32(cd.buf[4:8], uint32(v))
}
func (cd *ConfigData) setRootRaw(l Loc) {
	binary.LittleEndian.PutUint32(cd.buf[8:12], uint32(l))
}

// Root returns the document's root Loc (Null() until SetRoot is called).
func (cd *ConfigData) Root() Loc {
	return Loc(binary.LittleEndian.Uint32(cd.buf[8:12]))
}

// SetRoot sets the document root.
func (cd *ConfigData) SetRoot(loc Loc) {
	cd.setRootRaw(loc)
}

// Type returns the value type tag of loc.
func (cd *ConfigData) Type(loc Loc) ValueType {
	return loc.Type()
}

// ToNumber dereferences the float64 stored at loc. Undefined if
// loc.Type() != TypeNumber, except in debug builds (-tags debug), where a
// mismatch panics with ErrWrongType.
func (cd *ConfigData) ToNumber(loc Loc) float64 {
	cd.checkType(loc, TypeNumber)
	off := loc.Offset()
	bits := binary.LittleEndian.Uint64(cd.buf[off : off+8])
	return math.Float64frombits(bits)
}

// ToString returns the interned string referred to by loc. Undefined if
// loc.Type() != TypeString, except in debug builds (-tags debug), where a
// mismatch panics with ErrWrongType.
func (cd *ConfigData) ToString(loc Loc) string {
	cd.checkType(loc, TypeString)
	return cd.stringTable().ToString(loc.Offset())
}

// stringTable returns a view of the string-table sub-buffer living at the
// tail of the arena. It must be recreated after any growth, since growth
// may replace cd.buf wholesale.
func (cd *ConfigData) stringTable() *StringTable {
	return &StringTable{buf: cd.buf[cd.dataAllocated():]}
}

// write appends data to the data section, growing the arena first if
// necessary, and returns a Loc of type t pointing at the new bytes.
func (cd *ConfigData) write(t ValueType, data []byte) Loc {
	needed := len(data)
	if cd.usedBytes()+needed > cd.dataAllocated() {
		cd.growDataSection(needed)
	}
	off := cd.usedBytes()
	copy(cd.buf[off:off+needed], data)
	cd.setUsedBytesRaw(off + needed)
	return makeLoc(t, off)
}

// growDataSection doubles the data section's capacity (at least once, more
// if one doubling would still not fit minExtra additional bytes),
// reallocating the whole arena through its allocator and shifting the
// string-table bytes up by the resulting delta.
func (cd *ConfigData) growDataSection(minExtra int) {
	for {
		oldDataAllocated := cd.dataAllocated()
		oldTotal := len(cd.buf)
		newDataAllocated := oldDataAllocated * 2
		if newDataAllocated == 0 {
			newDataAllocated = defaultConfigSize
		}
		newTotal := oldTotal + (newDataAllocated - oldDataAllocated)

		newBuf := cd.alloc(cd.ud, cd.buf, newTotal)
		stLen := oldTotal - oldDataAllocated
		copy(newBuf[newDataAllocated:newDataAllocated+stLen], newBuf[oldDataAllocated:oldDataAllocated+stLen])

		cd.buf = newBuf
		cd.setDataAllocated(newDataAllocated)

		if newDataAllocated-cd.usedBytes() >= minExtra {
			return
		}
	}
}

// growStringTable doubles the string-table section's capacity, appending
// bytes at the tail of the arena (no shifting of the data section is
// needed, since the string table already lives at the tail), then asks the
// StringTable to redistribute its hash slots and string block across the
// larger space.
func (cd *ConfigData) growStringTable() {
	oldDataAllocated := cd.dataAllocated()
	oldStBytes := len(cd.buf) - oldDataAllocated
	newStBytes := oldStBytes * 2
	if newStBytes == 0 {
		newStBytes = defaultStringTableSize
	}
	newTotal := oldDataAllocated + newStBytes

	newBuf := cd.alloc(cd.ud, cd.buf, newTotal)
	cd.buf = newBuf

	st := cd.stringTable()
	st.Grow(cd.buf[oldDataAllocated:])
}

// AddNumber appends a float64 to the arena and returns its Loc.
func (cd *ConfigData) AddNumber(n float64) Loc {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(n))
	return cd.write(TypeNumber, b[:])
}

// AddString interns s in the arena's string table, growing the table as
// needed, and returns its Loc.
func (cd *ConfigData) AddString(s string) Loc {
	for {
		sym, ok := cd.stringTable().ToSymbol(s)
		if ok {
			return makeLoc(TypeString, sym)
		}
		cd.growStringTable()
	}
}
