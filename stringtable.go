// Copyright 2024 The cfgdata Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package cfgdata

import "encoding/binary"

// hashFactor is the target ratio of hash slots to entries (fill rate cap
// of 1/hashFactor, i.e. <= 50% full at hashFactor == 2.0).
const hashFactor = 2.0

// stHeaderSize is the byte size of the StringTable header preceding the
// hash-slot array: allocatedBytes, count, uses16BitSlots, numHashSlots,
// stringBytes, each a little-endian uint32.
const stHeaderSize = 20

// stMinSize is the smallest buffer nfst_init (and NewStringTable) will
// accept: header, one 32-bit hash slot, and the reserved empty string.
const stMinSize = stHeaderSize + 4 + 4

// StringTable interns strings into a contiguous byte range, returning a
// stable small-integer symbol for each distinct string. It is designed to
// live inside a larger relocatable buffer (see ConfigData): all addressing
// is relative to the start of the table's own byte slice, so the slice may
// be copied or moved without invalidating previously returned symbols.
//
// The hash table uses open addressing with linear probing, and the Lua
// string hash. Slot width is 16 bits when the whole table fits in 64 KiB,
// 32 bits otherwise. Symbol 0 is always the empty string.
type StringTable struct {
	buf []byte
}

func (st *StringTable) allocatedBytes() int {
	return int(binary.LittleEndian.Uint32(st.buf[0:4]))
}
func (st *StringTable) setAllocatedBytes(v int) {
	binary.LittleEndian.PutUint32(st.buf[0:4], uint32(v))
}
func (st *StringTable) count() int {
	return int(binary.LittleEndian.Uint32(st.buf[4:8]))
}
func (st *StringTable) setCount(v int) {
	binary.LittleEndian.PutUint32(st.buf[4:8], uint32(v))
}
func (st *StringTable) uses16Bit() bool {
	return binary.LittleEndian.Uint32(st.buf[8:12]) != 0
}
func (st *StringTable) setUses16Bit(v bool) {
	x := uint32(0)
	if v {
		x = 1
	}
	binary.LittleEndian.PutUint32(st.buf[8:12], x)
}
func (st *StringTable) numHashSlots() int {
	return int(binary.LittleEndian.Uint32(st.buf[12:16]))
}
func (st *StringTable) setNumHashSlots(v int) {
	binary.LittleEndian.PutUint32(st.buf[12:16], uint32(v))
}
func (st *StringTable) stringBytes() int {
	return int(binary.LittleEndian.Uint32(st.buf[16:20]))
}
func (st *StringTable) setStringBytes(v int) {
	binary.LittleEndian.PutUint32(st.buf[16:20], uint32(v))
}

func (st *StringTable) slotSize() int {
	if st.uses16Bit() {
		return 2
	}
	return 4
}

func (st *StringTable) hashTableOffset() int { return stHeaderSize }

func (st *StringTable) stringsOffset() int {
	return st.hashTableOffset() + st.numHashSlots()*st.slotSize()
}

func (st *StringTable) availableStringBytes() int {
	return st.allocatedBytes() - st.stringsOffset()
}

func (st *StringTable) slot(i int) int {
	off := st.hashTableOffset() + i*st.slotSize()
	if st.uses16Bit() {
		return int(binary.LittleEndian.Uint16(st.buf[off : off+2]))
	}
	return int(binary.LittleEndian.Uint32(st.buf[off : off+4]))
}

func (st *StringTable) setSlot(i, value int) {
	off := st.hashTableOffset() + i*st.slotSize()
	if st.uses16Bit() {
		binary.LittleEndian.PutUint16(st.buf[off:off+2], uint16(value))
	} else {
		binary.LittleEndian.PutUint32(st.buf[off:off+4], uint32(value))
	}
}

// NewStringTable initializes an empty table in buf. avgStrLen is the
// expected average length of strings that will be interned; it only
// affects the initial hash-slot/string-block split, not correctness.
// Panics if buf is smaller than the minimum usable size (header, one hash
// slot and the reserved empty string) — the same contract violation the C
// original enforces with an assert.
func NewStringTable(buf []byte, avgStrLen int) *StringTable {
	if len(buf) < stMinSize {
		panic(ErrBufferTooSmall)
	}
	st := &StringTable{buf: buf}
	st.setAllocatedBytes(len(buf))
	st.setCount(0)

	bytesPerString := float64(avgStrLen) + 1 + 2*hashFactor
	numStrings := float64(len(buf)-stHeaderSize) / bytesPerString
	numHashSlots := int(numStrings * hashFactor)
	if numHashSlots < 1 {
		numHashSlots = 1
	}
	st.setNumHashSlots(numHashSlots)

	bytesForStrings32 := len(buf) - stHeaderSize - 4*numHashSlots
	st.setUses16Bit(bytesForStrings32 <= 64*1024)

	for i := 0; i < numHashSlots; i++ {
		st.setSlot(i, 0)
	}
	off := st.stringsOffset()
	st.buf[off] = 0
	st.setStringBytes(1)
	return st
}

// Grow redistributes the table's hash slots and string block across the
// larger buffer newBuf, whose first len(st.buf) bytes must already equal
// the table's current content (the caller is expected to have obtained
// newBuf via its allocator, copying the old bytes forward). Symbols are
// unaffected: Grow never changes a string's offset within the string
// block, only where the block itself and the hash table sit inside buf.
func (st *StringTable) Grow(newBuf []byte) {
	oldStrings := st.stringsOffset()
	oldStringBytes := st.stringBytes()

	// Snapshot the string block before recomputing offsets that might
	// move it.
	saved := make([]byte, oldStringBytes)
	copy(saved, st.buf[oldStrings:oldStrings+oldStringBytes])

	st.buf = newBuf
	st.setAllocatedBytes(len(newBuf))

	avgStrLen := 15.0
	if st.count() > 0 {
		avgStrLen = float64(st.stringBytes()) / float64(st.count())
	}
	bytesPerString := avgStrLen + 1 + 2*hashFactor
	numStrings := float64(len(newBuf)-stHeaderSize) / bytesPerString
	numHashSlots := int(numStrings * hashFactor)
	if numHashSlots < st.numHashSlots() {
		numHashSlots = st.numHashSlots()
	}
	st.setNumHashSlots(numHashSlots)

	bytesForStrings32 := len(newBuf) - stHeaderSize - 4*numHashSlots
	st.setUses16Bit(bytesForStrings32 <= 64*1024)

	copy(st.buf[st.stringsOffset():st.stringsOffset()+oldStringBytes], saved)
	st.rebuildHashTable()
}

// Pack shrinks the table in place to the minimum size that still holds its
// current content, possibly switching to 16-bit slots. It returns the new
// allocatedBytes, which the caller may use to truncate the backing buffer.
func (st *StringTable) Pack() int {
	oldStrings := st.stringsOffset()
	stringBytes := st.stringBytes()
	saved := make([]byte, stringBytes)
	copy(saved, st.buf[oldStrings:oldStrings+stringBytes])

	numHashSlots := int(float64(st.count()) * hashFactor)
	if numHashSlots < 1 {
		numHashSlots = 1
	}
	if numHashSlots < st.count()+1 {
		numHashSlots = st.count() + 1
	}
	st.setNumHashSlots(numHashSlots)
	st.setUses16Bit(stringBytes <= 64*1024)

	copy(st.buf[st.stringsOffset():st.stringsOffset()+stringBytes], saved)
	st.rebuildHashTable()

	allocated := st.stringsOffset() + stringBytes
	st.setAllocatedBytes(allocated)
	return allocated
}

func (st *StringTable) rebuildHashTable() {
	n := st.numHashSlots()
	for i := 0; i < n; i++ {
		st.setSlot(i, 0)
	}
	strs := st.stringsOffset()
	s := strs + 1
	end := strs + st.stringBytes()
	for s < end {
		str := st.readCString(s - strs)
		h := luaHash(str)
		i := int(h % uint32(n))
		for st.slot(i) != 0 {
			i = (i + 1) % n
		}
		st.setSlot(i, s-strs)
		s += len(str) + 1
	}
}

func (st *StringTable) readCString(offset int) string {
	strs := st.stringsOffset()
	start := strs + offset
	end := start
	for st.buf[end] != 0 {
		end++
	}
	return string(st.buf[start:end])
}

// ToSymbol interns s, returning its symbol. If s is not already present it
// is added; ok is false (FULL) if there is no room to grow the hash table
// or the string block, or if the new offset would not fit in a 16-bit
// slot. The empty string always maps to symbol 0.
func (st *StringTable) ToSymbol(s string) (sym int, ok bool) {
	if s == "" {
		return 0, true
	}

	h := luaHash(s)
	n := st.numHashSlots()
	i := int(h % uint32(n))
	for st.slot(i) != 0 {
		if st.readCString(st.slot(i)) == s {
			return st.slot(i), true
		}
		i = (i + 1) % n
	}

	if st.count()+1 >= n {
		return 0, false
	}
	if float64(n)/float64(st.count()+1) < hashFactor {
		return 0, false
	}

	symbol := st.stringBytes()
	if symbol+len(s)+1 > st.availableStringBytes() {
		return 0, false
	}
	if st.uses16Bit() && symbol >= 64*1024 {
		return 0, false
	}

	st.setSlot(i, symbol)
	st.setCount(st.count() + 1)
	dest := st.stringsOffset() + symbol
	copy(st.buf[dest:dest+len(s)], s)
	st.buf[dest+len(s)] = 0
	st.setStringBytes(symbol + len(s) + 1)
	return symbol, true
}

// ToSymbolConst looks up s without inserting it. ok is false if s has
// never been interned in this table.
func (st *StringTable) ToSymbolConst(s string) (sym int, ok bool) {
	if s == "" {
		return 0, true
	}
	h := luaHash(s)
	n := st.numHashSlots()
	i := int(h % uint32(n))
	for st.slot(i) != 0 {
		if st.readCString(st.slot(i)) == s {
			return st.slot(i), true
		}
		i = (i + 1) % n
	}
	return 0, false
}

// ToString returns the string stored at symbol. Behavior is undefined if
// symbol was not returned by ToSymbol/ToSymbolConst on this table.
func (st *StringTable) ToString(symbol int) string {
	return st.readCString(symbol)
}

// luaHash computes Lua's string hash: h ^= (h<<5)+(h>>2)+byte, folded over
// every byte of s in a single pass.
func luaHash(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h ^= (h << 5) + (h >> 2) + uint32(s[i])
	}
	return h
}
