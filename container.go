// Copyright 2024 The cfgdata Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package cfgdata

import "encoding/binary"

// blockHeaderSize is allocated(4) + size(4) + next(4): the fixed prefix of
// every array/object block.
const blockHeaderSize = 12

const (
	arraySlotSize  = 4 // one Loc
	objectSlotSize = 8 // key Loc + value Loc
)

func (cd *ConfigData) blockAllocated(off int) int {
	return int(binary.LittleEndian.Uint32(cd.buf[off : off+4]))
}
func (cd *ConfigData) blockSize(off int) int {
	return int(binary.LittleEndian.Uint32(cd.buf[off+4 : off+8]))
}
func (cd *ConfigData) setBlockSize(off, v int) {
	binary.LittleEndian.PutUint32(cd.buf[off+4:off+8], uint32(v))
}
func (cd *ConfigData) blockNext(off int) Loc {
	return Loc(binary.LittleEndian.Uint32(cd.buf[off+8 : off+12]))
}
func (cd *ConfigData) setBlockNext(off int, next Loc) {
	binary.LittleEndian.PutUint32(cd.buf[off+8:off+12], uint32(next))
}

// writeBlock appends a block header plus cap empty slots of slotSize bytes
// each, returning its Loc.
func (cd *ConfigData) writeBlock(t ValueType, cap, slotSize int) Loc {
	buf := make([]byte, blockHeaderSize+cap*slotSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(cap))
	// size and next are already zero.
	return cd.write(t, buf)
}

// AddArray appends an empty array block with capacity for cap items.
func (cd *ConfigData) AddArray(cap int) Loc {
	return cd.writeBlock(TypeArray, cap, arraySlotSize)
}

// AddObject appends an empty object block with capacity for cap members.
func (cd *ConfigData) AddObject(cap int) Loc {
	return cd.writeBlock(TypeObject, cap, objectSlotSize)
}

// ArraySize returns the number of items in arr, summed across its block
// chain.
func (cd *ConfigData) ArraySize(arr Loc) int {
	total := 0
	off := arr.Offset()
	for {
		total += cd.blockSize(off)
		next := cd.blockNext(off)
		if next.IsNull() {
			return total
		}
		off = next.Offset()
	}
}

// ArrayItem returns the i'th item of arr in insertion order, or Null() if
// i is out of range.
func (cd *ConfigData) ArrayItem(arr Loc, i int) Loc {
	if i < 0 {
		return Null()
	}
	off := arr.Offset()
	for {
		size := cd.blockSize(off)
		if i < size {
			slotOff := off + blockHeaderSize + i*arraySlotSize
			return Loc(binary.LittleEndian.Uint32(cd.buf[slotOff : slotOff+4]))
		}
		i -= size
		next := cd.blockNext(off)
		if next.IsNull() {
			return Null()
		}
		off = next.Offset()
	}
}

// ObjectSize returns the number of members in obj, summed across its block
// chain.
func (cd *ConfigData) ObjectSize(obj Loc) int {
	return cd.ArraySize(obj) // same chain-summation logic, different slot width below
}

func (cd *ConfigData) objectSlot(obj Loc, i int) (keyOff, valOff int, ok bool) {
	if i < 0 {
		return 0, 0, false
	}
	off := obj.Offset()
	for {
		size := cd.blockSize(off)
		if i < size {
			base := off + blockHeaderSize + i*objectSlotSize
			return base, base + 4, true
		}
		i -= size
		next := cd.blockNext(off)
		if next.IsNull() {
			return 0, 0, false
		}
		off = next.Offset()
	}
}

// ObjectKey returns the Loc of the i'th key in obj, or Null() if i is out
// of range.
func (cd *ConfigData) ObjectKey(obj Loc, i int) Loc {
	keyOff, _, ok := cd.objectSlot(obj, i)
	if !ok {
		return Null()
	}
	return Loc(binary.LittleEndian.Uint32(cd.buf[keyOff : keyOff+4]))
}

// ObjectKeyString is a convenience wrapper returning the i'th key as a Go
// string directly, or "" if i is out of range.
func (cd *ConfigData) ObjectKeyString(obj Loc, i int) string {
	key := cd.ObjectKey(obj, i)
	if key.IsNull() {
		return ""
	}
	return cd.ToString(key)
}

// ObjectValue returns the Loc of the i'th value in obj, or Null() if i is
// out of range.
func (cd *ConfigData) ObjectValue(obj Loc, i int) Loc {
	_, valOff, ok := cd.objectSlot(obj, i)
	if !ok {
		return Null()
	}
	return Loc(binary.LittleEndian.Uint32(cd.buf[valOff : valOff+4]))
}

// ObjectLookup returns the value associated with key in obj, or Null() if
// key is absent. The lookup first interns key with the non-inserting form
// of the string table: if key has never been seen by this arena at all, it
// cannot be a member's key, and the object is not scanned. This is an
// intentional optimization; callers must not rely on
// scan-order side effects to observe it.
func (cd *ConfigData) ObjectLookup(obj Loc, key string) Loc {
	sym, ok := cd.stringTable().ToSymbolConst(key)
	if !ok {
		return Null()
	}
	keyLoc := makeLoc(TypeString, sym)

	off := obj.Offset()
	for {
		size := cd.blockSize(off)
		for i := 0; i < size; i++ {
			base := off + blockHeaderSize + i*objectSlotSize
			k := Loc(binary.LittleEndian.Uint32(cd.buf[base : base+4]))
			if k == keyLoc {
				return Loc(binary.LittleEndian.Uint32(cd.buf[base+4 : base+8]))
			}
		}
		next := cd.blockNext(off)
		if next.IsNull() {
			return Null()
		}
		off = next.Offset()
	}
}

// lastBlock walks a chain to its tail block, returning its offset.
func (cd *ConfigData) lastBlock(head int) int {
	off := head
	for {
		next := cd.blockNext(off)
		if next.IsNull() {
			return off
		}
		off = next.Offset()
	}
}

// Push appends item to arr: into the first free slot of its tail block if
// there is room, otherwise a new tail block of twice the previous block's
// capacity (at least 1) is allocated and linked in.
func (cd *ConfigData) Push(arr Loc, item Loc) Loc {
	tail := cd.lastBlock(arr.Offset())
	size := cd.blockSize(tail)
	cap := cd.blockAllocated(tail)

	if size < cap {
		slotOff := tail + blockHeaderSize + size*arraySlotSize
		binary.LittleEndian.PutUint32(cd.buf[slotOff:slotOff+4], uint32(item))
		cd.setBlockSize(tail, size+1)
		return arr
	}

	newCap := cap * 2
	if newCap < 1 {
		newCap = 1
	}
	newBlock := cd.AddArray(newCap)
	cd.setBlockNext(tail, newBlock)

	newOff := newBlock.Offset()
	slotOff := newOff + blockHeaderSize
	binary.LittleEndian.PutUint32(cd.buf[slotOff:slotOff+4], uint32(item))
	cd.setBlockSize(newOff, 1)
	return arr
}

// Set interns key and sets obj[key] = value, as SetLoc.
func (cd *ConfigData) Set(obj Loc, key string, value Loc) Loc {
	keyLoc := cd.AddString(key)
	return cd.SetLoc(obj, keyLoc, value)
}

// SetLoc walks obj's chain for a member whose key equals keyLoc; if found,
// its value is overwritten in place (ObjectSize is unchanged). Otherwise
// the (key, value) pair is appended as a new member, growing the chain
// exactly as Push does for arrays.
func (cd *ConfigData) SetLoc(obj Loc, keyLoc Loc, value Loc) Loc {
	off := obj.Offset()
	for {
		size := cd.blockSize(off)
		for i := 0; i < size; i++ {
			base := off + blockHeaderSize + i*objectSlotSize
			k := Loc(binary.LittleEndian.Uint32(cd.buf[base : base+4]))
			if k == keyLoc {
				binary.LittleEndian.PutUint32(cd.buf[base+4:base+8], uint32(value))
				return obj
			}
		}
		next := cd.blockNext(off)
		if next.IsNull() {
			break
		}
		off = next.Offset()
	}

	tail := cd.lastBlock(obj.Offset())
	size := cd.blockSize(tail)
	cap := cd.blockAllocated(tail)

	if size < cap {
		base := tail + blockHeaderSize + size*objectSlotSize
		binary.LittleEndian.PutUint32(cd.buf[base:base+4], uint32(keyLoc))
		binary.LittleEndian.PutUint32(cd.buf[base+4:base+8], uint32(value))
		cd.setBlockSize(tail, size+1)
		return obj
	}

	newCap := cap * 2
	if newCap < 1 {
		newCap = 1
	}
	newBlock := cd.AddObject(newCap)
	cd.setBlockNext(tail, newBlock)

	newOff := newBlock.Offset()
	base := newOff + blockHeaderSize
	binary.LittleEndian.PutUint32(cd.buf[base:base+4], uint32(keyLoc))
	binary.LittleEndian.PutUint32(cd.buf[base+4:base+8], uint32(value))
	cd.setBlockSize(newOff, 1)
	return obj
}
