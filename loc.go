// Copyright 2024 The cfgdata Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package cfgdata

// ValueType is the type tag carried in the low 3 bits of a Loc.
type ValueType uint8

// The seven value types a Loc can refer to.
const (
	TypeNull ValueType = iota
	TypeFalse
	TypeTrue
	TypeNumber
	TypeString
	TypeArray
	TypeObject
)

func (t ValueType) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeFalse:
		return "false"
	case TypeTrue:
		return "true"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	default:
		return "unknown"
	}
}

// typeBits is the width of the type tag packed into the low bits of a Loc.
const typeBits = 3
const typeMask = 0x7

// maxOffset is the largest offset a Loc can address with 29 remaining bits.
const maxOffset = 1<<(32-typeBits) - 1

// Loc is a 32-bit handle packing a ValueType tag (low 3 bits) and an
// offset (high 29 bits). Offset meaning is type-dependent: ignored for
// null/false/true, a byte offset into the arena for number/array/object,
// and a string-table symbol for string. Two Locs are identity-comparable;
// string Locs compare equal iff they name the same interned symbol.
type Loc uint32

func makeLoc(t ValueType, offset int) Loc {
	if offset < 0 || offset > maxOffset {
		panic("cfgdata: offset does not fit in a Loc")
	}
	return Loc(uint32(t) | uint32(offset)<<typeBits)
}

// Type returns the value type tag of the Loc.
func (l Loc) Type() ValueType {
	return ValueType(uint32(l) & typeMask)
}

// Offset returns the raw offset bits of the Loc. Its meaning depends on
// the Loc's type; see the Loc doc comment.
func (l Loc) Offset() int {
	return int(uint32(l) >> typeBits)
}

// Null returns the canonical null Loc.
func Null() Loc { return makeLoc(TypeNull, 0) }

// False returns the canonical false Loc.
func False() Loc { return makeLoc(TypeFalse, 0) }

// True returns the canonical true Loc.
func True() Loc { return makeLoc(TypeTrue, 0) }

// IsNull reports whether loc is the canonical null value.
func (l Loc) IsNull() bool { return l == Null() }
