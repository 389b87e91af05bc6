// Copyright 2024 The cfgdata Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package jsonparser

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/niklasfrykholm/cfgdata"
)

// charBuffer accumulates the decoded bytes of a single string literal. Like
// its C namesake it keeps a fixed inline array for the common case of short
// strings and only reaches for the arena's allocator once a literal outgrows
// it, so parsing ordinary-sized strings allocates nothing.
type charBuffer struct {
	inline [128]byte
	heap   []byte
	n      int
	alloc  cfgdata.AllocFunc
	ud     any
}

func newCharBuffer(alloc cfgdata.AllocFunc, ud any) *charBuffer {
	return &charBuffer{alloc: alloc, ud: ud}
}

func (cb *charBuffer) cap() int {
	if cb.heap != nil {
		return len(cb.heap)
	}
	return len(cb.inline)
}

func (cb *charBuffer) push(c byte) {
	if cb.n >= cb.cap() {
		cb.grow()
	}
	if cb.heap != nil {
		cb.heap[cb.n] = c
	} else {
		cb.inline[cb.n] = c
	}
	cb.n++
}

func (cb *charBuffer) pushRune(r rune) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	for i := 0; i < n; i++ {
		cb.push(buf[i])
	}
}

func (cb *charBuffer) grow() {
	newCap := cb.cap() * 2
	newHeap := cb.alloc(cb.ud, nil, newCap)
	if cb.heap != nil {
		copy(newHeap, cb.heap)
	} else {
		copy(newHeap, cb.inline[:cb.n])
	}
	cb.heap = newHeap
}

func (cb *charBuffer) string() string {
	if cb.heap != nil {
		return string(cb.heap[:cb.n])
	}
	return string(cb.inline[:cb.n])
}

func (cb *charBuffer) free() {
	if cb.heap != nil {
		cb.alloc(cb.ud, cb.heap, 0)
		cb.heap = nil
	}
}

// locBuffer accumulates cfgdata.Loc values for an array or object still
// being parsed, with the same inline/heap-spill shape as charBuffer. The
// heap-spilled portion is stored as raw little-endian bytes through the
// shared AllocFunc, since that callback only knows how to grow byte slices;
// the inline portion, which never needs the allocator, is stored directly
// as a Loc array.
type locBuffer struct {
	inline [128]cfgdata.Loc
	heap   []byte
	n      int
	alloc  cfgdata.AllocFunc
	ud     any
}

func newLocBuffer(alloc cfgdata.AllocFunc, ud any) *locBuffer {
	return &locBuffer{alloc: alloc, ud: ud}
}

func (lb *locBuffer) cap() int {
	if lb.heap != nil {
		return len(lb.heap) / 4
	}
	return len(lb.inline)
}

func (lb *locBuffer) get(i int) cfgdata.Loc {
	if lb.heap != nil {
		return cfgdata.Loc(binary.LittleEndian.Uint32(lb.heap[i*4 : i*4+4]))
	}
	return lb.inline[i]
}

func (lb *locBuffer) set(i int, v cfgdata.Loc) {
	if lb.heap != nil {
		binary.LittleEndian.PutUint32(lb.heap[i*4:i*4+4], uint32(v))
	} else {
		lb.inline[i] = v
	}
}

func (lb *locBuffer) push(v cfgdata.Loc) {
	if lb.n >= lb.cap() {
		lb.grow()
	}
	lb.set(lb.n, v)
	lb.n++
}

func (lb *locBuffer) grow() {
	newCap := lb.cap() * 2
	newHeap := lb.alloc(lb.ud, nil, newCap*4)
	if lb.heap != nil {
		copy(newHeap, lb.heap)
	} else {
		for i := 0; i < lb.n; i++ {
			binary.LittleEndian.PutUint32(newHeap[i*4:i*4+4], uint32(lb.inline[i]))
		}
	}
	lb.heap = newHeap
}

func (lb *locBuffer) free() {
	if lb.heap != nil {
		lb.alloc(lb.ud, lb.heap, 0)
		lb.heap = nil
	}
}
