// Functions and methods are not thread safe.

package malloc

import "unsafe"

import "github.com/bnclabs/gomem/api"
import "github.com/bnclabs/gomem/lib"

// Marker snapshots a stack arena's cursor. FreeToMarker with a
// marker discards, in O(1), every allocation made after the marker
// was taken. A marker is invalidated once a Free or Reset moves the
// cursor below its offset.
type Marker struct {
	Offset     int64
	Adjustment int64
}

// Stack is a bump-cursor arena whose blocks can be freed in strict
// LIFO order, individually or in bulk through markers. Every
// allocation pads at least one byte so the padding consumed for
// alignment can be recorded in the byte preceding the block, which
// is how Free recovers the exact prior cursor.
type Stack struct {
	buf        []byte
	cursor     int64
	adjustment int64 // padding recorded by the most recent allocation
	owned      bool

	h_sizes lib.AverageInt64
}

// NewStack create a stack arena owning a buffer of capacity bytes.
func NewStack(capacity int64) *Stack {
	if capacity <= 0 || capacity > Maxcapacity {
		panicerr("stack: invalid capacity %v", capacity)
	}
	arena := &Stack{buf: make([]byte, capacity), owned: true}
	debugf("stack: new arena %v bytes\n", capacity)
	return arena
}

// NewStackBuffer create a stack arena over a caller supplied buffer.
// The buffer is borrowed, Release detaches but never reclaims it.
func NewStackBuffer(buf []byte) *Stack {
	if len(buf) == 0 {
		panicerr("stack: empty buffer")
	}
	return &Stack{buf: buf}
}

//---- operations

// Alloc implement api.Allocator{} interface. On failure the cursor
// is left unchanged.
func (arena *Stack) Alloc(size, alignment int64) (unsafe.Pointer, error) {
	if arena.buf == nil {
		panicerr("stack: arena released")
	} else if size <= 0 {
		panicerr("stack: invalid size %v", size)
	}
	alignment = fixalignment(alignment)
	base := int64(uintptr(unsafe.Pointer(&arena.buf[0])))
	// one byte minimum padding to record the adjustment.
	off := alignup(base+arena.cursor+1, alignment) - base
	if off+size > int64(len(arena.buf)) {
		return nil, api.ErrorOutofmemory
	}
	adjustment := off - arena.cursor
	arena.buf[off-1] = byte(adjustment)
	arena.cursor, arena.adjustment = off+size, adjustment
	arena.h_sizes.Add(size)
	return unsafe.Pointer(&arena.buf[off]), nil
}

// Free implement api.Allocator{} interface. The pointer shall be the
// most recently allocated live block, freeing a buried block moves
// the cursor below blocks that are still live and is a caller error
// that cannot be detected here.
func (arena *Stack) Free(ptr unsafe.Pointer) {
	if arena.buf == nil {
		panicerr("stack: arena released")
	} else if ptr == nil {
		panicerr("stack: freeing nil pointer")
	}
	off := int64(uintptr(ptr) - uintptr(unsafe.Pointer(&arena.buf[0])))
	if off <= 0 || off > int64(len(arena.buf)) {
		panicerr("stack: foreign pointer %x", off)
	} else if off >= arena.cursor {
		panicerr("stack: pointer %x is not live, double free?", off)
	}
	adjustment := int64(arena.buf[off-1])
	if adjustment < 1 || adjustment > Maxalignment || adjustment > off {
		panicerr("stack: corrupt adjustment %v at %x", adjustment, off)
	}
	arena.cursor, arena.adjustment = off-adjustment, 0
}

// GetMarker snapshot the current cursor.
func (arena *Stack) GetMarker() Marker {
	return Marker{Offset: arena.cursor, Adjustment: arena.adjustment}
}

// FreeToMarker roll the cursor back to marker, discarding every
// allocation made after the marker was taken.
func (arena *Stack) FreeToMarker(marker Marker) {
	if arena.buf == nil {
		panicerr("stack: arena released")
	} else if marker.Offset < 0 || marker.Offset > arena.cursor {
		panicerr("stack: invalid marker offset %v", marker.Offset)
	}
	arena.cursor, arena.adjustment = marker.Offset, marker.Adjustment
}

// Reset the arena, equivalent to FreeToMarker with the zero marker.
func (arena *Stack) Reset() {
	arena.FreeToMarker(Marker{})
}

// Release implement api.Allocator{} interface.
func (arena *Stack) Release() {
	arena.buf, arena.cursor, arena.adjustment = nil, 0, 0
}

//---- statistics

// Allocated implement api.Allocator{} interface.
func (arena *Stack) Allocated() int64 {
	return arena.cursor
}

// Capacity implement api.Allocator{} interface.
func (arena *Stack) Capacity() int64 {
	return int64(len(arena.buf))
}

// Info implement api.Allocator{} interface.
func (arena *Stack) Info() (capacity, allocated, overhead int64) {
	self := int64(unsafe.Sizeof(*arena))
	return int64(len(arena.buf)), arena.cursor, self
}

// Stats implement api.Allocator{} interface.
func (arena *Stack) Stats() map[string]interface{} {
	capacity, allocated, overhead := arena.Info()
	return map[string]interface{}{
		"capacity":  capacity,
		"allocated": allocated,
		"available": capacity - allocated,
		"overhead":  overhead,
		"owned":     arena.owned,
		"h_sizes":   arena.h_sizes.Stats(),
	}
}
