// Functions and methods are not thread safe.

package malloc

import "unsafe"

import "github.com/bnclabs/gomem/api"
import "github.com/bnclabs/gomem/lib"

// Linear is a bump-cursor arena over a single buffer, meant for
// per-frame scratch memory. Individual blocks are never reclaimed,
// the entire arena is reclaimed in one Reset call. Outstanding
// pointers are not tracked, using one after Reset is a caller error.
type Linear struct {
	buf    []byte
	cursor int64
	owned  bool

	h_sizes lib.AverageInt64
}

// NewLinear create a linear arena owning a buffer of capacity bytes.
func NewLinear(capacity int64) *Linear {
	if capacity <= 0 || capacity > Maxcapacity {
		panicerr("linear: invalid capacity %v", capacity)
	}
	arena := &Linear{buf: make([]byte, capacity), owned: true}
	debugf("linear: new arena %v bytes\n", capacity)
	return arena
}

// NewLinearBuffer create a linear arena over a caller supplied
// buffer. The buffer is borrowed, Release detaches but never
// reclaims it.
func NewLinearBuffer(buf []byte) *Linear {
	if len(buf) == 0 {
		panicerr("linear: empty buffer")
	}
	return &Linear{buf: buf}
}

//---- operations

// Alloc implement api.Allocator{} interface. On failure the cursor
// is left unchanged.
func (arena *Linear) Alloc(size, alignment int64) (unsafe.Pointer, error) {
	if arena.buf == nil {
		panicerr("linear: arena released")
	} else if size <= 0 {
		panicerr("linear: invalid size %v", size)
	}
	alignment = fixalignment(alignment)
	base := int64(uintptr(unsafe.Pointer(&arena.buf[0])))
	off := alignup(base+arena.cursor, alignment) - base
	if off+size > int64(len(arena.buf)) {
		return nil, api.ErrorOutofmemory
	}
	arena.cursor = off + size
	arena.h_sizes.Add(size)
	return unsafe.Pointer(&arena.buf[off]), nil
}

// Free implement api.Allocator{} interface. Linear arenas never
// reclaim individual blocks, Free is a no-op.
func (arena *Linear) Free(ptr unsafe.Pointer) {
}

// Reset the arena, every pointer returned since the previous Reset
// becomes invalid.
func (arena *Linear) Reset() {
	arena.cursor = 0
}

// Release implement api.Allocator{} interface.
func (arena *Linear) Release() {
	arena.buf, arena.cursor = nil, 0
}

//---- statistics

// Allocated implement api.Allocator{} interface.
func (arena *Linear) Allocated() int64 {
	return arena.cursor
}

// Capacity implement api.Allocator{} interface.
func (arena *Linear) Capacity() int64 {
	return int64(len(arena.buf))
}

// Info implement api.Allocator{} interface.
func (arena *Linear) Info() (capacity, allocated, overhead int64) {
	self := int64(unsafe.Sizeof(*arena))
	return int64(len(arena.buf)), arena.cursor, self
}

// Stats implement api.Allocator{} interface.
func (arena *Linear) Stats() map[string]interface{} {
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
