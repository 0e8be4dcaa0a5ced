// Functions and methods are not thread safe.

package malloc

import "unsafe"

import "github.com/bnclabs/gomem/api"
import "github.com/bnclabs/gomem/lib"

type heapblock struct {
	buf  []byte
	size int64
}

// Heap is the general purpose strategy behind the default slot,
// blocks are serviced by the Go heap and retained in a live table so
// that accounting matches the buffer backed strategies. Capacity is
// a budget, allocations beyond it fail with api.ErrorOutofmemory.
type Heap struct {
	capacity  int64
	allocated int64
	live      map[unsafe.Pointer]heapblock

	h_sizes lib.AverageInt64
}

// NewHeap create a heap strategy with a budget of capacity bytes.
func NewHeap(capacity int64) *Heap {
	if capacity <= 0 || capacity > Maxcapacity {
		panicerr("heap: invalid capacity %v", capacity)
	}
	return &Heap{
		capacity: capacity,
		live:     make(map[unsafe.Pointer]heapblock),
	}
}

//---- operations

// Alloc implement api.Allocator{} interface.
func (heap *Heap) Alloc(size, alignment int64) (unsafe.Pointer, error) {
	if heap.live == nil {
		panicerr("heap: released")
	} else if size <= 0 {
		panicerr("heap: invalid size %v", size)
	}
	alignment = fixalignment(alignment)
	if heap.allocated+size > heap.capacity {
		return nil, api.ErrorOutofmemory
	}
	// slack so the block can be aligned within the slice.
	buf := make([]byte, size+alignment)
	base := int64(uintptr(unsafe.Pointer(&buf[0])))
	off := alignup(base, alignment) - base
	ptr := unsafe.Pointer(&buf[off])
	heap.live[ptr] = heapblock{buf: buf, size: size}
	heap.allocated += size
	heap.h_sizes.Add(size)
	return ptr, nil
}

// Free implement api.Allocator{} interface.
func (heap *Heap) Free(ptr unsafe.Pointer) {
	if heap.live == nil {
		panicerr("heap: released")
	} else if ptr == nil {
		panicerr("heap: freeing nil pointer")
	}
	block, ok := heap.live[ptr]
	if ok == false {
		panicerr("heap: foreign pointer %p", ptr)
	}
	delete(heap.live, ptr)
	heap.allocated -= block.size
}

// Release implement api.Allocator{} interface.
func (heap *Heap) Release() {
	heap.live, heap.allocated = nil, 0
}

//---- statistics

// Allocated implement api.Allocator{} interface.
func (heap *Heap) Allocated() int64 {
	return heap.allocated
}

// Capacity implement api.Allocator{} interface.
func (heap *Heap) Capacity() int64 {
	return heap.capacity
}

// Info implement api.Allocator{} interface.
func (heap *Heap) Info() (capacity, allocated, overhead int64) {
	self := int64(unsafe.Sizeof(*heap))
	entrysz := int64(unsafe.Sizeof(heapblock{})) + int64(unsafe.Sizeof(uintptr(0)))
	return heap.capacity, heap.allocated, self + int64(len(heap.live))*entrysz
}

// Stats implement api.Allocator{} interface.
func (heap *Heap) Stats() map[string]interface{} {
	capacity, allocated, overhead := heap.Info()
	return map[string]interface{}{
		"capacity":  capacity,
		"allocated": allocated,
		"available": capacity - allocated,
		"overhead":  overhead,
		"live":      int64(len(heap.live)),
		"h_sizes":   heap.h_sizes.Stats(),
	}
}
