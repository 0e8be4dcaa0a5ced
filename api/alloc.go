// Package api define types and interfaces common to all allocation
// strategies implemented by this module.
package api

import "errors"
import "unsafe"

// ErrorOutofmemory returned by Alloc when the strategy's remaining
// capacity cannot satisfy the requested size and alignment. This is a
// recoverable condition, callers can fall back to another strategy,
// reset an arena, or treat it as fatal.
var ErrorOutofmemory = errors.New("gomem.outofmemory")

// Allocator interface for custom memory management. Implementations
// are not internally synchronized, mmgr.Manager serializes access to
// registered instances behind a single mutex.
type Allocator interface {
	// Alloc a block of `size` bytes whose address is aligned to
	// `alignment` bytes. Alignment shall be a power of 2 not
	// exceeding malloc.Maxalignment, zero picks the default.
	Alloc(size, alignment int64) (unsafe.Pointer, error)

	// Free a block obtained from this allocator. Semantics are
	// strategy defined, linear arenas treat Free as no-op while
	// pool and stack enforce their own discipline.
	Free(ptr unsafe.Pointer)

	// Allocated return number of bytes handed out and not yet
	// freed.
	Allocated() int64

	// Capacity return total number of bytes managed by this
	// allocator.
	Capacity() int64

	// Info return memory accounting for this allocator, overhead
	// is the book-keeping cost outside the managed buffer.
	Info() (capacity, allocated, overhead int64)

	// Stats return a snapshot of accounting and allocation-size
	// statistics for this allocator.
	Stats() map[string]interface{}

	// Release the allocator and drop its backing buffer. Strategy
	// shall not be used after Release.
	Release()
}

// Resetter is implemented by strategies that can discard every
// outstanding allocation in a single call, like linear and stack
// arenas at frame boundaries.
type Resetter interface {
	Reset()
}

// AllocatorType names a strategy slot within the memory manager.
// The set is closed, the manager owns at most one strategy instance
// per type.
type AllocatorType byte

const (
	// Default strategy, backed by the Go heap.
	Default AllocatorType = iota
	// Linear strategy, bump cursor arena reclaimed in bulk.
	Linear
	// Pool strategy, fixed size blocks with a LIFO free list.
	Pool
	// Stack strategy, LIFO blocks with O(1) markers.
	Stack
)

func (typ AllocatorType) String() string {
	switch typ {
	case Default:
		return "default"
	case Linear:
		return "linear"
	case Pool:
		return "pool"
	case Stack:
		return "stack"
	}
	return "unknown"
}
