// Functions and methods are not thread safe.

package malloc

import "unsafe"

import "github.com/bnclabs/gomem/api"
import "github.com/bnclabs/gomem/lib"

// Pool manages a buffer sliced up into equal sized blocks, meant for
// homogeneous object allocation with zero fragmentation. Unused
// blocks are threaded on a LIFO free list encoded as uint16 block
// indexes into the backing buffer, allocation and free are O(1)
// operations on the list head.
type Pool struct {
	buf       []byte
	blocksize int64 // caller requested block size
	stride    int64 // blocksize rounded up to Alignment
	numblocks int64
	freelist  []uint16
	freeoff   int
	owned     bool

	h_sizes lib.AverageInt64
}

// NewPool create a pool arena owning a buffer of numblocks blocks of
// blocksize bytes each.
func NewPool(blocksize, numblocks int64) *Pool {
	stride := poolstride(blocksize, numblocks)
	pool := newpool(make([]byte, stride*numblocks), blocksize, numblocks)
	pool.owned = true
	debugf("pool: new arena %vx%v bytes\n", numblocks, blocksize)
	return pool
}

// NewPoolBuffer create a pool arena over a caller supplied buffer.
// The buffer is borrowed, Release detaches but never reclaims it.
func NewPoolBuffer(buf []byte, blocksize, numblocks int64) *Pool {
	stride := poolstride(blocksize, numblocks)
	if int64(len(buf)) < stride*numblocks {
		panicerr("pool: buffer %v short of %v", len(buf), stride*numblocks)
	}
	return newpool(buf, blocksize, numblocks)
}

func poolstride(blocksize, numblocks int64) int64 {
	if blocksize <= 0 {
		panicerr("pool: invalid blocksize %v", blocksize)
	} else if numblocks <= 0 || numblocks > Maxblocks {
		panicerr("pool: invalid numblocks %v", numblocks)
	}
	return alignup(blocksize, Alignment)
}

func newpool(buf []byte, blocksize, numblocks int64) *Pool {
	pool := &Pool{
		buf:       buf,
		blocksize: blocksize,
		stride:    alignup(blocksize, Alignment),
		numblocks: numblocks,
		freelist:  make([]uint16, numblocks),
		freeoff:   int(numblocks - 1),
	}
	// LIFO head at the end of the list, thread blocks so that the
	// first allocation starts at the buffer's base.
	for i := int64(0); i < numblocks; i++ {
		pool.freelist[i] = uint16(numblocks - 1 - i)
	}
	return pool
}

//---- operations

// Alloc implement api.Allocator{} interface. Fails when size exceeds
// the pool's block size, when every block is live, or when the head
// block cannot satisfy the requested alignment.
func (pool *Pool) Alloc(size, alignment int64) (unsafe.Pointer, error) {
	if pool.buf == nil {
		panicerr("pool: arena released")
	} else if size <= 0 {
		panicerr("pool: invalid size %v", size)
	}
	alignment = fixalignment(alignment)
	if size > pool.blocksize {
		return nil, api.ErrorOutofmemory
	} else if pool.freeoff < 0 {
		return nil, api.ErrorOutofmemory
	}
	nthblock := int64(pool.freelist[pool.freeoff])
	ptr := unsafe.Pointer(&pool.buf[nthblock*pool.stride])
	if (uintptr(ptr) & uintptr(alignment-1)) != 0 {
		return nil, api.ErrorOutofmemory
	}
	pool.freelist = pool.freelist[:pool.freeoff]
	pool.freeoff--
	pool.h_sizes.Add(size)
	return ptr, nil
}

// Free implement api.Allocator{} interface. The pointer shall be a
// block obtained from this pool, the freed block becomes the next
// one returned by Alloc. Double free is not detected and corrupts
// the free list, it is a caller precondition.
func (pool *Pool) Free(ptr unsafe.Pointer) {
	if pool.buf == nil {
		panicerr("pool: arena released")
	} else if ptr == nil {
		panicerr("pool: freeing nil pointer")
	}
	diffptr := int64(uintptr(ptr) - uintptr(unsafe.Pointer(&pool.buf[0])))
	if diffptr < 0 || diffptr >= pool.stride*pool.numblocks {
		panicerr("pool: foreign pointer %x", diffptr)
	} else if (diffptr % pool.stride) != 0 {
		panicerr("pool: unaligned pointer %x,%v", diffptr, pool.stride)
	}
	pool.freelist = append(pool.freelist, uint16(diffptr/pool.stride))
	pool.freeoff++
}

// Reset the pool, every block rejoins the free list in construction
// order and every pointer handed out becomes invalid.
func (pool *Pool) Reset() {
	if pool.buf == nil {
		panicerr("pool: arena released")
	}
	pool.freelist = pool.freelist[:pool.numblocks]
	for i := int64(0); i < pool.numblocks; i++ {
		pool.freelist[i] = uint16(pool.numblocks - 1 - i)
	}
	pool.freeoff = int(pool.numblocks - 1)
}

// Release implement api.Allocator{} interface.
func (pool *Pool) Release() {
	pool.buf, pool.freelist, pool.freeoff = nil, nil, -1
	pool.numblocks = 0
}

//---- statistics

// Freeblocks return number of blocks currently on the free list.
func (pool *Pool) Freeblocks() int64 {
	return int64(len(pool.freelist))
}

// Allocated implement api.Allocator{} interface.
func (pool *Pool) Allocated() int64 {
	return (pool.numblocks - pool.Freeblocks()) * pool.stride
}

// Capacity implement api.Allocator{} interface.
func (pool *Pool) Capacity() int64 {
	return pool.numblocks * pool.stride
}

// Info implement api.Allocator{} interface.
func (pool *Pool) Info() (capacity, allocated, overhead int64) {
	self := int64(unsafe.Sizeof(*pool))
	slicesz := int64(cap(pool.freelist)) * int64(unsafe.Sizeof(uint16(0)))
	return pool.Capacity(), pool.Allocated(), self + slicesz
}

// Stats implement api.Allocator{} interface.
func (pool *Pool) Stats() map[string]interface{} {
	capacity, allocated, overhead := pool.Info()
	return map[string]interface{}{
		"capacity":   capacity,
		"allocated":  allocated,
		"available":  capacity - allocated,
		"overhead":   overhead,
		"blocksize":  pool.blocksize,
		"numblocks":  pool.numblocks,
		"owned":      pool.owned,
		"freeblocks": pool.Freeblocks(),
		"h_sizes":    pool.h_sizes.Stats(),
	}
}
