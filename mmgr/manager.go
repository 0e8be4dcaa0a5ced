package mmgr

import "fmt"
import "sync"
import "unsafe"

import "github.com/bnclabs/gomem/api"
import "github.com/bnclabs/gomem/malloc"
import "github.com/dustin/go-humanize"
import s "github.com/bnclabs/gosettings"

// Manager owns one allocation strategy per api.AllocatorType and
// serializes every operation behind a single mutex. Managers have an
// explicit lifecycle, New registers the built-in strategies and
// Shutdown releases them, using a manager after Shutdown panics.
type Manager struct {
	mu         sync.Mutex
	allocators map[api.AllocatorType]api.Allocator
	logprefix  string
}

// New create a manager and register one strategy per type sized from
// setts, refer Defaultsettings. Name is only used to prefix log
// lines.
func New(name string, setts s.Settings) *Manager {
	m := &Manager{
		allocators: make(map[api.AllocatorType]api.Allocator),
		logprefix:  fmt.Sprintf("[mmgr %v]", name),
	}
	heapcap := setts.Int64("heap.capacity")
	linearcap := setts.Int64("linear.capacity")
	stackcap := setts.Int64("stack.capacity")
	blocksize := setts.Int64("pool.blocksize")
	numblocks := setts.Int64("pool.numblocks")
	m.allocators[api.Default] = malloc.NewHeap(heapcap)
	m.allocators[api.Linear] = malloc.NewLinear(linearcap)
	m.allocators[api.Pool] = malloc.NewPool(blocksize, numblocks)
	m.allocators[api.Stack] = malloc.NewStack(stackcap)

	infof("%v heap budget %v\n", m.logprefix, humanize.Bytes(uint64(heapcap)))
	infof("%v linear arena %v\n", m.logprefix, humanize.Bytes(uint64(linearcap)))
	fmsg := "%v pool arena %v blocks of %v\n"
	infof(fmsg, m.logprefix, numblocks, humanize.Bytes(uint64(blocksize)))
	infof("%v stack arena %v\n", m.logprefix, humanize.Bytes(uint64(stackcap)))
	return m
}

func (m *Manager) get(typ api.AllocatorType) api.Allocator {
	if m.allocators == nil {
		panic(fmt.Errorf("%v manager released", m.logprefix))
	}
	allocator, ok := m.allocators[typ]
	if ok == false {
		panic(fmt.Errorf("%v no allocator for %v", m.logprefix, typ))
	}
	return allocator
}

//---- operations

// Alloc a block of size bytes, aligned to alignment bytes, from the
// strategy registered under typ.
func (m *Manager) Alloc(
	typ api.AllocatorType, size, alignment int64) (unsafe.Pointer, error) {

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.get(typ).Alloc(size, alignment)
}

// Free a block back to the strategy registered under typ. The block
// shall have been obtained from that same strategy, discipline is
// the strategy's own.
func (m *Manager) Free(typ api.AllocatorType, ptr unsafe.Pointer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.get(typ).Free(ptr)
}

// Register an allocator under typ, the manager takes ownership. A
// previously registered instance under the same type is released.
func (m *Manager) Register(typ api.AllocatorType, allocator api.Allocator) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.allocators == nil {
		panic(fmt.Errorf("%v manager released", m.logprefix))
	}
	if old, ok := m.allocators[typ]; ok {
		warnf("%v replacing %v allocator\n", m.logprefix, typ)
		old.Release()
	}
	m.allocators[typ] = allocator
}

// Allocator return the strategy registered under typ for direct
// strategy-level calls like Reset, GetMarker, FreeToMarker. Direct
// calls bypass the manager mutex.
func (m *Manager) Allocator(typ api.AllocatorType) api.Allocator {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.get(typ)
}

// Reset the strategy registered under typ, discarding all of its
// outstanding allocations. Panics for strategies that do not support
// bulk reclaim.
func (m *Manager) Reset(typ api.AllocatorType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if resetter, ok := m.get(typ).(api.Resetter); ok {
		resetter.Reset()
		return
	}
	panic(fmt.Errorf("%v %v allocator cannot reset", m.logprefix, typ))
}

// Shutdown release every registered strategy, the manager shall not
// be used afterwards.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.allocators == nil {
		panic(fmt.Errorf("%v manager released", m.logprefix))
	}
	for _, allocator := range m.allocators {
		allocator.Release()
	}
	m.allocators = nil
	infof("%v shutdown\n", m.logprefix)
}
