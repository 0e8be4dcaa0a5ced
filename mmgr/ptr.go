package mmgr

import "unsafe"

import "github.com/bnclabs/gomem/api"

// Ptr is a single-owner handle over one value of type T constructed
// in storage obtained from a manager's strategy. The handle pairs
// the value's lifetime with its storage, Reset and Release destroy
// the value and return the storage to the same strategy it came
// from.
//
// Handles shall not be copied, two owners of the same storage end in
// a double free, transfer ownership with Move instead. Handles bound
// to the same type can be used from different goroutines since all
// storage traffic funnels through the manager mutex, a single handle
// is still one value with one owner.
//
// T shall not contain Go pointers, strategy buffers are untyped
// bytes invisible to the garbage collector.
type Ptr[T any] struct {
	m   *Manager
	typ api.AllocatorType
	ptr *T
}

// NewPtr create an empty handle bound to a manager and strategy
// type.
func NewPtr[T any](m *Manager, typ api.AllocatorType) *Ptr[T] {
	return &Ptr[T]{m: m, typ: typ}
}

// MakePtr allocate storage for one T from the strategy registered
// under typ and store value in it.
func MakePtr[T any](
	m *Manager, typ api.AllocatorType, value T) (*Ptr[T], error) {

	p := NewPtr[T](m, typ)
	if err := p.ResetWith(value); err != nil {
		return nil, err
	}
	return p, nil
}

// MakePtrFunc allocate storage for one T and initialize it in place
// with init. When init fails the storage is returned to the strategy
// before the error is propagated, failed construction does not leak
// the block.
func MakePtrFunc[T any](
	m *Manager, typ api.AllocatorType, init func(t *T) error) (*Ptr[T], error) {

	var zero T
	raw, err := m.Alloc(typ, int64(unsafe.Sizeof(zero)), int64(unsafe.Alignof(zero)))
	if err != nil {
		return nil, err
	}
	t := (*T)(raw)
	*t = zero
	if err := init(t); err != nil {
		m.Free(typ, raw)
		return nil, err
	}
	return &Ptr[T]{m: m, typ: typ, ptr: t}, nil
}

// Get the owned value, nil for an empty handle.
func (p *Ptr[T]) Get() *T {
	return p.ptr
}

// Valid return whether this handle owns a value.
func (p *Ptr[T]) Valid() bool {
	return p.ptr != nil
}

// Reset destroy the owned value, if any, and return its storage to
// the strategy. The handle becomes empty.
func (p *Ptr[T]) Reset() {
	if p.ptr == nil {
		return
	}
	var zero T
	*p.ptr = zero
	p.m.Free(p.typ, unsafe.Pointer(p.ptr))
	p.ptr = nil
}

// ResetWith destroy the owned value, if any, and construct value in
// freshly acquired storage. On allocation failure the handle is left
// empty.
func (p *Ptr[T]) ResetWith(value T) error {
	p.Reset()
	raw, err := p.m.Alloc(
		p.typ, int64(unsafe.Sizeof(value)), int64(unsafe.Alignof(value)))
	if err != nil {
		return err
	}
	t := (*T)(raw)
	*t = value
	p.ptr = t
	return nil
}

// Move transfer ownership to a fresh handle, this handle becomes
// empty.
func (p *Ptr[T]) Move() *Ptr[T] {
	moved := &Ptr[T]{m: p.m, typ: p.typ, ptr: p.ptr}
	p.ptr = nil
	return moved
}

// Release the owned value and its storage, alias to Reset that reads
// better in defer statements.
func (p *Ptr[T]) Release() {
	p.Reset()
}
