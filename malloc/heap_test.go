package malloc

import "testing"
import "unsafe"

import "github.com/bnclabs/gomem/api"

func TestHeapAlloc(t *testing.T) {
	heap := NewHeap(100)
	ptr, err := heap.Alloc(60, 8)
	if err != nil {
		t.Fatalf("unexpected allocation failure %v", err)
	} else if x := uintptr(ptr) % 8; x != 0 {
		t.Errorf("pointer is not 8-byte aligned")
	} else if y := heap.Allocated(); y != 60 {
		t.Errorf("expected %v, got %v", 60, y)
	}
	if _, err := heap.Alloc(60, 8); err != api.ErrorOutofmemory {
		t.Errorf("expected %v, got %v", api.ErrorOutofmemory, err)
	}
	heap.Free(ptr)
	if x := heap.Allocated(); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	}
	if _, err := heap.Alloc(60, 8); err != nil {
		t.Errorf("unexpected allocation failure %v", err)
	}
	heap.Release()

	// panic cases
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		NewHeap(0)
	}()
}

func TestHeapForeignfree(t *testing.T) {
	heap := NewHeap(1024)
	if _, err := heap.Alloc(10, 8); err != nil {
		t.Fatalf("unexpected allocation failure %v", err)
	}
	foreign := make([]byte, 10)
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		heap.Free(unsafe.Pointer(&foreign[0]))
	}()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		heap.Free(nil)
	}()
	heap.Release()
}

func TestHeapAlignment(t *testing.T) {
	heap := NewHeap(1024 * 1024)
	for _, alignment := range []int64{8, 16, 32, 64, 128} {
		ptr, err := heap.Alloc(48, alignment)
		if err != nil {
			t.Fatalf("unexpected allocation failure %v", err)
		}
		if x := uintptr(ptr) % uintptr(alignment); x != 0 {
			t.Errorf("pointer is not %v-byte aligned", alignment)
		}
	}
	heap.Release()
}
