package malloc

import "testing"

import "github.com/bnclabs/gomem/api"

func TestNewlinear(t *testing.T) {
	arena := NewLinear(1024)
	if x := arena.Capacity(); x != 1024 {
		t.Errorf("expected %v, got %v", 1024, x)
	} else if y := arena.Allocated(); y != 0 {
		t.Errorf("expected %v, got %v", 0, y)
	}
	arena.Release()

	buf := make([]byte, 512)
	arena = NewLinearBuffer(buf)
	if x := arena.Capacity(); x != 512 {
		t.Errorf("expected %v, got %v", 512, x)
	}
	arena.Release()

	// panic cases
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		NewLinear(0)
	}()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		NewLinear(Maxcapacity + 1)
	}()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		NewLinearBuffer(nil)
	}()
}

func TestLinearAlloc(t *testing.T) {
	arena := NewLinear(1024)
	ptr, err := arena.Alloc(100, 16)
	if err != nil {
		t.Errorf("unexpected allocation failure %v", err)
	} else if ptr == nil {
		t.Errorf("unexpected nil pointer")
	} else if x := uintptr(ptr) % 16; x != 0 {
		t.Errorf("pointer is not 16-byte aligned")
	}
	if x := arena.Allocated(); x < 100 || x > 115 {
		t.Errorf("expected between 100 and 115, got %v", x)
	}
	allocated := arena.Allocated()
	if _, err := arena.Alloc(1000, 1); err != api.ErrorOutofmemory {
		t.Errorf("expected %v, got %v", api.ErrorOutofmemory, err)
	} else if x := arena.Allocated(); x != allocated {
		t.Errorf("expected %v, got %v", allocated, x)
	}
	arena.Reset()
	if x := arena.Allocated(); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	}
	if _, err := arena.Alloc(1000, 1); err != nil {
		t.Errorf("unexpected allocation failure %v", err)
	}
	arena.Release()
}

func TestLinearNonoverlap(t *testing.T) {
	arena := NewLinear(4096)
	sizes := []int64{1, 7, 8, 33, 100, 128, 512}
	end := uintptr(0)
	for _, size := range sizes {
		ptr, err := arena.Alloc(size, 8)
		if err != nil {
			t.Fatalf("unexpected allocation failure %v", err)
		} else if x := uintptr(ptr) % 8; x != 0 {
			t.Errorf("pointer is not 8-byte aligned")
		} else if uintptr(ptr) < end {
			t.Errorf("block overlaps previous block")
		}
		end = uintptr(ptr) + uintptr(size)
	}
	total := int64(0)
	for _, size := range sizes {
		total += size
	}
	if x := arena.Allocated(); x < total {
		t.Errorf("expected at least %v, got %v", total, x)
	}
	arena.Release()
}

func TestLinearStats(t *testing.T) {
	arena := NewLinear(1024)
	if _, err := arena.Alloc(100, 8); err != nil {
		t.Fatalf("unexpected allocation failure %v", err)
	}
	stats := arena.Stats()
	capacity := stats["capacity"].(int64)
	allocated := stats["allocated"].(int64)
	available := stats["available"].(int64)
	if capacity != 1024 {
		t.Errorf("expected %v, got %v", 1024, capacity)
	} else if allocated != arena.Allocated() {
		t.Errorf("expected %v, got %v", arena.Allocated(), allocated)
	} else if available != capacity-allocated {
		t.Errorf("expected %v, got %v", capacity-allocated, available)
	}
	h_sizes := stats["h_sizes"].(map[string]interface{})
	if x := h_sizes["samples"].(int64); x != 1 {
		t.Errorf("expected %v, got %v", 1, x)
	}
	arena.Release()
}

func TestLinearPanics(t *testing.T) {
	arena := NewLinear(1024)
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		arena.Alloc(0, 8)
	}()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		arena.Alloc(10, 3) // not a power of 2
	}()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		arena.Alloc(10, Maxalignment*2)
	}()
	arena.Release()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		arena.Alloc(10, 8)
	}()
}

func BenchmarkLinearAlloc(b *testing.B) {
	arena := NewLinear(1024 * 1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := arena.Alloc(48, 8); err != nil {
			arena.Reset()
		}
	}
}
