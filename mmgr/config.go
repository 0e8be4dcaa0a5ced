package mmgr

import s "github.com/bnclabs/gosettings"
import "github.com/cloudfoundry/gosigar"

import "github.com/bnclabs/gomem/malloc"

// Defaultsettings for a memory manager, one prefixed section per
// strategy slot. Refer malloc.Defaultsettings for the per-strategy
// keys.
//
// "heap.capacity" (int64, default: half of free RAM)
//		Budget for the default, Go-heap backed, strategy.
//
// "linear.capacity" (int64, default: 1MB)
//		Buffer size for the per-frame linear arena.
//
// "stack.capacity" (int64, default: 1MB)
//		Buffer size for the scoped stack arena.
//
// "pool.blocksize" (int64, default: 64)
// "pool.numblocks" (int64, default: 1024)
//		Block dimensions for the fixed-size pool arena.
func Defaultsettings() s.Settings {
	_, _, free := getsysmem()
	heapsetts := s.Settings{"capacity": int64(free / 2)}
	arenasetts := malloc.Defaultsettings()
	setts := s.Settings{}
	setts = setts.Mixin(
		heapsetts.AddPrefix("heap."),
		arenasetts.Section("capacity").AddPrefix("linear."),
		arenasetts.Section("capacity").AddPrefix("stack."),
		arenasetts.Section("blocksize").AddPrefix("pool."),
		arenasetts.Section("numblocks").AddPrefix("pool."),
	)
	return setts
}

func getsysmem() (total, used, free uint64) {
	mem := sigar.Mem{}
	mem.Get()
	return mem.Total, mem.Used, mem.Free
}
