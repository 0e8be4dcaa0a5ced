package mmgr

import "github.com/bnclabs/gomem/api"

// Stats is a point-in-time snapshot of memory accounting across the
// manager's registered strategies. The snapshot is taken under the
// manager mutex, callers holding direct strategy handles can still
// mutate between a strategy read and the snapshot's use, so treat it
// as best effort.
type Stats struct {
	TotalAllocated int64
	TotalReserved  int64
	Usage          map[api.AllocatorType]int64
}

// Stats return aggregate and per-type usage across registered
// strategies.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := Stats{Usage: make(map[api.AllocatorType]int64)}
	for typ, allocator := range m.allocators {
		allocated := allocator.Allocated()
		stats.TotalAllocated += allocated
		stats.TotalReserved += allocator.Capacity()
		stats.Usage[typ] = allocated
	}
	return stats
}

// Fullstats return detailed per-strategy accounting, each strategy's
// Stats map keyed under its type name, along with system memory
// numbers.
func (m *Manager) Fullstats() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := map[string]interface{}{}
	totalalloc, totalcap := int64(0), int64(0)
	for typ, allocator := range m.allocators {
		stats[typ.String()] = allocator.Stats()
		totalalloc += allocator.Allocated()
		totalcap += allocator.Capacity()
	}
	stats["total.allocated"] = totalalloc
	stats["total.reserved"] = totalcap
	total, used, free := getsysmem()
	stats["sys.total"] = int64(total)
	stats["sys.used"] = int64(used)
	stats["sys.free"] = int64(free)
	return stats
}
