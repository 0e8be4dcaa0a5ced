// Package mmgr supplies the memory manager, a registry mapping each
// api.AllocatorType to one owned strategy instance, and a generic
// single-owner handle that pairs in-place construction of a value
// with allocation through a chosen strategy.
//
// A manager is an explicitly constructed object, create one during
// engine initialization and pass it to every subsystem that needs
// deterministic allocation, call Shutdown when the engine winds
// down. There is no process wide instance, isolated managers are
// cheap to construct in tests.
//
// Every public operation serializes on the manager's single mutex,
// correctness under concurrent access is guaranteed, parallel
// allocation throughput is not. Strategy instances obtained through
// Allocator bypass that mutex and inherit the package malloc
// single-writer contract.
package mmgr
