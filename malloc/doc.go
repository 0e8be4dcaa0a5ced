// Package malloc supplies custom memory management for real-time
// engine subsystems, with a limited scope:
//
//   - Types and Functions exported by this package are not thread
//     safe, access is expected to be serialized by the caller,
//     typically behind the mmgr.Manager mutex.
//   - Work best when memory behaviour is known apriori, per-frame
//     scratch data in linear arenas, homogeneous objects in pool
//     arenas, scoped allocations in stack arenas.
//   - Every strategy manages exactly one contiguous buffer, either
//     owned by the strategy or borrowed from the caller. Borrowed
//     buffers are never reclaimed by Release.
//   - Buffers are plain byte slices, book-keeping is offset and
//     index arithmetic into the slice. Free lists are encoded as
//     block indexes, never as pointers punned from raw bytes.
//   - Blocks returned by this package are always 8-byte aligned,
//     larger power-of-2 alignments up to Maxalignment can be
//     requested per allocation.
//
// Capacity exhaustion is returned as api.ErrorOutofmemory and is
// recoverable. Misconfiguration and caller discipline violations,
// like freeing a foreign pointer, panic.
//
// Blocks carved from these buffers are invisible to the garbage
// collector, values stored in them shall not hold Go pointers.
package malloc
