package malloc

import s "github.com/bnclabs/gosettings"

// Alignment default and minimum alignment for blocks returned by
// every strategy in this package.
const Alignment = int64(8)

// Maxalignment largest alignment honoured by strategies. Stack
// arenas record per-allocation padding in a single byte, which
// bounds the alignment they can satisfy.
const Maxalignment = int64(128)

// Maxcapacity maximum size of a single backing buffer.
const Maxcapacity = int64(1024 * 1024 * 1024 * 1024) // 1TB

// Maxblocks maximum number of blocks in a pool arena. Free-list
// links are encoded as uint16 indexes into the backing buffer.
const Maxblocks = int64(65536)

// Defaultsettings for one buffer-backed strategy.
//
// "capacity" (int64, default: 1MB)
//		Size of the backing buffer, applicable to linear and
//		stack strategies.
//
// "blocksize" (int64, default: 64)
//		Size of a single block, applicable to pool strategy.
//
// "numblocks" (int64, default: 1024)
//		Number of blocks in the buffer, applicable to pool
//		strategy.
func Defaultsettings() s.Settings {
	return s.Settings{
		"capacity":  int64(1024 * 1024),
		"blocksize": int64(64),
		"numblocks": int64(1024),
	}
}
