package malloc

import "fmt"

// alignup round off upward to the next multiple of alignment,
// alignment is expected to be a power of 2.
func alignup(off, alignment int64) int64 {
	return (off + alignment - 1) &^ (alignment - 1)
}

// fixalignment validate a caller supplied alignment, zero picks the
// package default.
func fixalignment(alignment int64) int64 {
	if alignment == 0 {
		return Alignment
	} else if alignment < 0 || (alignment&(alignment-1)) != 0 {
		panicerr("alignment %v is not a power of 2", alignment)
	} else if alignment > Maxalignment {
		panicerr("alignment %v exceeds %v", alignment, Maxalignment)
	}
	return alignment
}

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}
