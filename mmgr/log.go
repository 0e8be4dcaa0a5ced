package mmgr

import "sync/atomic"

import "github.com/bnclabs/golog"

var logok = int64(0)

// LogComponents enable logging. By default logging is disabled, if
// applications want log information for the memory manager call this
// function with "mmgr" or "self" or "all" as argument.
func LogComponents(components ...string) {
	for _, comp := range components {
		switch comp {
		case "mmgr", "self", "all":
			atomic.StoreInt64(&logok, 1)
		}
	}
}

func infof(format string, v ...interface{}) {
	if atomic.LoadInt64(&logok) > 0 {
		log.Infof(format, v...)
	}
}

func warnf(format string, v ...interface{}) {
	if atomic.LoadInt64(&logok) > 0 {
		log.Warnf(format, v...)
	}
}
