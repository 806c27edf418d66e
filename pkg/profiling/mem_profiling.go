package profiling

import (
	"io"
	"runtime"
	"runtime/pprof"
	"sync"
	"time"

	"go.uber.org/zap"
)

var memProfilingInterval = 30 * time.Second
var pprofWriteHeapProfile = func(w io.Writer) error {
	return pprof.WriteHeapProfile(w)
}

// DoMemProfiling rewrites a heap profile at path periodically.
// The returned function writes a final profile and stops the periodic writes; it is safe to call more than once.
func DoMemProfiling(path string) func() {
	interval := memProfilingInterval
	done := make(chan struct{})
	var mu sync.Mutex

	write := func(periodic bool) {
		mu.Lock()
		defer mu.Unlock()
		if periodic {
			select {
			case <-done:
				return
			default:
			}
		}
		writeHeapProfile(path)
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				write(true)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
		})
		write(false)
	}
}

func writeHeapProfile(path string) {
	f, err := osCreate(path)
	if err != nil {
		zap.L().Error("could not create memory profile", zap.String("path", path), zap.Error(err))
		return
	}
	defer func() {
		_ = f.Close()
	}()
	runtime.GC() // get up-to-date statistics
	if err = pprofWriteHeapProfile(f); err != nil {
		zap.L().Error("could not write memory profile", zap.String("path", path), zap.Error(err))
	}
}
