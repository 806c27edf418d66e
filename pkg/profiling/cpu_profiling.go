// Package profiling writes pprof CPU and heap profiles to files.
package profiling

import (
	"os"
	"runtime/pprof"

	"go.uber.org/zap"
)

var osCreate = os.Create
var pprofStartCPUProfile = pprof.StartCPUProfile
var pprofStopCPUProfile = pprof.StopCPUProfile

// DoCPUProfiling starts CPU profiling into path and returns the function that stops it.
// Failures are logged and yield a no-op stop function.
func DoCPUProfiling(path string) func() {
	f, err := osCreate(path)
	if err != nil {
		zap.L().Error("could not create CPU profile", zap.String("path", path), zap.Error(err))
		return func() {}
	}
	if err = pprofStartCPUProfile(f); err != nil {
		zap.L().Error("could not start CPU profile", zap.String("path", path), zap.Error(err))
		_ = f.Close()
		return func() {}
	}
	return func() {
		pprofStopCPUProfile()
		if err := f.Close(); err != nil {
			zap.L().Warn("failed to close CPU profile", zap.String("path", path), zap.Error(err))
		}
	}
}
