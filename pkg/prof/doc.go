// Package prof provides on-demand profiling for long decode runs.
//
// It wraps [runtime/pprof] and is conditionally compiled using the
// "profile" build tag:
//
//	go build -tags profile ./cmd/usbdecode
//
// When built without the tag every exported function is a no-op, so the
// command line can keep its --cpuprofile and --memprofile flags without
// cost in regular builds.
//
// # CPU Profiling
//
// CPU profiling streams samples to a file and requires explicit start/stop:
//
//	prof.StartCPU("cpu.prof")
//	defer prof.StopCPU()
//
// Attempting to start CPU profiling while already active returns
// [ErrCPUProfileActive].
//
// # Snapshot Profiles
//
// Heap and allocation profiles capture a point-in-time snapshot after the
// decoder has released its per-pipe state:
//
//	prof.Write(prof.ProfileHeap, "heap.prof")
package prof
