// Package nvconv converts pixel buffers between packed RGB(A) and NV12
// layout on a CUDA device, as a stage in a video encode/decode pipeline.
//
// # Overview
//
// nvconv wraps a precompiled CUDA kernel module (convert.ptx) behind an
// asynchronous task abstraction. Each converter owns a private
// non-blocking CUDA stream; Submit enqueues one kernel launch and returns
// immediately, Synchronize blocks until all enqueued work has drained,
// and Release tears the converter down. Two mirrored directions are
// provided behind one interface: RGB(A) to NV12 and NV12 to RGB.
//
// Source and destination buffers are device-resident and owned by the
// caller. nvconv never allocates device memory and never touches pixels
// on the host.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/nvconv"
//	    _ "github.com/gogpu/nvconv/cuda" // register the CUDA driver
//	)
//
//	conv, err := nvconv.NewRGBToNV12(4)
//	if err != nil {
//	    // no CUDA driver, or convert.ptx not found
//	}
//	defer conv.Release()
//
//	// src and dst are CUdeviceptr values obtained elsewhere
//	// (e.g. from an encoder's input buffer).
//	if err := conv.Submit(src, 1920, 1080, dst, 2048); err != nil {
//	    // launch rejected by the device
//	}
//	if err := conv.Synchronize(); err != nil {
//	    // a previously enqueued launch failed
//	}
//
// # Kernel module discovery
//
// The compiled kernel module is always named convert.ptx. If the
// NVCONV_PTX environment variable names a directory, that directory is
// the only place searched. Otherwise the install prefix, the current
// directory, /usr and /usr/local are tried in order, each joined with
// share/nvconv/. The search list can be replaced with WithSearchPrefixes.
//
// # Concurrency
//
// Distinct converters run concurrently on the device with no ordering
// guarantee between them. Work submitted to one converter executes in
// submission order. A single converter is NOT safe for concurrent use
// from multiple goroutines; callers must serialize Submit, Synchronize
// and Release themselves.
//
// Release does not synchronize first. Releasing a converter while
// launches are still outstanding on its stream is undefined behavior;
// call Synchronize before Release.
package nvconv

// Version is the current version of the library.
const Version = "0.1.0"
