package nvconv

import "unsafe"

// DriverCUDA is the identifier of the CUDA driver registered by
// github.com/gogpu/nvconv/cuda.
const DriverCUDA = "cuda"

// DevicePtr is an opaque device memory address (a CUdeviceptr on CUDA).
// nvconv never dereferences it on the host; allocation, population and
// freeing of device buffers is the caller's business.
type DevicePtr uintptr

// ModuleHandle identifies a loaded kernel module within the driver.
type ModuleHandle uintptr

// FunctionHandle identifies a kernel entry point within a loaded module.
// It is valid only as long as its owning module stays loaded.
type FunctionHandle uintptr

// StreamHandle identifies an ordered, asynchronous device execution
// queue. Operations on the same stream execute in submission order;
// operations on different streams have no ordering guarantee.
type StreamHandle uintptr

// Dim3 is one level of a kernel launch geometry, in work-groups (grid)
// or lanes per group (block).
type Dim3 struct {
	X, Y, Z uint32
}

// Driver is the device interface nvconv drives converters through.
// It abstracts the CUDA driver API so converters can be exercised
// against fakes in tests; the production implementation lives in
// github.com/gogpu/nvconv/cuda.
//
// Drivers must be registered via RegisterDriver and are selected via
// DefaultDriver, or injected per converter with WithDriver.
type Driver interface {
	// Name returns the driver identifier (e.g. "cuda").
	Name() string

	// ModuleLoad loads the compiled kernel module at path into the
	// active device context.
	ModuleLoad(path string) (ModuleHandle, error)

	// ModuleGetFunction resolves a named entry point inside a loaded
	// module.
	ModuleGetFunction(mod ModuleHandle, name string) (FunctionHandle, error)

	// ModuleUnload unloads a module. Unloading the zero handle is a
	// no-op.
	ModuleUnload(mod ModuleHandle) error

	// StreamCreate creates a non-blocking stream: one that does not
	// implicitly serialize against the default queue, so separate
	// converters can truly run concurrently.
	StreamCreate() (StreamHandle, error)

	// StreamSynchronize blocks the calling goroutine until every
	// operation previously submitted to the stream has completed.
	StreamSynchronize(stream StreamHandle) error

	// StreamDestroy destroys a stream. Destroying a stream with
	// outstanding work is undefined.
	StreamDestroy(stream StreamHandle) error

	// LaunchKernel enqueues one kernel launch on the stream and
	// returns without waiting for completion. Each element of args
	// points at one kernel argument value; the pointed-to values only
	// need to stay alive for the duration of the call.
	LaunchKernel(fn FunctionHandle, grid, block Dim3, sharedMem uint32, stream StreamHandle, args []unsafe.Pointer) error
}
