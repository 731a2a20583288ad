//go:build !windows

// Package cu binds the subset of the CUDA driver API that nvconv needs,
// via purego. No cgo is required: libcuda is dlopen'd at runtime, so
// binaries build and run on machines without the NVIDIA driver (Init
// simply fails there).
//
// Bound functions:
//   - Init/device/context: cuInit, cuDeviceGet, cuDeviceGetName,
//     cuDeviceGetAttribute, cuDeviceTotalMem, cuCtxCreate, cuCtxSetCurrent,
//     cuCtxDestroy
//   - Module/kernel: cuModuleLoad, cuModuleGetFunction, cuModuleUnload,
//     cuLaunchKernel
//   - Streams: cuStreamCreate, cuStreamSynchronize, cuStreamDestroy
package cu

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

// Result is a CUDA driver API status code (CUresult).
type Result int32

// CUresult codes we care about.
const (
	Success             Result = 0
	ErrInvalidValue     Result = 1
	ErrOutOfMemory      Result = 2
	ErrNotInitialized   Result = 3
	ErrNoDevice         Result = 100
	ErrInvalidContext   Result = 201
	ErrFileNotFound     Result = 301
	ErrInvalidHandle    Result = 400
	ErrNotFound         Result = 500
	ErrNotReady         Result = 600
	ErrLaunchFailed     Result = 719
	ErrInvalidPTX       Result = 218
	ErrUnsupportedPTX   Result = 222
	ErrSharedObjectInit Result = 303
)

var resultNames = map[Result]string{
	ErrInvalidValue:     "INVALID_VALUE",
	ErrOutOfMemory:      "OUT_OF_MEMORY",
	ErrNotInitialized:   "NOT_INITIALIZED",
	ErrNoDevice:         "NO_DEVICE",
	ErrInvalidContext:   "INVALID_CONTEXT",
	ErrFileNotFound:     "FILE_NOT_FOUND",
	ErrInvalidHandle:    "INVALID_HANDLE",
	ErrNotFound:         "NOT_FOUND",
	ErrNotReady:         "NOT_READY",
	ErrLaunchFailed:     "LAUNCH_FAILED",
	ErrInvalidPTX:       "INVALID_PTX",
	ErrUnsupportedPTX:   "UNSUPPORTED_PTX_VERSION",
	ErrSharedObjectInit: "SHARED_OBJECT_INIT_FAILED",
}

func (r Result) Error() string {
	if r == Success {
		return "CUDA_SUCCESS"
	}
	if name, ok := resultNames[r]; ok {
		return fmt.Sprintf("CUDA_ERROR_%s (%d)", name, int32(r))
	}
	return fmt.Sprintf("CUDA_ERROR(%d)", int32(r))
}

// StreamNonBlocking asks for a stream that does not synchronize with
// the legacy default stream (CU_STREAM_NON_BLOCKING).
const StreamNonBlocking = 1

// Device attributes used by QueryDevice.
const (
	attrMaxThreadsPerBlock  = 1
	attrMultiprocessorCount = 16
	attrComputeMajor        = 75
	attrComputeMinor        = 76
)

// Driver function pointers, populated by load().
var (
	loadOnce sync.Once
	loadErr  error

	cuInit               func(flags uint32) Result
	cuDeviceGet          func(device *int32, ordinal int32) Result
	cuDeviceGetName      func(name *byte, len int32, dev int32) Result
	cuDeviceGetAttribute func(pi *int32, attrib int32, dev int32) Result
	cuDeviceTotalMem     func(bytes *uint64, dev int32) Result
	cuCtxCreate          func(pctx *uintptr, flags uint32, dev int32) Result
	cuCtxSetCurrent      func(ctx uintptr) Result
	cuCtxDestroy         func(ctx uintptr) Result
	cuModuleLoad         func(module *uintptr, fname *byte) Result
	cuModuleGetFunction  func(hfunc *uintptr, hmod uintptr, name *byte) Result
	cuModuleUnload       func(hmod uintptr) Result
	cuLaunchKernel       func(
		f uintptr,
		gridDimX, gridDimY, gridDimZ uint32,
		blockDimX, blockDimY, blockDimZ uint32,
		sharedMemBytes uint32,
		hStream uintptr,
		kernelParams unsafe.Pointer,
		extra unsafe.Pointer,
	) Result
	cuStreamCreate      func(phStream *uintptr, flags uint32) Result
	cuStreamSynchronize func(hStream uintptr) Result
	cuStreamDestroy     func(hStream uintptr) Result
)

// load dlopens libcuda and registers the function pointers.
func load() error {
	loadOnce.Do(func() {
		lib, err := purego.Dlopen("libcuda.so.1", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			lib, err = purego.Dlopen("libcuda.so", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
			if err != nil {
				loadErr = fmt.Errorf("cannot load libcuda: %w (is the NVIDIA driver installed?)", err)
				return
			}
		}

		purego.RegisterLibFunc(&cuInit, lib, "cuInit")
		purego.RegisterLibFunc(&cuDeviceGet, lib, "cuDeviceGet")
		purego.RegisterLibFunc(&cuDeviceGetName, lib, "cuDeviceGetName")
		purego.RegisterLibFunc(&cuDeviceGetAttribute, lib, "cuDeviceGetAttribute")
		purego.RegisterLibFunc(&cuDeviceTotalMem, lib, "cuDeviceTotalMem_v2")
		purego.RegisterLibFunc(&cuCtxCreate, lib, "cuCtxCreate_v2")
		purego.RegisterLibFunc(&cuCtxSetCurrent, lib, "cuCtxSetCurrent")
		purego.RegisterLibFunc(&cuCtxDestroy, lib, "cuCtxDestroy_v2")
		purego.RegisterLibFunc(&cuModuleLoad, lib, "cuModuleLoad")
		purego.RegisterLibFunc(&cuModuleGetFunction, lib, "cuModuleGetFunction")
		purego.RegisterLibFunc(&cuModuleUnload, lib, "cuModuleUnload")
		purego.RegisterLibFunc(&cuLaunchKernel, lib, "cuLaunchKernel")
		purego.RegisterLibFunc(&cuStreamCreate, lib, "cuStreamCreate")
		purego.RegisterLibFunc(&cuStreamSynchronize, lib, "cuStreamSynchronize")
		purego.RegisterLibFunc(&cuStreamDestroy, lib, "cuStreamDestroy_v2")
	})
	return loadErr
}

var (
	initOnce sync.Once
	initErr  error
	ctx      uintptr
	device   int32
)

// Init loads the driver, initializes CUDA and creates a context on
// device 0. It is idempotent; every call after the first returns the
// first call's result.
func Init() error {
	initOnce.Do(func() {
		if initErr = load(); initErr != nil {
			return
		}
		if r := cuInit(0); r != Success {
			initErr = fmt.Errorf("cuInit: %w", r)
			return
		}
		if r := cuDeviceGet(&device, 0); r != Success {
			initErr = fmt.Errorf("cuDeviceGet: %w", r)
			return
		}
		if r := cuCtxCreate(&ctx, 0, device); r != Success {
			initErr = fmt.Errorf("cuCtxCreate: %w", r)
			return
		}
	})
	return initErr
}

// current makes the shared context current on the calling thread.
// Driver calls that touch modules or streams need it because goroutines
// migrate between OS threads.
func current() error {
	if err := Init(); err != nil {
		return err
	}
	if r := cuCtxSetCurrent(ctx); r != Success {
		return fmt.Errorf("cuCtxSetCurrent: %w", r)
	}
	return nil
}

// ModuleLoad loads the compiled module at path into the context.
func ModuleLoad(path string) (uintptr, error) {
	if err := current(); err != nil {
		return 0, err
	}
	cpath := append([]byte(path), 0)
	var mod uintptr
	if r := cuModuleLoad(&mod, &cpath[0]); r != Success {
		return 0, fmt.Errorf("cuModuleLoad(%s): %w", path, r)
	}
	return mod, nil
}

// ModuleGetFunction resolves a named entry point within a module.
func ModuleGetFunction(mod uintptr, name string) (uintptr, error) {
	if err := current(); err != nil {
		return 0, err
	}
	cname := append([]byte(name), 0)
	var fn uintptr
	if r := cuModuleGetFunction(&fn, mod, &cname[0]); r != Success {
		return 0, fmt.Errorf("cuModuleGetFunction(%s): %w", name, r)
	}
	return fn, nil
}

// ModuleUnload unloads a module. Unloading 0 is a no-op.
func ModuleUnload(mod uintptr) error {
	if mod == 0 {
		return nil
	}
	if err := current(); err != nil {
		return err
	}
	if r := cuModuleUnload(mod); r != Success {
		return fmt.Errorf("cuModuleUnload: %w", r)
	}
	return nil
}

// StreamCreate creates a stream with the given flags
// (e.g. StreamNonBlocking).
func StreamCreate(flags uint32) (uintptr, error) {
	if err := current(); err != nil {
		return 0, err
	}
	var stream uintptr
	if r := cuStreamCreate(&stream, flags); r != Success {
		return 0, fmt.Errorf("cuStreamCreate: %w", r)
	}
	return stream, nil
}

// StreamSynchronize blocks until the stream has drained.
func StreamSynchronize(stream uintptr) error {
	if err := current(); err != nil {
		return err
	}
	if r := cuStreamSynchronize(stream); r != Success {
		return fmt.Errorf("cuStreamSynchronize: %w", r)
	}
	return nil
}

// StreamDestroy destroys a stream.
func StreamDestroy(stream uintptr) error {
	if err := current(); err != nil {
		return err
	}
	if r := cuStreamDestroy(stream); r != Success {
		return fmt.Errorf("cuStreamDestroy: %w", r)
	}
	return nil
}

// LaunchKernel enqueues one kernel launch on the stream. params holds
// one pointer per kernel argument.
func LaunchKernel(fn uintptr, gx, gy, gz, bx, by, bz, sharedMem uint32, stream uintptr, params []unsafe.Pointer) error {
	if err := current(); err != nil {
		return err
	}
	var paramsPtr unsafe.Pointer
	if len(params) > 0 {
		paramsPtr = unsafe.Pointer(&params[0])
	}
	r := cuLaunchKernel(fn, gx, gy, gz, bx, by, bz, sharedMem, stream, paramsPtr, nil)
	if r != Success {
		return fmt.Errorf("cuLaunchKernel: %w", r)
	}
	return nil
}

// DeviceInfo describes the CUDA device the context was created on.
type DeviceInfo struct {
	Name       string
	TotalMemMB int
	SMCount    int
	ComputeMaj int
	ComputeMin int
	MaxThreads int
}

// QueryDevice returns information about device 0.
func QueryDevice() (*DeviceInfo, error) {
	if err := Init(); err != nil {
		return nil, err
	}

	info := &DeviceInfo{}

	nameBuf := make([]byte, 256)
	if r := cuDeviceGetName(&nameBuf[0], int32(len(nameBuf)), device); r != Success {
		return nil, fmt.Errorf("cuDeviceGetName: %w", r)
	}
	for i, b := range nameBuf {
		if b == 0 {
			info.Name = string(nameBuf[:i])
			break
		}
	}

	var totalMem uint64
	if r := cuDeviceTotalMem(&totalMem, device); r != Success {
		return nil, fmt.Errorf("cuDeviceTotalMem: %w", r)
	}
	info.TotalMemMB = int(totalMem / (1024 * 1024))

	getAttr := func(attr int32) int {
		var val int32
		cuDeviceGetAttribute(&val, attr, device)
		return int(val)
	}
	info.SMCount = getAttr(attrMultiprocessorCount)
	info.ComputeMaj = getAttr(attrComputeMajor)
	info.ComputeMin = getAttr(attrComputeMinor)
	info.MaxThreads = getAttr(attrMaxThreadsPerBlock)

	return info, nil
}

func (d *DeviceInfo) String() string {
	return fmt.Sprintf("%s (SM %d.%d, %d SMs, %d MB, %d max threads/block)",
		d.Name, d.ComputeMaj, d.ComputeMin, d.SMCount, d.TotalMemMB, d.MaxThreads)
}
