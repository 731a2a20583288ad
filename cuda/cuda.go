//go:build !windows

// Package cuda registers the CUDA driver for nvconv.
//
// Import this package for its side effect to enable conversion on
// NVIDIA GPUs:
//
//	import _ "github.com/gogpu/nvconv/cuda"
//
// If the NVIDIA driver is not installed (libcuda cannot be loaded) or
// no device is present, registration is silently skipped and the
// nvconv factories return ErrNoDriver.
package cuda

import (
	"unsafe"

	"github.com/gogpu/nvconv"
	"github.com/gogpu/nvconv/internal/cu"
)

func init() {
	if err := cu.Init(); err != nil {
		nvconv.Logger().Debug("cuda: driver unavailable", "err", err)
		return
	}
	nvconv.RegisterDriver(driver{})
}

// driver adapts internal/cu to the nvconv.Driver interface. It is
// stateless; the CUDA context lives in internal/cu and is shared by
// every converter in the process.
type driver struct{}

func (driver) Name() string { return nvconv.DriverCUDA }

func (driver) ModuleLoad(path string) (nvconv.ModuleHandle, error) {
	mod, err := cu.ModuleLoad(path)
	return nvconv.ModuleHandle(mod), err
}

func (driver) ModuleGetFunction(mod nvconv.ModuleHandle, name string) (nvconv.FunctionHandle, error) {
	fn, err := cu.ModuleGetFunction(uintptr(mod), name)
	return nvconv.FunctionHandle(fn), err
}

func (driver) ModuleUnload(mod nvconv.ModuleHandle) error {
	return cu.ModuleUnload(uintptr(mod))
}

func (driver) StreamCreate() (nvconv.StreamHandle, error) {
	stream, err := cu.StreamCreate(cu.StreamNonBlocking)
	return nvconv.StreamHandle(stream), err
}

func (driver) StreamSynchronize(stream nvconv.StreamHandle) error {
	return cu.StreamSynchronize(uintptr(stream))
}

func (driver) StreamDestroy(stream nvconv.StreamHandle) error {
	return cu.StreamDestroy(uintptr(stream))
}

func (driver) LaunchKernel(fn nvconv.FunctionHandle, grid, block nvconv.Dim3, sharedMem uint32, stream nvconv.StreamHandle, args []unsafe.Pointer) error {
	return cu.LaunchKernel(uintptr(fn),
		grid.X, grid.Y, grid.Z,
		block.X, block.Y, block.Z,
		sharedMem, uintptr(stream), args)
}

// DeviceInfo describes the CUDA device conversions run on.
type DeviceInfo = cu.DeviceInfo

// Probe reports whether a usable CUDA device is present, and its
// properties. Useful for diagnostics; nvconv itself only needs the
// registered driver.
func Probe() (*DeviceInfo, error) {
	return cu.QueryDevice()
}
