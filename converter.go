package nvconv

import (
	"fmt"
	"unsafe"
)

// Kernel entry points exported by convert.ptx.
const (
	entryRGBToNV12 = "rgb2yuv"
	entryNV12ToRGB = "yuv2rgb"
)

// Converter is an asynchronous colorspace conversion task bound to a
// private device stream. Both conversion directions implement it, so a
// caller can drive either through the same contract.
//
// A Converter is not safe for concurrent use from multiple goroutines;
// serialize Submit, Synchronize and Release externally. Distinct
// Converters are independent and may run concurrently on the device.
type Converter interface {
	// Submit enqueues one conversion of a width x height frame from
	// src to dst on the converter's stream and returns the launch
	// status immediately. Completion is observed only via Synchronize.
	// dstPitch is the byte stride between destination rows and must be
	// at least the logical row size.
	Submit(src DevicePtr, width, height int, dst DevicePtr, dstPitch uint32) error

	// Synchronize blocks until every previously submitted conversion
	// has completed. It is a pure wait with no timeout or cancellation:
	// a stuck kernel blocks the caller indefinitely.
	Synchronize() error

	// Release destroys the stream and unloads the kernel module.
	// Teardown is best-effort (failures are logged, not returned) and
	// Release is safe to call more than once.
	//
	// Release does NOT synchronize first. Releasing while launches are
	// outstanding is undefined; call Synchronize before Release.
	Release()
}

// task owns the stream lifecycle shared by both converter variants.
type task struct {
	drv      Driver
	stream   StreamHandle
	module   *kernelModule
	released bool
}

// newTask loads the kernel module, binds entryPoint and creates the
// converter's private stream. Any partial failure is unwound here; the
// caller either gets a fully constructed task or nothing.
func newTask(entryPoint string, cfg config) (task, error) {
	drv := cfg.driver
	if drv == nil {
		drv = DefaultDriver()
	}
	if drv == nil {
		return task{}, ErrNoDriver
	}

	module, err := loadModule(drv, cfg.candidates(), entryPoint)
	if err != nil {
		return task{}, err
	}

	stream, err := drv.StreamCreate()
	if err != nil {
		module.unload()
		return task{}, fmt.Errorf("nvconv: creating stream: %w", err)
	}

	return task{drv: drv, stream: stream, module: module}, nil
}

func (t *task) Synchronize() error {
	if t.released {
		return ErrReleased
	}
	return t.drv.StreamSynchronize(t.stream)
}

func (t *task) Release() {
	if t.released {
		return
	}
	t.released = true

	if t.stream != 0 {
		if err := t.drv.StreamDestroy(t.stream); err != nil {
			Logger().Warn("nvconv: error destroying stream", "err", err)
		}
		t.stream = 0
	}
	t.module.unload()
	t.module = nil
}

// rgbToNV12 converts packed RGB or RGBA frames to NV12.
type rgbToNV12 struct {
	task
	components uint64
}

// NewRGBToNV12 creates a converter from packed RGB(A) to NV12.
// components is the source pixel width in bytes: 3 for RGB, 4 for RGBA.
//
// The returned Converter owns a loaded kernel module and a device
// stream; callers must eventually Release it. On failure nothing is
// returned and nothing is leaked.
func NewRGBToNV12(components int, opts ...Option) (Converter, error) {
	if components != 3 && components != 4 {
		return nil, fmt.Errorf("%w (got %d)", ErrComponents, components)
	}
	t, err := newTask(entryRGBToNV12, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return &rgbToNV12{task: t, components: uint64(components)}, nil
}

// Submit enqueues one RGB(A) to NV12 conversion. src holds packed
// pixels of the configured component count; dst receives the NV12
// frame with luma rows of dstPitch bytes.
func (c *rgbToNV12) Submit(src DevicePtr, width, height int, dst DevicePtr, dstPitch uint32) error {
	if c.released {
		return ErrReleased
	}
	if err := validateFrame(width, height); err != nil {
		return err
	}
	// NV12 luma rows are one byte per pixel.
	if dstPitch < uint32(width) {
		return fmt.Errorf("%w: pitch %d for width %d", ErrPitch, dstPitch, width)
	}

	grid, block := launchGeometry(width, height)
	Logger().Debug("nvconv: rgb2yuv launch", "width", width, "height", height,
		"grid", grid, "pitch", dstPitch)

	var (
		srcArg  = uint64(src)
		w       = uint64(width)
		h       = uint64(height)
		comp    = c.components
		dstArg  = uint64(dst)
		pitch32 = dstPitch
	)
	args := []unsafe.Pointer{
		unsafe.Pointer(&srcArg),
		unsafe.Pointer(&w),
		unsafe.Pointer(&h),
		unsafe.Pointer(&comp),
		unsafe.Pointer(&dstArg),
		unsafe.Pointer(&pitch32),
	}
	return c.drv.LaunchKernel(c.module.fn, grid, block, 0, c.stream, args)
}

// nv12ToRGB converts NV12 frames back to packed RGB.
type nv12ToRGB struct {
	task
}

// NewNV12ToRGB creates a converter from NV12 to packed RGB. The
// destination is always written as full four-byte RGBX pixels, so no
// component count is taken.
//
// The returned Converter owns a loaded kernel module and a device
// stream; callers must eventually Release it.
func NewNV12ToRGB(opts ...Option) (Converter, error) {
	t, err := newTask(entryNV12ToRGB, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return &nv12ToRGB{task: t}, nil
}

// Submit enqueues one NV12 to RGB conversion. src holds a tightly
// packed NV12 frame; dst receives RGBX rows of dstPitch bytes.
func (c *nv12ToRGB) Submit(src DevicePtr, width, height int, dst DevicePtr, dstPitch uint32) error {
	if c.released {
		return ErrReleased
	}
	if err := validateFrame(width, height); err != nil {
		return err
	}
	// RGBX output rows are four bytes per pixel.
	if dstPitch < 4*uint32(width) {
		return fmt.Errorf("%w: pitch %d for width %d", ErrPitch, dstPitch, width)
	}

	grid, block := launchGeometry(width, height)
	Logger().Debug("nvconv: yuv2rgb launch", "width", width, "height", height,
		"grid", grid, "pitch", dstPitch)

	var (
		srcArg  = uint64(src)
		w       = uint64(width)
		h       = uint64(height)
		pitch32 = dstPitch
		dstArg  = uint64(dst)
	)
	args := []unsafe.Pointer{
		unsafe.Pointer(&srcArg),
		unsafe.Pointer(&w),
		unsafe.Pointer(&h),
		unsafe.Pointer(&pitch32),
		unsafe.Pointer(&dstArg),
	}
	return c.drv.LaunchKernel(c.module.fn, grid, block, 0, c.stream, args)
}
