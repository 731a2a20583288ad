package nvconv

import "errors"

// Errors returned by converter construction and Submit. Construction
// failures are fully unwound before they are returned: a factory never
// leaves a loaded module or a created stream behind.
var (
	// ErrNoDriver is returned by the factories when no GPU driver is
	// registered and none was injected with WithDriver. Import
	// github.com/gogpu/nvconv/cuda to register the CUDA driver.
	ErrNoDriver = errors.New("nvconv: no GPU driver available")

	// ErrModuleNotFound is returned when no search candidate yields a
	// loadable kernel module.
	ErrModuleNotFound = errors.New("nvconv: kernel module not found")

	// ErrEntryPointNotFound is returned when the module loads but does
	// not export the expected kernel entry point. The module is
	// unloaded before the error is returned.
	ErrEntryPointNotFound = errors.New("nvconv: kernel entry point not found")

	// ErrDimensions is returned by Submit when width or height is
	// non-positive or exceeds MaxDim.
	ErrDimensions = errors.New("nvconv: dimensions out of range")

	// ErrOddHeight is returned by Submit for odd heights. NV12 chroma
	// is subsampled 2:1 vertically and the kernel processes two luma
	// rows per invocation.
	ErrOddHeight = errors.New("nvconv: height must be even")

	// ErrComponents is returned for component counts other than 3 or 4.
	ErrComponents = errors.New("nvconv: component count must be 3 or 4")

	// ErrPitch is returned when the destination pitch is smaller than
	// the logical row size.
	ErrPitch = errors.New("nvconv: destination pitch too small")

	// ErrReleased is returned by Submit and Synchronize after Release.
	ErrReleased = errors.New("nvconv: converter already released")
)
