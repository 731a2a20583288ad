//go:build windows

// Package cuda registers the CUDA driver for nvconv.
//
// The purego-based driver bindings are not built on Windows; importing
// this package there is a no-op and the nvconv factories return
// ErrNoDriver.
package cuda

import "errors"

// ErrUnsupported is returned by Probe on platforms without driver
// bindings.
var ErrUnsupported = errors.New("cuda: not supported on this platform")

// DeviceInfo describes the CUDA device conversions run on.
type DeviceInfo struct {
	Name       string
	TotalMemMB int
	SMCount    int
	ComputeMaj int
	ComputeMin int
	MaxThreads int
}

// Probe reports whether a usable CUDA device is present.
func Probe() (*DeviceInfo, error) {
	return nil, ErrUnsupported
}
