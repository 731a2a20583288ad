//go:build !windows

package cu

import (
	"strings"
	"testing"
)

func TestResultError(t *testing.T) {
	tests := []struct {
		r    Result
		want string
	}{
		{Success, "CUDA_SUCCESS"},
		{ErrInvalidValue, "CUDA_ERROR_INVALID_VALUE (1)"},
		{ErrNoDevice, "CUDA_ERROR_NO_DEVICE (100)"},
		{ErrFileNotFound, "CUDA_ERROR_FILE_NOT_FOUND (301)"},
		{ErrNotFound, "CUDA_ERROR_NOT_FOUND (500)"},
		{ErrLaunchFailed, "CUDA_ERROR_LAUNCH_FAILED (719)"},
		{Result(9999), "CUDA_ERROR(9999)"},
	}
	for _, tt := range tests {
		if got := tt.r.Error(); got != tt.want {
			t.Errorf("Result(%d).Error() = %q, want %q", int32(tt.r), got, tt.want)
		}
	}
}

func TestResultIsError(t *testing.T) {
	// Result must satisfy the error interface so driver wrappers can
	// wrap it with %w.
	var err error = ErrNotInitialized
	if !strings.Contains(err.Error(), "NOT_INITIALIZED") {
		t.Errorf("err.Error() = %q", err.Error())
	}
}

func TestDeviceInfoString(t *testing.T) {
	info := &DeviceInfo{
		Name:       "Graphics Device",
		TotalMemMB: 8192,
		SMCount:    46,
		ComputeMaj: 8,
		ComputeMin: 6,
		MaxThreads: 1024,
	}
	want := "Graphics Device (SM 8.6, 46 SMs, 8192 MB, 1024 max threads/block)"
	if got := info.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
