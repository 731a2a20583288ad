package nvconv

import (
	"slices"
	"testing"
	"unsafe"
)

// stubDriver is a do-nothing Driver with a configurable name, used to
// exercise the registry.
type stubDriver struct {
	name string
}

func (d stubDriver) Name() string { return d.name }
func (stubDriver) ModuleLoad(string) (ModuleHandle, error) {
	return 0, ErrModuleNotFound
}
func (stubDriver) ModuleGetFunction(ModuleHandle, string) (FunctionHandle, error) {
	return 0, ErrEntryPointNotFound
}
func (stubDriver) ModuleUnload(ModuleHandle) error        { return nil }
func (stubDriver) StreamCreate() (StreamHandle, error)    { return 1, nil }
func (stubDriver) StreamSynchronize(StreamHandle) error   { return nil }
func (stubDriver) StreamDestroy(StreamHandle) error       { return nil }
func (stubDriver) LaunchKernel(FunctionHandle, Dim3, Dim3, uint32, StreamHandle, []unsafe.Pointer) error {
	return nil
}

func TestRegisterAndLookupDriver(t *testing.T) {
	d := stubDriver{name: "stub"}
	RegisterDriver(d)
	t.Cleanup(func() { UnregisterDriver("stub") })

	if got := LookupDriver("stub"); got != Driver(d) {
		t.Errorf("LookupDriver(stub) = %v, want the registered driver", got)
	}
	if !slices.Contains(AvailableDrivers(), "stub") {
		t.Errorf("AvailableDrivers() = %v, missing stub", AvailableDrivers())
	}
}

func TestUnregisterDriver(t *testing.T) {
	RegisterDriver(stubDriver{name: "gone"})
	UnregisterDriver("gone")

	if LookupDriver("gone") != nil {
		t.Error("driver still registered after UnregisterDriver")
	}
}

func TestDefaultDriverPrefersCUDA(t *testing.T) {
	RegisterDriver(stubDriver{name: "other"})
	RegisterDriver(stubDriver{name: DriverCUDA})
	t.Cleanup(func() {
		UnregisterDriver("other")
		UnregisterDriver(DriverCUDA)
	})

	if got := DefaultDriver(); got == nil || got.Name() != DriverCUDA {
		t.Errorf("DefaultDriver() = %v, want the cuda driver", got)
	}
}

func TestDefaultDriverFallsBackToAny(t *testing.T) {
	RegisterDriver(stubDriver{name: "only"})
	t.Cleanup(func() { UnregisterDriver("only") })

	if got := DefaultDriver(); got == nil || got.Name() != "only" {
		t.Errorf("DefaultDriver() = %v, want the only registered driver", got)
	}
}

func TestDefaultDriverEmpty(t *testing.T) {
	if got := DefaultDriver(); got != nil {
		t.Errorf("DefaultDriver() = %v with empty registry, want nil", got)
	}
}
