package nvconv

import (
	"fmt"
	"strings"
)

// kernelModule is a loaded kernel module plus the resolved function
// handle for one named entry point. The function handle is valid only
// while the module handle is; both are owned by exactly one converter
// and torn down exactly once.
type kernelModule struct {
	drv Driver
	mod ModuleHandle
	fn  FunctionHandle
}

// loadModule tries each candidate path in order until one loads, then
// binds the named entry point. Failed candidates are logged and the
// search continues; exhaustion is an error, not a panic. If the module
// loads but lacks the entry point, it is unloaded before the error is
// returned so no partial resource ever escapes.
func loadModule(drv Driver, paths []string, entryPoint string) (*kernelModule, error) {
	var (
		mod    ModuleHandle
		loaded bool
	)
	for _, path := range paths {
		m, err := drv.ModuleLoad(path)
		if err != nil {
			Logger().Warn("nvconv: could not load kernel module", "path", path, "err", err)
			continue
		}
		Logger().Debug("nvconv: loaded kernel module", "path", path)
		mod = m
		loaded = true
		break
	}
	if !loaded {
		Logger().Error("nvconv: kernel module search exhausted", "tried", paths)
		return nil, fmt.Errorf("%w (tried %s)", ErrModuleNotFound, strings.Join(paths, ", "))
	}

	fn, err := drv.ModuleGetFunction(mod, entryPoint)
	if err != nil {
		Logger().Error("nvconv: entry point missing from module", "entry", entryPoint, "err", err)
		if uerr := drv.ModuleUnload(mod); uerr != nil {
			Logger().Warn("nvconv: error unloading module", "err", uerr)
		}
		return nil, fmt.Errorf("%w: %q", ErrEntryPointNotFound, entryPoint)
	}

	return &kernelModule{drv: drv, mod: mod, fn: fn}, nil
}

// unload releases the module. It is idempotent: unloading an already
// unloaded module is a no-op. Unload failures are logged, never fatal.
func (m *kernelModule) unload() {
	if m == nil || m.mod == 0 {
		return
	}
	if err := m.drv.ModuleUnload(m.mod); err != nil {
		Logger().Warn("nvconv: error unloading conversion module", "err", err)
	}
	m.mod = 0
	m.fn = 0
}
