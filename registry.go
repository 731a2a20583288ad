package nvconv

import "sync"

// registry holds registered drivers.
var (
	registryMu sync.RWMutex
	drivers    = make(map[string]Driver)
	// Priority order for driver selection (first available wins).
	driverPriority = []string{DriverCUDA}
)

// RegisterDriver registers a driver under its Name.
// This is typically called from init() functions in driver packages.
// If a driver with the same name is already registered, it is replaced.
func RegisterDriver(d Driver) {
	registryMu.Lock()
	defer registryMu.Unlock()
	drivers[d.Name()] = d
}

// UnregisterDriver removes a driver from the registry.
// This is useful for testing.
func UnregisterDriver(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(drivers, name)
}

// AvailableDrivers returns the names of all registered drivers.
func AvailableDrivers() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	return names
}

// LookupDriver returns a registered driver by name, or nil.
func LookupDriver(name string) Driver {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return drivers[name]
}

// DefaultDriver returns the best available driver based on priority,
// or nil if none is registered.
func DefaultDriver() Driver {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range driverPriority {
		if d, ok := drivers[name]; ok {
			return d
		}
	}

	// Fallback: any registered driver.
	for _, d := range drivers {
		return d
	}
	return nil
}
