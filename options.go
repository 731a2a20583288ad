package nvconv

import "os"

// Option configures a converter during creation.
// Use functional options to customize module discovery and, in tests,
// to inject a fake driver.
//
// Example:
//
//	// Default: registered driver, standard search path
//	conv, err := nvconv.NewNV12ToRGB()
//
//	// Kernel module in a non-standard location
//	conv, err := nvconv.NewNV12ToRGB(nvconv.WithSearchPrefixes("/opt/myapp"))
type Option func(*config)

// config holds optional configuration for converter creation.
type config struct {
	driver     Driver
	prefixes   []string
	moduleFile string
	lookupEnv  func(string) (string, bool)
}

// newConfig returns the default configuration with opts applied.
func newConfig(opts []Option) config {
	cfg := config{
		moduleFile: DefaultModuleFile,
		prefixes:   defaultSearchPrefixes(),
		lookupEnv:  os.LookupEnv,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithDriver injects a specific driver instead of the registered
// default. Use this for dependency injection of custom or fake drivers.
func WithDriver(d Driver) Option {
	return func(c *config) {
		c.driver = d
	}
}

// WithSearchPrefixes replaces the default installation-prefix search
// list. Each prefix is joined with share/nvconv/ and the module
// filename, and the candidates are tried in order. The NVCONV_PTX
// environment override still takes precedence when set.
func WithSearchPrefixes(prefixes ...string) Option {
	return func(c *config) {
		c.prefixes = prefixes
	}
}

// WithModuleFile overrides the kernel module filename (convert.ptx).
func WithModuleFile(name string) Option {
	return func(c *config) {
		c.moduleFile = name
	}
}

// WithEnvLookup replaces the environment lookup used for the NVCONV_PTX
// override. Tests use this to exercise the override path without
// touching the process environment.
func WithEnvLookup(lookup func(string) (string, bool)) Option {
	return func(c *config) {
		c.lookupEnv = lookup
	}
}
