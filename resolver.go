package nvconv

import "path/filepath"

// EnvPTXDir names a directory containing the compiled kernel module.
// When set, it bypasses the installation-prefix search entirely: the
// single candidate is $NVCONV_PTX/convert.ptx.
const EnvPTXDir = "NVCONV_PTX"

// DefaultModuleFile is the well-known filename of the compiled kernel
// module.
const DefaultModuleFile = "convert.ptx"

// moduleSubdir is the fixed subdirectory beneath each search prefix.
const moduleSubdir = "share/nvconv"

// InstallPrefix is the installation prefix searched first for the
// kernel module. Distributors can bake in their own at build time:
//
//	go build -ldflags "-X github.com/gogpu/nvconv.InstallPrefix=/opt/nvconv"
var InstallPrefix = "/usr/local"

// defaultSearchPrefixes returns the ordered prefix candidates used when
// NVCONV_PTX is unset: the install prefix, the current directory, /usr
// and /usr/local.
func defaultSearchPrefixes() []string {
	return []string{InstallPrefix, ".", "/usr", "/usr/local"}
}

// candidates builds the ordered list of paths to try for the kernel
// module. Candidates longer than the platform path limit are skipped
// with a warning.
func (c *config) candidates() []string {
	limit := pathMax()

	if dir, ok := c.lookupEnv(EnvPTXDir); ok && dir != "" {
		path := filepath.Join(dir, c.moduleFile)
		if len(path) > limit {
			Logger().Warn("nvconv: override path exceeds platform limit",
				"path", path, "limit", limit)
			return nil
		}
		return []string{path}
	}

	paths := make([]string, 0, len(c.prefixes))
	for _, prefix := range c.prefixes {
		path := filepath.Join(prefix, moduleSubdir, c.moduleFile)
		if len(path) > limit {
			Logger().Warn("nvconv: search candidate exceeds platform limit",
				"path", path, "limit", limit)
			continue
		}
		paths = append(paths, path)
	}
	return paths
}

// ModuleCandidates reports the paths a converter created with the same
// options would try for the kernel module, in order. Useful for
// diagnosing "module not found" failures.
func ModuleCandidates(opts ...Option) []string {
	cfg := newConfig(opts)
	return cfg.candidates()
}
