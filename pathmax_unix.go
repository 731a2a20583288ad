//go:build unix

package nvconv

import "golang.org/x/sys/unix"

// fallbackPathMax is used when the platform does not report a limit.
const fallbackPathMax = 4096

// pathMax returns the maximum path length for this platform.
func pathMax() int {
	if unix.PathMax > 0 {
		return unix.PathMax
	}
	return fallbackPathMax
}
