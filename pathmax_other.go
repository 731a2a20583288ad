//go:build !unix

package nvconv

const fallbackPathMax = 4096

func pathMax() int { return fallbackPathMax }
