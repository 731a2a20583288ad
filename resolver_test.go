package nvconv

import (
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// noEnv is an environment lookup that finds nothing.
func noEnv(string) (string, bool) { return "", false }

func TestCandidatesDefaultOrder(t *testing.T) {
	cfg := newConfig([]Option{WithEnvLookup(noEnv)})

	want := []string{
		filepath.Join(InstallPrefix, "share/nvconv", "convert.ptx"),
		filepath.Join(".", "share/nvconv", "convert.ptx"),
		"/usr/share/nvconv/convert.ptx",
		"/usr/local/share/nvconv/convert.ptx",
	}
	if got := cfg.candidates(); !slices.Equal(got, want) {
		t.Errorf("candidates() = %v, want %v", got, want)
	}
}

func TestCandidatesEnvOverride(t *testing.T) {
	lookup := func(key string) (string, bool) {
		if key != EnvPTXDir {
			t.Errorf("looked up %q, want %q", key, EnvPTXDir)
		}
		return "/opt/kernels", true
	}
	cfg := newConfig([]Option{WithEnvLookup(lookup)})

	got := cfg.candidates()
	want := []string{"/opt/kernels/convert.ptx"}
	if !slices.Equal(got, want) {
		t.Errorf("candidates() = %v, want %v", got, want)
	}
}

func TestCandidatesEnvOverrideEmptyValueIgnored(t *testing.T) {
	lookup := func(string) (string, bool) { return "", true }
	cfg := newConfig([]Option{WithEnvLookup(lookup)})

	if got := cfg.candidates(); len(got) != len(defaultSearchPrefixes()) {
		t.Errorf("empty override should fall back to the prefix search, got %v", got)
	}
}

func TestCandidatesCustomPrefixes(t *testing.T) {
	cfg := newConfig([]Option{
		WithEnvLookup(noEnv),
		WithSearchPrefixes("/a", "/b"),
	})

	want := []string{
		"/a/share/nvconv/convert.ptx",
		"/b/share/nvconv/convert.ptx",
	}
	if got := cfg.candidates(); !slices.Equal(got, want) {
		t.Errorf("candidates() = %v, want %v", got, want)
	}
}

func TestCandidatesCustomModuleFile(t *testing.T) {
	cfg := newConfig([]Option{
		WithEnvLookup(noEnv),
		WithSearchPrefixes("/a"),
		WithModuleFile("custom.ptx"),
	})

	got := cfg.candidates()
	if len(got) != 1 || !strings.HasSuffix(got[0], "custom.ptx") {
		t.Errorf("candidates() = %v, want a single custom.ptx path", got)
	}
}

func TestCandidatesSkipsOverlongPaths(t *testing.T) {
	long := strings.Repeat("x", pathMax())
	cfg := newConfig([]Option{
		WithEnvLookup(noEnv),
		WithSearchPrefixes("/"+long, "/ok"),
	})

	got := cfg.candidates()
	want := []string{"/ok/share/nvconv/convert.ptx"}
	if !slices.Equal(got, want) {
		t.Errorf("candidates() = %v, want %v", got, want)
	}
}

func TestModuleCandidatesExported(t *testing.T) {
	got := ModuleCandidates(WithEnvLookup(noEnv), WithSearchPrefixes("/only"))
	want := []string{"/only/share/nvconv/convert.ptx"}
	if !slices.Equal(got, want) {
		t.Errorf("ModuleCandidates() = %v, want %v", got, want)
	}
}

func TestPathMaxPositive(t *testing.T) {
	if pathMax() <= 0 {
		t.Errorf("pathMax() = %d, want > 0", pathMax())
	}
}
