// Command nvconvinfo reports whether nvconv can run on this machine:
// which GPU driver is registered, what device it found, and where the
// compiled kernel module (convert.ptx) will be searched for.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/nvconv"
	"github.com/gogpu/nvconv/cuda" // importing also registers the CUDA driver
)

func main() {
	var (
		verbose = flag.Bool("v", false, "enable debug logging")
		probe   = flag.Bool("probe", true, "probe the CUDA device")
	)
	flag.Parse()

	if *verbose {
		nvconv.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	fmt.Println("kernel module search path:")
	for _, path := range nvconv.ModuleCandidates() {
		fmt.Printf("  %s\n", path)
	}
	if dir := os.Getenv(nvconv.EnvPTXDir); dir != "" {
		fmt.Printf("(%s=%s overrides the prefix search)\n", nvconv.EnvPTXDir, dir)
	}

	names := nvconv.AvailableDrivers()
	if len(names) == 0 {
		fmt.Println("no GPU driver registered; conversion is unavailable")
		os.Exit(1)
	}
	fmt.Printf("registered drivers: %v (default %s)\n", names, nvconv.DefaultDriver().Name())

	if *probe {
		info, err := cuda.Probe()
		if err != nil {
			fmt.Printf("device probe failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("device: %s\n", info)
	}
}
