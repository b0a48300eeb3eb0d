package fractal

import (
	"fmt"
	"os"
	"time"
)

// Run loads an option file, renders the configured fractal and writes the
// image. Iteration count 0 (the "never escaped" sentinel) always maps to
// black; every other count goes through the color scale.
func Run(cfgPath string) error {
	f, err := os.Open(cfgPath)
	if err != nil {
		return err
	}
	opts, err := LoadOptions(f)
	f.Close()
	if err != nil {
		return err
	}
	DebugLog("Loaded options from %s: domain %dx%d, %d threads, output %q",
		cfgPath, opts.Domain.Columns, opts.Domain.Rows, opts.Threads, opts.Output)

	scale, err := NewColorScale(opts.Colors)
	if err != nil {
		return err
	}

	start := time.Now()
	frac, err := MakeFractal(opts.Domain, Checker(opts.Test), opts.Threads)
	if err != nil {
		return err
	}
	DebugLog("Computed %d points in %s", len(frac.Values), time.Since(start))

	fmt.Println("Saving image now...")
	return SaveImage(opts.Output, frac, func(iters uint32) Color {
		if iters == 0 {
			return Color{}
		}
		return scale.Color(iters)
	})
}
