package main

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/go-fractals/fractalmake/internal/fractal"
)

func main() {
	fractal.Debug = os.Getenv("DEBUG") != ""
	if os.Getenv("PROFILE") != "" {
		f, err := os.Create("cpu.out")
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	cfg := "mandelbrot.cfg"
	if len(os.Args) > 1 {
		cfg = os.Args[1]
	}
	if err := fractal.Run(cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
