package fractal

import "math/cmplx"

// Tester maps a probe point to its escape iteration count. The count 0 is
// the "never escaped" sentinel: the loop always runs at least one step
// before returning, so a genuine escape count is in [1, maxIters-1].
type Tester func(point Cmplx) uint32

// Probe selects which formula variable sweeps the grid; the other one is
// held at the configured constant.
type Probe int

const (
	ProbeZ Probe = iota // point is z's initial value, c is the constant
	ProbeC              // point is c, z starts at the constant
)

// NewTester bundles an evaluator with the iteration parameters into a
// per-point escape-time test. The tester is immutable and may be shared
// across workers.
func NewTester(f Fn, constant Cmplx, escape Real, maxIters uint32, probe Probe) Tester {
	if probe == ProbeC {
		return func(point Cmplx) uint32 {
			var iters uint32
			test := constant
			for cmplx.Abs(test) < escape && iters < maxIters {
				test = f(test, point)
				iters++
			}
			if iters == maxIters {
				return 0
			}
			return iters
		}
	}
	return func(point Cmplx) uint32 {
		var iters uint32
		test := point
		for cmplx.Abs(test) < escape && iters < maxIters {
			test = f(test, constant)
			iters++
		}
		if iters == maxIters {
			return 0
		}
		return iters
	}
}

// Checker adapts a single-point tester to the decomposition engine's
// per-chunk callback, filling the window in row-major order from the
// sub-domain's bottom row up.
func Checker(t Tester) CheckFunc {
	return func(sub Domain, window Window) {
		dx, dy := sub.Spacing()
		for i := 0; i < sub.Rows; i++ {
			im := imag(sub.LowerLeft) + dy*Real(i)
			for j := 0; j < sub.Columns; j++ {
				point := complex(real(sub.LowerLeft)+dx*Real(j), im)
				window[i*sub.Columns+j] = t(point)
			}
		}
	}
}
