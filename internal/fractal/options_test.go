package fractal

import (
	"errors"
	"strings"
	"testing"
)

const sampleCfg = `
# minimal render configuration
domain: { { -2.0, -1.0 }, { 1.0, 1.0 }, 30, 20 }
colors: {
    { 1, { 0, 0, 255 } },
    { 10, { 255, 0, 0 } }
}
num_threads: 4
output: "out.bmp"
function: { "z^2 + c", max_iterations: 50, escape_tol: 2.0,
            constant: { 0.0, 0.0 }, point: c }
`

func TestLoadOptions(t *testing.T) {
	opts, err := LoadOptions(strings.NewReader(sampleCfg))
	if err != nil {
		t.Fatal(err)
	}
	d := opts.Domain
	if !cEq(d.LowerLeft, complex(-2, -1)) || !cEq(d.UpperRight, complex(1, 1)) {
		t.Fatalf("domain corners %v %v", d.LowerLeft, d.UpperRight)
	}
	if d.Columns != 30 || d.Rows != 20 {
		t.Fatalf("domain grid %dx%d, want 30x20", d.Columns, d.Rows)
	}
	if opts.Threads != 4 {
		t.Fatalf("threads = %d, want 4", opts.Threads)
	}
	if opts.Output != "out.bmp" {
		t.Fatalf("output = %q", opts.Output)
	}
	if len(opts.Colors) != 2 {
		t.Fatalf("got %d control points, want 2", len(opts.Colors))
	}
	want := ControlPoint{Iters: 10, Color: Color{R: 255}}
	if opts.Colors[1] != want {
		t.Fatalf("second control point %+v, want %+v", opts.Colors[1], want)
	}
	if opts.Formula != "z^2 + c" || opts.MaxIters != 50 || opts.Escape != 2.0 {
		t.Fatalf("function block: %q max=%d escape=%g", opts.Formula, opts.MaxIters, opts.Escape)
	}
	if opts.Constant != 0 || opts.Probe != ProbeC {
		t.Fatalf("constant=%v probe=%v", opts.Constant, opts.Probe)
	}

	// The compiled tester behaves like the Mandelbrot test it describes.
	if opts.Test == nil {
		t.Fatal("no tester compiled")
	}
	if got := opts.Test(0); got != 0 {
		t.Fatalf("tester(0) = %d, want the 0 sentinel", got)
	}
	if got := opts.Test(5); got != 1 {
		t.Fatalf("tester(5) = %d, want 1", got)
	}
}

func TestLoadOptionsJulia(t *testing.T) {
	cfg := strings.Replace(sampleCfg,
		"constant: { 0.0, 0.0 }, point: c }",
		"constant: { -0.8, 0.156 }, point: z }", 1)
	opts, err := LoadOptions(strings.NewReader(cfg))
	if err != nil {
		t.Fatal(err)
	}
	if opts.Probe != ProbeZ {
		t.Fatalf("probe = %v, want ProbeZ", opts.Probe)
	}
	if !cEq(opts.Constant, complex(-0.8, 0.156)) {
		t.Fatalf("constant = %v", opts.Constant)
	}
}

func TestLoadOptionsErrors(t *testing.T) {
	cases := []struct{ name, cfg string }{
		{"empty", ""},
		{"missing options", `num_threads: 4`},
		{"duplicate option", sampleCfg + "\nnum_threads: 2"},
		{"unknown keyword", sampleCfg + "\nbogus: 1"},
		{"missing colon", `num_threads 4`},
		{"numeric keyword", `42: 1`},
		{"non-integer threads", `num_threads: 1.5`},
		{"multiple decimal points", `num_threads: 1.2.3`},
		{"misplaced sign", `num_threads: 1-2`},
		{"unquoted output", `output: out.bmp`},
		{"unterminated string", `output: "out.bmp`},
		{"color out of range", `colors: { { 1, { 0, 0, 256 } } }`},
		{"bad point", strings.Replace(sampleCfg, "point: c", "point: q", 1)},
		{"zero iterations", strings.Replace(sampleCfg, "max_iterations: 50", "max_iterations: 0", 1)},
		{"negative escape", strings.Replace(sampleCfg, "escape_tol: 2.0", "escape_tol: -1.0", 1)},
		{"degenerate domain", strings.Replace(sampleCfg, "30, 20", "30, 1", 1)},
	}
	for _, tc := range cases {
		_, err := LoadOptions(strings.NewReader(tc.cfg))
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestLoadOptionsFormulaError(t *testing.T) {
	cfg := strings.Replace(sampleCfg, `"z^2 + c"`, `"z^2 +"`, 1)
	_, err := LoadOptions(strings.NewReader(cfg))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want a *ParseError for the embedded formula", err)
	}
}

func TestLexerComments(t *testing.T) {
	cfg := "num_threads: # how many workers\n 3 # trailing\n" +
		strings.Replace(sampleCfg, "num_threads: 4\n", "", 1)
	opts, err := LoadOptions(strings.NewReader(cfg))
	if err != nil {
		t.Fatal(err)
	}
	if opts.Threads != 3 {
		t.Fatalf("threads = %d, want 3", opts.Threads)
	}
}
