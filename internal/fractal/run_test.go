package fractal

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "mandel.bmp")
	cfg := fmt.Sprintf(`
domain: { { -2.0, -1.0 }, { 1.0, 1.0 }, 31, 21 }
colors: {
    { 1, { 0, 0, 255 } },
    { 50, { 255, 0, 0 } }
}
num_threads: 3
output: %q
function: { "z^2 + c", max_iterations: 50, escape_tol: 2.0,
            constant: { 0.0, 0.0 }, point: c }
`, out)
	cfgPath := filepath.Join(dir, "test.cfg")
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Run(cfgPath); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := bmp.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 31 || b.Dy() != 21 {
		t.Fatalf("image is %dx%d, want 31x21", b.Dx(), b.Dy())
	}

	// The grid is spaced 0.1 on both axes, so column 20, row 10 samples
	// c = 0, which never escapes and must be the black sentinel color.
	// Row 10 is image y = 20 - 10 after the vertical flip.
	r, g, b, _ := img.At(20, 10).RGBA()
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("interior pixel (%d, %d, %d), want black", r>>8, g>>8, b>>8)
	}

	// The bottom-left corner samples c = -2-i, which escapes after one
	// step and takes the first control point's near-blue color.
	r, _, b, _ = img.At(0, 20).RGBA()
	if b>>8 < 200 || r>>8 > 50 {
		t.Fatalf("corner pixel red=%d blue=%d, want strong blue", r>>8, b>>8)
	}
}

func TestRunMissingConfig(t *testing.T) {
	if err := Run(filepath.Join(t.TempDir(), "absent.cfg")); err == nil {
		t.Fatal("expected an error for a missing option file")
	}
}
