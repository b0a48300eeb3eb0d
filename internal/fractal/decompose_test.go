package fractal

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestPartitionCoverage(t *testing.T) {
	grids := []struct{ cols, rows int }{
		{2, 2},
		{7, 5},
		{640, 480},
		{3, 1000},
		{50000, 10}, // small chunks, several per worker
	}
	for _, g := range grids {
		for _, threads := range []int{1, 2, 8} {
			dom := Domain{
				LowerLeft:  complex(-1, -1),
				UpperRight: complex(1, 1),
				Columns:    g.cols,
				Rows:       g.rows,
			}
			frac, err := MakeFractal(dom, func(sub Domain, window Window) {
				for i := range window {
					window[i]++
				}
			}, threads)
			if err != nil {
				t.Fatalf("cols=%d rows=%d threads=%d: %v", g.cols, g.rows, threads, err)
			}
			for i, v := range frac.Values {
				if v != 1 {
					t.Fatalf("cols=%d rows=%d threads=%d: point %d written %d times",
						g.cols, g.rows, threads, i, v)
				}
			}
		}
	}
}

func TestChunkGeometry(t *testing.T) {
	dom := Domain{
		LowerLeft:  complex(-2, -1),
		UpperRight: complex(2, 1),
		Columns:    50000,
		Rows:       11,
	}
	// chunkRows = 100000/50000 + 1 = 3, so 11 rows split 3+3+3+2.
	_, dy := dom.Spacing()

	var mu sync.Mutex
	var subs []Domain
	frac, err := MakeFractal(dom, func(sub Domain, window Window) {
		mu.Lock()
		idx := uint32(len(subs) + 1)
		subs = append(subs, sub)
		mu.Unlock()
		for i := range window {
			window[i] = idx
		}
	}, 1)
	if err != nil {
		t.Fatal(err)
	}

	wantRows := []int{3, 3, 3, 2}
	if len(subs) != len(wantRows) {
		t.Fatalf("got %d chunks, want %d", len(subs), len(wantRows))
	}
	first := 0
	for k, sub := range subs {
		if sub.Rows != wantRows[k] || sub.Columns != dom.Columns {
			t.Fatalf("chunk %d: %dx%d, want %dx%d", k, sub.Columns, sub.Rows, dom.Columns, wantRows[k])
		}
		wantLL := dom.LowerLeft + complex(0, dy*Real(first))
		wantUR := complex(real(dom.UpperRight), imag(dom.LowerLeft)+dy*Real(first+sub.Rows-1))
		if !cEq(sub.LowerLeft, wantLL) || !cEq(sub.UpperRight, wantUR) {
			t.Fatalf("chunk %d corners: got %v %v, want %v %v", k, sub.LowerLeft, sub.UpperRight, wantLL, wantUR)
		}
		for row := first; row < first+sub.Rows; row++ {
			for col := 0; col < dom.Columns; col++ {
				if got := frac.At(col, row); got != uint32(k+1) {
					t.Fatalf("point (%d,%d) = %d, want %d", col, row, got, k+1)
				}
			}
		}
		first += sub.Rows
	}
	if first != dom.Rows {
		t.Fatalf("chunks cover %d rows, want %d", first, dom.Rows)
	}
}

func TestRenderDeterministic(t *testing.T) {
	fn := mustParse(t, "z^2 + c")
	test := NewTester(fn, 0, 2.0, 30, ProbeC)
	dom := Domain{
		LowerLeft:  complex(-2, -1.2),
		UpperRight: complex(1, 1.2),
		Columns:    20000,
		Rows:       12,
	}
	serial, err := MakeFractal(dom, Checker(test), 1)
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := MakeFractal(dom, Checker(test), 8)
	if err != nil {
		t.Fatal(err)
	}
	for i := range serial.Values {
		if serial.Values[i] != parallel.Values[i] {
			t.Fatalf("point %d: 1 thread gave %d, 8 threads gave %d",
				i, serial.Values[i], parallel.Values[i])
		}
	}
}

func TestDegenerateDomain(t *testing.T) {
	noop := func(sub Domain, window Window) {}
	bad := []Domain{
		{UpperRight: complex(1, 1), Columns: 1, Rows: 100},
		{UpperRight: complex(1, 1), Columns: 100, Rows: 1},
		{UpperRight: complex(1, 1), Columns: 0, Rows: 0},
	}
	for _, dom := range bad {
		_, err := MakeFractal(dom, noop, 4)
		var derr *DegenerateDomainError
		if !errors.As(err, &derr) {
			t.Fatalf("%dx%d: got %v, want DegenerateDomainError", dom.Columns, dom.Rows, err)
		}
		if derr.Columns != dom.Columns || derr.Rows != dom.Rows {
			t.Fatalf("error reports %dx%d, want %dx%d", derr.Columns, derr.Rows, dom.Columns, dom.Rows)
		}
	}

	ok := Domain{UpperRight: complex(1, 1), Columns: 2, Rows: 2}
	if _, err := MakeFractal(ok, noop, 1); err != nil {
		t.Fatalf("2x2 domain: %v", err)
	}
}

func TestWorkerPanicSurfaces(t *testing.T) {
	dom := Domain{
		LowerLeft:  complex(-1, -1),
		UpperRight: complex(1, 1),
		Columns:    10,
		Rows:       10,
	}
	_, err := MakeFractal(dom, func(sub Domain, window Window) {
		panic("checker exploded")
	}, 4)
	if err == nil {
		t.Fatal("expected an error from a panicking checker")
	}
	if !strings.Contains(err.Error(), "checker exploded") {
		t.Fatalf("error %q does not carry the panic value", err)
	}
}

func TestCursorHandsOutDisjointChunks(t *testing.T) {
	cur := &cursor{}
	var total int
	prev := 0
	for {
		first, last, ok := cur.nextChunk(17, 5)
		if !ok {
			break
		}
		if first != prev || last <= first || last > 17 {
			t.Fatalf("chunk [%d,%d) after %d rows", first, last, prev)
		}
		total += last - first
		prev = last
	}
	if total != 17 {
		t.Fatalf("chunks cover %d rows, want 17", total)
	}
}
