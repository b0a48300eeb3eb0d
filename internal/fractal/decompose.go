package fractal

import (
	"errors"
	"fmt"
	"sync"
)

// CheckFunc computes every lattice point of a sub-domain and writes the
// results into the window in row-major order. It is invoked outside the
// decomposition lock and must not retain the window past the call.
type CheckFunc func(sub Domain, window Window)

// cursor is the only state shared for writing during a render: the index
// of the next unassigned row, guarded by one mutex. The critical section
// both reads and advances the cursor, so handed-out row ranges can never
// overlap and collectively cover [0, rows) exactly once.
type cursor struct {
	mu   sync.Mutex
	next int
}

// nextChunk hands out the next row range [first, last), or ok=false once
// every row has been assigned.
func (cu *cursor) nextChunk(rows, chunkRows int) (first, last int, ok bool) {
	cu.mu.Lock()
	defer cu.mu.Unlock()
	if cu.next >= rows {
		return 0, 0, false
	}
	first = cu.next
	last = first + chunkRows
	if last > rows {
		last = rows
	}
	cu.next = last
	return first, last, true
}

// MakeFractal renders dom by partitioning its rows into chunks handed out
// to threads workers. Each chunk is computed by exactly one chk invocation
// writing into a disjoint window of the shared value buffer, so no locking
// is needed outside the cursor. All workers are joined before returning;
// a panic inside chk is recovered per worker and surfaced as an error.
func MakeFractal(dom Domain, chk CheckFunc, threads int) (*Fractal, error) {
	if err := dom.Validate(); err != nil {
		return nil, err
	}
	if threads < 1 {
		threads = 1
	}

	f := NewFractal(dom)
	chunkRows := PointsPerThread/dom.Columns + 1
	cur := &cursor{}
	DebugLog("Rendering %dx%d grid: %d workers, %d rows per chunk", dom.Columns, dom.Rows, threads, chunkRows)

	errs := make([]error, threads)
	var wg sync.WaitGroup
	wg.Add(threads)
	for t := 0; t < threads; t++ {
		tid := t
		go func() {
			defer wg.Done()
			errs[tid] = checkPoints(dom, f.Values, chk, cur, chunkRows)
		}()
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return f, nil
}

// checkPoints is one worker's loop: grab a chunk under the lock, compute
// it outside the lock, repeat until the cursor runs off the grid.
func checkPoints(dom Domain, vals []uint32, chk CheckFunc, cur *cursor, chunkRows int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker failed: %v", r)
		}
	}()

	_, dy := dom.Spacing()
	for {
		first, last, ok := cur.nextChunk(dom.Rows, chunkRows)
		if !ok {
			return nil
		}

		sub := Domain{
			LowerLeft:  dom.LowerLeft + complex(0, dy*Real(first)),
			UpperRight: complex(real(dom.UpperRight), imag(dom.LowerLeft)+dy*Real(last-1)),
			Columns:    dom.Columns,
			Rows:       last - first,
		}
		window := Window(vals[first*dom.Columns : last*dom.Columns : last*dom.Columns])
		chk(sub, window)
		DebugLog("[PROGRESS] rows [%d, %d) of %d done", first, last, dom.Rows)
	}
}
