package fractal

// Domain is a rectangle in the complex plane along with the grid resolution:
// Columns points along the real axis and Rows points along the imaginary
// axis. Points are sampled on an evenly spaced lattice that includes both
// corners, so the spacing along an axis is range/(count-1).
type Domain struct {
	LowerLeft  Cmplx
	UpperRight Cmplx
	Columns    int
	Rows       int
}

// Spacing returns the lattice step along the real and imaginary axes.
// An axis with a single point gets spacing 0; one-row sub-domains are
// produced by decomposition and must not divide by zero.
func (d Domain) Spacing() (dx, dy Real) {
	if d.Columns > 1 {
		dx = (real(d.UpperRight) - real(d.LowerLeft)) / Real(d.Columns-1)
	}
	if d.Rows > 1 {
		dy = (imag(d.UpperRight) - imag(d.LowerLeft)) / Real(d.Rows-1)
	}
	return dx, dy
}

// At returns the lattice point at the given column and row (row 0 is the
// bottom edge, the smallest imaginary part).
func (d Domain) At(col, row int) Cmplx {
	dx, dy := d.Spacing()
	return d.LowerLeft + complex(dx*Real(col), dy*Real(row))
}

// Validate rejects domains whose spacing would be degenerate.
func (d Domain) Validate() error {
	if d.Columns < 2 || d.Rows < 2 {
		return &DegenerateDomainError{Columns: d.Columns, Rows: d.Rows}
	}
	return nil
}

// Fractal is a Domain plus one iteration count per lattice point. Values
// are stored row-major, bottom row first, increasing along the real axis
// within a row. The buffer length is always Columns*Rows; after a render
// only element values have been written, each by exactly one worker.
type Fractal struct {
	Dom    Domain
	Values []uint32
}

// NewFractal allocates the zero-initialized value buffer for d.
func NewFractal(d Domain) *Fractal {
	return &Fractal{
		Dom:    d,
		Values: make([]uint32, d.Columns*d.Rows),
	}
}

// At returns the iteration count at the given column and row.
func (f *Fractal) At(col, row int) uint32 {
	return f.Values[row*f.Dom.Columns+col]
}

// Window is a view into a Fractal's value buffer starting at a chunk's
// first row, indexed as if the chunk started at 0. Windows are carved with
// full slice expressions so a worker cannot write outside its own chunk.
type Window []uint32
