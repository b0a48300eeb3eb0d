package fractal

import (
	"errors"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Spline is a cubic interpolant through a set of control points. Each
// interval between neighboring x values gets its own cubic a*x^3 + b*x^2
// + c*x + d; the coefficient system enforces interpolation at the knots,
// first- and second-derivative continuity across interior knots, and zero
// slope at both ends.
type Spline struct {
	xs, ys []float64
	coeffs []splineCoeffs
}

type splineCoeffs struct {
	a, b, c, d float64
}

// AddPoint inserts a control point, keeping xs sorted.
func (s *Spline) AddPoint(x, y float64) {
	i := sort.SearchFloat64s(s.xs, x)
	s.xs = append(s.xs, 0)
	copy(s.xs[i+1:], s.xs[i:])
	s.xs[i] = x
	s.ys = append(s.ys, 0)
	copy(s.ys[i+1:], s.ys[i:])
	s.ys[i] = y
}

// Calculate solves for the per-interval coefficients. The system is a
// dense 4(n-1) square matrix solved by SVD, which tolerates the poor
// conditioning that wide iteration ranges produce.
func (s *Spline) Calculate() error {
	if len(s.xs) < 2 {
		return errors.New("spline needs at least two control points")
	}
	nintervals := len(s.xs) - 1
	n := 4 * nintervals
	A := mat.NewDense(n, n, nil)
	B := mat.NewVecDense(n, nil)

	x0 := s.xs[0]
	A.Set(0, 0, 3*x0*x0)
	A.Set(0, 1, 2*x0)
	A.Set(0, 2, 1)
	A.Set(1, 0, x0*x0*x0)
	A.Set(1, 1, x0*x0)
	A.Set(1, 2, x0)
	A.Set(1, 3, 1)
	B.SetVec(1, s.ys[0])

	row := 2
	for node := 1; node < nintervals; node++ {
		xn := s.xs[node]
		xn2 := xn * xn
		xn3 := xn2 * xn
		j := (node - 1) * 4

		A.Set(row, j, xn3)
		A.Set(row, j+1, xn2)
		A.Set(row, j+2, xn)
		A.Set(row, j+3, 1)
		B.SetVec(row, s.ys[node])
		row++

		A.Set(row, j, 3*xn2)
		A.Set(row, j+1, 2*xn)
		A.Set(row, j+2, 1)
		A.Set(row, j+4, -3*xn2)
		A.Set(row, j+5, -2*xn)
		A.Set(row, j+6, -1)
		row++

		A.Set(row, j, 6*xn)
		A.Set(row, j+1, 2)
		A.Set(row, j+4, -6*xn)
		A.Set(row, j+5, -2)
		row++

		A.Set(row, j+4, xn3)
		A.Set(row, j+5, xn2)
		A.Set(row, j+6, xn)
		A.Set(row, j+7, 1)
		B.SetVec(row, s.ys[node])
		row++
	}

	xn := s.xs[nintervals]
	j := (nintervals - 1) * 4
	A.Set(row, j, xn*xn*xn)
	A.Set(row, j+1, xn*xn)
	A.Set(row, j+2, xn)
	A.Set(row, j+3, 1)
	B.SetVec(row, s.ys[nintervals])
	row++
	A.Set(row, j, 3*xn*xn)
	A.Set(row, j+1, 2*xn)
	A.Set(row, j+2, 1)

	var svd mat.SVD
	if !svd.Factorize(A, mat.SVDThin) {
		return errors.New("spline coefficient factorization failed")
	}
	rank := svd.Rank(1e-12)
	if rank == 0 {
		return errors.New("spline coefficient system is singular")
	}
	var X mat.VecDense
	svd.SolveVecTo(&X, B, rank)

	s.coeffs = make([]splineCoeffs, nintervals)
	for i := range s.coeffs {
		s.coeffs[i] = splineCoeffs{
			a: X.AtVec(i * 4),
			b: X.AtVec(i*4 + 1),
			c: X.AtVec(i*4 + 2),
			d: X.AtVec(i*4 + 3),
		}
	}
	return nil
}

// At evaluates the spline. Arguments outside the knot range use the
// nearest interval's cubic.
func (s *Spline) At(x float64) float64 {
	i := sort.SearchFloat64s(s.xs, x)
	if i < 1 {
		i = 1
	}
	if i > len(s.coeffs) {
		i = len(s.coeffs)
	}
	co := s.coeffs[i-1]
	return co.a*x*x*x + co.b*x*x + co.c*x + co.d
}
