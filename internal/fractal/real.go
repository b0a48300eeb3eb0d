package fractal

// Real is the scalar type used for all plane coordinates and spacings.
// Cmplx is the matching complex type evaluators operate on. Change the
// two aliases together to render at a different precision.
type Real = float64

// Cmplx is the complex number type flowing through parsed formulas.
type Cmplx = complex128
