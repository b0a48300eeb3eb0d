package fractal

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// ColorScale maps an iteration count to a color by running one cubic
// spline per channel through the configured control points. Lookups are
// read-only and safe to share across goroutines.
type ColorScale struct {
	r, g, b Spline
}

// NewColorScale builds the three channel splines from the control points.
// At least two points are required.
func NewColorScale(points []ControlPoint) (*ColorScale, error) {
	cs := &ColorScale{}
	for _, p := range points {
		x := float64(p.Iters)
		cs.r.AddPoint(x, float64(p.Color.R))
		cs.g.AddPoint(x, float64(p.Color.G))
		cs.b.AddPoint(x, float64(p.Color.B))
	}
	if err := cs.r.Calculate(); err != nil {
		return nil, err
	}
	if err := cs.g.Calculate(); err != nil {
		return nil, err
	}
	if err := cs.b.Calculate(); err != nil {
		return nil, err
	}
	return cs, nil
}

// Color evaluates all three channel splines at the given iteration count,
// clamping each channel to [0, 255].
func (cs *ColorScale) Color(iters uint32) Color {
	x := float64(iters)
	return Color{
		R: clampChannel(cs.r.At(x)),
		G: clampChannel(cs.g.At(x)),
		B: clampChannel(cs.b.At(x)),
	}
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > MaxColorValue {
		return MaxColorValue
	}
	return uint8(v)
}
