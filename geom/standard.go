package geom

import (
	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/value"
)

// StandardConic is a conic in canonical position with its derived
// features. Fields that do not apply to a kind are left empty.
type StandardConic struct {
	Kind         ConicKind
	Conic        Conic
	Vertices     []Point
	Foci         []Point
	Directrices  []Line
	Asymptotes   []Line
	Axis         Line
	Eccentricity value.Value
	LatusRectum  value.Value
	// Major and Minor are the full axis lengths of an ellipse or the
	// transverse and conjugate axes of a hyperbola.
	Major, Minor value.Value
}

// ParabolaY2 is y^2 = 4*a*x.
func ParabolaY2(c *value.Calc, a value.Value) (StandardConic, error) {
	if c.IsZero(a) {
		return StandardConic{}, diag.Degen("a = 0 collapses y^2 = 4ax to the line y = 0")
	}
	k, err := NewConic(c, value.Int(0), value.Int(0), value.Int(1), c.Scale(a, -4, 1), value.Int(0), value.Int(0))
	if err != nil {
		return StandardConic{}, err
	}
	return StandardConic{
		Kind:         Parabola,
		Conic:        k,
		Vertices:     []Point{Pt(0, 0).Named("V")},
		Foci:         []Point{NewPoint(a, value.Int(0)).Named("F")},
		Directrices:  []Line{{P: NewPoint(c.Neg(a), value.Int(0)), DX: value.Int(0), DY: value.Int(1)}},
		Axis:         Line{P: Pt(0, 0), DX: value.Int(1), DY: value.Int(0)},
		Eccentricity: value.Int(1),
		LatusRectum:  c.Abs(c.Scale(a, 4, 1)),
	}, nil
}

// ParabolaX2 is x^2 = 4*a*y.
func ParabolaX2(c *value.Calc, a value.Value) (StandardConic, error) {
	if c.IsZero(a) {
		return StandardConic{}, diag.Degen("a = 0 collapses x^2 = 4ay to the line x = 0")
	}
	k, err := NewConic(c, value.Int(1), value.Int(0), value.Int(0), value.Int(0), c.Scale(a, -4, 1), value.Int(0))
	if err != nil {
		return StandardConic{}, err
	}
	return StandardConic{
		Kind:         Parabola,
		Conic:        k,
		Vertices:     []Point{Pt(0, 0).Named("V")},
		Foci:         []Point{NewPoint(value.Int(0), a).Named("F")},
		Directrices:  []Line{{P: NewPoint(value.Int(0), c.Neg(a)), DX: value.Int(1), DY: value.Int(0)}},
		Axis:         Line{P: Pt(0, 0), DX: value.Int(0), DY: value.Int(1)},
		Eccentricity: value.Int(1),
		LatusRectum:  c.Abs(c.Scale(a, 4, 1)),
	}, nil
}

func checkSemiAxes(c *value.Calc, a, b value.Value) error {
	if c.Sign(a) <= 0 || c.Sign(b) <= 0 {
		return diag.Invalid("semi-axes must be positive, got a = %s, b = %s", a, b)
	}
	return nil
}

// EllipseStandard is x^2/a^2 + y^2/b^2 = 1. The major axis follows the
// larger semi-axis.
func EllipseStandard(c *value.Calc, a, b value.Value) (StandardConic, error) {
	if err := checkSemiAxes(c, a, b); err != nil {
		return StandardConic{}, err
	}
	a2, b2 := c.Square(a), c.Square(b)
	k, err := NewConic(c, b2, value.Int(0), a2, value.Int(0), value.Int(0), c.Neg(c.Mul(a2, b2)))
	if err != nil {
		return StandardConic{}, err
	}
	along := func(t value.Value, onX bool) Point {
		if onX {
			return NewPoint(t, value.Int(0))
		}
		return NewPoint(value.Int(0), t)
	}
	onX := !c.Less(a, b)
	major, minor := a, b
	if !onX {
		major, minor = b, a
	}
	f, _ := c.Sqrt(c.Sub(c.Square(major), c.Square(minor)))
	e, _ := c.Div(f, major)
	latus, _ := c.Div(c.Scale(c.Square(minor), 2, 1), major)
	sc := StandardConic{
		Kind:         Ellipse,
		Conic:        k,
		Vertices:     []Point{along(major, onX).Named("V1"), along(c.Neg(major), onX).Named("V2")},
		Eccentricity: e,
		LatusRectum:  latus,
		Major:        c.Scale(major, 2, 1),
		Minor:        c.Scale(minor, 2, 1),
	}
	sc.Axis = Line{P: Pt(0, 0), DX: value.Int(1), DY: value.Int(0)}
	if !onX {
		sc.Axis = Line{P: Pt(0, 0), DX: value.Int(0), DY: value.Int(1)}
	}
	if c.IsZero(f, major) {
		// circle: foci merge at the centre, no directrices
		sc.Foci = []Point{Pt(0, 0).Named("F")}
		return sc, nil
	}
	sc.Foci = []Point{along(f, onX).Named("F1"), along(c.Neg(f), onX).Named("F2")}
	dist, _ := c.Div(c.Square(major), f)
	sc.Directrices = directrices(c, dist, onX)
	return sc, nil
}

// HyperbolaStandard is x^2/a^2 - y^2/b^2 = 1.
func HyperbolaStandard(c *value.Calc, a, b value.Value) (StandardConic, error) {
	if err := checkSemiAxes(c, a, b); err != nil {
		return StandardConic{}, err
	}
	a2, b2 := c.Square(a), c.Square(b)
	k, err := NewConic(c, b2, value.Int(0), c.Neg(a2), value.Int(0), value.Int(0), c.Neg(c.Mul(a2, b2)))
	if err != nil {
		return StandardConic{}, err
	}
	f, _ := c.Sqrt(c.Add(a2, b2))
	e, _ := c.Div(f, a)
	latus, _ := c.Div(c.Scale(b2, 2, 1), a)
	dist, _ := c.Div(a2, f)
	return StandardConic{
		Kind:         Hyperbola,
		Conic:        k,
		Vertices:     []Point{NewPoint(a, value.Int(0)).Named("V1"), NewPoint(c.Neg(a), value.Int(0)).Named("V2")},
		Foci:         []Point{NewPoint(f, value.Int(0)).Named("F1"), NewPoint(c.Neg(f), value.Int(0)).Named("F2")},
		Directrices:  directrices(c, dist, true),
		Asymptotes:   []Line{{P: Pt(0, 0), DX: a, DY: b}, {P: Pt(0, 0), DX: a, DY: c.Neg(b)}},
		Axis:         Line{P: Pt(0, 0), DX: value.Int(1), DY: value.Int(0)},
		Eccentricity: e,
		LatusRectum:  latus,
		Major:        c.Scale(a, 2, 1),
		Minor:        c.Scale(b, 2, 1),
	}, nil
}

func directrices(c *value.Calc, dist value.Value, onX bool) []Line {
	if onX {
		return []Line{
			{P: NewPoint(dist, value.Int(0)), DX: value.Int(0), DY: value.Int(1)},
			{P: NewPoint(c.Neg(dist), value.Int(0)), DX: value.Int(0), DY: value.Int(1)},
		}
	}
	return []Line{
		{P: NewPoint(value.Int(0), dist), DX: value.Int(1), DY: value.Int(0)},
		{P: NewPoint(value.Int(0), c.Neg(dist)), DX: value.Int(1), DY: value.Int(0)},
	}
}
