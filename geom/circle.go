package geom

import (
	"sort"

	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/value"
)

// ============================================================
// Circle
// ============================================================

type Circle struct {
	Center Point       `json:"center" yaml:"center"`
	R      value.Value `json:"radius" yaml:"radius"`
}

// NewCircle rejects negative radii and flags zero radius (a point circle)
// as degenerate.
func NewCircle(c *value.Calc, center Point, r value.Value) (Circle, error) {
	switch c.Sign(r) {
	case -1:
		return Circle{}, diag.Invalid("radius %s is negative", r)
	case 0:
		return Circle{}, diag.Degen("radius is zero: point circle at %s", center)
	}
	return Circle{Center: center, R: r}, nil
}

// CircleThrough returns the circumcircle of three non-collinear points.
func CircleThrough(c *value.Calc, p, q, r Point) (Circle, error) {
	t, err := NewTriangle(c, p, q, r)
	if err != nil {
		return Circle{}, err
	}
	return Circle{Center: t.Circumcenter(), R: t.Circumradius()}, nil
}

// CircleFromGeneral reads x^2 + y^2 + D*x + E*y + F = 0.
func CircleFromGeneral(c *value.Calc, d, e, f value.Value) (Circle, error) {
	h := c.Scale(d, -1, 2)
	k := c.Scale(e, -1, 2)
	r2 := c.Sub(c.Add(c.Square(h), c.Square(k)), f)
	switch c.Sign(r2) {
	case -1:
		return Circle{}, diag.Invalid("r^2 = %s is negative; the equation has no real points", r2)
	case 0:
		return Circle{}, diag.Degen("r^2 is zero: the equation describes the single point (%s, %s)", h, k)
	}
	r, err := c.Sqrt(r2)
	if err != nil {
		return Circle{}, err
	}
	return Circle{Center: Point{X: h, Y: k}, R: r}, nil
}

// General returns (D, E, F) of x^2 + y^2 + D*x + E*y + F = 0.
func (ci Circle) General(c *value.Calc) (d, e, f value.Value) {
	d = c.Scale(ci.Center.X, -2, 1)
	e = c.Scale(ci.Center.Y, -2, 1)
	f = c.Sub(c.Add(c.Square(ci.Center.X), c.Square(ci.Center.Y)), c.Square(ci.R))
	return d, e, f
}

func (ci Circle) Area(c *value.Calc) value.Value {
	return c.Mul(value.Pi, c.Square(ci.R))
}

func (ci Circle) Circumference(c *value.Calc) value.Value {
	return c.Mul(c.Scale(value.Pi, 2, 1), ci.R)
}

// Equation renders the expanded general form.
func (ci Circle) Equation(c *value.Calc) string {
	d, e, f := ci.General(c)
	return polyString(c, []term{{value.Int(1), "x^2"}, {value.Int(1), "y^2"}, {d, "x"}, {e, "y"}, {f, ""}})
}

// StandardEquation renders (x - h)^2 + (y - k)^2 = r^2.
func (ci Circle) StandardEquation(c *value.Calc) string {
	part := func(name string, v value.Value) string {
		switch c.Sign(v) {
		case 0:
			return name + "^2"
		case -1:
			return "(" + name + " + " + c.Neg(v).String() + ")^2"
		}
		return "(" + name + " - " + v.String() + ")^2"
	}
	return part("x", ci.Center.X) + " + " + part("y", ci.Center.Y) + " = " + c.Square(ci.R).String()
}

// PointAt returns the point at angle theta.
func (ci Circle) PointAt(c *value.Calc, theta value.Value) Point {
	return Point{
		X: c.Add(ci.Center.X, c.Mul(ci.R, c.Cos(theta))),
		Y: c.Add(ci.Center.Y, c.Mul(ci.R, c.Sin(theta))),
	}
}

// Locate reports whether p lies outside, on, or inside the circle.
func (ci Circle) Locate(c *value.Calc, p Point) Relation {
	switch c.Compare(Distance(c, ci.Center, p), ci.R) {
	case 0:
		return OnCurve
	case 1:
		return Outside
	}
	return Inside
}

// PowerOf returns d^2 - r^2 for the point p.
func (ci Circle) PowerOf(c *value.Calc, p Point) value.Value {
	return c.Sub(DistanceSquared(c, ci.Center, p), c.Square(ci.R))
}

// IntersectLine classifies l against the circle by comparing the distance
// from the centre with the radius, then returns 0, 1 or 2 points.
func IntersectLine(c *value.Calc, ci Circle, l Line) ([]Point, Relation) {
	d := DistanceToPoint(c, l, ci.Center)
	switch c.Compare(d, ci.R) {
	case 1:
		return nil, Disjoint
	case 0:
		return []Point{Foot(c, l, ci.Center)}, Tangent
	}
	f := Foot(c, l, ci.Center)
	h, err := c.Sqrt(c.Sub(c.Square(ci.R), c.Square(d)))
	if err != nil {
		return nil, Disjoint
	}
	ux, uy := l.Direction(c)
	pts := []Point{
		{X: c.Sub(f.X, c.Mul(h, ux)), Y: c.Sub(f.Y, c.Mul(h, uy))},
		{X: c.Add(f.X, c.Mul(h, ux)), Y: c.Add(f.Y, c.Mul(h, uy))},
	}
	SortPoints(pts)
	return pts, Secant
}

// IntersectCircles reduces to the radical line. Concentric and coincident
// circles produce no points.
func IntersectCircles(c *value.Calc, a, b Circle) ([]Point, Relation) {
	d := Distance(c, a.Center, b.Center)
	if c.IsZero(d, a.R, b.R) {
		if c.Equal(a.R, b.R) {
			return nil, Coincident
		}
		return nil, Concentric
	}
	sum := c.Add(a.R, b.R)
	diff := c.Abs(c.Sub(a.R, b.R))
	switch {
	case c.Compare(d, sum) > 0:
		return nil, Separate
	case c.Compare(d, diff) < 0:
		return nil, Contained
	}
	dx, dy := Vector(c, a.Center, b.Center)
	// distance from a's centre to the radical line along the centre line
	along, _ := c.Div(c.Add(c.Square(d), c.Sub(c.Square(a.R), c.Square(b.R))), c.Scale(d, 2, 1))
	ux, _ := c.Div(dx, d)
	uy, _ := c.Div(dy, d)
	mid := Point{X: c.Add(a.Center.X, c.Mul(along, ux)), Y: c.Add(a.Center.Y, c.Mul(along, uy))}

	tangent := Relation("")
	switch {
	case c.Equal(d, sum):
		tangent = ExternallyTangent
	case c.Equal(d, diff):
		tangent = InternallyTangent
	}
	if tangent != "" {
		return []Point{mid}, tangent
	}
	h, err := c.Sqrt(c.Sub(c.Square(a.R), c.Square(along)))
	if err != nil {
		return nil, Separate
	}
	pts := []Point{
		{X: c.Sub(mid.X, c.Mul(h, uy)), Y: c.Add(mid.Y, c.Mul(h, ux))},
		{X: c.Add(mid.X, c.Mul(h, uy)), Y: c.Sub(mid.Y, c.Mul(h, ux))},
	}
	SortPoints(pts)
	return pts, Secant
}

// RadicalAxis is the line of equal power with respect to both circles.
func RadicalAxis(c *value.Calc, a, b Circle) (Line, error) {
	d1, e1, f1 := a.General(c)
	d2, e2, f2 := b.General(c)
	l, err := LineFromGeneral(c, c.Sub(d1, d2), c.Sub(e1, e2), c.Sub(f1, f2))
	if err != nil {
		return Line{}, diag.Degen("circles are concentric; the radical axis does not exist")
	}
	return l, nil
}

// TangentPoints returns the points of contact of the tangents from p.
// A point on the circle has one tangent; an interior point has none.
func TangentPoints(c *value.Calc, ci Circle, p Point) ([]Point, Relation) {
	rel := ci.Locate(c, p)
	switch rel {
	case Inside:
		return nil, Inside
	case OnCurve:
		return []Point{p}, OnCurve
	}
	vx, vy := Vector(c, ci.Center, p)
	d2 := c.Add(c.Square(vx), c.Square(vy))
	r2 := c.Square(ci.R)
	l, _ := c.Sqrt(c.Sub(d2, r2))
	s, _ := c.Div(r2, d2)
	t, _ := c.Div(c.Mul(ci.R, l), d2)
	bx := c.Add(ci.Center.X, c.Mul(s, vx))
	by := c.Add(ci.Center.Y, c.Mul(s, vy))
	pts := []Point{
		{X: c.Sub(bx, c.Mul(t, vy)), Y: c.Add(by, c.Mul(t, vx))},
		{X: c.Add(bx, c.Mul(t, vy)), Y: c.Sub(by, c.Mul(t, vx))},
	}
	SortPoints(pts)
	return pts, Outside
}

// SortPoints orders points by x then y, comparing in float64.
func SortPoints(ps []Point) {
	sort.SliceStable(ps, func(i, j int) bool {
		xi, yi := ps[i].Floats()
		xj, yj := ps[j].Floats()
		if xi != xj {
			return xi < xj
		}
		return yi < yj
	})
}
