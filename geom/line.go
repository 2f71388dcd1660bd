package geom

import (
	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/value"
)

// ============================================================
// Line
// ============================================================

// Line is stored as a point on the line and a non-zero direction. The
// general form A*x + B*y + C = 0 is derived with A = -DY, B = DX.
type Line struct {
	P      Point
	DX, DY value.Value
}

// Relation classifies how two primitives meet.
type Relation string

const (
	Intersecting      Relation = "intersecting"
	Parallel          Relation = "parallel"
	Coincident        Relation = "coincident"
	Secant            Relation = "secant"
	Tangent           Relation = "tangent"
	Disjoint          Relation = "disjoint"
	Concentric        Relation = "concentric"
	ExternallyTangent Relation = "externally_tangent"
	InternallyTangent Relation = "internally_tangent"
	Contained         Relation = "contained"
	Separate          Relation = "separate"
	Outside           Relation = "outside"
	OnCurve           Relation = "on_curve"
	Inside            Relation = "inside"
)

// LineThrough fails with a degenerate error when p and q coincide.
func LineThrough(c *value.Calc, p, q Point) (Line, error) {
	dx, dy := Vector(c, p, q)
	if c.IsZero(dx, p.X, q.X) && c.IsZero(dy, p.Y, q.Y) {
		return Line{}, diag.Degen("points %s and %s coincide; no unique line", p, q)
	}
	return Line{P: p, DX: dx, DY: dy}, nil
}

// LineFromGeneral builds a*x + b*y + k = 0.
func LineFromGeneral(c *value.Calc, a, b, k value.Value) (Line, error) {
	if c.IsZero(a) && c.IsZero(b) {
		return Line{}, diag.Invalid("coefficients of x and y are both zero")
	}
	var p Point
	if !c.IsZero(b) {
		y, _ := c.Div(c.Neg(k), b)
		p = Point{X: value.Int(0), Y: y}
	} else {
		x, _ := c.Div(c.Neg(k), a)
		p = Point{X: x, Y: value.Int(0)}
	}
	return Line{P: p, DX: b, DY: c.Neg(a)}, nil
}

// LineFromSlopeIntercept builds y = m*x + k.
func LineFromSlopeIntercept(m, k value.Value) Line {
	return Line{P: Point{X: value.Int(0), Y: k}, DX: value.Int(1), DY: m}
}

// LineFromPointDirection fails when the direction is the zero vector.
func LineFromPointDirection(c *value.Calc, p Point, dx, dy value.Value) (Line, error) {
	if c.IsZero(dx) && c.IsZero(dy) {
		return Line{}, diag.Degen("direction vector is zero")
	}
	return Line{P: p, DX: dx, DY: dy}, nil
}

// General returns (A, B, C) of A*x + B*y + C = 0.
func (l Line) General(c *value.Calc) (a, b, k value.Value) {
	a, b = c.Neg(l.DY), l.DX
	k = c.Neg(c.Add(c.Mul(a, l.P.X), c.Mul(b, l.P.Y)))
	return a, b, k
}

func (l Line) IsVertical(c *value.Calc) bool { return c.IsZero(l.DX, l.DY) }

// Slope reports ok=false for vertical lines.
func (l Line) Slope(c *value.Calc) (value.Value, bool) {
	if l.IsVertical(c) {
		return value.Value{}, false
	}
	m, err := c.Div(l.DY, l.DX)
	return m, err == nil
}

// YIntercept reports ok=false for vertical lines.
func (l Line) YIntercept(c *value.Calc) (value.Value, bool) {
	a, b, k := l.General(c)
	if c.IsZero(b, a) {
		return value.Value{}, false
	}
	y, err := c.Div(c.Neg(k), b)
	return y, err == nil
}

// XIntercept reports ok=false for horizontal lines.
func (l Line) XIntercept(c *value.Calc) (value.Value, bool) {
	a, b, k := l.General(c)
	if c.IsZero(a, b) {
		return value.Value{}, false
	}
	x, err := c.Div(c.Neg(k), a)
	return x, err == nil
}

// At returns P + t*D.
func (l Line) At(c *value.Calc, t value.Value) Point {
	return Point{X: c.Add(l.P.X, c.Mul(t, l.DX)), Y: c.Add(l.P.Y, c.Mul(t, l.DY))}
}

// Direction returns the unit direction vector.
func (l Line) Direction(c *value.Calc) (value.Value, value.Value) {
	n := c.Hypot(l.DX, l.DY)
	ux, _ := c.Div(l.DX, n)
	uy, _ := c.Div(l.DY, n)
	return ux, uy
}

// residual is A*x + B*y + C at p with a matching scale for tolerance tests.
func (l Line) residual(c *value.Calc, p Point) (r, scale value.Value) {
	a, b, k := l.General(c)
	r = c.Sum(c.Mul(a, p.X), c.Mul(b, p.Y), k)
	scale = c.Mul(c.Hypot(a, b), value.Approx(1+abs(p.X.Float())+abs(p.Y.Float())))
	return r, scale
}

func (l Line) Contains(c *value.Calc, p Point) bool {
	r, s := l.residual(c, p)
	return c.IsZero(r, s)
}

// Equivalent reports whether l and m describe the same point set.
func (l Line) Equivalent(c *value.Calc, m Line) bool {
	return isParallel(c, l, m) && l.Contains(c, m.P)
}

// Equation renders the general form.
func (l Line) Equation(c *value.Calc) string {
	a, b, k := l.General(c)
	return polyString(c, []term{{a, "x"}, {b, "y"}, {k, ""}})
}

// SlopeIntercept renders y = m*x + k, or x = k for vertical lines.
func (l Line) SlopeIntercept(c *value.Calc) string {
	m, ok := l.Slope(c)
	if !ok {
		x, _ := l.XIntercept(c)
		return "x = " + x.String()
	}
	k, _ := l.YIntercept(c)
	s := polyString(c, []term{{m, "x"}, {k, ""}})
	return "y = " + s[:len(s)-len(" = 0")]
}

func (l Line) String() string {
	return "line through " + l.P.String() + " direction (" + l.DX.String() + ", " + l.DY.String() + ")"
}

func cross2(c *value.Calc, ax, ay, bx, by value.Value) value.Value {
	return c.Sub(c.Mul(ax, by), c.Mul(ay, bx))
}

func isParallel(c *value.Calc, l, m Line) bool {
	det := cross2(c, l.DX, l.DY, m.DX, m.DY)
	return c.IsZero(det, c.Mul(c.Hypot(l.DX, l.DY), c.Hypot(m.DX, m.DY)))
}

// Intersect solves the 2x2 system on the general-form coefficients. When
// |det| is within tolerance the lines are parallel or coincident and no
// point is produced.
func Intersect(c *value.Calc, l, m Line) (Point, Relation) {
	a1, b1, c1 := l.General(c)
	a2, b2, c2 := m.General(c)
	det := c.Sub(c.Mul(a1, b2), c.Mul(a2, b1))
	if c.IsZero(det, c.Mul(a1, b2), c.Mul(a2, b1)) {
		if l.Contains(c, m.P) {
			return Point{}, Coincident
		}
		return Point{}, Parallel
	}
	x, _ := c.Div(c.Sub(c.Mul(b1, c2), c.Mul(b2, c1)), det)
	y, _ := c.Div(c.Sub(c.Mul(a2, c1), c.Mul(a1, c2)), det)
	return Point{X: x, Y: y}, Intersecting
}

// AngleBetween returns the acute angle between the lines, in [0, pi/2].
func AngleBetween(c *value.Calc, l, m Line) value.Value {
	cr := c.Abs(cross2(c, l.DX, l.DY, m.DX, m.DY))
	dot := c.Abs(c.Add(c.Mul(l.DX, m.DX), c.Mul(l.DY, m.DY)))
	return c.Atan2(cr, dot)
}

// DistanceToPoint is |A*x + B*y + C| / sqrt(A^2 + B^2).
func DistanceToPoint(c *value.Calc, l Line, p Point) value.Value {
	a, b, k := l.General(c)
	r := c.Sum(c.Mul(a, p.X), c.Mul(b, p.Y), k)
	d, _ := c.Div(c.Abs(r), c.Hypot(a, b))
	return d
}

// Foot returns the orthogonal projection of p onto l.
func Foot(c *value.Calc, l Line, p Point) Point {
	a, b, k := l.General(c)
	r := c.Sum(c.Mul(a, p.X), c.Mul(b, p.Y), k)
	t, _ := c.Div(r, c.Add(c.Square(a), c.Square(b)))
	return Point{X: c.Sub(p.X, c.Mul(t, a)), Y: c.Sub(p.Y, c.Mul(t, b))}
}

// ReflectPoint mirrors p in l.
func ReflectPoint(c *value.Calc, l Line, p Point) Point {
	f := Foot(c, l, p)
	return Point{X: c.Sub(c.Scale(f.X, 2, 1), p.X), Y: c.Sub(c.Scale(f.Y, 2, 1), p.Y), Label: p.Label}
}

// PerpendicularThrough returns the line through p perpendicular to l.
func PerpendicularThrough(c *value.Calc, l Line, p Point) Line {
	return Line{P: p, DX: c.Neg(l.DY), DY: l.DX}
}

// ParallelThrough returns the line through p parallel to l.
func ParallelThrough(l Line, p Point) Line {
	return Line{P: p, DX: l.DX, DY: l.DY}
}

// Bisectors returns the two angle bisectors of intersecting lines, the
// first bisecting the angle that contains the directions of l and m.
func Bisectors(c *value.Calc, l, m Line) ([2]Line, error) {
	x, rel := Intersect(c, l, m)
	if rel != Intersecting {
		return [2]Line{}, diag.Degen("lines are %s; angle bisectors are undefined", rel)
	}
	ux, uy := l.Direction(c)
	vx, vy := m.Direction(c)
	first := Line{P: x, DX: c.Add(ux, vx), DY: c.Add(uy, vy)}
	second := Line{P: x, DX: c.Sub(ux, vx), DY: c.Sub(uy, vy)}
	return [2]Line{first, second}, nil
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
