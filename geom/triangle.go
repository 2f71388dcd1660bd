package geom

import (
	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/value"
)

// ============================================================
// Triangle
// ============================================================

// Triangle has non-collinear vertices. Every derived quantity is computed
// once by NewTriangle and stored, so a Triangle is a plain value.
type Triangle struct {
	A, B, C Point

	sides        [3]value.Value
	angles       [3]value.Value
	perimeter    value.Value
	area         value.Value
	circumradius value.Value
	inradius     value.Value
	centroid     Point
	incenter     Point
	circumcenter Point
	orthocenter  Point
	class        Classification
}

// NewTriangle fails with a degenerate error when the area is zero within
// tolerance.
func NewTriangle(k *value.Calc, a, b, c Point) (Triangle, error) {
	cr := Cross(k, a, b, c)
	scale := k.Mul(Distance(k, a, b), Distance(k, a, c))
	if k.IsZero(cr, scale) {
		return Triangle{}, diag.Degen("vertices %s, %s, %s are collinear", a, b, c)
	}
	t := Triangle{A: a, B: b, C: c}
	la, lb, lc := Distance(k, b, c), Distance(k, c, a), Distance(k, a, b)
	t.sides = [3]value.Value{la, lb, lc}
	t.angles = [3]value.Value{angleAt(k, a, b, c), angleAt(k, b, c, a), angleAt(k, c, a, b)}
	t.perimeter = k.Sum(la, lb, lc)
	t.area = k.Scale(k.Abs(cr), 1, 2)
	t.circumradius, _ = k.Div(k.Product(la, lb, lc), k.Scale(t.area, 4, 1))
	t.inradius, _ = k.Div(t.area, k.Scale(t.perimeter, 1, 2))
	t.centres(k)
	t.class = classify(k, la, lb, lc)
	return t, nil
}

// Sides returns the lengths opposite A, B and C.
func (t Triangle) Sides() (a, b, c value.Value) { return t.sides[0], t.sides[1], t.sides[2] }

func (t Triangle) Perimeter() value.Value { return t.perimeter }

// Area is half the absolute cross product of two edges.
func (t Triangle) Area() value.Value { return t.area }

// Angles returns the interior angles at A, B and C in radians.
func (t Triangle) Angles() (a, b, c value.Value) { return t.angles[0], t.angles[1], t.angles[2] }

func angleAt(k *value.Calc, o, p, q Point) value.Value {
	px, py := Vector(k, o, p)
	qx, qy := Vector(k, o, q)
	cr := k.Abs(cross2(k, px, py, qx, qy))
	dot := k.Add(k.Mul(px, qx), k.Mul(py, qy))
	return k.Atan2(cr, dot)
}

func (t Triangle) Centroid() Point     { return t.centroid }
func (t Triangle) Incenter() Point     { return t.incenter }
func (t Triangle) Orthocenter() Point  { return t.orthocenter }
func (t Triangle) Circumcenter() Point { return t.circumcenter }

// Circumradius is abc / (4K).
func (t Triangle) Circumradius() value.Value { return t.circumradius }

// Inradius is K / s.
func (t Triangle) Inradius() value.Value { return t.inradius }

// Center returns a named centre: centroid, incenter, circumcenter or
// orthocenter.
func (t Triangle) Center(name string) (Point, error) {
	switch name {
	case "centroid":
		return t.Centroid().Named("G"), nil
	case "incenter":
		return t.Incenter().Named("I"), nil
	case "circumcenter":
		return t.Circumcenter().Named("O"), nil
	case "orthocenter":
		return t.Orthocenter().Named("H"), nil
	}
	return Point{}, diag.Invalid("unknown triangle centre %q", name)
}

func (t *Triangle) centres(k *value.Calc) {
	ax, ay, bx, by, cx, cy := t.A.X, t.A.Y, t.B.X, t.B.Y, t.C.X, t.C.Y

	gx, _ := k.Div(k.Sum(ax, bx, cx), value.Int(3))
	gy, _ := k.Div(k.Sum(ay, by, cy), value.Int(3))
	t.centroid = Point{X: gx, Y: gy}

	a, b, c := t.Sides()
	ix, _ := k.Div(k.Sum(k.Mul(a, ax), k.Mul(b, bx), k.Mul(c, cx)), t.perimeter)
	iy, _ := k.Div(k.Sum(k.Mul(a, ay), k.Mul(b, by), k.Mul(c, cy)), t.perimeter)
	t.incenter = Point{X: ix, Y: iy}

	sa := k.Add(k.Square(ax), k.Square(ay))
	sb := k.Add(k.Square(bx), k.Square(by))
	sc := k.Add(k.Square(cx), k.Square(cy))
	d := k.Scale(k.Sum(
		k.Mul(ax, k.Sub(by, cy)),
		k.Mul(bx, k.Sub(cy, ay)),
		k.Mul(cx, k.Sub(ay, by)),
	), 2, 1)
	// d is nonzero: collinear vertices were rejected
	ux, _ := k.Div(k.Sum(k.Mul(sa, k.Sub(by, cy)), k.Mul(sb, k.Sub(cy, ay)), k.Mul(sc, k.Sub(ay, by))), d)
	uy, _ := k.Div(k.Sum(k.Mul(sa, k.Sub(cx, bx)), k.Mul(sb, k.Sub(ax, cx)), k.Mul(sc, k.Sub(bx, ax))), d)
	t.circumcenter = Point{X: ux, Y: uy}

	// H = A + B + C - 2O
	t.orthocenter = Point{
		X: k.Sub(k.Sum(ax, bx, cx), k.Scale(ux, 2, 1)),
		Y: k.Sub(k.Sum(ay, by, cy), k.Scale(uy, 2, 1)),
	}
}

// Classification describes a triangle by its sides and its largest angle.
type Classification struct {
	BySides  string `json:"by_sides" yaml:"by_sides"`
	ByAngles string `json:"by_angles" yaml:"by_angles"`
}

func (t Triangle) Classify() Classification { return t.class }

func classify(k *value.Calc, a, b, c value.Value) Classification {
	var cl Classification
	switch eqAB, eqBC, eqCA := k.Equal(a, b), k.Equal(b, c), k.Equal(c, a); {
	case eqAB && eqBC:
		cl.BySides = "equilateral"
	case eqAB || eqBC || eqCA:
		cl.BySides = "isosceles"
	default:
		cl.BySides = "scalene"
	}
	a2, b2, c2 := k.Square(a), k.Square(b), k.Square(c)
	big, rest := a2, k.Add(b2, c2)
	if k.Less(big, b2) {
		big, rest = b2, k.Add(a2, c2)
	}
	if k.Less(big, c2) {
		big, rest = c2, k.Add(a2, b2)
	}
	switch k.Compare(big, rest) {
	case 0:
		cl.ByAngles = "right"
	case 1:
		cl.ByAngles = "obtuse"
	default:
		cl.ByAngles = "acute"
	}
	return cl
}

func (t Triangle) Vertices() []Point {
	return []Point{t.A.withDefault("A"), t.B.withDefault("B"), t.C.withDefault("C")}
}

func (p Point) withDefault(label string) Point {
	if p.Label == "" {
		p.Label = label
	}
	return p
}
