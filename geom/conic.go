package geom

import (
	"math"

	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/symbolic"
	"github.com/njchilds90/geographer/value"
)

// ============================================================
// Conic: A*x^2 + B*x*y + C*y^2 + D*x + E*y + F = 0
// ============================================================

type ConicKind string

const (
	Parabola   ConicKind = "parabola"
	Ellipse    ConicKind = "ellipse"
	Hyperbola  ConicKind = "hyperbola"
	Degenerate ConicKind = "degenerate"
)

// Conic is classified once, at construction.
type Conic struct {
	A, B, C, D, E, F value.Value

	Kind ConicKind
	// Circle marks the A = C, B = 0 special case of an ellipse.
	Circle bool
	// Discriminant is B^2 - 4AC; Delta is the 3x3 determinant.
	Discriminant, Delta value.Value
	// Notes are the non-fatal diagnostics raised while classifying.
	Notes []diag.Diagnostic
}

// NewConic classifies by the discriminant B^2 - 4AC. A discriminant within
// tolerance of zero is the parabolic boundary and always carries a
// degenerate note; the determinant of the 3x3 matrix decides whether the
// curve really degenerates into lines or a point.
func NewConic(c *value.Calc, a, b, cc, d, e, f value.Value) (Conic, error) {
	if c.IsZero(a) && c.IsZero(b) && c.IsZero(cc) {
		return Conic{}, diag.Invalid("all quadratic coefficients are zero; not a conic")
	}
	k := Conic{A: a, B: b, C: cc, D: d, E: e, F: f}
	k.Discriminant = c.Sub(c.Square(b), c.Scale(c.Mul(a, cc), 4, 1))
	k.Delta = conicDelta(c, a, b, cc, d, e, f)

	discScale := []value.Value{c.Square(b), c.Scale(c.Mul(a, cc), 4, 1)}
	deltaScale := value.Approx(math.Pow(maxAbs(a, b, cc, d, e, f), 3))
	degenerate := c.IsZero(k.Delta, deltaScale)

	switch sign := discSign(c, k.Discriminant, discScale); {
	case sign == 0:
		k.Notes = append(k.Notes, diag.Warning(diag.Degenerate,
			"discriminant B^2 - 4AC = %s is zero within tolerance: parabolic boundary", k.Discriminant))
		k.Kind = Parabola
		if degenerate {
			k.Kind = Degenerate
		}
	case degenerate:
		k.Kind = Degenerate
		k.Notes = append(k.Notes, diag.Warning(diag.Degenerate,
			"determinant is zero: the conic splits into lines or a single point"))
	case sign < 0:
		k.Kind = Ellipse
		// real points need (A + C) * Delta < 0
		if c.Sign(c.Mul(c.Add(a, cc), k.Delta)) > 0 {
			k.Kind = Degenerate
			k.Notes = append(k.Notes, diag.Warning(diag.Degenerate, "ellipse has no real points"))
			break
		}
		k.Circle = c.Equal(a, cc) && c.IsZero(b, a)
	default:
		k.Kind = Hyperbola
	}
	return k, nil
}

func discSign(c *value.Calc, disc value.Value, scale []value.Value) int {
	if c.IsZero(disc, scale...) {
		return 0
	}
	return c.Sign(disc)
}

func conicDelta(c *value.Calc, a, b, cc, d, e, f value.Value) value.Value {
	hb, hd, he := c.Scale(b, 1, 2), c.Scale(d, 1, 2), c.Scale(e, 1, 2)
	m := Matrix{n: 3, m: []value.Value{a, hb, hd, hb, cc, he, hd, he, f}}
	return m.Det(c)
}

func maxAbs(vs ...value.Value) float64 {
	m := 1.0
	for _, v := range vs {
		if a := math.Abs(v.Float()); a > m {
			m = a
		}
	}
	return m
}

// Expr returns the conic's polynomial in x and y.
func (k Conic) Expr() symbolic.Expr {
	x, y := symbolic.S("x"), symbolic.S("y")
	return symbolic.AddOf(
		symbolic.MulOf(k.A.Expr(), x, x),
		symbolic.MulOf(k.B.Expr(), x, y),
		symbolic.MulOf(k.C.Expr(), y, y),
		symbolic.MulOf(k.D.Expr(), x),
		symbolic.MulOf(k.E.Expr(), y),
		k.F.Expr(),
	)
}

// Eval returns the value of the conic's polynomial at (x, y).
func (k Conic) Eval(x, y float64) float64 {
	return k.A.Float()*x*x + k.B.Float()*x*y + k.C.Float()*y*y + k.D.Float()*x + k.E.Float()*y + k.F.Float()
}

func (k Conic) Equation(c *value.Calc) string {
	return polyString(c, []term{
		{k.A, "x^2"}, {k.B, "x*y"}, {k.C, "y^2"}, {k.D, "x"}, {k.E, "y"}, {k.F, ""},
	})
}

// Center solves the gradient system of a central conic. Parabolas have no
// centre.
func (k Conic) Center(c *value.Calc) (Point, error) {
	if k.Kind == Parabola {
		return Point{}, diag.Degen("a parabola has no centre")
	}
	// 2A x + B y = -D ; B x + 2C y = -E
	a1, b1, c1 := c.Scale(k.A, 2, 1), k.B, c.Neg(k.D)
	a2, b2, c2 := k.B, c.Scale(k.C, 2, 1), c.Neg(k.E)
	det := c.Sub(c.Mul(a1, b2), c.Mul(a2, b1))
	if c.IsZero(det, c.Mul(a1, b2), c.Mul(a2, b1)) {
		return Point{}, diag.Degen("the conic has no unique centre")
	}
	x, _ := c.Div(c.Sub(c.Mul(c1, b2), c.Mul(c2, b1)), det)
	y, _ := c.Div(c.Sub(c.Mul(a1, c2), c.Mul(a2, c1)), det)
	return Point{X: x, Y: y}, nil
}

// Rotation returns the angle theta with tan(2*theta) = B / (A - C) that
// removes the xy term.
func (k Conic) Rotation(c *value.Calc) value.Value {
	if c.IsZero(k.B, k.A, k.C) {
		return value.Int(0)
	}
	return c.Scale(c.Atan2(k.B, c.Sub(k.A, k.C)), 1, 2)
}

// IntersectConicLine substitutes P + t*D into the conic and solves the
// resulting quadratic in t.
func IntersectConicLine(c *value.Calc, k Conic, l Line) ([]Point, Relation, error) {
	px, py, dx, dy := l.P.X, l.P.Y, l.DX, l.DY
	qa := c.Sum(c.Mul(k.A, c.Square(dx)), c.Product(k.B, dx, dy), c.Mul(k.C, c.Square(dy)))
	qb := c.Sum(
		c.Scale(c.Product(k.A, px, dx), 2, 1),
		c.Mul(k.B, c.Add(c.Mul(px, dy), c.Mul(py, dx))),
		c.Scale(c.Product(k.C, py, dy), 2, 1),
		c.Mul(k.D, dx),
		c.Mul(k.E, dy),
	)
	qc := c.Sum(
		c.Mul(k.A, c.Square(px)), c.Product(k.B, px, py), c.Mul(k.C, c.Square(py)),
		c.Mul(k.D, px), c.Mul(k.E, py), k.F,
	)
	if c.IsZero(qa, qb, qc) {
		if c.IsZero(qb, qc) {
			if c.IsZero(qc) {
				return nil, Coincident, diag.Degen("the line lies on the conic")
			}
			return nil, Disjoint, nil
		}
		t, _ := c.Div(c.Neg(qc), qb)
		return []Point{l.At(c, t)}, Secant, nil
	}
	disc := c.Sub(c.Square(qb), c.Scale(c.Mul(qa, qc), 4, 1))
	switch discSign(c, disc, []value.Value{c.Square(qb), c.Scale(c.Mul(qa, qc), 4, 1)}) {
	case -1:
		return nil, Disjoint, nil
	case 0:
		t, _ := c.Div(c.Neg(qb), c.Scale(qa, 2, 1))
		return []Point{l.At(c, t)}, Tangent, nil
	}
	sq, err := c.Sqrt(disc)
	if err != nil {
		return nil, Disjoint, nil
	}
	twoA := c.Scale(qa, 2, 1)
	t1, _ := c.Div(c.Sub(c.Neg(qb), sq), twoA)
	t2, _ := c.Div(c.Add(c.Neg(qb), sq), twoA)
	pts := []Point{l.At(c, t1), l.At(c, t2)}
	SortPoints(pts)
	return pts, Secant, nil
}
