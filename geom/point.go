// Package geom holds the immutable geometric primitives: points, lines,
// triangles, circles, conics, matrices, single-variable functions and
// implicit loci.
//
// Constructors validate their inputs against the tolerance of the
// supplied *value.Calc and fail with diag errors instead of clamping, so
// every primitive that exists is well formed.
package geom

import (
	"fmt"

	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/value"
)

// ============================================================
// Point
// ============================================================

type Point struct {
	X     value.Value `json:"x" yaml:"x"`
	Y     value.Value `json:"y" yaml:"y"`
	Label string      `json:"label,omitempty" yaml:"label,omitempty"`
}

func NewPoint(x, y value.Value) Point { return Point{X: x, Y: y} }

// Pt builds an exact integer point.
func Pt(x, y int64) Point { return Point{X: value.Int(x), Y: value.Int(y)} }

// Named returns a copy of p carrying label.
func (p Point) Named(label string) Point {
	p.Label = label
	return p
}

func (p Point) Floats() (float64, float64) { return p.X.Float(), p.Y.Float() }

func (p Point) IsExact() bool { return p.X.IsExact() && p.Y.IsExact() }

func (p Point) String() string {
	s := fmt.Sprintf("(%s, %s)", p.X, p.Y)
	if p.Label != "" {
		return p.Label + s
	}
	return s
}

// Check rejects points with non-finite coordinates.
func (p Point) Check(c *value.Calc, name string) error {
	if err := c.Check(name+".x", p.X); err != nil {
		return err
	}
	return c.Check(name+".y", p.Y)
}

// Equal compares coordinates within tolerance; labels are ignored.
func (p Point) Equal(c *value.Calc, q Point) bool {
	return c.Equal(p.X, q.X) && c.Equal(p.Y, q.Y)
}

// Vector returns q - p.
func Vector(c *value.Calc, p, q Point) (dx, dy value.Value) {
	return c.Sub(q.X, p.X), c.Sub(q.Y, p.Y)
}

// Translate returns p + (dx, dy).
func Translate(c *value.Calc, p Point, dx, dy value.Value) Point {
	return Point{X: c.Add(p.X, dx), Y: c.Add(p.Y, dy), Label: p.Label}
}

func DistanceSquared(c *value.Calc, p, q Point) value.Value {
	dx, dy := Vector(c, p, q)
	return c.Add(c.Square(dx), c.Square(dy))
}

// Distance is symmetric and never negative.
func Distance(c *value.Calc, p, q Point) value.Value {
	dx, dy := Vector(c, p, q)
	return c.Hypot(dx, dy)
}

func Midpoint(c *value.Calc, p, q Point) Point {
	return Point{
		X: c.Scale(c.Add(p.X, q.X), 1, 2),
		Y: c.Scale(c.Add(p.Y, q.Y), 1, 2),
	}
}

// SectionPoint divides pq in the ratio m:n, internally or externally.
func SectionPoint(c *value.Calc, p, q Point, m, n value.Value, external bool) (Point, error) {
	if external {
		den := c.Sub(m, n)
		if c.IsZero(den, m, n) {
			return Point{}, diag.Degen("external division with equal ratio %s:%s has no finite point", m, n)
		}
		x, _ := c.Div(c.Sub(c.Mul(m, q.X), c.Mul(n, p.X)), den)
		y, _ := c.Div(c.Sub(c.Mul(m, q.Y), c.Mul(n, p.Y)), den)
		return Point{X: x, Y: y}, nil
	}
	den := c.Add(m, n)
	if c.IsZero(den, m, n) {
		return Point{}, diag.Degen("ratio %s:%s sums to zero", m, n)
	}
	x, _ := c.Div(c.Add(c.Mul(n, p.X), c.Mul(m, q.X)), den)
	y, _ := c.Div(c.Add(c.Mul(n, p.Y), c.Mul(m, q.Y)), den)
	return Point{X: x, Y: y}, nil
}

// Lerp returns p + t*(q - p).
func Lerp(c *value.Calc, p, q Point, t value.Value) Point {
	dx, dy := Vector(c, p, q)
	return Point{X: c.Add(p.X, c.Mul(t, dx)), Y: c.Add(p.Y, c.Mul(t, dy))}
}

// Cross returns the z component of (a - o) x (b - o).
func Cross(c *value.Calc, o, a, b Point) value.Value {
	ax, ay := Vector(c, o, a)
	bx, by := Vector(c, o, b)
	return c.Sub(c.Mul(ax, by), c.Mul(ay, bx))
}

// Collinear reports whether all points lie on one line. Fewer than three
// points are trivially collinear.
func Collinear(c *value.Calc, ps ...Point) bool {
	if len(ps) < 3 {
		return true
	}
	// pick the farthest point from ps[0] as the second anchor
	o, far := ps[0], -1
	best := 0.0
	for i := 1; i < len(ps); i++ {
		if d := DistanceSquared(c, o, ps[i]).Float(); d > best {
			best, far = d, i
		}
	}
	if far < 0 || c.Tol.Zero(best) {
		return true
	}
	a := ps[far]
	la := Distance(c, o, a)
	for i := 1; i < len(ps); i++ {
		if i == far {
			continue
		}
		cr := Cross(c, o, a, ps[i])
		if !c.IsZero(cr, c.Mul(la, Distance(c, o, ps[i]))) {
			return false
		}
	}
	return true
}
