package geom

import (
	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/value"
)

// Rotate turns p by theta radians counter-clockwise about pivot.
func Rotate(c *value.Calc, p, pivot Point, theta value.Value) Point {
	cos, sin := c.Cos(theta), c.Sin(theta)
	dx, dy := Vector(c, pivot, p)
	return Point{
		X:     c.Add(pivot.X, c.Sub(c.Mul(cos, dx), c.Mul(sin, dy))),
		Y:     c.Add(pivot.Y, c.Add(c.Mul(sin, dx), c.Mul(cos, dy))),
		Label: p.Label,
	}
}

// ScaleAbout stretches p away from pivot by (sx, sy).
func ScaleAbout(c *value.Calc, p, pivot Point, sx, sy value.Value) Point {
	dx, dy := Vector(c, pivot, p)
	return Point{
		X:     c.Add(pivot.X, c.Mul(sx, dx)),
		Y:     c.Add(pivot.Y, c.Mul(sy, dy)),
		Label: p.Label,
	}
}

// RotationMatrix is the homogeneous 3x3 rotation about pivot.
func RotationMatrix(c *value.Calc, pivot Point, theta value.Value) Matrix {
	cos, sin := c.Cos(theta), c.Sin(theta)
	// T(pivot) * R * T(-pivot)
	tx := c.Sub(pivot.X, c.Sub(c.Mul(cos, pivot.X), c.Mul(sin, pivot.Y)))
	ty := c.Sub(pivot.Y, c.Add(c.Mul(sin, pivot.X), c.Mul(cos, pivot.Y)))
	return Matrix{n: 3, m: []value.Value{
		cos, c.Neg(sin), tx,
		sin, cos, ty,
		value.Int(0), value.Int(0), value.Int(1),
	}}
}

// Affine builds the homogeneous matrix [[a, b, tx], [c, d, ty], [0, 0, 1]].
func Affine(a, b, cc, d, tx, ty value.Value) Matrix {
	return Matrix{n: 3, m: []value.Value{a, b, tx, cc, d, ty, value.Int(0), value.Int(0), value.Int(1)}}
}

// TransformAll maps every point through m, stopping at the first failure.
func TransformAll(c *value.Calc, m Matrix, ps []Point) ([]Point, error) {
	out := make([]Point, len(ps))
	for i, p := range ps {
		q, err := m.ApplyPoint(c, p)
		if err != nil {
			return nil, err
		}
		out[i] = q
	}
	return out, nil
}

// CheckScale rejects zero scale factors, which collapse the figure.
func CheckScale(c *value.Calc, sx, sy value.Value) error {
	if c.IsZero(sx) || c.IsZero(sy) {
		return diag.Degen("scale factors (%s, %s) collapse the figure", sx, sy)
	}
	return nil
}
