package ops

import (
	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/geom"
	"github.com/njchilds90/geographer/plot"
	"github.com/njchilds90/geographer/registry"
	"github.com/njchilds90/geographer/value"
)

// ============================================================
// Transformations
// ============================================================

var unitSquare = []any{[]any{0, 0}, []any{2, 0}, []any{2, 1}, []any{0, 1}}

func transformOps() []registry.Entry {
	shape := func() registry.ArgSpec {
		return required("points", registry.PointsArg, "figure vertices")
	}
	pivot := func() registry.ArgSpec {
		return optional("pivot", registry.PointArg, []any{0, 0}, "fixed point")
	}
	return []registry.Entry{
		{
			Descriptor: registry.Descriptor{
				ID: "translate", Domain: Transformation, Label: "Translation",
				Args: []registry.ArgSpec{
					shape(),
					optional("dx", registry.Number, 0, "shift in x"),
					optional("dy", registry.Number, 0, "shift in y"),
				},
				Presets: []registry.Preset{preset("default", map[string]any{"points": unitSquare, "dx": 3, "dy": -1})},
			},
			Handler: translate,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "rotate", Domain: Transformation, Label: "Rotation about a point",
				Args: []registry.ArgSpec{
					shape(),
					optional("angle", registry.Number, 90, "degrees, counter-clockwise"),
					pivot(),
				},
				Presets: []registry.Preset{
					preset("quarter turn", map[string]any{"points": unitSquare}),
					preset("about a vertex", map[string]any{"points": unitSquare, "angle": 60, "pivot": []any{2, 1}}),
				},
			},
			Handler: rotate,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "scale", Domain: Transformation, Label: "Scaling about a point",
				Args: []registry.ArgSpec{
					shape(),
					optional("sx", registry.Number, 2, "factor in x"),
					optional("sy", registry.Number, 2, "factor in y"),
					pivot(),
				},
				Presets: []registry.Preset{preset("stretch", map[string]any{"points": unitSquare, "sx": "3/2", "sy": -1, "pivot": []any{1, 0}})},
			},
			Handler: scale,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "reflect", Domain: Transformation, Label: "Reflection in a line",
				Args:    []registry.ArgSpec{shape(), required("line", registry.LineArg, lineHelp)},
				Presets: []registry.Preset{preset("y = x", map[string]any{"points": unitSquare, "line": map[string]any{"a": 1, "b": -1, "c": 0}})},
			},
			Handler: reflect,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "affine_transform", Domain: Transformation, Label: "Affine transformation",
				Description: "Applies a 2x2 linear map, or a 3x3 matrix on homogeneous coordinates.",
				Args:        []registry.ArgSpec{shape(), required("matrix", registry.MatrixArg, "2x2 or 3x3")},
				Presets: []registry.Preset{preset("shear and shift", map[string]any{
					"points": unitSquare, "matrix": []any{[]any{1, 1, 2}, []any{0, 1, 1}, []any{0, 0, 1}},
				})},
			},
			Handler: affineTransform,
		},
	}
}

// affineOf recovers the homogeneous matrix of an affine map from the images
// of the origin and the unit vectors.
func affineOf(c *value.Calc, f func(geom.Point) geom.Point) geom.Matrix {
	o := f(geom.Pt(0, 0))
	ex, ey := f(geom.Pt(1, 0)), f(geom.Pt(0, 1))
	return geom.Affine(
		c.Sub(ex.X, o.X), c.Sub(ey.X, o.X),
		c.Sub(ex.Y, o.Y), c.Sub(ey.Y, o.Y),
		o.X, o.Y,
	)
}

// mapFigure applies f to every vertex and reports the image, the matrix of
// the map and its effect on area and orientation.
func mapFigure(call *registry.Call, m geom.Matrix, f func(geom.Point) geom.Point) error {
	c := call.Calc
	ps := call.Points("points")
	if err := needPoints(ps, 1); err != nil {
		return err
	}
	src := make([]geom.Point, len(ps))
	img := make([]geom.Point, len(ps))
	for i, p := range ps {
		src[i] = labelled(p, string(rune('A'+i%26)))
		img[i] = f(src[i])
		img[i].Label = src[i].Label + "'"
	}
	// det of the linear part
	det := c.Sub(c.Mul(m.At(0, 0), m.At(1, 1)), c.Mul(m.At(0, 1), m.At(1, 0)))
	call.Step("matrix", "%s", m)
	for i := range src {
		call.Step("map", "%s -> %s", src[i], img[i])
	}
	call.Set("image", img)
	call.Set("matrix", m)
	call.Set("area_scale", c.Abs(det))
	call.Set("orientation_preserved", c.Sign(det) > 0)
	if len(src) >= 3 {
		call.Plot.Polygon(src, plot.Color(grey), plot.Dotted())
		call.Plot.Polygon(img, plot.Color(blue), plot.Fill(blue, 0.2))
	}
	plotPoints(call, grey, src...)
	plotPoints(call, blue, img...)
	return nil
}

func translate(call *registry.Call) error {
	c := call.Calc
	dx, dy := call.Number("dx"), call.Number("dy")
	f := func(p geom.Point) geom.Point { return geom.Translate(c, p, dx, dy) }
	call.Step("rule", "(x, y) -> (x + %s, y + %s)", dx, dy)
	call.Plot.Vector(geom.Pt(0, 0), dx, dy, plot.Color(orange), plot.Label("shift"))
	return mapFigure(call, affineOf(c, f), f)
}

func rotate(call *registry.Call) error {
	c := call.Calc
	deg := call.Number("angle")
	theta := c.Radians(deg)
	pv := labelled(call.Point("pivot"), "O")
	f := func(p geom.Point) geom.Point { return geom.Rotate(c, p, pv, theta) }
	call.Step("angle", "%s° = %s rad", deg, value.Describe(theta))
	call.Step("rule", "rotate about %s by cos = %s, sin = %s", pv, c.Cos(theta), c.Sin(theta))
	call.Set("radians", theta)
	plotPoints(call, red, pv)
	return mapFigure(call, geom.RotationMatrix(c, pv, theta), f)
}

func scale(call *registry.Call) error {
	c := call.Calc
	sx, sy := call.Number("sx"), call.Number("sy")
	if err := geom.CheckScale(c, sx, sy); err != nil {
		return err
	}
	pv := labelled(call.Point("pivot"), "O")
	f := func(p geom.Point) geom.Point { return geom.ScaleAbout(c, p, pv, sx, sy) }
	call.Step("rule", "(x, y) -> %s + (%s (x - x0), %s (y - y0))", pv, sx, sy)
	if c.Sign(sx)*c.Sign(sy) < 0 {
		call.Step("orientation", "factors of opposite sign reflect the figure")
	}
	plotPoints(call, red, pv)
	return mapFigure(call, affineOf(c, f), f)
}

func reflect(call *registry.Call) error {
	c := call.Calc
	l := call.Line("line")
	f := func(p geom.Point) geom.Point { return geom.ReflectPoint(c, l, p) }
	call.Step("mirror", "%s", l.Equation(c))
	call.Step("rule", "P' = 2 F - P where F is the foot of the perpendicular from P")
	call.Plot.Line(l, plot.Color(red), plot.Dashed(), plot.Label("mirror"))
	return mapFigure(call, affineOf(c, f), f)
}

func affineTransform(call *registry.Call) error {
	c := call.Calc
	m := call.Matrix("matrix")
	if m.N() == 3 {
		if !c.IsZero(m.At(2, 0)) || !c.IsZero(m.At(2, 1)) || !c.Equal(m.At(2, 2), value.Int(1)) {
			call.Warnf(diag.Degenerate, "bottom row %s, %s, %s is not 0, 0, 1; the map is projective", m.At(2, 0), m.At(2, 1), m.At(2, 2))
		}
	}
	if _, err := geom.TransformAll(c, m, call.Points("points")); err != nil {
		return err
	}
	if m.IsSingular(c) {
		call.Warnf(diag.Degenerate, "singular matrix collapses the figure onto a line or point")
	}
	return mapFigure(call, m, func(p geom.Point) geom.Point {
		q, _ := m.ApplyPoint(c, p)
		return q
	})
}
