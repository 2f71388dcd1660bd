package ops

import (
	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/geom"
	"github.com/njchilds90/geographer/plot"
	"github.com/njchilds90/geographer/registry"
	"github.com/njchilds90/geographer/value"
)

// ============================================================
// Points
// ============================================================

func pointOps() []registry.Entry {
	return []registry.Entry{
		{
			Descriptor: registry.Descriptor{
				ID: "distance", Domain: Points, Label: "Distance between two points",
				Description: "Euclidean distance |AB|.",
				Args: []registry.ArgSpec{
					required("a", registry.PointArg, "first point"),
					required("b", registry.PointArg, "second point"),
				},
				Presets: []registry.Preset{
					preset("3-4-5", map[string]any{"a": []any{0, 0}, "b": []any{3, 4}}),
					preset("irrational", map[string]any{"a": []any{1, 1}, "b": []any{2, 3}}),
				},
			},
			Handler: distance,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "midpoint", Domain: Points, Label: "Midpoint of a segment",
				Args: []registry.ArgSpec{
					required("a", registry.PointArg, "first endpoint"),
					required("b", registry.PointArg, "second endpoint"),
				},
				Presets: []registry.Preset{preset("basic", map[string]any{"a": []any{-2, 1}, "b": []any{4, 5}})},
			},
			Handler: midpoint,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "section_point", Domain: Points, Label: "Section formula",
				Description: "Point dividing AB in the ratio m:n, internally or externally.",
				Args: []registry.ArgSpec{
					required("a", registry.PointArg, "first point"),
					required("b", registry.PointArg, "second point"),
					positive(required("m", registry.Number, "ratio part towards B")),
					positive(required("n", registry.Number, "ratio part towards A")),
					optional("external", registry.Bool, false, "divide externally"),
				},
				Presets: []registry.Preset{
					preset("internal 1:2", map[string]any{"a": []any{0, 0}, "b": []any{6, 3}, "m": 1, "n": 2}),
					preset("external 3:1", map[string]any{"a": []any{0, 0}, "b": []any{6, 3}, "m": 3, "n": 1, "external": true}),
				},
			},
			Handler: sectionPoint,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "parametric_point", Domain: Points, Label: "Point on a line by parameter",
				Description: "P(t) = A + t(B - A).",
				Args: []registry.ArgSpec{
					required("a", registry.PointArg, "P(0)"),
					required("b", registry.PointArg, "P(1)"),
					optional("t", registry.Number, "1/2", "parameter"),
				},
				Presets: []registry.Preset{preset("quarter", map[string]any{"a": []any{0, 0}, "b": []any{4, 8}, "t": "1/4"})},
			},
			Handler: parametricPoint,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "collinearity", Domain: Points, Label: "Collinearity test",
				Args: []registry.ArgSpec{
					required("points", registry.PointsArg, "three or more points"),
				},
				Presets: []registry.Preset{
					preset("collinear", map[string]any{"points": []any{[]any{0, 0}, []any{1, 2}, []any{3, 6}}}),
					preset("triangle", map[string]any{"points": []any{[]any{0, 0}, []any{1, 2}, []any{3, 5}}}),
				},
			},
			Handler: collinearity,
		},
	}
}

func distance(call *registry.Call) error {
	c := call.Calc
	a, b := labelled(call.Point("a"), "A"), labelled(call.Point("b"), "B")
	dx, dy := geom.Vector(c, a, b)
	d2 := c.Add(c.Square(dx), c.Square(dy))
	d := geom.Distance(c, a, b)
	call.Step("differences", "dx = %s, dy = %s", dx, dy)
	call.Step("distance", "d = sqrt(dx^2 + dy^2) = sqrt(%s) = %s", d2, value.Describe(d))
	call.Set("distance", d)
	call.Set("distance_squared", d2)
	plotPoints(call, red, a)
	plotPoints(call, green, b)
	call.Plot.Segment(a, b, plot.Color(purple), plot.Refs(a.Label, b.Label))
	return nil
}

func midpoint(call *registry.Call) error {
	c := call.Calc
	a, b := labelled(call.Point("a"), "A"), labelled(call.Point("b"), "B")
	m := geom.Midpoint(c, a, b).Named("M")
	call.Step("x", "M_x = (%s + %s)/2 = %s", a.X, b.X, m.X)
	call.Step("y", "M_y = (%s + %s)/2 = %s", a.Y, b.Y, m.Y)
	call.Set("midpoint", m)
	plotPoints(call, red, a)
	plotPoints(call, green, b)
	call.Plot.Segment(a, b, plot.Color(grey), plot.Dashed())
	plotPoints(call, blue, m)
	return nil
}

func sectionPoint(call *registry.Call) error {
	c := call.Calc
	a, b := labelled(call.Point("a"), "A"), labelled(call.Point("b"), "B")
	m, n, ext := call.Number("m"), call.Number("n"), call.Bool("external")
	p, err := geom.SectionPoint(c, a, b, m, n, ext)
	if err != nil {
		return err
	}
	if ext {
		p = p.Named("P_ext")
		call.Step("formula", "P = (m*B - n*A)/(m - n) with m:n = %s:%s", m, n)
	} else {
		p = p.Named("P")
		call.Step("formula", "P = (n*A + m*B)/(m + n) with m:n = %s:%s", m, n)
	}
	call.Step("result", "P = %s", p)
	call.Set("point", p)
	call.Set("external", ext)
	plotPoints(call, red, a)
	plotPoints(call, green, b)
	call.Plot.Segment(a, b, plot.Color(grey))
	plotPoints(call, blue, p)
	return nil
}

func parametricPoint(call *registry.Call) error {
	c := call.Calc
	a, b := labelled(call.Point("a"), "A"), labelled(call.Point("b"), "B")
	t := call.Number("t")
	p := geom.Lerp(c, a, b, t).Named("P")
	call.Step("x", "P_x = %s + %s*(%s - %s) = %s", a.X, t, b.X, a.X, p.X)
	call.Step("y", "P_y = %s + %s*(%s - %s) = %s", a.Y, t, b.Y, a.Y, p.Y)
	call.Set("point", p)
	call.Set("t", t)
	call.Set("on_segment", c.Sign(t) >= 0 && c.Compare(t, value.Int(1)) <= 0)
	plotPoints(call, red, a)
	plotPoints(call, green, b)
	call.Plot.Segment(a, b, plot.Color(grey))
	plotPoints(call, blue, p)
	return nil
}

func collinearity(call *registry.Call) error {
	c := call.Calc
	ps := call.Points("points")
	if err := needPoints(ps, 3); err != nil {
		return err
	}
	for i := range ps {
		ps[i] = labelled(ps[i], string(rune('A'+i%26)))
	}
	ok := geom.Collinear(c, ps...)
	call.Set("collinear", ok)
	call.Plot.Points(ps, plot.Color(blue))
	if !ok {
		call.Step("test", "cross product (P2 - P1) x (P3 - P1) = %s is non-zero for some triple", firstNonZeroCross(c, ps))
		call.Plot.Polygon(ps, plot.Color(grey), plot.Dotted())
		return nil
	}
	var far geom.Point
	best := -1.0
	for _, p := range ps[1:] {
		if d := geom.DistanceSquared(c, ps[0], p).Float(); d > best {
			best, far = d, p
		}
	}
	l, err := geom.LineThrough(c, ps[0], far)
	if err != nil {
		call.Warn(diag.Warning(diag.Degenerate, "all points coincide; any line through them works"))
		call.Step("test", "every point equals %s", ps[0])
		return nil
	}
	call.Step("test", "all cross products vanish within tolerance")
	call.Step("line", "common line %s", l.Equation(c))
	call.Set("line", lineInfo(c, l))
	call.Plot.Line(l, plot.Color(grey), plot.Dashed())
	return nil
}

func firstNonZeroCross(c *value.Calc, ps []geom.Point) value.Value {
	for i := 2; i < len(ps); i++ {
		if cr := geom.Cross(c, ps[0], ps[1], ps[i]); !c.IsZero(cr) {
			return cr
		}
	}
	return geom.Cross(c, ps[0], ps[1], ps[2])
}
