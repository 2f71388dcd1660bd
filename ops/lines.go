package ops

import (
	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/geom"
	"github.com/njchilds90/geographer/plot"
	"github.com/njchilds90/geographer/registry"
	"github.com/njchilds90/geographer/value"
)

// ============================================================
// Lines
// ============================================================

// Lines are accepted as {a, b, c}, {p, q}, {slope, intercept} or
// {point, direction}.
const lineHelp = "line as {a,b,c}, {p,q}, {slope,intercept} or {point,direction}"

func lineOps() []registry.Entry {
	twoLines := []registry.ArgSpec{
		required("l1", registry.LineArg, lineHelp),
		required("l2", registry.LineArg, lineHelp),
	}
	pointAndLine := []registry.ArgSpec{
		required("point", registry.PointArg, "the point"),
		required("line", registry.LineArg, lineHelp),
	}
	return []registry.Entry{
		{
			Descriptor: registry.Descriptor{
				ID: "line_from_points", Domain: Lines, Label: "Line through two points",
				Args: []registry.ArgSpec{
					required("p", registry.PointArg, "first point"),
					required("q", registry.PointArg, "second point"),
				},
				Presets: []registry.Preset{
					preset("slope 2", map[string]any{"p": []any{0, 1}, "q": []any{2, 5}}),
					preset("vertical", map[string]any{"p": []any{3, 0}, "q": []any{3, 7}}),
				},
			},
			Handler: lineFromPoints,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "line_summary", Domain: Lines, Label: "Line properties",
				Description: "General form, slope-intercept form, intercepts and inclination.",
				Args:        []registry.ArgSpec{required("line", registry.LineArg, lineHelp)},
				Presets: []registry.Preset{
					preset("general", map[string]any{"line": map[string]any{"a": 3, "b": -4, "c": 12}}),
					preset("slope-intercept", map[string]any{"line": map[string]any{"slope": "1/2", "intercept": -1}}),
				},
			},
			Handler: lineSummary,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "line_intersection", Domain: Lines, Label: "Intersection of two lines",
				Args: twoLines,
				Presets: []registry.Preset{
					preset("crossing", map[string]any{
						"l1": map[string]any{"a": 1, "b": -1, "c": 0},
						"l2": map[string]any{"a": 1, "b": 1, "c": -2},
					}),
					preset("parallel", map[string]any{
						"l1": map[string]any{"slope": 2, "intercept": 0},
						"l2": map[string]any{"slope": 2, "intercept": 3},
					}),
				},
			},
			Handler: lineIntersection,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "angle_between_lines", Domain: Lines, Label: "Angle between two lines",
				Description: "The acute angle, in radians and degrees.",
				Args:        twoLines,
				Presets: []registry.Preset{preset("45 degrees", map[string]any{
					"l1": map[string]any{"slope": 0, "intercept": 0},
					"l2": map[string]any{"slope": 1, "intercept": 0},
				})},
			},
			Handler: angleBetweenLines,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "distance_point_line", Domain: Lines, Label: "Distance from a point to a line",
				Args: pointAndLine,
				Presets: []registry.Preset{preset("basic", map[string]any{
					"point": []any{1, 2}, "line": map[string]any{"a": 3, "b": 4, "c": -5},
				})},
			},
			Handler: distancePointLine,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "foot_of_perpendicular", Domain: Lines, Label: "Foot of the perpendicular",
				Args: pointAndLine,
				Presets: []registry.Preset{preset("basic", map[string]any{
					"point": []any{1, 1}, "line": map[string]any{"a": 3, "b": 4, "c": 0},
				})},
			},
			Handler: footOfPerpendicular,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "angle_bisectors", Domain: Lines, Label: "Angle bisectors of two lines",
				Args: twoLines,
				Presets: []registry.Preset{preset("axes", map[string]any{
					"l1": map[string]any{"a": 1, "b": 0, "c": 0},
					"l2": map[string]any{"a": 0, "b": 1, "c": 0},
				})},
			},
			Handler: angleBisectors,
		},
	}
}

func lineFromPoints(call *registry.Call) error {
	c := call.Calc
	p, q := labelled(call.Point("p"), "P"), labelled(call.Point("q"), "Q")
	l, err := geom.LineThrough(c, p, q)
	if err != nil {
		return err
	}
	dx, dy := geom.Vector(c, p, q)
	call.Step("direction", "direction PQ = (%s, %s)", dx, dy)
	call.Step("general form", "%s", l.Equation(c))
	if m, ok := l.Slope(c); ok {
		call.Step("slope", "m = dy/dx = %s", m)
	} else {
		call.Step("slope", "dx = 0: the line is vertical")
	}
	call.Set("line", lineInfo(c, l))
	plotPoints(call, red, p)
	plotPoints(call, green, q)
	call.Plot.Line(l, plot.Color(blue))
	return nil
}

func lineSummary(call *registry.Call) error {
	c := call.Calc
	l := call.Line("line")
	info := lineInfo(c, l)
	ux, uy := l.Direction(c)
	theta := c.Atan2(l.DY, l.DX)
	if c.Sign(theta) < 0 {
		theta = c.Add(theta, value.Pi)
	}
	if c.Equal(theta, value.Pi) {
		theta = value.Int(0)
	}
	info["direction"] = []value.Value{ux, uy}
	info["inclination"] = angleDegrees(c, theta)
	call.Step("general form", "%s", l.Equation(c))
	call.Step("slope-intercept form", "%s", l.SlopeIntercept(c))
	call.Step("inclination", "theta = %s", value.Describe(theta))
	call.Set("line", info)
	call.Plot.Line(l, plot.Color(blue))
	if x0, ok := l.XIntercept(c); ok {
		call.Plot.Point(geom.NewPoint(x0, value.Int(0)).Named("x-int"), plot.Color(red))
	}
	if y0, ok := l.YIntercept(c); ok {
		call.Plot.Point(geom.NewPoint(value.Int(0), y0).Named("y-int"), plot.Color(green))
	}
	return nil
}

func lineIntersection(call *registry.Call) error {
	c := call.Calc
	l1, l2 := call.Line("l1"), call.Line("l2")
	a1, b1, _ := l1.General(c)
	a2, b2, _ := l2.General(c)
	det := c.Sub(c.Mul(a1, b2), c.Mul(a2, b1))
	call.Step("system", "%s and %s", l1.Equation(c), l2.Equation(c))
	call.Step("determinant", "a1*b2 - a2*b1 = %s*%s - %s*%s = %s", a1, b2, a2, b1, det)
	p, rel := geom.Intersect(c, l1, l2)
	call.Set("relation", rel)
	call.Plot.Line(l1, plot.Color(blue), plot.Label("l1"))
	call.Plot.Line(l2, plot.Color(orange), plot.Label("l2"))
	switch rel {
	case geom.Parallel:
		call.Step("classification", "determinant is zero within tolerance and l2 does not satisfy l1: parallel")
		call.Warn(diag.Warning(diag.Degenerate, "lines are parallel; they do not intersect"))
		return nil
	case geom.Coincident:
		call.Step("classification", "determinant is zero within tolerance and l2 lies on l1: coincident")
		call.Warn(diag.Warning(diag.Degenerate, "lines coincide; every point is common"))
		return nil
	}
	p = p.Named("P")
	call.Step("solve", "Cramer's rule gives P = %s", p)
	call.Set("point", p)
	plotPoints(call, red, p)
	return nil
}

func angleBetweenLines(call *registry.Call) error {
	c := call.Calc
	l1, l2 := call.Line("l1"), call.Line("l2")
	theta := geom.AngleBetween(c, l1, l2)
	call.Step("formula", "tan(theta) = |d1 x d2| / |d1 . d2| with d1 = (%s, %s), d2 = (%s, %s)", l1.DX, l1.DY, l2.DX, l2.DY)
	call.Step("angle", "theta = %s", value.Describe(theta))
	call.Set("angle", angleDegrees(c, theta))
	call.Plot.Line(l1, plot.Color(blue))
	call.Plot.Line(l2, plot.Color(orange))
	if p, rel := geom.Intersect(c, l1, l2); rel == geom.Intersecting {
		u1x, u1y := l1.Direction(c)
		u2x, u2y := l2.Direction(c)
		call.Plot.Angle(p, geom.Translate(c, p, u1x, u1y), geom.Translate(c, p, u2x, u2y), theta.Float(), plot.Color(red))
	} else {
		call.Warn(diag.Warning(diag.Degenerate, "lines are %s; the angle between them is 0", rel))
	}
	return nil
}

func distancePointLine(call *registry.Call) error {
	c := call.Calc
	p, l := labelled(call.Point("point"), "P"), call.Line("line")
	a, b, k := l.General(c)
	d := geom.DistanceToPoint(c, l, p)
	call.Step("formula", "d = |a*x0 + b*y0 + c| / sqrt(a^2 + b^2) with (a, b, c) = (%s, %s, %s)", a, b, k)
	call.Step("distance", "d = %s", value.Describe(d))
	call.Set("distance", d)
	call.Set("on_line", l.Contains(c, p))
	foot := geom.Foot(c, l, p).Named("F")
	call.Plot.Line(l, plot.Color(blue))
	plotPoints(call, red, p)
	plotPoints(call, green, foot)
	call.Plot.Segment(p, foot, plot.Color(grey), plot.Dashed())
	return nil
}

func footOfPerpendicular(call *registry.Call) error {
	c := call.Calc
	p, l := labelled(call.Point("point"), "P"), call.Line("line")
	foot := geom.Foot(c, l, p).Named("F")
	perp := geom.PerpendicularThrough(c, l, p)
	call.Step("perpendicular", "line through P perpendicular to l: %s", perp.Equation(c))
	call.Step("foot", "F = %s", foot)
	call.Set("foot", foot)
	call.Set("perpendicular", lineInfo(c, perp))
	call.Set("distance", geom.Distance(c, p, foot))
	call.Plot.Line(l, plot.Color(blue))
	call.Plot.Line(perp, plot.Color(grey), plot.Dashed())
	plotPoints(call, red, p)
	plotPoints(call, green, foot)
	return nil
}

func angleBisectors(call *registry.Call) error {
	c := call.Calc
	l1, l2 := call.Line("l1"), call.Line("l2")
	bs, err := geom.Bisectors(c, l1, l2)
	if err != nil {
		return err
	}
	call.Step("method", "sum and difference of the unit direction vectors")
	out := make([]map[string]any, len(bs))
	for i, b := range bs {
		call.Step("bisector", "%s", b.Equation(c))
		out[i] = lineInfo(c, b)
		call.Plot.Line(b, plot.Color(green), plot.Dashed())
	}
	call.Set("bisectors", out)
	call.Plot.Line(l1, plot.Color(blue))
	call.Plot.Line(l2, plot.Color(orange))
	return nil
}
