package ops

import (
	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/geom"
	"github.com/njchilds90/geographer/plot"
	"github.com/njchilds90/geographer/registry"
	"github.com/njchilds90/geographer/value"
)

// ============================================================
// Circles
// ============================================================

const circleHelp = "circle as {center, radius} or {d, e, f} for x^2 + y^2 + dx + ey + f = 0"

func circleArg(center []any, r any) map[string]any {
	return map[string]any{"center": center, "radius": r}
}

func circleOps() []registry.Entry {
	twoCircles := []registry.ArgSpec{
		required("c1", registry.CircleArg, circleHelp),
		required("c2", registry.CircleArg, circleHelp),
	}
	return []registry.Entry{
		{
			Descriptor: registry.Descriptor{
				ID: "circle_summary", Domain: Circles, Label: "Circle properties",
				Args:    []registry.ArgSpec{required("circle", registry.CircleArg, circleHelp)},
				Presets: []registry.Preset{preset("basic", map[string]any{"circle": circleArg([]any{2, -1}, 3)})},
			},
			Handler: circleSummary,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "circle_from_three_points", Domain: Circles, Label: "Circle through three points",
				Args: triangleArgs(),
				Presets: []registry.Preset{preset("basic", map[string]any{
					"a": []any{1, 0}, "b": []any{0, 1}, "c": []any{-1, 0},
				})},
			},
			Handler: circleFromThreePoints,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "circle_from_general", Domain: Circles, Label: "Circle from general form",
				Description: "Centre and radius of x^2 + y^2 + dx + ey + f = 0.",
				Args: []registry.ArgSpec{
					required("d", registry.Number, "coefficient of x"),
					required("e", registry.Number, "coefficient of y"),
					required("f", registry.Number, "constant term"),
				},
				Presets: []registry.Preset{preset("basic", map[string]any{"d": -4, "e": -6, "f": -12})},
			},
			Handler: circleFromGeneral,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "line_circle_intersection", Domain: Circles, Label: "Line and circle intersection",
				Args: []registry.ArgSpec{
					required("circle", registry.CircleArg, circleHelp),
					required("line", registry.LineArg, lineHelp),
				},
				Presets: []registry.Preset{
					preset("secant", map[string]any{"circle": circleArg([]any{0, 0}, 5), "line": map[string]any{"slope": 0, "intercept": 3}}),
					preset("tangent", map[string]any{"circle": circleArg([]any{0, 0}, 5), "line": map[string]any{"slope": 0, "intercept": 5}}),
				},
			},
			Handler: lineCircleIntersection,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "circle_intersection", Domain: Circles, Label: "Intersection of two circles",
				Description: "Radical-line reduction followed by a line and circle intersection.",
				Args:        twoCircles,
				Presets: []registry.Preset{
					preset("secant", map[string]any{"c1": circleArg([]any{0, 0}, 5), "c2": circleArg([]any{8, 0}, 5)}),
					preset("tangent", map[string]any{"c1": circleArg([]any{0, 0}, 1), "c2": circleArg([]any{3, 0}, 2)}),
				},
			},
			Handler: circleIntersection,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "tangents_from_point", Domain: Circles, Label: "Tangents from a point",
				Args: []registry.ArgSpec{
					required("circle", registry.CircleArg, circleHelp),
					required("point", registry.PointArg, "external point"),
				},
				Presets: []registry.Preset{preset("basic", map[string]any{"circle": circleArg([]any{0, 0}, 3), "point": []any{5, 0}})},
			},
			Handler: tangentsFromPoint,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "radical_axis", Domain: Circles, Label: "Radical axis",
				Args: twoCircles,
				Presets: []registry.Preset{preset("basic", map[string]any{
					"c1": circleArg([]any{0, 0}, 2), "c2": circleArg([]any{5, 0}, 3),
				})},
			},
			Handler: radicalAxis,
		},
	}
}

func summarise(call *registry.Call, ci geom.Circle) {
	c := call.Calc
	ci.Center = labelled(ci.Center, "O")
	call.Step("standard form", "%s", ci.StandardEquation(c))
	call.Step("general form", "%s", ci.Equation(c))
	info := circleInfo(c, ci)
	info["area"] = ci.Area(c)
	info["circumference"] = ci.Circumference(c)
	call.Set("circle", info)
	call.Plot.Circle(ci, plot.Color(blue))
	plotPoints(call, red, ci.Center)
}

func circleSummary(call *registry.Call) error {
	ci := call.Circle("circle")
	call.Step("centre and radius", "centre %s, radius %s", ci.Center, ci.R)
	summarise(call, ci)
	return nil
}

func circleFromThreePoints(call *registry.Call) error {
	c := call.Calc
	a, b, cc := labelled(call.Point("a"), "A"), labelled(call.Point("b"), "B"), labelled(call.Point("c"), "C")
	ci, err := geom.CircleThrough(c, a, b, cc)
	if err != nil {
		return err
	}
	call.Step("centre", "the perpendicular bisectors of AB and BC meet at %s", ci.Center)
	call.Step("radius", "r = |OA| = %s", value.Describe(ci.R))
	summarise(call, ci)
	plotPoints(call, green, a, b, cc)
	return nil
}

func circleFromGeneral(call *registry.Call) error {
	c := call.Calc
	d, e, f := call.Number("d"), call.Number("e"), call.Number("f")
	call.Step("complete the square", "centre (-d/2, -e/2) = (%s, %s)", c.Scale(d, -1, 2), c.Scale(e, -1, 2))
	ci, err := geom.CircleFromGeneral(c, d, e, f)
	if err != nil {
		return err
	}
	call.Step("radius", "r^2 = d^2/4 + e^2/4 - f = %s", c.Square(ci.R))
	summarise(call, ci)
	return nil
}

func lineCircleIntersection(call *registry.Call) error {
	c := call.Calc
	ci, l := call.Circle("circle"), call.Line("line")
	d := geom.DistanceToPoint(c, l, ci.Center)
	call.Step("distance", "distance from the centre to the line d = %s, radius r = %s", value.Describe(d), ci.R)
	pts, rel := geom.IntersectLine(c, ci, l)
	call.Set("relation", rel)
	call.Plot.Circle(ci, plot.Color(blue))
	call.Plot.Line(l, plot.Color(orange))
	switch rel {
	case geom.Disjoint:
		call.Step("classification", "d > r: the line misses the circle")
	case geom.Tangent:
		call.Step("classification", "d = r: the line touches the circle")
		call.Warn(diag.Warning(diag.Degenerate, "line is tangent to the circle; the two intersections coincide"))
	default:
		call.Step("classification", "d < r: two intersection points")
	}
	return setPoints(call, pts)
}

func setPoints(call *registry.Call, pts []geom.Point) error {
	for i := range pts {
		pts[i] = labelled(pts[i], "P"+string(rune('1'+i)))
		call.Step("point", "%s", pts[i])
	}
	if pts == nil {
		pts = []geom.Point{}
	}
	call.Set("points", pts)
	plotPoints(call, red, pts...)
	return nil
}

func circleIntersection(call *registry.Call) error {
	c := call.Calc
	c1, c2 := call.Circle("c1"), call.Circle("c2")
	d := geom.Distance(c, c1.Center, c2.Center)
	call.Step("centre distance", "d = %s, r1 + r2 = %s, |r1 - r2| = %s",
		value.Describe(d), c.Add(c1.R, c2.R), c.Abs(c.Sub(c1.R, c2.R)))
	if axis, err := geom.RadicalAxis(c, c1, c2); err == nil {
		call.Step("radical line", "subtracting the equations gives %s", axis.Equation(c))
		call.Plot.Line(axis, plot.Color(grey), plot.Dotted(), plot.Label("radical axis"))
	}
	pts, rel := geom.IntersectCircles(c, c1, c2)
	call.Set("relation", rel)
	call.Plot.Circle(c1, plot.Color(blue))
	call.Plot.Circle(c2, plot.Color(orange))
	switch rel {
	case geom.Coincident:
		call.Warn(diag.Warning(diag.Degenerate, "circles coincide; every point is common"))
	case geom.Concentric:
		call.Warn(diag.Warning(diag.Degenerate, "circles are concentric with different radii; they never meet"))
	case geom.ExternallyTangent, geom.InternallyTangent:
		call.Warn(diag.Warning(diag.Degenerate, "circles are %s; they touch at a single point", rel))
	case geom.Separate:
		call.Step("classification", "d > r1 + r2: the circles are separate")
	case geom.Contained:
		call.Step("classification", "d < |r1 - r2|: one circle lies inside the other")
	case geom.Secant:
		call.Step("classification", "|r1 - r2| < d < r1 + r2: two intersection points")
	}
	return setPoints(call, pts)
}

func tangentsFromPoint(call *registry.Call) error {
	c := call.Calc
	ci, p := call.Circle("circle"), labelled(call.Point("point"), "P")
	pts, rel := geom.TangentPoints(c, ci, p)
	call.Set("relation", rel)
	call.Plot.Circle(ci, plot.Color(blue))
	plotPoints(call, red, p)
	if rel == geom.Inside {
		return diag.Degen("point %s lies inside the circle; no tangent exists", p)
	}
	power := ci.PowerOf(c, p)
	call.Step("power", "power of P = |OP|^2 - r^2 = %s", power)
	if length, err := c.Sqrt(power); err == nil {
		call.Set("tangent_length", length)
		call.Step("tangent length", "sqrt(power) = %s", value.Describe(length))
	}
	var lines []map[string]any
	if rel == geom.OnCurve {
		call.Warn(diag.Warning(diag.Degenerate, "point lies on the circle; there is a single tangent"))
		ox, oy := geom.Vector(c, ci.Center, p)
		l, err := geom.LineFromPointDirection(c, p, c.Neg(oy), ox)
		if err != nil {
			return err
		}
		call.Step("tangent", "%s", l.Equation(c))
		lines = append(lines, lineInfo(c, l))
		call.Plot.Line(l, plot.Color(green))
	}
	for i, t := range pts {
		if rel == geom.OnCurve {
			break
		}
		t = t.Named("T" + string(rune('1'+i)))
		pts[i] = t
		l, err := geom.LineThrough(c, p, t)
		if err != nil {
			return err
		}
		call.Step("tangent", "through %s: %s", t, l.Equation(c))
		lines = append(lines, lineInfo(c, l))
		call.Plot.Line(l, plot.Color(green))
		plotPoints(call, purple, t)
	}
	call.Set("points", pts)
	call.Set("tangents", lines)
	return nil
}

func radicalAxis(call *registry.Call) error {
	c := call.Calc
	c1, c2 := call.Circle("c1"), call.Circle("c2")
	d1, e1, f1 := c1.General(c)
	d2, e2, f2 := c2.General(c)
	call.Step("subtract", "(%s - %s)x + (%s - %s)y + (%s - %s) = 0", d1, d2, e1, e2, f1, f2)
	l, err := geom.RadicalAxis(c, c1, c2)
	if err != nil {
		return err
	}
	call.Step("radical axis", "%s", l.Equation(c))
	call.Set("line", lineInfo(c, l))
	call.Plot.Circle(c1, plot.Color(blue))
	call.Plot.Circle(c2, plot.Color(orange))
	call.Plot.Line(l, plot.Color(grey), plot.Dashed())
	return nil
}
