package ops

import (
	"github.com/njchilds90/geographer/geom"
	"github.com/njchilds90/geographer/plot"
	"github.com/njchilds90/geographer/registry"
	"github.com/njchilds90/geographer/value"
)

// ============================================================
// Triangles
// ============================================================

var centreNames = []string{"centroid", "incenter", "circumcenter", "orthocenter"}

func triangleArgs() []registry.ArgSpec {
	return []registry.ArgSpec{
		required("a", registry.PointArg, "vertex A"),
		required("b", registry.PointArg, "vertex B"),
		required("c", registry.PointArg, "vertex C"),
	}
}

func triangleOps() []registry.Entry {
	right := map[string]any{"a": []any{0, 0}, "b": []any{4, 0}, "c": []any{0, 3}}
	return []registry.Entry{
		{
			Descriptor: registry.Descriptor{
				ID: "triangle_summary", Domain: Triangles, Label: "Triangle properties",
				Description: "Sides, angles, area, centres, circumradius, inradius and classification.",
				Args:        triangleArgs(),
				Presets: []registry.Preset{
					preset("3-4-5", right),
					preset("equilateral", map[string]any{"a": []any{0, 0}, "b": []any{2, 0}, "c": []any{1, "sqrt(3)"}}),
				},
			},
			Handler: triangleSummary,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "triangle_center", Domain: Triangles, Label: "Triangle centre",
				Args: append(triangleArgs(), registry.ArgSpec{
					Name: "center", Kind: registry.Choice, Default: "centroid", Choices: centreNames,
					Help: "which centre to compute",
				}),
				Presets: []registry.Preset{
					preset("circumcenter", map[string]any{"a": []any{0, 0}, "b": []any{4, 0}, "c": []any{0, 3}, "center": "circumcenter"}),
					preset("incenter", map[string]any{"a": []any{0, 0}, "b": []any{4, 0}, "c": []any{0, 3}, "center": "incenter"}),
				},
			},
			Handler: triangleCenter,
		},
	}
}

func triangle(call *registry.Call) (geom.Triangle, error) {
	return geom.NewTriangle(call.Calc,
		labelled(call.Point("a"), "A"),
		labelled(call.Point("b"), "B"),
		labelled(call.Point("c"), "C"))
}

func triangleSummary(call *registry.Call) error {
	c := call.Calc
	t, err := triangle(call)
	if err != nil {
		return err
	}
	a, b, cc := t.Sides()
	call.Step("sides", "a = |BC| = %s, b = |CA| = %s, c = |AB| = %s", a, b, cc)
	area := t.Area()
	call.Step("area", "K = |AB x AC| / 2 = %s", value.Describe(area))
	alpha, beta, gamma := t.Angles()
	call.Step("angles", "A = %s, B = %s, C = %s", value.Describe(alpha), value.Describe(beta), value.Describe(gamma))
	circR, inR := t.Circumradius(), t.Inradius()
	call.Step("radii", "R = abc/(4K) = %s, r = K/s = %s", circR, inR)

	centres := map[string]geom.Point{}
	for _, name := range centreNames {
		p, _ := t.Center(name)
		centres[name] = p
		call.Step(name, "%s = %s", p.Label, p)
	}
	cls := t.Classify()
	call.Step("classification", "%s, %s", cls.BySides, cls.ByAngles)

	call.Set("sides", map[string]value.Value{"a": a, "b": b, "c": cc})
	call.Set("perimeter", t.Perimeter())
	call.Set("area", area)
	call.Set("angles", map[string]any{
		"A": angleDegrees(c, alpha),
		"B": angleDegrees(c, beta),
		"C": angleDegrees(c, gamma),
	})
	call.Set("centres", centres)
	call.Set("circumradius", circR)
	call.Set("inradius", inR)
	call.Set("classification", cls)

	vs := t.Vertices()
	call.Plot.Polygon(vs, plot.Color(blue), plot.Fill(blue, 0.1))
	plotPoints(call, red, vs...)
	plotPoints(call, purple, centres["centroid"], centres["incenter"], centres["circumcenter"], centres["orthocenter"])
	call.Plot.Circle(geom.Circle{Center: centres["circumcenter"], R: circR}, plot.Color(grey), plot.Dashed(), plot.Label("circumcircle"))
	call.Plot.Circle(geom.Circle{Center: centres["incenter"], R: inR}, plot.Color(green), plot.Dotted(), plot.Label("incircle"))
	return nil
}

func triangleCenter(call *registry.Call) error {
	t, err := triangle(call)
	if err != nil {
		return err
	}
	name := call.Text("center")
	p, err := t.Center(name)
	if err != nil {
		return err
	}
	switch name {
	case "centroid":
		call.Step("formula", "G = (A + B + C)/3")
	case "incenter":
		call.Step("formula", "I = (a*A + b*B + c*C)/(a + b + c)")
	case "circumcenter":
		call.Step("formula", "O is equidistant from A, B and C")
		call.Set("radius", t.Circumradius())
		call.Plot.Circle(geom.Circle{Center: p, R: t.Circumradius()}, plot.Color(grey), plot.Dashed())
	case "orthocenter":
		call.Step("formula", "H = A + B + C - 2*O")
	}
	call.Step("result", "%s = %s", p.Label, p)
	call.Set("center", p)
	call.Set("kind", name)
	vs := t.Vertices()
	call.Plot.Polygon(vs, plot.Color(blue))
	plotPoints(call, red, vs...)
	plotPoints(call, purple, p)
	return nil
}
