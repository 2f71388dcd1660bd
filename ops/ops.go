// Package ops holds the operation catalogue: one handler per operation id,
// grouped by domain. Handlers build primitives from validated arguments and
// report through the registry.Call; they never touch I/O.
package ops

import (
	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/geom"
	"github.com/njchilds90/geographer/plot"
	"github.com/njchilds90/geographer/registry"
	"github.com/njchilds90/geographer/value"
)

// Domains, in catalogue order.
const (
	Points         = "points"
	Lines          = "lines"
	Triangles      = "triangles"
	Circles        = "circles"
	Conics         = "conics"
	Matrices       = "matrices"
	Trigonometry   = "trigonometry"
	Calculus       = "calculus"
	Loci           = "loci"
	Transformation = "transforms"
)

// Catalog returns every operation. Each call builds fresh entries.
func Catalog() []registry.Entry {
	var out []registry.Entry
	for _, group := range [][]registry.Entry{
		pointOps(),
		lineOps(),
		triangleOps(),
		circleOps(),
		conicOps(),
		matrixOps(),
		trigOps(),
		calculusOps(),
		locusOps(),
		transformOps(),
	} {
		out = append(out, group...)
	}
	return out
}

// Palette shared by the plot elements of every domain.
const (
	red    = "#d62728"
	green  = "#2ca02c"
	blue   = "#1f77b4"
	grey   = "#7f7f7f"
	purple = "#9467bd"
	orange = "#ff7f0e"
)

func required(name string, k registry.Kind, help string) registry.ArgSpec {
	return registry.ArgSpec{Name: name, Kind: k, Required: true, Help: help}
}

func optional(name string, k registry.Kind, def any, help string) registry.ArgSpec {
	return registry.ArgSpec{Name: name, Kind: k, Default: def, Help: help}
}

func positive(a registry.ArgSpec) registry.ArgSpec {
	a.Constraints = append(a.Constraints, registry.Positive)
	return a
}

func nonZero(a registry.ArgSpec) registry.ArgSpec {
	a.Constraints = append(a.Constraints, registry.NonZero)
	return a
}

func between(a registry.ArgSpec, lo, hi float64) registry.ArgSpec {
	a.Min, a.Max = registry.Float(lo), registry.Float(hi)
	return a
}

func preset(name string, args map[string]any) registry.Preset {
	return registry.Preset{Name: name, Args: args}
}

// labelled gives p a default label when the caller did not name it.
func labelled(p geom.Point, label string) geom.Point {
	if p.Label == "" {
		return p.Named(label)
	}
	return p
}

// lineInfo is the payload form of a line.
func lineInfo(c *value.Calc, l geom.Line) map[string]any {
	a, b, k := l.General(c)
	out := map[string]any{
		"equation":        l.Equation(c),
		"slope_intercept": l.SlopeIntercept(c),
		"a":               a,
		"b":               b,
		"c":               k,
		"vertical":        l.IsVertical(c),
	}
	if m, ok := l.Slope(c); ok {
		out["slope"] = m
	}
	if y0, ok := l.YIntercept(c); ok {
		out["y_intercept"] = y0
	}
	if x0, ok := l.XIntercept(c); ok {
		out["x_intercept"] = x0
	}
	return out
}

func circleInfo(c *value.Calc, ci geom.Circle) map[string]any {
	return map[string]any{
		"center":   ci.Center,
		"radius":   ci.R,
		"equation": ci.Equation(c),
		"standard": ci.StandardEquation(c),
	}
}

// plotPoints draws each point with its label.
func plotPoints(call *registry.Call, color string, ps ...geom.Point) {
	for _, p := range ps {
		call.Plot.Point(p, plot.Color(color))
	}
}

// angleDegrees formats an angle in radians with its degree measure.
func angleDegrees(c *value.Calc, rad value.Value) map[string]any {
	return map[string]any{"radians": rad, "degrees": c.Degrees(rad)}
}

// needPoints rejects point lists shorter than n.
func needPoints(ps []geom.Point, n int) error {
	if len(ps) < n {
		return diag.Invalid("need at least %d points, got %d", n, len(ps))
	}
	return nil
}
