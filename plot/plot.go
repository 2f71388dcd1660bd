// Package plot builds declarative plot elements. Elements describe what to
// draw in plain numbers; no rendering happens here.
package plot

import (
	"math"

	"github.com/njchilds90/geographer/geom"
	"github.com/njchilds90/geographer/value"
)

type Type string

const (
	Point       Type = "point"
	Points      Type = "points"
	Segment     Type = "segment"
	Line        Type = "line"
	Ray         Type = "ray"
	Circle      Type = "circle"
	Curve       Type = "curve"
	Polygon     Type = "polygon"
	Annotation  Type = "annotation"
	Vector      Type = "vector"
	VectorField Type = "vector_field"
	Area        Type = "area"
	Angle       Type = "angle"
)

type Style struct {
	Color   string  `json:"color,omitempty" yaml:"color,omitempty"`
	Dash    string  `json:"dash,omitempty" yaml:"dash,omitempty"`
	Width   float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Size    float64 `json:"size,omitempty" yaml:"size,omitempty"`
	Label   string  `json:"label,omitempty" yaml:"label,omitempty"`
	Fill    string  `json:"fill,omitempty" yaml:"fill,omitempty"`
	Opacity float64 `json:"opacity,omitempty" yaml:"opacity,omitempty"`
}

type Element struct {
	Type  Type           `json:"type" yaml:"type"`
	Refs  []string       `json:"refs,omitempty" yaml:"refs,omitempty"`
	Style Style          `json:"style" yaml:"style"`
	Data  map[string]any `json:"data" yaml:"data"`
}

// Opt adjusts an element as it is added.
type Opt func(*Element)

func WithStyle(s Style) Opt        { return func(e *Element) { e.Style = s } }
func Color(c string) Opt           { return func(e *Element) { e.Style.Color = c } }
func Label(l string) Opt           { return func(e *Element) { e.Style.Label = l } }
func Dashed() Opt                  { return func(e *Element) { e.Style.Dash = "dash" } }
func Dotted() Opt                  { return func(e *Element) { e.Style.Dash = "dot" } }
func Refs(names ...string) Opt     { return func(e *Element) { e.Refs = append(e.Refs, names...) } }
func Fill(c string, o float64) Opt { return func(e *Element) { e.Style.Fill, e.Style.Opacity = c, o } }

// Builder collects elements for one result.
type Builder struct {
	els []Element
}

func (b *Builder) add(t Type, data map[string]any, opts []Opt) {
	e := Element{Type: t, Data: data}
	for _, o := range opts {
		o(&e)
	}
	b.els = append(b.els, e)
}

func (b *Builder) Len() int { return len(b.els) }

// Elements returns a copy of everything added so far.
func (b *Builder) Elements() []Element {
	return append([]Element(nil), b.els...)
}

func xy(p geom.Point) [2]float64 {
	x, y := p.Floats()
	return [2]float64{x, y}
}

func xys(ps []geom.Point) [][2]float64 {
	out := make([][2]float64, len(ps))
	for i, p := range ps {
		out[i] = xy(p)
	}
	return out
}

// Point plots p, using its label as the style label and reference.
func (b *Builder) Point(p geom.Point, opts ...Opt) {
	if p.Label != "" {
		opts = append([]Opt{Label(p.Label), Refs(p.Label)}, opts...)
	}
	b.add(Point, map[string]any{"at": xy(p)}, opts)
}

func (b *Builder) Points(ps []geom.Point, opts ...Opt) {
	b.add(Points, map[string]any{"points": xys(ps)}, opts)
}

// Scatter plots raw samples, such as those of an implicit curve.
func (b *Builder) Scatter(pts [][2]float64, opts ...Opt) {
	b.add(Points, map[string]any{"points": pts}, opts)
}

func (b *Builder) Segment(p, q geom.Point, opts ...Opt) {
	b.add(Segment, map[string]any{"from": xy(p), "to": xy(q)}, opts)
}

// Line plots an infinite line by a point and a direction.
func (b *Builder) Line(l geom.Line, opts ...Opt) {
	b.add(Line, map[string]any{
		"through":   xy(l.P),
		"direction": [2]float64{l.DX.Float(), l.DY.Float()},
	}, opts)
}

func (b *Builder) Ray(from geom.Point, dx, dy value.Value, opts ...Opt) {
	b.add(Ray, map[string]any{"from": xy(from), "direction": [2]float64{dx.Float(), dy.Float()}}, opts)
}

func (b *Builder) Circle(c geom.Circle, opts ...Opt) {
	b.add(Circle, map[string]any{"center": xy(c.Center), "radius": c.R.Float()}, opts)
}

// Curve plots sampled (x, y) data. Non-finite samples break the curve,
// producing one element per finite run; runs of a single sample are dropped.
func (b *Builder) Curve(xs, ys []float64, opts ...Opt) {
	for _, run := range finiteRuns(xs, ys) {
		b.add(Curve, map[string]any{"points": run}, opts)
	}
}

// CurvePoints plots a parametric sample already in point form.
func (b *Builder) CurvePoints(pts [][2]float64, opts ...Opt) {
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = p[0], p[1]
	}
	b.Curve(xs, ys, opts...)
}

func finiteRuns(xs, ys []float64) [][][2]float64 {
	var runs [][][2]float64
	var cur [][2]float64
	flush := func() {
		if len(cur) > 1 {
			runs = append(runs, cur)
		}
		cur = nil
	}
	for i := range xs {
		if i >= len(ys) || !finite(xs[i]) || !finite(ys[i]) {
			flush()
			continue
		}
		cur = append(cur, [2]float64{xs[i], ys[i]})
	}
	flush()
	return runs
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func (b *Builder) Polygon(ps []geom.Point, opts ...Opt) {
	b.add(Polygon, map[string]any{"vertices": xys(ps)}, opts)
}

func (b *Builder) Annotation(at geom.Point, text string, opts ...Opt) {
	b.add(Annotation, map[string]any{"at": xy(at), "text": text}, opts)
}

func (b *Builder) Vector(from geom.Point, dx, dy value.Value, opts ...Opt) {
	b.add(Vector, map[string]any{"from": xy(from), "components": [2]float64{dx.Float(), dy.Float()}}, opts)
}

// VectorField plots arrows at the given bases.
func (b *Builder) VectorField(bases, arrows [][2]float64, opts ...Opt) {
	b.add(VectorField, map[string]any{"bases": bases, "arrows": arrows}, opts)
}

// Area shades between the sampled curve and y = 0. Non-finite samples are
// dropped.
func (b *Builder) Area(xs, ys []float64, opts ...Opt) {
	var pts [][2]float64
	for _, run := range finiteRuns(xs, ys) {
		pts = append(pts, run...)
	}
	b.add(Area, map[string]any{"points": pts, "baseline": 0.0}, opts)
}

// Angle marks the angle at vertex swept from one ray to the other.
func (b *Builder) Angle(vertex, from, to geom.Point, radians float64, opts ...Opt) {
	b.add(Angle, map[string]any{
		"vertex":  xy(vertex),
		"from":    xy(from),
		"to":      xy(to),
		"radians": radians,
	}, opts)
}
