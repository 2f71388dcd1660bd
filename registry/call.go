package registry

import (
	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/geom"
	"github.com/njchilds90/geographer/result"
	"github.com/njchilds90/geographer/symbolic"
	"github.com/njchilds90/geographer/value"
)

// Handler implements one operation. It reads validated arguments from the
// Call, records payload, steps, plot elements and warnings on it, and
// returns a diag error when the computation cannot produce an answer.
type Handler func(*Call) error

// Call is the per-invocation context handed to a Handler.
type Call struct {
	*result.Assembler

	Calc     *value.Calc
	Settings Settings

	args map[string]any
}

// Has reports whether the argument was supplied or defaulted.
func (c *Call) Has(name string) bool {
	_, ok := c.args[name]
	return ok
}

// Arguments are validated against the descriptor before the handler runs,
// so the typed accessors below only see well-formed values. Asking for an
// undeclared argument returns the zero value.

func (c *Call) Number(name string) value.Value {
	v, _ := c.args[name].(value.Value)
	return v
}

func (c *Call) Int(name string) int {
	v, _ := c.args[name].(int)
	return v
}

func (c *Call) Bool(name string) bool {
	v, _ := c.args[name].(bool)
	return v
}

func (c *Call) Text(name string) string {
	v, _ := c.args[name].(string)
	return v
}

func (c *Call) Point(name string) geom.Point {
	v, _ := c.args[name].(geom.Point)
	return v
}

func (c *Call) Points(name string) []geom.Point {
	v, _ := c.args[name].([]geom.Point)
	return v
}

func (c *Call) Line(name string) geom.Line {
	v, _ := c.args[name].(geom.Line)
	return v
}

func (c *Call) Circle(name string) geom.Circle {
	v, _ := c.args[name].(geom.Circle)
	return v
}

func (c *Call) Matrix(name string) geom.Matrix {
	v, _ := c.args[name].(geom.Matrix)
	return v
}

func (c *Call) Expr(name string) symbolic.Expr {
	v, _ := c.args[name].(symbolic.Expr)
	return v
}

func (c *Call) Interval(name string) IntervalValue {
	v, _ := c.args[name].(IntervalValue)
	return v
}

// Step appends a derivation step.
func (c *Call) Step(label, format string, args ...any) {
	c.Steps.Addf(label, format, args...)
}

// Warnf records a non-fatal diagnostic.
func (c *Call) Warnf(kind diag.Kind, format string, args ...any) {
	c.Warn(diag.Warning(kind, format, args...))
}

// Roots returns the root-finding bounds from the settings.
func (c *Call) Roots() symbolic.RootOptions {
	return symbolic.RootOptions{
		Samples:       c.Settings.Samples,
		MaxIterations: c.Settings.MaxIterations,
		Tolerance:     c.Settings.Convergence,
	}
}
