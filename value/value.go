// Package value implements the numeric layer: every quantity is either an
// exact symbolic value or an approximate float64, never both.
package value

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/symbolic"
)

// Value is an immutable number: Exact when expr is set, Approximate otherwise.
type Value struct {
	expr symbolic.Expr
	f    float64
}

// Exact wraps a constant expression. Free symbols are rejected.
func Exact(e symbolic.Expr) (Value, error) {
	e = e.Simplify()
	if names := symbolic.SymbolNames(e); len(names) > 0 {
		return Value{}, diag.Invalid("value %s has free symbols %s", e, strings.Join(names, ", "))
	}
	return Value{expr: e}, nil
}

func Int(n int64) Value     { return Value{expr: symbolic.N(n)} }
func Frac(p, q int64) Value { return Value{expr: symbolic.F(p, q)} }
func Approx(f float64) Value {
	return Value{f: f}
}

// Pi and TwoPi are exact constants.
var (
	Pi    = Value{expr: symbolic.Pi}
	TwoPi = Value{expr: symbolic.MulOf(symbolic.N(2), symbolic.Pi)}
)

// maxExactDigits is the longest shortest-decimal form still read as exact.
const maxExactDigits = 15

// FromFloat reads short decimal literals such as 0.1 or 2.5e-3 exactly and
// keeps everything else approximate.
func FromFloat(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Approx(f)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	mant := s
	if i := strings.IndexAny(mant, "eE"); i >= 0 {
		mant = mant[:i]
	}
	digits := strings.TrimLeft(strings.NewReplacer("-", "", ".", "").Replace(mant), "0")
	if len(digits) > maxExactDigits {
		return Approx(f)
	}
	n, ok := symbolic.NDecimal(s)
	if !ok {
		return Approx(f)
	}
	return Value{expr: n}
}

// Parse reads an exact value from text such as "1/3", "sqrt(2)" or "pi/4".
func Parse(s string) (Value, error) {
	e, err := symbolic.Parse(s)
	if err != nil {
		return Value{}, diag.Errorf(diag.InvalidArgument, "%w", err)
	}
	v, err := Exact(e)
	if err != nil {
		return Value{}, err
	}
	if f := v.Float(); math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, diag.Invalid("%q is not a finite real number", s)
	}
	return v, nil
}

func (v Value) IsExact() bool { return v.expr != nil }

// Expr returns the exact expression, or a rational approximation of an
// approximate value.
func (v Value) Expr() symbolic.Expr {
	if v.expr != nil {
		return v.expr
	}
	if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
		return symbolic.N(0)
	}
	n, _ := symbolic.NDecimal(strconv.FormatFloat(v.f, 'g', -1, 64))
	return n
}

// Float always succeeds; exact values are evaluated in float64.
func (v Value) Float() float64 {
	if v.expr == nil {
		return v.f
	}
	f, err := symbolic.Float(v.expr)
	if err != nil {
		return math.NaN()
	}
	return f
}

// IsFinite reports whether the float form is a real number.
func (v Value) IsFinite() bool {
	f := v.Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (v Value) String() string {
	if v.expr != nil {
		return v.expr.String()
	}
	return formatFloat(v.f)
}

func (v Value) LaTeX() string {
	if v.expr != nil {
		return v.expr.LaTeX()
	}
	return formatFloat(v.f)
}

func formatFloat(f float64) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'g', 12, 64)
}

// MarshalJSON encodes exact values as {exact, latex, value} and
// approximate ones as plain numbers. Non-finite numbers become null.
func (v Value) MarshalJSON() ([]byte, error) {
	f := v.Float()
	var num any = f
	if math.IsNaN(f) || math.IsInf(f, 0) {
		num = nil
	}
	if v.expr == nil {
		return json.Marshal(num)
	}
	return json.Marshal(struct {
		Exact string `json:"exact"`
		LaTeX string `json:"latex"`
		Value any    `json:"value"`
	}{v.expr.String(), v.expr.LaTeX(), num})
}

// MarshalYAML mirrors MarshalJSON for CLI output.
func (v Value) MarshalYAML() (any, error) {
	if v.expr == nil {
		return v.f, nil
	}
	return map[string]any{"exact": v.expr.String(), "value": v.Float()}, nil
}
