// Package symbolic is the exact expression kernel behind geographer values.
//
// Expressions are immutable trees over exact rationals (math/big.Rat), named
// symbols, the constants pi and e, sums, products, powers and named function
// applications. Constructors simplify eagerly so that structurally equal
// expressions print identically, which makes String a canonical key.
package symbolic

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
)

// ============================================================
// Core Interface
// ============================================================

type Expr interface {
	Simplify() Expr
	String() string
	LaTeX() string
	Sub(varName string, value Expr) Expr
	Diff(varName string) Expr
	// Eval reports the exact rational value when the expression has one.
	Eval() (*Num, bool)
	Equal(other Expr) bool
	exprType() string
	toJSON() map[string]any
	evalf(env map[string]float64) (float64, error)
}

var (
	ErrUnbound       = errors.New("symbolic: unbound symbol")
	ErrNotPolynomial = errors.New("symbolic: not a polynomial")
	ErrDivByZero     = errors.New("symbolic: division by zero")
)

func equalByString(a, b Expr) bool {
	return b != nil && a.exprType() == b.exprType() && a.String() == b.String()
}

// ============================================================
// Num: exact rational number
// ============================================================

type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

// F returns p/q. A zero denominator yields zero; callers validate first.
func F(p, q int64) *Num {
	if q == 0 {
		return N(0)
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

// NRat wraps a copy of r.
func NRat(r *big.Rat) *Num { return &Num{val: new(big.Rat).Set(r)} }

// NDecimal parses a decimal or fraction literal ("0.25", "-3/4", "1e-3") exactly.
func NDecimal(s string) (*Num, bool) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(s))
	if !ok {
		return nil, false
	}
	return &Num{val: r}, true
}

func (n *Num) Simplify() Expr        { return n }
func (n *Num) Sub(string, Expr) Expr { return n }
func (n *Num) Diff(string) Expr      { return N(0) }
func (n *Num) Eval() (*Num, bool)    { return n, true }
func (n *Num) Equal(other Expr) bool { o, ok := other.(*Num); return ok && n.val.Cmp(o.val) == 0 }
func (n *Num) exprType() string      { return "num" }
func (n *Num) Float64() float64      { f, _ := n.val.Float64(); return f }
func (n *Num) IsZero() bool          { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool           { return n.val.Cmp(big.NewRat(1, 1)) == 0 }
func (n *Num) IsNegOne() bool        { return n.val.Cmp(big.NewRat(-1, 1)) == 0 }
func (n *Num) IsInteger() bool       { return n.val.IsInt() }
func (n *Num) Rat() *big.Rat         { return new(big.Rat).Set(n.val) }
func (n *Num) Sign() int             { return n.val.Sign() }

func (n *Num) evalf(map[string]float64) (float64, error) { return n.Float64(), nil }

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (n *Num) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	sign := ""
	v := new(big.Rat).Set(n.val)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return fmt.Sprintf("%s\\frac{%s}{%s}", sign, v.Num().String(), v.Denom().String())
}

func (n *Num) toJSON() map[string]any {
	return map[string]any{"type": "num", "value": n.String()}
}

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numNeg(a *Num) *Num    { return &Num{val: new(big.Rat).Neg(a.val)} }
func numRecip(a *Num) *Num {
	if a.IsZero() {
		return N(0)
	}
	return &Num{val: new(big.Rat).Inv(a.val)}
}

// ============================================================
// Sym: symbolic variable
// ============================================================

type Sym struct{ name string }

func S(name string) *Sym      { return &Sym{name: name} }
func (s *Sym) Simplify() Expr { return s }
func (s *Sym) String() string { return s.name }
func (s *Sym) LaTeX() string {
	if len(s.name) > 1 {
		if _, ok := greek[s.name]; ok {
			return "\\" + s.name
		}
	}
	return s.name
}
func (s *Sym) Eval() (*Num, bool)     { return nil, false }
func (s *Sym) Equal(other Expr) bool  { o, ok := other.(*Sym); return ok && s.name == o.name }
func (s *Sym) exprType() string       { return "sym" }
func (s *Sym) Name() string           { return s.name }
func (s *Sym) toJSON() map[string]any { return map[string]any{"type": "sym", "name": s.name} }
func (s *Sym) Sub(varName string, value Expr) Expr {
	if s.name == varName {
		return value
	}
	return s
}
func (s *Sym) Diff(varName string) Expr {
	if s.name == varName {
		return N(1)
	}
	return N(0)
}
func (s *Sym) evalf(env map[string]float64) (float64, error) {
	v, ok := env[s.name]
	if !ok {
		return math.NaN(), fmt.Errorf("%w %q", ErrUnbound, s.name)
	}
	return v, nil
}

var greek = map[string]struct{}{
	"alpha": {}, "beta": {}, "gamma": {}, "delta": {}, "theta": {}, "phi": {}, "lambda": {}, "mu": {}, "omega": {},
}

// ============================================================
// Const: the transcendental constants pi and e
// ============================================================

type Const struct{ name string }

var (
	Pi = &Const{name: "pi"}
	E  = &Const{name: "e"}
)

func (c *Const) Simplify() Expr        { return c }
func (c *Const) String() string        { return c.name }
func (c *Const) Sub(string, Expr) Expr { return c }
func (c *Const) Diff(string) Expr      { return N(0) }
func (c *Const) Eval() (*Num, bool)    { return nil, false }
func (c *Const) Equal(other Expr) bool { o, ok := other.(*Const); return ok && c.name == o.name }
func (c *Const) exprType() string      { return "const" }
func (c *Const) toJSON() map[string]any {
	return map[string]any{"type": "const", "name": c.name}
}
func (c *Const) LaTeX() string {
	if c == Pi || c.name == "pi" {
		return "\\pi"
	}
	return "e"
}
func (c *Const) evalf(map[string]float64) (float64, error) {
	if c.name == "pi" {
		return math.Pi, nil
	}
	return math.E, nil
}
