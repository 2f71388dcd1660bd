package symbolic

import (
	"math"
	"math/big"
)

// ============================================================
// Pow: base^exponent
// ============================================================

type Pow struct{ base, exp Expr }

func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

func SqrtOf(arg Expr) Expr { return PowOf(arg, F(1, 2)) }

// maxExactBits bounds exact integer powers; larger results stay symbolic.
const maxExactBits = 4096

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	en, expIsNum := exp.(*Num)
	if expIsNum && en.IsZero() {
		return N(1)
	}
	if expIsNum && en.IsOne() {
		return base
	}

	if bn, ok := base.(*Num); ok {
		switch {
		case bn.IsZero():
			// 0^0 and 0^negative stay unevaluated.
			if expIsNum && en.Sign() > 0 {
				return N(0)
			}
			return &Pow{base: base, exp: exp}
		case bn.IsOne():
			return N(1)
		case expIsNum:
			return numPow(bn, en)
		}
	}
	if inner, ok := base.(*Pow); ok && expIsNum && en.IsInteger() {
		return PowOf(inner.base, MulOf(inner.exp, exp))
	}
	if m, ok := base.(*Mul); ok && expIsNum && en.IsInteger() {
		fs := make([]Expr, len(m.factors))
		for i, f := range m.factors {
			fs[i] = PowOf(f, exp)
		}
		return MulOf(fs...)
	}
	if f, ok := base.(*Func); ok && f.name == "exp" {
		return funcOf("exp", MulOf(f.arg, exp)).Simplify()
	}
	if c, ok := base.(*Const); ok && c.name == "e" {
		return funcOf("exp", exp).Simplify()
	}
	return &Pow{base: base, exp: exp}
}

// numPow evaluates b^e exactly where possible. Integer exponents are
// computed directly; rational exponents are reduced to a canonical radical
// c * t^(r/q) with integer t free of q-th powers and 0 < r < q.
func numPow(b, e *Num) Expr {
	if e.IsInteger() {
		k := e.val.Num()
		if !k.IsInt64() || math.Abs(float64(k.Int64()))*float64(ratBits(b.val)) > maxExactBits {
			return &Pow{base: b, exp: e}
		}
		return ratPowInt(b.val, k.Int64())
	}
	p := e.val.Num()
	qBig := e.val.Denom()
	if !qBig.IsInt64() || qBig.Int64() > 64 {
		return &Pow{base: b, exp: e}
	}
	q := qBig.Int64()
	// floor(p/q) and the remainder r in [1, q).
	k := new(big.Int)
	r := new(big.Int)
	k.DivMod(p, qBig, r)
	if !k.IsInt64() || math.Abs(float64(k.Int64()))*float64(ratBits(b.val)) > maxExactBits {
		return &Pow{base: b, exp: e}
	}
	coeff := ratPowInt(b.val, k.Int64()).val
	rr := r.Int64()

	base := new(big.Rat).Set(b.val)
	if base.Sign() < 0 {
		if q%2 == 0 {
			return withCoeff(&Num{val: coeff}, &Pow{base: &Num{val: base}, exp: F(rr, q)})
		}
		base.Neg(base)
		if rr%2 == 1 {
			coeff.Neg(coeff)
		}
	}
	// (n/d)^(r/q) = (n*d^(q-1))^(r/q) / d^r
	n := new(big.Int).Set(base.Num())
	d := new(big.Int).Set(base.Denom())
	m := new(big.Int).Mul(n, new(big.Int).Exp(d, big.NewInt(q-1), nil))
	if m.BitLen() > maxExactBits {
		return withCoeff(&Num{val: coeff}, &Pow{base: &Num{val: base}, exp: F(rr, q)})
	}
	s, t := extractPower(m, q)
	sr := new(big.Int).Exp(s, big.NewInt(rr), nil)
	dr := new(big.Int).Exp(d, big.NewInt(rr), nil)
	coeff.Mul(coeff, new(big.Rat).SetFrac(sr, dr))
	c := &Num{val: coeff}
	if t.Cmp(big.NewInt(1)) == 0 {
		return c
	}
	g := gcdInt64(rr, q)
	return withCoeff(c, &Pow{base: &Num{val: new(big.Rat).SetInt(t)}, exp: F(rr/g, q/g)})
}

func ratBits(r *big.Rat) int {
	return r.Num().BitLen() + r.Denom().BitLen() + 1
}

func ratPowInt(b *big.Rat, k int64) *Num {
	neg := k < 0
	if neg {
		k = -k
	}
	kb := big.NewInt(k)
	num := new(big.Int).Exp(b.Num(), kb, nil)
	den := new(big.Int).Exp(b.Denom(), kb, nil)
	if neg {
		num, den = den, num
	}
	if den.Sign() == 0 {
		return N(0)
	}
	return &Num{val: new(big.Rat).SetFrac(num, den)}
}

// extractPower writes m = s^q * t, pulling out q-th powers of small primes
// and checking whether the remaining cofactor is itself a perfect power.
func extractPower(m *big.Int, q int64) (s, t *big.Int) {
	s = big.NewInt(1)
	t = big.NewInt(1)
	rem := new(big.Int).Set(m)
	mod := new(big.Int)
	for p := int64(2); p <= 1000; p++ {
		bp := big.NewInt(p)
		if new(big.Int).Mul(bp, bp).Cmp(rem) > 0 {
			break
		}
		cnt := int64(0)
		for {
			quo, r := new(big.Int).QuoRem(rem, bp, mod)
			if r.Sign() != 0 {
				break
			}
			rem = quo
			cnt++
		}
		if cnt == 0 {
			continue
		}
		s.Mul(s, new(big.Int).Exp(bp, big.NewInt(cnt/q), nil))
		t.Mul(t, new(big.Int).Exp(bp, big.NewInt(cnt%q), nil))
	}
	if root, ok := intRoot(rem, q); ok {
		s.Mul(s, root)
	} else {
		t.Mul(t, rem)
	}
	return s, t
}

// intRoot returns the exact q-th root of x when it exists.
func intRoot(x *big.Int, q int64) (*big.Int, bool) {
	if x.Sign() <= 0 {
		return nil, false
	}
	if q == 2 {
		r := new(big.Int).Sqrt(x)
		return r, new(big.Int).Mul(r, r).Cmp(x) == 0
	}
	f, _ := new(big.Float).SetInt(x).Float64()
	guess := int64(math.Round(math.Pow(f, 1/float64(q))))
	for _, g := range []int64{guess - 1, guess, guess + 1} {
		if g <= 0 {
			continue
		}
		bg := big.NewInt(g)
		if new(big.Int).Exp(bg, big.NewInt(q), nil).Cmp(x) == 0 {
			return bg, true
		}
	}
	return nil, false
}

func gcdInt64(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func isSqrt(p *Pow) bool {
	n, ok := p.exp.(*Num)
	return ok && n.val.Cmp(big.NewRat(1, 2)) == 0
}

func (p *Pow) String() string {
	if isSqrt(p) {
		return "sqrt(" + p.base.String() + ")"
	}
	if n, ok := p.exp.(*Num); ok && n.Sign() < 0 {
		return (&Mul{factors: []Expr{p}}).String()
	}
	baseStr := p.base.String()
	switch b := p.base.(type) {
	case *Add, *Mul, *Pow:
		baseStr = "(" + baseStr + ")"
	case *Num:
		if b.Sign() < 0 || !b.IsInteger() {
			baseStr = "(" + baseStr + ")"
		}
	}
	expStr := p.exp.String()
	switch e := p.exp.(type) {
	case *Sym, *Const, *Func:
	case *Num:
		if !e.IsInteger() {
			expStr = "(" + expStr + ")"
		}
	default:
		expStr = "(" + expStr + ")"
	}
	return baseStr + "^" + expStr
}

func (p *Pow) LaTeX() string {
	if isSqrt(p) {
		return "\\sqrt{" + p.base.LaTeX() + "}"
	}
	if n, ok := p.exp.(*Num); ok && n.Sign() < 0 {
		return (&Mul{factors: []Expr{p}}).LaTeX()
	}
	baseStr := p.base.LaTeX()
	switch b := p.base.(type) {
	case *Add, *Mul, *Pow:
		baseStr = "\\left(" + baseStr + "\\right)"
	case *Num:
		if b.Sign() < 0 {
			baseStr = "\\left(" + baseStr + "\\right)"
		}
	}
	return baseStr + "^{" + p.exp.LaTeX() + "}"
}

func (p *Pow) Sub(varName string, value Expr) Expr {
	return PowOf(p.base.Sub(varName, value), p.exp.Sub(varName, value))
}

func (p *Pow) Diff(varName string) Expr {
	du := p.base.Diff(varName)
	dv := p.exp.Diff(varName)
	if isZeroExpr(dv) {
		return MulOf(p.exp, PowOf(p.base, AddOf(p.exp, N(-1))), du)
	}
	if isZeroExpr(du) {
		return MulOf(p, LnOf(p.base), dv)
	}
	logTerm := MulOf(dv, LnOf(p.base))
	divTerm := MulOf(p.exp, du, PowOf(p.base, N(-1)))
	return MulOf(p, AddOf(logTerm, divTerm))
}

// Eval is exact only for integer exponents.
func (p *Pow) Eval() (*Num, bool) {
	b, ok1 := p.base.Eval()
	e, ok2 := p.exp.Eval()
	if !ok1 || !ok2 || !e.IsInteger() {
		return nil, false
	}
	if b.IsZero() && e.Sign() <= 0 {
		return nil, false
	}
	if v, ok := numPow(b, e).(*Num); ok {
		return v, true
	}
	return nil, false
}

func (p *Pow) evalf(env map[string]float64) (float64, error) {
	b, err := p.base.evalf(env)
	if err != nil {
		return b, err
	}
	e, err := p.exp.evalf(env)
	if err != nil {
		return e, err
	}
	// Odd roots of negative numbers are real.
	if b < 0 {
		if n, ok := p.exp.(*Num); ok && !n.IsInteger() && n.val.Denom().Bit(0) == 1 {
			v := math.Pow(-b, e)
			if n.val.Num().Bit(0) == 1 {
				v = -v
			}
			return v, nil
		}
	}
	return math.Pow(b, e), nil
}

func (p *Pow) Equal(other Expr) bool { return equalByString(p, other) }
func (p *Pow) exprType() string      { return "pow" }
func (p *Pow) toJSON() map[string]any {
	return map[string]any{"type": "pow", "base": p.base.toJSON(), "exp": p.exp.toJSON()}
}
func (p *Pow) Base() Expr    { return p.base }
func (p *Pow) ExpExpr() Expr { return p.exp }

func isZeroExpr(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.IsZero()
}
