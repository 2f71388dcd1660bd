package symbolic

import (
	"math/big"
	"sort"
	"strings"
)

// ============================================================
// Mul: product of factors
// ============================================================

type Mul struct{ factors []Expr }

func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

// Simplify flattens nested products, folds the rational coefficient to the
// front and merges factors sharing a base by adding exponents.
func (m *Mul) Simplify() Expr {
	coeff := big.NewRat(1, 1)
	type power struct{ base, exp Expr }
	groups := map[string]*power{}
	var order []string

	var push func(e Expr)
	push = func(e Expr) {
		switch v := e.(type) {
		case *Num:
			coeff.Mul(coeff, v.val)
		case *Mul:
			for _, f := range v.factors {
				push(f)
			}
		default:
			base, exp := asPower(v)
			key := base.String()
			if g, ok := groups[key]; ok {
				g.exp = AddOf(g.exp, exp)
				return
			}
			groups[key] = &power{base: base, exp: exp}
			order = append(order, key)
		}
	}
	for _, f := range m.factors {
		push(f.Simplify())
	}
	if coeff.Sign() == 0 {
		return N(0)
	}

	factors := make([]Expr, 0, len(order))
	regroup := false
	for _, key := range order {
		g := groups[key]
		switch v := PowOf(g.base, g.exp).(type) {
		case *Num:
			coeff.Mul(coeff, v.val)
		case *Mul:
			regroup = true
			for _, f := range v.factors {
				if n, ok := f.(*Num); ok {
					coeff.Mul(coeff, n.val)
				} else {
					factors = append(factors, f)
				}
			}
		default:
			factors = append(factors, v)
		}
	}
	if coeff.Sign() == 0 {
		return N(0)
	}
	if regroup {
		return (&Mul{factors: append([]Expr{&Num{val: coeff}}, factors...)}).Simplify()
	}
	if len(factors) == 0 {
		return &Num{val: coeff}
	}

	type keyed struct {
		e    Expr
		rank int
		key  string
	}
	ks := make([]keyed, len(factors))
	for i, e := range factors {
		ks[i] = keyed{e: e, rank: factorRank(e), key: e.String()}
	}
	sort.Slice(ks, func(i, j int) bool {
		if ks[i].rank != ks[j].rank {
			return ks[i].rank < ks[j].rank
		}
		return ks[i].key < ks[j].key
	})
	c := &Num{val: coeff}
	// A rational coefficient distributes over a lone sum.
	if add, ok := ks[0].e.(*Add); ok && len(ks) == 1 && !c.IsOne() {
		terms := make([]Expr, len(add.terms))
		for i, t := range add.terms {
			terms[i] = MulOf(c, t)
		}
		return AddOf(terms...)
	}
	sorted := make([]Expr, 0, len(ks)+1)
	if !c.IsOne() {
		sorted = append(sorted, c)
	}
	for _, k := range ks {
		sorted = append(sorted, k.e)
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	return &Mul{factors: sorted}
}

// asPower views e as base^exp, with exp 1 for anything that is not a power.
func asPower(e Expr) (Expr, Expr) {
	if p, ok := e.(*Pow); ok {
		return p.base, p.exp
	}
	return e, N(1)
}

func factorRank(e Expr) int {
	base, _ := asPower(e)
	switch base.(type) {
	case *Num:
		return 0
	case *Const:
		return 1
	case *Sym:
		return 2
	case *Func:
		return 3
	}
	return 4
}

// fraction splits a product into sign, numerator and denominator factors
// for display.
func (m *Mul) fraction() (neg bool, numer, denom []Expr) {
	for _, f := range m.factors {
		if n, ok := f.(*Num); ok {
			r := new(big.Rat).Set(n.val)
			if r.Sign() < 0 {
				neg = true
				r.Neg(r)
			}
			if !r.IsInt() || r.Num().Cmp(big.NewInt(1)) != 0 {
				numer = append(numer, &Num{val: new(big.Rat).SetInt(r.Num())})
			}
			if !r.IsInt() {
				denom = append(denom, &Num{val: new(big.Rat).SetInt(r.Denom())})
			}
			continue
		}
		if p, ok := f.(*Pow); ok {
			if e, ok := p.exp.(*Num); ok && e.Sign() < 0 {
				if e.IsNegOne() {
					denom = append(denom, p.base)
				} else {
					denom = append(denom, &Pow{base: p.base, exp: numNeg(e)})
				}
				continue
			}
		}
		numer = append(numer, f)
	}
	// A lone 1 in the numerator only appears for pure reciprocals.
	if len(numer) > 1 {
		if n, ok := numer[0].(*Num); ok && n.IsOne() {
			numer = numer[1:]
		}
	}
	return neg, numer, denom
}

func (m *Mul) String() string {
	neg, numer, denom := m.fraction()
	join := func(fs []Expr) string {
		parts := make([]string, len(fs))
		for i, f := range fs {
			switch f.(type) {
			case *Add:
				parts[i] = "(" + f.String() + ")"
			default:
				parts[i] = f.String()
			}
		}
		return strings.Join(parts, "*")
	}
	var b strings.Builder
	if neg {
		b.WriteString("-")
	}
	if len(numer) == 0 {
		b.WriteString("1")
	} else {
		b.WriteString(join(numer))
	}
	if len(denom) > 0 {
		b.WriteString("/")
		if len(denom) == 1 {
			switch denom[0].(type) {
			case *Add, *Mul:
				b.WriteString("(" + denom[0].String() + ")")
			default:
				b.WriteString(denom[0].String())
			}
		} else {
			b.WriteString("(" + join(denom) + ")")
		}
	}
	return b.String()
}

func (m *Mul) LaTeX() string {
	neg, numer, denom := m.fraction()
	join := func(fs []Expr) string {
		parts := make([]string, len(fs))
		for i, f := range fs {
			if _, ok := f.(*Add); ok {
				parts[i] = "\\left(" + f.LaTeX() + "\\right)"
			} else {
				parts[i] = f.LaTeX()
			}
		}
		return strings.Join(parts, " ")
	}
	sign := ""
	if neg {
		sign = "-"
	}
	top := "1"
	if len(numer) > 0 {
		top = join(numer)
	}
	if len(denom) == 0 {
		return sign + top
	}
	return sign + "\\frac{" + top + "}{" + join(denom) + "}"
}

func (m *Mul) Sub(varName string, value Expr) Expr {
	newFactors := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		newFactors[i] = f.Sub(varName, value)
	}
	return MulOf(newFactors...)
}

func (m *Mul) Diff(varName string) Expr {
	terms := make([]Expr, len(m.factors))
	for i, fi := range m.factors {
		others := make([]Expr, 0, len(m.factors))
		others = append(others, fi.Diff(varName))
		for j, fj := range m.factors {
			if j != i {
				others = append(others, fj)
			}
		}
		terms[i] = MulOf(others...)
	}
	return AddOf(terms...)
}

func (m *Mul) Eval() (*Num, bool) {
	acc := N(1)
	for _, f := range m.factors {
		v, ok := f.Eval()
		if !ok {
			return nil, false
		}
		acc = numMul(acc, v)
	}
	return acc, true
}

func (m *Mul) evalf(env map[string]float64) (float64, error) {
	acc := 1.0
	for _, f := range m.factors {
		v, err := f.evalf(env)
		if err != nil {
			return v, err
		}
		acc *= v
	}
	return acc, nil
}

func (m *Mul) Equal(other Expr) bool { return equalByString(m, other) }
func (m *Mul) exprType() string      { return "mul" }
func (m *Mul) toJSON() map[string]any {
	fs := make([]map[string]any, len(m.factors))
	for i, f := range m.factors {
		fs[i] = f.toJSON()
	}
	return map[string]any{"type": "mul", "factors": fs}
}
func (m *Mul) Factors() []Expr { return append([]Expr(nil), m.factors...) }
