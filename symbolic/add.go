package symbolic

import (
	"math/big"
	"sort"
	"strings"
)

// ============================================================
// Add: sum of terms
// ============================================================

type Add struct{ terms []Expr }

func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

// Simplify flattens nested sums and collects like terms by their
// non-numeric part, so 2*x + x*3 becomes 5*x.
func (a *Add) Simplify() Expr {
	sum := new(big.Rat)
	type like struct {
		rest  Expr
		coeff *big.Rat
	}
	groups := map[string]*like{}
	var order []string

	var push func(e Expr)
	push = func(e Expr) {
		switch v := e.(type) {
		case *Num:
			sum.Add(sum, v.val)
		case *Add:
			for _, t := range v.terms {
				push(t)
			}
		default:
			c, rest := splitCoeff(v)
			key := rest.String()
			g, ok := groups[key]
			if !ok {
				g = &like{rest: rest, coeff: new(big.Rat)}
				groups[key] = g
				order = append(order, key)
			}
			g.coeff.Add(g.coeff, c.val)
		}
	}
	for _, t := range a.terms {
		push(t.Simplify())
	}

	type keyed struct {
		e      Expr
		key    string
		degree int
	}
	ks := make([]keyed, 0, len(order))
	for _, key := range order {
		g := groups[key]
		if g.coeff.Sign() == 0 {
			continue
		}
		ks = append(ks, keyed{e: withCoeff(&Num{val: g.coeff}, g.rest), key: key, degree: termDegree(g.rest)})
	}
	sort.SliceStable(ks, func(i, j int) bool {
		if ks[i].degree != ks[j].degree {
			return ks[i].degree > ks[j].degree
		}
		return ks[i].key < ks[j].key
	})
	result := make([]Expr, 0, len(ks)+1)
	for _, k := range ks {
		result = append(result, k.e)
	}
	if sum.Sign() != 0 {
		result = append(result, &Num{val: sum})
	}
	switch len(result) {
	case 0:
		return N(0)
	case 1:
		return result[0]
	}
	return &Add{terms: result}
}

// splitCoeff separates the leading rational coefficient of a simplified term.
func splitCoeff(e Expr) (*Num, Expr) {
	if m, ok := e.(*Mul); ok && len(m.factors) > 1 {
		if c, ok := m.factors[0].(*Num); ok {
			if len(m.factors) == 2 {
				return c, m.factors[1]
			}
			return c, &Mul{factors: m.factors[1:]}
		}
	}
	if n, ok := e.(*Num); ok {
		return n, N(1)
	}
	return N(1), e
}

// withCoeff rebuilds c*rest without re-running simplification.
func withCoeff(c *Num, rest Expr) Expr {
	if c.IsOne() {
		return rest
	}
	if c.IsZero() {
		return N(0)
	}
	if n, ok := rest.(*Num); ok {
		return numMul(c, n)
	}
	if m, ok := rest.(*Mul); ok {
		return &Mul{factors: append([]Expr{c}, m.factors...)}
	}
	return &Mul{factors: []Expr{c, rest}}
}

// termDegree orders sum terms by their total polynomial degree.
func termDegree(e Expr) int {
	switch v := e.(type) {
	case *Sym:
		return 1
	case *Pow:
		if _, ok := v.base.(*Sym); ok {
			if n, ok := v.exp.(*Num); ok && n.IsInteger() {
				return int(n.val.Num().Int64())
			}
		}
	case *Mul:
		d := 0
		for _, f := range v.factors {
			d += termDegree(f)
		}
		return d
	}
	return 0
}

func (a *Add) String() string {
	var b strings.Builder
	for i, t := range a.terms {
		s := t.String()
		switch {
		case i == 0:
			b.WriteString(s)
		case strings.HasPrefix(s, "-"):
			b.WriteString(" - ")
			b.WriteString(s[1:])
		default:
			b.WriteString(" + ")
			b.WriteString(s)
		}
	}
	return b.String()
}

func (a *Add) LaTeX() string {
	var b strings.Builder
	for i, t := range a.terms {
		s := t.LaTeX()
		switch {
		case i == 0:
			b.WriteString(s)
		case strings.HasPrefix(s, "-"):
			b.WriteString(" - ")
			b.WriteString(s[1:])
		default:
			b.WriteString(" + ")
			b.WriteString(s)
		}
	}
	return b.String()
}

func (a *Add) Sub(varName string, value Expr) Expr {
	newTerms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		newTerms[i] = t.Sub(varName, value)
	}
	return AddOf(newTerms...)
}

func (a *Add) Diff(varName string) Expr {
	dTerms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		dTerms[i] = t.Diff(varName)
	}
	return AddOf(dTerms...)
}

func (a *Add) Eval() (*Num, bool) {
	acc := N(0)
	for _, t := range a.terms {
		v, ok := t.Eval()
		if !ok {
			return nil, false
		}
		acc = numAdd(acc, v)
	}
	return acc, true
}

func (a *Add) evalf(env map[string]float64) (float64, error) {
	acc := 0.0
	for _, t := range a.terms {
		v, err := t.evalf(env)
		if err != nil {
			return v, err
		}
		acc += v
	}
	return acc, nil
}

func (a *Add) Equal(other Expr) bool { return equalByString(a, other) }
func (a *Add) exprType() string      { return "add" }
func (a *Add) toJSON() map[string]any {
	ts := make([]map[string]any, len(a.terms))
	for i, t := range a.terms {
		ts[i] = t.toJSON()
	}
	return map[string]any{"type": "add", "terms": ts}
}
func (a *Add) Terms() []Expr { return append([]Expr(nil), a.terms...) }
