package symbolic

import (
	"fmt"
	"math"
	"math/big"
)

// ============================================================
// Func: named function applications
// ============================================================

type Func struct {
	name string
	arg  Expr
}

func funcOf(name string, arg Expr) *Func { return &Func{name: name, arg: arg} }

func SinOf(arg Expr) Expr  { return funcOf("sin", arg).Simplify() }
func CosOf(arg Expr) Expr  { return funcOf("cos", arg).Simplify() }
func TanOf(arg Expr) Expr  { return funcOf("tan", arg).Simplify() }
func CotOf(arg Expr) Expr  { return funcOf("cot", arg).Simplify() }
func SecOf(arg Expr) Expr  { return funcOf("sec", arg).Simplify() }
func CscOf(arg Expr) Expr  { return funcOf("csc", arg).Simplify() }
func ExpOf(arg Expr) Expr  { return funcOf("exp", arg).Simplify() }
func LnOf(arg Expr) Expr   { return funcOf("ln", arg).Simplify() }
func AbsOf(arg Expr) Expr  { return funcOf("abs", arg).Simplify() }
func AsinOf(arg Expr) Expr { return funcOf("asin", arg).Simplify() }
func AcosOf(arg Expr) Expr { return funcOf("acos", arg).Simplify() }
func AtanOf(arg Expr) Expr { return funcOf("atan", arg).Simplify() }
func SinhOf(arg Expr) Expr { return funcOf("sinh", arg).Simplify() }
func CoshOf(arg Expr) Expr { return funcOf("cosh", arg).Simplify() }
func TanhOf(arg Expr) Expr { return funcOf("tanh", arg).Simplify() }

var knownFuncs = map[string]func(float64) float64{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"cot":  func(x float64) float64 { return 1 / math.Tan(x) },
	"sec":  func(x float64) float64 { return 1 / math.Cos(x) },
	"csc":  func(x float64) float64 { return 1 / math.Sin(x) },
	"exp":  math.Exp,
	"ln":   math.Log,
	"abs":  math.Abs,
	"asin": math.Asin,
	"acos": math.Acos,
	"atan": math.Atan,
	"sinh": math.Sinh,
	"cosh": math.Cosh,
	"tanh": math.Tanh,
}

var oddFuncs = map[string]bool{"sin": true, "tan": true, "cot": true, "csc": true, "asin": true, "atan": true, "sinh": true, "tanh": true}
var evenFuncs = map[string]bool{"cos": true, "sec": true, "cosh": true, "abs": true}

// FuncOf applies a named function; sqrt and log are accepted as aliases.
func FuncOf(name string, arg Expr) (Expr, error) {
	switch name {
	case "sqrt":
		return SqrtOf(arg), nil
	case "log":
		name = "ln"
	}
	if _, ok := knownFuncs[name]; !ok {
		return nil, fmt.Errorf("symbolic: unknown function %q", name)
	}
	return funcOf(name, arg).Simplify(), nil
}

// IsFunc reports whether name is a function FuncOf accepts.
func IsFunc(name string) bool {
	_, ok := knownFuncs[name]
	return ok || name == "sqrt" || name == "log"
}

func (f *Func) Simplify() Expr {
	arg := f.arg.Simplify()

	if c, rest := splitCoeff(arg); c.Sign() < 0 {
		pos := withCoeff(numNeg(c), rest)
		if oddFuncs[f.name] {
			return MulOf(N(-1), funcOf(f.name, pos).Simplify())
		}
		if evenFuncs[f.name] {
			return funcOf(f.name, pos).Simplify()
		}
	}
	if v, ok := exactTrig(f.name, arg); ok {
		return v
	}
	if v, ok := exactInverseTrig(f.name, arg); ok {
		return v
	}

	switch f.name {
	case "ln":
		if n, ok := arg.(*Num); ok && n.IsOne() {
			return N(0)
		}
		if c, ok := arg.(*Const); ok && c.name == "e" {
			return N(1)
		}
		if inner, ok := arg.(*Func); ok && inner.name == "exp" {
			return inner.arg
		}
	case "exp":
		if n, ok := arg.(*Num); ok {
			if n.IsZero() {
				return N(1)
			}
			if n.IsOne() {
				return E
			}
		}
		if inner, ok := arg.(*Func); ok && inner.name == "ln" {
			return inner.arg
		}
	case "abs":
		if n, ok := arg.(*Num); ok {
			return &Num{val: new(big.Rat).Abs(n.val)}
		}
		if IsConstant(arg) {
			if v, err := arg.evalf(nil); err == nil && !math.IsNaN(v) {
				if v > 0 {
					return arg
				}
				if v < 0 {
					return MulOf(N(-1), arg)
				}
			}
		}
	case "cosh":
		if isZeroExpr(arg) {
			return N(1)
		}
	case "sinh", "tanh":
		if isZeroExpr(arg) {
			return N(0)
		}
	}
	return &Func{name: f.name, arg: arg}
}

// piMultiple recognises arguments of the form c*pi with rational c.
func piMultiple(arg Expr) (*big.Rat, bool) {
	switch v := arg.(type) {
	case *Num:
		if v.IsZero() {
			return new(big.Rat), true
		}
	case *Const:
		if v.name == "pi" {
			return big.NewRat(1, 1), true
		}
	case *Mul:
		if len(v.factors) == 2 {
			c, ok1 := v.factors[0].(*Num)
			k, ok2 := v.factors[1].(*Const)
			if ok1 && ok2 && k.name == "pi" {
				return c.Rat(), true
			}
		}
	}
	return nil, false
}

// sinTwelfths returns sin(n*pi/12) for multiples of pi/6 and pi/4.
func sinTwelfths(n int64) (Expr, bool) {
	n = ((n % 24) + 24) % 24
	quad := func(m int64) (Expr, bool) {
		switch m {
		case 0:
			return N(0), true
		case 2:
			return F(1, 2), true
		case 3:
			return MulOf(F(1, 2), SqrtOf(N(2))), true
		case 4:
			return MulOf(F(1, 2), SqrtOf(N(3))), true
		case 6:
			return N(1), true
		}
		return nil, false
	}
	var v Expr
	var ok bool
	neg := false
	switch {
	case n <= 6:
		v, ok = quad(n)
	case n <= 12:
		v, ok = quad(12 - n)
	case n <= 18:
		v, ok = quad(n - 12)
		neg = true
	default:
		v, ok = quad(24 - n)
		neg = true
	}
	if !ok {
		return nil, false
	}
	if neg {
		return MulOf(N(-1), v), true
	}
	return v, true
}

func exactTrig(name string, arg Expr) (Expr, bool) {
	switch name {
	case "sin", "cos", "tan", "cot", "sec", "csc":
	default:
		return nil, false
	}
	c, ok := piMultiple(arg)
	if !ok {
		return nil, false
	}
	twelve := new(big.Rat).Mul(c, big.NewRat(12, 1))
	if !twelve.IsInt() || !twelve.Num().IsInt64() {
		return nil, false
	}
	n := twelve.Num().Int64()
	s, ok1 := sinTwelfths(n)
	co, ok2 := sinTwelfths(n + 6)
	if !ok1 || !ok2 {
		return nil, false
	}
	quo := func(a, b Expr) (Expr, bool) {
		if isZeroExpr(b) {
			return nil, false
		}
		return MulOf(a, PowOf(b, N(-1))), true
	}
	switch name {
	case "sin":
		return s, true
	case "cos":
		return co, true
	case "tan":
		return quo(s, co)
	case "cot":
		return quo(co, s)
	case "sec":
		return quo(N(1), co)
	case "csc":
		return quo(N(1), s)
	}
	return nil, false
}

func exactInverseTrig(name string, arg Expr) (Expr, bool) {
	if !IsConstant(arg) {
		return nil, false
	}
	piFrac := func(p, q int64) Expr { return MulOf(F(p, q), Pi) }
	key := arg.String()
	switch name {
	case "asin":
		switch key {
		case "0":
			return N(0), true
		case "1/2":
			return piFrac(1, 6), true
		case "sqrt(2)/2":
			return piFrac(1, 4), true
		case "sqrt(3)/2":
			return piFrac(1, 3), true
		case "1":
			return piFrac(1, 2), true
		}
	case "acos":
		switch key {
		case "1":
			return N(0), true
		case "sqrt(3)/2":
			return piFrac(1, 6), true
		case "sqrt(2)/2":
			return piFrac(1, 4), true
		case "1/2":
			return piFrac(1, 3), true
		case "0":
			return piFrac(1, 2), true
		case "-1/2":
			return piFrac(2, 3), true
		case "-sqrt(2)/2":
			return piFrac(3, 4), true
		case "-sqrt(3)/2":
			return piFrac(5, 6), true
		case "-1":
			return Pi, true
		}
	case "atan":
		switch key {
		case "0":
			return N(0), true
		case "sqrt(3)/3":
			return piFrac(1, 6), true
		case "1":
			return piFrac(1, 4), true
		case "sqrt(3)":
			return piFrac(1, 3), true
		}
	}
	return nil, false
}

func (f *Func) String() string { return f.name + "(" + f.arg.String() + ")" }

func (f *Func) LaTeX() string {
	switch f.name {
	case "sin", "cos", "tan", "cot", "sec", "csc", "exp", "ln", "sinh", "cosh", "tanh":
		return "\\" + f.name + "\\left(" + f.arg.LaTeX() + "\\right)"
	case "asin":
		return "\\arcsin\\left(" + f.arg.LaTeX() + "\\right)"
	case "acos":
		return "\\arccos\\left(" + f.arg.LaTeX() + "\\right)"
	case "atan":
		return "\\arctan\\left(" + f.arg.LaTeX() + "\\right)"
	case "abs":
		return "\\left|" + f.arg.LaTeX() + "\\right|"
	}
	return "\\operatorname{" + f.name + "}\\left(" + f.arg.LaTeX() + "\\right)"
}

func (f *Func) Sub(varName string, value Expr) Expr {
	return funcOf(f.name, f.arg.Sub(varName, value)).Simplify()
}

func (f *Func) Diff(varName string) Expr {
	du := f.arg.Diff(varName)
	if isZeroExpr(du) {
		return N(0)
	}
	u := f.arg
	var outer Expr
	switch f.name {
	case "sin":
		outer = CosOf(u)
	case "cos":
		outer = MulOf(N(-1), SinOf(u))
	case "tan":
		outer = PowOf(CosOf(u), N(-2))
	case "cot":
		outer = MulOf(N(-1), PowOf(SinOf(u), N(-2)))
	case "sec":
		outer = MulOf(SinOf(u), PowOf(CosOf(u), N(-2)))
	case "csc":
		outer = MulOf(N(-1), CosOf(u), PowOf(SinOf(u), N(-2)))
	case "exp":
		outer = ExpOf(u)
	case "ln":
		outer = PowOf(u, N(-1))
	case "abs":
		outer = MulOf(u, PowOf(AbsOf(u), N(-1)))
	case "asin":
		outer = PowOf(AddOf(N(1), MulOf(N(-1), PowOf(u, N(2)))), F(-1, 2))
	case "acos":
		outer = MulOf(N(-1), PowOf(AddOf(N(1), MulOf(N(-1), PowOf(u, N(2)))), F(-1, 2)))
	case "atan":
		outer = PowOf(AddOf(N(1), PowOf(u, N(2))), N(-1))
	case "sinh":
		outer = CoshOf(u)
	case "cosh":
		outer = SinhOf(u)
	case "tanh":
		outer = AddOf(N(1), MulOf(N(-1), PowOf(TanhOf(u), N(2))))
	default:
		return MulOf(funcOf("D["+f.name+"]", u), du)
	}
	return MulOf(outer, du)
}

// Eval never produces an exact value for an unevaluated application.
func (f *Func) Eval() (*Num, bool) { return nil, false }

func (f *Func) evalf(env map[string]float64) (float64, error) {
	v, err := f.arg.evalf(env)
	if err != nil {
		return v, err
	}
	fn, ok := knownFuncs[f.name]
	if !ok {
		return math.NaN(), fmt.Errorf("symbolic: cannot evaluate %s", f.name)
	}
	return fn(v), nil
}

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	return ok && f.name == o.name && f.arg.Equal(o.arg)
}

func (f *Func) exprType() string { return "func" }
func (f *Func) toJSON() map[string]any {
	return map[string]any{"type": "func", "name": f.name, "arg": f.arg.toJSON()}
}
func (f *Func) FuncName() string { return f.name }
func (f *Func) Arg() Expr        { return f.arg }
