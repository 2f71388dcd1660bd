package geom

import (
	"encoding/json"
	"math"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/symbolic"
	"github.com/njchilds90/geographer/value"
)

// ============================================================
// Matrix (2x2 or 3x3)
// ============================================================

// Matrix is square, row-major, with its dimension fixed at construction.
type Matrix struct {
	n int
	m []value.Value
}

// NewMatrix accepts 2x2 and 3x3 row slices only.
func NewMatrix(rows [][]value.Value) (Matrix, error) {
	n := len(rows)
	if n != 2 && n != 3 {
		return Matrix{}, diag.Invalid("matrix must be 2x2 or 3x3, got %d rows", n)
	}
	m := Matrix{n: n, m: make([]value.Value, 0, n*n)}
	for i, r := range rows {
		if len(r) != n {
			return Matrix{}, diag.Invalid("row %d has %d entries, want %d", i+1, len(r), n)
		}
		m.m = append(m.m, r...)
	}
	return m, nil
}

func Identity(n int) Matrix {
	m := Matrix{n: n, m: make([]value.Value, n*n)}
	for i := range m.m {
		m.m[i] = value.Int(0)
		if i%(n+1) == 0 {
			m.m[i] = value.Int(1)
		}
	}
	return m
}

func (a Matrix) N() int                  { return a.n }
func (a Matrix) At(i, j int) value.Value { return a.m[i*a.n+j] }

func (a Matrix) Rows() [][]value.Value {
	out := make([][]value.Value, a.n)
	for i := range out {
		out[i] = append([]value.Value(nil), a.m[i*a.n:(i+1)*a.n]...)
	}
	return out
}

func (a Matrix) IsExact() bool {
	for _, v := range a.m {
		if !v.IsExact() {
			return false
		}
	}
	return true
}

func (a Matrix) String() string {
	rows := make([]string, a.n)
	for i, r := range a.Rows() {
		cells := make([]string, len(r))
		for j, v := range r {
			cells[j] = v.String()
		}
		rows[i] = "[" + strings.Join(cells, ", ") + "]"
	}
	return "[" + strings.Join(rows, ", ") + "]"
}

func (a Matrix) MarshalJSON() ([]byte, error) { return json.Marshal(a.Rows()) }

func (a Matrix) dense() *mat.Dense {
	data := make([]float64, len(a.m))
	for i, v := range a.m {
		data[i] = v.Float()
	}
	return mat.NewDense(a.n, a.n, data)
}

func sameDim(a, b Matrix) error {
	if a.n != b.n {
		return diag.Invalid("dimension mismatch: %dx%d and %dx%d", a.n, a.n, b.n, b.n)
	}
	return nil
}

func MatAdd(c *value.Calc, a, b Matrix) (Matrix, error) {
	if err := sameDim(a, b); err != nil {
		return Matrix{}, err
	}
	out := Matrix{n: a.n, m: make([]value.Value, len(a.m))}
	for i := range a.m {
		out.m[i] = c.Add(a.m[i], b.m[i])
	}
	return out, nil
}

func MatMul(c *value.Calc, a, b Matrix) (Matrix, error) {
	if err := sameDim(a, b); err != nil {
		return Matrix{}, err
	}
	n := a.n
	out := Matrix{n: n, m: make([]value.Value, n*n)}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			acc := value.Int(0)
			for k := 0; k < n; k++ {
				acc = c.Add(acc, c.Mul(a.At(i, k), b.At(k, j)))
			}
			out.m[i*n+j] = acc
		}
	}
	return out, nil
}

func (a Matrix) Scale(c *value.Calc, s value.Value) Matrix {
	out := Matrix{n: a.n, m: make([]value.Value, len(a.m))}
	for i, v := range a.m {
		out.m[i] = c.Mul(s, v)
	}
	return out
}

func (a Matrix) Transpose() Matrix {
	out := Matrix{n: a.n, m: make([]value.Value, len(a.m))}
	for i := 0; i < a.n; i++ {
		for j := 0; j < a.n; j++ {
			out.m[j*a.n+i] = a.At(i, j)
		}
	}
	return out
}

func (a Matrix) Trace(c *value.Calc) value.Value {
	acc := value.Int(0)
	for i := 0; i < a.n; i++ {
		acc = c.Add(acc, a.At(i, i))
	}
	return acc
}

// Det expands by cofactors, which keeps exact entries exact.
func (a Matrix) Det(c *value.Calc) value.Value {
	if a.n == 2 {
		return c.Sub(c.Mul(a.At(0, 0), a.At(1, 1)), c.Mul(a.At(0, 1), a.At(1, 0)))
	}
	acc := value.Int(0)
	for j := 0; j < 3; j++ {
		term := c.Mul(a.At(0, j), a.minor(c, 0, j))
		if j%2 == 1 {
			term = c.Neg(term)
		}
		acc = c.Add(acc, term)
	}
	return acc
}

// minor is the 2x2 determinant left after deleting row i and column j of
// a 3x3 matrix.
func (a Matrix) minor(c *value.Calc, i, j int) value.Value {
	var v []value.Value
	for r := 0; r < 3; r++ {
		for k := 0; k < 3; k++ {
			if r != i && k != j {
				v = append(v, a.At(r, k))
			}
		}
	}
	return c.Sub(c.Mul(v[0], v[3]), c.Mul(v[1], v[2]))
}

// scale is the magnitude used for tolerance tests on the determinant.
func (a Matrix) scale() value.Value {
	return value.Approx(math.Pow(maxAbs(a.m...), float64(a.n)))
}

// IsSingular compares the determinant with tolerance scaled by the entries.
func (a Matrix) IsSingular(c *value.Calc) bool {
	return c.IsZero(a.Det(c), a.scale())
}

// Inverse is the adjugate over the determinant.
func (a Matrix) Inverse(c *value.Calc) (Matrix, error) {
	det := a.Det(c)
	if c.IsZero(det, a.scale()) {
		return Matrix{}, diag.Degen("matrix is singular (det = %s)", det)
	}
	out := Matrix{n: a.n, m: make([]value.Value, len(a.m))}
	if a.n == 2 {
		adj := []value.Value{a.At(1, 1), c.Neg(a.At(0, 1)), c.Neg(a.At(1, 0)), a.At(0, 0)}
		for i, v := range adj {
			out.m[i], _ = c.Div(v, det)
		}
		return out, nil
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			cof := a.minor(c, j, i)
			if (i+j)%2 == 1 {
				cof = c.Neg(cof)
			}
			out.m[i*3+j], _ = c.Div(cof, det)
		}
	}
	return out, nil
}

// Condition is the 2-norm condition number computed by gonum.
func (a Matrix) Condition() float64 {
	return mat.Cond(a.dense(), 2)
}

// ApplyPoint maps p by a 2x2 matrix, or by a 3x3 matrix acting on
// homogeneous coordinates (x, y, 1).
func (a Matrix) ApplyPoint(c *value.Calc, p Point) (Point, error) {
	if a.n == 2 {
		return Point{
			X:     c.Add(c.Mul(a.At(0, 0), p.X), c.Mul(a.At(0, 1), p.Y)),
			Y:     c.Add(c.Mul(a.At(1, 0), p.X), c.Mul(a.At(1, 1), p.Y)),
			Label: p.Label,
		}, nil
	}
	row := func(i int) value.Value {
		return c.Sum(c.Mul(a.At(i, 0), p.X), c.Mul(a.At(i, 1), p.Y), a.At(i, 2))
	}
	w := row(2)
	if c.IsZero(w) {
		return Point{}, diag.Degen("point %s maps to infinity (w = 0)", p)
	}
	x, _ := c.Div(row(0), w)
	y, _ := c.Div(row(1), w)
	return Point{X: x, Y: y, Label: p.Label}, nil
}

// EigenPair is one eigenvalue with its eigenvector. Imag is non-zero for
// complex pairs, which carry no vector.
type EigenPair struct {
	Value  value.Value   `json:"value" yaml:"value"`
	Imag   float64       `json:"imag,omitempty" yaml:"imag,omitempty"`
	Vector []value.Value `json:"vector,omitempty" yaml:"vector,omitempty"`
}

type Eigen struct {
	Pairs []EigenPair `json:"pairs" yaml:"pairs"`
	// Exact is true when the characteristic polynomial was solved exactly.
	Exact   bool `json:"exact" yaml:"exact"`
	Complex bool `json:"complex" yaml:"complex"`
}

// EigenDecompose solves the characteristic quadratic exactly for exact 2x2
// matrices with a real spectrum and otherwise uses gonum's numeric
// decomposition. The caller is told which path was taken through
// Eigen.Exact.
func (a Matrix) EigenDecompose(c *value.Calc) (Eigen, error) {
	if a.n == 2 && a.IsExact() {
		if e, ok := a.eigen2(c); ok {
			return e, nil
		}
	}
	return a.eigenNumeric(c)
}

func (a Matrix) eigen2(c *value.Calc) (Eigen, bool) {
	tr, det := a.Trace(c), a.Det(c)
	sol, err := symbolic.SolveQuadratic(symbolic.N(1), c.Neg(tr).Expr(), det.Expr(), c.Tol.Eps)
	if err != nil || len(sol.Roots) == 0 {
		return Eigen{}, false
	}
	out := Eigen{Exact: true}
	roots := sol.Roots
	if len(roots) == 1 {
		roots = []symbolic.Expr{roots[0], roots[0]}
	}
	for i, r := range roots {
		lam, err := value.Exact(r)
		if err != nil {
			return Eigen{}, false
		}
		out.Pairs = append(out.Pairs, EigenPair{Value: lam, Vector: a.eigenvector2(c, lam, i)})
	}
	return out, true
}

// eigenvector2 solves (A - lambda*I) v = 0 for a 2x2 matrix. For a scalar
// matrix every vector is an eigenvector; the standard basis is returned.
func (a Matrix) eigenvector2(c *value.Calc, lam value.Value, idx int) []value.Value {
	p, q := c.Sub(a.At(0, 0), lam), a.At(0, 1)
	r, s := a.At(1, 0), c.Sub(a.At(1, 1), lam)
	switch {
	case !c.IsZero(q):
		return []value.Value{q, c.Neg(p)}
	case !c.IsZero(p):
		return []value.Value{c.Neg(q), p}
	case !c.IsZero(r):
		return []value.Value{c.Neg(s), r}
	case !c.IsZero(s):
		return []value.Value{s, c.Neg(r)}
	}
	if idx == 0 {
		return []value.Value{value.Int(1), value.Int(0)}
	}
	return []value.Value{value.Int(0), value.Int(1)}
}

func (a Matrix) eigenNumeric(c *value.Calc) (Eigen, error) {
	var eig mat.Eigen
	if ok := eig.Factorize(a.dense(), mat.EigenRight); !ok {
		return Eigen{}, diag.Errorf(diag.SymbolicFallback, "eigen decomposition did not converge")
	}
	vals := eig.Values(nil)
	var vecs mat.CDense
	eig.VectorsTo(&vecs)
	out := Eigen{}
	for j, v := range vals {
		pair := EigenPair{Value: value.Approx(real(v))}
		if !c.Tol.Zero(imag(v), cmplx.Abs(v)) {
			pair.Imag = imag(v)
			out.Complex = true
		} else {
			for i := 0; i < a.n; i++ {
				pair.Vector = append(pair.Vector, value.Approx(real(vecs.At(i, j))))
			}
		}
		out.Pairs = append(out.Pairs, pair)
	}
	return out, nil
}
