package geom

import (
	"iter"
	"math"
	"strings"

	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/symbolic"
	"github.com/njchilds90/geographer/value"
)

// ============================================================
// Locus: implicit curve f(x, y) = 0
// ============================================================

// Rect is a closed sampling window.
type Rect struct {
	XMin, XMax, YMin, YMax float64
}

func (r Rect) Validate() error {
	for _, f := range []float64{r.XMin, r.XMax, r.YMin, r.YMax} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return diag.Invalid("domain bounds must be finite")
		}
	}
	if r.XMin >= r.XMax || r.YMin >= r.YMax {
		return diag.Invalid("domain [%g, %g] x [%g, %g] is empty", r.XMin, r.XMax, r.YMin, r.YMax)
	}
	return nil
}

// Locus pairs an implicit predicate with a bounded sampling grid.
type Locus struct {
	Expr   symbolic.Expr
	Domain Rect
	// Grid is the number of cells per axis.
	Grid int
}

// NewLocus accepts predicates in x and y only.
func NewLocus(e symbolic.Expr, domain Rect, grid int) (Locus, error) {
	var extra []string
	for _, name := range symbolic.SymbolNames(e) {
		if name != "x" && name != "y" {
			extra = append(extra, name)
		}
	}
	if len(extra) > 0 {
		return Locus{}, diag.Invalid("locus %s = 0 uses symbols other than x and y: %s", e, strings.Join(extra, ", "))
	}
	if err := domain.Validate(); err != nil {
		return Locus{}, err
	}
	if grid < 2 {
		return Locus{}, diag.Invalid("sampling grid must have at least 2 cells, got %d", grid)
	}
	return Locus{Expr: e.Simplify(), Domain: domain, Grid: grid}, nil
}

// Elimination is the closed form of a polynomial locus.
type Elimination struct {
	Kind  string // "line" or "conic"
	Line  Line
	Conic Conic
}

// Eliminate recognises polynomial predicates of total degree 1 or 2 and
// returns the line or conic they describe.
func (l Locus) Eliminate(c *value.Calc) (Elimination, bool, error) {
	cs, err := symbolic.PolyCoeffs2(l.Expr, "x", "y")
	if err != nil {
		return Elimination{}, false, nil
	}
	coef := func(i, j int) (value.Value, error) {
		e, ok := cs[symbolic.Monomial2{I: i, J: j}]
		if !ok {
			return value.Int(0), nil
		}
		return c.Exact(e)
	}
	deg := symbolic.TotalDegree2(cs)
	var vs [6]value.Value
	for i, m := range [][2]int{{2, 0}, {1, 1}, {0, 2}, {1, 0}, {0, 1}, {0, 0}} {
		if vs[i], err = coef(m[0], m[1]); err != nil {
			return Elimination{}, false, nil
		}
	}
	switch deg {
	case 1:
		ln, err := LineFromGeneral(c, vs[3], vs[4], vs[5])
		if err != nil {
			return Elimination{}, false, err
		}
		return Elimination{Kind: "line", Line: ln}, true, nil
	case 2:
		k, err := NewConic(c, vs[0], vs[1], vs[2], vs[3], vs[4], vs[5])
		if err != nil {
			return Elimination{}, false, err
		}
		return Elimination{Kind: "conic", Conic: k}, true, nil
	}
	return Elimination{}, false, nil
}

// Samples yields the zeros of f on the edges of the sampling grid. Sign
// changes are located by linear interpolation. Zeros of even multiplicity,
// where f touches zero without changing sign, show up as local minima of
// |f| along a row or column and are refined by a golden-section search.
// Points are produced lazily, row by row.
func (l Locus) Samples() iter.Seq[[2]float64] {
	f := symbolic.Func2(l.Expr, "x", "y")
	d, n := l.Domain, l.Grid
	hx := (d.XMax - d.XMin) / float64(n)
	hy := (d.YMax - d.YMin) / float64(n)
	xAt := func(i int) float64 { return d.XMin + float64(i)*hx }
	yAt := func(j int) float64 { return d.YMin + float64(j)*hy }
	return func(yield func([2]float64) bool) {
		older := make([]float64, n+1)
		prev := make([]float64, n+1)
		cur := make([]float64, n+1)
		for j := 0; j <= n; j++ {
			y := yAt(j)
			for i := 0; i <= n; i++ {
				cur[i] = f(xAt(i), y)
			}
			for i := 0; i <= n; i++ {
				x := xAt(i)
				if cur[i] == 0 {
					if !yield([2]float64{x, y}) {
						return
					}
					continue
				}
				if i > 0 && crosses(cur[i-1], cur[i]) {
					t := cur[i-1] / (cur[i-1] - cur[i])
					if !yield([2]float64{x - hx + t*hx, y}) {
						return
					}
				}
				if j > 0 && crosses(prev[i], cur[i]) {
					t := prev[i] / (prev[i] - cur[i])
					if !yield([2]float64{x, y - hy + t*hy}) {
						return
					}
				}
				if i > 0 && i < n && touches(cur[i-1], cur[i], cur[i+1]) {
					row := func(t float64) float64 { return f(t, y) }
					if xt, ok := touchZero(row, xAt(i-1), xAt(i+1), cur[i-1], cur[i+1]); ok {
						if !yield([2]float64{xt, y}) {
							return
						}
					}
				}
				if j > 1 && touches(older[i], prev[i], cur[i]) {
					col := func(t float64) float64 { return f(x, t) }
					if yt, ok := touchZero(col, yAt(j-2), y, older[i], cur[i]); ok {
						if !yield([2]float64{x, yt}) {
							return
						}
					}
				}
			}
			older, prev, cur = prev, cur, older
		}
	}
}

// touches reports a strict local minimum of |f| at b that keeps the sign
// of its neighbours, the signature of an even-order zero between samples.
func touches(a, b, c float64) bool {
	for _, v := range []float64{a, b, c} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v == 0 {
			return false
		}
	}
	return (a < 0) == (b < 0) && (b < 0) == (c < 0) && math.Abs(b) < math.Abs(a) && math.Abs(b) < math.Abs(c)
}

// touchZero minimises |g| on [lo, hi] and accepts the minimiser when |g|
// vanishes relative to the bracket values.
func touchZero(g func(float64) float64, lo, hi, glo, ghi float64) (float64, bool) {
	const (
		invPhi = 0.6180339887498949
		iters  = 80
	)
	abs := func(t float64) float64 { return math.Abs(g(t)) }
	a, b := lo, hi
	c := b - invPhi*(b-a)
	e := a + invPhi*(b-a)
	for range iters {
		if abs(c) < abs(e) {
			b = e
		} else {
			a = c
		}
		c = b - invPhi*(b-a)
		e = a + invPhi*(b-a)
	}
	t := (a + b) / 2
	scale := math.Max(1, math.Max(math.Abs(glo), math.Abs(ghi)))
	if v := abs(t); !math.IsNaN(v) && v <= 1e-9*scale {
		return t, true
	}
	return 0, false
}

// crosses reports a strict sign change between finite samples.
func crosses(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}
	return a != 0 && b != 0 && (a < 0) != (b < 0)
}
