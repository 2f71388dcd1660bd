package ops

import (
	"math"

	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/geom"
	"github.com/njchilds90/geographer/plot"
	"github.com/njchilds90/geographer/registry"
	"github.com/njchilds90/geographer/value"
)

// ============================================================
// Matrices
// ============================================================

// illConditioned is the 2-norm condition number above which an inverse is
// reported as numerically fragile.
const illConditioned = 1e12

func matrixOps() []registry.Entry {
	m := func(name string) registry.ArgSpec {
		return required(name, registry.MatrixArg, "2x2 or 3x3 matrix as a list of rows")
	}
	pair := map[string]any{
		"a": []any{[]any{1, 2}, []any{3, 4}},
		"b": []any{[]any{0, 1}, []any{1, 0}},
	}
	return []registry.Entry{
		{
			Descriptor: registry.Descriptor{
				ID: "matrix_add", Domain: Matrices, Label: "Matrix addition",
				Args:    []registry.ArgSpec{m("a"), m("b")},
				Presets: []registry.Preset{preset("2x2", pair)},
			},
			Handler: matrixAdd,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "matrix_multiply", Domain: Matrices, Label: "Matrix product",
				Args:    []registry.ArgSpec{m("a"), m("b")},
				Presets: []registry.Preset{preset("2x2", pair)},
			},
			Handler: matrixMultiply,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "matrix_determinant", Domain: Matrices, Label: "Determinant",
				Args: []registry.ArgSpec{m("matrix")},
				Presets: []registry.Preset{
					preset("2x2", map[string]any{"matrix": []any{[]any{4, 7}, []any{2, 6}}}),
					preset("3x3", map[string]any{"matrix": []any{[]any{2, 0, 1}, []any{1, 3, 2}, []any{1, 1, 1}}}),
				},
			},
			Handler: matrixDeterminant,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "matrix_inverse", Domain: Matrices, Label: "Inverse",
				Args: []registry.ArgSpec{m("matrix")},
				Presets: []registry.Preset{
					preset("2x2", map[string]any{"matrix": []any{[]any{4, 7}, []any{2, 6}}}),
					preset("singular", map[string]any{"matrix": []any{[]any{1, 2}, []any{2, 4}}}),
				},
			},
			Handler: matrixInverse,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "eigen_analysis", Domain: Matrices, Label: "Eigenvalues and eigenvectors",
				Args: []registry.ArgSpec{m("matrix")},
				Presets: []registry.Preset{
					preset("symmetric", map[string]any{"matrix": []any{[]any{2, 1}, []any{1, 2}}}),
					preset("rotation", map[string]any{"matrix": []any{[]any{0, -1}, []any{1, 0}}}),
					preset("3x3", map[string]any{"matrix": []any{[]any{2, 0, 0}, []any{0, 3, 4}, []any{0, 4, 9}}}),
				},
			},
			Handler: eigenAnalysis,
		},
		{
			Descriptor: registry.Descriptor{
				ID: "matrix_transform", Domain: Matrices, Label: "Matrix as a transformation",
				Description: "Applies the matrix to the unit circle or a grid; 3x3 matrices act on homogeneous coordinates.",
				Args: []registry.ArgSpec{
					m("matrix"),
					{Name: "shape", Kind: registry.Choice, Default: "unit_circle", Choices: []string{"unit_circle", "grid"}, Help: "geometry to transform"},
				},
				Presets: []registry.Preset{
					preset("shear", map[string]any{"matrix": []any{[]any{1, 1}, []any{0, 1}}}),
					preset("grid", map[string]any{"matrix": []any{[]any{2, 0}, []any{0, "1/2"}}, "shape": "grid"}),
				},
			},
			Handler: matrixTransform,
		},
	}
}

func matrixAdd(call *registry.Call) error {
	a, b := call.Matrix("a"), call.Matrix("b")
	sum, err := geom.MatAdd(call.Calc, a, b)
	if err != nil {
		return err
	}
	call.Step("add", "%s + %s = %s", a, b, sum)
	call.Set("result", sum)
	return nil
}

func matrixMultiply(call *registry.Call) error {
	c := call.Calc
	a, b := call.Matrix("a"), call.Matrix("b")
	prod, err := geom.MatMul(c, a, b)
	if err != nil {
		return err
	}
	call.Step("multiply", "entry (i, j) is row i of A dotted with column j of B")
	call.Step("product", "%s", prod)
	call.Set("result", prod)
	call.Set("determinant", prod.Det(c))
	return nil
}

func matrixDeterminant(call *registry.Call) error {
	c := call.Calc
	a := call.Matrix("matrix")
	det := a.Det(c)
	if a.N() == 2 {
		call.Step("formula", "ad - bc = %s*%s - %s*%s", a.At(0, 0), a.At(1, 1), a.At(0, 1), a.At(1, 0))
	} else {
		call.Step("formula", "cofactor expansion along the first row")
	}
	call.Step("determinant", "det = %s", value.Describe(det))
	call.Set("determinant", det)
	call.Set("singular", a.IsSingular(c))
	call.Set("trace", a.Trace(c))
	if a.IsSingular(c) {
		call.Warn(diag.Warning(diag.Degenerate, "determinant is zero; the matrix is singular"))
	}
	if a.N() == 2 {
		plotParallelogram(call, a)
	}
	return nil
}

// plotParallelogram draws the image of the unit square.
func plotParallelogram(call *registry.Call, a geom.Matrix) {
	c := call.Calc
	sq := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(0, 1)}
	img, err := geom.TransformAll(c, a, sq)
	if err != nil {
		return
	}
	call.Plot.Polygon(sq, plot.Color(grey), plot.Dashed())
	call.Plot.Polygon(img, plot.Color(blue), plot.Fill(blue, 0.2))
}

func matrixInverse(call *registry.Call) error {
	c := call.Calc
	a := call.Matrix("matrix")
	det := a.Det(c)
	call.Step("determinant", "det = %s", value.Describe(det))
	inv, err := a.Inverse(c)
	if err != nil {
		return err
	}
	call.Step("adjugate", "A^-1 = adj(A) / det")
	call.Step("inverse", "%s", inv)
	cond := a.Condition()
	call.Set("inverse", inv)
	call.Set("determinant", det)
	if !math.IsInf(cond, 0) && !math.IsNaN(cond) {
		call.Set("condition", value.Approx(cond))
	}
	if cond > illConditioned {
		call.Warn(diag.Warning(diag.Degenerate, "matrix is ill-conditioned (condition number %.3g)", cond))
	}
	if check, err := geom.MatMul(c, a, inv); err == nil {
		call.Step("check", "A * A^-1 = %s", check)
	}
	return nil
}

func eigenAnalysis(call *registry.Call) error {
	c := call.Calc
	a := call.Matrix("matrix")
	if a.N() == 2 {
		tr, det := a.Trace(c), a.Det(c)
		call.Step("characteristic polynomial", "lambda^2 - (%s)lambda + (%s) = 0", tr, det)
	}
	eig, err := a.EigenDecompose(c)
	if err != nil {
		return err
	}
	if eig.Exact {
		call.Step("solve", "the characteristic quadratic solves exactly")
	} else {
		call.Step("solve", "eigenvalues computed numerically")
		call.Warn(diag.Warning(diag.SymbolicFallback, "eigenvalues were computed numerically"))
	}
	if eig.Complex {
		call.Warn(diag.Warning(diag.Degenerate, "the spectrum is complex; complex pairs carry no real eigenvector"))
	}
	origin := geom.Pt(0, 0)
	for i, p := range eig.Pairs {
		if p.Imag != 0 {
			call.Step("eigenvalue", "lambda%d = %s %+.6g i", i+1, p.Value, p.Imag)
			continue
		}
		call.Step("eigenvalue", "lambda%d = %s with eigenvector %v", i+1, value.Describe(p.Value), p.Vector)
		if a.N() == 2 && len(p.Vector) == 2 {
			call.Plot.Vector(origin, p.Vector[0], p.Vector[1], plot.Color(red), plot.Label("v"+string(rune('1'+i))))
		}
	}
	call.Set("eigen", eig)
	call.Set("trace", a.Trace(c))
	call.Set("determinant", a.Det(c))
	return nil
}

func applyFloat(a geom.Matrix, x, y float64) (float64, float64) {
	f := func(i, j int) float64 { return a.At(i, j).Float() }
	if a.N() == 2 {
		return f(0, 0)*x + f(0, 1)*y, f(1, 0)*x + f(1, 1)*y
	}
	w := f(2, 0)*x + f(2, 1)*y + f(2, 2)
	if math.Abs(w) < 1e-12 {
		return math.NaN(), math.NaN()
	}
	return (f(0, 0)*x + f(0, 1)*y + f(0, 2)) / w, (f(1, 0)*x + f(1, 1)*y + f(1, 2)) / w
}

func matrixTransform(call *registry.Call) error {
	c := call.Calc
	a := call.Matrix("matrix")
	n := call.Settings.Samples
	var curves [][2][]float64
	switch call.Text("shape") {
	case "grid":
		for i := 0; i <= 4; i++ {
			k := -1 + float64(i)/2
			var hx, hy, vx, vy []float64
			for j := 0; j <= 10; j++ {
				t := -1 + float64(j)/5
				hx, hy = append(hx, t), append(hy, k)
				vx, vy = append(vx, k), append(vy, t)
			}
			curves = append(curves, [2][]float64{hx, hy}, [2][]float64{vx, vy})
		}
	default:
		var xs, ys []float64
		for i := 0; i <= n; i++ {
			t := 2 * math.Pi * float64(i) / float64(n)
			xs, ys = append(xs, math.Cos(t)), append(ys, math.Sin(t))
		}
		curves = append(curves, [2][]float64{xs, ys})
	}
	for _, cv := range curves {
		call.Plot.Curve(cv[0], cv[1], plot.Color(grey), plot.Dotted(), plot.Label("original"))
		tx := make([]float64, len(cv[0]))
		ty := make([]float64, len(cv[0]))
		for i := range cv[0] {
			tx[i], ty[i] = applyFloat(a, cv[0][i], cv[1][i])
		}
		call.Plot.Curve(tx, ty, plot.Color(blue), plot.Label("transformed"))
	}

	det := a.Det(c)
	call.Set("determinant", det)
	if a.N() == 2 {
		e1, _ := a.ApplyPoint(c, geom.Pt(1, 0))
		e2, _ := a.ApplyPoint(c, geom.Pt(0, 1))
		call.Step("basis", "e1 -> %s, e2 -> %s", e1, e2)
		call.Step("area", "areas scale by |det| = %s", c.Abs(det))
		call.Set("image_of_basis", []geom.Point{e1, e2})
		call.Set("area_scale", c.Abs(det))
		call.Plot.Vector(geom.Pt(0, 0), e1.X, e1.Y, plot.Color(red), plot.Label("Ae1"))
		call.Plot.Vector(geom.Pt(0, 0), e2.X, e2.Y, plot.Color(green), plot.Label("Ae2"))
		if a.IsSingular(c) {
			call.Warn(diag.Warning(diag.Degenerate, "the map is singular; the plane collapses onto a line or point"))
		}
	} else {
		call.Step("homogeneous", "(x, y) -> (x', y') with [x' y' w]^T = M [x y 1]^T divided by w")
		o, err := a.ApplyPoint(c, geom.Pt(0, 0))
		if err != nil {
			call.Warn(diag.Warning(diag.Degenerate, "the origin maps to infinity"))
		} else {
			call.Set("image_of_origin", o)
		}
	}
	return nil
}
