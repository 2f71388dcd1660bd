package geom

import (
	"strings"

	"github.com/njchilds90/geographer/symbolic"
	"github.com/njchilds90/geographer/value"
)

// term is coef * mono, mono being a monomial in x and y ("" for constants).
type term struct {
	coef value.Value
	mono string
}

// polyString renders sum(coef*mono) = 0. Exact coefficients go through the
// symbolic kernel so the output is canonical; approximate ones are printed
// with their float form.
func polyString(c *value.Calc, ts []term) string {
	exact := true
	for _, t := range ts {
		exact = exact && t.coef.IsExact()
	}
	if exact {
		parts := make([]symbolic.Expr, 0, len(ts))
		for _, t := range ts {
			if t.mono == "" {
				parts = append(parts, t.coef.Expr())
				continue
			}
			parts = append(parts, symbolic.MulOf(t.coef.Expr(), symbolic.MustParse(t.mono)))
		}
		return symbolic.AddOf(parts...).String() + " = 0"
	}
	var b strings.Builder
	for _, t := range ts {
		if c.IsZero(t.coef) {
			continue
		}
		f := t.coef.Float()
		neg := f < 0
		mag := value.Approx(f)
		if neg {
			mag = value.Approx(-f)
		}
		switch {
		case b.Len() == 0 && neg:
			b.WriteString("-")
		case b.Len() > 0 && neg:
			b.WriteString(" - ")
		case b.Len() > 0:
			b.WriteString(" + ")
		}
		if t.mono == "" || !c.Equal(mag, value.Int(1)) {
			b.WriteString(mag.String())
			if t.mono != "" {
				b.WriteString("*")
			}
		}
		b.WriteString(t.mono)
	}
	if b.Len() == 0 {
		b.WriteString("0")
	}
	return b.String() + " = 0"
}
