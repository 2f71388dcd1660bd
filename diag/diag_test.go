package diag_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/njchilds90/geographer/diag"
)

func TestErrorIsMatchesKind(t *testing.T) {
	err := diag.Degen("collinear points %v", []int{1, 2})
	wrapped := fmt.Errorf("triangle: %w", err)

	assert.ErrorIs(t, wrapped, diag.ErrDegenerate)
	assert.NotErrorIs(t, wrapped, diag.ErrInvalidArgument)
	assert.Equal(t, diag.Degenerate, diag.KindOf(wrapped))
	assert.Equal(t, "degenerate: collinear points [1 2]", err.Error())
}

func TestErrorfKeepsWrappedCause(t *testing.T) {
	err := diag.Errorf(diag.InvalidArgument, "read args: %w", io.EOF)
	assert.ErrorIs(t, err, io.EOF)
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)
}

func TestAsDiagnostic(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want diag.Diagnostic
	}{
		{"typed", diag.Invalid("missing a"), diag.Diagnostic{Kind: diag.InvalidArgument, Detail: "missing a", Fatal: true}},
		{"plain", errors.New("boom"), diag.Diagnostic{Kind: diag.Internal, Detail: "boom", Fatal: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, diag.AsDiagnostic(tt.err))
		})
	}
}

func TestWarningIsNotFatal(t *testing.T) {
	w := diag.Warning(diag.SymbolicFallback, "used %d samples", 400)
	assert.False(t, w.Fatal)
	assert.Equal(t, "symbolic_fallback: used 400 samples", w.String())
}

func TestErrorfNestsDetailWithoutKind(t *testing.T) {
	inner := diag.Degen("points coincide")
	err := diag.Errorf(diag.Degenerate, "argument %q: %w", "line", inner)
	assert.Equal(t, `degenerate: argument "line": points coincide`, err.Error())
	assert.ErrorIs(t, err, diag.ErrDegenerate)
	assert.True(t, errors.Is(err, inner))
}
