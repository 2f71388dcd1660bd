// Package diag defines the error and diagnostic taxonomy shared by every
// geographer operation.
//
// Domain code returns *Error values; the registry turns them into
// Diagnostic entries on the result. Callers match kinds with errors.Is
// against the sentinels below.
package diag

import (
	"errors"
	"fmt"
)

// Kind classifies a diagnostic.
type Kind string

const (
	// InvalidArgument: a required argument is missing, malformed or out of range.
	InvalidArgument Kind = "invalid_argument"
	// Degenerate: the inputs form a degenerate configuration.
	Degenerate Kind = "degenerate"
	// SymbolicFallback: an exact path gave up and a numeric answer was used.
	SymbolicFallback Kind = "symbolic_fallback"
	// NotFound: the operation id is not registered.
	NotFound Kind = "not_found"
	// Internal marks programmer faults; never produced by valid input.
	Internal Kind = "internal"
)

// Diagnostic is one entry of a result's warnings list.
type Diagnostic struct {
	Kind   Kind   `json:"kind" yaml:"kind"`
	Detail string `json:"detail" yaml:"detail"`
	// Fatal diagnostics force the result status to error.
	Fatal bool `json:"-" yaml:"-"`
}

func (d Diagnostic) String() string {
	return string(d.Kind) + ": " + d.Detail
}

// Warning builds a non-fatal diagnostic.
func Warning(kind Kind, format string, args ...any) Diagnostic {
	return Diagnostic{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Error is a typed failure carrying a Kind.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

var (
	ErrInvalidArgument  = &Error{Kind: InvalidArgument}
	ErrDegenerate       = &Error{Kind: Degenerate}
	ErrSymbolicFallback = &Error{Kind: SymbolicFallback}
	ErrNotFound         = &Error{Kind: NotFound}
	ErrInternal         = &Error{Kind: Internal}
)

func (e *Error) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Detail
}

// Is matches any *Error of the same kind when target carries no detail,
// so errors.Is(err, diag.ErrDegenerate) works for every degenerate error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Detail == "" || t.Detail == e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

// Diagnostic converts the error into a fatal diagnostic.
func (e *Error) Diagnostic() Diagnostic {
	return Diagnostic{Kind: e.Kind, Detail: e.Detail, Fatal: true}
}

// Errorf builds an *Error. A %w verb in format is preserved for Unwrap;
// wrapped *Error values contribute their detail without the kind prefix.
func Errorf(kind Kind, format string, args ...any) *Error {
	args = append([]any(nil), args...)
	for i, a := range args {
		if e, ok := a.(*Error); ok {
			args[i] = detailOnly{e}
		}
	}
	err := fmt.Errorf(format, args...)
	return &Error{Kind: kind, Detail: err.Error(), Err: errors.Unwrap(err)}
}

type detailOnly struct{ e *Error }

func (d detailOnly) Error() string { return d.e.Detail }
func (d detailOnly) Unwrap() error { return d.e }

func Invalid(format string, args ...any) *Error { return Errorf(InvalidArgument, format, args...) }
func Degen(format string, args ...any) *Error   { return Errorf(Degenerate, format, args...) }

// KindOf extracts the Kind of err, defaulting to Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// AsDiagnostic converts any error into a fatal diagnostic.
func AsDiagnostic(err error) Diagnostic {
	var e *Error
	if errors.As(err, &e) {
		return e.Diagnostic()
	}
	return Diagnostic{Kind: Internal, Detail: err.Error(), Fatal: true}
}
