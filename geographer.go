// Package geographer is a deterministic computational geometry and algebra
// engine. Every operation is addressed by id, takes JSON-shaped arguments
// and returns a renderer-agnostic result: payload, derivation steps, plot
// elements and diagnostics.
//
// Design goals:
//   - Exact values where the input allows them, float64 otherwise
//   - Deterministic, idempotent results with stable output
//   - No I/O in the engine; callers choose CLI, HTTP or embedding
//   - Bounded work: every numeric fallback has an iteration or sample limit
package geographer

import (
	"fmt"
	"sync"

	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/ops"
	"github.com/njchilds90/geographer/registry"
	"github.com/njchilds90/geographer/result"
)

// New builds a registry holding the full operation catalogue.
func New(opts ...registry.Option) (*registry.Registry, error) {
	return registry.New(ops.Catalog(), opts...)
}

// Default returns the process-wide registry with default settings. It is
// built on first use and never modified afterwards.
var Default = sync.OnceValue(func() *registry.Registry {
	r, err := New()
	if err != nil {
		panic(fmt.Sprintf("geographer: built-in catalogue is invalid: %v", err))
	}
	return r
})

// Invoke runs one operation on the default registry.
func Invoke(id string, args map[string]any) (*result.Result, error) {
	return Default().Invoke(id, args)
}

// Operations lists the descriptors of the default registry, sorted by id.
func Operations() []registry.Descriptor { return Default().Descriptors() }

// ============================================================
// Request / Response envelope
// ============================================================

// Response is the wire envelope for one request. Result is present for
// every known operation, even when Error is set, so clients can render
// the failed derivation.
type Response struct {
	Result *result.Result `json:"result,omitempty" yaml:"result,omitempty"`
	Error  *Failure       `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failure is the serialised form of a returned error.
type Failure struct {
	Kind    diag.Kind `json:"kind" yaml:"kind"`
	Message string    `json:"message" yaml:"message"`
}

// Handle runs req on r and wraps the outcome in a Response.
func Handle(r *registry.Registry, req registry.Request) Response {
	res, err := r.Invoke(req.ID, req.Args)
	return Envelope(res, err)
}

// Envelope wraps an Invoke outcome.
func Envelope(res *result.Result, err error) Response {
	out := Response{Result: res}
	if err != nil {
		out.Error = &Failure{Kind: diag.KindOf(err), Message: err.Error()}
	}
	return out
}
