// Package result assembles the immutable outcome of one operation
// invocation: status, payload, derivation steps, plot elements and
// diagnostics.
package result

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/njchilds90/geographer/derive"
	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/plot"
)

type Status string

const (
	OK      Status = "ok"
	Warning Status = "warning"
	Error   Status = "error"
)

// Result is immutable once built; accessors return copies.
type Result struct {
	status     Status
	operation  string
	payload    map[string]any
	derivation []derive.Step
	plot       []plot.Element
	warnings   []diag.Diagnostic
}

func (r *Result) Status() Status    { return r.status }
func (r *Result) Operation() string { return r.operation }

func (r *Result) Payload() map[string]any { return maps.Clone(r.payload) }

// Get returns one payload entry.
func (r *Result) Get(key string) (any, bool) {
	v, ok := r.payload[key]
	return v, ok
}

func (r *Result) Derivation() []derive.Step    { return slices.Clone(r.derivation) }
func (r *Result) PlotElements() []plot.Element { return slices.Clone(r.plot) }
func (r *Result) Warnings() []diag.Diagnostic  { return slices.Clone(r.warnings) }

// HasWarning reports whether a diagnostic of kind was recorded.
func (r *Result) HasWarning(kind diag.Kind) bool {
	return slices.ContainsFunc(r.warnings, func(d diag.Diagnostic) bool { return d.Kind == kind })
}

// HasStep reports whether the derivation contains a step labelled label.
func (r *Result) HasStep(label string) bool {
	return slices.ContainsFunc(r.derivation, func(s derive.Step) bool { return s.Label == label })
}

type wire struct {
	Status       Status            `json:"status" yaml:"status"`
	Operation    string            `json:"operation" yaml:"operation"`
	Payload      map[string]any    `json:"payload" yaml:"payload"`
	Derivation   []derive.Step     `json:"derivation" yaml:"derivation"`
	PlotElements []plot.Element    `json:"plot_elements" yaml:"plot_elements"`
	Warnings     []diag.Diagnostic `json:"warnings" yaml:"warnings"`
}

func (r *Result) wire() wire {
	w := wire{
		Status:       r.status,
		Operation:    r.operation,
		Payload:      r.payload,
		Derivation:   r.derivation,
		PlotElements: r.plot,
		Warnings:     r.warnings,
	}
	if w.Payload == nil {
		w.Payload = map[string]any{}
	}
	if w.Derivation == nil {
		w.Derivation = []derive.Step{}
	}
	if w.PlotElements == nil {
		w.PlotElements = []plot.Element{}
	}
	if w.Warnings == nil {
		w.Warnings = []diag.Diagnostic{}
	}
	return w
}

func (r *Result) MarshalJSON() ([]byte, error) { return json.Marshal(r.wire()) }

func (r *Result) MarshalYAML() (any, error) { return r.wire(), nil }

// ============================================================
// Assembler
// ============================================================

// Assembler accumulates the parts of a result. It is used by exactly one
// invocation and is not safe for concurrent use.
type Assembler struct {
	operation string
	payload   map[string]any
	diags     []diag.Diagnostic
	seen      map[diag.Diagnostic]bool

	Steps derive.Builder
	Plot  plot.Builder
}

func NewAssembler(operation string) *Assembler {
	return &Assembler{operation: operation, payload: map[string]any{}, seen: map[diag.Diagnostic]bool{}}
}

// Set stores a payload entry, replacing any previous value.
func (a *Assembler) Set(key string, v any) { a.payload[key] = v }

// Warn records diagnostics, skipping exact duplicates.
func (a *Assembler) Warn(ds ...diag.Diagnostic) {
	for _, d := range ds {
		if a.seen[d] {
			continue
		}
		a.seen[d] = true
		a.diags = append(a.diags, d)
	}
}

// Fail records err as a fatal diagnostic.
func (a *Assembler) Fail(err error) { a.Warn(diag.AsDiagnostic(err)) }

// Build derives the status: error if any diagnostic is fatal, warning if
// any diagnostic was recorded, ok otherwise.
func (a *Assembler) Build() *Result {
	status := OK
	for _, d := range a.diags {
		if d.Fatal {
			status = Error
			break
		}
		status = Warning
	}
	return &Result{
		status:     status,
		operation:  a.operation,
		payload:    maps.Clone(a.payload),
		derivation: a.Steps.Steps(),
		plot:       a.Plot.Elements(),
		warnings:   slices.Clone(a.diags),
	}
}
