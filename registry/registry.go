// Package registry is the immutable operation table. It validates
// arguments against each operation's descriptor, runs the handler and
// assembles the result.
package registry

import (
	"fmt"
	"regexp"
	"runtime/debug"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/njchilds90/geographer/diag"
	"github.com/njchilds90/geographer/result"
	"github.com/njchilds90/geographer/value"
)

// Settings bounds every computation run through the registry.
type Settings struct {
	Tolerance     value.Tolerance `json:"tolerance" yaml:"tolerance"`
	MaxNodes      int             `json:"max_expr_nodes" yaml:"max_expr_nodes"`
	MaxIterations int             `json:"max_iterations" yaml:"max_iterations"`
	Convergence   float64         `json:"convergence" yaml:"convergence"`
	Samples       int             `json:"samples" yaml:"samples"`
	MaxGrid       int             `json:"max_grid" yaml:"max_grid"`
}

func DefaultSettings() Settings {
	return Settings{
		Tolerance:     value.DefaultTolerance,
		MaxNodes:      value.DefaultMaxNodes,
		MaxIterations: 100,
		Convergence:   1e-12,
		Samples:       400,
		MaxGrid:       200,
	}
}

// Entry binds a descriptor to its handler.
type Entry struct {
	Descriptor
	Handler Handler
}

type Registry struct {
	entries  map[string]Entry
	ids      []string
	settings Settings
	log      *zap.Logger
}

type Option func(*Registry)

func WithSettings(s Settings) Option { return func(r *Registry) { r.settings = s } }

func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

var idPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// New validates every entry and builds the table. The registry is
// read-only afterwards and safe for concurrent use.
func New(entries []Entry, opts ...Option) (*Registry, error) {
	r := &Registry{
		entries:  make(map[string]Entry, len(entries)),
		settings: DefaultSettings(),
		log:      zap.NewNop(),
	}
	for _, o := range opts {
		o(r)
	}
	for _, e := range entries {
		if err := r.validate(e); err != nil {
			return nil, err
		}
		if _, dup := r.entries[e.ID]; dup {
			return nil, diag.Errorf(diag.Internal, "duplicate operation id %q", e.ID)
		}
		e.Descriptor = e.Descriptor.clone()
		r.entries[e.ID] = e
		r.ids = append(r.ids, e.ID)
	}
	sort.Strings(r.ids)
	return r, nil
}

func (r *Registry) validate(e Entry) error {
	fail := func(format string, args ...any) error {
		return diag.Errorf(diag.Internal, "operation %q: %s", e.ID, fmt.Sprintf(format, args...))
	}
	if !idPattern.MatchString(e.ID) {
		return fail("id must be snake_case")
	}
	if e.Handler == nil {
		return fail("no handler")
	}
	if e.Domain == "" || e.Label == "" {
		return fail("domain and label are required")
	}
	seen := map[string]bool{}
	for _, a := range e.Args {
		if seen[a.Name] {
			return fail("duplicate argument %q", a.Name)
		}
		seen[a.Name] = true
		if !validKinds[a.Kind] {
			return fail("argument %q has unknown kind %q", a.Name, a.Kind)
		}
		if a.Kind == Choice && len(a.Choices) == 0 {
			return fail("choice argument %q has no choices", a.Name)
		}
		if a.Required && a.Default != nil {
			return fail("required argument %q has a default", a.Name)
		}
		if a.Default != nil {
			calc := value.NewCalc(r.settings.Tolerance, r.settings.MaxNodes)
			if _, err := coerce(calc, a, a.Default); err != nil {
				return fail("default of %q: %v", a.Name, err)
			}
		}
	}
	for _, p := range e.Presets {
		calc := value.NewCalc(r.settings.Tolerance, r.settings.MaxNodes)
		if _, err := bind(calc, e.Descriptor, p.Args); err != nil {
			return fail("preset %q: %v", p.Name, err)
		}
	}
	return nil
}

func (r *Registry) Settings() Settings { return r.settings }

func (r *Registry) Len() int { return len(r.ids) }

// Lookup returns a copy of the descriptor for id.
func (r *Registry) Lookup(id string) (Descriptor, error) {
	e, ok := r.entries[id]
	if !ok {
		return Descriptor{}, diag.Errorf(diag.NotFound, "unknown operation %q", id)
	}
	return e.Descriptor.clone(), nil
}

// Descriptors returns copies of every descriptor, sorted by id.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.entries[id].Descriptor.clone())
	}
	return out
}

// Domains returns the distinct domains in sorted order.
func (r *Registry) Domains() []string {
	set := map[string]bool{}
	for _, e := range r.entries {
		set[e.Domain] = true
	}
	out := make([]string, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// bind validates raw arguments against d: unknown names are rejected,
// defaults fill the gaps and every value is coerced and constrained.
func bind(c *value.Calc, d Descriptor, raw map[string]any) (map[string]any, error) {
	for name := range raw {
		if _, ok := d.Arg(name); !ok {
			return nil, diag.Invalid("unknown argument %q", name)
		}
	}
	out := make(map[string]any, len(d.Args))
	for _, a := range d.Args {
		rv, ok := raw[a.Name]
		if !ok || rv == nil {
			if a.Required {
				return nil, diag.Invalid("missing required argument %q", a.Name)
			}
			if a.Default == nil {
				continue
			}
			rv = a.Default
		}
		v, err := coerce(c, a, rv)
		if err != nil {
			return nil, err
		}
		out[a.Name] = v
	}
	return out, nil
}

// Invoke runs one operation. An unknown id returns a nil result and a
// not_found error. Malformed arguments and internal faults return an
// error-status result for rendering together with the error. Degenerate
// inputs are a normal outcome: the result carries status error and the
// returned error is nil.
func (r *Registry) Invoke(id string, args map[string]any) (*result.Result, error) {
	start := time.Now()
	e, ok := r.entries[id]
	if !ok {
		r.log.Debug("unknown operation", zap.String("operation", id))
		return nil, diag.Errorf(diag.NotFound, "unknown operation %q", id)
	}
	calc := value.NewCalc(r.settings.Tolerance, r.settings.MaxNodes)
	asm := result.NewAssembler(id)
	bound, err := bind(calc, e.Descriptor, args)
	if err == nil {
		err = r.run(e, &Call{Assembler: asm, Calc: calc, Settings: r.settings, args: bound})
	}
	asm.Warn(calc.Fallbacks()...)
	if err != nil {
		asm.Fail(err)
	}
	res := asm.Build()
	r.logResult(res, start)
	switch diag.KindOf(err) {
	case diag.InvalidArgument, diag.Internal:
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

// run shields the caller from handler panics, which are programmer faults.
func (r *Registry) run(e Entry, call *Call) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("operation panicked",
				zap.String("operation", e.ID),
				zap.Any("panic", rec),
				zap.ByteString("stack", debug.Stack()))
			err = diag.Errorf(diag.Internal, "operation %s panicked: %v", e.ID, rec)
		}
	}()
	return e.Handler(call)
}

func (r *Registry) logResult(res *result.Result, start time.Time) {
	if ce := r.log.Check(zap.DebugLevel, "invoke"); ce != nil {
		ce.Write(
			zap.String("operation", res.Operation()),
			zap.String("status", string(res.Status())),
			zap.Duration("elapsed", time.Since(start)),
			zap.Int("warnings", len(res.Warnings())),
		)
	}
}
