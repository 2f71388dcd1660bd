package registry

import (
	"maps"
	"slices"
)

// Kind is the type of an operation argument.
type Kind string

const (
	Number     Kind = "number"
	Integer    Kind = "integer"
	Bool       Kind = "bool"
	String     Kind = "string"
	Choice     Kind = "choice"
	PointArg   Kind = "point"
	PointsArg  Kind = "points"
	LineArg    Kind = "line"
	CircleArg  Kind = "circle"
	MatrixArg  Kind = "matrix"
	Expression Kind = "expression"
	Interval   Kind = "interval"
)

var validKinds = map[Kind]bool{
	Number: true, Integer: true, Bool: true, String: true, Choice: true, PointArg: true, PointsArg: true,
	LineArg: true, CircleArg: true, MatrixArg: true, Expression: true, Interval: true,
}

// Constraint restricts numeric arguments.
type Constraint string

const (
	Positive    Constraint = "positive"
	NonNegative Constraint = "non_negative"
	NonZero     Constraint = "non_zero"
)

// ArgSpec describes one argument. Default is used when the argument is
// absent; it is written in the same form a caller would send.
type ArgSpec struct {
	Name        string       `json:"name" yaml:"name"`
	Kind        Kind         `json:"kind" yaml:"kind"`
	Required    bool         `json:"required" yaml:"required"`
	Default     any          `json:"default,omitempty" yaml:"default,omitempty"`
	Constraints []Constraint `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	Min         *float64     `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *float64     `json:"max,omitempty" yaml:"max,omitempty"`
	Choices     []string     `json:"choices,omitempty" yaml:"choices,omitempty"`
	Help        string       `json:"help,omitempty" yaml:"help,omitempty"`
}

// Preset is a named argument set that exercises an operation.
type Preset struct {
	Name string         `json:"name" yaml:"name"`
	Args map[string]any `json:"args" yaml:"args"`
}

// Descriptor is the immutable public description of an operation.
type Descriptor struct {
	ID          string    `json:"id" yaml:"id"`
	Domain      string    `json:"domain" yaml:"domain"`
	Label       string    `json:"label" yaml:"label"`
	Description string    `json:"description" yaml:"description"`
	Args        []ArgSpec `json:"args" yaml:"args"`
	Presets     []Preset  `json:"presets,omitempty" yaml:"presets,omitempty"`
}

// Arg looks up an argument spec by name.
func (d Descriptor) Arg(name string) (ArgSpec, bool) {
	for _, a := range d.Args {
		if a.Name == name {
			return a, true
		}
	}
	return ArgSpec{}, false
}

// clone copies every slice and map so callers cannot reach the registry's
// copy. Defaults and preset values are treated as read-only JSON values.
func (d Descriptor) clone() Descriptor {
	out := d
	out.Args = make([]ArgSpec, len(d.Args))
	for i, a := range d.Args {
		a.Constraints = slices.Clone(a.Constraints)
		a.Choices = slices.Clone(a.Choices)
		if a.Min != nil {
			m := *a.Min
			a.Min = &m
		}
		if a.Max != nil {
			m := *a.Max
			a.Max = &m
		}
		out.Args[i] = a
	}
	out.Presets = make([]Preset, len(d.Presets))
	for i, p := range d.Presets {
		out.Presets[i] = Preset{Name: p.Name, Args: maps.Clone(p.Args)}
	}
	return out
}

// Float is a helper for ArgSpec.Min and ArgSpec.Max literals.
func Float(f float64) *float64 { return &f }
