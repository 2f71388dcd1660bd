// Package derive records the human-readable derivation of a computation as
// an ordered list of labelled steps. Steps are append-only.
package derive

import "fmt"

type Step struct {
	Label string `json:"label" yaml:"label"`
	Text  string `json:"text" yaml:"text"`
}

// Builder is the zero-value-ready step recorder used by one invocation.
type Builder struct {
	steps []Step
}

func (b *Builder) Add(label, text string) {
	b.steps = append(b.steps, Step{Label: label, Text: text})
}

func (b *Builder) Addf(label, format string, args ...any) {
	b.Add(label, fmt.Sprintf(format, args...))
}

func (b *Builder) Len() int { return len(b.steps) }

// Steps returns a copy; later Adds do not affect it.
func (b *Builder) Steps() []Step {
	return append([]Step(nil), b.steps...)
}

// Has reports whether a step with label exists.
func (b *Builder) Has(label string) bool {
	for _, s := range b.steps {
		if s.Label == label {
			return true
		}
	}
	return false
}
