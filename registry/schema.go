package registry

import "encoding/json"

// Schema is the machine-readable catalogue a UI builds its widgets from.
type Schema struct {
	Version    int          `json:"version"`
	Kinds      []Kind       `json:"kinds"`
	Domains    []string     `json:"domains"`
	Operations []Descriptor `json:"operations"`
}

// SchemaVersion changes whenever the descriptor layout does.
const SchemaVersion = 1

func (r *Registry) Schema() Schema {
	return Schema{
		Version: SchemaVersion,
		Kinds: []Kind{
			Number, Integer, Bool, String, Choice, PointArg, PointsArg,
			LineArg, CircleArg, MatrixArg, Expression, Interval,
		},
		Domains:    r.Domains(),
		Operations: r.Descriptors(),
	}
}

// SchemaJSON renders Schema as indented JSON.
func (r *Registry) SchemaJSON() ([]byte, error) {
	return json.MarshalIndent(r.Schema(), "", "  ")
}
