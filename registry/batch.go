package registry

import (
	"context"
	"maps"

	"golang.org/x/sync/errgroup"

	"github.com/njchilds90/geographer/result"
)

// Request names one invocation in a batch.
type Request struct {
	ID   string         `json:"operation" yaml:"operation"`
	Args map[string]any `json:"args,omitempty" yaml:"args,omitempty"`
	// Name is a caller label, such as the preset name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Outcome pairs a request with what Invoke returned for it.
type Outcome struct {
	Request Request
	Result  *result.Result
	Err     error
}

// Batch invokes every request with at most limit running at once
// (limit <= 0 means unbounded). Outcomes keep the order of reqs. Per-request
// failures are reported in the outcome; only cancellation of ctx stops the
// batch, in which case the requests not yet started carry ctx's error.
func (r *Registry) Batch(ctx context.Context, reqs []Request, limit int) ([]Outcome, error) {
	out := make([]Outcome, len(reqs))
	eg, egCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		eg.SetLimit(limit)
	}
	for i, req := range reqs {
		out[i].Request = req
		if err := egCtx.Err(); err != nil {
			out[i].Err = err
			continue
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				out[i].Err = err
				return nil
			}
			out[i].Result, out[i].Err = r.Invoke(req.ID, req.Args)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return out, err
	}
	return out, ctx.Err()
}

// PresetRequests lists every preset of every operation in id order.
func (r *Registry) PresetRequests() []Request {
	var reqs []Request
	for _, id := range r.ids {
		for _, p := range r.entries[id].Presets {
			reqs = append(reqs, Request{ID: id, Args: maps.Clone(p.Args), Name: p.Name})
		}
	}
	return reqs
}

// RunPresets evaluates every preset concurrently.
func (r *Registry) RunPresets(ctx context.Context, limit int) ([]Outcome, error) {
	return r.Batch(ctx, r.PresetRequests(), limit)
}
