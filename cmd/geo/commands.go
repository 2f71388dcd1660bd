package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/njchilds90/geographer"
	"github.com/njchilds90/geographer/internal/server"
	"github.com/njchilds90/geographer/registry"
)

func newOpsCmd(a *app) *cobra.Command {
	var domain string
	cmd := &cobra.Command{
		Use:   "ops",
		Short: "List operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var ds []registry.Descriptor
			for _, d := range a.reg.Descriptors() {
				if domain == "" || d.Domain == domain {
					ds = append(ds, d)
				}
			}
			if len(ds) == 0 {
				return fmt.Errorf("no operations in domain %q (domains: %s)", domain, strings.Join(a.reg.Domains(), ", "))
			}
			return renderDescriptors(cmd.OutOrStdout(), a.cfg.Output, ds)
		},
	}
	cmd.Flags().StringVar(&domain, "domain", "", "only list this domain")
	return cmd
}

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <operation>",
		Short: "Show an operation's arguments and presets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.reg.Lookup(args[0])
			if err != nil {
				return err
			}
			return renderDescriptor(cmd.OutOrStdout(), a.cfg.Output, d)
		},
	}
}

// parseArgs merges a JSON object with key=value pairs. Values that parse
// as JSON are used as such; anything else is taken as a string, so
// --arg expression=x^2 needs no quoting.
func parseArgs(object string, pairs []string) (map[string]any, error) {
	out := map[string]any{}
	if object != "" {
		dec := json.NewDecoder(strings.NewReader(object))
		dec.UseNumber()
		if err := dec.Decode(&out); err != nil {
			return nil, fmt.Errorf("--args: %w", err)
		}
	}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("--arg %q: want key=value", p)
		}
		var parsed any
		dec := json.NewDecoder(strings.NewReader(v))
		dec.UseNumber()
		if err := dec.Decode(&parsed); err != nil || dec.More() {
			parsed = v
		}
		out[k] = parsed
	}
	return out, nil
}

func newInvokeCmd(a *app) *cobra.Command {
	var (
		object string
		pairs  []string
		preset string
	)
	cmd := &cobra.Command{
		Use:   "invoke <operation>",
		Short: "Run one operation",
		Example: `  geo invoke circle_intersection --args '{"c1":{"center":[0,0],"radius":5},"c2":{"center":[8,0],"radius":5}}'
  geo invoke critical_points --arg expression='x^3 - 3*x'
  geo invoke triangle_summary --preset 3-4-5 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, argv []string) error {
			id := argv[0]
			args := map[string]any{}
			if preset != "" {
				d, err := a.reg.Lookup(id)
				if err != nil {
					return err
				}
				found := false
				for _, p := range d.Presets {
					if p.Name == preset {
						maps.Copy(args, p.Args)
						found = true
					}
				}
				if !found {
					return fmt.Errorf("operation %s has no preset %q", id, preset)
				}
			}
			extra, err := parseArgs(object, pairs)
			if err != nil {
				return err
			}
			maps.Copy(args, extra)
			resp := geographer.Handle(a.reg, registry.Request{ID: id, Args: args})
			if err := renderResponse(cmd.OutOrStdout(), a.cfg.Output, resp); err != nil {
				return err
			}
			if resp.Error != nil {
				return fmt.Errorf("%s: %s", id, resp.Error.Kind)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&object, "args", "", "arguments as a JSON object")
	cmd.Flags().StringArrayVar(&pairs, "arg", nil, "one argument as key=value (repeatable)")
	cmd.Flags().StringVar(&preset, "preset", "", "start from a named preset")
	return cmd
}

func newPresetsCmd(a *app) *cobra.Command {
	var domain string
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Run every preset concurrently",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var reqs []registry.Request
			for _, req := range a.reg.PresetRequests() {
				d, _ := a.reg.Lookup(req.ID)
				if domain == "" || d.Domain == domain {
					reqs = append(reqs, req)
				}
			}
			out, err := a.reg.Batch(cmd.Context(), reqs, a.cfg.Server.BatchLimit)
			if err != nil {
				return err
			}
			type row struct {
				Request  registry.Request    `json:"request" yaml:"request"`
				Response geographer.Response `json:"response" yaml:"response"`
			}
			rows := make([]row, len(out))
			for i, o := range out {
				rows[i] = row{o.Request, geographer.Envelope(o.Result, o.Err)}
			}
			if ok, err := encode(cmd.OutOrStdout(), a.cfg.Output, rows); ok {
				return err
			}
			t := newTable(cmd.OutOrStdout(), "OPERATION", "PRESET", "STATUS", "WARNINGS")
			for _, r := range rows {
				status, warnings := "-", ""
				if res := r.Response.Result; res != nil {
					status = string(res.Status())
					var ws []string
					for _, w := range res.Warnings() {
						ws = append(ws, string(w.Kind))
					}
					warnings = strings.Join(ws, ", ")
				}
				if r.Response.Error != nil {
					warnings = r.Response.Error.Message
				}
				t.AppendRow(table.Row{r.Request.ID, r.Request.Name, status, warnings})
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&domain, "domain", "", "only run presets of this domain")
	return cmd
}

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the machine-readable operation schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Output == "yaml" {
				_, err := encode(cmd.OutOrStdout(), "yaml", a.reg.Schema())
				return err
			}
			b, err := a.reg.SchemaJSON()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return err
		},
	}
}

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve operations over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return server.New(a.reg, a.cfg.Server, a.log).Serve(cmd.Context())
		},
	}
	cmd.Flags().String("server-addr", ":8080", "listen address")
	cmd.Flags().Int("server-batch-limit", 8, "concurrent invocations per batch")
	return cmd
}
