package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/njchilds90/geographer"
	"github.com/njchilds90/geographer/registry"
	"github.com/njchilds90/geographer/result"
)

func newTable(w io.Writer, header ...any) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row(header))
	return t
}

// encode writes v as JSON or YAML; ok is false for the table format.
func encode(w io.Writer, format string, v any) (ok bool, err error) {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return true, enc.Encode(v)
	}
	return false, nil
}

// cell renders a payload value on one line.
func cell(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func argSummary(d registry.Descriptor) string {
	names := make([]string, len(d.Args))
	for i, a := range d.Args {
		names[i] = a.Name
		if a.Required {
			names[i] += "*"
		}
	}
	return strings.Join(names, ", ")
}

func renderDescriptors(w io.Writer, format string, ds []registry.Descriptor) error {
	if ok, err := encode(w, format, ds); ok {
		return err
	}
	t := newTable(w, "ID", "DOMAIN", "LABEL", "ARGS", "PRESETS")
	for _, d := range ds {
		t.AppendRow(table.Row{d.ID, d.Domain, d.Label, argSummary(d), len(d.Presets)})
	}
	t.Render()
	return nil
}

func renderDescriptor(w io.Writer, format string, d registry.Descriptor) error {
	if ok, err := encode(w, format, d); ok {
		return err
	}
	fmt.Fprintf(w, "%s (%s)\n%s\n", d.ID, d.Domain, d.Label)
	if d.Description != "" {
		fmt.Fprintln(w, d.Description)
	}
	t := newTable(w, "ARG", "KIND", "REQUIRED", "DEFAULT", "CONSTRAINTS", "HELP")
	for _, a := range d.Args {
		def := ""
		if a.Default != nil {
			def = cell(a.Default)
		}
		var cons []string
		for _, c := range a.Constraints {
			cons = append(cons, string(c))
		}
		if len(a.Choices) > 0 {
			cons = append(cons, "one of "+strings.Join(a.Choices, "|"))
		}
		t.AppendRow(table.Row{a.Name, a.Kind, a.Required, def, strings.Join(cons, ", "), a.Help})
	}
	t.Render()
	for _, p := range d.Presets {
		fmt.Fprintf(w, "preset %q: %s\n", p.Name, cell(p.Args))
	}
	return nil
}

func renderResponse(w io.Writer, format string, resp geographer.Response) error {
	if ok, err := encode(w, format, resp); ok {
		return err
	}
	if resp.Error != nil {
		fmt.Fprintf(w, "error (%s): %s\n", resp.Error.Kind, resp.Error.Message)
	}
	if resp.Result != nil {
		renderResult(w, resp.Result)
	}
	return nil
}

func renderResult(w io.Writer, res *result.Result) {
	fmt.Fprintf(w, "%s: %s\n", res.Operation(), res.Status())
	payload := res.Payload()
	if len(payload) > 0 {
		keys := make([]string, 0, len(payload))
		for k := range payload {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		t := newTable(w, "KEY", "VALUE")
		for _, k := range keys {
			t.AppendRow(table.Row{k, cell(payload[k])})
		}
		t.Render()
	}
	for i, s := range res.Derivation() {
		fmt.Fprintf(w, "%2d. %s: %s\n", i+1, s.Label, s.Text)
	}
	for _, d := range res.Warnings() {
		fmt.Fprintf(w, "! %s\n", d)
	}
	if n := len(res.PlotElements()); n > 0 {
		fmt.Fprintf(w, "(%d plot elements; use -o json to see them)\n", n)
	}
}
