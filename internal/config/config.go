// Package config loads geographer settings. Sources are layered, lowest
// precedence first: built-in defaults, an optional YAML file, GEOGRAPHER_*
// environment variables and explicitly set command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/njchilds90/geographer/registry"
	"github.com/njchilds90/geographer/value"
)

const (
	EnvPrefix   = "GEOGRAPHER_"
	DefaultFile = "geographer.yaml"
)

// Engine bounds every computation.
type Engine struct {
	Tolerance     float64 `koanf:"tolerance"`
	Relative      bool    `koanf:"relative"`
	MaxExprNodes  int     `koanf:"max_expr_nodes"`
	MaxIterations int     `koanf:"max_iterations"`
	Convergence   float64 `koanf:"convergence"`
	Samples       int     `koanf:"samples"`
	MaxGrid       int     `koanf:"max_grid"`
}

type Log struct {
	Level string `koanf:"level"`
	// Format is json or console.
	Format string `koanf:"format"`
}

type Server struct {
	Addr         string        `koanf:"addr"`
	MaxBodyBytes int64         `koanf:"max_body_bytes"`
	BatchLimit   int           `koanf:"batch_limit"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

type Config struct {
	Engine Engine `koanf:"engine"`
	Log    Log    `koanf:"log"`
	Server Server `koanf:"server"`
	// Output is the CLI format: table, json or yaml.
	Output string `koanf:"output"`
}

func defaults() map[string]any {
	s := registry.DefaultSettings()
	return map[string]any{
		"engine.tolerance":      s.Tolerance.Eps,
		"engine.relative":       s.Tolerance.Relative,
		"engine.max_expr_nodes": s.MaxNodes,
		"engine.max_iterations": s.MaxIterations,
		"engine.convergence":    s.Convergence,
		"engine.samples":        s.Samples,
		"engine.max_grid":       s.MaxGrid,
		"log.level":             "info",
		"log.format":            "json",
		"server.addr":           ":8080",
		"server.max_body_bytes": 1 << 20,
		"server.batch_limit":    8,
		"server.read_timeout":   "15s",
		"server.write_timeout":  "30s",
		"output":                "table",
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := Load("", nil)
	if err != nil {
		panic(fmt.Sprintf("config: built-in defaults are invalid: %v", err))
	}
	return cfg
}

// Load reads the layered configuration. path may be empty, in which case
// geographer.yaml in the working directory is used when present. Only
// flags the user actually set override lower layers; flag names map to
// keys by replacing '-' with '_' and a leading section, so --engine-samples
// sets engine.samples.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	// GEOGRAPHER_ENGINE__MAX_GRID -> engine.max_grid
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return flagKey(f.Name), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var sections = []string{"engine", "log", "server"}

func flagKey(name string) string {
	key := strings.ReplaceAll(name, "-", "_")
	for _, s := range sections {
		if rest, ok := strings.CutPrefix(key, s+"_"); ok {
			return s + "." + rest
		}
	}
	return key
}

// Validate rejects settings that would make every computation fail.
func (c *Config) Validate() error {
	e := c.Engine
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	check(e.Tolerance > 0 && e.Tolerance < 1, "engine.tolerance must be in (0, 1), got %g", e.Tolerance)
	check(e.MaxExprNodes > 0, "engine.max_expr_nodes must be positive, got %d", e.MaxExprNodes)
	check(e.MaxIterations > 0, "engine.max_iterations must be positive, got %d", e.MaxIterations)
	check(e.Convergence > 0, "engine.convergence must be positive, got %g", e.Convergence)
	check(e.Samples >= 2, "engine.samples must be at least 2, got %d", e.Samples)
	check(e.MaxGrid >= 2, "engine.max_grid must be at least 2, got %d", e.MaxGrid)
	switch c.Output {
	case "table", "json", "yaml":
	default:
		errs = append(errs, fmt.Errorf("output must be table, json or yaml, got %q", c.Output))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or console, got %q", c.Log.Format))
	}
	check(c.Server.MaxBodyBytes > 0, "server.max_body_bytes must be positive")
	return errors.Join(errs...)
}

// Settings converts the engine section for the registry.
func (c *Config) Settings() registry.Settings {
	e := c.Engine
	return registry.Settings{
		Tolerance:     value.Tolerance{Eps: e.Tolerance, Relative: e.Relative},
		MaxNodes:      e.MaxExprNodes,
		MaxIterations: e.MaxIterations,
		Convergence:   e.Convergence,
		Samples:       e.Samples,
		MaxGrid:       e.MaxGrid,
	}
}
