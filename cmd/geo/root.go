package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/njchilds90/geographer"
	"github.com/njchilds90/geographer/internal/config"
	"github.com/njchilds90/geographer/internal/logging"
	"github.com/njchilds90/geographer/registry"
)

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	cfgFile string
	cfg     *config.Config
	log     *zap.Logger
	reg     *registry.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "geo",
		Short:         "Deterministic geometry and algebra engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default ./"+config.DefaultFile+" when present)")
	pf.StringP("output", "o", "table", "output format: table, json or yaml")
	pf.String("log-level", "info", "log level")
	pf.String("log-format", "json", "log encoding: json or console")
	pf.Float64("engine-tolerance", 0, "relative comparison tolerance")
	pf.Int("engine-samples", 0, "samples for plots and numeric fallbacks")
	pf.Int("engine-max-grid", 0, "cells per axis for implicit sampling")
	pf.Int("engine-max-iterations", 0, "iteration bound for root finding")

	root.AddCommand(
		newOpsCmd(a),
		newDescribeCmd(a),
		newInvokeCmd(a),
		newPresetsCmd(a),
		newSchemaCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	log, _, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	reg, err := geographer.New(registry.WithSettings(cfg.Settings()), registry.WithLogger(log))
	if err != nil {
		return fmt.Errorf("build registry: %w", err)
	}
	a.cfg, a.log, a.reg = cfg, log, reg
	return nil
}
