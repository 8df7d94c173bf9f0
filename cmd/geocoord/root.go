package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/geocoord/internal/config"
	"github.com/kailas-cloud/geocoord/internal/domain/coord"
	logpkg "github.com/kailas-cloud/geocoord/internal/logger"
	"github.com/kailas-cloud/geocoord/internal/metrics"
	"github.com/kailas-cloud/geocoord/internal/version"
)

// app is the composition root shared by all subcommands.
type app struct {
	env        string
	configPath string
	logLevel   string

	cfg      config.Config
	logger   *zap.Logger
	promReg  *prometheus.Registry
	registry *coord.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "geocoord",
		Short:         "Interned 3-D coordinates: distances, angles and conversions",
		Long:          `Work with Cartesian (c:x,y,z), spherical (s:phi,theta,r) and geodetic (g:lat,lon) points
from the command line.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.env, "env", config.GetEnv(), "Environment name, selects config/<env>.yaml")
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Explicit config file (overrides --env)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level override: debug, info, warn, error")

	root.AddCommand(
		newDistanceCmd(a),
		newAngleCmd(a),
		newArcCmd(a),
		newEqualCmd(a),
		newConvertCmd(a),
		newBenchCmd(a),
		newCheckCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads config and wires logger, metrics and the registry.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid flags: %w", err)
		}
	}
	a.cfg = cfg

	l, err := logpkg.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.logger = l.With(zap.String("command", cmd.Name()))

	a.promReg = prometheus.NewRegistry()
	a.promReg.MustRegister(collectors.NewGoCollector())
	m, err := metrics.NewInterning(a.promReg, cfg.Metrics.Namespace)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	a.registry = coord.NewRegistry(coord.RegistryConfig{
		Shards:     cfg.Interning.Shards,
		MaxEntries: cfg.Interning.MaxEntries,
		Metrics:    m,
		Logger:     a.logger,
	})

	cmd.SetContext(logpkg.ContextWithLogger(cmd.Context(), a.logger))
	a.logger.Debug("Registry ready",
		zap.String("env", a.env),
		zap.Int("shards", cfg.Interning.Shards),
		zap.Int("max_entries", cfg.Interning.MaxEntries),
	)
	return nil
}

// loadConfig prefers --config, then config/<env>.yaml, then built-in defaults
// when no file exists for the environment.
func (a *app) loadConfig() (config.Config, error) {
	if a.configPath != "" {
		cfg, err := config.LoadFile(a.configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}
	cfg, err := config.Load(a.env)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
