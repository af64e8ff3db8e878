package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"analysis/toolutil/internal/config"
)

const Version = "0.3.0"

// app carries what every subcommand needs once flags are parsed.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}
	var configPath string

	root := &cobra.Command{
		Use:           "toolutil",
		Short:         "store and temp-dir utilities for the analysis toolchain",
		Version:       Version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = newLogger(cfg.Log)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "config.yaml", "path to the YAML config file")
	flags.String("store-host", "", "store host (overrides store.host)")
	flags.String("store-port", "", "store port (overrides store.port)")
	flags.String("store-password", "", "store credential (overrides store.password)")
	_ = a.v.BindPFlag("store.host", flags.Lookup("store-host"))
	_ = a.v.BindPFlag("store.port", flags.Lookup("store-port"))
	_ = a.v.BindPFlag("store.password", flags.Lookup("store-password"))

	root.AddCommand(
		newServeCmd(a),
		newPushCmd(a),
		newPopCmd(a),
		newTmpdirCmd(),
		newTokenCmd(a),
	)
	return root
}

func newLogger(cfg config.LogConfig) *zap.Logger {
	var zcfg zap.Config
	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	if level, err := zap.ParseAtomicLevel(cfg.Level); err == nil {
		zcfg.Level = level
	}
	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
