// Package main is the entry point for the castle showcase.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/castle-showcase/internal/config"
	"github.com/Faultbox/castle-showcase/internal/logger"
	"github.com/Faultbox/castle-showcase/internal/showcase"
	"github.com/Faultbox/castle-showcase/internal/storage"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "castle",
		Short:         "Walk through the castle showcase",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	ov := config.BindFlags(root.PersistentFlags())

	root.AddCommand(newRunCmd(ov))
	root.AddCommand(newTUICmd(ov))
	root.AddCommand(newAssetsCmd(ov))
	root.AddCommand(newVisitCmd(ov))
	return root
}

// setup loads the configuration and initializes logging. Console logging is
// disabled for front ends that own the terminal.
func setup(ov *config.Overrides, console bool) (*config.Config, error) {
	cfg, err := config.Load(ov)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	fileCfg := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, console); err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	logger.Sugar.Debugf("config: %+v", cfg)
	return cfg, nil
}

// memoryFlags keeps visit state out of the persisted store.
func memoryFlags() (showcase.Flags, error) {
	store, err := storage.Open(":memory:")
	if err != nil {
		logger.Error("in-memory storage unavailable", zap.Error(err))
		return nil, err
	}
	return store, nil
}
