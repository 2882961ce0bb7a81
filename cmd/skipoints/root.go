package main

import (
	"fmt"
	"strings"

	service "github.com/okian/skipoints/internal/app"
	"github.com/okian/skipoints/internal/config"
	"github.com/okian/skipoints/pkg/logger"
	"github.com/spf13/cobra"
)

// Set by the linker at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries what every subcommand shares once the root has run.
type app struct {
	cfg *config.Config
	svc *service.Service
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "skipoints",
		Short:         "Compute national ski points for races and seasons.",
		Long:          `skipoints scores alpine, snowboard and freestyle results under the four national points systems.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	root.PersistentFlags().String("log-level", "", "Override the configured log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "", "Override the configured log format (text, json)")

	root.AddCommand(
		newDemoCmd(a),
		newTableCmd(a),
		newTargetCmd(a),
		newDisciplinesCmd(a),
		newVersionCmd(),
	)
	return root
}

// init loads configuration, sets up logging to stderr and builds the service.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}

	if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr()), logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(cmd.Context(), "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	a.cfg = cfg
	a.svc = service.New(service.WithConfig(cfg), service.WithLogger(logger.Named("skipoints")))
	return nil
}
