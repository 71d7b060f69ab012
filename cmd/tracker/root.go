package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/habit-tracker/internal/config"
	"github.com/comitanigiacomo/habit-tracker/internal/logger"
)

type rootOptions struct {
	configDir string
	logLevel  string

	cfg config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "tracker",
		Short: "Weekly habit tracker",
		Long: `Track recurring habits grouped in categories.

Every tracker is scheduled on a set of weekdays. Mark it done for a day,
browse the board for any date and read aggregate statistics.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configDir)
			if err != nil {
				return err
			}
			if opts.logLevel != "" {
				cfg.LogLevel = opts.logLevel
			}

			log, err := logger.New(cfg.LogLevel)
			if err != nil {
				return err
			}

			opts.cfg = cfg
			opts.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configDir, "config", "", "directory holding tracker.yaml")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")

	cmd.AddCommand(
		newServeCmd(opts),
		newBoardCmd(opts),
		newToggleCmd(opts),
		newStatsCmd(opts),
	)

	return cmd
}
