// Command agriguru - консольный интерфейс рекомендательной системы культур.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/akozadaev/agriguru/internal/config"
	"github.com/akozadaev/agriguru/internal/logging"
)

// app содержит состояние, общее для всех подкоманд.
type app struct {
	verbose bool
	cfg     *config.Config
	logger  *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "agriguru",
		Short: "AgriGuru - crop recommendations for Indian districts",
		Long: `agriguru recommends crops for a district from soil and climate measurements,
shows the weather forecast and static soil suggestions.

Datasets and services are configured through environment variables, a .env file
or a YAML file named by AGRIGURU_CONFIG.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			level := "warn"
			if a.verbose {
				level = "debug"
			}
			logger, err := logging.New(level, false)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose logging")

	root.AddCommand(
		a.newRecommendCmd(),
		a.newWeatherCmd(),
		a.newSoilCmd(),
		a.newLocationsCmd(),
		a.newTrainCmd(),
	)
	return root
}
