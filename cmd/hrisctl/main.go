// Command hrisctl runs administrative tasks against the workflow store.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmlabs-hris/hris-workflow-go/internal/config"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-workflow-go/internal/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "hrisctl",
	Short: "Administrative tooling for the HRIS approval workflow",
	Long: `hrisctl works directly against the configured store (STORE_DRIVER,
SQLITE_PATH or DB_* variables, .env is honoured).

Examples:
  hrisctl holiday import holidays-2025.yaml
  hrisctl holiday check 2025-08-15
  hrisctl token --employee 4f1c... --role hod
  hrisctl remind`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logger != nil {
			return nil
		}
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(holidayCmd, tokenCmd, remindCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// env is what every store-backed command needs.
type env struct {
	cfg   *config.Config
	store *repository.Store
	clock clock.Clock
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	store, err := repository.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("store opened", zap.String("driver", cfg.Store.Driver))
	return &env{cfg: cfg, store: store, clock: clock.New(loc)}, nil
}
