package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shizukutanaka/Hayate/internal/api"
	"github.com/shizukutanaka/Hayate/internal/bench"
	"github.com/shizukutanaka/Hayate/internal/report"
	"github.com/shizukutanaka/Hayate/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the benchmark API server",
	Long: `Start an HTTP server that exposes the latest report, run history, and
Prometheus metrics, and triggers benchmark runs on demand via
POST /api/v1/run.`,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "listen", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if serveAddr != "" {
		cfg.API.ListenAddr = serveAddr
	}

	scoringCfg, err := cfg.ScoringConfig()
	if err != nil {
		return err
	}

	var store *storage.Store
	if cfg.Storage.Enabled {
		store, err = storage.Open(logger, cfg.Storage.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer store.Close()
	}

	runFn := func(ctx context.Context) (*report.Report, error) {
		tier, err := resolveTier(ctx, logger, cfg.Tier, cfg.AutoDetect)
		if err != nil {
			return nil, err
		}
		runner := bench.NewRunner(logger, bench.Options{
			Tier:       tier,
			Iterations: cfg.Iterations,
			Warmup:     cfg.Warmup,
		})
		results, err := runner.Run(ctx)
		if err != nil {
			return nil, err
		}
		return report.Build(scoringCfg, tier.String(), results), nil
	}

	server := api.NewServer(logger, cfg.API.ListenAddr, store, runFn)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
		return err
	}
	return <-errCh
}
