package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shizukutanaka/Hayate/internal/bench"
	"github.com/shizukutanaka/Hayate/internal/config"
	"github.com/shizukutanaka/Hayate/internal/hardware"
	"github.com/shizukutanaka/Hayate/internal/report"
	"github.com/shizukutanaka/Hayate/internal/storage"
	"github.com/shizukutanaka/Hayate/internal/workload"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full benchmark suite",
	Long: `Run all twenty benchmarks (ten workloads, single-core and multi-core),
score the results, and print the report. Ctrl-C stops the remaining
benchmarks; whatever already completed is still scored and reported,
with the missing benchmarks simply not contributing.`,
	RunE: runSuite,
}

var (
	runTier       string
	runIterations int
	runNoWarmup   bool
	runJSONOut    string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runTier, "tier", "", "device tier: slow, mid, flagship (default from config or auto-detect)")
	runCmd.Flags().IntVar(&runIterations, "iterations", 0, "measured runs per benchmark (default from config)")
	runCmd.Flags().BoolVar(&runNoWarmup, "no-warmup", false, "skip the warmup pass")
	runCmd.Flags().StringVarP(&runJSONOut, "output", "o", "", "also write the report as JSON to this file")
}

func runSuite(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if runTier != "" {
		cfg.Tier = runTier
	}
	if runIterations > 0 {
		cfg.Iterations = runIterations
	}
	if runNoWarmup {
		cfg.Warmup = false
	}
	if runJSONOut != "" {
		cfg.Report.OutputFile = runJSONOut
	}

	tier, err := resolveTier(ctx, logger, cfg.Tier, cfg.AutoDetect)
	if err != nil {
		return err
	}

	scoringCfg, err := cfg.ScoringConfig()
	if err != nil {
		return err
	}

	runner := bench.NewRunner(logger, bench.Options{
		Tier:       tier,
		Iterations: cfg.Iterations,
		Warmup:     cfg.Warmup,
	})
	results, runErr := runner.Run(ctx)
	if runErr != nil {
		if len(results) == 0 {
			return fmt.Errorf("benchmark run aborted: %w", runErr)
		}
		logger.Warn("Benchmark run interrupted, scoring completed benchmarks only",
			zap.Int("completed", len(results)))
	}

	rep := report.Build(scoringCfg, tier.String(), results)
	if err := emitReport(os.Stdout, cfg, logger, rep); err != nil {
		return err
	}

	if runErr != nil {
		return fmt.Errorf("benchmark run interrupted: %w", runErr)
	}
	return nil
}

// emitReport renders the report and writes every configured output: the
// console text, the JSON output file, the zstd archive, and the history
// database.
func emitReport(w io.Writer, cfg *config.Config, logger *zap.Logger, rep *report.Report) error {
	if err := rep.RenderText(w); err != nil {
		return err
	}

	if cfg.Report.OutputFile != "" {
		f, err := os.Create(cfg.Report.OutputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		if err := rep.WriteJSON(f); err != nil {
			return err
		}
		logger.Info("Report written", zap.String("path", cfg.Report.OutputFile))
	}

	if cfg.Report.ArchiveDir != "" {
		if err := os.MkdirAll(cfg.Report.ArchiveDir, 0o755); err != nil {
			return fmt.Errorf("failed to create archive directory: %w", err)
		}
		path := filepath.Join(cfg.Report.ArchiveDir, rep.ID+".json.zst")
		if err := rep.WriteArchive(path); err != nil {
			return err
		}
		logger.Info("Archive written", zap.String("path", path))
	}

	if cfg.Storage.Enabled {
		store, err := storage.Open(logger, cfg.Storage.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer store.Close()
		if err := store.Save(rep); err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		logger.Info("Run saved", zap.String("id", rep.ID))
	}

	return nil
}

// resolveTier turns the configured tier string into a workload tier,
// consulting the hardware detector when auto-detection is enabled and no
// explicit tier was given.
func resolveTier(ctx context.Context, logger *zap.Logger, tierName string, autoDetect bool) (workload.Tier, error) {
	if tierName == "" || tierName == "auto" {
		if !autoDetect {
			return workload.TierMid, nil
		}
		info := hardware.NewDetector(logger).Detect(ctx)
		tier := hardware.SuggestTier(info)
		logger.Info("Auto-detected device tier",
			zap.String("tier", tier.String()),
			zap.Int("logical_cores", info.LogicalCores),
			zap.Uint64("total_memory", info.TotalMemory))
		return tier, nil
	}
	return workload.ParseTier(tierName)
}
