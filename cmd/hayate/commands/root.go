package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shizukutanaka/Hayate/internal/config"
	"github.com/shizukutanaka/Hayate/internal/logging"
	"go.uber.org/zap"
)

const Version = "1.2.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "hayate",
	Short: "CPU Micro-Benchmark Suite",
	Long: `Hayate is a CPU benchmarking tool that runs ten computational workloads
in single-core and multi-core variants, converts the measured throughputs
into comparable scores, and aggregates them into a weighted composite score
with a star rating.`,
	Version: Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Version template
	rootCmd.SetVersionTemplate(`Hayate {{.Version}}
CPU Micro-Benchmark Suite

License: MIT
Website: https://github.com/shizukutanaka/Hayate
`)
}

// loadConfig loads configuration and builds the logger shared by all
// commands. The --verbose flag lowers the log level to debug.
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logCfg := cfg.Logging
	if verbose {
		logCfg.Level = "debug"
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logger, nil
}
