package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shizukutanaka/Hayate/internal/bench"
	"github.com/shizukutanaka/Hayate/internal/report"
)

var scoreCmd = &cobra.Command{
	Use:   "score <results-file>",
	Short: "Re-score previously saved benchmark results",
	Long: `Recompute scores from a saved run without re-running the benchmarks.
Accepts either a JSON array of benchmark results or a .json.zst report
archive. Useful for trying out coefficient or weight overrides from a
config file against an existing run.`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

var scoreTier string

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringVar(&scoreTier, "tier", "", "tier label for the re-scored report (default taken from the archive, else \"unknown\")")
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	path := args[0]
	results, tier, err := loadResults(path)
	if err != nil {
		return err
	}
	if scoreTier != "" {
		tier = scoreTier
	}
	if tier == "" {
		tier = "unknown"
	}

	scoringCfg, err := cfg.ScoringConfig()
	if err != nil {
		return err
	}

	rep := report.Build(scoringCfg, tier, results)
	return rep.RenderText(os.Stdout)
}

// loadResults reads benchmark results from a report archive or a plain JSON
// file. Every result must carry a recognized category; results saved by
// older tools without one are rejected rather than guessed at.
func loadResults(path string) ([]bench.Result, string, error) {
	if strings.HasSuffix(path, ".zst") {
		rep, err := report.ReadArchive(path)
		if err != nil {
			return nil, "", err
		}
		return rep.Results, rep.Tier, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read results file: %w", err)
	}

	var results []bench.Result
	if err := json.Unmarshal(data, &results); err == nil {
		return results, "", nil
	}

	// Fall back to a full report written by `run --output`.
	var rep report.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, "", fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return rep.Results, rep.Tier, nil
}
