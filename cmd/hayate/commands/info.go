package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shizukutanaka/Hayate/internal/hardware"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show detected hardware and the suggested tier",
	RunE:  runInfo,
}

var infoFormat string

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().StringVar(&infoFormat, "format", "table", "Output format (table, json, yaml)")
}

func runInfo(cmd *cobra.Command, args []string) error {
	_, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	info := hardware.NewDetector(logger).Detect(cmd.Context())
	tier := hardware.SuggestTier(info)

	switch infoFormat {
	case "json":
		out := struct {
			hardware.Info
			SuggestedTier string `json:"suggested_tier"`
		}{info, tier.String()}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		out := struct {
			hardware.Info `yaml:",inline"`
			SuggestedTier string `yaml:"suggested_tier"`
		}{info, tier.String()}
		return yaml.NewEncoder(os.Stdout).Encode(out)
	case "table":
		fmt.Println("Hardware Information")
		fmt.Println("====================")
		fmt.Printf("CPU:            %s\n", info.BrandName)
		fmt.Printf("Physical Cores: %d\n", info.PhysicalCores)
		fmt.Printf("Logical Cores:  %d\n", info.LogicalCores)
		if info.FrequencyMHz > 0 {
			fmt.Printf("Frequency:      %.0f MHz\n", info.FrequencyMHz)
		}
		fmt.Printf("Memory:         %s\n", humanize.IBytes(info.TotalMemory))
		if len(info.Features) > 0 {
			fmt.Printf("Features:       %s\n", strings.Join(info.Features, ", "))
		}
		fmt.Printf("\nSuggested tier: %s\n", tier)
		return nil
	default:
		return fmt.Errorf("unknown format %q: must be table, json, or yaml", infoFormat)
	}
}
