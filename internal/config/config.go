// Package config loads suite configuration from YAML, environment, and
// defaults. The scoring knobs exposed here are the supported tuning surface:
// coefficient overrides, category weights, the normalization factor, and the
// rating ladder.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/shizukutanaka/Hayate/internal/logging"
	"github.com/shizukutanaka/Hayate/internal/scoring"
	"github.com/shizukutanaka/Hayate/internal/workload"
)

// Config is the full application configuration.
type Config struct {
	Tier       string         `mapstructure:"tier"`
	Iterations int            `mapstructure:"iterations"`
	Warmup     bool           `mapstructure:"warmup"`
	AutoDetect bool           `mapstructure:"auto_detect"`
	Logging    logging.Config `mapstructure:"logging"`
	Scoring    ScoringConfig  `mapstructure:"scoring"`
	Report     ReportConfig   `mapstructure:"report"`
	Storage    StorageConfig  `mapstructure:"storage"`
	API        APIConfig      `mapstructure:"api"`
}

// ScoringConfig overrides parts of the reference scoring configuration.
// Unset fields keep their reference values. The numeric fields are pointers
// so an explicit zero, e.g. multi-core-only scoring with a zero single-core
// weight, is distinguishable from an absent key.
type ScoringConfig struct {
	SingleCoreWeight    *float64           `mapstructure:"single_core_weight"`
	MultiCoreWeight     *float64           `mapstructure:"multi_core_weight"`
	NormalizationFactor *float64           `mapstructure:"normalization_factor"`
	Coefficients        map[string]float64 `mapstructure:"coefficients"`
	Bands               []BandConfig       `mapstructure:"bands"`
}

// BandConfig is one configurable rating band.
type BandConfig struct {
	Threshold float64 `mapstructure:"threshold"`
	Stars     string  `mapstructure:"stars"`
	Label     string  `mapstructure:"label"`
}

// ReportConfig controls report output.
type ReportConfig struct {
	OutputFile string `mapstructure:"output_file"` // empty means stdout only
	ArchiveDir string `mapstructure:"archive_dir"` // empty disables archives
}

// StorageConfig controls the run-history database.
type StorageConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	DatabasePath string `mapstructure:"database_path"`
}

// APIConfig controls the serve mode.
type APIConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
}

// Load reads configuration from the given file (optional), HAYATE_*
// environment variables, and defaults, then validates the result.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("HAYATE")
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tier", "mid")
	v.SetDefault("iterations", 1)
	v.SetDefault("warmup", true)
	v.SetDefault("auto_detect", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.encoding", "console")

	ref := scoring.DefaultConfig()
	v.SetDefault("scoring.single_core_weight", ref.SingleCoreWeight)
	v.SetDefault("scoring.multi_core_weight", ref.MultiCoreWeight)
	v.SetDefault("scoring.normalization_factor", ref.NormalizationFactor)

	v.SetDefault("report.output_file", "")
	v.SetDefault("report.archive_dir", "")

	v.SetDefault("storage.enabled", true)
	v.SetDefault("storage.database_path", "./hayate.db")

	v.SetDefault("api.listen_addr", ":8080")
}

func validate(cfg *Config) error {
	if _, err := workload.ParseTier(cfg.Tier); err != nil {
		return err
	}
	if cfg.Iterations < 1 {
		return fmt.Errorf("iterations must be at least 1, got %d", cfg.Iterations)
	}
	if _, err := cfg.ScoringConfig(); err != nil {
		return err
	}
	return nil
}

// ScoringConfig merges the configured overrides onto the reference scoring
// configuration and validates the result.
func (c *Config) ScoringConfig() (scoring.Config, error) {
	sc := scoring.DefaultConfig()

	if c.Scoring.SingleCoreWeight != nil {
		sc.SingleCoreWeight = *c.Scoring.SingleCoreWeight
	}
	if c.Scoring.MultiCoreWeight != nil {
		sc.MultiCoreWeight = *c.Scoring.MultiCoreWeight
	}
	if c.Scoring.NormalizationFactor != nil {
		sc.NormalizationFactor = *c.Scoring.NormalizationFactor
	}
	for name, coeff := range c.Scoring.Coefficients {
		sc.Coefficients[name] = coeff
	}
	if len(c.Scoring.Bands) > 0 {
		bands := make([]scoring.Band, len(c.Scoring.Bands))
		for i, b := range c.Scoring.Bands {
			bands[i] = scoring.Band{Threshold: b.Threshold, Stars: b.Stars, Label: b.Label}
		}
		sc.Bands = bands
	}

	if err := sc.Validate(); err != nil {
		return scoring.Config{}, err
	}
	return sc, nil
}
