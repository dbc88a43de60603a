package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingExplicitFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing-on-purpose.yaml"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
		validate      func(t *testing.T, cfg *Config)
		wantErr       bool
	}{
		{
			name: "valid config",
			configContent: `
tier: flagship
iterations: 3
warmup: false
auto_detect: true

logging:
  level: debug
  encoding: json

scoring:
  single_core_weight: 0.5
  multi_core_weight: 0.5
  coefficients:
    "Single-Core N-Queens": 0.001

report:
  output_file: report.json
  archive_dir: ./archives

storage:
  enabled: false

api:
  listen_addr: ":9090"
`,
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "flagship", cfg.Tier)
				assert.Equal(t, 3, cfg.Iterations)
				assert.False(t, cfg.Warmup)
				assert.True(t, cfg.AutoDetect)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Encoding)
				assert.Equal(t, "report.json", cfg.Report.OutputFile)
				assert.False(t, cfg.Storage.Enabled)
				assert.Equal(t, ":9090", cfg.API.ListenAddr)

				sc, err := cfg.ScoringConfig()
				require.NoError(t, err)
				assert.Equal(t, 0.5, sc.SingleCoreWeight)
				assert.Equal(t, 0.5, sc.MultiCoreWeight)
				assert.Equal(t, 0.001, sc.CoefficientFor("Single-Core N-Queens"))
				// Untouched entries keep their reference values.
				assert.Equal(t, 0.00012, sc.Coefficients["Single-Core Fibonacci Recursive"])
			},
		},
		{
			name:          "empty file keeps defaults",
			configContent: "",
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "mid", cfg.Tier)
				assert.Equal(t, 1, cfg.Iterations)
				assert.True(t, cfg.Warmup)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.True(t, cfg.Storage.Enabled)
				assert.Equal(t, ":8080", cfg.API.ListenAddr)
			},
		},
		{
			name:          "invalid tier",
			configContent: "tier: turbo\n",
			wantErr:       true,
		},
		{
			name:          "zero iterations",
			configContent: "iterations: 0\n",
			wantErr:       true,
		},
		{
			name: "explicit zero weight honored",
			configContent: `
scoring:
  single_core_weight: 0
  multi_core_weight: 1.0
`,
			validate: func(t *testing.T, cfg *Config) {
				sc, err := cfg.ScoringConfig()
				require.NoError(t, err)
				assert.Zero(t, sc.SingleCoreWeight)
				assert.Equal(t, 1.0, sc.MultiCoreWeight)
			},
		},
		{
			name: "zero normalization factor rejected",
			configContent: `
scoring:
  normalization_factor: 0
`,
			wantErr: true,
		},
		{
			name: "negative coefficient override",
			configContent: `
scoring:
  coefficients:
    "Single-Core N-Queens": -1
`,
			wantErr: true,
		},
		{
			name: "bands out of order",
			configContent: `
scoring:
  bands:
    - threshold: 100
      stars: "★"
      label: "Low"
    - threshold: 500
      stars: "★★"
      label: "High"
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.configContent)
			cfg, err := Load(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestScoringConfigBandOverride(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Tier:       "mid",
		Iterations: 1,
		Scoring: ScoringConfig{
			Bands: []BandConfig{
				{Threshold: 500, Stars: "★★", Label: "Fine"},
				{Threshold: 0, Stars: "★", Label: "Meh"},
			},
		},
	}

	sc, err := cfg.ScoringConfig()
	require.NoError(t, err)
	require.Len(t, sc.Bands, 2)
	assert.Equal(t, 500.0, sc.Bands[0].Threshold)
	assert.Equal(t, "Fine", sc.Bands[0].Label)
}
