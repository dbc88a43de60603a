package report

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shizukutanaka/Hayate/internal/bench"
	"github.com/shizukutanaka/Hayate/internal/scoring"
)

func sampleResults() []bench.Result {
	return []bench.Result{
		{
			Name:         "Single-Core N-Queens",
			Category:     bench.CategorySingle,
			Duration:     2 * time.Second,
			OpsPerSecond: 1_000_000, // normalizes to 700
			Valid:        true,
		},
		{
			Name:         "Multi-Core N-Queens",
			Category:     bench.CategoryMulti,
			Duration:     3 * time.Second,
			OpsPerSecond: 20_000_000, // normalizes to 700
			Valid:        true,
		},
		{
			Name:         "Single-Core Compression",
			Category:     bench.CategorySingle,
			Duration:     time.Second,
			OpsPerSecond: -1, // excluded from sums
			Valid:        false,
		},
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	cfg := scoring.DefaultConfig()
	rep := Build(cfg, "mid", sampleResults())

	require.NotEmpty(t, rep.ID)
	assert.Equal(t, "mid", rep.Tier)
	assert.False(t, rep.GeneratedAt.IsZero())
	assert.Len(t, rep.Scores, 3)

	assert.InDelta(t, 700.0, rep.SingleCoreScore, 1e-6)
	assert.InDelta(t, 700.0, rep.MultiCoreScore, 1e-6)
	assert.InDelta(t, 1.0, rep.CoreRatio, 1e-9)
	assert.InDelta(t, 700*0.35+700*0.65, rep.WeightedScore, 1e-6)
	assert.InDelta(t, rep.WeightedScore, rep.CompositeScore, 1e-9)
	assert.Equal(t, "Moderate Performance", rep.Rating.Label)
	assert.Equal(t, 6*time.Second, rep.TotalDuration)
	assert.Equal(t, 0.35, rep.SingleCoreWeight)
	assert.Equal(t, 0.65, rep.MultiCoreWeight)
	assert.Equal(t, 1.0, rep.NormalizationFactor)
}

func TestBuildEmptyResults(t *testing.T) {
	t.Parallel()

	rep := Build(scoring.DefaultConfig(), "slow", nil)
	assert.Zero(t, rep.SingleCoreScore)
	assert.Zero(t, rep.MultiCoreScore)
	assert.Zero(t, rep.CoreRatio)
	assert.Zero(t, rep.CompositeScore)
	assert.Equal(t, "Low Performance", rep.Rating.Label)
}

// Distinct runs must get distinct identifiers.
func TestBuildUniqueIDs(t *testing.T) {
	t.Parallel()

	a := Build(scoring.DefaultConfig(), "mid", nil)
	b := Build(scoring.DefaultConfig(), "mid", nil)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRenderText(t *testing.T) {
	t.Parallel()

	rep := Build(scoring.DefaultConfig(), "mid", sampleResults())

	var buf bytes.Buffer
	require.NoError(t, rep.RenderText(&buf))
	out := buf.String()

	assert.Contains(t, out, "CPU BENCHMARK RESULTS")
	assert.Contains(t, out, "Device Tier: mid")
	assert.Contains(t, out, "N-Queens (Single): 700.00")
	assert.Contains(t, out, "N-Queens (Multi): 700.00")
	assert.Contains(t, out, "Single-Core Score: 700")
	assert.Contains(t, out, "Core Performance Ratio (Multi/Single): 1.00x")
	assert.Contains(t, out, "Final Normalized Score: 700.00")
	assert.Contains(t, out, "Rating: ★★☆☆☆ (Moderate Performance)")
	assert.Contains(t, out, "single-core performance having 35% weight and multi-core 65%")
	assert.Contains(t, out, "failed their self-check: Single-Core Compression")
}

func TestRenderTextNoInvalidWarningWhenAllValid(t *testing.T) {
	t.Parallel()

	results := sampleResults()[:2]
	rep := Build(scoring.DefaultConfig(), "mid", results)

	var buf bytes.Buffer
	require.NoError(t, rep.RenderText(&buf))
	assert.NotContains(t, buf.String(), "Warning:")
}

func TestWriteJSONRoundTrip(t *testing.T) {
	t.Parallel()

	rep := Build(scoring.DefaultConfig(), "flagship", sampleResults())

	var buf bytes.Buffer
	require.NoError(t, rep.WriteJSON(&buf))
	assert.Contains(t, buf.String(), `"tier": "flagship"`)
}

func TestArchiveRoundTrip(t *testing.T) {
	t.Parallel()

	rep := Build(scoring.DefaultConfig(), "mid", sampleResults())
	path := filepath.Join(t.TempDir(), "run.json.zst")

	require.NoError(t, rep.WriteArchive(path))

	got, err := ReadArchive(path)
	require.NoError(t, err)
	assert.Equal(t, rep.ID, got.ID)
	assert.Equal(t, rep.Tier, got.Tier)
	assert.InDelta(t, rep.CompositeScore, got.CompositeScore, 1e-12)
	require.Len(t, got.Results, len(rep.Results))
	assert.Equal(t, rep.Results[0].Category, got.Results[0].Category)
}

func TestReadArchiveMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ReadArchive(filepath.Join(t.TempDir(), "nope.json.zst"))
	assert.Error(t, err)
}
