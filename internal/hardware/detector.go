// Package hardware inspects the host CPU and memory to suggest a workload
// tier. Detection is best-effort: any probe failure degrades to defaults and
// a mid-tier suggestion, never to an aborted run.
package hardware

import (
	"context"
	"runtime"

	"github.com/klauspost/cpuid/v2"
	"github.com/pbnjay/memory"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"

	"github.com/shizukutanaka/Hayate/internal/workload"
)

// Info summarizes the host for tier selection and report metadata.
type Info struct {
	BrandName     string   `json:"brand_name"`
	PhysicalCores int      `json:"physical_cores"`
	LogicalCores  int      `json:"logical_cores"`
	FrequencyMHz  float64  `json:"frequency_mhz"`
	TotalMemory   uint64   `json:"total_memory_bytes"`
	Features      []string `json:"features,omitempty"`
}

// Detector probes the host hardware.
type Detector struct {
	logger *zap.Logger
}

// NewDetector creates a hardware detector.
func NewDetector(logger *zap.Logger) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detector{logger: logger.Named("hardware")}
}

// Detect gathers CPU and memory information. Individual probe failures are
// logged and papered over with runtime fallbacks.
func (d *Detector) Detect(ctx context.Context) Info {
	info := Info{
		BrandName:     cpuid.CPU.BrandName,
		LogicalCores:  runtime.NumCPU(),
		PhysicalCores: cpuid.CPU.PhysicalCores,
		Features:      cpuid.CPU.FeatureSet(),
	}

	if counts, err := cpu.CountsWithContext(ctx, false); err == nil && counts > 0 {
		info.PhysicalCores = counts
	} else if err != nil {
		d.logger.Debug("Physical core count probe failed", zap.Error(err))
	}
	if info.PhysicalCores <= 0 {
		info.PhysicalCores = info.LogicalCores
	}

	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		if info.BrandName == "" {
			info.BrandName = infos[0].ModelName
		}
		info.FrequencyMHz = infos[0].Mhz
	} else if err != nil {
		d.logger.Debug("CPU info probe failed", zap.Error(err))
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		info.TotalMemory = vm.Total
	} else {
		d.logger.Debug("Memory probe failed, using fallback", zap.Error(err))
		info.TotalMemory = memory.TotalMemory()
	}

	d.logger.Info("Hardware detected",
		zap.String("cpu", info.BrandName),
		zap.Int("physical_cores", info.PhysicalCores),
		zap.Int("logical_cores", info.LogicalCores),
		zap.Float64("frequency_mhz", info.FrequencyMHz),
		zap.Uint64("total_memory", info.TotalMemory),
	)
	return info
}

// SuggestTier maps detected hardware onto a workload tier. The thresholds
// are coarse on purpose; anything ambiguous lands on mid.
func SuggestTier(info Info) workload.Tier {
	const gb = 1024 * 1024 * 1024

	if info.LogicalCores >= 8 && info.TotalMemory >= 12*gb {
		return workload.TierFlagship
	}
	if info.LogicalCores <= 4 || info.TotalMemory < 4*gb {
		return workload.TierSlow
	}
	return workload.TierMid
}
