package telemetry

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int     `csv:"-"`
	WindowEndTick   int     `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Population int `csv:"population"`
	DeadTotal  int `csv:"dead_total"`

	// Events during window
	Kills    int `csv:"kills"`
	Evasions int `csv:"evasions"`

	// Size distribution at window end
	SizeMean float64 `csv:"size_mean"`
	SizeStd  float64 `csv:"size_std"`
	SizeMax  float64 `csv:"size_max"`
	SizeP50  float64 `csv:"size_p50"`

	SpeedMean float64 `csv:"speed_mean"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeSizeStats returns mean, sample standard deviation, max and median.
// Empty input yields zeros; a single value has zero spread.
func ComputeSizeStats(values []float64) (mean, std, maxV, p50 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	mean, std = stat.MeanStdDev(values, nil)
	if n < 2 || math.IsNaN(std) {
		std = 0
	}
	maxV = floats.Max(values)

	sorted := make([]float64, n)
	copy(sorted, values)
	floats.Argsort(sorted, make([]int, n))
	p50 = Percentile(sorted, 0.5)

	return mean, std, maxV, p50
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("population", s.Population),
		slog.Int("dead_total", s.DeadTotal),
		slog.Int("kills", s.Kills),
		slog.Int("evasions", s.Evasions),
		slog.Float64("size_mean", s.SizeMean),
		slog.Float64("size_std", s.SizeStd),
		slog.Float64("size_max", s.SizeMax),
		slog.Float64("size_p50", s.SizeP50),
		slog.Float64("speed_mean", s.SpeedMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
