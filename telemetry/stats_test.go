package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeSizeStats(t *testing.T) {
	values := []float64{40, 10, 30, 20}
	mean, std, maxV, p50 := ComputeSizeStats(values)

	if math.Abs(mean-25) > 1e-9 {
		t.Errorf("mean = %v, want 25", mean)
	}
	// Sample std of {10,20,30,40} = sqrt(500/3)
	if math.Abs(std-math.Sqrt(500.0/3.0)) > 1e-9 {
		t.Errorf("std = %v, want %v", std, math.Sqrt(500.0/3.0))
	}
	if maxV != 40 {
		t.Errorf("max = %v, want 40", maxV)
	}
	if math.Abs(p50-25) > 1e-9 {
		t.Errorf("p50 = %v, want 25", p50)
	}
	// Input must not be reordered
	if values[0] != 40 || values[1] != 10 {
		t.Errorf("input modified: %v", values)
	}
}

func TestComputeSizeStatsEdgeCases(t *testing.T) {
	mean, std, maxV, p50 := ComputeSizeStats(nil)
	if mean != 0 || std != 0 || maxV != 0 || p50 != 0 {
		t.Error("empty slice should return all zeros")
	}

	mean, std, maxV, p50 = ComputeSizeStats([]float64{17})
	if mean != 17 || std != 0 || maxV != 17 || p50 != 17 {
		t.Errorf("single value stats = %v %v %v %v", mean, std, maxV, p50)
	}
}

func TestCollectorWindows(t *testing.T) {
	c := NewCollector(1.0, 1.0/60.0)
	if c.WindowDurationTicks() != 60 {
		t.Fatalf("window ticks = %d, want 60", c.WindowDurationTicks())
	}

	c.RecordKills(2)
	c.RecordEvasions(5)
	c.RecordKills(1)

	if c.ShouldFlush(59) {
		t.Error("should not flush before the window ends")
	}
	if !c.ShouldFlush(60) {
		t.Error("should flush at the window end")
	}

	stats := c.Flush(60, 3, []float64{10, 30}, []float64{2, 4})
	if stats.Kills != 3 || stats.Evasions != 5 {
		t.Errorf("kills=%d evasions=%d, want 3 and 5", stats.Kills, stats.Evasions)
	}
	if stats.Population != 2 || stats.DeadTotal != 3 {
		t.Errorf("population=%d dead=%d, want 2 and 3", stats.Population, stats.DeadTotal)
	}
	if math.Abs(stats.SimTimeSec-1.0) > 1e-9 {
		t.Errorf("sim time = %v, want 1", stats.SimTimeSec)
	}
	if stats.SizeMean != 20 || stats.SizeMax != 30 || stats.SpeedMean != 3 {
		t.Errorf("size mean=%v max=%v speed mean=%v", stats.SizeMean, stats.SizeMax, stats.SpeedMean)
	}

	// Counters reset and the next window starts at the flush tick
	if c.ShouldFlush(100) {
		t.Error("next window should end at tick 120")
	}
	next := c.Flush(120, 3, nil, nil)
	if next.Kills != 0 || next.Evasions != 0 || next.WindowStartTick != 60 {
		t.Errorf("next window = %+v", next)
	}
}

func TestCollectorMinimumWindow(t *testing.T) {
	c := NewCollector(0, 1.0/60.0)
	if c.WindowDurationTicks() != 1 {
		t.Errorf("window ticks = %d, want 1", c.WindowDurationTicks())
	}
}
