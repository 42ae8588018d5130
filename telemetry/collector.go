package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int
	dt                  float64

	// Current window tracking
	windowStartTick int

	// Event counters for current window
	kills    int
	evasions int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordKills records predation events.
func (c *Collector) RecordKills(n int) {
	c.kills += n
}

// RecordEvasions records evasion displacements.
func (c *Collector) RecordEvasions(n int) {
	c.evasions += n
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// sizes and speeds describe the live population at currentTick.
func (c *Collector) Flush(currentTick, deadTotal int, sizes, speeds []float64) WindowStats {
	sizeMean, sizeStd, sizeMax, sizeP50 := ComputeSizeStats(sizes)
	speedMean, _, _, _ := ComputeSizeStats(speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Population: len(sizes),
		DeadTotal:  deadTotal,

		Kills:    c.kills,
		Evasions: c.evasions,

		SizeMean: sizeMean,
		SizeStd:  sizeStd,
		SizeMax:  sizeMax,
		SizeP50:  sizeP50,

		SpeedMean: speedMean,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.kills = 0
	c.evasions = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int {
	return c.windowDurationTicks
}
