package modes

import "math"

const tau = 2 * math.Pi

// phase returns the angle of an oscillator completing `cycles` whole cycles
// per loop, at loop-relative time t. Whole cycle counts are what make every
// mode seamless: at t=0 and t=period the angle differs by an exact multiple
// of 2π.
func phase(t, period float64, cycles float64) float64 {
	if period <= 0 {
		return 0
	}
	return tau * cycles * t / period
}

// cycleFrac returns the fractional position in [0,1) of an oscillator
// completing `cycles` whole cycles per loop, offset by `shift` cycles.
func cycleFrac(t, period, cycles, shift float64) float64 {
	if period <= 0 {
		return 0
	}
	f := math.Mod(cycles*t/period+shift, 1)
	if f < 0 {
		f += 1
	}
	return f
}

// particleCount scales a base count quadratically with the scale factor
// (area grows as scale²) and clamps it to [min, max] to bound worst-case
// cost on very large displays. NaN collapses to min.
func particleCount(base float64, scaleFactor float64, min, max int) int {
	n := base * scaleFactor * scaleFactor
	if math.IsNaN(n) || n < float64(min) {
		return min
	}
	if n > float64(max) {
		return max
	}
	return int(n)
}

// coarseCell returns the density-grid cell size in pixels for the coarse
// render path. Grows with the scale factor, bounded so a bad factor can
// never collapse the grid.
func coarseCell(scaleFactor float64) int {
	c := math.Round(scaleFactor * 2)
	if math.IsNaN(c) || c < 1 {
		return 1
	}
	if c > 16 {
		return 16
	}
	return int(c)
}
