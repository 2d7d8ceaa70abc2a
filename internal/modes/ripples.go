package modes

import (
	"image"
	"math"

	"github.com/ivlev/loopviz/internal/render"
)

// renderRipples spreads rain rings across a still pond. Each ring's radius
// is a pure function of its cycle fraction, and its alpha envelope is
// sin(π·fraction): zero at birth and at full spread, so the loop boundary
// never pops a ring in or out.
func renderRipples(dst *image.RGBA, t float64, width, height int, period, scaleFactor float64) {
	render.VerticalGradient(dst, 10, 24, 34, 4, 12, 20)

	w := float64(width)
	h := float64(height)
	maxR := 0.32 * math.Min(w, h)
	stroke := 2.0 * scaleFactor

	// Soft breathing light on the water, one cycle per loop.
	glow := 0.5 + 0.5*math.Sin(phase(t, period, 1)-tau/4)
	render.GlowDisc(dst, w*0.5, h*0.45, 0.4*math.Min(w, h), 20, 40, 50, 0.25+0.2*glow)

	const sources = 5
	for s := 0; s < sources; s++ {
		idx := uint32(s)
		cx := (0.15 + 0.7*render.Hash2(idx, 31)) * w
		cy := (0.15 + 0.7*render.Hash2(idx, 32)) * h
		// Each source drops two staggered rings per loop.
		drops := 2.0
		for ring := 0; ring < 2; ring++ {
			f := cycleFrac(t, period, drops, render.Hash2(idx, 33)+float64(ring)/2)
			radius := f * maxR
			if radius < 1 {
				continue
			}
			a := math.Sin(math.Pi*f) * (1 - 0.4*f) * 0.5
			render.Ring(dst, cx, cy, radius, stroke, 150, 200, 210, a)
			// Faint echo ring trailing the main one.
			if radius > maxR*0.15 {
				render.Ring(dst, cx, cy, radius*0.8, stroke*0.7, 120, 170, 185, a*0.4)
			}
		}
	}
}
