package modes

import (
	"image"
	"math"

	"github.com/ivlev/loopviz/internal/render"
)

// renderBlob draws a soft organic shape breathing at two full breaths per
// loop. The outline is a base radius modulated by low-order angular
// harmonics whose phases each advance a whole number of cycles per loop.
func renderBlob(dst *image.RGBA, t float64, width, height int, period, scaleFactor float64) {
	render.VerticalGradient(dst, 18, 22, 38, 8, 10, 20)

	w := float64(width)
	h := float64(height)
	cx := w / 2
	cy := h / 2
	minDim := math.Min(w, h)

	// Breath envelope: inhale/exhale twice per loop, eased so the turn
	// points feel held rather than bounced.
	breath := 0.5 + 0.5*math.Sin(phase(t, period, 2)-tau/4)
	breath = render.EaseInOutCubic(breath)
	baseR := minDim * (0.18 + 0.10*breath)

	// Halo behind the blob, breathing in opposition.
	render.GlowDisc(dst, cx, cy, baseR*2.2, 30, 50, 80, 0.35*(1.2-breath))

	maxR := baseR * 1.25
	x0 := int(math.Max(0, cx-maxR-2))
	x1 := int(math.Min(w-1, cx+maxR+2))
	y0 := int(math.Max(0, cy-maxR-2))
	y1 := int(math.Min(h-1, cy+maxR+2))

	p3 := phase(t, period, 3)
	p5 := phase(t, period, 5)
	edge := 2.5 * scaleFactor

	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - cy
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			d := math.Sqrt(dx*dx + dy*dy)
			if d > maxR {
				continue
			}
			ang := math.Atan2(dy, dx)
			// Two harmonics keep the outline organic but closed.
			wobble := 1 + 0.06*math.Sin(3*ang+p3) + 0.03*math.Sin(5*ang-p5)
			r := baseR * wobble
			if d > r+edge {
				continue
			}
			a := 1 - render.Smoothstep(r-edge, r+edge, d)
			// Core brighter than rim.
			core := 1 - render.Clamp01(d/r)
			cr := 120 + 60*core + 20*breath
			cg := 150 + 50*core
			cb := 190 + 40*core
			render.BlendRGB(dst, x, y, cr, cg, cb, a*0.85)
		}
	}
}
