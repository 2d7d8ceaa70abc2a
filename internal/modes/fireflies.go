package modes

import (
	"image"
	"math"

	"github.com/ivlev/loopviz/internal/render"
)

// renderFireflies scatters blinking fireflies over a summer-night gradient.
// Every firefly is fully determined by its index hash: home position, the
// closed lissajous wander path, and the blink phase. Counts grow with the
// square of the scale factor, clamped to [40, 800].
func renderFireflies(dst *image.RGBA, t float64, width, height int, period, scaleFactor float64) {
	render.VerticalGradient(dst, 6, 14, 26, 16, 26, 14)

	w := float64(width)
	h := float64(height)

	// Moon glow in the upper third.
	render.GlowDisc(dst, w*0.78, h*0.2, 0.16*math.Min(w, h), 70, 75, 90, 0.5)

	count := particleCount(140, scaleFactor, 40, 800)
	wander := 0.04 * math.Min(w, h)

	for i := 0; i < count; i++ {
		idx := uint32(i)
		hx := render.Hash2(idx, 21)
		hy := render.Hash2(idx, 22)

		// Whole-cycle wander: 1 or 2 loops around the home point per loop.
		cx := float64(1 + i%2)
		cy := float64(1 + (i/2)%2)
		px := tau * render.Hash2(idx, 23)
		py := tau * render.Hash2(idx, 24)

		x := hx*w + wander*math.Sin(phase(t, period, cx)+px)
		y := hy*h + wander*0.7*math.Sin(phase(t, period, cy)+py)

		// Blink: sharpened sine so flies are dark most of the time.
		blinkCycles := 2 + float64(i%3)
		bl := 0.5 + 0.5*math.Sin(phase(t, period, blinkCycles)+tau*render.Hash2(idx, 25))
		bl = bl * bl * bl

		radius := (1.5 + 3.5*bl) * scaleFactor
		render.GlowDisc(dst, x, y, radius, 200*bl, 220*bl, 70*bl, 0.9)
	}
}
