package modes

import (
	"image"
	"math"

	"github.com/ivlev/loopviz/internal/render"
)

// renderGradientFlow paints a hue-rotating vertical wash with three large
// light orbs drifting on closed lissajous paths. The hue completes one full
// rotation per loop; the orbs complete one or two orbits.
func renderGradientFlow(dst *image.RGBA, t float64, width, height int, period, scaleFactor float64) {
	hue := phase(t, period, 1)

	topR := 40 + 35*math.Sin(hue)
	topG := 35 + 30*math.Sin(hue+tau/3)
	topB := 70 + 40*math.Sin(hue+2*tau/3)
	botR := 15 + 12*math.Sin(hue+tau/2)
	botG := 12 + 10*math.Sin(hue+tau/2+tau/3)
	botB := 35 + 20*math.Sin(hue+tau/2+2*tau/3)
	render.VerticalGradient(dst, topR, topG, topB, botR, botG, botB)

	w := float64(width)
	h := float64(height)
	minDim := math.Min(w, h)

	orbs := []struct {
		cyclesX, cyclesY float64
		phaseX, phaseY   float64
		radius           float64
		r, g, b          float64
	}{
		{1, 1, 0, tau / 4, 0.38, 90, 60, 130},
		{2, 1, tau / 3, 0, 0.30, 40, 80, 120},
		{1, 2, tau / 2, tau / 6, 0.26, 110, 50, 90},
	}

	for _, o := range orbs {
		cx := w*0.5 + w*0.28*math.Sin(phase(t, period, o.cyclesX)+o.phaseX)
		cy := h*0.5 + h*0.24*math.Sin(phase(t, period, o.cyclesY)+o.phaseY)
		render.GlowDisc(dst, cx, cy, o.radius*minDim, o.r, o.g, o.b, 0.55)
	}
}
