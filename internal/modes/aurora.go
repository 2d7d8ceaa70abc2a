package modes

import (
	"image"
	"math"

	"github.com/ivlev/loopviz/internal/render"
)

type auroraRibbon struct {
	baseY    float64 // center height as a fraction of the buffer
	amp      float64 // wave amplitude fraction
	spatialF float64 // wave count across the width
	cycles   float64 // whole drift cycles per loop
	phaseOff float64
	width    float64 // half-thickness fraction
	r, g, b  float64
}

var auroraRibbons = []auroraRibbon{
	{0.32, 0.08, 2.0, 1, 0.0, 0.055, 40, 220, 120},
	{0.42, 0.10, 1.5, 2, 1.9, 0.070, 30, 170, 160},
	{0.52, 0.07, 2.5, 1, 4.1, 0.045, 90, 90, 200},
}

// renderAurora waves translucent light ribbons over a polar night sky.
// Each ribbon is drawn column by column: a vertically gaussian band whose
// center line is a sum of two sine terms drifting a whole number of cycles
// per loop.
func renderAurora(dst *image.RGBA, t float64, width, height int, period, scaleFactor float64) {
	render.VerticalGradient(dst, 4, 8, 24, 14, 10, 34)

	w := float64(width)
	h := float64(height)

	// Stars first so ribbons glow over them.
	stars := particleCount(120, scaleFactor, 40, 600)
	for i := 0; i < stars; i++ {
		idx := uint32(i)
		sx := render.Hash2(idx, 11) * w
		sy := render.Hash2(idx, 12) * h * 0.7
		tw := 0.5 + 0.5*math.Sin(phase(t, period, 1+float64(i%2))+tau*render.Hash2(idx, 13))
		render.GlowDisc(dst, sx, sy, (0.7+1.0*render.Hash2(idx, 14))*scaleFactor, 150*tw, 150*tw, 170*tw, 0.8)
	}

	for _, rb := range auroraRibbons {
		drift := phase(t, period, rb.cycles) + rb.phaseOff
		sway := phase(t, period, 1)
		halfBase := rb.width * h

		for x := 0; x < width; x++ {
			u := float64(x) / w
			center := h*rb.baseY +
				h*rb.amp*math.Sin(tau*rb.spatialF*u+drift) +
				h*rb.amp*0.35*math.Sin(tau*rb.spatialF*2.3*u-drift*2+1.3)
			half := halfBase * (1 + 0.35*math.Sin(tau*u*1.1+sway+rb.phaseOff))
			if half < 1 {
				half = 1
			}

			y0 := int(center - 3*half)
			y1 := int(center + 3*half)
			if y0 < 0 {
				y0 = 0
			}
			if y1 > height-1 {
				y1 = height - 1
			}
			for y := y0; y <= y1; y++ {
				dy := (float64(y) - center) / half
				a := math.Exp(-dy * dy)
				// Curtain shading: brighter along the lower edge.
				shade := 0.6 + 0.4*render.Clamp01(dy*0.5+0.5)
				render.AddRGB(dst, x, y, rb.r*a*shade*0.55, rb.g*a*shade*0.55, rb.b*a*shade*0.55)
			}
		}
	}
}
