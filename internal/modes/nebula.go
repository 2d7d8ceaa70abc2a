package modes

import (
	"image"
	"math"

	"github.com/ivlev/loopviz/internal/render"
)

// Nebula palette anchors, back to front.
var nebulaDeep = [3]float64{8, 6, 24}
var nebulaMid = [3]float64{72, 30, 96}
var nebulaHot = [3]float64{40, 120, 140}

// renderNebula layers a drifting cloud-density field under a twinkling star
// overlay. The density field is evaluated on a coarse grid (cell size grows
// with the scale factor) and smoothly upsampled, so cost stays bounded on
// large buffers.
func renderNebula(dst *image.RGBA, t float64, width, height int, period, scaleFactor float64) {
	cell := coarseCell(scaleFactor)
	cw := (width + cell - 1) / cell
	ch := (height + cell - 1) / cell
	if cw < 1 {
		cw = 1
	}
	if ch < 1 {
		ch = 1
	}

	target := dst
	if cell > 1 {
		target = image.NewRGBA(image.Rect(0, 0, cw, ch))
	}

	p1 := phase(t, period, 1)
	p2 := phase(t, period, 2)
	p3 := phase(t, period, 1)
	p4 := phase(t, period, 3)

	for y := 0; y < ch; y++ {
		v := float64(y) / float64(ch) * 5.0
		for x := 0; x < cw; x++ {
			u := float64(x) / float64(cw) * 7.0

			n := math.Sin(2.4*u+0.9*v+p1)*math.Sin(1.9*v-0.6*u+p2) +
				0.6*math.Sin(4.1*u-2.7*v-p3) +
				0.4*math.Sin(3.3*(u+v)+p4)
			d := render.Clamp01(0.5 + 0.28*n)

			// Two-stage palette ramp: deep -> mid on density, mid -> hot on
			// density squared so only the densest cores glow teal.
			var r, g, b float64
			k := render.Smoothstep(0.15, 0.85, d)
			r = render.Lerp(nebulaDeep[0], nebulaMid[0], k)
			g = render.Lerp(nebulaDeep[1], nebulaMid[1], k)
			b = render.Lerp(nebulaDeep[2], nebulaMid[2], k)
			hot := d * d * 0.9
			r = render.Lerp(r, nebulaHot[0], hot)
			g = render.Lerp(g, nebulaHot[1], hot)
			b = render.Lerp(b, nebulaHot[2], hot)

			i := target.PixOffset(x, y)
			target.Pix[i] = uint8(render.Clamp(r, 0, 255))
			target.Pix[i+1] = uint8(render.Clamp(g, 0, 255))
			target.Pix[i+2] = uint8(render.Clamp(b, 0, 255))
			target.Pix[i+3] = 255
		}
	}

	if cell > 1 {
		render.Upscale(dst, target)
	}

	// Star field: positions from the index hash, twinkle from whole-cycle
	// oscillators with hashed phase offsets.
	stars := particleCount(180, scaleFactor, 40, 800)
	w := float64(width)
	h := float64(height)
	for i := 0; i < stars; i++ {
		idx := uint32(i)
		sx := render.Hash2(idx, 1) * w
		sy := render.Hash2(idx, 2) * h
		cycles := 1 + float64(i%3)
		tw := 0.55 + 0.45*math.Sin(phase(t, period, cycles)+tau*render.Hash2(idx, 4))
		size := (0.8 + 1.6*render.Hash2(idx, 3)) * scaleFactor
		bright := 140 * tw
		render.GlowDisc(dst, sx, sy, size, bright, bright, bright*1.1, 0.9)
	}
}
