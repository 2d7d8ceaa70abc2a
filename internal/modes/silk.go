package modes

import (
	"image"
	"math"

	"github.com/ivlev/loopviz/internal/render"
)

// renderSilk folds two interference wave trains in a frame that rotates
// exactly once per loop, giving the impression of fabric turning in slow
// motion. Evaluated on a coarse grid and upsampled, like nebula.
func renderSilk(dst *image.RGBA, t float64, width, height int, period, scaleFactor float64) {
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

	rot := phase(t, period, 1) // one full rotation per loop
	cosR := math.Cos(rot)
	sinR := math.Sin(rot)
	p1 := phase(t, period, 2)
	p2 := phase(t, period, 3)
	p3 := phase(t, period, 1)

	for y := 0; y < ch; y++ {
		vy := (float64(y)/float64(ch) - 0.5) * 6.0
		for x := 0; x < cw; x++ {
			vx := (float64(x)/float64(cw) - 0.5) * 6.0

			u := vx*cosR + vy*sinR
			v := -vx*sinR + vy*cosR

			val := math.Sin(u*2.1+p1)*math.Sin(v*1.7-p2) + 0.5*math.Sin((u+v)*1.3+p3)
			k := render.Clamp01(0.5 + 0.33*val)
			k = render.Smoothstep(0, 1, k)

			// Champagne highlight over a midnight base.
			r := render.Lerp(16, 214, k)
			g := render.Lerp(18, 188, k)
			b := render.Lerp(40, 152, k)
			// Specular fold line where the field crosses zero.
			fold := math.Exp(-val * val * 8)
			r += 40 * fold
			g += 38 * fold
			b += 34 * fold

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
}
