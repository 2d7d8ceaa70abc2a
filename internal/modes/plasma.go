package modes

import (
	"image"
	"math"

	"github.com/ivlev/loopviz/internal/render"
)

// renderPlasma computes the classic plasma interference field: a scalar sum
// of five sine terms (horizontal, vertical, diagonal, radial-from-center and
// a product term), each advancing a whole number of cycles per loop. The
// scalar maps to RGB through three phase-shifted sinusoidal channels.
//
// The field is evaluated on a coarse grid whose cell size grows with the
// scale factor; when the cell is larger than one pixel the coarse image is
// upsampled with Catmull-Rom smoothing, keeping per-frame cost roughly
// constant across display sizes.
func renderPlasma(dst *image.RGBA, t float64, width, height int, period, scaleFactor float64) {
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

	pH := phase(t, period, 2)
	pV := phase(t, period, 1)
	pD := phase(t, period, 3)
	pRad := phase(t, period, 2)
	pProd := phase(t, period, 1)

	for y := 0; y < ch; y++ {
		v := float64(y) / float64(ch) * 8.0
		vc := float64(y)/float64(ch) - 0.5
		for x := 0; x < cw; x++ {
			u := float64(x) / float64(cw) * 8.0
			uc := float64(x)/float64(cw) - 0.5

			field := math.Sin(u+pH) +
				math.Sin(v+pV) +
				math.Sin((u+v)/2+pD) +
				math.Sin(math.Sqrt(uc*uc+vc*vc)*12+pRad) +
				math.Sin(u/2+pProd)*math.Sin(v/2-pProd)

			// field ∈ [-5, 5]; each channel is a phase-shifted sinusoid.
			r := 127.5 * (1 + math.Sin(field*0.9))
			g := 127.5 * (1 + math.Sin(field*0.9+tau/3))
			b := 127.5 * (1 + math.Sin(field*0.9+2*tau/3))

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
