package render

import (
	"image"
	"math"
)

// Clamp bounds v to [lo, hi]. NaN collapses to lo so degenerate math inside a
// render function can never escape as a bad pixel.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 bounds v to [0, 1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Hash01 maps an index to a deterministic pseudo-random value in [0, 1).
// Stateless on purpose: the same index always yields the same value, so
// particle fields render identically for identical frame parameters.
func Hash01(i uint32) float64 {
	h := i * 2654435761
	h = (h ^ (h >> 16)) * 0x85ebca6b
	h = (h ^ (h >> 13)) * 0xc2b2ae35
	h ^= h >> 16
	return float64(h) / 4294967296.0
}

// Hash2 maps a pair of indices to a deterministic value in [0, 1).
func Hash2(i, j uint32) float64 {
	return Hash01(i*374761393 + j*668265263)
}

// Fill paints the whole buffer with one opaque color.
func Fill(img *image.RGBA, r, g, b float64) {
	cr := uint8(Clamp(r, 0, 255))
	cg := uint8(Clamp(g, 0, 255))
	cb := uint8(Clamp(b, 0, 255))
	pix := img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = cr
		pix[i+1] = cg
		pix[i+2] = cb
		pix[i+3] = 255
	}
}

// VerticalGradient paints an opaque top-to-bottom gradient.
func VerticalGradient(img *image.RGBA, topR, topG, topB, botR, botG, botB float64) {
	b := img.Bounds()
	h := b.Dy()
	if h == 0 {
		return
	}
	denom := float64(h - 1)
	if denom < 1 {
		denom = 1
	}
	for y := 0; y < h; y++ {
		t := float64(y) / denom
		r8 := uint8(Clamp(Lerp(topR, botR, t), 0, 255))
		g8 := uint8(Clamp(Lerp(topG, botG, t), 0, 255))
		b8 := uint8(Clamp(Lerp(topB, botB, t), 0, 255))
		row := img.Pix[y*img.Stride : y*img.Stride+b.Dx()*4]
		for x := 0; x < len(row); x += 4 {
			row[x] = r8
			row[x+1] = g8
			row[x+2] = b8
			row[x+3] = 255
		}
	}
}

// AddRGB additively blends a color into one pixel, saturating at white.
// Out-of-bounds coordinates are ignored.
func AddRGB(img *image.RGBA, x, y int, r, g, b float64) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return
	}
	i := img.PixOffset(x, y)
	pix := img.Pix
	pix[i] = addSat(pix[i], r)
	pix[i+1] = addSat(pix[i+1], g)
	pix[i+2] = addSat(pix[i+2], b)
	pix[i+3] = 255
}

// BlendRGB alpha-blends a color over one pixel (a in [0,1]).
func BlendRGB(img *image.RGBA, x, y int, r, g, b, a float64) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return
	}
	a = Clamp01(a)
	i := img.PixOffset(x, y)
	pix := img.Pix
	pix[i] = uint8(Clamp(float64(pix[i])*(1-a)+r*a, 0, 255))
	pix[i+1] = uint8(Clamp(float64(pix[i+1])*(1-a)+g*a, 0, 255))
	pix[i+2] = uint8(Clamp(float64(pix[i+2])*(1-a)+b*a, 0, 255))
	pix[i+3] = 255
}

// GlowDisc stamps an additive radial glow centered at (cx, cy). Intensity is
// the peak contribution in [0,1]; the falloff is quadratic toward the rim.
// Negative or NaN radii are treated as empty.
func GlowDisc(img *image.RGBA, cx, cy, radius, r, g, b, intensity float64) {
	if !(radius > 0) || math.IsNaN(cx) || math.IsNaN(cy) {
		return
	}
	intensity = Clamp01(intensity)
	bounds := img.Bounds()
	x0 := int(math.Floor(cx - radius))
	x1 := int(math.Ceil(cx + radius))
	y0 := int(math.Floor(cy - radius))
	y1 := int(math.Ceil(cy + radius))
	if x0 < bounds.Min.X {
		x0 = bounds.Min.X
	}
	if y0 < bounds.Min.Y {
		y0 = bounds.Min.Y
	}
	if x1 > bounds.Max.X-1 {
		x1 = bounds.Max.X - 1
	}
	if y1 > bounds.Max.Y-1 {
		y1 = bounds.Max.Y - 1
	}

	r2 := radius * radius
	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - cy
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			d2 := dx*dx + dy*dy
			if d2 >= r2 {
				continue
			}
			fall := 1 - math.Sqrt(d2)/radius
			a := fall * fall * intensity
			AddRGB(img, x, y, r*a, g*a, b*a)
		}
	}
}

// Ring blends an alpha-composited circle outline of the given stroke width.
// Used for ripple rings; the stroke edge is feathered by one pixel.
func Ring(img *image.RGBA, cx, cy, radius, stroke, r, g, b, alpha float64) {
	if !(radius > 0) || !(stroke > 0) {
		return
	}
	alpha = Clamp01(alpha)
	bounds := img.Bounds()
	outer := radius + stroke/2 + 1
	x0 := int(math.Floor(cx - outer))
	x1 := int(math.Ceil(cx + outer))
	y0 := int(math.Floor(cy - outer))
	y1 := int(math.Ceil(cy + outer))
	if x0 < bounds.Min.X {
		x0 = bounds.Min.X
	}
	if y0 < bounds.Min.Y {
		y0 = bounds.Min.Y
	}
	if x1 > bounds.Max.X-1 {
		x1 = bounds.Max.X - 1
	}
	if y1 > bounds.Max.Y-1 {
		y1 = bounds.Max.Y - 1
	}

	half := stroke / 2
	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - cy
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			d := math.Abs(math.Sqrt(dx*dx+dy*dy) - radius)
			if d > half+1 {
				continue
			}
			// Feather the last pixel of the stroke edge.
			edge := Clamp01(half + 1 - d)
			BlendRGB(img, x, y, r, g, b, alpha*edge)
		}
	}
}

func addSat(base uint8, add float64) uint8 {
	v := float64(base) + Clamp(add, 0, 255)
	if v > 255 {
		return 255
	}
	return uint8(v)
}
