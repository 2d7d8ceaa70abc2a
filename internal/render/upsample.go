package render

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Upscale stretches src over the whole of dst with Catmull-Rom resampling.
// Used when a frame was rendered into a coarse buffer (upscale strategy,
// plasma/nebula density grids) and needs smooth interpolation to full size.
func Upscale(dst, src *image.RGBA) {
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
}

// UpscaleFast stretches src over dst with bilinear resampling. Cheaper than
// Upscale; used on the live path where per-frame cost matters more than
// resampling quality.
func UpscaleFast(dst, src *image.RGBA) {
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
}
