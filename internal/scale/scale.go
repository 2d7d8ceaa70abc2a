package scale

import "math"

// Tunable constants. The pixel ceiling and the reference resolution are
// empirical performance knobs, not derived invariants.
const (
	// MaxPixels caps the backing buffer at ~16 megapixels. Above this the
	// device pixel ratio is reduced so memory stays bounded on very large
	// or high-density displays.
	MaxPixels = 16_000_000

	// Reference resolution for the scale factor (1920x1080 at DPR 1).
	RefWidth  = 1920
	RefHeight = 1080

	// Buffers more than 2x the reference area render through a coarse
	// intermediate buffer and get upscaled, instead of drawing every pixel.
	upscaleAreaThreshold = 2 * RefWidth * RefHeight

	// Coarse buffer linear size relative to the full buffer when the
	// upscale strategy is selected.
	upscaleRenderScale = 0.5
)

// Strategy selects how a frame reaches the backing buffer. Decided once per
// resize, never per frame.
type Strategy int

const (
	// StrategyDirect renders straight into the backing buffer.
	StrategyDirect Strategy = iota
	// StrategyUpscale renders into a half-size coarse buffer and smoothly
	// upscales to the backing buffer.
	StrategyUpscale
)

func (s Strategy) String() string {
	if s == StrategyUpscale {
		return "upscale"
	}
	return "direct"
}

// Context is the resolved sizing for one backing buffer. It is derived fresh
// on every resize and replaced wholesale, never mutated in place.
type Context struct {
	BufferWidth  int
	BufferHeight int

	// DPR actually applied, after the pixel-ceiling clamp.
	DPR float64

	// Factor multiplies particle counts (quadratically), stroke widths and
	// sample spacing (linearly) in render functions. Never below 1.
	Factor float64

	Strategy Strategy

	// Coarse buffer dimensions when Strategy is StrategyUpscale, otherwise
	// equal to the buffer dimensions.
	RenderWidth  int
	RenderHeight int
}

// ClampDPR reduces a raw device pixel ratio so that
// width*height*dpr^2 <= MaxPixels. A ratio already under the ceiling passes
// through unmodified.
func ClampDPR(winWidth, winHeight int, rawDPR float64) float64 {
	if rawDPR <= 0 || math.IsNaN(rawDPR) {
		rawDPR = 1
	}
	area := float64(winWidth) * float64(winHeight)
	if area <= 0 {
		return rawDPR
	}
	if area*rawDPR*rawDPR <= MaxPixels {
		return rawDPR
	}
	return math.Sqrt(MaxPixels / area)
}

// Factor computes the scale factor for a backing buffer: its linear size
// relative to the 1920x1080 reference, floored at 1 so tiny viewports never
// degenerate particle counts to zero. Pure and idempotent.
func Factor(bufferWidth, bufferHeight int) float64 {
	area := float64(bufferWidth) * float64(bufferHeight)
	if area <= 0 {
		return 1
	}
	f := math.Sqrt(area / (RefWidth * RefHeight))
	if f < 1 || math.IsNaN(f) {
		return 1
	}
	return f
}

// Compute resolves a window size and raw device pixel ratio into a full
// Context: clamped DPR, backing buffer size, scale factor and draw strategy.
// Side-effect-free; the same inputs always produce the same Context.
func Compute(winWidth, winHeight int, rawDPR float64) Context {
	if winWidth < 1 {
		winWidth = 1
	}
	if winHeight < 1 {
		winHeight = 1
	}

	dpr := ClampDPR(winWidth, winHeight, rawDPR)
	bw := int(math.Round(float64(winWidth) * dpr))
	bh := int(math.Round(float64(winHeight) * dpr))
	if bw < 1 {
		bw = 1
	}
	if bh < 1 {
		bh = 1
	}

	ctx := Context{
		BufferWidth:  bw,
		BufferHeight: bh,
		DPR:          dpr,
		Factor:       Factor(bw, bh),
		Strategy:     StrategyDirect,
		RenderWidth:  bw,
		RenderHeight: bh,
	}

	if bw*bh > upscaleAreaThreshold {
		ctx.Strategy = StrategyUpscale
		ctx.RenderWidth = int(float64(bw) * upscaleRenderScale)
		ctx.RenderHeight = int(float64(bh) * upscaleRenderScale)
		if ctx.RenderWidth < 1 {
			ctx.RenderWidth = 1
		}
		if ctx.RenderHeight < 1 {
			ctx.RenderHeight = 1
		}
	}

	return ctx
}
