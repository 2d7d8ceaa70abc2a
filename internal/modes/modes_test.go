package modes

import (
	"bytes"
	"image"
	"math"
	"testing"
)

const (
	testW = 160
	testH = 90
)

func renderFrame(fn RenderFunc, t, period, sf float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, testW, testH))
	fn(img, t, testW, testH, period, sf)
	return img
}

// maxPixelDiff returns the largest per-channel difference between two
// equally sized buffers.
func maxPixelDiff(a, b *image.RGBA) int {
	max := 0
	for i := range a.Pix {
		d := int(a.Pix[i]) - int(b.Pix[i])
		if d < 0 {
			d = -d
		}
		if d > max {
			max = d
		}
	}
	return max
}

// Every mode must produce visually identical frames at loop time 0 and at
// loop time period-ε, for every supported period extreme.
func TestLoopSeamless(t *testing.T) {
	const eps = 1e-6

	for _, d := range Builtin().All() {
		for _, period := range []float64{8, 30, 60} {
			t.Run(d.ID, func(t *testing.T) {
				start := renderFrame(d.Render, 0, period, 1)
				end := renderFrame(d.Render, period-eps, period, 1)

				// ε of a second moves every oscillator by a sub-quantization
				// amount; allow a rounding step per compositing pass.
				if diff := maxPixelDiff(start, end); diff > 2 {
					t.Errorf("%s: loop seam at period %v, max pixel diff %d", d.ID, period, diff)
				}
			})
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	for _, d := range Builtin().All() {
		t.Run(d.ID, func(t *testing.T) {
			a := renderFrame(d.Render, 7.3, 30, 1.5)
			b := renderFrame(d.Render, 7.3, 30, 1.5)
			if !bytes.Equal(a.Pix, b.Pix) {
				t.Errorf("%s: identical inputs produced different buffers", d.ID)
			}
		})
	}
}

// Render functions fully repaint the buffer: prior contents must not leak
// into the next frame.
func TestRenderOverwritesBuffer(t *testing.T) {
	for _, d := range Builtin().All() {
		t.Run(d.ID, func(t *testing.T) {
			clean := renderFrame(d.Render, 3, 30, 1)

			dirty := image.NewRGBA(image.Rect(0, 0, testW, testH))
			for i := range dirty.Pix {
				dirty.Pix[i] = 0xAB
			}
			d.Render(dirty, 3, testW, testH, 30, 1)

			if !bytes.Equal(clean.Pix, dirty.Pix) {
				t.Errorf("%s: output depends on previous buffer contents", d.ID)
			}
		})
	}
}

// Degenerate sizes and scale factors must render without panicking; a bad
// frame may look wrong but must never kill the loop.
func TestRenderDegenerateInputs(t *testing.T) {
	cases := []struct {
		name   string
		w, h   int
		sf     float64
		period float64
	}{
		{"tiny", 1, 1, 1, 8},
		{"thin", 320, 2, 1, 60},
		{"big scale", 64, 64, 12, 30},
		{"nan scale", 64, 64, math.NaN(), 30},
	}

	for _, d := range Builtin().All() {
		for _, tc := range cases {
			t.Run(d.ID+"/"+tc.name, func(t *testing.T) {
				defer func() {
					if r := recover(); r != nil {
						t.Errorf("%s panicked on %s input: %v", d.ID, tc.name, r)
					}
				}()
				img := image.NewRGBA(image.Rect(0, 0, tc.w, tc.h))
				d.Render(img, 1.5, tc.w, tc.h, tc.period, tc.sf)
			})
		}
	}
}

// Particle counts stay inside their documented clamps.
func TestParticleCountClamps(t *testing.T) {
	if got := particleCount(140, 0.1, 40, 800); got != 40 {
		t.Errorf("expected floor 40, got %d", got)
	}
	if got := particleCount(140, 50, 40, 800); got != 800 {
		t.Errorf("expected ceiling 800, got %d", got)
	}
	if got := particleCount(140, 2, 40, 800); got != 560 {
		t.Errorf("expected 140*2² = 560, got %d", got)
	}
}
