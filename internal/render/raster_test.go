package render

import (
	"image"
	"math"
	"testing"
)

func TestClampHandlesNaN(t *testing.T) {
	if got := Clamp(math.NaN(), 0, 255); got != 0 {
		t.Errorf("NaN must collapse to the lower bound, got %v", got)
	}
	if got := Clamp(300, 0, 255); got != 255 {
		t.Errorf("expected 255, got %v", got)
	}
	if got := Clamp(-5, 0, 255); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
}

func TestHash01DeterministicAndBounded(t *testing.T) {
	for i := uint32(0); i < 10000; i++ {
		v := Hash01(i)
		if v < 0 || v >= 1 {
			t.Fatalf("Hash01(%d) = %v out of [0,1)", i, v)
		}
		if v != Hash01(i) {
			t.Fatalf("Hash01(%d) not deterministic", i)
		}
	}
	// Neighboring indices must decorrelate, otherwise star fields band.
	if Hash01(1) == Hash01(2) && Hash01(2) == Hash01(3) {
		t.Error("hash produces identical values for consecutive indices")
	}
}

func TestGlowDiscOutOfBoundsSafe(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	// Centers far outside, negative radius, NaN inputs: none may panic.
	GlowDisc(img, -100, -100, 10, 255, 255, 255, 1)
	GlowDisc(img, 8, 8, -5, 255, 255, 255, 1)
	GlowDisc(img, math.NaN(), 8, 10, 255, 255, 255, 1)
	GlowDisc(img, 8, 8, math.NaN(), 255, 255, 255, 1)
}

func TestGlowDiscAdditiveSaturates(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 9, 9))
	for i := 0; i < 20; i++ {
		GlowDisc(img, 4.5, 4.5, 4, 255, 255, 255, 1)
	}
	c := img.RGBAAt(4, 4)
	if c.R != 255 || c.A != 255 {
		t.Errorf("repeated additive stamps must saturate at white, got %v", c)
	}
}

func TestVerticalGradientEndpoints(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 64))
	VerticalGradient(img, 10, 20, 30, 200, 210, 220)

	top := img.RGBAAt(0, 0)
	if top.R != 10 || top.G != 20 || top.B != 30 {
		t.Errorf("top row should match the top color, got %v", top)
	}
	bot := img.RGBAAt(0, 63)
	if bot.R != 200 || bot.G != 210 || bot.B != 220 {
		t.Errorf("bottom row should match the bottom color, got %v", bot)
	}
}

func TestSmoothstepEdges(t *testing.T) {
	if got := Smoothstep(0, 1, -1); got != 0 {
		t.Errorf("below edge0: expected 0, got %v", got)
	}
	if got := Smoothstep(0, 1, 2); got != 1 {
		t.Errorf("above edge1: expected 1, got %v", got)
	}
	if got := Smoothstep(0, 1, 0.5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("midpoint: expected 0.5, got %v", got)
	}
	// Equal edges must not divide by zero.
	if got := Smoothstep(1, 1, 2); got != 1 {
		t.Errorf("degenerate edges: expected 1, got %v", got)
	}
}

func TestUpscaleFillsDestination(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	Fill(src, 100, 150, 200)
	dst := image.NewRGBA(image.Rect(0, 0, 32, 32))

	Upscale(dst, src)
	c := dst.RGBAAt(31, 31)
	if c.R == 0 && c.G == 0 && c.B == 0 {
		t.Error("Upscale left destination corner unpainted")
	}

	dst2 := image.NewRGBA(image.Rect(0, 0, 32, 32))
	UpscaleFast(dst2, src)
	c2 := dst2.RGBAAt(0, 0)
	if c2.R == 0 && c2.G == 0 && c2.B == 0 {
		t.Error("UpscaleFast left destination corner unpainted")
	}
}
