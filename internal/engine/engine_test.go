package engine

import (
	"image"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ivlev/loopviz/internal/modes"
	"github.com/ivlev/loopviz/internal/scale"
)

func testRegistry() *modes.Registry {
	r := modes.NewRegistry()
	fill := func(val uint8) modes.RenderFunc {
		return func(dst *image.RGBA, t float64, w, h int, period, sf float64) {
			for i := range dst.Pix {
				dst.Pix[i] = val
			}
		}
	}
	r.Register(modes.Descriptor{ID: "alpha", Name: "Alpha", Render: fill(10)})
	r.Register(modes.Descriptor{ID: "beta", Name: "Beta", Render: fill(20)})
	return r
}

func TestLifecycle(t *testing.T) {
	e := New(testRegistry(), 30, nil)
	if e.State() != StateUninitialized {
		t.Fatalf("fresh engine should be uninitialized, got %v", e.State())
	}

	e.Init(640, 360, 1)
	if e.State() != StateIdle {
		t.Fatalf("after Init: expected idle, got %v", e.State())
	}

	e.Start()
	if e.State() != StateRunning {
		t.Fatalf("after Start: expected running, got %v", e.State())
	}

	e.Stop()
	if e.State() != StateStopped {
		t.Fatalf("after Stop: expected stopped, got %v", e.State())
	}
	// Stop is idempotent.
	e.Stop()
	if e.State() != StateStopped {
		t.Fatalf("double Stop changed state to %v", e.State())
	}

	e.Destroy()
	if e.State() != StateDestroyed {
		t.Fatalf("after Destroy: expected destroyed, got %v", e.State())
	}
}

func TestSetModeUnknownIsNoOp(t *testing.T) {
	e := New(testRegistry(), 30, nil)
	e.Init(64, 64, 1)

	e.SetMode("beta")
	if e.Mode() != "beta" {
		t.Fatalf("expected beta active, got %s", e.Mode())
	}

	e.SetMode("nonexistent")
	if e.Mode() != "beta" {
		t.Errorf("unknown mode must leave the active mode unchanged, got %s", e.Mode())
	}
}

func TestDefaultModeIsFirstRegistered(t *testing.T) {
	e := New(testRegistry(), 30, nil)
	if e.Mode() != "alpha" {
		t.Errorf("expected first registered mode active by default, got %s", e.Mode())
	}
}

func TestStepRendersActiveMode(t *testing.T) {
	var got atomic.Uint32
	e := New(testRegistry(), 30, func(frame *image.RGBA, loopTime float64) {
		got.Store(uint32(frame.Pix[0]))
	})
	e.Init(32, 32, 1)

	e.SetMode("beta")
	e.Step()
	if got.Load() != 20 {
		t.Errorf("expected beta's fill value 20, got %d", got.Load())
	}

	e.SetMode("alpha")
	e.Step()
	if got.Load() != 10 {
		t.Errorf("mode switch must take effect on the next frame, got %d", got.Load())
	}
}

func TestResizeKeepsClock(t *testing.T) {
	e := New(testRegistry(), 30, nil)
	e.Init(640, 360, 1)
	e.SetLoopPeriod(20)
	e.Start()
	time.Sleep(50 * time.Millisecond)
	e.Stop()

	before := e.clk.Elapsed()
	if before <= 0 {
		t.Fatalf("clock did not advance while running: %v", before)
	}

	e.Resize(1280, 720, 2)
	if after := e.clk.Elapsed(); after != before {
		t.Errorf("resize must not reset the clock: %v -> %v", before, after)
	}
	if sc := e.ScaleContext(); sc.BufferWidth != 2560 {
		t.Errorf("resize did not apply: %+v", sc)
	}
}

func TestLoopPeriodClamped(t *testing.T) {
	e := New(testRegistry(), 30, nil)
	e.SetLoopPeriod(5)
	if e.LoopPeriod() != 8 {
		t.Errorf("expected clamp to 8, got %v", e.LoopPeriod())
	}
	e.SetLoopPeriod(120)
	if e.LoopPeriod() != 60 {
		t.Errorf("expected clamp to 60, got %v", e.LoopPeriod())
	}
}

func TestFrameLoopDeliversFrames(t *testing.T) {
	var frames atomic.Int32
	e := New(testRegistry(), 120, func(frame *image.RGBA, loopTime float64) {
		frames.Add(1)
	})
	e.Init(32, 32, 1)
	e.Start()

	deadline := time.Now().Add(2 * time.Second)
	for frames.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	e.Stop()

	if frames.Load() < 3 {
		t.Errorf("expected at least 3 frames, got %d", frames.Load())
	}

	// After Stop, no further frames are delivered.
	n := frames.Load()
	time.Sleep(50 * time.Millisecond)
	if frames.Load() != n {
		t.Errorf("frames delivered after Stop: %d -> %d", n, frames.Load())
	}
}

func TestUpscaleStrategyBuffers(t *testing.T) {
	e := New(testRegistry(), 30, nil)
	e.Init(3840, 2160, 1)
	sc := e.ScaleContext()
	if sc.Strategy != scale.StrategyUpscale {
		t.Fatalf("4k should select the upscale strategy, got %v", sc.Strategy)
	}
	// A stepped frame must still fill the full backing buffer.
	e.Step()
	if e.buffer.Pix[0] == 0 && e.buffer.Pix[len(e.buffer.Pix)-4] == 0 {
		t.Error("upscale path did not populate the backing buffer")
	}
}
