package engine

import (
	"image"
	"sync"
	"time"

	"github.com/ivlev/loopviz/internal/clock"
	"github.com/ivlev/loopviz/internal/modes"
	"github.com/ivlev/loopviz/internal/render"
	"github.com/ivlev/loopviz/internal/scale"
)

// State models the engine lifecycle:
// uninitialized -> idle -> running -> stopped -> destroyed.
type State int

const (
	StateUninitialized State = iota
	StateIdle
	StateRunning
	StateStopped
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	case StateDestroyed:
		return "destroyed"
	}
	return "unknown"
}

// FrameCallback receives each completed frame together with the loop time it
// was rendered at. The buffer is owned by the engine and valid only for the
// duration of the call.
type FrameCallback func(frame *image.RGBA, loopTime float64)

// Engine owns the loop clock and the active render function, and drives the
// per-frame loop. Independently constructed engines share no state, so a
// live preview and an export can run concurrently.
//
// All rendering happens on one goroutine; control calls (SetMode, Resize,
// Stop, ...) are serialized against it with a mutex and take effect no later
// than the next frame, never mid-frame.
type Engine struct {
	mu sync.Mutex

	state    State
	registry *modes.Registry
	clk      *clock.LoopClock
	active   modes.Descriptor

	sc     scale.Context
	buffer *image.RGBA // backing buffer
	coarse *image.RGBA // render target for the upscale strategy

	fps     int
	onFrame FrameCallback

	running bool
	done    chan struct{}
}

// New creates an uninitialized engine over the given registry. The first
// registered mode becomes active by default.
func New(registry *modes.Registry, fps int, onFrame FrameCallback) *Engine {
	if fps <= 0 {
		fps = 30
	}
	e := &Engine{
		state:    StateUninitialized,
		registry: registry,
		clk:      clock.NewLoopClock(30),
		fps:      fps,
		onFrame:  onFrame,
	}
	if all := registry.All(); len(all) > 0 {
		e.active = all[0]
	}
	return e
}

// Init binds a backing buffer sized from the window dimensions and device
// pixel ratio. No frames are rendered until Start.
func (e *Engine) Init(winWidth, winHeight int, dpr float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.applyScale(scale.Compute(winWidth, winHeight, dpr))
	e.state = StateIdle
}

// SetMode swaps the active render function. Unknown ids are deliberately
// ignored: the previous mode stays active and no error is raised.
func (e *Engine) SetMode(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if d, ok := e.registry.Lookup(id); ok {
		e.active = d
	}
}

// Mode returns the id of the active render function.
func (e *Engine) Mode() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active.ID
}

// SetLoopPeriod forwards to the clock, clamping to the supported range.
func (e *Engine) SetLoopPeriod(seconds float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clk.SetPeriod(seconds)
}

// LoopPeriod returns the effective loop period in seconds.
func (e *Engine) LoopPeriod() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clk.Period()
}

// Resize recomputes the scale context and buffers. The loop clock is not
// touched: visual continuity across a resize is required. Takes effect on
// the next frame.
func (e *Engine) Resize(winWidth, winHeight int, dpr float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateUninitialized || e.state == StateDestroyed {
		return
	}
	e.applyScale(scale.Compute(winWidth, winHeight, dpr))
}

// ScaleContext returns the sizing currently in effect.
func (e *Engine) ScaleContext() scale.Context {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sc
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Start transitions idle/stopped -> running, resumes the clock and begins
// the frame loop. The loop re-checks the running flag every iteration so
// Stop halts it cleanly without cancelling an in-flight frame.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateIdle && e.state != StateStopped {
		return
	}
	e.state = StateRunning
	e.running = true
	e.done = make(chan struct{})
	e.clk.Resume()
	go e.loop(e.done)
}

// Stop pauses the clock and halts scheduling. Idempotent.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.state != StateRunning {
		e.mu.Unlock()
		return
	}
	e.running = false
	e.state = StateStopped
	e.clk.Pause()
	done := e.done
	e.mu.Unlock()

	// Wait for the loop goroutine to observe the flag; no frame is ever
	// torn by a stop.
	<-done
}

// Destroy stops the loop and releases the buffers. Using the engine after
// Destroy is a programmer error and is not handled gracefully.
func (e *Engine) Destroy() {
	e.Stop()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = StateDestroyed
	e.buffer = nil
	e.coarse = nil
}

// Step renders exactly one frame at the clock's current loop time and
// invokes the frame callback. Useful for hosts that drive their own
// scheduler instead of Start.
func (e *Engine) Step() {
	e.mu.Lock()
	e.renderLocked()
	frame := e.buffer
	lt := e.clk.CurrentLoopTime()
	cb := e.onFrame
	e.mu.Unlock()
	if cb != nil && frame != nil {
		cb(frame, lt)
	}
}

func (e *Engine) loop(done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(time.Second / time.Duration(e.fps))
	defer ticker.Stop()

	for range ticker.C {
		e.mu.Lock()
		if !e.running {
			e.mu.Unlock()
			return
		}
		e.renderLocked()
		frame := e.buffer
		lt := e.clk.CurrentLoopTime()
		cb := e.onFrame
		e.mu.Unlock()

		if cb != nil && frame != nil {
			cb(frame, lt)
		}
	}
}

// renderLocked invokes the active render function on the current render
// target with the current loop parameters. Caller holds e.mu.
func (e *Engine) renderLocked() {
	if e.buffer == nil || e.active.Render == nil {
		return
	}
	target := e.buffer
	if e.sc.Strategy == scale.StrategyUpscale {
		target = e.coarse
	}

	b := target.Bounds()
	e.active.Render(target, e.clk.CurrentLoopTime(), b.Dx(), b.Dy(), e.clk.Period(), e.sc.Factor)

	if e.sc.Strategy == scale.StrategyUpscale {
		render.UpscaleFast(e.buffer, e.coarse)
	}
}

func (e *Engine) applyScale(sc scale.Context) {
	e.sc = sc
	e.buffer = image.NewRGBA(image.Rect(0, 0, sc.BufferWidth, sc.BufferHeight))
	if sc.Strategy == scale.StrategyUpscale {
		e.coarse = image.NewRGBA(image.Rect(0, 0, sc.RenderWidth, sc.RenderHeight))
	} else {
		e.coarse = nil
	}
}
