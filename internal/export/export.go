package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/loopviz/internal/clock"
	"github.com/ivlev/loopviz/internal/modes"
	"github.com/ivlev/loopviz/internal/scale"
	"github.com/ivlev/loopviz/internal/system"
)

// ErrEncoderUnavailable is returned by export setup when no compatible
// output encoding exists in the host environment. Nothing is rendered in
// that case; failing fast beats producing a corrupt file.
var ErrEncoderUnavailable = errors.New("no compatible video encoder available")

// ErrUnknownMode is returned when the requested mode id is not registered.
// Unlike the live engine (which ignores unknown ids), export setup is
// allowed to fail hard.
var ErrUnknownMode = errors.New("unknown visual mode")

// Options describes one export job.
type Options struct {
	ModeID     string
	Width      int
	Height     int
	FPS        int
	Duration   float64 // total seconds of output
	LoopPeriod float64 // clamped to the clock's supported range
}

// Result is the finished encoding, handed to the host for download/save.
type Result struct {
	Data          []byte
	MimeType      string
	FileExtension string
}

// Progress is invoked after each encoded frame with the 1-based frame index
// and the total frame count.
type Progress func(frameIndex, totalFrames int)

// FrameWriter consumes raw RGBA frames and produces an encoded Result.
type FrameWriter interface {
	// Begin prepares the writer for frames of the given geometry. A writer
	// with no usable encoder must fail here, before any frame is rendered.
	Begin(ctx context.Context, width, height, fps int) error
	// WriteFrame consumes one frame of tightly packed RGBA pixels.
	WriteFrame(pix []byte) error
	// Finish finalizes and returns the encoded output.
	Finish() (Result, error)
	// Abort discards all in-progress output. Safe after a failed Begin.
	Abort()
}

type frameItem struct {
	index int
	img   *image.RGBA
}

// Run renders an export job frame by frame against an offscreen buffer and
// feeds the writer. Frame time steps deterministically as frameIndex/fps
// (mapped into the loop), never following the wall clock, so the exported
// loop boundary is pixel-exact regardless of host performance.
//
// Cancellation is cooperative: the frame loop checks the context once per
// frame, and a cancelled job discards partial output.
func Run(ctx context.Context, registry *modes.Registry, opts Options, w FrameWriter, progress Progress) (Result, error) {
	desc, ok := registry.Lookup(opts.ModeID)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownMode, opts.ModeID)
	}

	width, height := opts.Width, opts.Height
	if width < 16 || height < 16 {
		return Result{}, fmt.Errorf("export size %dx%d too small", width, height)
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = 30
	}
	period := clock.ClampPeriod(opts.LoopPeriod)
	duration := opts.Duration
	if duration <= 0 {
		// One full loop by default: the natural unit for a seamless clip.
		duration = period
	}

	totalFrames := int(math.Round(duration * float64(fps)))
	if totalFrames < 1 {
		totalFrames = 1
	}

	if err := system.CheckFrameBudget(width, height); err != nil {
		return Result{}, err
	}
	if err := w.Begin(ctx, width, height, fps); err != nil {
		return Result{}, err
	}

	factor := scale.Factor(width, height)
	pool := system.NewFramePool(width, height)

	g, gctx := errgroup.WithContext(ctx)
	frames := make(chan frameItem, 2)

	// Producer: deterministic fixed-step rendering.
	g.Go(func() error {
		defer close(frames)
		for i := 0; i < totalFrames; i++ {
			if err := gctx.Err(); err != nil {
				return err
			}
			t := math.Mod(float64(i)/float64(fps), period)
			img := pool.Get()
			desc.Render(img, t, width, height, period, factor)
			select {
			case frames <- frameItem{index: i, img: img}:
			case <-gctx.Done():
				pool.Put(img)
				return gctx.Err()
			}
		}
		return nil
	})

	// Writer: feeds the encoder and reports progress in frame order.
	g.Go(func() error {
		for item := range frames {
			if err := w.WriteFrame(item.img.Pix); err != nil {
				pool.Put(item.img)
				return err
			}
			pool.Put(item.img)
			if progress != nil {
				progress(item.index+1, totalFrames)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		w.Abort()
		return Result{}, err
	}
	return w.Finish()
}
