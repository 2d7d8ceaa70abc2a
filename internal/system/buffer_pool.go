package system

import (
	"image"
	"sync"
)

// FramePool повторно использует буферы *image.RGBA одного размера, чтобы
// снизить нагрузку на GC в цикле экспорта (30+ кадров в секунду).
//
// Constructed by whoever owns the frame loop; there is no package-level
// instance, so concurrent exports do not share buffers.
type FramePool struct {
	rect image.Rectangle
	pool sync.Pool
}

// NewFramePool creates a pool producing buffers of the given size.
func NewFramePool(width, height int) *FramePool {
	rect := image.Rect(0, 0, width, height)
	return &FramePool{
		rect: rect,
		pool: sync.Pool{
			New: func() interface{} {
				return image.NewRGBA(rect)
			},
		},
	}
}

// Get returns a buffer from the pool or allocates a new one. Contents are
// undefined; render functions repaint every pixel.
func (p *FramePool) Get() *image.RGBA {
	return p.pool.Get().(*image.RGBA)
}

// Put returns a buffer for reuse. Buffers of a different size are dropped.
func (p *FramePool) Put(img *image.RGBA) {
	if img == nil || img.Rect != p.rect {
		return
	}
	p.pool.Put(img)
}
