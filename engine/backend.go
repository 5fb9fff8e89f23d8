package engine

import (
	"github.com/pthm-cable/heroglow/camera"
	"github.com/pthm-cable/heroglow/systems"
	"github.com/pthm-cable/heroglow/viewport"
)

// Scene is everything a backend needs to draw one frame.
type Scene struct {
	Grid *systems.ParticleGrid

	// Material opacities
	PointOpacity float32
	LineOpacity  float32

	// Rotation of the particle cloud about Z, in radians. Lines are not rotated.
	PointRotation float32
}

// Backend is the rendering collaborator. It owns the paintable surface, which
// the engine keeps aligned to the host element.
type Backend interface {
	viewport.Surface

	// Render draws the scene. It runs synchronously inside Tick.
	Render(scene *Scene, cam *camera.Camera)

	// Dispose releases graphics resources. Called once by Engine.Dispose.
	Dispose() error
}

// HeadlessBackend is a Backend that draws nothing. It records what it was
// asked to do, which makes it useful for headless runs and tests.
type HeadlessBackend struct {
	Bounds   viewport.Rect
	Frames   int
	Uploads  int
	Disposed bool
}

// SetBounds records the surface rectangle.
func (b *HeadlessBackend) SetBounds(r viewport.Rect) {
	b.Bounds = r
}

// Render counts the frame and consumes the grid's dirty flag.
func (b *HeadlessBackend) Render(scene *Scene, cam *camera.Camera) {
	b.Frames++
	if scene.Grid.Dirty {
		b.Uploads++
		scene.Grid.Dirty = false
	}
}

// Dispose marks the backend as released.
func (b *HeadlessBackend) Dispose() error {
	b.Disposed = true
	return nil
}

// FixedHost is a Host with a settable rectangle.
type FixedHost struct {
	Rect viewport.Rect
}

// BoundingRect returns the current rectangle.
func (h *FixedHost) BoundingRect() viewport.Rect {
	return h.Rect
}
