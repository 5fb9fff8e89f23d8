// Package viewport tracks the host element the background is attached to and
// maps pointer events into normalized and world coordinates.
package viewport

// Rect is an axis-aligned rectangle in client (screen pixel) coordinates.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the client point lies inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Aspect returns width/height, or 1 for an empty rectangle.
func (r Rect) Aspect() float32 {
	if r.Empty() {
		return 1
	}
	return r.Width / r.Height
}

// Host is an element with a measurable bounding rectangle.
type Host interface {
	BoundingRect() Rect
}

// Surface is the paintable area that must track the host.
type Surface interface {
	SetBounds(r Rect)
}

// Pointer is a pointer position mapped from client coordinates.
type Pointer struct {
	// NormalizedX/Y are in [-1, 1] across the host, +Y up.
	NormalizedX, NormalizedY float32
	// WorldX/Y are the normalized coordinates scaled to half the host size.
	WorldX, WorldY float32
}

// Adapter caches the host rectangle and keeps the surface aligned to it.
type Adapter struct {
	host    Host
	surface Surface
	rect    Rect
}

// NewAdapter measures the host and aligns the surface to it.
func NewAdapter(host Host, surface Surface) *Adapter {
	a := &Adapter{host: host, surface: surface}
	a.Refresh()
	return a
}

// Refresh re-measures the host and moves the surface onto it.
// Called on resize and scroll; returns the new rectangle.
func (a *Adapter) Refresh() Rect {
	a.rect = a.host.BoundingRect()
	if a.surface != nil {
		a.surface.SetBounds(a.rect)
	}
	return a.rect
}

// Rect returns the last measured host rectangle.
func (a *Adapter) Rect() Rect {
	return a.rect
}

// MapPointer converts client coordinates to host-relative pointer coordinates.
// Points outside the host map outside [-1, 1].
func (a *Adapter) MapPointer(clientX, clientY float32) Pointer {
	r := a.rect
	if r.Empty() {
		return Pointer{}
	}
	nx := (clientX-r.X)/r.Width*2 - 1
	ny := -((clientY-r.Y)/r.Height)*2 + 1
	return Pointer{
		NormalizedX: nx,
		NormalizedY: ny,
		WorldX:      nx * r.Width * 0.5,
		WorldY:      ny * r.Height * 0.5,
	}
}
