// Package camera provides the perspective camera the background is viewed through.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective camera that always looks at the origin.
// Its X/Y drift with the pointer for a parallax effect; Z is fixed.
type Camera struct {
	// Position in world coordinates
	X, Y, Z float32

	// Vertical field of view in degrees
	FOV float32

	// Aspect ratio (width / height) of the render surface
	Aspect float32

	// Clip planes
	Near, Far float32

	projection mgl32.Mat4
}

// New creates a camera at (0, 0, distance) looking at the origin.
func New(fov, aspect, near, far, distance float32) *Camera {
	c := &Camera{
		Z:      distance,
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
	c.updateProjection()
	return c
}

// SetAspect updates the aspect ratio and recomputes the projection.
func (c *Camera) SetAspect(aspect float32) {
	if aspect <= 0 || aspect == c.Aspect {
		return
	}
	c.Aspect = aspect
	c.updateProjection()
}

func (c *Camera) updateProjection() {
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// Drift eases the camera position toward (targetX, targetY) by rate per call.
func (c *Camera) Drift(targetX, targetY, rate float32) {
	c.X += (targetX - c.X) * rate
	c.Y += (targetY - c.Y) * rate
}

// Position returns the camera eye position.
func (c *Camera) Position() mgl32.Vec3 {
	return mgl32.Vec3{c.X, c.Y, c.Z}
}

// View returns the view matrix looking from the camera at the origin.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
}

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return c.projection
}

// ViewProjection returns Projection * View.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.projection.Mul4(c.View())
}

// Projector returns a function projecting world points onto a surface of the
// given size, with the origin at the top-left and +Y down. depth is the
// distance in front of the camera along its view axis; ok is false for points
// behind the camera or outside the clip planes.
func (c *Camera) Projector(width, height float32) func(p mgl32.Vec3) (sx, sy, depth float32, ok bool) {
	view := c.View()
	vp := c.projection.Mul4(view)
	return func(p mgl32.Vec3) (float32, float32, float32, bool) {
		return c.project(vp, view, p, width, height)
	}
}

func (c *Camera) project(vp, view mgl32.Mat4, p mgl32.Vec3, width, height float32) (sx, sy, depth float32, ok bool) {
	clip := vp.Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	sx = (ndc.X() + 1) / 2 * width
	sy = (1 - ndc.Y()) / 2 * height
	depth = -view.Mul4x1(p.Vec4(1)).Z()
	ok = depth >= c.Near && depth <= c.Far
	return sx, sy, depth, ok
}

// PointScale returns the pixel scale for size-attenuated points on a surface
// of the given height: a point of size s at depth d is s*scale/d pixels.
func (c *Camera) PointScale(height float32) float32 {
	return height / 2
}

// VisibleExtent returns the world-space extent visible on the z=0 plane from
// the camera's resting distance.
func (c *Camera) VisibleExtent() (width, height float32) {
	h := 2 * float32(math.Tan(float64(mgl32.DegToRad(c.FOV))/2)) * c.Z
	return h * c.Aspect, h
}
