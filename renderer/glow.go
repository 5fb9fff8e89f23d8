package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/heroglow/camera"
	"github.com/pthm-cable/heroglow/engine"
	"github.com/pthm-cable/heroglow/viewport"
)

// GlowBackend draws the particle grid into an offscreen render texture sized
// to the host element. Points and lines are blended additively so overlaps
// brighten toward white.
//
// Must be created after the raylib window is open.
type GlowBackend struct {
	target   rl.RenderTexture2D
	loaded   bool
	bounds   viewport.Rect
	ratio    float32
	maxRatio float32

	// Smallest point radius in pixels, so distant points stay visible
	minRadius float32
}

// NewGlowBackend creates a backend that renders at up to maxRatio device
// pixels per window pixel.
func NewGlowBackend(maxRatio float32) *GlowBackend {
	if maxRatio < 1 {
		maxRatio = 1
	}
	return &GlowBackend{maxRatio: maxRatio, minRadius: 0.75}
}

// PixelRatio returns the device pixel ratio clamped to [1, limit].
func PixelRatio(dpiScale, limit float32) float32 {
	if dpiScale < 1 || math.IsNaN(float64(dpiScale)) {
		return 1
	}
	return min(dpiScale, limit)
}

// SetBounds moves the surface onto r and reallocates the render texture when
// its pixel size changes.
func (b *GlowBackend) SetBounds(r viewport.Rect) {
	ratio := PixelRatio(rl.GetWindowScaleDPI().X, b.maxRatio)
	resized := !b.loaded || r.Width != b.bounds.Width || r.Height != b.bounds.Height || ratio != b.ratio
	b.bounds = r
	b.ratio = ratio
	if !resized || r.Empty() {
		return
	}
	if b.loaded {
		rl.UnloadRenderTexture(b.target)
	}
	b.target = rl.LoadRenderTexture(int32(r.Width*ratio), int32(r.Height*ratio))
	b.loaded = true
}

// Render projects the scene through the camera into the render texture.
func (b *GlowBackend) Render(scene *engine.Scene, cam *camera.Camera) {
	if !b.loaded {
		return
	}
	g := scene.Grid
	w := float32(b.target.Texture.Width)
	h := float32(b.target.Texture.Height)
	project := cam.Projector(w, h)

	rl.BeginTextureMode(b.target)
	rl.ClearBackground(rl.Blank)
	rl.BeginBlendMode(rl.BlendAdditive)

	// Lines first so points sit on top
	for i := range g.Lines {
		p := g.LinePositions[i*6 : i*6+6]
		ax, ay, _, okA := project(mgl32.Vec3{p[0], p[1], p[2]})
		bx, by, _, okB := project(mgl32.Vec3{p[3], p[4], p[5]})
		if !okA || !okB {
			continue
		}
		c := g.LineColors[i*8 : i*8+4]
		rl.DrawLineV(rl.NewVector2(ax, ay), rl.NewVector2(bx, by), toColor(c[0], c[1], c[2], c[3]*scene.LineOpacity))
	}

	rot := mgl32.Rotate3DZ(scene.PointRotation)
	scale := cam.PointScale(h)
	n := g.Count()
	for i := 0; i < n; i++ {
		p := rot.Mul3x1(mgl32.Vec3{g.Positions[i*3], g.Positions[i*3+1], g.Positions[i*3+2]})
		sx, sy, depth, ok := project(p)
		if !ok {
			continue
		}
		radius := max(g.Sizes[i]*scale/depth*0.5, b.minRadius*b.ratio)
		c := g.Colors[i*3 : i*3+3]
		rl.DrawCircleV(rl.NewVector2(sx, sy), radius, toColor(c[0], c[1], c[2], scene.PointOpacity))
	}

	rl.EndBlendMode()
	rl.EndTextureMode()
	g.Dirty = false
}

// Present draws the render texture at the surface bounds. Call between
// BeginDrawing and EndDrawing.
func (b *GlowBackend) Present() {
	if !b.loaded || b.bounds.Empty() {
		return
	}
	tex := b.target.Texture
	// Render textures are stored upside down
	src := rl.NewRectangle(0, 0, float32(tex.Width), -float32(tex.Height))
	dst := rl.NewRectangle(b.bounds.X, b.bounds.Y, b.bounds.Width, b.bounds.Height)
	rl.DrawTexturePro(tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

// Bounds returns the current surface rectangle.
func (b *GlowBackend) Bounds() viewport.Rect {
	return b.bounds
}

// Dispose unloads the render texture.
func (b *GlowBackend) Dispose() error {
	if b.loaded {
		rl.UnloadRenderTexture(b.target)
		b.loaded = false
	}
	return nil
}

func toColor(r, g, b, a float32) rl.Color {
	return rl.NewColor(channel(r), channel(g), channel(b), channel(a))
}

func channel(v float32) uint8 {
	return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
}

// ClearColor converts a configured colour for rl.ClearBackground.
func ClearColor(c colorful.Color) rl.Color {
	r, g, b := c.RGB255()
	return rl.NewColor(r, g, b, 255)
}
