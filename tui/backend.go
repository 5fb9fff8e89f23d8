// Package tui renders the particle grid into a terminal with tcell. Each
// cell stands for a fixed block of pixels, so the engine sees an ordinary
// pixel-sized host.
package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/heroglow/camera"
	"github.com/pthm-cable/heroglow/engine"
	"github.com/pthm-cable/heroglow/viewport"
)

// Pixel size of one terminal cell
const (
	CellWidth  = 8
	CellHeight = 16
)

// Glyphs by point size relative to the base size
const (
	glyphLine  = '·'
	glyphSmall = '∙'
	glyphMid   = '•'
	glyphLarge = '●'
)

// Host measures the terminal as a pixel rectangle.
type Host struct {
	Screen tcell.Screen
}

// BoundingRect returns the terminal size in pixels.
func (h Host) BoundingRect() viewport.Rect {
	w, ht := h.Screen.Size()
	return viewport.Rect{Width: float32(w * CellWidth), Height: float32(ht * CellHeight)}
}

// CellCenter returns the client pixel coordinates of a cell's centre.
func CellCenter(x, y int) (float32, float32) {
	return (float32(x) + 0.5) * CellWidth, (float32(y) + 0.5) * CellHeight
}

// Backend draws points and lines as coloured glyphs. Later points overwrite
// lines; brighter points win over dimmer ones in the same cell.
type Backend struct {
	screen     tcell.Screen
	bounds     viewport.Rect
	background tcell.Style

	cols, rows int
	ranks      []float32
}

// NewBackend creates a backend drawing to screen. The caller owns the screen.
func NewBackend(screen tcell.Screen, background colorful.Color) *Backend {
	return &Backend{
		screen:     screen,
		background: tcell.StyleDefault.Background(toTcell(background, 1)),
	}
}

// SetBounds records the host rectangle in pixels.
func (b *Backend) SetBounds(r viewport.Rect) {
	b.bounds = r
	b.cols = int(r.Width) / CellWidth
	b.rows = int(r.Height) / CellHeight
	if n := b.cols * b.rows; n > cap(b.ranks) {
		b.ranks = make([]float32, n)
	} else {
		b.ranks = b.ranks[:n]
	}
}

// Render draws the scene and shows the screen.
func (b *Backend) Render(scene *engine.Scene, cam *camera.Camera) {
	g := scene.Grid
	b.screen.Fill(' ', b.background)
	for i := range b.ranks {
		b.ranks[i] = 0
	}
	if b.cols == 0 || b.rows == 0 {
		b.screen.Show()
		g.Dirty = false
		return
	}
	project := cam.Projector(b.bounds.Width, b.bounds.Height)

	for i := range g.Lines {
		p := g.LinePositions[i*6 : i*6+6]
		ax, ay, _, okA := project(mgl32.Vec3{p[0], p[1], p[2]})
		bx, by, _, okB := project(mgl32.Vec3{p[3], p[4], p[5]})
		if !okA || !okB {
			continue
		}
		c := g.LineColors[i*8 : i*8+4]
		b.line(ax, ay, bx, by, c[0], c[1], c[2], c[3]*scene.LineOpacity)
	}

	rot := mgl32.Rotate3DZ(scene.PointRotation)
	for i := 0; i < g.Count(); i++ {
		p := rot.Mul3x1(mgl32.Vec3{g.Positions[i*3], g.Positions[i*3+1], g.Positions[i*3+2]})
		sx, sy, _, ok := project(p)
		if !ok {
			continue
		}
		c := g.Colors[i*3 : i*3+3]
		b.point(sx, sy, g.Sizes[i]/g.BaseSize, c[0], c[1], c[2], scene.PointOpacity)
	}

	b.screen.Show()
	g.Dirty = false
}

// Draw layers; a cell keeps the highest layer, then the brightest glyph.
const (
	layerLine  = 0
	layerPoint = 1
)

// line steps across the segment one cell at a time.
func (b *Backend) line(ax, ay, bx, by, r, g, bl, alpha float32) {
	x0, y0 := int(ax/CellWidth), int(ay/CellHeight)
	x1, y1 := int(bx/CellWidth), int(by/CellHeight)
	steps := max(abs(x1-x0), abs(y1-y0))
	for s := 0; s <= steps; s++ {
		t := float32(0)
		if steps > 0 {
			t = float32(s) / float32(steps)
		}
		x := x0 + int(float32(x1-x0)*t+0.5)
		y := y0 + int(float32(y1-y0)*t+0.5)
		b.plot(x, y, glyphLine, layerLine, r, g, bl, alpha)
	}
}

func (b *Backend) point(sx, sy, scale, r, g, bl, alpha float32) {
	glyph := glyphSmall
	switch {
	case scale >= 2:
		glyph = glyphLarge
	case scale >= 1.3:
		glyph = glyphMid
	}
	b.plot(int(sx/CellWidth), int(sy/CellHeight), glyph, layerPoint, r, g, bl, alpha)
}

func (b *Backend) plot(x, y int, glyph rune, layer int, r, g, bl, alpha float32) {
	if x < 0 || y < 0 || x >= b.cols || y >= b.rows {
		return
	}
	alpha = mgl32.Clamp(alpha, 0, 1)
	// Untouched cells rank 0; lines rank in [1, 2], points in [3, 4]
	rank := float32(layer*2) + alpha + 1
	i := y*b.cols + x
	if rank <= b.ranks[i] {
		return
	}
	b.ranks[i] = rank
	c := colorful.Color{R: float64(r), G: float64(g), B: float64(bl)}
	b.screen.SetContent(x, y, glyph, nil, b.background.Foreground(toTcell(c, float64(alpha))))
}

// Dispose is a no-op; the screen belongs to the caller.
func (b *Backend) Dispose() error {
	return nil
}

func toTcell(c colorful.Color, alpha float64) tcell.Color {
	r, g, bl := colorful.Color{R: c.R * alpha, G: c.G * alpha, B: c.B * alpha}.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(bl))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
