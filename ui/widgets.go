package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws the panel primitives shared by the overlays.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawTransitionBar shows the morph from one shape mode to the next. The
// filled part fades from the source mode's colour toward the target's and
// reaches the target colour at progress 1.
func (r *Renderer) DrawTransitionBar(x, y, width int32, from, to string, progress float64) int32 {
	progress = min(max(progress, 0), 1)
	t := r.Theme

	rl.DrawText(from+" > "+to, x, y, t.FontSize, t.LabelColor)
	barX := x + t.LabelWidth
	barWidth := width - t.LabelWidth - 40
	rl.DrawRectangle(barX, y+2, barWidth, t.BarHeight, t.BarBg)

	start, end := t.ModeColor(from), t.ModeColor(to)
	fill := int32(float64(barWidth) * progress)
	if fill > 0 {
		rl.DrawRectangleGradientH(barX, y+2, fill, t.BarHeight, start, lerpColor(start, end, progress))
	}
	rl.DrawRectangleLines(barX, y+2, barWidth, t.BarHeight, end)

	rl.DrawText(fmt.Sprintf("%3.0f%%", progress*100), barX+barWidth+5, y, t.FontSize, t.ValueColor)
	return y + t.LineHeight + 2
}

func lerpColor(a, b rl.Color, t float64) rl.Color {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return rl.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
