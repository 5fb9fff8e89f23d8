package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"
)

// Controls is what the debug panel can drive.
type Controls interface {
	AdvanceShape()
	SetTimeScale(scale float64)
	TimeScale() float64
	TogglePause() error
	Running() bool
}

// DebugPanel is a raygui panel for stepping shapes and adjusting the
// animation speed.
type DebugPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewDebugPanel creates a hidden debug panel.
func NewDebugPanel(x, y, width int32) *DebugPanel {
	return &DebugPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Toggle switches panel visibility.
func (d *DebugPanel) Toggle() bool {
	d.visible = !d.visible
	return d.visible
}

// IsVisible returns whether the panel is shown.
func (d *DebugPanel) IsVisible() bool {
	return d.visible
}

// SetPosition updates the panel position.
func (d *DebugPanel) SetPosition(x, y int32) {
	d.x = x
	d.y = y
}

// Draw renders the panel and applies any interaction to c. It returns the
// error from resuming a disposed engine.
func (d *DebugPanel) Draw(c Controls, hud HUDData) error {
	if !d.visible {
		return nil
	}
	r := d.renderer
	pad := r.Theme.Padding
	d.renderer.DrawPanel(d.x, d.y, d.width, 190)

	x := d.x + pad
	y := d.y + pad
	y = r.DrawSectionHeader(x, y, "Debug")
	y = r.DrawLabelValue(x, y, "Shape", hud.Mode)
	y = r.DrawTransitionBar(x, y, d.width-2*pad, hud.PrevMode, hud.Mode, hud.Transition)
	y += 4

	fx, fy := float32(x), float32(y)
	if gui.Button(rl.Rectangle{X: fx, Y: fy, Width: 100, Height: 26}, "Next shape") {
		c.AdvanceShape()
	}
	var err error
	if gui.Button(rl.Rectangle{X: fx + 110, Y: fy, Width: 100, Height: 26}, toggleText(c.Running(), "Pause", "Resume")) {
		err = c.TogglePause()
	}
	y += 36

	rl.DrawText("Time scale", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += 16
	scale := float32(c.TimeScale())
	next := gui.SliderBar(
		rl.Rectangle{X: fx, Y: float32(y), Width: float32(d.width - 2*pad - 50), Height: 18},
		"0", "3",
		scale, 0, 3,
	)
	rl.DrawText(fmt.Sprintf("%.2f", scale), x+d.width-2*pad-40, y+2, 14, r.Theme.ValueColor)
	if next != scale {
		c.SetTimeScale(float64(next))
	}
	return err
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
