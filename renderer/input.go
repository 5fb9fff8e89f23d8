package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/heroglow/viewport"
)

// Pixels scrolled per mouse wheel notch
const wheelStep = 60

// InputPoller reads raylib window input once per frame and forwards it.
type InputPoller struct {
	page    *viewport.PageHost
	tracker *viewport.Tracker
}

// NewInputPoller creates a poller for the given page.
func NewInputPoller(page *viewport.PageHost) *InputPoller {
	return &InputPoller{page: page, tracker: viewport.NewTracker(page)}
}

// Poll forwards this frame's resize, wheel and cursor input. Call from the
// goroutine that owns the window.
func (p *InputPoller) Poll(sink viewport.InputSink) {
	if rl.IsWindowResized() {
		p.page.SetWindowSize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
		sink.Resize()
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		if p.page.ScrollBy(-wheel * wheelStep) {
			sink.Scroll()
		}
	}

	pos := rl.GetMousePosition()
	p.tracker.Update(sink, pos.X, pos.Y, rl.IsCursorOnScreen())
}

// Hovered reports whether the cursor is over the hero section.
func (p *InputPoller) Hovered() bool {
	return p.tracker.Inside()
}
