package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/heroglow/viewport"
)

// Section is one block of page copy below the hero.
type Section struct {
	Title string
	Body  string
}

// Page draws the static page content: the headline over the hero and the
// sections that follow it. Everything scrolls with the hero rectangle.
type Page struct {
	renderer *Renderer
	Headline string
	Tagline  string
	Sections []Section
}

// NewPage creates a page with placeholder copy.
func NewPage() *Page {
	return &Page{
		renderer: NewRenderer(),
		Headline: "Particles that follow your cursor",
		Tagline:  "Move the pointer over the grid. Scroll to read on.",
		Sections: []Section{
			{Title: "Shapes", Body: "The grid morphs between a wave, a ring and a star every few seconds."},
			{Title: "Force field", Body: "Near the pointer particles are pulled in, swirl, lift and glow."},
			{Title: "Parallax", Body: "The camera drifts with the pointer so the grid tilts as you move."},
		},
	}
}

// Draw renders the page for the given hero rectangle, in window coordinates.
func (p *Page) Draw(hero viewport.Rect, windowHeight float32) {
	t := p.renderer.Theme
	x := int32(hero.X) + 60

	midY := int32(hero.Y + hero.Height*0.4)
	if hero.Y+hero.Height > 0 {
		rl.DrawText(p.Headline, x, midY, 40, t.HeadlineColor)
		rl.DrawText(p.Tagline, x, midY+52, 20, t.BodyColor)
	}

	y := int32(hero.Y+hero.Height) + 60
	for _, s := range p.Sections {
		if float32(y) > windowHeight {
			break
		}
		if y+120 > 0 {
			rl.DrawText(s.Title, x, y, 28, t.SectionHeader)
			rl.DrawText(s.Body, x, y+40, 18, t.BodyColor)
		}
		y += 240
	}
}
