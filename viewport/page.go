package viewport

// PageHost models the hero section at the top of a scrollable page shown in
// the window. Its bounding rectangle is in window coordinates, so it moves up
// as the page scrolls.
type PageHost struct {
	WindowWidth  float32
	WindowHeight float32

	// HeroHeight is the host section height; 0 fills the window.
	HeroHeight float32
	// PageHeight is the total page height; 0 means the page is just the hero.
	PageHeight float32

	ScrollY float32
}

// BoundingRect returns the hero section rectangle in window coordinates.
func (p *PageHost) BoundingRect() Rect {
	return Rect{
		X:      0,
		Y:      -p.ScrollY,
		Width:  p.WindowWidth,
		Height: p.heroHeight(),
	}
}

func (p *PageHost) heroHeight() float32 {
	if p.HeroHeight <= 0 {
		return p.WindowHeight
	}
	return p.HeroHeight
}

// MaxScroll returns the largest scroll offset the page allows.
func (p *PageHost) MaxScroll() float32 {
	page := max(p.PageHeight, p.heroHeight())
	return max(0, page-p.WindowHeight)
}

// ScrollBy moves the page by dy and reports whether the offset changed.
func (p *PageHost) ScrollBy(dy float32) bool {
	next := min(max(p.ScrollY+dy, 0), p.MaxScroll())
	if next == p.ScrollY {
		return false
	}
	p.ScrollY = next
	return true
}

// SetWindowSize updates the window size and clamps the scroll offset.
func (p *PageHost) SetWindowSize(w, h float32) {
	p.WindowWidth = w
	p.WindowHeight = h
	p.ScrollY = min(p.ScrollY, p.MaxScroll())
}
