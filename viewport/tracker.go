package viewport

// InputSink receives pointer and layout events.
type InputSink interface {
	PointerMove(clientX, clientY float32)
	PointerEnter()
	PointerLeave()
	Resize()
	Scroll()
}

// Tracker turns raw cursor samples into enter, leave and move events for a
// host. Moves are forwarded anywhere on screen, not just over the host.
type Tracker struct {
	host   Host
	inside bool
	lastX  float32
	lastY  float32
	moved  bool
}

// NewTracker creates a tracker for host.
func NewTracker(host Host) *Tracker {
	return &Tracker{host: host}
}

// Update forwards a cursor sample in client coordinates. onScreen is false
// when the cursor has left the window.
func (t *Tracker) Update(sink InputSink, x, y float32, onScreen bool) {
	inside := onScreen && t.host.BoundingRect().Contains(x, y)
	switch {
	case inside && !t.inside:
		sink.PointerEnter()
	case !inside && t.inside:
		sink.PointerLeave()
	}
	t.inside = inside

	if onScreen && (!t.moved || x != t.lastX || y != t.lastY) {
		sink.PointerMove(x, y)
		t.lastX, t.lastY = x, y
		t.moved = true
	}
}

// Inside reports whether the cursor was over the host at the last update.
func (t *Tracker) Inside() bool {
	return t.inside
}
