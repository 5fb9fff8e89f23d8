package engine

import (
	"math"

	"github.com/pthm-cable/heroglow/systems"
)

// State is the animation state advanced once per frame.
type State struct {
	Mode systems.Mode

	// Transition is the morph progress toward Mode in [0, 1]. It rises from 0
	// after each shape change and holds at exactly 1 until the next.
	Transition float64

	// LastShapeChange is the Elapsed value at the last shape change.
	LastShapeChange float64

	// Elapsed is wall-clock seconds accumulated from frame deltas.
	Elapsed float64

	// Time drives the shape and ripple animation; it advances at TimeScale
	// per elapsed second.
	Time float64

	Frame        uint64
	ShapeChanges int
}

// PointerState is the smoothed pointer.
type PointerState struct {
	// Latest mapped pointer position, [-1, 1] across the host
	NormalizedX, NormalizedY float64

	// Smoothed world position the force field reacts to
	WorldX, WorldY float64

	// Target the world position is smoothed toward
	TargetX, TargetY float64

	Hovered bool
	Active  bool

	hasTarget bool
}

// timing holds the schedule constants from config.
type timing struct {
	changeInterval       float64
	transitionDuration   float64
	fastFinishThreshold  float64
	fastFinishMultiplier float64
	completeThreshold    float64
}

// shapeDue reports whether a shape change should happen this frame: the
// interval has passed (or a change was requested) and the previous
// transition has finished.
func (s *State) shapeDue(t timing, requested bool) bool {
	if s.Transition < t.completeThreshold {
		return false
	}
	return requested || s.Elapsed-s.LastShapeChange > t.changeInterval
}

// beginShapeChange moves to the next mode and restarts the transition.
func (s *State) beginShapeChange() (from, to systems.Mode) {
	from = s.Mode
	s.Mode = s.Mode.Next()
	s.Transition = 0
	s.LastShapeChange = s.Elapsed
	s.ShapeChanges++
	return from, s.Mode
}

// advanceTransition steps the morph by dt. Past the fast-finish threshold an
// extra step scaled by the multiplier is added so the tail does not linger.
func (s *State) advanceTransition(t timing, dt float64) {
	if s.Transition >= 1 {
		return
	}
	step := dt / t.transitionDuration
	s.Transition = math.Min(1, s.Transition+step)
	if s.Transition > t.fastFinishThreshold {
		s.Transition = math.Min(1, s.Transition+step*t.fastFinishMultiplier)
	}
}
