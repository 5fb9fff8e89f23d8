package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Ease weights for the transition curve.
const (
	cubicWeight  = 0.7
	smoothWeight = 0.3
)

// EaseInOutCubic is the standard cubic ease-in-out on [0, 1].
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Smoothstep is the Hermite 3t²-2t³ curve on [0, 1].
func Smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// TransitionEase mixes the cubic ease and smoothstep into the curve used for
// shape transitions.
func TransitionEase(t float64) float64 {
	return EaseInOutCubic(t)*cubicWeight + Smoothstep(t)*smoothWeight
}

// BlendedPosition returns the position of cell (col, row) while morphing from
// mode.Previous() to mode at the given progress. At transition >= 1 the result
// is exactly ShapePosition for mode.
//
// Z needs care: the wave height changes every frame, so when either endpoint is
// the wave its live height is used rather than a frozen value. Adjacent modes
// in a three-mode cycle are never both the wave.
func BlendedPosition(col, row int, grid GridSpec, time float64, mode Mode, transition float64) r3.Vec {
	target := ShapePosition(col, row, grid, time, mode)
	if transition >= 1 {
		return target
	}

	prev := mode.Previous()
	start := ShapePosition(col, row, grid, time, prev)
	ease := TransitionEase(transition)

	var z float64
	switch {
	case mode == ModeWave:
		cx, cy := grid.Center(col, row)
		live := waveZ(cx, cy, time)
		z = start.Z + (live-start.Z)*ease
	case prev == ModeWave:
		cx, cy := grid.Center(col, row)
		live := waveZ(cx, cy, time)
		z = live + (target.Z-live)*ease
	default:
		z = start.Z + (target.Z-start.Z)*ease
	}

	return r3.Vec{
		X: start.X + (target.X-start.X)*ease,
		Y: start.Y + (target.Y-start.Y)*ease,
		Z: z,
	}
}
