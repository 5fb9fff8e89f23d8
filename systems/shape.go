package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Mode identifies one of the procedural layouts the grid morphs toward.
type Mode uint8

const (
	ModeWave Mode = iota
	ModeCircle
	ModeStar

	// ModeCount is the number of shape modes in the cycle.
	ModeCount
)

// String returns the lowercase mode name.
func (m Mode) String() string {
	switch m {
	case ModeWave:
		return "wave"
	case ModeCircle:
		return "circle"
	case ModeStar:
		return "star"
	}
	return "unknown"
}

// Next returns the mode that follows m in the cycle.
func (m Mode) Next() Mode {
	return (m + 1) % ModeCount
}

// Previous returns the mode that precedes m in the cycle.
// A transition toward m always starts from Previous.
func (m Mode) Previous() Mode {
	return (m + ModeCount - 1) % ModeCount
}

// Shape constants.
const (
	waveAmplitude  = 40.0
	waveFrequency  = 0.02
	timeFrequency  = 2.0
	circleFraction = 0.4
	circleLift     = 30.0
	starFraction   = 0.7
	starBase       = 0.7
	starVariation  = 0.3
	starPoints     = 5.0
	starLift       = 20.0
)

// GridSpec describes the fixed topology of the particle grid.
type GridSpec struct {
	Columns  int
	Rows     int
	SpacingX float64
	SpacingY float64
}

// NewGridSpec derives the grid from the host aspect (width/height) and the
// visible extent of the camera at the grid plane. Rows follow the aspect so
// cells stay roughly square; spacing spreads the grid over the extent.
func NewGridSpec(columns int, aspect, visibleW, visibleH float64) GridSpec {
	if columns < 1 {
		columns = 1
	}
	rows := 1
	if aspect > 0 {
		rows = max(1, int(math.Floor(float64(columns)/aspect)))
	}
	return GridSpec{
		Columns:  columns,
		Rows:     rows,
		SpacingX: visibleW / float64(columns),
		SpacingY: visibleH / float64(rows),
	}
}

// Count returns the number of particles in the grid.
func (g GridSpec) Count() int {
	return g.Columns * g.Rows
}

// Center returns the flat layout position of cell (col, row), with the grid
// centred on the origin.
func (g GridSpec) Center(col, row int) (x, y float64) {
	x = (float64(col) - float64(g.Columns)/2) * g.SpacingX
	y = (float64(row) - float64(g.Rows)/2) * g.SpacingY
	return x, y
}

// MaxRadius returns the half-diagonal of the grid's bounding extent.
func (g GridSpec) MaxRadius() float64 {
	halfW := float64(g.Columns) * g.SpacingX / 2
	halfH := float64(g.Rows) * g.SpacingY / 2
	return math.Sqrt(halfW*halfW + halfH*halfH)
}

// angleOf returns the polar angle of (x, y). The grid centre maps to 0.
func angleOf(x, y float64) float64 {
	if x == 0 && y == 0 {
		return 0
	}
	return math.Atan2(y, x)
}

// waveZ is the height of the wave surface at (x, y); it is the only
// component that varies with time in every mode.
func waveZ(x, y, time float64) float64 {
	return math.Sin(x*waveFrequency+time*timeFrequency)*waveAmplitude +
		math.Cos(y*waveFrequency+time*timeFrequency)*waveAmplitude
}

// ShapePosition maps a grid cell to its target position in the given mode.
// It is pure: the same inputs always give the same output.
func ShapePosition(col, row int, grid GridSpec, time float64, mode Mode) r3.Vec {
	cx, cy := grid.Center(col, row)

	switch mode {
	case ModeWave:
		return r3.Vec{X: cx, Y: cy, Z: waveZ(cx, cy, time)}

	case ModeCircle:
		angle := angleOf(cx, cy)
		radius := math.Hypot(cx, cy)
		r := grid.MaxRadius() * circleFraction
		return r3.Vec{
			X: math.Cos(angle) * r,
			Y: math.Sin(angle) * r,
			Z: math.Sin(radius*waveFrequency+time*timeFrequency) * circleLift,
		}

	case ModeStar:
		angle := angleOf(cx, cy)
		radius := math.Hypot(cx, cy)
		r := radius * starFraction * (starBase + starVariation*math.Sin(starPoints*angle))
		return r3.Vec{
			X: math.Cos(angle) * r,
			Y: math.Sin(angle) * r,
			Z: math.Sin(starPoints*angle+time*timeFrequency) * starLift,
		}
	}

	return r3.Vec{X: cx, Y: cy}
}
