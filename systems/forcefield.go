package systems

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// ForceParams tunes the pointer force field.
type ForceParams struct {
	MaxDistance     float64 // Radius of influence in world units
	ActiveThreshold float64 // Pointer within ±this of origin counts as inactive
	Attraction      float64 // Pull toward the pointer at full force
	Swirl           float64 // Perpendicular offset at full force
	Lift            float64 // Extra Z at full force
	SizeGain        float64 // sizeMultiplier = 1 + SizeGain·force
	RippleFrequency float64 // Spatial frequency of the ripple
	RippleSpeed     float64 // Temporal frequency of the ripple
	RippleBase      float64
	RippleAmplitude float64
	GlowMix         float64 // Blend toward the glow colour per unit intensity
	GlowBoost       float64 // Channel gain per unit intensity
}

// DefaultForceParams returns the stock force field.
func DefaultForceParams() ForceParams {
	return ForceParams{
		MaxDistance:     300,
		ActiveThreshold: 5,
		Attraction:      60,
		Swirl:           15,
		Lift:            40,
		SizeGain:        2.5,
		RippleFrequency: 0.05,
		RippleSpeed:     3,
		RippleBase:      0.7,
		RippleAmplitude: 0.3,
		GlowMix:         0.4,
		GlowBoost:       0.2,
	}
}

// ForceResult is the perturbation applied to a single particle.
type ForceResult struct {
	Offset         r3.Vec
	SizeMultiplier float64
	Glow           float64
	// Color is set only when the particle glows.
	Color    colorful.Color
	HasColor bool
}

// ForceField computes the pointer attraction, swirl and glow.
type ForceField struct {
	Params    ForceParams
	GlowColor colorful.Color
}

// NewForceField creates a force field glowing toward glow.
func NewForceField(params ForceParams, glow colorful.Color) *ForceField {
	return &ForceField{Params: params, GlowColor: glow}
}

// Active reports whether the pointer is far enough from the origin to exert force.
func (f *ForceField) Active(pointer r2.Vec) bool {
	return math.Abs(pointer.X) > f.Params.ActiveThreshold || math.Abs(pointer.Y) > f.Params.ActiveThreshold
}

// Falloff returns the smoothstep falloff for distance d: 1 at the pointer,
// 0 at MaxDistance and beyond.
func (f *ForceField) Falloff(d float64) float64 {
	if d >= f.Params.MaxDistance {
		return 0
	}
	n := d / f.Params.MaxDistance
	return 1 - n*n*(3-2*n)
}

// Apply perturbs a particle at pos given the smoothed pointer world position.
// Particles out of range, or any particle while the pointer is inactive,
// get a zero offset and no colour override.
func (f *ForceField) Apply(pos r3.Vec, pointer r2.Vec, time float64, base colorful.Color) ForceResult {
	none := ForceResult{SizeMultiplier: 1}
	if !f.Active(pointer) {
		return none
	}

	delta := r2.Sub(r2.Vec{X: pos.X, Y: pos.Y}, pointer)
	d := r2.Norm(delta)
	if d >= f.Params.MaxDistance {
		return none
	}

	p := &f.Params
	ripple := p.RippleBase + p.RippleAmplitude*math.Sin(d*p.RippleFrequency-time*p.RippleSpeed)
	force := f.Falloff(d) * ripple

	// angle points from the pointer out to the particle
	angle := math.Atan2(delta.Y, delta.X)
	pull := force * p.Attraction
	swirl := force * p.Swirl
	spin := angle + math.Pi/2

	return ForceResult{
		Offset: r3.Vec{
			X: -math.Cos(angle)*pull + math.Cos(spin)*swirl,
			Y: -math.Sin(angle)*pull + math.Sin(spin)*swirl,
			Z: force * p.Lift,
		},
		SizeMultiplier: 1 + force*p.SizeGain,
		Glow:           force,
		Color:          Glow(base, f.GlowColor, force, p.GlowMix, p.GlowBoost),
		HasColor:       true,
	}
}
