package systems

import (
	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"
)

// LineSegment joins two grid-adjacent particles by flat buffer index.
type LineSegment struct {
	A, B int
}

// ParticleGrid owns the particle and line buffers handed to the renderer.
// Particle (col, row) lives at flat index col*Rows + row; every
// per-particle slice is indexed the same way (xyz slices use index*3).
type ParticleGrid struct {
	Spec     GridSpec
	BaseSize float32

	Original  []float32 // xyz, flat layout at z=0, fixed at construction
	Positions []float32 // xyz, rewritten every frame
	Sizes     []float32
	Colors    []float32 // rgb

	Lines         []LineSegment
	LinePositions []float32 // two xyz vertices per segment
	LineColors    []float32 // two rgba vertices per segment

	gradient Gradient
	base     []colorful.Color

	// Dirty is set after every Update and cleared by the backend once uploaded.
	Dirty bool
}

// NewParticleGrid builds the grid and its line topology. Lines connect each
// particle to its right and upper neighbours, without wraparound.
func NewParticleGrid(spec GridSpec, gradient Gradient, baseSize, lineAlpha float32) *ParticleGrid {
	n := spec.Count()
	g := &ParticleGrid{
		Spec:      spec,
		BaseSize:  baseSize,
		Original:  make([]float32, n*3),
		Positions: make([]float32, n*3),
		Sizes:     make([]float32, n),
		Colors:    make([]float32, n*3),
		gradient:  gradient,
		base:      make([]colorful.Color, n),
	}

	for col := 0; col < spec.Columns; col++ {
		for row := 0; row < spec.Rows; row++ {
			i := g.Index(col, row)
			x, y := spec.Center(col, row)
			g.Original[i*3] = float32(x)
			g.Original[i*3+1] = float32(y)
			g.Positions[i*3] = float32(x)
			g.Positions[i*3+1] = float32(y)
			g.Sizes[i] = baseSize

			c := gradient.At(col, row, spec)
			g.base[i] = c
			g.setColor(i, c)
		}
	}

	segments := (spec.Columns-1)*spec.Rows + spec.Columns*(spec.Rows-1)
	g.Lines = make([]LineSegment, 0, segments)
	g.LinePositions = make([]float32, segments*6)
	g.LineColors = make([]float32, 0, segments*8)

	for col := 0; col < spec.Columns; col++ {
		for row := 0; row < spec.Rows; row++ {
			i := g.Index(col, row)
			c := g.base[i]
			if col < spec.Columns-1 {
				g.Lines = append(g.Lines, LineSegment{A: i, B: g.Index(col+1, row)})
				g.appendLineColor(c, lineAlpha)
			}
			if row < spec.Rows-1 {
				g.Lines = append(g.Lines, LineSegment{A: i, B: g.Index(col, row+1)})
				g.appendLineColor(c, lineAlpha)
			}
		}
	}

	for s, seg := range g.Lines {
		copy(g.LinePositions[s*6:s*6+3], g.Original[seg.A*3:seg.A*3+3])
		copy(g.LinePositions[s*6+3:s*6+6], g.Original[seg.B*3:seg.B*3+3])
	}

	return g
}

// Index returns the flat buffer index of cell (col, row).
func (g *ParticleGrid) Index(col, row int) int {
	return col*g.Spec.Rows + row
}

// Cell returns the (col, row) of a flat buffer index.
func (g *ParticleGrid) Cell(index int) (col, row int) {
	return index / g.Spec.Rows, index % g.Spec.Rows
}

// Count returns the number of particles.
func (g *ParticleGrid) Count() int {
	return len(g.Sizes)
}

// BaseColor returns the gradient colour of a particle.
func (g *ParticleGrid) BaseColor(index int) colorful.Color {
	return g.base[index]
}

func (g *ParticleGrid) setColor(i int, c colorful.Color) {
	g.Colors[i*3] = float32(c.R)
	g.Colors[i*3+1] = float32(c.G)
	g.Colors[i*3+2] = float32(c.B)
}

func (g *ParticleGrid) appendLineColor(c colorful.Color, alpha float32) {
	for v := 0; v < 2; v++ {
		g.LineColors = append(g.LineColors, float32(c.R), float32(c.G), float32(c.B), alpha)
	}
}

// FrameInput carries the animation state the grid needs for one frame.
type FrameInput struct {
	Time       float64
	Mode       Mode
	Transition float64
	Pointer    r2.Vec
}

// UpdateParticles writes blended shape positions perturbed by the force field
// into the particle buffers.
func (g *ParticleGrid) UpdateParticles(in FrameInput, field *ForceField) {
	for col := 0; col < g.Spec.Columns; col++ {
		for row := 0; row < g.Spec.Rows; row++ {
			i := g.Index(col, row)
			pos := BlendedPosition(col, row, g.Spec, in.Time, in.Mode, in.Transition)

			f := field.Apply(pos, in.Pointer, in.Time, g.base[i])
			if f.HasColor {
				g.setColor(i, f.Color)
			} else {
				g.setColor(i, g.base[i])
			}

			g.Positions[i*3] = float32(pos.X + f.Offset.X)
			g.Positions[i*3+1] = float32(pos.Y + f.Offset.Y)
			g.Positions[i*3+2] = float32(pos.Z + f.Offset.Z)
			g.Sizes[i] = g.BaseSize * float32(f.SizeMultiplier)
		}
	}
	g.Dirty = true
}

// UpdateLines recomputes both endpoints of every segment from the shape
// function. Lines never receive the force field offset, so they trace the
// undisturbed shape beneath the particles.
func (g *ParticleGrid) UpdateLines(in FrameInput) {
	for s, seg := range g.Lines {
		ac, ar := g.Cell(seg.A)
		bc, br := g.Cell(seg.B)
		a := BlendedPosition(ac, ar, g.Spec, in.Time, in.Mode, in.Transition)
		b := BlendedPosition(bc, br, g.Spec, in.Time, in.Mode, in.Transition)

		o := s * 6
		g.LinePositions[o] = float32(a.X)
		g.LinePositions[o+1] = float32(a.Y)
		g.LinePositions[o+2] = float32(a.Z)
		g.LinePositions[o+3] = float32(b.X)
		g.LinePositions[o+4] = float32(b.Y)
		g.LinePositions[o+5] = float32(b.Z)
	}
	g.Dirty = true
}

// Update runs a full particle and line pass.
func (g *ParticleGrid) Update(in FrameInput, field *ForceField) {
	g.UpdateParticles(in, field)
	g.UpdateLines(in)
}
