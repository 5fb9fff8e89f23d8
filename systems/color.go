package systems

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Gradient is the diagonal base colouring of the grid.
type Gradient struct {
	Start colorful.Color
	End   colorful.Color
}

// Progress returns the gradient position of cell (col, row) in [0, 1).
func (g Gradient) Progress(col, row int, grid GridSpec) float64 {
	return (float64(col)/float64(grid.Columns) + float64(row)/float64(grid.Rows)) / 2
}

// At returns the base colour of cell (col, row). It depends only on the cell.
func (g Gradient) At(col, row int, grid GridSpec) colorful.Color {
	return g.Start.BlendRgb(g.End, g.Progress(col, row, grid))
}

// Glow brightens base toward glow by mix·intensity, then boosts every channel
// by (1 + boost·intensity), clamped to 1.
func Glow(base, glow colorful.Color, intensity, mix, boost float64) colorful.Color {
	c := base.BlendRgb(glow, intensity*mix)
	scale := 1 + intensity*boost
	return colorful.Color{
		R: math.Min(1, c.R*scale),
		G: math.Min(1, c.G*scale),
		B: math.Min(1, c.B*scale),
	}
}
