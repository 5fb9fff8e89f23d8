// Package ui draws the raylib overlays shown over the hero page: the page
// copy, a status HUD, the frame timing panel and the debug controls.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	ModeColors     map[string]rl.Color
	HeadlineColor  rl.Color
	BodyColor      rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 22, B: 34, A: 230},
		PanelBorder:    rl.Color{R: 70, G: 66, B: 120, A: 255},
		SectionHeader:  rl.Color{R: 236, G: 72, B: 153, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		BarBg:          rl.Color{R: 40, G: 40, B: 56, A: 255},
		BarFill:        rl.Color{R: 79, G: 70, B: 229, A: 255},
		ModeColors: map[string]rl.Color{
			"wave":   {R: 79, G: 70, B: 229, A: 255},
			"circle": {R: 56, G: 189, B: 248, A: 255},
			"star":   {R: 236, G: 72, B: 153, A: 255},
		},
		HeadlineColor:  rl.RayWhite,
		BodyColor:      rl.Color{R: 170, G: 170, B: 190, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// ModeColor returns the accent colour for a shape mode, or BarFill for
// modes without one.
func (t Theme) ModeColor(mode string) rl.Color {
	if c, ok := t.ModeColors[mode]; ok {
		return c
	}
	return t.BarFill
}
