// Shape preview tool - interactive view of the grid shapes with sliders.
//
// The grid is drawn straight down the Z axis with no perspective, so the
// raw shape layout and the force field are easy to inspect. Z is shown as
// brightness.
//
// Usage: go run ./cmd/shapepreview [-config path]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/heroglow/config"
	"github.com/pthm-cable/heroglow/systems"
)

const (
	windowWidth  = 1200
	windowHeight = 720
	previewW     = 820
	previewH     = 420
	panelWidth   = windowWidth - previewW - 40
)

// PreviewParams holds the values driven by the panel.
type PreviewParams struct {
	Mode       systems.Mode
	Time       float32
	Transition float32
	Columns    int
	Animate    bool
	Force      bool
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rl.InitWindow(windowWidth, windowHeight, "Shape Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	params := PreviewParams{
		Mode:       systems.ModeWave,
		Transition: 1,
		Columns:    cfg.Grid.Columns,
		Animate:    true,
		Force:      true,
	}

	gradient := systems.Gradient{Start: cfg.Derived.ColorStart, End: cfg.Derived.ColorEnd}
	field := systems.NewForceField(systems.DefaultForceParams(), cfg.Derived.ColorGlow)

	var grid *systems.ParticleGrid
	rebuild := func() {
		vw, vh := float64(previewW), float64(previewH)
		grid = systems.NewParticleGrid(systems.NewGridSpec(params.Columns, vw/vh, vw, vh), gradient,
			float32(cfg.Grid.BaseSize), float32(cfg.Grid.LineAlpha))
	}
	rebuild()

	originX := float32(20 + previewW/2)
	originY := float32(20 + previewH/2)

	for !rl.WindowShouldClose() {
		if params.Animate {
			params.Time += rl.GetFrameTime() * float32(cfg.Shapes.TimeScale)
		}

		// Pointer in shape space; the origin sits at the preview centre with +Y up
		mouse := rl.GetMousePosition()
		pointer := r2.Vec{}
		if params.Force {
			pointer = r2.Vec{X: float64(mouse.X - originX), Y: float64(originY - mouse.Y)}
		}
		in := systems.FrameInput{
			Time:       float64(params.Time),
			Mode:       params.Mode,
			Transition: float64(params.Transition),
			Pointer:    pointer,
		}
		grid.Update(in, field)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawRectangle(20, 20, previewW, previewH, rl.Color{R: 11, G: 11, B: 20, A: 255})
		rl.BeginScissorMode(20, 20, previewW, previewH)
		rl.BeginBlendMode(rl.BlendAdditive)
		drawLines(grid, originX, originY)
		drawPoints(grid, originX, originY)
		rl.EndBlendMode()
		rl.EndScissorMode()
		rl.DrawRectangleLines(20, 20, previewW, previewH, rl.DarkGray)

		statsY := int32(20 + previewH + 15)
		rl.DrawText(fmt.Sprintf("Grid: %dx%d  Particles: %d  Lines: %d",
			grid.Spec.Columns, grid.Spec.Rows, grid.Count(), len(grid.Lines)), 25, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Time: %.2f  Active: %v", params.Time, field.Active(pointer)), 25, statsY+20, 16, rl.DarkGray)

		needsRebuild := drawPanel(&params)
		if needsRebuild {
			rebuild()
		}

		rl.EndDrawing()
	}
}

// drawPanel draws the controls and reports whether the grid must be rebuilt.
func drawPanel(params *PreviewParams) bool {
	panelX := float32(previewW + 30)
	panelY := float32(20)

	rl.DrawText("Shape Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
	panelY += 35

	rl.DrawText(fmt.Sprintf("Mode: %s", params.Mode), int32(panelX), int32(panelY), 16, rl.DarkGray)
	panelY += 24
	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 100, Height: 30}, "Previous") {
		params.Mode = params.Mode.Previous()
		params.Transition = 0
	}
	if gui.Button(rl.Rectangle{X: panelX + 110, Y: panelY, Width: 100, Height: 30}, "Next") {
		params.Mode = params.Mode.Next()
		params.Transition = 0
	}
	panelY += 45

	rl.DrawText("Transition (0 = flat grid)", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	params.Transition = gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
		"0", "1",
		params.Transition, 0, 1,
	)
	rl.DrawText(fmt.Sprintf("%.2f", params.Transition), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
	panelY += 35

	rl.DrawText("Time", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	params.Time = gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
		"0", "60",
		params.Time, 0, 60,
	)
	rl.DrawText(fmt.Sprintf("%.1f", params.Time), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
	panelY += 35

	rebuild := false
	rl.DrawText("Columns", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	newColumns := int(gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
		"5", "80",
		float32(params.Columns), 5, 80,
	))
	rl.DrawText(fmt.Sprintf("%d", params.Columns), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
	if newColumns != params.Columns {
		params.Columns = newColumns
		rebuild = true
	}
	panelY += 45

	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 100, Height: 30}, toggleText(params.Animate, "Stop", "Animate")) {
		params.Animate = !params.Animate
	}
	if gui.Button(rl.Rectangle{X: panelX + 110, Y: panelY, Width: 100, Height: 30}, toggleText(params.Force, "Force off", "Force on")) {
		params.Force = !params.Force
	}
	panelY += 40
	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 100, Height: 30}, "Morph") {
		params.Transition = 0
	}
	if params.Transition < 1 && params.Animate {
		params.Transition = min(1, params.Transition+rl.GetFrameTime()/3.5)
	}

	return rebuild
}

func drawLines(g *systems.ParticleGrid, ox, oy float32) {
	for i := range g.Lines {
		p := g.LinePositions[i*6 : i*6+6]
		c := g.LineColors[i*8 : i*8+4]
		rl.DrawLineV(
			rl.NewVector2(ox+p[0], oy-p[1]),
			rl.NewVector2(ox+p[3], oy-p[4]),
			rl.ColorFromNormalized(rl.NewVector4(c[0], c[1], c[2], c[3])),
		)
	}
}

func drawPoints(g *systems.ParticleGrid, ox, oy float32) {
	for i := 0; i < g.Count(); i++ {
		x, y, z := g.Positions[i*3], g.Positions[i*3+1], g.Positions[i*3+2]
		c := g.Colors[i*3 : i*3+3]
		// Brighter toward the camera
		alpha := min(max(0.5+z/160, 0.2), 1)
		rl.DrawCircleV(rl.NewVector2(ox+x, oy-y), g.Sizes[i], rl.ColorFromNormalized(rl.NewVector4(c[0], c[1], c[2], alpha)))
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
