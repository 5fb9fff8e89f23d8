package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/heroglow/config"
	"github.com/pthm-cable/heroglow/engine"
	"github.com/pthm-cable/heroglow/renderer"
	"github.com/pthm-cable/heroglow/telemetry"
	"github.com/pthm-cable/heroglow/ui"
	"github.com/pthm-cable/heroglow/viewport"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	debug := flag.Bool("debug", false, "Show the debug panel and log shape changes")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rec, err := telemetry.NewRecorder(*outputDir)
	if err != nil {
		slog.Error("failed to open output dir", "error", err)
		os.Exit(1)
	}
	defer rec.Close()
	if err := rec.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write config snapshot", "error", err)
	}

	opts := engine.Options{
		Logger:   logger,
		LogStats: *logStats,
		Recorder: rec,
	}

	if *headless {
		if err := runHeadless(cfg, opts, *maxFrames); err != nil {
			slog.Error("headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}
	if err := runWindow(cfg, opts, *maxFrames, *debug); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// runHeadless drives the engine without graphics. With maxFrames it steps
// simulated frames as fast as possible; otherwise it runs in real time until
// interrupted.
func runHeadless(cfg *config.Config, opts engine.Options, maxFrames int) error {
	host := &engine.FixedHost{Rect: viewport.Rect{
		Width:  float32(cfg.Screen.Width),
		Height: float32(cfg.HeroHeight()),
	}}
	fps := max(cfg.Screen.TargetFPS, 1)

	e, err := engine.New(cfg, host, &engine.HeadlessBackend{}, opts)
	if err != nil {
		return err
	}
	defer e.Dispose()

	slog.Info("starting headless run", "max_frames", maxFrames, "fps", fps)

	if maxFrames > 0 {
		if err := e.Start(); err != nil {
			return err
		}
		e.Step(maxFrames, 1/float64(fps))
		slog.Info("max frames reached", "frame", e.State().Frame)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := e.Run(ctx, time.Second/time.Duration(fps)); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// runWindow opens a raylib window showing the page with the animated hero.
func runWindow(cfg *config.Config, opts engine.Options, maxFrames int, debug bool) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Hero Glow")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	page := &viewport.PageHost{
		WindowWidth:  float32(rl.GetScreenWidth()),
		WindowHeight: float32(rl.GetScreenHeight()),
		HeroHeight:   float32(cfg.Screen.HeroHeight),
		PageHeight:   float32(cfg.Screen.PageHeight),
	}
	backend := renderer.NewGlowBackend(float32(cfg.Camera.MaxPixelRatio))

	e, err := engine.New(cfg, page, backend, opts)
	if err != nil {
		return err
	}
	defer e.Dispose()
	if err := e.Start(); err != nil {
		return err
	}

	input := renderer.NewInputPoller(page)
	content := ui.NewPage()
	hud := ui.NewHUD()
	perf := ui.NewPerfPanel(10, 80)
	panel := ui.NewDebugPanel(int32(page.WindowWidth)-290, 10, 280)
	if debug {
		panel.Toggle()
	}
	showHUD := debug
	background := renderer.ClearColor(cfg.Derived.Background)

	for !rl.WindowShouldClose() {
		switch {
		case rl.IsKeyPressed(rl.KeyN):
			e.AdvanceShape()
		case rl.IsKeyPressed(rl.KeySpace):
			if err := e.TogglePause(); err != nil {
				return err
			}
		case rl.IsKeyPressed(rl.KeyD):
			panel.Toggle()
		case rl.IsKeyPressed(rl.KeyH):
			showHUD = !showHUD
		}

		input.Poll(e)
		e.Tick(float64(rl.GetFrameTime()))

		s := e.State()
		data := ui.HUDData{
			Mode:          s.Mode.String(),
			PrevMode:      s.Mode.Previous().String(),
			Transition:    s.Transition,
			ShapeChanges:  s.ShapeChanges,
			Elapsed:       s.Elapsed,
			Frame:         s.Frame,
			FPS:           rl.GetFPS(),
			Paused:        !e.Running(),
			PointerActive: e.Pointer().Active,
			Hovered:       input.Hovered(),
		}

		rl.BeginDrawing()
		rl.ClearBackground(background)
		backend.Present()
		content.Draw(e.Viewport(), page.WindowHeight)
		if showHUD {
			hud.Draw(data)
			perf.Draw(e.Perf())
			hud.DrawControls(int32(page.WindowHeight), "N: next shape | Space: pause | D: debug | H: HUD | wheel: scroll")
		}
		panel.SetPosition(int32(page.WindowWidth)-290, 10)
		err := panel.Draw(e, data)
		rl.EndDrawing()
		if err != nil {
			return err
		}

		if maxFrames > 0 && int(s.Frame) >= maxFrames {
			slog.Info("max frames reached", "frame", s.Frame)
			break
		}
	}
	return nil
}
