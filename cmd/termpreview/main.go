// Terminal preview of the hero background, drawn with tcell.
//
// Usage: go run ./cmd/termpreview [-config path]
//
// Move the mouse over the terminal to disturb the grid. n: next shape,
// space: pause, q or Esc: quit.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/heroglow/config"
	"github.com/pthm-cable/heroglow/engine"
	"github.com/pthm-cable/heroglow/tui"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logPath := flag.String("log", "", "Write JSON logs to this file (default: discard)")
	flag.Parse()

	// The terminal is the display, so logs go to a file or nowhere
	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	logger := slog.New(slog.NewJSONHandler(out, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.EnableFocus()
	screen.HideCursor()

	if err := run(screen, cfg, logger); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(screen tcell.Screen, cfg *config.Config, logger *slog.Logger) error {
	host := tui.Host{Screen: screen}
	backend := tui.NewBackend(screen, cfg.Derived.Background)

	e, err := engine.New(cfg, host, backend, engine.Options{Logger: logger})
	if err != nil {
		return err
	}
	defer e.Dispose()
	if err := e.Start(); err != nil {
		return err
	}

	// Events are read on their own goroutine; the engine is only touched here
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	fps := max(cfg.Screen.TargetFPS, 1)
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	last := time.Now()
	inside := false
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
					return nil
				case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
					return nil
				case ev.Key() == tcell.KeyRune && ev.Rune() == 'n':
					e.AdvanceShape()
				case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
					if err := e.TogglePause(); err != nil {
						return err
					}
				}
			case *tcell.EventMouse:
				if !inside {
					e.PointerEnter()
					inside = true
				}
				x, y := ev.Position()
				e.PointerMove(tui.CellCenter(x, y))
			case *tcell.EventFocus:
				if !ev.Focused && inside {
					e.PointerLeave()
					inside = false
				}
			case *tcell.EventResize:
				screen.Sync()
				e.Resize()
			}

		case now := <-ticker.C:
			e.Tick(now.Sub(last).Seconds())
			last = now
		}
	}
}
