package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/heroglow/config"
	"github.com/pthm-cable/heroglow/engine"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func TestHostMeasuresCells(t *testing.T) {
	screen := newSimScreen(t, 100, 30)
	r := Host{Screen: screen}.BoundingRect()
	if r.Width != 800 || r.Height != 480 {
		t.Errorf("expected 800x480 pixels, got %fx%f", r.Width, r.Height)
	}
}

func TestCellCenter(t *testing.T) {
	x, y := CellCenter(2, 3)
	if x != 20 || y != 56 {
		t.Errorf("expected (20, 56), got (%f, %f)", x, y)
	}
}

func TestBackendDrawsGrid(t *testing.T) {
	screen := newSimScreen(t, 120, 40)
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	backend := NewBackend(screen, colorful.Color{})
	e, err := engine.New(cfg, Host{Screen: screen}, backend, engine.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	e.Tick(1.0 / 60)

	if e.Grid().Dirty {
		t.Error("expected backend to consume the dirty flag")
	}

	w, h := screen.Size()
	points, lines := 0, 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			mainc, _, _, _ := screen.GetContent(x, y)
			switch mainc {
			case glyphSmall, glyphMid, glyphLarge:
				points++
			case glyphLine:
				lines++
			}
		}
	}
	if points == 0 {
		t.Error("expected particle glyphs on screen")
	}
	if lines == 0 {
		t.Error("expected line glyphs on screen")
	}
}

func TestBackendClipsOffscreen(t *testing.T) {
	screen := newSimScreen(t, 10, 5)
	b := NewBackend(screen, colorful.Color{})
	b.SetBounds(Host{Screen: screen}.BoundingRect())

	// Must not panic outside the cell grid
	b.plot(-1, 0, glyphMid, layerPoint, 1, 1, 1, 1)
	b.plot(10, 4, glyphMid, layerPoint, 1, 1, 1, 1)
	b.plot(0, 5, glyphMid, layerPoint, 1, 1, 1, 1)

	b.plot(3, 2, glyphLine, layerLine, 1, 1, 1, 1)
	b.plot(3, 2, glyphSmall, layerPoint, 1, 1, 1, 0.1)
	b.plot(3, 2, glyphLine, layerLine, 1, 1, 1, 1)
	if mainc, _, _, _ := screen.GetContent(3, 2); mainc != glyphSmall {
		t.Errorf("expected point to stay above line, got %q", mainc)
	}
}

var _ engine.Backend = (*Backend)(nil)
